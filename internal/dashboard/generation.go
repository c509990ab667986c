package dashboard

import "sync/atomic"

// Generation issues tickets for in-flight fetches. Only a result carrying the
// most recent ticket may be committed; older ones are dropped on arrival.
type Generation struct {
	n atomic.Uint64
}

// Next invalidates all outstanding tickets and returns a new one.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// Current returns the latest ticket issued.
func (g *Generation) Current() uint64 {
	return g.n.Load()
}

// IsCurrent reports whether ticket is still the latest.
func (g *Generation) IsCurrent(ticket uint64) bool {
	return ticket == g.n.Load()
}
