package geolocation

import (
	"context"
	"sync"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// Source records where a resolved coordinate came from.
type Source int

const (
	SourceNone Source = iota
	SourceQuery
	SourceDevice
)

func (s Source) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourceDevice:
		return "device"
	default:
		return "none"
	}
}

// Resolution is the outcome of start-up location resolution.
// Err is set only when the device lookup failed; it is never fatal.
type Resolution struct {
	Coord  models.Coordinate
	Source Source
	Err    error
}

// Found reports whether a coordinate was resolved.
func (r Resolution) Found() bool {
	return r.Source != SourceNone
}

// Resolver runs start-up resolution exactly once. Later coordinate changes are
// applied by the caller directly and never trigger another device lookup.
type Resolver struct {
	locator Locator

	once   sync.Once
	result Resolution
}

// NewResolver creates a resolver. A nil locator means the device has no
// position capability.
func NewResolver(locator Locator) *Resolver {
	return &Resolver{locator: locator}
}

// Resolve uses query when it is set, otherwise asks the locator. Only the first
// call does any work; subsequent calls return the first result.
func (r *Resolver) Resolve(ctx context.Context, query *models.Coordinate) Resolution {
	r.once.Do(func() {
		r.result = r.resolve(ctx, query)
	})
	return r.result
}

func (r *Resolver) resolve(ctx context.Context, query *models.Coordinate) Resolution {
	if query != nil && query.Valid() {
		return Resolution{Coord: *query, Source: SourceQuery}
	}

	if r.locator == nil {
		return Resolution{Source: SourceNone, Err: ErrUnavailable}
	}

	pos, err := r.locator.Locate(ctx)
	if err != nil {
		return Resolution{Source: SourceNone, Err: err}
	}
	return Resolution{Coord: pos.Coord, Source: SourceDevice}
}
