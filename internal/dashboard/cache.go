// Package dashboard coordinates fetching for the weather and marine panels:
// which coordinate to fetch, whether data is already held, and whether a
// completed fetch is still wanted.
package dashboard

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// Kind separates cached weather reports from marine series.
type Kind string

const (
	KindWeather Kind = "weather"
	KindMarine  Kind = "marine"
)

// Tolerance is how close a cached coordinate must be to count as a hit.
// Weather is fuzzy; marine requires an exact match.
func (k Kind) Tolerance() float64 {
	if k == KindWeather {
		return models.WeatherTolerance
	}
	return 0
}

// keyDecimals rounds keys to roughly a kilometre.
const keyDecimals = 2

type entry struct {
	coord models.Coordinate
	value any
}

// Cache holds fetched results keyed by kind and rounded coordinate.
type Cache struct {
	store *gocache.Cache
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

func cacheKey(kind Kind, coord models.Coordinate) string {
	return string(kind) + ":" + coord.Key(keyDecimals)
}

// Get returns the value cached for kind at a coordinate matching coord within
// the kind's tolerance.
func (c *Cache) Get(kind Kind, coord models.Coordinate) (any, bool) {
	tol := kind.Tolerance()

	if raw, ok := c.store.Get(cacheKey(kind, coord)); ok {
		if e := raw.(entry); e.coord.Within(coord, tol) {
			return e.value, true
		}
	}

	// Near a rounding boundary the match can live under a neighbouring key.
	if tol > 0 {
		prefix := string(kind) + ":"
		for k, item := range c.store.Items() {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			if e := item.Object.(entry); e.coord.Within(coord, tol) {
				return e.value, true
			}
		}
	}

	return nil, false
}

// Set stores value for kind at coord, replacing whatever shared its key.
func (c *Cache) Set(kind Kind, coord models.Coordinate, value any) {
	c.store.SetDefault(cacheKey(kind, coord), entry{coord: coord, value: value})
}

// Retain drops every entry that would not be a hit for coord. It runs when the
// dashboard moves to a new location.
func (c *Cache) Retain(coord models.Coordinate) {
	for k, item := range c.store.Items() {
		e := item.Object.(entry)
		kind := Kind(k[:strings.IndexByte(k, ':')])
		if !e.coord.Within(coord, kind.Tolerance()) {
			c.store.Delete(k)
		}
	}
}

// Len reports the number of unexpired entries.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Flush empties the cache.
func (c *Cache) Flush() {
	c.store.Flush()
}
