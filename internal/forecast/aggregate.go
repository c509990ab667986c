// Package forecast turns the provider's flat 3-hourly list into daily summaries.
package forecast

import (
	"math"
	"time"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// DayLayout is the calendar-day key, e.g. "Mon, Jan 2".
const DayLayout = "Mon, Jan 2"

// MaxDays is how many days after today are summarised.
const MaxDays = 5

// DailySummary describes one calendar day of forecast entries.
type DailySummary struct {
	Day         string                 `json:"day"`
	Date        time.Time              `json:"date"`
	Min         int                    `json:"min"`
	Max         int                    `json:"max"`
	Condition   string                 `json:"condition"`
	Icon        string                 `json:"icon"`
	Description string                 `json:"description"`
	Entries     []models.ForecastEntry `json:"-"`
}

// DayKey formats t as a calendar-day key in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// Group buckets entries by calendar day in loc, keeping first-seen day order
// and the original entry order inside each bucket.
func Group(entries []models.ForecastEntry, loc *time.Location) ([]string, map[string][]models.ForecastEntry) {
	var order []string
	buckets := make(map[string][]models.ForecastEntry)

	for _, e := range entries {
		key := DayKey(e.Time, loc)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], e)
	}

	return order, buckets
}

// Aggregate summarises up to MaxDays days following today. The day whose key
// matches now is skipped wherever it appears.
func Aggregate(entries []models.ForecastEntry, now time.Time, loc *time.Location) []DailySummary {
	if loc == nil {
		loc = time.Local
	}

	today := DayKey(now, loc)
	order, buckets := Group(entries, loc)

	days := make([]DailySummary, 0, MaxDays)
	for _, key := range order {
		if key == today {
			continue
		}
		if len(days) == MaxDays {
			break
		}
		days = append(days, summarise(key, buckets[key]))
	}

	return days
}

func summarise(key string, items []models.ForecastEntry) DailySummary {
	lo, hi := MinMax(items)
	cond := Dominant(items)

	return DailySummary{
		Day:         key,
		Date:        items[0].Time,
		Min:         lo,
		Max:         hi,
		Condition:   cond.Main,
		Icon:        cond.Icon,
		Description: cond.Description,
		Entries:     items,
	}
}

// MinMax returns the rounded lowest entry minimum and highest entry maximum.
func MinMax(items []models.ForecastEntry) (int, int) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, e := range items {
		if e.TempMin < lo {
			lo = e.TempMin
		}
		if e.TempMax > hi {
			hi = e.TempMax
		}
	}
	return models.Round(lo), models.Round(hi)
}

// Dominant returns the first entry condition whose main group occurs most often.
// Ties go to the group encountered first.
func Dominant(items []models.ForecastEntry) models.Condition {
	var order []string
	counts := make(map[string]int)
	first := make(map[string]models.Condition)

	for _, e := range items {
		c := e.Primary()
		if _, ok := counts[c.Main]; !ok {
			order = append(order, c.Main)
			first[c.Main] = c
		}
		counts[c.Main]++
	}

	best, bestCount := "", 0
	for _, main := range order {
		if counts[main] > bestCount {
			best, bestCount = main, counts[main]
		}
	}

	return first[best]
}
