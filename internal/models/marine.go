package models

import "time"

// MarineHour is one hourly record: parameter name -> data source -> value
type MarineHour struct {
	Time   time.Time
	Values map[string]map[string]float64
}

// Value returns the value of param from source, if present.
func (h MarineHour) Value(param, source string) (float64, bool) {
	sources, ok := h.Values[param]
	if !ok {
		return 0, false
	}
	v, ok := sources[source]
	return v, ok
}

// MarineQuota mirrors the provider's request accounting.
type MarineQuota struct {
	Cost         int `json:"cost"`
	DailyQuota   int `json:"daily_quota"`
	RequestCount int `json:"request_count"`
}

// MarineData is the hourly marine series for a location.
// Stamp is the coordinate the data was requested for; it exists only so the next
// fetch decision can compare against it.
type MarineData struct {
	Hours     []MarineHour
	Quota     MarineQuota
	Stamp     Coordinate
	FetchedAt time.Time
}

// FirstHours returns at most n leading hours.
func (d *MarineData) FirstHours(n int) []MarineHour {
	if d == nil {
		return nil
	}
	if len(d.Hours) < n {
		return d.Hours
	}
	return d.Hours[:n]
}
