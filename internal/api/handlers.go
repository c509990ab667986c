package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/mariner-console/internal/dashboard"
	"github.com/ngmaloney/mariner-console/internal/forecast"
	"github.com/ngmaloney/mariner-console/internal/marine"
	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/openweather"
	"github.com/ngmaloney/mariner-console/internal/stormglass"
)

type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

type marineQuery struct {
	coordQuery
	Source string `validate:"omitempty,alphanum,max=16"`
}

type citiesQuery struct {
	Q string `validate:"required,max=100"`
}

// WeatherPayload is the body of /api/v1/weather.
type WeatherPayload struct {
	Coord         models.Coordinate       `json:"coord"`
	Current       *models.CurrentWeather  `json:"current"`
	IconURL       string                  `json:"icon_url,omitempty"`
	WindKmh       int                     `json:"wind_kmh"`
	Daily         []forecast.DailySummary `json:"daily"`
	FetchedAt     time.Time               `json:"fetched_at"`
	ForecastError string                  `json:"forecast_error,omitempty"`
}

// MarinePayload is the body of /api/v1/marine.
type MarinePayload struct {
	Coord     models.Coordinate         `json:"coord"`
	Source    string                    `json:"source"`
	FetchedAt time.Time                 `json:"fetched_at"`
	Quota     models.MarineQuota        `json:"quota"`
	Current   map[string]string         `json:"current"`
	Series    map[string][]marine.Point `json:"series"`
	Summary   marine.Summary            `json:"summary"`
	Solar     []marine.SolarPoint       `json:"solar"`
	Astronomy *marine.Astronomy         `json:"astronomy,omitempty"`
}

// OverviewPayload is the body of /api/v1/overview. Each section fails on its own.
type OverviewPayload struct {
	Weather      *WeatherPayload `json:"weather,omitempty"`
	WeatherError string          `json:"weather_error,omitempty"`
	Marine       *MarinePayload  `json:"marine,omitempty"`
	MarineError  string          `json:"marine_error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]string{"status": "ok"})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q, ok := s.parseCoord(w, r)
	if !ok {
		return
	}

	payload, err := s.weather(r.Context(), models.Coordinate{Lat: q.Lat, Lon: q.Lon})
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	writeData(w, payload)
}

func (s *Server) handleMarine(w http.ResponseWriter, r *http.Request) {
	cq, ok := s.parseCoord(w, r)
	if !ok {
		return
	}
	q := marineQuery{coordQuery: cq, Source: r.URL.Query().Get("source")}
	if err := s.validate.Struct(q); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeInvalidQuery, "source must be a short alphanumeric tag")
		return
	}

	payload, err := s.marine(r.Context(), models.Coordinate{Lat: q.Lat, Lon: q.Lon}, q.Source)
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	writeData(w, payload)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	q := citiesQuery{Q: strings.TrimSpace(r.URL.Query().Get("q"))}
	if err := s.validate.Struct(q); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeInvalidQuery, "q is required and at most 100 characters")
		return
	}
	if s.creds.OpenWeatherMap == "" {
		writeError(w, r, http.StatusServiceUnavailable, CodeAPIKeyRequired, "OpenWeatherMap API key is not configured")
		return
	}

	cities, err := s.geocoder.SearchCities(r.Context(), q.Q, s.creds.OpenWeatherMap)
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	if cities == nil {
		cities = []models.City{}
	}
	writeData(w, cities)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	q, ok := s.parseCoord(w, r)
	if !ok {
		return
	}
	coord := models.Coordinate{Lat: q.Lat, Lon: q.Lon}

	var out OverviewPayload
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		p, err := s.weather(ctx, coord)
		out.Weather = p
		if err != nil {
			out.WeatherError = err.Error()
		}
		return nil
	})
	g.Go(func() error {
		p, err := s.marine(ctx, coord, "")
		out.Marine = p
		if err != nil {
			out.MarineError = err.Error()
		}
		return nil
	})
	_ = g.Wait()

	writeData(w, out)
}

func (s *Server) weather(ctx context.Context, coord models.Coordinate) (*WeatherPayload, error) {
	report, err := s.service.Weather(ctx, coord, s.creds.OpenWeatherMap)
	if report == nil {
		return nil, err
	}

	payload := &WeatherPayload{
		Coord:     report.Coord,
		Current:   report.Current,
		IconURL:   openweather.IconURL(report.Current.Primary().Icon),
		WindKmh:   report.Current.WindKmh(),
		Daily:     []forecast.DailySummary{},
		FetchedAt: report.FetchedAt,
	}
	if report.Forecast != nil {
		payload.Daily = forecast.Aggregate(report.Forecast.Entries, s.now(), s.loc)
	}
	if err != nil {
		payload.ForecastError = err.Error()
	}
	return payload, nil
}

func (s *Server) marine(ctx context.Context, coord models.Coordinate, source string) (*MarinePayload, error) {
	data, err := s.service.Marine(ctx, coord, s.creds.StormGlass)
	if err != nil {
		return nil, err
	}

	if source == "" {
		source = s.source
	}
	p := marine.NewProjector(source)
	hours := data.FirstHours(marine.HoursShown)

	payload := &MarinePayload{
		Coord:     data.Stamp,
		Source:    p.Source,
		FetchedAt: data.FetchedAt,
		Quota:     data.Quota,
		Current:   map[string]string{},
		Series:    make(map[string][]marine.Point, len(stormglass.Params)),
		Summary:   p.Summarize(hours),
		Solar:     p.Solar(hours, s.loc),
	}
	if len(hours) > 0 {
		payload.Current = p.Snapshot(hours[0], stormglass.Params)
		astro := marine.ApproximateAstronomy(hours[0].Time.In(s.loc))
		payload.Astronomy = &astro
	}
	for _, name := range stormglass.Params {
		if pts := p.Series(hours, name); len(pts) > 0 {
			payload.Series[name] = pts
		}
	}
	return payload, nil
}

func (s *Server) parseCoord(w http.ResponseWriter, r *http.Request) (coordQuery, bool) {
	var q coordQuery
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, r, http.StatusBadRequest, CodeInvalidQuery, "lat and lon are required numbers")
		return q, false
	}

	q = coordQuery{Lat: lat, Lon: lon}
	if err := s.validate.Struct(q); err != nil {
		writeError(w, r, http.StatusBadRequest, CodeInvalidQuery, "lat must be within [-90, 90] and lon within [-180, 180]")
		return q, false
	}
	return q, true
}

func (s *Server) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dashboard.ErrMissingCredentials):
		writeError(w, r, http.StatusServiceUnavailable, CodeAPIKeyRequired, "provider API key is not configured")
	case errors.Is(err, dashboard.ErrInvalidCoordinate):
		writeError(w, r, http.StatusBadRequest, CodeInvalidQuery, err.Error())
	default:
		s.log.Warn("upstream request failed", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
		writeError(w, r, http.StatusBadGateway, CodeUpstreamFailed, "upstream provider request failed")
	}
}
