// Package api exposes the dashboard core over HTTP as JSON.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzhttp"

	"github.com/ngmaloney/mariner-console/internal/dashboard"
	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/openweather"
)

// Server routes API requests to the dashboard service.
type Server struct {
	router   *chi.Mux
	service  *dashboard.Service
	geocoder openweather.GeocodingClient
	creds    models.Credentials
	source   string
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
	loc      *time.Location
}

// Options carries the dependencies for NewServer.
type Options struct {
	Service     *dashboard.Service
	Geocoder    openweather.GeocodingClient
	Credentials models.Credentials
	// MarineSource is the default data source for marine projections.
	MarineSource string
	Logger       *slog.Logger
	Location     *time.Location
}

// NewServer builds the router and registers every route.
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	s := &Server{
		router:   chi.NewRouter(),
		service:  opts.Service,
		geocoder: opts.Geocoder,
		creds:    opts.Credentials,
		source:   opts.MarineSource,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
		loc:      loc,
	}
	s.routes()
	return s
}

// Handler returns the root handler with compression applied.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.recoverer)
	r.Use(requestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/weather", s.handleWeather)
		r.Get("/marine", s.handleMarine)
		r.Get("/cities", s.handleCities)
		r.Get("/overview", s.handleOverview)
	})
}
