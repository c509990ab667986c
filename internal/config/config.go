// Package config holds the process configuration for the console and the API.
//
// Values are resolved from the OS environment, then an optional .env file in the
// working directory. Nothing is read after startup.
package config

import "time"

// Config is the top-level configuration.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"oneof=local dev prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFile     string `envconfig:"LOG_FILE" default:"data/mariner-console.log"`
	DBPath      string `envconfig:"DB_PATH" default:"data/mariner-console.db" validate:"required"`

	Providers ProviderConfig
	Server    ServerConfig
}

// ProviderConfig describes the upstream weather, marine and geolocation services.
type ProviderConfig struct {
	OpenWeatherURL string `envconfig:"OPENWEATHER_URL" default:"https://api.openweathermap.org" validate:"required,url"`
	OpenWeatherKey string `envconfig:"OPENWEATHER_API_KEY"`
	StormGlassURL  string `envconfig:"STORMGLASS_URL" default:"https://api.stormglass.io" validate:"required,url"`
	StormGlassKey  string `envconfig:"STORMGLASS_API_KEY"`
	GeoIPURL       string `envconfig:"GEOIP_URL" default:"http://ip-api.com/json/" validate:"required,url"`

	// MarineSource selects which data source to read from each marine parameter.
	MarineSource string `envconfig:"MARINE_SOURCE" default:"sg" validate:"required,alphanum"`

	// HTTPTimeout of zero leaves requests without an explicit deadline.
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s" validate:"gte=0"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"15m" validate:"gt=0"`
	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"500ms" validate:"gt=0"`
}

// ServerConfig holds the API listener settings.
type ServerConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080" validate:"required"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}
