package models

// Credentials holds one opaque API key per provider.
type Credentials struct {
	OpenWeatherMap string `json:"openWeatherMap"`
	StormGlass     string `json:"stormGlass"`
}

// Complete reports whether both keys are set.
func (c Credentials) Complete() bool {
	return c.OpenWeatherMap != "" && c.StormGlass != ""
}
