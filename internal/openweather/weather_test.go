package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/upstream"
)

const currentJSON = `{
  "coord": {"lon": -0.1278, "lat": 51.5074},
  "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
  "main": {"temp": 12.4, "feels_like": 11.2, "temp_min": 10.1, "temp_max": 13.9, "pressure": 1012, "humidity": 81},
  "wind": {"speed": 5.14, "deg": 230},
  "dt": 1700000000,
  "sys": {"country": "GB", "sunrise": 1699946400, "sunset": 1699979400},
  "name": "London"
}`

const forecastJSON = `{
  "list": [
    {"dt": 1700006400, "main": {"temp": 11, "temp_min": 10, "temp_max": 12, "humidity": 80},
     "weather": [{"id": 801, "main": "Clouds", "description": "few clouds", "icon": "02d"}], "wind": {"speed": 3.2}},
    {"dt": 1700017200, "main": {"temp": 9, "temp_min": 8.5, "temp_max": 9.5, "humidity": 85},
     "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10n"}], "wind": {"speed": 4.1}}
  ],
  "city": {"name": "London", "country": "GB", "coord": {"lat": 51.5074, "lon": -0.1278}}
}`

func TestClient_CurrentWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("path = %s, want /data/2.5/weather", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("lat") != "51.5074" || q.Get("lon") != "-0.1278" {
			t.Errorf("unexpected coordinate query: %s", r.URL.RawQuery)
		}
		if q.Get("appid") != "owm-key" {
			t.Errorf("appid = %q, want owm-key", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("units = %q, want metric", q.Get("units"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(currentJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	coord := models.Coordinate{Lat: 51.5074, Lon: -0.1278}

	current, err := client.CurrentWeather(context.Background(), coord, "owm-key")
	if err != nil {
		t.Fatalf("CurrentWeather() error = %v", err)
	}

	if current.Name != "London" || current.Country != "GB" {
		t.Errorf("location = %s/%s, want London/GB", current.Name, current.Country)
	}
	if current.Temp != 12.4 {
		t.Errorf("Temp = %v, want 12.4", current.Temp)
	}
	if current.Humidity != 81 || current.Pressure != 1012 {
		t.Errorf("humidity/pressure = %d/%d", current.Humidity, current.Pressure)
	}
	if current.WindKmh() != 19 {
		t.Errorf("WindKmh() = %d, want 19", current.WindKmh())
	}
	if current.Primary().Description != "light rain" {
		t.Errorf("Primary().Description = %q", current.Primary().Description)
	}
	if current.Sunrise.Unix() != 1699946400 {
		t.Errorf("Sunrise = %v", current.Sunrise)
	}
}

func TestClient_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast" {
			t.Errorf("path = %s, want /data/2.5/forecast", r.URL.Path)
		}
		w.Write([]byte(forecastJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)

	forecast, err := client.Forecast(context.Background(), models.Coordinate{Lat: 51.5074, Lon: -0.1278}, "owm-key")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	if len(forecast.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(forecast.Entries))
	}
	if forecast.City != "London" {
		t.Errorf("City = %q", forecast.City)
	}
	if !forecast.Entries[0].Time.Before(forecast.Entries[1].Time) {
		t.Error("entries should keep provider order")
	}
	if forecast.Entries[1].Primary().Main != "Rain" {
		t.Errorf("second entry condition = %q", forecast.Entries[1].Primary().Main)
	}
	if forecast.Entries[1].TempMin != 8.5 {
		t.Errorf("TempMin = %v", forecast.Entries[1].TempMin)
	}
}

func TestClient_CurrentWeather_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)

	_, err := client.CurrentWeather(context.Background(), models.Coordinate{Lat: 1, Lon: 1}, "bad")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !upstream.IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("expected wrapped 401 status error, got %v", err)
	}
}

func TestIconURL(t *testing.T) {
	if got := IconURL("10d"); got != "https://openweathermap.org/img/wn/10d@2x.png" {
		t.Errorf("IconURL(10d) = %s", got)
	}
	if got := IconURL(""); got != "" {
		t.Errorf("IconURL(\"\") = %s, want empty", got)
	}
}
