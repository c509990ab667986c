package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// clockLayout formats sunrise and sunset in local time.
const clockLayout = "15:04"

// renderWeather renders the current conditions card and 5-day forecast, or
// the placeholder for whatever is missing.
func (m Model) renderWeather() string {
	if m.resolving || (m.loadingWeather && m.weather == nil) {
		return m.spinner.View() + " Loading weather data..."
	}
	if m.creds.OpenWeatherMap == "" {
		return placeholder("API Key Required",
			"Please add your OpenWeatherMap API key in settings to view weather data.", true)
	}
	if m.weather == nil || m.weather.Current == nil {
		return placeholder("No Weather Data",
			"Unable to load weather data. Please check your API key or try a different location.", false)
	}

	var sections []string
	sections = append(sections, m.renderCurrent(m.weather))
	sections = append(sections, m.renderDaily())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCurrent renders the current conditions card
func (m Model) renderCurrent(report *models.WeatherReport) string {
	cur := report.Current
	cond := cur.Primary()

	place := cur.Name
	if cur.Country != "" {
		place += ", " + cur.Country
	}

	heading := boxHeaderStyle.Render(place)
	if m.loadingWeather {
		heading += " " + m.spinner.View()
	}
	if !report.FetchedAt.IsZero() {
		heading += "  " + mutedStyle.Render("updated "+humanize.RelTime(report.FetchedAt, m.now(), "ago", "from now"))
	}

	temp := bigValueStyle.Render(fmt.Sprintf("%d°C", models.Round(cur.Temp)))
	desc := valueStyle.Render(capitalize(cond.Description))

	lines := []string{
		heading,
		"",
		temp + "  " + desc,
		field("Feels like", fmt.Sprintf("%d°C", models.Round(cur.FeelsLike))) + "   " +
			field("High", fmt.Sprintf("%d°", models.Round(cur.TempMax))) + "   " +
			field("Low", fmt.Sprintf("%d°", models.Round(cur.TempMin))),
		field("Wind", fmt.Sprintf("%d km/h", cur.WindKmh())) + "   " +
			field("Humidity", fmt.Sprintf("%d%%", cur.Humidity)) + "   " +
			field("Pressure", fmt.Sprintf("%d hPa", cur.Pressure)),
		field("Sunrise", cur.Sunrise.Local().Format(clockLayout)) + "   " +
			field("Sunset", cur.Sunset.Local().Format(clockLayout)),
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

// renderDaily renders the per-day forecast rows
func (m Model) renderDaily() string {
	if len(m.daily) == 0 {
		return mutedStyle.Render("Forecast unavailable")
	}

	lines := []string{boxHeaderStyle.Render("5-Day Forecast")}
	for _, d := range m.daily {
		lines = append(lines, fmt.Sprintf("%-12s %-14s %s",
			d.Day,
			d.Condition,
			valueStyle.Render(fmt.Sprintf("%d° / %d°", d.Max, d.Min)),
		))
	}

	var temps []float64
	if m.weather.Forecast != nil {
		for _, e := range m.weather.Forecast.Entries {
			temps = append(temps, e.Temp)
		}
	}
	if len(temps) > 0 {
		lines = append(lines, "", labelStyle.Render("Temperature trend"), sparklineView(temps, len(temps)))
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func placeholder(title, body string, warn bool) string {
	heading := boxHeaderStyle.Render(title)
	if warn {
		heading = warningStyle.Render("⚠ " + title)
	}
	return cardStyle.Render(heading + "\n" + mutedStyle.Render(body))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
