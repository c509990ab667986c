package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ngmaloney/mariner-console/internal/marine"
	"github.com/ngmaloney/mariner-console/internal/models"
)

// sparklineHeight is the row count of every chart.
const sparklineHeight = 3

// renderMarine renders the tab bar and the active marine panel, or the
// placeholder for whatever is missing.
func (m Model) renderMarine() string {
	if m.creds.StormGlass == "" {
		return placeholder("API Key Required",
			"Please add your StormGlass API key in settings to view marine weather data.", true)
	}
	if m.resolving || (m.loadingMarine && m.marine == nil) {
		return m.spinner.View() + " Loading marine weather data..."
	}
	if m.marine == nil || len(m.marine.Hours) == 0 {
		return placeholder("No Marine Data",
			"Unable to load marine weather data. Please check your API key or try a different location.", false)
	}

	hours := m.marine.FirstHours(marine.HoursShown)

	var sections []string
	sections = append(sections, m.renderMarineStatus(), renderTabs(marine.Tabs, m.marineTab))

	switch m.marineTab {
	case marine.TabWeather:
		sections = append(sections, renderViews(m.marineView))
		sections = append(sections, m.renderSections(marine.Sections(m.marineTab, m.marineView), hours))
	case marine.TabAstronomy:
		sections = append(sections, m.renderAstronomy(hours[0].Time))
	case marine.TabSolar:
		sections = append(sections, m.renderSolar(hours))
	case marine.TabHistorical:
		sections = append(sections, m.renderHistorical(hours))
	default:
		sections = append(sections, m.renderSections(marine.Sections(m.marineTab, m.marineView), hours))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMarineStatus shows freshness and the provider's request quota
func (m Model) renderMarineStatus() string {
	parts := []string{mutedStyle.Render(fmt.Sprintf("Source: %s", m.projector.Source))}
	if !m.marine.FetchedAt.IsZero() {
		parts = append(parts, mutedStyle.Render("updated "+humanize.RelTime(m.marine.FetchedAt, m.now(), "ago", "from now")))
	}
	if q := m.marine.Quota; q.DailyQuota > 0 {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("Requests: %d/%d today", q.RequestCount, q.DailyQuota)))
	}
	if m.loadingMarine {
		parts = append(parts, m.spinner.View())
	}
	return strings.Join(parts, "  •  ")
}

func renderTabs(tabs []marine.Tab, active marine.Tab) string {
	var rendered []string
	for _, t := range tabs {
		if t == active {
			rendered = append(rendered, activeTabStyle.Render(t.String()))
		} else {
			rendered = append(rendered, tabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderViews(active marine.View) string {
	var rendered []string
	for _, v := range marine.Views {
		if v == active {
			rendered = append(rendered, selectedStyle.Render("["+v.String()+"]"))
		} else {
			rendered = append(rendered, mutedStyle.Render(" "+v.String()+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderSections renders field cards for the first hour and charts over all hours
func (m Model) renderSections(sections []marine.Section, hours []models.MarineHour) string {
	var cards []string
	for _, s := range sections {
		lines := []string{boxHeaderStyle.Render(s.Title)}
		for _, name := range s.Fields {
			lines = append(lines, field(paramLabel(name), m.projector.Format(hours[0], name)))
		}
		for _, name := range s.Chart {
			lines = append(lines, m.renderChart(hours, name))
		}
		cards = append(cards, cardStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderChart renders one parameter's sparkline with its range
func (m Model) renderChart(hours []models.MarineHour, name string) string {
	values := m.projector.Values(hours, name)
	label := labelStyle.Render(paramLabel(name))
	if len(values) == 0 {
		return label + " " + mutedStyle.Render(marine.Unavailable)
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	p, _ := marine.Lookup(name)
	span := mutedStyle.Render(fmt.Sprintf("%s … %s",
		marine.FormatValue(lo, true, p.Unit, p.Decimals()),
		marine.FormatValue(hi, true, p.Unit, p.Decimals())))

	return label + "  " + span + "\n" + sparklineView(values, len(values))
}

// renderAstronomy shows the seasonal rise and set table
func (m Model) renderAstronomy(t time.Time) string {
	a := marine.ApproximateAstronomy(t.Local())
	lines := []string{
		boxHeaderStyle.Render("Sun & Moon"),
		field("Sunrise", a.Sunrise) + "   " + field("Sunset", a.Sunset),
		field("Moonrise", a.Moonrise) + "   " + field("Moonset", a.Moonset),
		mutedStyle.Render("Approximate seasonal times"),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// renderSolar shows simulated irradiance alongside the provider's cloud cover
func (m Model) renderSolar(hours []models.MarineHour) string {
	points := m.projector.Solar(hours, time.Local)
	radiation := make([]float64, 0, len(points))
	for _, p := range points {
		radiation = append(radiation, p.Radiation)
	}

	lines := []string{boxHeaderStyle.Render("Solar Radiation (24h)")}
	lines = append(lines, sparklineView(radiation, len(radiation)))
	lines = append(lines, mutedStyle.Render("Estimated from time of day"))
	cards := []string{cardStyle.Render(strings.Join(lines, "\n"))}

	return lipgloss.JoinVertical(lipgloss.Left,
		append(cards, m.renderSections(marine.Sections(marine.TabSolar, m.marineView), hours))...)
}

// renderHistorical summarises the shown period
func (m Model) renderHistorical(hours []models.MarineHour) string {
	s := m.projector.Summarize(hours)
	lines := []string{
		boxHeaderStyle.Render("Period Summary"),
		field("Period", s.Range()),
		field("Hours", fmt.Sprintf("%d", s.Hours)),
		field("Max wave height", marine.FormatValue(s.MaxWave, true, "m", 1)),
		field("Max wind speed", marine.FormatValue(s.MaxWind, true, "m/s", 1)),
		field("Avg water temperature", marine.FormatValue(s.AvgWaterTemp, true, "°C", 1)),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		cardStyle.Render(strings.Join(lines, "\n")),
		m.renderChart(hours, "waveHeight"),
		m.renderChart(hours, "windSpeed"),
	)
}

func paramLabel(name string) string {
	if p, ok := marine.Lookup(name); ok {
		return p.Label
	}
	return name
}

// sparklineView draws values as a block sparkline width cells wide
func sparklineView(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return mutedStyle.Render("no data")
	}
	sl := sparkline.New(width, sparklineHeight)
	sl.PushAll(values)
	sl.Draw()
	return sl.View()
}
