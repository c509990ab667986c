package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// searchBox is the city search field and its candidate list. seq increases on
// every edit; ticks and lookups carrying an older seq are ignored.
type searchBox struct {
	input     textinput.Model
	seq       int
	cities    []models.City
	cursor    int
	searching bool
}

func newSearchBox() searchBox {
	ti := textinput.New()
	ti.Placeholder = "Search for a city..."
	ti.CharLimit = 100
	ti.Width = 60
	ti.Cursor.SetMode(cursor.CursorStatic)
	return searchBox{input: ti}
}

func (s *searchBox) focus() tea.Cmd {
	return s.input.Focus()
}

// close blurs and empties the box, invalidating any pending lookup.
func (s *searchBox) close() {
	s.input.Blur()
	s.input.SetValue("")
	s.seq++
	s.cities = nil
	s.cursor = 0
	s.searching = false
}

// extraHeight is the number of rows the candidate list adds below the box.
func (s searchBox) extraHeight() int {
	if len(s.cities) > 0 {
		return len(s.cities)
	}
	if s.searching {
		return 1
	}
	return 0
}

func (s searchBox) view(focused bool) string {
	style := searchBoxStyle
	if focused {
		style = style.BorderForeground(colorPrimary)
	}
	box := style.Width(64).Render(s.input.View())

	var rows []string
	switch {
	case len(s.cities) > 0:
		for i, c := range s.cities {
			line := fmt.Sprintf("  %s", c.Label())
			if i == s.cursor {
				line = selectedStyle.Render("▸ " + c.Label())
			}
			rows = append(rows, line)
		}
	case s.searching:
		rows = append(rows, mutedStyle.Render("  Searching..."))
	}

	if len(rows) == 0 {
		return box
	}
	return lipgloss.JoinVertical(lipgloss.Left, box, strings.Join(rows, "\n"))
}

// handleSearchKey edits the query, moves through candidates or selects one
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.close()
		m.focus = FocusBody
		return m, nil
	case "up":
		if m.search.cursor > 0 {
			m.search.cursor--
		}
		return m, nil
	case "down":
		if m.search.cursor < len(m.search.cities)-1 {
			m.search.cursor++
		}
		return m, nil
	case "enter":
		if len(m.search.cities) == 0 {
			return m, nil
		}
		city := m.search.cities[m.search.cursor]
		m.search.close()
		m.focus = FocusBody
		m.log.Info("city selected", "city", city.Label())
		return m.setLocation(city.Coordinate())
	}

	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	query := m.search.input.Value()
	if query == before {
		return m, cmd
	}

	m.search.seq++
	if strings.TrimSpace(query) == "" || m.creds.OpenWeatherMap == "" || m.geocoder == nil {
		m.search.cities = nil
		m.search.cursor = 0
		m.search.searching = false
		return m, cmd
	}

	seq := m.search.seq
	debounced := m.tick(m.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
	return m, tea.Batch(cmd, debounced)
}

// handleSearchTick starts the lookup once typing has settled
func (m Model) handleSearchTick(msg searchTickMsg) (Model, tea.Cmd) {
	if msg.seq != m.search.seq {
		return m, nil
	}
	m.search.searching = true
	return m, searchCities(m.geocoder, msg.seq, msg.query, m.creds.OpenWeatherMap)
}

// handleCities shows lookup results for the latest query only. Lookup
// failures are logged and leave the list empty.
func (m Model) handleCities(msg citiesFoundMsg) (Model, tea.Cmd) {
	if msg.seq != m.search.seq {
		return m, nil
	}
	m.search.searching = false
	m.search.cursor = 0
	if msg.err != nil {
		m.log.Error("city search failed", "error", msg.err)
		m.search.cities = nil
		return m, nil
	}
	m.search.cities = msg.cities
	return m, nil
}
