package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/mariner-console/internal/models"
)

// settingsForm edits the two provider keys
type settingsForm struct {
	inputs []textinput.Model
	active int
	err    error
}

const (
	fieldOpenWeatherMap = iota
	fieldStormGlass
)

func newSettingsForm(creds models.Credentials) settingsForm {
	labels := []string{"OpenWeatherMap API key", "StormGlass API key"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 128
		ti.Width = 48
		ti.EchoMode = textinput.EchoPassword
		ti.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = ti
	}
	return settingsForm{inputs: inputs}.open(creds)
}

// open resets the form to creds with the first field focused.
func (f settingsForm) open(creds models.Credentials) settingsForm {
	f.inputs[fieldOpenWeatherMap].SetValue(creds.OpenWeatherMap)
	f.inputs[fieldStormGlass].SetValue(creds.StormGlass)
	f.err = nil
	return f.focusField(fieldOpenWeatherMap)
}

func (f settingsForm) focusField(i int) settingsForm {
	f.active = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return f
}

func (f settingsForm) credentials() models.Credentials {
	return models.Credentials{
		OpenWeatherMap: strings.TrimSpace(f.inputs[fieldOpenWeatherMap].Value()),
		StormGlass:     strings.TrimSpace(f.inputs[fieldStormGlass].Value()),
	}
}

// handleSettingsKey edits the form. Enter saves, Esc closes without saving.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateDashboard
		return m, nil
	case "tab", "down":
		m.settings = m.settings.focusField((m.settings.active + 1) % len(m.settings.inputs))
		return m, nil
	case "shift+tab", "up":
		m.settings = m.settings.focusField((m.settings.active + len(m.settings.inputs) - 1) % len(m.settings.inputs))
		return m, nil
	case "enter":
		if m.store == nil {
			return m.handleSaved(credentialsSavedMsg{creds: m.settings.credentials()})
		}
		return m, saveCredentials(m.store, m.settings.credentials())
	}

	var cmd tea.Cmd
	m.settings.inputs[m.settings.active], cmd = m.settings.inputs[m.settings.active].Update(msg)
	return m, cmd
}

// handleSaved applies saved keys and fetches anything they unlock
func (m Model) handleSaved(msg credentialsSavedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error("saving credentials failed", "error", msg.err)
		m.settings.err = msg.err
		return m, nil
	}

	// Data fetched with a replaced key is not reused.
	if msg.creds != m.creds && m.svc != nil {
		m.svc.Invalidate()
	}
	if msg.creds.OpenWeatherMap != m.creds.OpenWeatherMap {
		m.gens.weather.Next()
		m.loadingWeather = false
		m.weather = nil
		m.daily = nil
	}
	if msg.creds.StormGlass != m.creds.StormGlass {
		m.gens.marine.Next()
		m.loadingMarine = false
		m.marine = nil
	}

	m.creds = msg.creds
	m.state = StateDashboard
	m.log.Info("credentials saved",
		"openweathermap", m.creds.OpenWeatherMap != "",
		"stormglass", m.creds.StormGlass != "")

	m, toastCmd := m.pushToast("API Keys Saved", "Your API keys have been saved to the settings database.", false)
	m, fetchCmd := m.refresh()
	return m, tea.Batch(toastCmd, fetchCmd)
}

// viewSettings renders the API key form
func (m Model) viewSettings() string {
	title := titleStyle.Render("⚙  Settings")
	subtitle := mutedStyle.Render("API keys are stored locally and only sent to their provider.")

	var sections []string
	sections = append(sections, title, subtitle, "")

	labels := []string{"OpenWeatherMap API Key", "StormGlass API Key"}
	for i, input := range m.settings.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.settings.active {
			label = selectedStyle.Render(labels[i])
		}
		sections = append(sections, label, searchBoxStyle.Width(52).Render(input.View()), "")
	}

	if !m.settings.credentials().Complete() {
		sections = append(sections, warningStyle.Render("Both keys are needed for the full dashboard."))
	}
	if m.settings.err != nil {
		sections = append(sections, errorStyle.Render("✗ "+m.settings.err.Error()))
	}

	sections = append(sections, helpStyle.Render("Tab: Next field • Enter: Save • Esc: Close • Ctrl+C: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
