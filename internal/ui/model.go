package ui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/mariner-console/internal/dashboard"
	"github.com/ngmaloney/mariner-console/internal/forecast"
	"github.com/ngmaloney/mariner-console/internal/geolocation"
	"github.com/ngmaloney/mariner-console/internal/marine"
	"github.com/ngmaloney/mariner-console/internal/models"
	"github.com/ngmaloney/mariner-console/internal/nav"
	"github.com/ngmaloney/mariner-console/internal/openweather"
)

// AppState represents the current state of the application
type AppState int

const (
	StateDashboard AppState = iota // Weather and marine panels
	StateSettings                  // API key form
)

// Focus is the part of the dashboard receiving key input
type Focus int

const (
	FocusBody Focus = iota
	FocusSearch
)

// DefaultDebounce is the search quiet period used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// chromeHeight approximates the rows used around the scrolling body.
const chromeHeight = 9

// CredentialStore persists API keys between runs
type CredentialStore interface {
	Load() (models.Credentials, error)
	Save(models.Credentials) error
}

// Options wires the model to its collaborators
type Options struct {
	Service      *dashboard.Service
	Geocoder     openweather.GeocodingClient
	Resolver     *geolocation.Resolver
	Store        CredentialStore
	Credentials  models.Credentials
	Query        *models.Coordinate // from --lat/--lon, may be nil
	Debounce     time.Duration
	MarineSource string
	Logger       *slog.Logger
}

// generations holds the fetch tickets. It is shared by pointer so every copy
// of the model hands out and checks the same counters.
type generations struct {
	weather dashboard.Generation
	marine  dashboard.Generation
}

// Model represents the application's state
type Model struct {
	state  AppState
	focus  Focus
	width  int
	height int

	// Collaborators
	svc       *dashboard.Service
	geocoder  openweather.GeocodingClient
	resolver  *geolocation.Resolver
	store     CredentialStore
	log       *slog.Logger
	projector marine.Projector
	query     *models.Coordinate
	debounce  time.Duration
	tick      tickFunc
	now       func() time.Time

	creds    models.Credentials
	settings settingsForm

	// Location
	location  nav.Location
	resolving bool

	// Search
	search searchBox

	// Weather
	gens           *generations
	weather        *models.WeatherReport
	daily          []forecast.DailySummary
	loadingWeather bool

	// Marine
	marine        *models.MarineData
	loadingMarine bool
	marineTab     marine.Tab
	marineView    marine.View

	toasts   []toast
	toastSeq int

	spinner  spinner.Model
	viewport viewport.Model
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	m := Model{
		state:     StateDashboard,
		focus:     FocusBody,
		svc:       opts.Service,
		geocoder:  opts.Geocoder,
		resolver:  opts.Resolver,
		store:     opts.Store,
		log:       log,
		projector: marine.NewProjector(opts.MarineSource),
		query:     opts.Query,
		debounce:  debounce,
		tick:      tea.Tick,
		now:       time.Now,
		creds:     opts.Credentials,
		settings:  newSettingsForm(opts.Credentials),
		search:    newSearchBox(),
		gens:      &generations{},
		resolving: true,
		spinner:   s,
		viewport:  viewport.New(80, 20),
	}

	// First run without keys opens settings straight away.
	if !m.creds.Complete() {
		m.state = StateSettings
	}
	return m
}

// Init starts location resolution
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, resolveLocation(m.resolver, m.query))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.viewport.SetContent(m.renderBody())
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case locationResolvedMsg:
		return m.handleResolved(msg.resolution)

	case weatherFetchedMsg:
		return m.handleWeather(msg)

	case marineFetchedMsg:
		return m.handleMarine(msg)

	case searchTickMsg:
		return m.handleSearchTick(msg)

	case citiesFoundMsg:
		return m.handleCities(msg)

	case credentialsSavedMsg:
		return m.handleSaved(msg)

	case toastExpiredMsg:
		return m.removeToast(msg.id), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state == StateSettings {
			return m.handleSettingsKey(msg)
		}
		if m.focus == FocusSearch {
			return m.handleSearchKey(msg)
		}
		return m.handleBodyKey(msg)
	}

	return m, nil
}

// handleBodyKey handles dashboard keys while the search box is not focused
func (m Model) handleBodyKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.focus = FocusSearch
		return m, m.search.focus()
	case "s":
		m.state = StateSettings
		m.settings = m.settings.open(m.creds)
		return m, nil
	case "r":
		return m.refresh()
	case "x":
		return m.dismissToast(), nil
	case "tab":
		m.marineTab = marine.Tabs[(int(m.marineTab)+1)%len(marine.Tabs)]
		return m, nil
	case "shift+tab":
		m.marineTab = marine.Tabs[(int(m.marineTab)+len(marine.Tabs)-1)%len(marine.Tabs)]
		return m, nil
	case "]":
		m.marineView = marine.Views[(int(m.marineView)+1)%len(marine.Views)]
		return m, nil
	case "[":
		m.marineView = marine.Views[(int(m.marineView)+len(marine.Views)-1)%len(marine.Views)]
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleResolved applies the start-up location. A failed device lookup is
// reported once and leaves the dashboard waiting for a search.
func (m Model) handleResolved(res geolocation.Resolution) (Model, tea.Cmd) {
	m.resolving = false
	if !res.Found() {
		if res.Err != nil {
			m.log.Warn("location resolution failed", "error", res.Err)
			return m.pushToast("Location Error", "Unable to get your location. Please search for a city instead.", true)
		}
		return m, nil
	}
	m.log.Info("location resolved", "source", res.Source.String(), "coord", res.Coord.String())
	return m.setLocation(res.Coord)
}

// setLocation moves the dashboard to coord. Re-selecting the current
// coordinate is a no-op.
func (m Model) setLocation(coord models.Coordinate) (Model, tea.Cmd) {
	if !m.location.Replace(coord) {
		return m, nil
	}
	if m.svc != nil {
		m.svc.Focus(coord)
	}

	// Whatever is in flight belongs to the old location, even when the new
	// one needs no fetch of its own.
	m.gens.weather.Next()
	m.gens.marine.Next()
	m.loadingWeather = false
	m.loadingMarine = false

	m.viewport.GotoTop()
	return m.refresh()
}

// atLocation reports whether coord is the location currently shown.
func (m Model) atLocation(coord models.Coordinate) bool {
	current, ok := m.location.Current()
	return ok && current.Equal(coord)
}

// refresh starts whichever fetches the current location and keys call for.
// Data already held for the location is not fetched again.
func (m Model) refresh() (Model, tea.Cmd) {
	coord, ok := m.location.Current()
	if !ok || m.svc == nil {
		return m, nil
	}

	var cmds []tea.Cmd
	if m.creds.OpenWeatherMap != "" && !dashboard.WeatherHeld(m.weather, coord) {
		ticket := m.gens.weather.Next()
		m.loadingWeather = true
		cmds = append(cmds, fetchWeather(m.svc, ticket, coord, m.creds.OpenWeatherMap))
	}
	if m.creds.StormGlass != "" && !dashboard.MarineHeld(m.marine, coord) {
		ticket := m.gens.marine.Next()
		m.loadingMarine = true
		cmds = append(cmds, fetchMarine(m.svc, ticket, coord, m.creds.StormGlass))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleWeather(msg weatherFetchedMsg) (Model, tea.Cmd) {
	if !m.gens.weather.IsCurrent(msg.ticket) || !m.atLocation(msg.coord) {
		m.log.Debug("dropping superseded weather result", "coord", msg.coord.String())
		return m, nil
	}
	m.loadingWeather = false

	if msg.report != nil {
		m.weather = msg.report
		if msg.report.Forecast != nil {
			m.daily = forecast.Aggregate(msg.report.Forecast.Entries, m.now(), time.Local)
		} else {
			m.daily = nil
		}
	}
	if msg.err != nil {
		m.log.Error("weather fetch failed", "coord", msg.coord.String(), "error", msg.err)
		if errors.Is(msg.err, dashboard.ErrMissingCredentials) {
			return m, nil
		}
		return m.pushToast("Error", "Failed to fetch weather data. Please check your API key.", true)
	}
	return m, nil
}

func (m Model) handleMarine(msg marineFetchedMsg) (Model, tea.Cmd) {
	if !m.gens.marine.IsCurrent(msg.ticket) || !m.atLocation(msg.coord) {
		m.log.Debug("dropping superseded marine result", "coord", msg.coord.String())
		return m, nil
	}
	m.loadingMarine = false

	if msg.err != nil {
		m.log.Error("marine fetch failed", "coord", msg.coord.String(), "error", msg.err)
		if errors.Is(msg.err, dashboard.ErrMissingCredentials) {
			return m, nil
		}
		return m.pushToast("Error", "Failed to fetch marine data. Please check your API key.", true)
	}
	m.marine = msg.data
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.state == StateSettings {
		return lipgloss.JoinVertical(lipgloss.Left, m.viewSettings(), m.renderToasts())
	}
	return m.viewDashboard()
}

// viewDashboard renders the header, search, scrolling panels and footer
func (m Model) viewDashboard() string {
	var sections []string

	header := titleStyle.Render("⚓ Mariner Console")
	if coord, ok := m.location.Current(); ok {
		header += "  " + mutedStyle.Render("📍 "+coord.String())
	}
	sections = append(sections, header, m.search.view(m.focus == FocusSearch))

	if t := m.renderToasts(); t != "" {
		sections = append(sections, t)
	}

	vp := m.viewport
	vp.Height = max(m.height-chromeHeight-lipgloss.Height(m.renderToasts())-m.search.extraHeight(), 3)
	sections = append(sections, vp.View())

	var help string
	if m.focus == FocusSearch {
		help = "↑/↓: Choose • Enter: Select • Esc: Close search • Ctrl+C: Quit"
	} else {
		help = "/: Search • Tab: Marine tab • [/]: Weather view • S: Settings • R: Refresh • X: Dismiss • Q: Quit"
	}
	footer := mutedStyle.Render("Mariner Console ©")
	if q := m.location.Query(); q != "" {
		footer += mutedStyle.Render("  Share: " + q)
	}
	sections = append(sections, helpStyle.Render(help), footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody renders the scrolling weather and marine panels
func (m Model) renderBody() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render("⛅ WEATHER"),
		m.renderWeather(),
		sectionHeaderStyle.Render("🌊 MARINE WEATHER"),
		m.renderMarine(),
	)
}
