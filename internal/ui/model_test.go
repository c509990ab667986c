package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/mariner-console/internal/dashboard"
	"github.com/ngmaloney/mariner-console/internal/geolocation"
	"github.com/ngmaloney/mariner-console/internal/marine"
	"github.com/ngmaloney/mariner-console/internal/models"
)

var (
	london = models.Coordinate{Lat: 51.5074, Lon: -0.1278}
	paris  = models.Coordinate{Lat: 48.8566, Lon: 2.3522}

	fullCreds = models.Credentials{OpenWeatherMap: "owm-key", StormGlass: "sg-key"}
	testNow   = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
)

type fakeWeather struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeWeather) CurrentWeather(ctx context.Context, coord models.Coordinate, apiKey string) (*models.CurrentWeather, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return &models.CurrentWeather{
		Name:       "London",
		Country:    "GB",
		Coord:      coord,
		Temp:       11.6,
		Conditions: []models.Condition{{Main: "Clouds", Description: "broken clouds", Icon: "04d"}},
	}, nil
}

func (f *fakeWeather) Forecast(ctx context.Context, coord models.Coordinate, apiKey string) (*models.Forecast, error) {
	return &models.Forecast{City: "London", Coord: coord}, nil
}

type fakeMarine struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeMarine) GetMarineData(ctx context.Context, coord models.Coordinate, apiKey string) (*models.MarineData, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return &models.MarineData{
		Stamp: coord,
		Hours: []models.MarineHour{{
			Time:   testNow,
			Values: map[string]map[string]float64{"waveHeight": {"sg": 1.2}},
		}},
	}, nil
}

type fakeGeocoder struct {
	mu      sync.Mutex
	queries []string
	cities  []models.City
}

func (f *fakeGeocoder) SearchCities(ctx context.Context, query, apiKey string) ([]models.City, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.cities, nil
}

type fakeStore struct {
	saved []models.Credentials
	err   error
}

func (f *fakeStore) Load() (models.Credentials, error) { return models.Credentials{}, nil }

func (f *fakeStore) Save(creds models.Credentials) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, creds)
	return nil
}

type harness struct {
	weather  *fakeWeather
	marine   *fakeMarine
	geocoder *fakeGeocoder
	store    *fakeStore
}

func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(testNow) }
}

func newTestModel(t *testing.T, creds models.Credentials) (Model, *harness) {
	t.Helper()
	h := &harness{
		weather:  &fakeWeather{},
		marine:   &fakeMarine{},
		geocoder: &fakeGeocoder{},
		store:    &fakeStore{},
	}
	svc := dashboard.NewService(h.weather, h.marine, dashboard.NewCache(time.Minute), nil)

	m := NewModel(Options{
		Service:     svc,
		Geocoder:    h.geocoder,
		Resolver:    geolocation.NewResolver(nil),
		Store:       h.store,
		Credentials: creds,
		Debounce:    time.Millisecond,
	})
	m.tick = immediateTick
	m.now = func() time.Time { return testNow }

	m, _ = step(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, h
}

func step(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends one key per rune and returns the commands produced.
func typeText(m Model, text string) (Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, r := range text {
		var cmd tea.Cmd
		m, cmd = step(m, key(string(r)))
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, cmds
}

// drain runs cmd, expanding batches, and returns the messages it produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds msgs to the model, ignoring toast expiry so toasts stay visible.
func deliver(m Model, msgs []tea.Msg) (Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		if _, ok := msg.(toastExpiredMsg); ok {
			continue
		}
		var cmd tea.Cmd
		m, cmd = step(m, msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, cmds
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t, models.Credentials{})
	assert.Equal(t, StateSettings, m.state, "missing keys should open settings")

	m, _ = newTestModel(t, fullCreds)
	assert.Equal(t, StateDashboard, m.state)
	assert.Equal(t, FocusBody, m.focus)
	assert.True(t, m.resolving)
}

func TestModel_Update_WindowSize(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	m, _ = step(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
	assert.Equal(t, 30-chromeHeight, m.viewport.Height)
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	_, cmd := step(m, key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_ResolvedLocationFetchesBoth(t *testing.T) {
	m, h := newTestModel(t, fullCreds)

	m, cmd := step(m, locationResolvedMsg{resolution: geolocation.Resolution{Coord: london, Source: geolocation.SourceQuery}})
	assert.False(t, m.resolving)
	assert.True(t, m.loadingWeather)
	assert.True(t, m.loadingMarine)

	m, _ = deliver(m, drain(cmd))
	assert.False(t, m.loadingWeather)
	assert.False(t, m.loadingMarine)
	require.NotNil(t, m.weather)
	require.NotNil(t, m.marine)
	assert.Equal(t, 1, h.weather.calls)
	assert.Equal(t, 1, h.marine.calls)

	view := m.View()
	assert.Contains(t, view, "London, GB")
	assert.Contains(t, view, "12°C")
}

func TestModel_ResolutionFailureShowsToast(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)

	m, cmd := step(m, locationResolvedMsg{resolution: geolocation.Resolution{Err: errors.New("denied")}})
	assert.NotNil(t, cmd, "toast expiry should be scheduled")
	assert.False(t, m.resolving)

	require.Len(t, m.toasts, 1)
	assert.Equal(t, "Location Error", m.toasts[0].title)
	assert.True(t, m.toasts[0].destructive)
	_, ok := m.location.Current()
	assert.False(t, ok)
}

func TestModel_MissingKeySkipsFetch(t *testing.T) {
	m, h := newTestModel(t, models.Credentials{StormGlass: "sg-key"})
	m.state = StateDashboard

	m, cmd := step(m, locationResolvedMsg{resolution: geolocation.Resolution{Coord: london, Source: geolocation.SourceQuery}})
	assert.False(t, m.loadingWeather)
	m, _ = deliver(m, drain(cmd))

	assert.Equal(t, 0, h.weather.calls)
	assert.Equal(t, 1, h.marine.calls)
	assert.Contains(t, m.View(), "API Key Required")
}

func TestModel_StaleWeatherResultDropped(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)

	m, _ = m.setLocation(london)
	staleTicket := m.gens.weather.Current()
	m, _ = m.setLocation(paris)
	currentTicket := m.gens.weather.Current()
	require.NotEqual(t, staleTicket, currentTicket)

	stale := &models.WeatherReport{Coord: london, Current: &models.CurrentWeather{Name: "London"}}
	m, _ = step(m, weatherFetchedMsg{ticket: staleTicket, coord: london, report: stale})
	assert.Nil(t, m.weather, "superseded result must not be committed")
	assert.True(t, m.loadingWeather)

	fresh := &models.WeatherReport{Coord: paris, Current: &models.CurrentWeather{Name: "Paris"}}
	m, _ = step(m, weatherFetchedMsg{ticket: currentTicket, coord: paris, report: fresh})
	require.NotNil(t, m.weather)
	assert.Equal(t, "Paris", m.weather.Current.Name)
	assert.False(t, m.loadingWeather)
}

func TestModel_StaleMarineResultDropped(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)

	m, _ = m.setLocation(london)
	staleTicket := m.gens.marine.Current()
	m, _ = m.setLocation(paris)

	m, _ = step(m, marineFetchedMsg{ticket: staleTicket, coord: london, data: &models.MarineData{Stamp: london}})
	assert.Nil(t, m.marine)
}

func TestModel_PartialWeatherCommitsAndToasts(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	m, _ = m.setLocation(london)

	report := &models.WeatherReport{Coord: london, Current: &models.CurrentWeather{Name: "London"}}
	m, _ = step(m, weatherFetchedMsg{
		ticket: m.gens.weather.Current(),
		coord:  london,
		report: report,
		err:    dashboard.ErrForecastUnavailable,
	})

	require.NotNil(t, m.weather)
	assert.Empty(t, m.daily)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, "Failed to fetch weather data. Please check your API key.", m.toasts[0].description)
}

func TestModel_MarineFailureKeepsPlaceholder(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	m, _ = m.setLocation(london)
	m.resolving = false

	m, _ = step(m, marineFetchedMsg{ticket: m.gens.marine.Current(), coord: london, err: errors.New("boom")})
	assert.Nil(t, m.marine)
	assert.False(t, m.loadingMarine)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, "Failed to fetch marine data. Please check your API key.", m.toasts[0].description)
	assert.Contains(t, m.View(), "No Marine Data")
}

func TestModel_HeldDataNotRefetched(t *testing.T) {
	m, h := newTestModel(t, fullCreds)

	m, cmd := m.setLocation(london)
	m, _ = deliver(m, drain(cmd))
	require.Equal(t, 1, h.weather.calls)

	// Re-selecting the same coordinate is a no-op.
	m, cmd = m.setLocation(london)
	assert.Nil(t, cmd)

	// Refresh with everything held issues nothing.
	_, cmd = m.refresh()
	assert.Nil(t, cmd)
}

func TestModel_ReturningToHeldLocationDropsPendingResult(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)

	m, cmd := m.setLocation(london)
	m, _ = deliver(m, drain(cmd))
	require.NotNil(t, m.weather)
	require.NotNil(t, m.marine)

	// Moving away starts fetches for paris; moving back needs none.
	m, _ = m.setLocation(paris)
	weatherTicket := m.gens.weather.Current()
	marineTicket := m.gens.marine.Current()

	m, cmd = m.setLocation(london)
	assert.Nil(t, cmd, "london is still held")
	assert.False(t, m.loadingWeather)
	assert.False(t, m.loadingMarine)

	report := &models.WeatherReport{Coord: paris, Current: &models.CurrentWeather{Name: "Paris", Coord: paris}}
	m, _ = step(m, weatherFetchedMsg{ticket: weatherTicket, coord: paris, report: report})
	m, _ = step(m, marineFetchedMsg{ticket: marineTicket, coord: paris, data: &models.MarineData{Stamp: paris}})

	require.NotNil(t, m.weather)
	assert.Equal(t, "London", m.weather.Current.Name)
	require.NotNil(t, m.marine)
	assert.Equal(t, london, m.marine.Stamp)
	assert.False(t, m.loadingWeather)
	assert.False(t, m.loadingMarine)
}

func TestModel_ResultForOtherCoordinateDropped(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	m, _ = m.setLocation(london)

	report := &models.WeatherReport{Coord: paris, Current: &models.CurrentWeather{Name: "Paris"}}
	m, _ = step(m, weatherFetchedMsg{ticket: m.gens.weather.Current(), coord: paris, report: report})
	assert.Nil(t, m.weather)

	m, _ = step(m, marineFetchedMsg{ticket: m.gens.marine.Current(), coord: paris, data: &models.MarineData{Stamp: paris}})
	assert.Nil(t, m.marine)
}

func TestModel_WeatherToleranceMarineExact(t *testing.T) {
	m, h := newTestModel(t, fullCreds)

	m, cmd := m.setLocation(london)
	m, _ = deliver(m, drain(cmd))

	near := models.Coordinate{Lat: london.Lat + 0.005, Lon: london.Lon}
	m, cmd = m.setLocation(near)
	assert.False(t, m.loadingWeather, "weather within tolerance is already held")
	assert.True(t, m.loadingMarine, "marine needs an exact match")

	_, _ = deliver(m, drain(cmd))
	assert.Equal(t, 1, h.weather.calls)
	assert.Equal(t, 2, h.marine.calls)
}

func TestSearch_DebounceIssuesSingleLookup(t *testing.T) {
	m, h := newTestModel(t, fullCreds)
	h.geocoder.cities = []models.City{{Name: "London", Country: "GB", Lat: london.Lat, Lon: london.Lon}}

	m, _ = step(m, key("/"))
	require.Equal(t, FocusSearch, m.focus)

	m, first := typeText(m, "Lon")
	m, second := typeText(m, "don")
	require.Len(t, first, 3)
	require.Len(t, second, 3)
	assert.Equal(t, "London", m.search.input.Value())

	// Every keystroke's timer fires, but only the last one is still current.
	var ticks []tea.Msg
	for _, c := range append(first, second...) {
		ticks = append(ticks, drain(c)...)
	}
	m, lookups := deliver(m, ticks)
	require.Len(t, lookups, 1)
	assert.True(t, m.search.searching)

	m, _ = deliver(m, drain(lookups[0]))
	assert.Equal(t, []string{"London"}, h.geocoder.queries)
	require.Len(t, m.search.cities, 1)
	assert.False(t, m.search.searching)
	assert.Contains(t, m.View(), "London, GB")
}

func TestSearch_StaleResultsIgnored(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	m, _ = step(m, key("/"))
	m, _ = typeText(m, "Par")

	m, _ = step(m, citiesFoundMsg{seq: m.search.seq - 1, cities: []models.City{{Name: "Pa"}}})
	assert.Empty(t, m.search.cities)

	m, _ = step(m, citiesFoundMsg{seq: m.search.seq, cities: []models.City{{Name: "Paris"}}})
	assert.Len(t, m.search.cities, 1)
}

func TestSearch_EmptyQueryClearsCandidates(t *testing.T) {
	m, h := newTestModel(t, fullCreds)
	m, _ = step(m, key("/"))
	m, _ = typeText(m, "P")
	m.search.cities = []models.City{{Name: "Paris"}}

	m, cmd := step(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Nil(t, cmd, "no lookup for an empty query")
	assert.Empty(t, m.search.cities)
	assert.Empty(t, h.geocoder.queries)
}

func TestSearch_SelectCityMovesDashboard(t *testing.T) {
	m, h := newTestModel(t, fullCreds)
	m, _ = step(m, key("/"))
	m.search.cities = []models.City{
		{Name: "London", Country: "GB", Lat: london.Lat, Lon: london.Lon},
		{Name: "Paris", Country: "FR", Lat: paris.Lat, Lon: paris.Lon},
	}

	m, _ = step(m, key("down"))
	m, cmd := step(m, key("enter"))

	assert.Equal(t, FocusBody, m.focus)
	assert.Empty(t, m.search.cities)
	assert.Equal(t, "", m.search.input.Value())
	coord, ok := m.location.Current()
	require.True(t, ok)
	assert.Equal(t, paris, coord)
	assert.Equal(t, "?lat=48.8566&lon=2.3522", m.location.Query())

	_, _ = deliver(m, drain(cmd))
	assert.Equal(t, 1, h.weather.calls)
	assert.Equal(t, 1, h.marine.calls)
}

func TestSettings_SaveAppliesCredentials(t *testing.T) {
	m, h := newTestModel(t, models.Credentials{})
	require.Equal(t, StateSettings, m.state)
	m.location.Replace(london)

	m, _ = typeText(m, "owm")
	m, _ = step(m, key("tab"))
	m, _ = typeText(m, "sg")

	m, cmd := step(m, key("enter"))
	require.NotNil(t, cmd)
	m, fetches := deliver(m, drain(cmd))

	require.Len(t, h.store.saved, 1)
	assert.Equal(t, models.Credentials{OpenWeatherMap: "owm", StormGlass: "sg"}, h.store.saved[0])
	assert.Equal(t, StateDashboard, m.state)
	assert.Equal(t, h.store.saved[0], m.creds)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, "API Keys Saved", m.toasts[0].title)
	assert.False(t, m.toasts[0].destructive)

	// The new keys unlock both fetches for the current location.
	require.Len(t, fetches, 1)
	var kinds []string
	for _, msg := range drain(fetches[0]) {
		switch msg.(type) {
		case weatherFetchedMsg:
			kinds = append(kinds, "weather")
		case marineFetchedMsg:
			kinds = append(kinds, "marine")
		}
	}
	assert.ElementsMatch(t, []string{"weather", "marine"}, kinds)
}

func TestSettings_ChangedKeyRefetches(t *testing.T) {
	m, h := newTestModel(t, fullCreds)

	m, cmd := m.setLocation(london)
	m, _ = deliver(m, drain(cmd))
	require.Equal(t, 1, h.weather.calls)
	require.Equal(t, 1, h.marine.calls)

	creds := models.Credentials{OpenWeatherMap: "rotated-owm", StormGlass: fullCreds.StormGlass}
	m, cmd = m.handleSaved(credentialsSavedMsg{creds: creds})
	assert.Nil(t, m.weather, "data fetched with the old key is dropped")
	assert.True(t, m.loadingWeather)
	assert.False(t, m.loadingMarine, "marine key is unchanged")

	m, _ = deliver(m, drain(cmd))
	assert.Equal(t, 2, h.weather.calls, "cached response must not outlive its key")
	assert.Equal(t, 1, h.marine.calls)
	require.NotNil(t, m.weather)
	assert.False(t, m.loadingWeather)
}

func TestSettings_SaveFailureStaysOpen(t *testing.T) {
	m, h := newTestModel(t, models.Credentials{})
	h.store.err = errors.New("disk full")

	m, _ = typeText(m, "owm")
	m, cmd := step(m, key("enter"))
	m, _ = deliver(m, drain(cmd))

	assert.Equal(t, StateSettings, m.state)
	assert.Equal(t, models.Credentials{}, m.creds)
	assert.Contains(t, m.View(), "disk full")
}

func TestSettings_EscCloses(t *testing.T) {
	m, _ := newTestModel(t, models.Credentials{})
	m, _ = step(m, key("esc"))
	assert.Equal(t, StateDashboard, m.state)

	m, _ = step(m, key("s"))
	assert.Equal(t, StateSettings, m.state)
}

func TestToasts_DismissAndExpire(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)

	m, expireFirst := m.pushToast("One", "first", false)
	m, _ = m.pushToast("Two", "second", true)
	require.Len(t, m.toasts, 2)

	m, _ = step(m, key("x"))
	require.Len(t, m.toasts, 1)
	assert.Equal(t, "One", m.toasts[0].title)

	m, _ = step(m, expireFirst())
	assert.Empty(t, m.toasts)
}

func TestToasts_PushDoesNotShareBacking(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	m.toasts = make([]toast, 1, 4)
	m.toasts[0] = toast{id: 99, title: "Base"}

	a, _ := m.pushToast("A", "first", false)
	b, _ := m.pushToast("B", "second", false)

	require.Len(t, a.toasts, 2)
	require.Len(t, b.toasts, 2)
	assert.Equal(t, "A", a.toasts[1].title)
	assert.Equal(t, "B", b.toasts[1].title)
	assert.Len(t, m.toasts, 1)
}

func TestMarineTabs_Cycle(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)

	m, _ = step(m, key("tab"))
	assert.Equal(t, marine.TabBio, m.marineTab)

	m, _ = step(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = step(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, marine.TabHistorical, m.marineTab)

	m, _ = step(m, key("]"))
	assert.Equal(t, marine.ViewWaves, m.marineView)
	m, _ = step(m, key("["))
	m, _ = step(m, key("["))
	assert.Equal(t, marine.ViewWind, m.marineView)
}

func TestView_RendersEveryMarineTab(t *testing.T) {
	m, _ := newTestModel(t, fullCreds)
	m, cmd := m.setLocation(london)
	m.resolving = false
	m, _ = deliver(m, drain(cmd))

	for _, tab := range marine.Tabs {
		m.marineTab = tab
		view := m.renderMarine()
		assert.Contains(t, view, tab.String(), "tab bar for %s", tab)
	}

	m.marineTab = marine.TabWeather
	assert.Contains(t, m.renderMarine(), "1.2 m")
	assert.Contains(t, m.renderMarine(), marine.Unavailable)
}
