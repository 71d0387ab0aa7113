// Package tui provides the Bubble Tea terminal front-end for the SJT catalog.
package tui

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/sjt-catalog/internal/assets"
	"github.com/handiism/sjt-catalog/internal/carousel"
	"github.com/handiism/sjt-catalog/internal/catalog"
	"github.com/handiism/sjt-catalog/internal/config"
	"github.com/handiism/sjt-catalog/internal/contact"
	"github.com/handiism/sjt-catalog/internal/http"
	ioutils "github.com/handiism/sjt-catalog/internal/io"
	"github.com/handiism/sjt-catalog/internal/nav"
	"github.com/handiism/sjt-catalog/internal/view"
)

const maxLogs = 6

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   assets.ProgressLevel
}

// Message types
type (
	// CatalogLoadedMsg carries the result of the dataset fetch.
	CatalogLoadedMsg struct {
		Dataset *catalog.Dataset
		Err     error
	}

	// AssetsLoadedMsg carries preloaded slide backgrounds.
	AssetsLoadedMsg struct {
		Thumbs map[int]*ioutils.Thumbnail
		Events []assets.ProgressEvent
		Err    error
	}

	// TickMsg is a carousel timer firing.
	TickMsg carousel.Tick
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	settings *config.Settings
	logger   *slog.Logger
	keys     keyMap
	help     help.Model
	spinner  spinner.Model

	ctx    context.Context
	cancel context.CancelFunc

	menu   *nav.Menu
	screen nav.Screen

	// Catalog
	source  catalog.Source
	browser *catalog.Browser
	chips   *view.Container
	periods *view.Container
	modules *view.Container
	loading bool
	row     int

	// Carousel
	carousel *carousel.Carousel
	slides   *view.Container
	dots     *view.Container
	thumbs   map[int]*ioutils.Thumbnail
	hovering bool

	// Contact
	form   contactForm
	client *contact.Client

	http *http.Client

	logs    []LogEntry
	verbose bool

	width  int
	height int
}

type deps struct {
	logger    *slog.Logger
	scheduler carousel.Scheduler
	source    catalog.Source
	client    *contact.Client
	http      *http.Client
}

// Option configures a Model.
type Option func(*deps)

// WithLogger sets the logger shared by the catalog and carousel.
func WithLogger(l *slog.Logger) Option {
	return func(d *deps) { d.logger = l }
}

// WithScheduler replaces the carousel timer source.
func WithScheduler(s carousel.Scheduler) Option {
	return func(d *deps) { d.scheduler = s }
}

// WithSource overrides the dataset source derived from settings.
func WithSource(s catalog.Source) Option {
	return func(d *deps) { d.source = s }
}

// WithContactClient overrides the relay client derived from settings.
func WithContactClient(c *contact.Client) Option {
	return func(d *deps) { d.client = c }
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, opts ...Option) (Model, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	d := deps{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		scheduler: carousel.SystemScheduler{},
		http:      http.NewClient(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.source == nil {
		d.source = catalog.SourceFor(settings.DataSource, d.http)
	}
	if d.client == nil && settings.RelayURL != "" {
		d.client = contact.NewClient(settings.RelayURL, d.http)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		settings: settings,
		logger:   d.logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		ctx:      ctx,
		cancel:   cancel,
		menu:     nav.NewMenu(nil),
		source:   d.source,
		chips:    view.NewContainer("entities"),
		periods:  view.NewContainer("periods"),
		modules:  view.NewContainer("modules"),
		loading:  true,
		slides:   view.NewContainer("slides"),
		dots:     view.NewContainer("dots"),
		form:     newContactForm(),
		client:   d.client,
		http:     d.http,
	}
	m.browser = catalog.NewBrowser(m.chips, m.periods, m.modules, catalog.WithLogger(d.logger))

	if slides := settings.ToSlides(); len(slides) > 0 {
		c, err := carousel.New(slides, m.slides, m.dots,
			carousel.WithInterval(settings.CarouselInterval()),
			carousel.WithReducedMotion(settings.ReducedMotion),
			carousel.WithScheduler(d.scheduler),
			carousel.WithLogger(d.logger),
		)
		if err != nil {
			cancel()
			return Model{}, err
		}
		m.carousel = c
	}

	return m, nil
}

// Init starts the dataset fetch, the background preload and the carousel
// tick listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog(), m.loadAssets(), m.waitTick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.FocusMsg:
		if m.carousel != nil && m.screen == nav.ScreenHome {
			m.carousel.SetVisible(true)
		}
		return m, nil

	case tea.BlurMsg:
		if m.carousel != nil {
			m.carousel.SetVisible(false)
		}
		return m, nil

	case TickMsg:
		if m.carousel != nil {
			m.carousel.HandleTick(carousel.Tick(msg))
		}
		return m, m.waitTick()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case CatalogLoadedMsg:
		m.loading = false
		m.browser.Mount(msg.Dataset, msg.Err)
		if msg.Err != nil {
			m.addLog(LogEntry{Message: msg.Err.Error(), Level: assets.LevelError})
			break
		}
		items := make([]nav.Item, 0, msg.Dataset.Len())
		for _, id := range msg.Dataset.Entities() {
			items = append(items, nav.Item{Label: id, Screen: nav.ScreenProducts, Entity: id})
		}
		m.menu.SetProducts(items)
		m.addLog(LogEntry{Message: "Catálogo cargado: " + strconv.Itoa(msg.Dataset.Len()) + " entidades", Level: assets.LevelSuccess})

	case AssetsLoadedMsg:
		for _, ev := range msg.Events {
			m.addLog(LogEntry{Message: ev.Message, Level: ev.Level})
		}
		if msg.Err != nil {
			m.addLog(LogEntry{Message: msg.Err.Error(), Level: assets.LevelError})
			break
		}
		m.thumbs = msg.Thumbs

	case ContactDoneMsg:
		if msg.Err != nil {
			m.logger.Warn("contact submission failed", "error", msg.Err)
		}
		m.form.done(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.close()
		return m, tea.Quit
	}

	typing := m.screen == nav.ScreenContact && !m.menu.Open() && m.form.typing()

	if m.menu.Open() {
		cmd := m.handleMenuKey(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Menu) && (!typing || msg.String() == "f1"):
		m.menu.Toggle()
		return m, nil
	case typing:
		cmd := m.handleContactKey(msg)
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		m.close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Verbose):
		m.verbose = !m.verbose
		return m, nil
	}

	switch m.screen {
	case nav.ScreenHome:
		m.handleHomeKey(msg)
	case nav.ScreenProducts:
		m.handleProductsKey(msg)
	case nav.ScreenContact:
		cmd := m.handleContactKey(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.menu.Escape()
	case key.Matches(msg, m.keys.Menu):
		m.menu.Toggle()
	case key.Matches(msg, m.keys.Up):
		m.menu.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.menu.Move(1)
	case key.Matches(msg, m.keys.Submenu):
		m.menu.ToggleProducts()
	case key.Matches(msg, m.keys.Select):
		return m.activateMenuItem()
	}
	return nil
}

// activateMenuItem follows the entry under the menu cursor. The products
// entry opens its submenu first and navigates on the second press.
func (m *Model) activateMenuItem() tea.Cmd {
	vis := m.menu.Visible()
	c := m.menu.Cursor()
	if c >= len(vis) {
		return nil
	}
	if it := vis[c]; it.Screen == nav.ScreenProducts && it.Entity == "" && m.menu.HasProducts() && !m.menu.ProductsOpen() {
		m.menu.ToggleProducts()
		return nil
	}

	it, ok := m.menu.SelectCursor()
	if !ok {
		return nil
	}
	cmd := m.switchScreen(it.Screen)
	if it.Entity != "" {
		m.browser.SelectEntity(it.Entity)
		m.row = 0
	}
	return cmd
}

// switchScreen changes the visible screen. Leaving the home screen hides
// the carousel; coming back shows it again.
func (m *Model) switchScreen(s nav.Screen) tea.Cmd {
	prev := m.screen
	m.screen = s

	if m.carousel != nil && prev != s {
		switch {
		case prev == nav.ScreenHome:
			m.hovering = false
			m.carousel.SetVisible(false)
		case s == nav.ScreenHome:
			m.carousel.SetVisible(true)
		}
	}

	if s == nav.ScreenContact {
		return m.form.setFocus(m.form.focus)
	}
	return nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) {
	if m.carousel == nil {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.carousel.Prev()
	case key.Matches(msg, m.keys.Next):
		m.carousel.Next()
	case key.Matches(msg, m.keys.GoTo):
		k, _ := strconv.Atoi(msg.String())
		m.carousel.GoTo(k - 1)
	}
}

func (m *Model) handleProductsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.row = 0
	case key.Matches(msg, m.keys.Down):
		m.row = 1
	case key.Matches(msg, m.keys.Prev):
		m.stepSelection(-1)
	case key.Matches(msg, m.keys.Next):
		m.stepSelection(1)
	}
}

// stepSelection moves the focused row's selection by delta without
// wrapping. The browser ignores disabled or unchanged targets.
func (m *Model) stepSelection(delta int) {
	c := m.chips
	if m.row == 1 {
		c = m.periods
	}

	j := c.ActiveIndex() + delta
	if c.ActiveIndex() < 0 {
		j = 0
		if delta < 0 {
			j = c.Len() - 1
		}
	}
	el, ok := c.At(j)
	if !ok || !el.Interactive() {
		return
	}

	if m.row == 0 {
		m.browser.SelectEntity(el.Key)
	} else {
		m.browser.SelectPeriod(el.Key)
	}
}

func (m *Model) handleContactKey(msg tea.KeyMsg) tea.Cmd {
	f := &m.form
	switch {
	case key.Matches(msg, m.keys.NextItem):
		return f.setFocus(f.focus + 1)
	case key.Matches(msg, m.keys.PrevItem):
		return f.setFocus(f.focus - 1)
	case key.Matches(msg, m.keys.Select):
		switch {
		case f.typing():
			return f.setFocus(f.focus + 1)
		case f.focus == focusConsent:
			f.consent = !f.consent
		case f.focus == focusSubmit && !f.sending:
			return f.submit(m.ctx, m.client)
		}
		return nil
	case key.Matches(msg, m.keys.Toggle) && f.focus == focusConsent:
		f.consent = !f.consent
		return nil
	}
	return f.update(msg)
}

// handleMouse maps pointer motion over the carousel to enter/leave events
// and closes the products submenu on a click outside the menu.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress && m.menu.ProductsOpen() && !m.inMenu(msg.Y) {
		m.menu.OutsideClick()
	}

	if m.carousel == nil {
		return
	}
	over := m.screen == nav.ScreenHome && m.overCarousel(msg.Y)
	if over == m.hovering {
		return
	}
	m.hovering = over
	if over {
		m.carousel.PointerEnter()
	} else {
		m.carousel.PointerLeave()
	}
}

func (m *Model) addLog(e LogEntry) {
	if e.Level == assets.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, e)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *Model) close() {
	m.cancel()
	if m.carousel != nil {
		m.carousel.Close()
	}
}

// loadCatalog fetches the dataset off the event loop.
func (m Model) loadCatalog() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		ds, err := catalog.Fetch(ctx, src)
		return CatalogLoadedMsg{Dataset: ds, Err: err}
	}
}

// loadAssets preloads slide backgrounds concurrently.
func (m Model) loadAssets() tea.Cmd {
	if m.carousel == nil {
		return nil
	}

	var reqs []assets.Request
	for i, el := range m.slides.Elements() {
		if el.Background != "" {
			reqs = append(reqs, assets.Request{Index: i, Ref: el.Background})
		}
	}
	if len(reqs) == 0 {
		return nil
	}

	ctx, s, client := m.ctx, m.settings, m.http
	return func() tea.Msg {
		var mu sync.Mutex
		var events []assets.ProgressEvent
		mgr := assets.NewManager(assets.Options{
			MaxConcurrent: s.MaxConcurrentLoads,
			Cols:          s.ThumbnailWidth,
			Rows:          s.ThumbnailHeight,
		}, client, func(ev assets.ProgressEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		})
		thumbs, err := mgr.Load(ctx, reqs)
		return AssetsLoadedMsg{Thumbs: thumbs, Events: events, Err: err}
	}
}

// waitTick blocks until the carousel's timer fires.
func (m Model) waitTick() tea.Cmd {
	if m.carousel == nil {
		return nil
	}
	ticks := m.carousel.Ticks()
	return func() tea.Msg {
		return TickMsg(<-ticks)
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *slog.Logger) error {
	m, err := NewModel(settings, WithLogger(logger))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.close()
	}
	return err
}
