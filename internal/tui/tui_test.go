package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/handiism/sjt-catalog/internal/carousel"
	"github.com/handiism/sjt-catalog/internal/catalog"
	"github.com/handiism/sjt-catalog/internal/config"
	"github.com/handiism/sjt-catalog/internal/contact"
	"github.com/handiism/sjt-catalog/internal/nav"
	"github.com/handiism/sjt-catalog/internal/view"
)

const banks = `{"BankA": {"2023": ["Loans", "Deposits"], "2024": ["Cards"]}, "BankB": {}}`

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(_ time.Duration, f func()) carousel.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

// live returns the one timer that has not been stopped.
func (s *fakeScheduler) live(t *testing.T) *fakeTimer {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out *fakeTimer
	for _, tm := range s.timers {
		if !tm.stopped {
			require.Nil(t, out, "more than one pending timer")
			out = tm
		}
	}
	require.NotNil(t, out, "no pending timer")
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, keyMsg(k))
	}
	return m
}

func newTestModel(t *testing.T, opts ...Option) (Model, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	opts = append([]Option{
		WithScheduler(sched),
		WithSource(catalog.StaticSource{Data: []byte(banks), Kind: catalog.FormatJSON}),
	}, opts...)

	m, err := NewModel(config.DefaultSettings(), opts...)
	require.NoError(t, err)
	t.Cleanup(m.close)
	return m, sched
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, m.loadCatalog()())
	return m
}

func labels(c *view.Container) []string {
	var out []string
	for _, el := range c.Elements() {
		out = append(out, el.Label)
	}
	return out
}

func TestModel_CatalogLoad(t *testing.T) {
	m, _ := newTestModel(t)
	require.True(t, m.loading)

	m = loaded(t, m)
	require.False(t, m.loading)
	require.Equal(t, []string{"BankA", "BankB"}, labels(m.chips))
	require.Equal(t, []string{"2023", "2024"}, labels(m.periods))
	require.Equal(t, []string{"Loans", "Deposits"}, labels(m.modules))
	require.True(t, m.menu.HasProducts())

	// First press on "Productos" opens the submenu, the second navigates.
	m = press(t, m, "m", "down", "enter")
	require.True(t, m.menu.ProductsOpen())
	require.Equal(t, nav.ScreenHome, m.screen)

	m = press(t, m, "enter")
	require.False(t, m.menu.Open())
	require.Equal(t, nav.ScreenProducts, m.screen)
	require.Contains(t, m.View(), "Deposits")
}

func TestModel_SubmenuSelectsEntity(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	m = press(t, m, "m", "right", "down", "down", "down", "enter")
	require.Equal(t, nav.ScreenProducts, m.screen)
	require.Equal(t, "BankB", m.browser.Cursor().Entity)
	require.False(t, m.browser.Cursor().HasPeriod)
}

func TestModel_ProductsNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)
	m.screen = nav.ScreenProducts

	m = press(t, m, "down", "right")
	require.Equal(t, "2024", m.browser.Cursor().Period)
	require.Equal(t, []string{"Cards"}, labels(m.modules))

	// Past the last period nothing changes.
	m = press(t, m, "right")
	require.Equal(t, "2024", m.browser.Cursor().Period)

	m = press(t, m, "up", "right")
	require.Equal(t, "BankB", m.browser.Cursor().Entity)
	require.Equal(t, 1, m.periods.Len())
	el, _ := m.periods.At(0)
	require.True(t, el.Disabled)
	require.Equal(t, []string{catalog.DefaultMessages().NoModules}, labels(m.modules))

	// The disabled placeholder cannot be selected.
	m = press(t, m, "down", "right", "left")
	require.False(t, m.browser.Cursor().HasPeriod)

	// Back on BankA the cleared period resets to the first one.
	m = press(t, m, "up", "left")
	require.Equal(t, "BankA", m.browser.Cursor().Entity)
	require.Equal(t, "2023", m.browser.Cursor().Period)
}

func TestModel_CatalogFailure(t *testing.T) {
	m, _ := newTestModel(t, WithSource(catalog.FileSource{Path: "testdata/missing.json"}))
	m = loaded(t, m)
	m.screen = nav.ScreenProducts

	require.Zero(t, m.chips.Len())
	require.Equal(t, 1, m.modules.Len())
	el, _ := m.modules.At(0)
	require.Equal(t, view.RoleError, el.Role)
	require.Contains(t, m.View(), catalog.DefaultMessages().LoadError)
	require.False(t, m.menu.HasProducts())

	m = press(t, m, "right")
	require.False(t, m.browser.Wired())
}

func TestModel_CarouselKeys(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, 0, m.carousel.Index())

	tests := []struct {
		key  string
		want int
	}{
		{"right", 1},
		{"]", 2},
		{"]", 0},
		{"[", 2},
		{"left", 1},
		{"1", 0},
		{"3", 2},
		{"9", 2},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		require.Equal(t, tt.want, m.carousel.Index(), "after %q", tt.key)
		require.Equal(t, 1, m.dots.CountActive())
	}
}

func TestModel_TickAdvances(t *testing.T) {
	m, sched := newTestModel(t)
	require.Equal(t, carousel.StateRunning, m.carousel.State())

	timer := sched.live(t)
	timer.stopped = true
	go timer.f()
	msg := m.waitTick()()

	m, cmd := update(t, m, msg)
	require.Equal(t, 1, m.carousel.Index())
	require.NotNil(t, cmd)
	require.NotSame(t, timer, sched.live(t))
}

func TestModel_FocusAndBlur(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.BlurMsg{})
	require.Equal(t, carousel.StateIdle, m.carousel.State())

	m, _ = update(t, m, tea.FocusMsg{})
	require.Equal(t, carousel.StateRunning, m.carousel.State())
}

func TestModel_HoverPausesCarousel(t *testing.T) {
	m, _ := newTestModel(t)
	top := m.contentTop()

	m, _ = update(t, m, tea.MouseMsg{X: 2, Y: top + 1, Action: tea.MouseActionMotion})
	require.True(t, m.hovering)
	require.Equal(t, carousel.StateIdle, m.carousel.State())

	// Moving within the carousel is not another enter.
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: top + 2, Action: tea.MouseActionMotion})
	require.Equal(t, carousel.StateIdle, m.carousel.State())

	m, _ = update(t, m, tea.MouseMsg{X: 2, Y: top + 500, Action: tea.MouseActionMotion})
	require.False(t, m.hovering)
	require.Equal(t, carousel.StateRunning, m.carousel.State())
}

func TestModel_LeavingHomeHidesCarousel(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "m", "down", "down", "enter")
	require.Equal(t, nav.ScreenContact, m.screen)
	require.Equal(t, carousel.StateIdle, m.carousel.State())

	// "m" is typed into the focused input; f1 opens the menu.
	m = press(t, m, "m")
	require.False(t, m.menu.Open())
	require.Equal(t, "m", m.form.inputs[0].Value())

	m = press(t, m, "f1", "enter")
	require.Equal(t, nav.ScreenHome, m.screen)
	require.Equal(t, carousel.StateRunning, m.carousel.State())
}

func TestModel_MenuEscapeAndOutsideClick(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	m = press(t, m, "m", "right")
	require.Equal(t, "true", m.menu.AriaExpanded())
	require.Equal(t, "true", m.menu.ProductsAriaExpanded())

	m, _ = update(t, m, tea.MouseMsg{X: 1, Y: 200, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.menu.Open())
	require.False(t, m.menu.ProductsOpen())

	m = press(t, m, "esc")
	require.Equal(t, "false", m.menu.AriaExpanded())
}

func fillContact(m *Model, email string, consent bool) {
	values := []string{"Ana", "Demo", "70000000", "Cooperativa X", email, "Hola"}
	for i, v := range values {
		m.form.inputs[i].SetValue(v)
	}
	m.form.consent = consent
	m.form.setFocus(focusSubmit)
}

func newRelayClient(t *testing.T, sent *[]contact.Message) *contact.Client {
	t.Helper()
	relay := contact.NewRelay(contact.MailerFunc(func(_ context.Context, msg contact.Message) error {
		*sent = append(*sent, msg)
		return nil
	}), contact.RelayConfig{SubjectPrefix: "[Web SJT] ", Redirect: "index.html#contacto"}, nil)
	srv := httptest.NewServer(relay)
	t.Cleanup(srv.Close)
	return contact.NewClient(srv.URL, nil)
}

func TestModel_ContactGateBlocksWithoutConsent(t *testing.T) {
	var sent []contact.Message
	m, _ := newTestModel(t, WithContactClient(newRelayClient(t, &sent)))
	m.screen = nav.ScreenContact

	fillContact(&m, "ana@example.com", false)
	m, cmd := update(t, m, keyMsg("enter"))
	require.Nil(t, cmd)
	require.Equal(t, contact.MsgConsentRequired, m.form.status)
	require.True(t, m.form.statusErr)
	require.Empty(t, sent)
}

func TestModel_ContactSubmit(t *testing.T) {
	var sent []contact.Message
	m, _ := newTestModel(t, WithContactClient(newRelayClient(t, &sent)))
	m.screen = nav.ScreenContact

	fillContact(&m, "not-an-email", true)
	m, cmd := update(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.Equal(t, contact.MsgInvalidEmail, m.form.status)
	require.True(t, m.form.statusErr)

	fillContact(&m, "ana@example.com", true)
	m, cmd = update(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.False(t, m.form.statusErr)
	require.NotEmpty(t, m.form.status)
	require.Len(t, sent, 1)
	require.Equal(t, "[Web SJT] Demo", sent[0].Subject)

	// A delivered form is cleared.
	require.Empty(t, m.form.inputs[0].Value())
	require.False(t, m.form.consent)
}

func TestModel_ConsentToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m.screen = nav.ScreenContact
	m.form.setFocus(focusConsent)

	m = press(t, m, " ")
	require.True(t, m.form.consent)
	m = press(t, m, "enter")
	require.False(t, m.form.consent)
	require.True(t, strings.Contains(m.View(), "[ ]"))
}
