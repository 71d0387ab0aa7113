package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/sjt-catalog/internal/assets"
	"github.com/handiism/sjt-catalog/internal/carousel"
	"github.com/handiism/sjt-catalog/internal/nav"
	"github.com/handiism/sjt-catalog/internal/view"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#6C757D"))

	selectedChipStyle = chipStyle.
				BorderForeground(lipgloss.Color("#F8B500")).
				Foreground(lipgloss.Color("#F8B500")).
				Bold(true)

	cardStyle = lipgloss.NewStyle().
			Width(24).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#A8DADC"))

	menuItemStyle = lipgloss.NewStyle().PaddingLeft(2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

const cardsPerRow = 3

// View renders the UI.
func (m Model) View() string {
	blocks := []string{m.viewHeader(), m.viewNav()}

	switch m.screen {
	case nav.ScreenHome:
		blocks = append(blocks, m.viewCarousel())
	case nav.ScreenProducts:
		blocks = append(blocks, m.viewProducts())
	case nav.ScreenContact:
		blocks = append(blocks, m.viewContact())
	}

	if logs := m.renderLogs(); logs != "" {
		blocks = append(blocks, logs)
	}
	blocks = append(blocks, m.help.ShortHelpView(m.helpKeys()))

	return strings.Join(blocks, "\n\n")
}

func (m Model) viewHeader() string {
	return titleStyle.Render("SJT ERP") + "\n" + dimStyle.Render("Catálogo de productos y servicios")
}

func (m Model) viewNav() string {
	var b strings.Builder

	for i, s := range []nav.Screen{nav.ScreenHome, nav.ScreenProducts, nav.ScreenContact} {
		if i > 0 {
			b.WriteString(dimStyle.Render(" · "))
		}
		if s == m.screen {
			b.WriteString(cursorStyle.Render(s.String()))
		} else {
			b.WriteString(subtitleStyle.Render(s.String()))
		}
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("   ☰ aria-expanded=%s", m.menu.AriaExpanded())))

	if !m.menu.Open() {
		return b.String()
	}

	for i, it := range m.menu.Visible() {
		b.WriteString("\n")
		label := it.Label
		if it.Entity != "" {
			label = "  " + label
		} else if it.Screen == nav.ScreenProducts {
			label += dimStyle.Render(" (aria-expanded=" + m.menu.ProductsAriaExpanded() + ")")
		}
		if i == m.menu.Cursor() {
			b.WriteString(cursorStyle.Render("› ") + label)
		} else {
			b.WriteString(menuItemStyle.Render(label))
		}
	}
	return b.String()
}

// contentTop is the terminal row the screen content starts on.
func (m Model) contentTop() int {
	return lipgloss.Height(m.viewHeader()) + 1 + lipgloss.Height(m.viewNav()) + 1
}

func (m Model) inMenu(y int) bool {
	top := lipgloss.Height(m.viewHeader()) + 1
	return y >= top && y < top+lipgloss.Height(m.viewNav())
}

func (m Model) overCarousel(y int) bool {
	if m.carousel == nil {
		return false
	}
	top := m.contentTop()
	return y >= top && y < top+lipgloss.Height(m.viewCarousel())
}

func (m Model) viewCarousel() string {
	if m.carousel == nil {
		return dimStyle.Render("Sin diapositivas.")
	}

	idx := m.slides.ActiveIndex()
	slide, _ := m.slides.At(idx)

	var b strings.Builder
	b.WriteString(subtitleStyle.Bold(true).Render(slide.Label))
	if slide.Caption != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(slide.Caption))
	}
	if thumb := m.renderThumb(idx); thumb != "" {
		b.WriteString("\n\n")
		b.WriteString(thumb)
	}

	var dots []string
	for _, d := range m.dots.Elements() {
		if d.Active {
			dots = append(dots, cursorStyle.Render("●"))
		} else {
			dots = append(dots, dimStyle.Render("○"))
		}
	}

	state := "pausa"
	switch {
	case !m.carousel.Autoplay():
		state = "sin autoavance"
	case m.carousel.State() == carousel.StateRunning:
		state = "autoavance"
	}

	return boxStyle.Render(b.String()) + "\n" +
		strings.Join(dots, " ") + "  " +
		dimStyle.Render(fmt.Sprintf("%d/%d · %s", idx+1, m.carousel.Len(), state))
}

// renderThumb draws a background with half-block cells: the glyph's
// foreground is the upper pixel and its background the lower one.
func (m Model) renderThumb(idx int) string {
	t := m.thumbs[idx]
	if t == nil {
		return ""
	}

	var b strings.Builder
	for row := 0; row < t.Rows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		for col := 0; col < t.Cols; col++ {
			top, bottom := t.Cell(col, row)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render("▀"))
		}
	}
	return b.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

func (m Model) viewProducts() string {
	if m.loading {
		return m.spinner.View() + " " + subtitleStyle.Render("Cargando catálogo...")
	}

	var b strings.Builder

	if m.chips.Len() > 0 {
		b.WriteString(m.rowMarker(0))
		b.WriteString(renderChips(m.chips))
		b.WriteString("\n")
	}
	if m.periods.Len() > 0 {
		b.WriteString(m.rowMarker(1))
		b.WriteString(renderChips(m.periods))
		b.WriteString("\n")
	}
	b.WriteString(renderModules(m.modules))

	return b.String()
}

func (m Model) rowMarker(row int) string {
	if m.row == row {
		return cursorStyle.Render("› ")
	}
	return "  "
}

func renderChips(c *view.Container) string {
	parts := make([]string, 0, c.Len())
	for _, el := range c.Elements() {
		switch {
		case el.Disabled:
			parts = append(parts, chipStyle.Faint(true).Render(el.Label))
		case el.Active:
			parts = append(parts, selectedChipStyle.Render(el.Label))
		default:
			parts = append(parts, chipStyle.Render(el.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func renderModules(c *view.Container) string {
	els := c.Elements()
	if len(els) == 1 && els[0].Role != view.RoleCard {
		style := dimStyle
		if els[0].Role == view.RoleError {
			style = errorStyle
		}
		return style.Render(els[0].Label)
	}

	var rows []string
	for i := 0; i < len(els); i += cardsPerRow {
		end := min(i+cardsPerRow, len(els))
		cards := make([]string, 0, end-i)
		for _, el := range els[i:end] {
			cards = append(cards, cardStyle.Render(el.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewContact() string {
	f := m.form
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Contáctanos"))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		marker := "  "
		if f.focus == i {
			marker = cursorStyle.Render("› ")
		}
		b.WriteString(fmt.Sprintf("%s%-9s %s\n", marker, fieldLabels[i]+":", in.View()))
	}

	check := "[ ]"
	if f.consent {
		check = "[×]"
	}
	marker := "  "
	if f.focus == focusConsent {
		marker = cursorStyle.Render("› ")
	}
	b.WriteString(fmt.Sprintf("\n%s%s Acepto el tratamiento de mis datos personales\n", marker, check))

	marker = "  "
	if f.focus == focusSubmit {
		marker = cursorStyle.Render("› ")
	}
	b.WriteString(fmt.Sprintf("%s%s\n", marker, selectedChipStyle.Render("Enviar")))

	if f.status != "" {
		b.WriteString("\n")
		if f.statusErr {
			b.WriteString(errorStyle.Render(f.status))
		} else {
			b.WriteString(successStyle.Render(f.status))
		}
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case assets.LevelError:
			style = errorStyle
			prefix = "✗"
		case assets.LevelWarning:
			style = warningStyle
			prefix = "!"
		case assets.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case assets.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) helpKeys() []key.Binding {
	k := m.keys
	if m.menu.Open() {
		return []key.Binding{k.Up, k.Down, k.Select, k.Submenu, k.Close}
	}
	switch m.screen {
	case nav.ScreenHome:
		return []key.Binding{k.Prev, k.Next, k.GoTo, k.Menu, k.Verbose, k.Quit}
	case nav.ScreenProducts:
		return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Menu, k.Quit}
	}
	return []key.Binding{k.NextItem, k.PrevItem, k.Select, k.Toggle, k.Menu}
}
