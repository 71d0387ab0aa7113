// Package nav holds the site navigation menu state.
package nav

// Screen identifies a top-level destination.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenProducts
	ScreenContact
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "Inicio"
	case ScreenProducts:
		return "Productos"
	case ScreenContact:
		return "Contacto"
	}
	return "?"
}

// Item is one menu entry. Items under the products submenu carry the
// entity they jump to.
type Item struct {
	Label  string
	Screen Screen
	Entity string
}

// Menu is a primary navigation toggle with one products submenu.
type Menu struct {
	items    []Item
	products []Item

	open         bool
	productsOpen bool
	cursor       int
	current      Screen
}

// NewMenu creates a closed menu. products may be empty.
func NewMenu(products []Item) *Menu {
	return &Menu{
		items: []Item{
			{Label: ScreenHome.String(), Screen: ScreenHome},
			{Label: ScreenProducts.String(), Screen: ScreenProducts},
			{Label: ScreenContact.String(), Screen: ScreenContact},
		},
		products: append([]Item(nil), products...),
	}
}

// SetProducts replaces the submenu entries, typically once the catalog loads.
func (m *Menu) SetProducts(products []Item) {
	m.products = append(m.products[:0], products...)
	if m.cursor >= m.Len() {
		m.cursor = 0
	}
}

func (m *Menu) Open() bool         { return m.open }
func (m *Menu) ProductsOpen() bool { return m.productsOpen }
func (m *Menu) Current() Screen    { return m.current }
func (m *Menu) Cursor() int        { return m.cursor }

// HasProducts reports whether the submenu has entries.
func (m *Menu) HasProducts() bool { return len(m.products) > 0 }

// Toggle flips the primary menu. Closing it also closes the submenu.
func (m *Menu) Toggle() {
	m.open = !m.open
	if !m.open {
		m.productsOpen = false
	}
	m.cursor = 0
}

// ToggleProducts flips the products submenu.
func (m *Menu) ToggleProducts() {
	m.productsOpen = !m.productsOpen
	if m.cursor >= m.Len() {
		m.cursor = 0
	}
}

// Escape closes everything.
func (m *Menu) Escape() {
	m.open = false
	m.productsOpen = false
}

// OutsideClick closes the submenu only.
func (m *Menu) OutsideClick() {
	m.productsOpen = false
}

// AriaExpanded mirrors the primary menu state as an attribute value.
func (m *Menu) AriaExpanded() string {
	return ariaBool(m.open)
}

// ProductsAriaExpanded mirrors the submenu state.
func (m *Menu) ProductsAriaExpanded() string {
	return ariaBool(m.productsOpen)
}

func ariaBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Visible lists the entries currently shown, with submenu entries
// following the products item when the submenu is open.
func (m *Menu) Visible() []Item {
	out := make([]Item, 0, len(m.items)+len(m.products))
	for _, it := range m.items {
		out = append(out, it)
		if it.Screen == ScreenProducts && m.productsOpen {
			out = append(out, m.products...)
		}
	}
	return out
}

// Len is the number of visible entries.
func (m *Menu) Len() int {
	n := len(m.items)
	if m.productsOpen {
		n += len(m.products)
	}
	return n
}

// Move shifts the cursor by delta, wrapping.
func (m *Menu) Move(delta int) {
	n := m.Len()
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// Select activates the entry at i and closes the menu. It returns the item
// and false when i is out of range.
func (m *Menu) Select(i int) (Item, bool) {
	vis := m.Visible()
	if i < 0 || i >= len(vis) {
		return Item{}, false
	}
	it := vis[i]
	m.current = it.Screen
	m.open = false
	m.productsOpen = false
	return it, true
}

// SelectCursor selects the entry under the cursor.
func (m *Menu) SelectCursor() (Item, bool) {
	return m.Select(m.cursor)
}
