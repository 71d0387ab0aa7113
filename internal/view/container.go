package view

// Role identifies what an element represents inside a container.
type Role int

const (
	RoleChip Role = iota
	RolePeriod
	RoleCard
	RolePlaceholder
	RoleError
	RoleSlide
	RoleDot
)

// String returns the role name used in logs and test output.
func (r Role) String() string {
	switch r {
	case RoleChip:
		return "chip"
	case RolePeriod:
		return "period"
	case RoleCard:
		return "card"
	case RolePlaceholder:
		return "placeholder"
	case RoleError:
		return "error"
	case RoleSlide:
		return "slide"
	case RoleDot:
		return "dot"
	}
	return "unknown"
}

// Element is a single rendered item.
type Element struct {
	// Role is what the element represents.
	Role Role

	// Label is the visible text.
	Label string

	// Key identifies the data item behind the element (entity id, period id,
	// slide index). Empty for placeholders.
	Key string

	// Active marks the selected or current element.
	Active bool

	// Disabled marks a control that cannot be selected.
	Disabled bool

	// AriaLabel is the accessible label, when it differs from Label.
	AriaLabel string

	// Caption is secondary text (slide captions).
	Caption string

	// Background is an optional image reference.
	Background string
}

// Interactive reports whether the element accepts selection events.
func (e Element) Interactive() bool {
	switch e.Role {
	case RoleChip, RolePeriod, RoleDot:
		return !e.Disabled
	}
	return false
}

// Container holds the current content of one addressable region.
type Container struct {
	name     string
	elements []Element
	renders  int
}

// NewContainer creates an empty container.
func NewContainer(name string) *Container {
	return &Container{name: name}
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// Replace discards the current content and installs els in order.
func (c *Container) Replace(els ...Element) {
	c.elements = append(make([]Element, 0, len(els)), els...)
	c.renders++
}

// Clear removes all content.
func (c *Container) Clear() {
	c.Replace()
}

// Toggle sets the Active flag of every element to the result of active.
// The structure is left untouched.
func (c *Container) Toggle(active func(i int, el Element) bool) {
	for i := range c.elements {
		c.elements[i].Active = active(i, c.elements[i])
	}
}

// Elements returns a copy of the current content.
func (c *Container) Elements() []Element {
	out := make([]Element, len(c.elements))
	copy(out, c.elements)
	return out
}

// Len returns the number of elements.
func (c *Container) Len() int {
	return len(c.elements)
}

// At returns the element at index i.
func (c *Container) At(i int) (Element, bool) {
	if i < 0 || i >= len(c.elements) {
		return Element{}, false
	}
	return c.elements[i], true
}

// ActiveIndex returns the index of the first active element, or -1.
func (c *Container) ActiveIndex() int {
	for i, el := range c.elements {
		if el.Active {
			return i
		}
	}
	return -1
}

// CountActive returns how many elements carry the Active flag.
func (c *Container) CountActive() int {
	n := 0
	for _, el := range c.elements {
		if el.Active {
			n++
		}
	}
	return n
}

// Interactive returns the number of elements that accept selection.
func (c *Container) Interactive() int {
	n := 0
	for _, el := range c.elements {
		if el.Interactive() {
			n++
		}
	}
	return n
}

// Renders returns how many times the content has been replaced.
func (c *Container) Renders() int {
	return c.renders
}
