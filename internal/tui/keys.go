package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Menu     key.Binding
	Close    key.Binding
	Submenu  key.Binding
	Up       key.Binding
	Down     key.Binding
	Prev     key.Binding
	Next     key.Binding
	GoTo     key.Binding
	Select   key.Binding
	Toggle   key.Binding
	NextItem key.Binding
	PrevItem key.Binding
	Verbose  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "salir")),
		Menu:     key.NewBinding(key.WithKeys("f1", "m"), key.WithHelp("m/f1", "menú")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cerrar")),
		Submenu:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "productos")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "arriba")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "abajo")),
		Prev:     key.NewBinding(key.WithKeys("left", "h", "["), key.WithHelp("←", "anterior")),
		Next:     key.NewBinding(key.WithKeys("right", "l", "]"), key.WithHelp("→", "siguiente")),
		GoTo:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "ir al slide")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "elegir")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("espacio", "marcar")),
		NextItem: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "siguiente campo")),
		PrevItem: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "campo anterior")),
		Verbose:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "detalle")),
	}
}
