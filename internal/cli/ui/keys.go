package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	LeftRail   key.Binding
	RightRail  key.Binding
	CursorUp   key.Binding
	CursorDown key.Binding
	Install    key.Binding
	Confirm    key.Binding
	Quit       key.Binding
	Help       key.Binding
	Close      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		LeftRail:   key.NewBinding(key.WithKeys("left", "h")),
		RightRail:  key.NewBinding(key.WithKeys("right", "l")),
		CursorUp:   key.NewBinding(key.WithKeys("up", "k")),
		CursorDown: key.NewBinding(key.WithKeys("down", "j")),
		Install:    key.NewBinding(key.WithKeys("i")),
		Confirm:    key.NewBinding(key.WithKeys("y", "enter")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Help:       key.NewBinding(key.WithKeys("?")),
		Close:      key.NewBinding(key.WithKeys("esc", "n")),
	}
}
