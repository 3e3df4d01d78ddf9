package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Simulate key.Binding
	Critical key.Binding
	Random   key.Binding
	More     key.Binding
	Less     key.Binding
	Reset    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run / load"),
	),
	Simulate: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "simulate"),
	),
	Critical: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "critical"),
	),
	Random: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "toggle random"),
	),
	More: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "load +5%"),
	),
	Less: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "load -5%"),
	),
	Reset: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reset grid"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Simulate, k.Critical, k.Random, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Simulate, k.Critical, k.Random, k.More, k.Less, k.Reset},
		{k.Up, k.Down, k.Quit},
	}
}
