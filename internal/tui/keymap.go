// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/toeirei/opexport/internal/i18n"
)

// keyMap holds the bindings the browser reacts to. Keys not bound here are
// passed to the export path input.
type keyMap struct {
	Quit   key.Binding
	Save   key.Binding
	Up     key.Binding
	Down   key.Binding
	Path   key.Binding
	Toggle key.Binding
	Copy   key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Quit, km.Save, km.Up, km.Toggle}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Quit, km.Save},
		{km.Up, km.Path},
		{km.Toggle, km.Copy},
	}
}

var _ help.KeyMap = keyMap{}

// newKeyMap builds the bindings with help texts in the active language.
func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", i18n.T("controls.quit")),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", i18n.T("controls.save")),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", i18n.T("controls.navigate")),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", i18n.T("controls.navigate")),
		),
		// Path is help-only; left/right reach the text input unbound.
		Path: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", i18n.T("controls.path")),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", i18n.T("controls.toggle")),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", i18n.T("controls.copy")),
		),
	}
}
