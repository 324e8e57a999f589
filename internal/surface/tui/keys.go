// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Regenerate key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

func newKeyMap(canReload bool) keyMap {
	k := keyMap{
		Regenerate: key.NewBinding(
			key.WithKeys("u", " "),
			key.WithHelp("u/space", "regenerate"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
	k.Reload.SetEnabled(canReload)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Regenerate, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
