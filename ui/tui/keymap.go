// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/toeirei/frcscout/internal/i18n"
)

type appKeyMap struct {
	Exit key.Binding
	Help key.Binding
}

func (km appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Help, km.Exit}
}

func (km appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Help, km.Exit}}
}

type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	New      key.Binding
	Open     key.Binding
	Delete   key.Binding
	Filter   key.Binding
	Feedback key.Binding
	Quit     key.Binding
}

func (km listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.New, km.Open, km.Delete, km.Filter, km.Quit}
}

func (km listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down},
		{km.New, km.Open, km.Delete},
		{km.Filter, km.Feedback, km.Quit},
	}
}

type editKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Toggle  key.Binding
	Save    key.Binding
	Discard key.Binding
}

func (km editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Next, km.Toggle, km.Save, km.Discard}
}

func (km editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Next, km.Prev}, {km.Toggle, km.Save, km.Discard}}
}

// *KeyMap types implement help.KeyMap
var (
	_ help.KeyMap = appKeyMap{}
	_ help.KeyMap = listKeyMap{}
	_ help.KeyMap = editKeyMap{}
)

// Key maps are built on demand so help texts follow the active language.

func newAppKeyMap() appKeyMap {
	return appKeyMap{
		Exit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", i18n.T("key.exit"))),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", i18n.T("key.help"))),
	}
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", i18n.T("key.up"))),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", i18n.T("key.down"))),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", i18n.T("key.new"))),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", i18n.T("key.open"))),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", i18n.T("key.delete"))),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", i18n.T("key.filter"))),
		Feedback: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", i18n.T("key.feedback"))),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", i18n.T("key.quit"))),
	}
}

func newEditKeyMap() editKeyMap {
	return editKeyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", i18n.T("key.next_field"))),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", i18n.T("key.prev_field"))),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", i18n.T("key.toggle"))),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", i18n.T("key.save"))),
		Discard: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", i18n.T("key.discard"))),
	}
}

// mergedKeyMap shows the bindings of several key maps as one.
type mergedKeyMap []help.KeyMap

func (m mergedKeyMap) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, k := range m {
		if k != nil {
			out = append(out, k.ShortHelp()...)
		}
	}
	return out
}

func (m mergedKeyMap) FullHelp() [][]key.Binding {
	var out [][]key.Binding
	for _, k := range m {
		if k != nil {
			out = append(out, k.FullHelp()...)
		}
	}
	return out
}
