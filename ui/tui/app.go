// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/frcscout/internal/i18n"
)

// textCapturer is implemented by screens that sometimes route printable keys
// into a text field, so global single-key shortcuts must stand aside.
type textCapturer interface {
	CapturesText() bool
}

// appModel is the tea.Model handed to the program. It routes messages to
// the screen stack and renders the help footer.
type appModel struct {
	router   *router
	keys     appKeyMap
	help     help.Model
	quitting bool
	// err holds what went wrong while closing, e.g. an unsaved draft.
	err error
}

func newApp(initial Screen) *appModel {
	return &appModel{
		router: newRouter(initial),
		keys:   newAppKeyMap(),
		help:   help.New(),
	}
}

func (m *appModel) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(i18n.T("app.title")), m.router.start())
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Exit) {
			// Pausing lets an open editor save its draft before we leave.
			m.err = m.router.closeAll()
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) && !m.capturesText() {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	cmd := m.router.Update(msg)
	if m.router.depth() == 0 {
		m.quitting = true
	}
	return m, cmd
}

func (m *appModel) capturesText() bool {
	tc, ok := m.router.active().(textCapturer)
	return ok && tc.CapturesText()
}

func (m *appModel) View() string {
	if m.quitting {
		return ""
	}
	var keys help.KeyMap = m.keys
	if s := m.router.active(); s != nil {
		keys = mergedKeyMap{s.KeyMap(), m.keys}
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.router.View(),
		"",
		helpStyle.Render(m.help.View(keys)),
	))
}
