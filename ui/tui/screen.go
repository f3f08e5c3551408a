// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is one full-window view on the router's stack. The router calls the
// lifecycle hooks in a fixed order: Init once after the push, Resume whenever
// the screen becomes the top, Pause when it stops being the top, and Destroy
// once when it is popped. Destroy must release every resource the screen
// acquired.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) tea.Cmd
	View() string
	Resume() tea.Cmd
	Pause()
	Destroy()
	KeyMap() help.KeyMap
}

// closeErrorer is implemented by screens whose last Pause can fail, such as
// an editor that could not save its draft. The router hands these errors
// back when the program shuts down.
type closeErrorer interface {
	CloseErr() error
}

// PushMsg asks the router to put Screen on top of the stack.
type PushMsg struct {
	Screen Screen
}

// PopMsg asks the router to close the top screen.
type PopMsg struct{}

// Push returns a command that opens s on top of the current screen.
func Push(s Screen) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: s} }
}

// Pop returns a command that closes the current screen. Popping the last
// screen quits the program.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopMsg{} }
}
