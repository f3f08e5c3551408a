// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/frcscout/ui/tui/util"
)

// router owns the screen stack and drives the lifecycle hooks.
type router struct {
	size  util.Size
	stack []Screen
}

func newRouter(initial Screen) *router {
	return &router{stack: []Screen{initial}}
}

func (r *router) active() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *router) depth() int { return len(r.stack) }

// start initializes the bottom screen.
func (r *router) start() tea.Cmd {
	return r.activate()
}

func (r *router) activate() tea.Cmd {
	s := r.active()
	cmds := []tea.Cmd{s.Init()}
	if r.size.Known() {
		cmds = append(cmds, s.Update(r.size.ToMsg()))
	}
	cmds = append(cmds, s.Resume())
	return tea.Batch(cmds...)
}

func (r *router) Update(msg tea.Msg) tea.Cmd {
	if r.size.Update(msg) {
		return r.active().Update(msg)
	}
	switch msg := msg.(type) {
	case PushMsg:
		return r.push(msg.Screen)
	case PopMsg:
		return r.pop()
	}
	if s := r.active(); s != nil {
		return s.Update(msg)
	}
	return nil
}

func (r *router) push(s Screen) tea.Cmd {
	if s == nil {
		return nil
	}
	if top := r.active(); top != nil {
		top.Pause()
	}
	r.stack = append(r.stack, s)
	return r.activate()
}

func (r *router) pop() tea.Cmd {
	top := r.active()
	if top == nil {
		return tea.Quit
	}
	top.Pause()
	top.Destroy()
	r.stack = r.stack[:len(r.stack)-1]
	if len(r.stack) == 0 {
		return tea.Quit
	}
	next := r.active()
	var cmds []tea.Cmd
	if r.size.Known() {
		// The terminal may have been resized while next was covered.
		cmds = append(cmds, next.Update(r.size.ToMsg()))
	}
	return tea.Batch(append(cmds, next.Resume())...)
}

// closeAll pauses and destroys every screen from the top down and returns
// the errors the screens reported while closing.
func (r *router) closeAll() error {
	var errs []error
	for len(r.stack) > 0 {
		top := r.stack[len(r.stack)-1]
		top.Pause()
		if ce, ok := top.(closeErrorer); ok {
			errs = append(errs, ce.CloseErr())
		}
		top.Destroy()
		r.stack = r.stack[:len(r.stack)-1]
	}
	return errors.Join(errs...)
}

func (r *router) View() string {
	if s := r.active(); s != nil {
		return s.View()
	}
	return ""
}
