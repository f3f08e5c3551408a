// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/frcscout/internal/db"
	"github.com/toeirei/frcscout/internal/feedback"
	"github.com/toeirei/frcscout/internal/i18n"
	"github.com/toeirei/frcscout/internal/logging"
	"github.com/toeirei/frcscout/internal/model"
	"github.com/toeirei/frcscout/ui/tui/util"
)

// listColumns is the projection the list needs.
var listColumns = []string{db.ColID, db.ColName, db.ColNumber}

// copyToClipboard is replaced in tests.
var copyToClipboard = func(m feedback.Message) error { return m.CopyToClipboard() }

// listScreen shows every note and is the bottom of the stack.
type listScreen struct {
	ctx   context.Context
	store db.NoteStore
	opts  Options
	scope *db.Scope
	keys  listKeyMap
	size  util.Size

	notes     []model.Note
	displayed []model.Note
	cursor    int

	filter    textinput.Model
	filtering bool

	confirmDelete bool
	status        string
	err           error
}

func newListScreen(ctx context.Context, store db.NoteStore, opts Options) *listScreen {
	fi := textinput.New()
	fi.Prompt = i18n.T("list.filter_prompt")
	fi.Cursor.Style = focusedStyle
	fi.CharLimit = 64
	return &listScreen{
		ctx:    ctx,
		store:  store,
		opts:   opts,
		scope:  db.NewScope(),
		keys:   newListKeyMap(),
		filter: fi,
	}
}

func (m *listScreen) Init() tea.Cmd { return nil }

// Resume reloads the notes; whatever the screen above changed shows up here.
func (m *listScreen) Resume() tea.Cmd {
	m.reload()
	return nil
}

// Pause releases the list cursor while another screen is on top.
func (m *listScreen) Pause() {
	if err := m.scope.Release(); err != nil {
		logging.Warnf("list: releasing cursor: %v", err)
	}
}

func (m *listScreen) Destroy() {
	m.Pause()
}

func (m *listScreen) KeyMap() help.KeyMap { return m.keys }

func (m *listScreen) CapturesText() bool { return m.filtering }

func (m *listScreen) reload() {
	if err := m.scope.Release(); err != nil {
		logging.Warnf("list: releasing cursor: %v", err)
	}
	c, err := m.store.FetchAll(m.ctx, listColumns...)
	if err != nil {
		m.err = err
		return
	}
	m.scope.Manage(c)

	var notes []model.Note
	for c.Next() {
		notes = append(notes, c.Note())
	}
	if err := c.Err(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.notes = notes
	m.rebuildDisplayed()
}

func (m *listScreen) rebuildDisplayed() {
	m.displayed = db.FilterNotes(m.notes, m.filter.Value())
	m.cursor = util.Clamp(0, m.cursor, max(len(m.displayed)-1, 0))
}

func (m *listScreen) selected() (model.Note, bool) {
	if len(m.displayed) == 0 {
		return model.Note{}, false
	}
	return m.displayed[m.cursor], true
}

func (m *listScreen) Update(msg tea.Msg) tea.Cmd {
	if m.size.Update(msg) {
		m.filter.Width = max(m.size.Width-20, 10)
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.filtering {
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return cmd
		}
		return nil
	}

	if m.filtering {
		return m.updateFilter(keyMsg)
	}
	if m.confirmDelete {
		return m.updateConfirmDelete(keyMsg)
	}

	m.status = ""
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = util.Clamp(0, m.cursor-1, max(len(m.displayed)-1, 0))
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = util.Clamp(0, m.cursor+1, max(len(m.displayed)-1, 0))
	case key.Matches(keyMsg, m.keys.New):
		return Push(newEditScreen(m.ctx, m.store, db.NoID))
	case key.Matches(keyMsg, m.keys.Open):
		if n, ok := m.selected(); ok {
			return Push(newEditScreen(m.ctx, m.store, n.ID))
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.confirmDelete = true
		}
	case key.Matches(keyMsg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()
	case key.Matches(keyMsg, m.keys.Feedback):
		msg := feedback.FeatureRequest(m.opts.FeedbackRecipient)
		if err := copyToClipboard(msg); err != nil {
			m.err = fmt.Errorf("%s: %w", i18n.T("list.feedback_failed"), err)
		} else {
			m.err = nil
			m.status = i18n.T("list.feedback_copied")
		}
	case key.Matches(keyMsg, m.keys.Quit):
		return Pop()
	}
	return nil
}

func (m *listScreen) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filter.SetValue("")
		fallthrough
	case "enter":
		m.filtering = false
		m.filter.Blur()
		m.rebuildDisplayed()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.rebuildDisplayed()
	return cmd
}

func (m *listScreen) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	m.confirmDelete = false
	switch msg.String() {
	case "y", "Y":
		n, ok := m.selected()
		if !ok {
			return nil
		}
		deleted, err := m.store.Delete(m.ctx, n.ID)
		switch {
		case err != nil:
			m.err = err
		case !deleted:
			m.err = fmt.Errorf("%s: %w", n, db.ErrNotFound)
		default:
			m.status = i18n.T("list.deleted", n.String())
		}
		m.reload()
	}
	return nil
}

func (m *listScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("list.title")))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.listContentView())

	if m.confirmDelete {
		if n, ok := m.selected(); ok {
			b.WriteString("\n")
			b.WriteString(specialStyle.Render(i18n.T("list.confirm_delete", n.String())))
		}
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(i18n.T("error.prefix", m.err)))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.status))
	}
	return b.String()
}

func (m *listScreen) listContentView() string {
	if len(m.displayed) == 0 {
		if len(m.notes) == 0 {
			return helpStyle.Render(i18n.T("list.empty"))
		}
		return helpStyle.Render(i18n.T("list.no_match"))
	}
	var b strings.Builder
	for i, n := range m.displayed {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("▸ " + n.String()))
		} else {
			b.WriteString(itemStyle.Render(n.String()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
