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
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/frcscout/internal/db"
	"github.com/toeirei/frcscout/internal/i18n"
	"github.com/toeirei/frcscout/internal/logging"
	"github.com/toeirei/frcscout/internal/model"
	"github.com/toeirei/frcscout/ui/tui/util"
)

// Focus order of the edit form.
const (
	focusName = iota
	focusNumber
	focusShooting
	focusClimbing
	focusDefense
	focusNotes
	focusConfirm
	focusCount
)

// editScreen edits one note. A screen opened with db.NoID holds a draft
// that is created on the first save; every later save updates that row.
type editScreen struct {
	ctx   context.Context
	store db.NoteStore
	scope *db.Scope
	keys  editKeyMap
	size  util.Size

	id        int64
	lastSaved model.NoteFields
	loaded    bool
	loadErr   error
	discarded bool
	closeErr  error

	name   textinput.Model
	number textinput.Model
	play   model.Gameplay
	notes  textarea.Model
	focus  int

	status string
	err    error
}

func newEditScreen(ctx context.Context, store db.NoteStore, id int64) *editScreen {
	name := textinput.New()
	name.Placeholder = i18n.T("edit.name_placeholder")
	name.CharLimit = 128
	name.Width = 40
	name.Cursor.Style = focusedStyle

	number := textinput.New()
	number.Placeholder = i18n.T("edit.number_placeholder")
	number.CharLimit = 16
	number.Width = 10
	number.Cursor.Style = focusedStyle

	notes := textarea.New()
	notes.Placeholder = i18n.T("edit.notes_placeholder")
	notes.ShowLineNumbers = false
	notes.SetWidth(60)
	notes.SetHeight(6)

	return &editScreen{
		ctx:    ctx,
		store:  store,
		scope:  db.NewScope(),
		keys:   newEditKeyMap(),
		id:     id,
		name:   name,
		number: number,
		notes:  notes,
	}
}

func (m *editScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Resume fills the form from the store the first time an existing note is
// shown. The cursor is released as soon as the fields are read.
func (m *editScreen) Resume() tea.Cmd {
	if m.id != db.NoID && !m.loaded {
		m.loadErr = m.populate()
		m.err = m.loadErr
	}
	m.loaded = true
	return m.setFocus(m.focus)
}

func (m *editScreen) populate() error {
	defer func() {
		if err := m.scope.Release(); err != nil {
			logging.Warnf("edit: releasing cursor: %v", err)
		}
	}()
	c, err := m.store.FetchOne(m.ctx, m.id)
	if err != nil {
		return err
	}
	m.scope.Manage(c)

	var f model.NoteFields
	for col, dst := range map[string]*string{db.ColName: &f.Name, db.ColNumber: &f.Number, db.ColNotes: &f.Notes} {
		if *dst, err = c.String(col); err != nil {
			return err
		}
	}
	for col, dst := range map[string]*bool{db.ColShooting: &f.Play.Shooting, db.ColClimbing: &f.Play.Climbing, db.ColDefense: &f.Play.Defense} {
		if *dst, err = c.Bool(col); err != nil {
			return err
		}
	}
	m.setFields(f)
	m.lastSaved = f
	return nil
}

// Pause saves the form unless the user discarded it. A failed save is kept
// for CloseErr.
func (m *editScreen) Pause() {
	m.closeErr = nil
	if m.discarded || m.loadErr != nil {
		return
	}
	if err := m.save(); err != nil {
		logging.Errorf("edit: saving note on close: %v", err)
		m.closeErr = fmt.Errorf("%s: %w", i18n.T("edit.close_save_failed"), err)
	}
}

func (m *editScreen) CloseErr() error { return m.closeErr }

func (m *editScreen) Destroy() {
	if err := m.scope.Release(); err != nil {
		logging.Warnf("edit: releasing cursor: %v", err)
	}
}

func (m *editScreen) KeyMap() help.KeyMap { return m.keys }

func (m *editScreen) CapturesText() bool {
	return m.focus == focusName || m.focus == focusNumber || m.focus == focusNotes
}

func (m *editScreen) fields() model.NoteFields {
	return model.NoteFields{
		Name:   m.name.Value(),
		Number: m.number.Value(),
		Notes:  m.notes.Value(),
		Play:   m.play,
	}
}

func (m *editScreen) setFields(f model.NoteFields) {
	m.name.SetValue(f.Name)
	m.name.CursorEnd()
	m.number.SetValue(f.Number)
	m.number.CursorEnd()
	m.notes.SetValue(f.Notes)
	m.play = f.Play
}

// save persists the form. A blank draft is not created and an unchanged
// form is not written again.
func (m *editScreen) save() error {
	f := m.fields()
	if m.id == db.NoID {
		if f.IsEmpty() {
			return nil
		}
		id, err := m.store.Create(m.ctx, f)
		if err != nil {
			return err
		}
		m.id = id
		m.lastSaved = f
		return nil
	}
	if f == m.lastSaved {
		return nil
	}
	ok, err := m.store.Update(m.ctx, m.id, f)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", db.ErrNotFound, m.id)
	}
	m.lastSaved = f
	return nil
}

func (m *editScreen) setFocus(i int) tea.Cmd {
	m.focus = i
	m.name.Blur()
	m.number.Blur()
	m.notes.Blur()
	m.name.PromptStyle, m.number.PromptStyle = lipgloss.NewStyle(), lipgloss.NewStyle()
	switch i {
	case focusName:
		m.name.PromptStyle = focusedStyle
		return m.name.Focus()
	case focusNumber:
		m.number.PromptStyle = focusedStyle
		return m.number.Focus()
	case focusNotes:
		return m.notes.Focus()
	}
	return nil
}

func (m *editScreen) toggle() {
	switch m.focus {
	case focusShooting:
		m.play.Shooting = !m.play.Shooting
	case focusClimbing:
		m.play.Climbing = !m.play.Climbing
	case focusDefense:
		m.play.Defense = !m.play.Defense
	}
}

func (m *editScreen) isCheckbox() bool {
	return m.focus >= focusShooting && m.focus <= focusDefense
}

func (m *editScreen) confirm() tea.Cmd {
	if err := m.save(); err != nil {
		m.err = err
		return nil
	}
	return Pop()
}

func (m *editScreen) Update(msg tea.Msg) tea.Cmd {
	if m.size.Update(msg) {
		m.notes.SetWidth(util.Clamp(20, m.size.Width-8, 100))
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	inNotes := m.focus == focusNotes
	arrow := keyMsg.String() == "up" || keyMsg.String() == "down"
	switch {
	case key.Matches(keyMsg, m.keys.Discard):
		m.discarded = true
		return Pop()
	case key.Matches(keyMsg, m.keys.Save):
		if err := m.save(); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.status = i18n.T("edit.saved")
		}
		return nil
	case key.Matches(keyMsg, m.keys.Next) && !(inNotes && arrow):
		return m.setFocus(util.Wrap(m.focus, 1, focusCount))
	case key.Matches(keyMsg, m.keys.Prev) && !(inNotes && arrow):
		return m.setFocus(util.Wrap(m.focus, -1, focusCount))
	case m.isCheckbox() && (key.Matches(keyMsg, m.keys.Toggle) || keyMsg.String() == "enter"):
		m.toggle()
		return nil
	case m.focus == focusConfirm && keyMsg.String() == "enter":
		return m.confirm()
	case (m.focus == focusName || m.focus == focusNumber) && keyMsg.String() == "enter":
		return m.setFocus(m.focus + 1)
	}
	m.status = ""
	return m.updateFocused(msg)
}

func (m *editScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusNumber:
		m.number, cmd = m.number.Update(msg)
	case focusNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return cmd
}

func (m *editScreen) View() string {
	var b strings.Builder
	title := i18n.T("edit.title_new")
	if m.id != db.NoID {
		title = i18n.T("edit.title_edit")
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(i18n.T("edit.name")) + m.name.View() + "\n")
	b.WriteString(labelStyle.Render(i18n.T("edit.number")) + m.number.View() + "\n\n")

	b.WriteString(i18n.T("edit.gameplay") + "\n")
	b.WriteString(m.checkbox(focusShooting, i18n.T("edit.shooting"), m.play.Shooting) + "\n")
	b.WriteString(m.checkbox(focusClimbing, i18n.T("edit.climbing"), m.play.Climbing) + "\n")
	b.WriteString(m.checkbox(focusDefense, i18n.T("edit.defense"), m.play.Defense) + "\n\n")

	b.WriteString(i18n.T("edit.notes") + "\n")
	b.WriteString(m.notes.View() + "\n")

	button := buttonStyle
	if m.focus == focusConfirm {
		button = activeButtonStyle
	}
	b.WriteString(button.Render(i18n.T("edit.confirm")))

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render(i18n.T("error.prefix", m.err)))
	} else if m.status != "" {
		b.WriteString("\n\n" + successStyle.Render(m.status))
	}
	return b.String()
}

func (m *editScreen) checkbox(idx int, label string, checked bool) string {
	box := "[ ] "
	if checked {
		box = "[x] "
	}
	if m.focus == idx {
		return selectedItemStyle.Render("▸ " + box + label)
	}
	return itemStyle.Render(box + label)
}
