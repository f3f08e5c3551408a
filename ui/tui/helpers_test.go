package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/frcscout/internal/db"
	"github.com/toeirei/frcscout/internal/i18n"
	"github.com/toeirei/frcscout/internal/model"
)

func initTestStore(t *testing.T) *db.Adapter {
	t.Helper()
	i18n.Init("en")
	a, err := db.New(context.Background(), filepath.Join(t.TempDir(), "scout.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func seedNote(t *testing.T, s *db.Adapter, f model.NoteFields) int64 {
	t.Helper()
	id, err := s.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return id
}

func startApp(t *testing.T, s *db.Adapter) *appModel {
	t.Helper()
	app := newApp(newListScreen(context.Background(), s, Options{FeedbackRecipient: "lead@example.org"}))
	_ = app.Init()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyCtrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
)

// press sends msg and feeds back a resulting push or pop request, the way
// the program loop would. Other commands (cursor blinks) are not run.
func press(t *testing.T, app *appModel, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := app.Update(msg)
	if cmd == nil {
		return nil
	}
	if isNavigation(msg) {
		return cmd
	}
	switch next := runNavigation(cmd).(type) {
	case PushMsg, PopMsg:
		_, cmd = app.Update(next)
	}
	return cmd
}

// send delivers msg without running the returned command. Use it for keys
// that never navigate.
func send(app *appModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		app.Update(msg)
	}
}

// typeText sends each rune of s as its own key press.
func typeText(app *appModel, s string) {
	for _, r := range s {
		send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func isNavigation(msg tea.Msg) bool {
	switch msg.(type) {
	case PushMsg, PopMsg:
		return true
	}
	return false
}

// runNavigation executes cmd only when it is one of the router commands,
// which return immediately.
func runNavigation(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(100 * time.Millisecond):
		// Cursor blink timers are not ours.
		return nil
	}
}

func listOf(t *testing.T, app *appModel) *listScreen {
	t.Helper()
	l, ok := app.router.stack[0].(*listScreen)
	if !ok {
		t.Fatalf("bottom screen is %T", app.router.stack[0])
	}
	return l
}

func editorOf(t *testing.T, app *appModel) *editScreen {
	t.Helper()
	e, ok := app.router.active().(*editScreen)
	if !ok {
		t.Fatalf("active screen is %T, want *editScreen", app.router.active())
	}
	return e
}

func allNotes(t *testing.T, s *db.Adapter) []model.Note {
	t.Helper()
	notes, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return notes
}
