// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/frcscout/internal/db"
)

// Options carries what the screens need besides the store.
type Options struct {
	// FeedbackRecipient is the address used for feature requests.
	FeedbackRecipient string
}

// Run starts the TUI on the note list and blocks until the user quits. An
// editor that fails to save its draft on quit makes Run return that error
// once the terminal is restored.
func Run(ctx context.Context, store db.NoteStore, opts Options) error {
	app := newApp(newListScreen(ctx, store, opts))
	if _, err := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	).Run(); err != nil {
		return err
	}
	return app.err
}
