// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toeirei/frcscout/internal/model"
)

// newTestAdapter opens a file-backed adapter under t.TempDir and closes it
// when the test ends.
func newTestAdapter(t *testing.T, opts ...Option) *Adapter {
	t.Helper()
	a := NewAdapter(filepath.Join(t.TempDir(), "scout.db"), opts...)
	require.NoError(t, a.Open(context.Background()))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func fields(name, number, notes string) model.NoteFields {
	return model.NoteFields{Name: name, Number: number, Notes: notes}
}

// mustCreate inserts a note and fails the test on error.
func mustCreate(t *testing.T, a *Adapter, f model.NoteFields) int64 {
	t.Helper()
	id, err := a.Create(context.Background(), f)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))
	return id
}
