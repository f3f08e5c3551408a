// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/toeirei/frcscout/internal/model"
)

// NoteStore is the CRUD contract the user interfaces depend on. *Adapter
// implements it.
type NoteStore interface {
	Create(ctx context.Context, f model.NoteFields) (int64, error)
	Update(ctx context.Context, id int64, f model.NoteFields) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FetchAll(ctx context.Context, columns ...string) (*Cursor, error)
	FetchOne(ctx context.Context, id int64) (*Cursor, error)
	Get(ctx context.Context, id int64) (model.Note, error)
	List(ctx context.Context) ([]model.Note, error)
}

var _ NoteStore = (*Adapter)(nil)
