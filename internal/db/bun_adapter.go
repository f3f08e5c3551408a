package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/toeirei/frcscout/internal/model"
	"github.com/uptrace/bun"
)

// NoteModel maps the `notes` table for Bun queries.
type NoteModel struct {
	bun.BaseModel `bun:"table:notes"`
	ID            int64  `bun:"_id,pk,autoincrement"`
	Name          string `bun:"name"`
	Number        string `bun:"number"`
	Notes         string `bun:"notes"`
	Shooting      bool   `bun:"shooting"`
	Climbing      bool   `bun:"climbing"`
	Defense       bool   `bun:"defense"`
}

func noteModelFromFields(f model.NoteFields) *NoteModel {
	return &NoteModel{
		Name:     f.Name,
		Number:   f.Number,
		Notes:    f.Notes,
		Shooting: f.Play.Shooting,
		Climbing: f.Play.Climbing,
		Defense:  f.Play.Defense,
	}
}

// writableColumns lists the columns Create and Update set for the adapter's
// schema version. Version 1 files have no gameplay columns.
func (a *Adapter) writableColumns() []string {
	var cols []string
	for _, c := range SchemaColumns(a.version) {
		if c != ColID {
			cols = append(cols, c)
		}
	}
	return cols
}

// Create inserts a note and returns its new id. When the insert does not
// take effect it returns NoID and an error wrapping ErrWriteFailed.
func (a *Adapter) Create(ctx context.Context, f model.NoteFields) (int64, error) {
	bdb, err := a.handle()
	if err != nil {
		return NoID, err
	}
	id, err := a.insertNote(ctx, bdb, f)
	if err != nil {
		return NoID, err
	}
	dbLogf("db: created note %d", id)
	return id, nil
}

func (a *Adapter) insertNote(ctx context.Context, idb bun.IDB, f model.NoteFields) (int64, error) {
	m := noteModelFromFields(f)
	if _, err := idb.NewInsert().Model(m).Column(a.writableColumns()...).Returning(ColID).Exec(ctx); err != nil {
		return NoID, fmt.Errorf("%w: insert note: %w", ErrWriteFailed, MapDBError(err))
	}
	if m.ID <= 0 {
		return NoID, fmt.Errorf("%w: insert note: no id assigned", ErrWriteFailed)
	}
	return m.ID, nil
}

// Import inserts notes in one transaction. If any insert fails nothing is
// kept and the error wraps ErrWriteFailed.
func (a *Adapter) Import(ctx context.Context, notes []model.NoteFields) error {
	bdb, err := a.handle()
	if err != nil {
		return err
	}
	err = bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return a.insertAll(ctx, tx, notes)
	})
	if err != nil {
		return err
	}
	dbLogf("db: imported %d notes", len(notes))
	return nil
}

// ReplaceAll deletes every note and inserts notes in their place, in one
// transaction. It returns how many notes were deleted. On failure the store
// is left as it was.
func (a *Adapter) ReplaceAll(ctx context.Context, notes []model.NoteFields) (int, error) {
	bdb, err := a.handle()
	if err != nil {
		return 0, err
	}
	var deleted int64
	err = bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*NoteModel)(nil)).Where("1 = 1").Exec(ctx)
		if err != nil {
			return fmt.Errorf("%w: delete notes: %w", ErrWriteFailed, MapDBError(err))
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return err
		}
		return a.insertAll(ctx, tx, notes)
	})
	if err != nil {
		return 0, err
	}
	dbLogf("db: replaced %d notes with %d", deleted, len(notes))
	return int(deleted), nil
}

func (a *Adapter) insertAll(ctx context.Context, tx bun.Tx, notes []model.NoteFields) error {
	for i, f := range notes {
		if _, err := a.insertNote(ctx, tx, f); err != nil {
			return fmt.Errorf("note %d of %d: %w", i+1, len(notes), err)
		}
	}
	return nil
}

// Update replaces every field of the note with the given id. It reports
// whether a row was updated; an unknown id yields (false, nil).
func (a *Adapter) Update(ctx context.Context, id int64, f model.NoteFields) (bool, error) {
	bdb, err := a.handle()
	if err != nil {
		return false, err
	}
	res, err := bdb.NewUpdate().
		Model(noteModelFromFields(f)).
		Column(a.writableColumns()...).
		Where("? = ?", bun.Ident(ColID), id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: update note %d: %w", ErrWriteFailed, id, MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	dbLogf("db: updated note %d (rows=%d)", id, n)
	return n > 0, nil
}

// Delete removes the note with the given id and reports whether a row was
// removed. Deleting an unknown id yields (false, nil).
func (a *Adapter) Delete(ctx context.Context, id int64) (bool, error) {
	bdb, err := a.handle()
	if err != nil {
		return false, err
	}
	res, err := bdb.NewDelete().
		Model((*NoteModel)(nil)).
		Where("? = ?", bun.Ident(ColID), id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: delete note %d: %w", ErrWriteFailed, id, MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	dbLogf("db: deleted note %d (rows=%d)", id, n)
	return n > 0, nil
}

// FetchAll returns a cursor over every note in store order. With no columns
// the projection is the full schema; unknown names fail with
// ErrFieldNotFound.
func (a *Adapter) FetchAll(ctx context.Context, columns ...string) (*Cursor, error) {
	bdb, err := a.handle()
	if err != nil {
		return nil, err
	}
	cols, err := a.projection(columns)
	if err != nil {
		return nil, err
	}
	rows, err := bdb.NewSelect().Model((*NoteModel)(nil)).Column(cols...).Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	return newCursor(rows, cols), nil
}

// FetchOne returns a cursor positioned on the note with the given id, or
// ErrNotFound.
func (a *Adapter) FetchOne(ctx context.Context, id int64) (*Cursor, error) {
	bdb, err := a.handle()
	if err != nil {
		return nil, err
	}
	cols := SchemaColumns(a.version)
	rows, err := bdb.NewSelect().
		Model((*NoteModel)(nil)).
		Column(cols...).
		Where("? = ?", bun.Ident(ColID), id).
		Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("query note %d: %w", id, err)
	}
	c := newCursor(rows, cols)
	if !c.MoveToFirst() {
		err := c.Err()
		_ = c.Close()
		if err != nil {
			return nil, fmt.Errorf("read note %d: %w", id, err)
		}
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c, nil
}

// Get returns the note with the given id, or ErrNotFound.
func (a *Adapter) Get(ctx context.Context, id int64) (model.Note, error) {
	c, err := a.FetchOne(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	defer func() { _ = c.Close() }()
	return c.Note(), nil
}

// List reads every note into memory in store order.
func (a *Adapter) List(ctx context.Context) ([]model.Note, error) {
	c, err := a.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	var notes []model.Note
	for c.Next() {
		notes = append(notes, c.Note())
	}
	return notes, c.Err()
}

// Count returns the number of live notes.
func (a *Adapter) Count(ctx context.Context) (int, error) {
	bdb, err := a.handle()
	if err != nil {
		return 0, err
	}
	return bdb.NewSelect().Model((*NoteModel)(nil)).Count(ctx)
}

func (a *Adapter) projection(columns []string) ([]string, error) {
	if len(columns) == 0 {
		return SchemaColumns(a.version), nil
	}
	out := make([]string, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if !hasColumn(a.version, c) {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// IsNotFound reports whether err means the requested note does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
