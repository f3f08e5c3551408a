// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/toeirei/frcscout/internal/model"
)

// Cursor is a single-pass view over the rows of one query. Rows are scanned
// lazily as the cursor advances; to start over, issue the query again.
// A Cursor must be closed, either directly or through a Scope.
type Cursor struct {
	rows    *sql.Rows
	columns []string
	index   map[string]int

	cur    model.Note
	pos    int // -1 before the first row
	onRow  bool
	err    error
	closed bool
}

func newCursor(rows *sql.Rows, columns []string) *Cursor {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Cursor{rows: rows, columns: columns, index: index, pos: -1}
}

// Columns returns the projection of the cursor.
func (c *Cursor) Columns() []string {
	return append([]string(nil), c.columns...)
}

// Next advances to the next row and reports whether there is one.
func (c *Cursor) Next() bool {
	if c.closed || c.err != nil {
		c.onRow = false
		return false
	}
	if !c.rows.Next() {
		c.onRow = false
		c.err = c.rows.Err()
		return false
	}
	c.cur = model.Note{}
	if err := c.rows.Scan(c.dests()...); err != nil {
		c.onRow = false
		c.err = fmt.Errorf("scan note: %w", err)
		return false
	}
	c.pos++
	c.onRow = true
	return true
}

// MoveToFirst positions the cursor on the first row. It returns false when
// the result is empty or the cursor has already moved past the first row;
// cursors do not rewind.
func (c *Cursor) MoveToFirst() bool {
	if c.pos == -1 {
		return c.Next()
	}
	return c.pos == 0 && c.onRow
}

// Position is the zero-based index of the current row, -1 before the first.
func (c *Cursor) Position() int { return c.pos }

// Err returns the error, if any, that stopped iteration.
func (c *Cursor) Err() error { return c.err }

// Close releases the underlying rows. It is safe to call more than once.
func (c *Cursor) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	c.onRow = false
	return c.rows.Close()
}

// Note returns the current row. Columns outside the projection are zero.
func (c *Cursor) Note() model.Note {
	return c.cur
}

// String reads a field of the current row as text.
func (c *Cursor) String(col string) (string, error) {
	if err := c.check(col); err != nil {
		return "", err
	}
	switch col {
	case ColID:
		return strconv.FormatInt(c.cur.ID, 10), nil
	case ColName:
		return c.cur.Name, nil
	case ColNumber:
		return c.cur.Number, nil
	case ColNotes:
		return c.cur.Notes, nil
	default:
		b, _ := c.flag(col)
		return strconv.FormatBool(b), nil
	}
}

// Int64 reads the id or a gameplay flag (as 0 or 1) of the current row.
func (c *Cursor) Int64(col string) (int64, error) {
	if err := c.check(col); err != nil {
		return 0, err
	}
	if col == ColID {
		return c.cur.ID, nil
	}
	b, ok := c.flag(col)
	if !ok {
		return 0, fmt.Errorf("%w: %q is text", ErrFieldType, col)
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// Bool reads a gameplay flag of the current row.
func (c *Cursor) Bool(col string) (bool, error) {
	if err := c.check(col); err != nil {
		return false, err
	}
	b, ok := c.flag(col)
	if !ok {
		return false, fmt.Errorf("%w: %q is not a flag", ErrFieldType, col)
	}
	return b, nil
}

func (c *Cursor) check(col string) error {
	if _, ok := c.index[col]; !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, col)
	}
	if !c.onRow {
		return ErrNoRow
	}
	return nil
}

func (c *Cursor) flag(col string) (bool, bool) {
	switch col {
	case ColShooting:
		return c.cur.Play.Shooting, true
	case ColClimbing:
		return c.cur.Play.Climbing, true
	case ColDefense:
		return c.cur.Play.Defense, true
	}
	return false, false
}

// dests maps the projection onto the fields of the current note.
func (c *Cursor) dests() []any {
	out := make([]any, len(c.columns))
	for i, col := range c.columns {
		switch col {
		case ColID:
			out[i] = &c.cur.ID
		case ColName:
			out[i] = &c.cur.Name
		case ColNumber:
			out[i] = &c.cur.Number
		case ColNotes:
			out[i] = &c.cur.Notes
		case ColShooting:
			out[i] = &c.cur.Play.Shooting
		case ColClimbing:
			out[i] = &c.cur.Play.Climbing
		case ColDefense:
			out[i] = &c.cur.Play.Defense
		}
	}
	return out
}
