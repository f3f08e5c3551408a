package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/frcscout/internal/model"
)

func TestCursor_ProjectionAndFieldAccess(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	id := mustCreate(t, a, model.NoteFields{Name: "Cheesy Poofs", Number: "254", Notes: "fast", Play: model.Gameplay{Climbing: true}})

	c, err := a.FetchAll(ctx, ColID, ColName, ColClimbing, ColName)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.Equal(t, []string{ColID, ColName, ColClimbing}, c.Columns(), "duplicates are dropped")

	require.True(t, c.Next())
	gotID, err := c.Int64(ColID)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)

	name, err := c.String(ColName)
	require.NoError(t, err)
	assert.Equal(t, "Cheesy Poofs", name)

	climbing, err := c.Bool(ColClimbing)
	require.NoError(t, err)
	assert.True(t, climbing)
	asInt, err := c.Int64(ColClimbing)
	require.NoError(t, err)
	assert.Equal(t, int64(1), asInt)

	_, err = c.String(ColNotes)
	assert.ErrorIs(t, err, ErrFieldNotFound, "notes is outside the projection")
	_, err = c.Bool(ColName)
	assert.ErrorIs(t, err, ErrFieldType)
	_, err = c.Int64(ColName)
	assert.ErrorIs(t, err, ErrFieldType)

	// Columns outside the projection read as zero values.
	assert.Empty(t, c.Note().Notes)
}

func TestCursor_UnknownColumnFailsFetch(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.FetchAll(context.Background(), ColName, "rating")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestCursor_GameplayColumnsUnknownOnV1(t *testing.T) {
	a := newTestAdapter(t, WithSchemaVersion(1))

	_, err := a.FetchAll(context.Background(), ColShooting)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	c, err := a.FetchAll(context.Background())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.Equal(t, SchemaColumns(1), c.Columns())
}

func TestCursor_IsSinglePass(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		mustCreate(t, a, fields(n, "1", ""))
	}

	c, err := a.FetchAll(ctx)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, -1, c.Position())
	_, err = c.String(ColName)
	assert.ErrorIs(t, err, ErrNoRow, "reading before the first row")

	require.True(t, c.MoveToFirst())
	assert.Equal(t, 0, c.Position())
	require.True(t, c.MoveToFirst(), "staying on the first row is allowed")

	var names []string
	first, _ := c.String(ColName)
	names = append(names, first)
	for c.Next() {
		n, err := c.String(ColName)
		require.NoError(t, err)
		names = append(names, n)
	}
	require.NoError(t, c.Err())
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, 2, c.Position())

	assert.False(t, c.MoveToFirst(), "cursors do not rewind")
	_, err = c.String(ColName)
	assert.ErrorIs(t, err, ErrNoRow, "reading past the end")
}

func TestCursor_EmptyResult(t *testing.T) {
	a := newTestAdapter(t)

	c, err := a.FetchAll(context.Background())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.False(t, c.MoveToFirst())
	assert.False(t, c.Next())
	assert.NoError(t, c.Err())
}

func TestCursor_CloseIsIdempotent(t *testing.T) {
	a := newTestAdapter(t)
	mustCreate(t, a, fields("a", "1", ""))

	c, err := a.FetchAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.False(t, c.Next(), "closed cursors yield no rows")

	var nilCursor *Cursor
	assert.NoError(t, nilCursor.Close())
}

func TestCursor_FetchOneIsPositioned(t *testing.T) {
	a := newTestAdapter(t)
	id := mustCreate(t, a, model.NoteFields{Name: "x", Number: "9", Play: model.Gameplay{Shooting: true}})

	c, err := a.FetchOne(context.Background(), id)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, 0, c.Position())
	shooting, err := c.Bool(ColShooting)
	require.NoError(t, err)
	assert.True(t, shooting)
	s, err := c.String(ColShooting)
	require.NoError(t, err)
	assert.Equal(t, "true", s)
	assert.False(t, c.Next(), "ids are unique")
}
