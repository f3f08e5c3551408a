package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/frcscout/internal/model"
)

func TestAdapter_CreateFetchUpdateDeleteScenario(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	id, err := a.Create(ctx, fields("1114", "1114", "Strong autonomous"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	c, err := a.FetchOne(ctx, id)
	require.NoError(t, err)
	name, err := c.String(ColName)
	require.NoError(t, err)
	number, err := c.String(ColNumber)
	require.NoError(t, err)
	notes, err := c.String(ColNotes)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.Equal(t, "1114", name)
	assert.Equal(t, "1114", number)
	assert.Equal(t, "Strong autonomous", notes)

	ok, err := a.Update(ctx, id, fields("1114", "1114", "Strong autonomous, weak defense"))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := a.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Strong autonomous, weak defense", got.Notes)

	ok, err = a.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = a.FetchOne(ctx, id)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
	assert.True(t, IsNotFound(err))
}

func TestAdapter_CreateRoundTripsAllFields(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	cases := []model.NoteFields{
		{Name: "Simbotics", Number: "1114", Notes: "", Play: model.Gameplay{Shooting: true}},
		{Name: "", Number: "0254", Notes: "leading zero kept", Play: model.Gameplay{Climbing: true, Defense: true}},
		{Name: "Team ünïcödé", Number: "not a number", Notes: "multi\nline\nnotes"},
		{Name: "quotes ' and \"", Number: "118", Notes: "; DROP TABLE notes; --", Play: model.Gameplay{Shooting: true, Climbing: true, Defense: true}},
	}
	for _, f := range cases {
		id := mustCreate(t, a, f)
		got, err := a.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, f, got.Fields())
	}
}

func TestAdapter_IDsAreUniqueAndNotReused(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	first := mustCreate(t, a, fields("a", "1", ""))
	second := mustCreate(t, a, fields("b", "2", ""))
	assert.NotEqual(t, first, second)

	_, err := a.Delete(ctx, second)
	require.NoError(t, err)
	third := mustCreate(t, a, fields("c", "3", ""))
	assert.Greater(t, third, second, "autoincrement ids must not be reused")
}

func TestAdapter_DeleteMissingIsNotAnError(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	ok, err := a.Delete(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	id := mustCreate(t, a, fields("a", "1", ""))
	ok, err = a.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second delete of the same id leaves the store unchanged.
	before, err := a.Count(ctx)
	require.NoError(t, err)
	ok, err = a.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
	after, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAdapter_UpdateMissingReturnsFalse(t *testing.T) {
	a := newTestAdapter(t)

	ok, err := a.Update(context.Background(), 7, fields("x", "1", ""))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdapter_UpdateIsVisibleInFetchAllExactlyOnce(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	mustCreate(t, a, fields("a", "1", ""))
	id := mustCreate(t, a, fields("b", "2", ""))
	mustCreate(t, a, fields("c", "3", ""))

	updated := model.NoteFields{Name: "b2", Number: "22", Notes: "new", Play: model.Gameplay{Defense: true}}
	ok, err := a.Update(ctx, id, updated)
	require.NoError(t, err)
	require.True(t, ok)

	notes, err := a.List(ctx)
	require.NoError(t, err)
	matches := 0
	for _, n := range notes {
		if n.ID == id {
			matches++
			assert.Equal(t, updated, n.Fields())
		}
	}
	assert.Equal(t, 1, matches)
}

func TestAdapter_FetchAllCardinalityTracksLiveRows(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	count := func() int {
		c, err := a.FetchAll(ctx)
		require.NoError(t, err)
		defer func() { _ = c.Close() }()
		n := 0
		for c.Next() {
			n++
		}
		require.NoError(t, c.Err())
		return n
	}

	assert.Equal(t, 0, count())
	ids := []int64{
		mustCreate(t, a, fields("a", "1", "")),
		mustCreate(t, a, fields("b", "2", "")),
		mustCreate(t, a, fields("c", "3", "")),
	}
	assert.Equal(t, 3, count())

	_, err := a.Delete(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, 2, count())

	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAdapter_CreateRejectedReturnsNoID(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	bdb, err := a.handle()
	require.NoError(t, err)
	err = execSQL(ctx, bdb, `CREATE TRIGGER reject_notes BEFORE INSERT ON notes
BEGIN SELECT RAISE(ABORT, 'rejected by test'); END`)
	require.NoError(t, err)

	id, err := a.Create(ctx, fields("a", "1", ""))
	assert.Equal(t, NoID, id)
	assert.ErrorIs(t, err, ErrWriteFailed)

	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func rejectNamed(t *testing.T, a *Adapter, name string) {
	t.Helper()
	bdb, err := a.handle()
	require.NoError(t, err)
	require.NoError(t, execSQL(context.Background(), bdb, `CREATE TRIGGER reject_named BEFORE INSERT ON notes
WHEN NEW.name = '`+name+`' BEGIN SELECT RAISE(ABORT, 'rejected by test'); END`))
}

func listFields(t *testing.T, a *Adapter) []model.NoteFields {
	t.Helper()
	notes, err := a.List(context.Background())
	require.NoError(t, err)
	out := make([]model.NoteFields, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Fields())
	}
	return out
}

func TestAdapter_ImportAddsAll(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	mustCreate(t, a, fields("a", "1", ""))

	in := []model.NoteFields{fields("b", "2", "x"), fields("c", "3", "y")}
	require.NoError(t, a.Import(ctx, in))
	assert.Equal(t, append([]model.NoteFields{fields("a", "1", "")}, in...), listFields(t, a))
}

func TestAdapter_ImportIsAllOrNothing(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	mustCreate(t, a, fields("a", "1", ""))
	rejectNamed(t, a, "bad")

	err := a.Import(ctx, []model.NoteFields{fields("b", "2", ""), fields("bad", "3", ""), fields("c", "4", "")})
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Equal(t, []model.NoteFields{fields("a", "1", "")}, listFields(t, a))
}

func TestAdapter_ReplaceAll(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	mustCreate(t, a, fields("a", "1", ""))
	mustCreate(t, a, fields("b", "2", ""))

	in := []model.NoteFields{fields("c", "3", ""), fields("c", "3", ""), fields("d", "4", "")}
	deleted, err := a.ReplaceAll(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Equal(t, in, listFields(t, a))
}

func TestAdapter_ReplaceAllRollsBackOnFailure(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	before := []model.NoteFields{fields("a", "1", ""), fields("b", "2", ""), fields("c", "3", "")}
	for _, f := range before {
		mustCreate(t, a, f)
	}
	rejectNamed(t, a, "bad")

	deleted, err := a.ReplaceAll(ctx, []model.NoteFields{fields("x", "9", ""), fields("bad", "10", "")})
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, before, listFields(t, a))
}

func TestAdapter_OperationsRequireOpen(t *testing.T) {
	a := NewAdapter(filepath.Join(t.TempDir(), "scout.db"))
	ctx := context.Background()

	id, err := a.Create(ctx, fields("a", "1", ""))
	assert.Equal(t, NoID, id)
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = a.Update(ctx, 1, fields("a", "1", ""))
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = a.Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = a.FetchAll(ctx)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = a.FetchOne(ctx, 1)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, a.Import(ctx, nil), ErrNotOpen)
	_, err = a.ReplaceAll(ctx, nil)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestAdapter_OpenCloseLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "scout.db")
	a := NewAdapter(path)
	ctx := context.Background()

	require.NoError(t, a.Open(ctx))
	assert.True(t, a.IsOpen())
	// Opening twice keeps the existing handle.
	require.NoError(t, a.Open(ctx))

	_, err := os.Stat(path)
	require.NoError(t, err, "backing file should be created")

	id := mustCreate(t, a, fields("persist", "1", "survives reopen"))
	require.NoError(t, a.Close())
	assert.False(t, a.IsOpen())
	require.NoError(t, a.Close(), "second close is a no-op")

	b, err := New(ctx, path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()
	got, err := b.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "survives reopen", got.Notes)
}

func TestAdapter_OpenFailsWithStorageUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	a := NewAdapter(filepath.Join(blocker, "sub", "scout.db"))
	err := a.Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.False(t, a.IsOpen())
}

func TestAdapter_InMemory(t *testing.T) {
	a := NewAdapter(":memory:")
	ctx := context.Background()
	require.NoError(t, a.Open(ctx))
	defer func() { _ = a.Close() }()

	id := mustCreate(t, a, fields("mem", "1", ""))
	got, err := a.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "mem", got.Name)
}
