// Package db is the persistence layer for scouting notes.
//
// An Adapter owns the one SQLite handle (modernc.org/sqlite, queried through
// Bun) and exposes create, read, update and delete keyed by the note id.
// Reads hand back a Cursor, a lazily scanned single-pass view that callers
// close themselves or hand to a Scope owned by the screen that asked for it.
//
// Schema
//   - The notes table lives in schema/<version>.sql. The version is kept in
//     SQLite's user_version header.
//   - Opening a file whose version is older than SchemaVersion drops the
//     table and recreates it. Existing notes are lost; this is intended.
//   - Opening a file with a newer version fails with ErrStorageUnavailable.
//
// Errors
//   - Open failures wrap ErrStorageUnavailable and are fatal for callers.
//   - Create returns NoID with an error wrapping ErrWriteFailed when the
//     insert did not happen; Update and Delete report (false, nil) for an
//     unknown id.
//   - FetchOne returns ErrNotFound instead of an empty cursor.
//
// Testing notes
//   - Prefer a file under t.TempDir() in tests. WAL lets a write proceed
//     while another connection still holds a read cursor, which a plain
//     ":memory:" database (one connection) cannot do.
package db
