// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db // import "github.com/toeirei/frcscout/internal/db"

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// NoID is returned by Create when no row was inserted.
const NoID int64 = -1

const (
	defaultMaxOpenConns = 4
	busyTimeoutMillis   = 5000
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Option configures an Adapter.
type Option func(*Adapter)

// WithSchemaVersion makes the adapter create and expect the given schema
// version instead of SchemaVersion.
func WithSchemaVersion(v int) Option {
	return func(a *Adapter) { a.version = v }
}

// WithMaxOpenConns overrides the connection pool size. In-memory databases
// always use a single connection.
func WithMaxOpenConns(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxOpen = n
		}
	}
}

// Adapter owns the single handle to the notes database and implements the
// CRUD operations on it. The zero value is not usable; call NewAdapter and
// then Open.
type Adapter struct {
	path    string
	version int
	maxOpen int

	mu  sync.RWMutex
	bun *bun.DB
}

// NewAdapter prepares an adapter for the SQLite database at path. path may
// be a file path, ":memory:" or a "file:" URI. Nothing is opened yet.
func NewAdapter(path string, opts ...Option) *Adapter {
	a := &Adapter{
		path:    path,
		version: SchemaVersion,
		maxOpen: defaultMaxOpenConns,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Path returns the database location the adapter was created for.
func (a *Adapter) Path() string { return a.path }

// Version returns the schema version the adapter works with.
func (a *Adapter) Version() int { return a.version }

// IsOpen reports whether Open succeeded and Close has not been called since.
func (a *Adapter) IsOpen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bun != nil
}

// Open acquires a writable handle, creating the file and the schema when they
// are absent and running the destructive upgrade when the stored schema is
// older. Every failure wraps ErrStorageUnavailable.
func (a *Adapter) Open(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bun != nil {
		return nil
	}

	start := time.Now()
	if err := ensureParentDir(a.path); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	sqlDB, err := sqlOpenFunc("sqlite", sqliteDSN(a.path))
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}

	maxOpen := a.maxOpen
	// Each connection to ":memory:" is its own database, so the schema would
	// vanish between connections.
	if isPrivateMemory(a.path) {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("%w: failed to connect to %s: %w", ErrStorageUnavailable, a.path, err)
	}
	dbLogf("db: opened %s in %s (max open conns=%d)", a.path, time.Since(start), maxOpen)

	bdb := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := ensureSchema(ctx, bdb, a.version); err != nil {
		_ = bdb.Close()
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	a.bun = bdb
	return nil
}

// Close releases the handle. Closing a closed adapter is a no-op.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bun == nil {
		return nil
	}
	err := a.bun.Close()
	a.bun = nil
	return err
}

// handle returns the open bun handle or ErrNotOpen.
func (a *Adapter) handle() (*bun.DB, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.bun == nil {
		return nil, ErrNotOpen
	}
	return a.bun, nil
}

// Maintain runs SQLite housekeeping: PRAGMA optimize, VACUUM, a WAL
// checkpoint and an integrity check.
func (a *Adapter) Maintain(ctx context.Context) error {
	bdb, err := a.handle()
	if err != nil {
		return err
	}

	// PRAGMA optimize may not be supported or useful in some environments
	// (e.g., in-memory filesystems); treat optimize errors as non-fatal.
	if err := execSQL(ctx, bdb, "PRAGMA optimize"); err != nil {
		dbLogf("db: sqlite optimize failed (ignored): %v", err)
	}
	if err := execSQL(ctx, bdb, "VACUUM"); err != nil {
		return fmt.Errorf("sqlite vacuum failed: %w", err)
	}
	// Not every journal mode has a WAL to checkpoint.
	_ = execSQL(ctx, bdb, "PRAGMA wal_checkpoint(TRUNCATE)")

	var res string
	if err := scanSQL(ctx, bdb, &res, "PRAGMA integrity_check"); err != nil {
		return fmt.Errorf("sqlite integrity_check failed: %w", err)
	}
	if res != "ok" {
		return fmt.Errorf("sqlite integrity_check failed: %s", res)
	}
	return nil
}

func isPrivateMemory(path string) bool {
	return path == ":memory:" || path == "file::memory:"
}

func isURI(path string) bool {
	return strings.HasPrefix(path, "file:")
}

// ensureParentDir creates the directory holding a plain database file.
func ensureParentDir(path string) error {
	if isPrivateMemory(path) || isURI(path) {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// sqliteDSN adds the connection pragmas understood by modernc.org/sqlite.
func sqliteDSN(path string) string {
	if isPrivateMemory(path) {
		return path
	}
	pragmas := fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeoutMillis)
	if !isURI(path) {
		pragmas += "&_pragma=journal_mode(WAL)"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + pragmas
}
