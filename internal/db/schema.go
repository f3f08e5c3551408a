// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"embed"
	"fmt"
	"slices"

	"github.com/toeirei/frcscout/internal/logging"
	"github.com/uptrace/bun"
)

// SchemaVersion is the schema this build creates. It is stored in SQLite's
// user_version header field; an older value triggers a destructive upgrade.
const SchemaVersion = 2

// Table and column names are part of the on-disk contract.
const (
	TableNotes  = "notes"
	ColID       = "_id"
	ColName     = "name"
	ColNumber   = "number"
	ColNotes    = "notes"
	ColShooting = "shooting"
	ColClimbing = "climbing"
	ColDefense  = "defense"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SchemaColumns returns the columns of the notes table at the given version.
func SchemaColumns(version int) []string {
	cols := []string{ColID, ColName, ColNumber, ColNotes}
	if version >= 2 {
		cols = append(cols, ColShooting, ColClimbing, ColDefense)
	}
	return cols
}

func hasColumn(version int, col string) bool {
	return slices.Contains(SchemaColumns(version), col)
}

func schemaDDL(version int) (string, error) {
	data, err := schemaFS.ReadFile(fmt.Sprintf("schema/%d.sql", version))
	if err != nil {
		return "", fmt.Errorf("no schema for version %d: %w", version, err)
	}
	return string(data), nil
}

// execSQL runs a statement bun has no builder for: DDL from the schema
// files, PRAGMA assignments and VACUUM. idb may be the database or a
// transaction.
func execSQL(ctx context.Context, idb bun.IDB, query string, args ...any) error {
	_, err := idb.NewRaw(query, args...).Exec(ctx)
	return err
}

// scanSQL runs a raw query, typically a PRAGMA read, and scans the result
// into dest.
func scanSQL(ctx context.Context, idb bun.IDB, dest any, query string, args ...any) error {
	return idb.NewRaw(query, args...).Scan(ctx, dest)
}

func readUserVersion(ctx context.Context, idb bun.IDB) (int, error) {
	var v int
	if err := scanSQL(ctx, idb, &v, "PRAGMA user_version"); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// ensureSchema brings the file to the target version. A fresh file gets the
// table created; an older file loses its table and all rows; a newer file is
// refused.
func ensureSchema(ctx context.Context, bdb *bun.DB, target int) error {
	ddl, err := schemaDDL(target)
	if err != nil {
		return err
	}

	return bdb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		stored, err := readUserVersion(ctx, tx)
		if err != nil {
			return err
		}

		switch {
		case stored == target:
			dbLogf("db: schema at version %d", stored)
			return nil
		case stored > target:
			return fmt.Errorf("%w: file is at version %d, this build supports %d", ErrSchemaTooNew, stored, target)
		case stored == 0:
			dbLogf("db: creating schema version %d", target)
		default:
			logging.Warnf("Upgrading database from version %d to %d, which will destroy all old data.", stored, target)
			if err := execSQL(ctx, tx, "DROP TABLE IF EXISTS "+TableNotes); err != nil {
				return fmt.Errorf("drop %s: %w", TableNotes, err)
			}
		}

		if err := execSQL(ctx, tx, ddl); err != nil {
			return fmt.Errorf("create schema version %d: %w", target, err)
		}
		// PRAGMA does not accept bound parameters.
		if err := execSQL(ctx, tx, fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
			return fmt.Errorf("record schema version %d: %w", target, err)
		}
		return nil
	})
}
