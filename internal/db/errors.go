// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"strings"
)

var (
	// ErrStorageUnavailable is returned by Open when the database file can be
	// neither opened nor created. Callers treat it as fatal.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSchemaTooNew means the file was written by a newer schema version.
	ErrSchemaTooNew = errors.New("schema version is newer than this build")
	// ErrNotOpen is returned by every operation on an adapter that is not open.
	ErrNotOpen = errors.New("store is not open")
	// ErrNotFound is returned when no note has the requested id.
	ErrNotFound = errors.New("note not found")
	// ErrFieldNotFound is a programming error: the requested column is not
	// part of the result's projection.
	ErrFieldNotFound = errors.New("field not found")
	// ErrFieldType is returned when a field is read as an incompatible type.
	ErrFieldType = errors.New("field has a different type")
	// ErrNoRow is returned when a cursor is read while not positioned on a row.
	ErrNoRow = errors.New("cursor is not positioned on a row")
	// ErrWriteFailed is returned when an insert did not take effect.
	ErrWriteFailed = errors.New("write failed")
	// ErrConstraint is returned when SQLite rejected a write via a constraint.
	ErrConstraint = errors.New("constraint violation")
)

// MapDBError inspects low-level driver errors and maps constraint violations
// to ErrConstraint. The mapping is string based so this file does not need
// to import the driver's error types.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	if strings.Contains(le, "constraint") || strings.Contains(le, "unique") {
		return errors.Join(ErrConstraint, err)
	}
	return err
}
