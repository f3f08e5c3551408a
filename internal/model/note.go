// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the plain value types shared by the store, the
// backup format and the user interfaces.
package model

import (
	"fmt"
	"strings"
)

// Gameplay captures the capabilities observed while scouting a team.
type Gameplay struct {
	Shooting bool `json:"shooting"`
	Climbing bool `json:"climbing"`
	Defense  bool `json:"defense"`
}

// String renders the set flags as a compact, comma separated list.
func (g Gameplay) String() string {
	var parts []string
	if g.Shooting {
		parts = append(parts, "shooting")
	}
	if g.Climbing {
		parts = append(parts, "climbing")
	}
	if g.Defense {
		parts = append(parts, "defense")
	}
	return strings.Join(parts, ",")
}

// NoteFields is every caller-settable field of a note. Create and Update
// always take the full set.
type NoteFields struct {
	Name   string   `json:"name"`
	Number string   `json:"number"`
	Notes  string   `json:"notes"`
	Play   Gameplay `json:"gameplay"`
}

// IsEmpty reports whether nothing has been entered yet.
func (f NoteFields) IsEmpty() bool {
	return strings.TrimSpace(f.Name) == "" &&
		strings.TrimSpace(f.Number) == "" &&
		strings.TrimSpace(f.Notes) == "" &&
		f.Play == Gameplay{}
}

// Note is one scouted team as persisted in the store. ID is assigned by the
// store on first save and never changes afterwards.
type Note struct {
	ID int64 `json:"id"`
	NoteFields
}

// Fields returns the note without its identifier.
func (n Note) Fields() NoteFields {
	return n.NoteFields
}

// String returns the "name (#number)" form used in lists.
func (n Note) String() string {
	if n.Number == "" {
		return n.Name
	}
	return fmt.Sprintf("%s (#%s)", n.Name, n.Number)
}
