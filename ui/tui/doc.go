// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui implements the terminal UI: a stack of screens driven by Bubble
// Tea. The list screen browses notes and the edit screen changes one; both
// talk to storage only through db.NoteStore.
package tui
