// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"strings"

	"github.com/toeirei/frcscout/internal/model"
)

// FilterNotes returns the notes matching every word of query. A word matches
// when the team name, team number or notes text contains it, ignoring case.
// A blank query returns notes unchanged.
func FilterNotes(notes []model.Note, query string) []model.Note {
	words := queryWords(query)
	if len(words) == 0 {
		return notes
	}
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if noteMatches(n, words) {
			out = append(out, n)
		}
	}
	return out
}

// queryWords splits the list filter into lower-cased words.
func queryWords(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}
	return words
}

func noteMatches(n model.Note, words []string) bool {
	name := strings.ToLower(n.Name)
	number := strings.ToLower(n.Number)
	text := strings.ToLower(n.Notes)
	for _, w := range words {
		if !strings.Contains(name, w) && !strings.Contains(number, w) && !strings.Contains(text, w) {
			return false
		}
	}
	return true
}
