// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup exports notes to, and restores them from, a
// Zstandard-compressed JSON archive carrying a BLAKE2b checksum of its
// payload.
package backup

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/frcscout/internal/model"
	"golang.org/x/crypto/blake2b"
)

// FormatVersion identifies the archive layout.
const FormatVersion = 1

var (
	// ErrChecksumMismatch means the archive payload does not match its
	// recorded checksum.
	ErrChecksumMismatch = errors.New("backup checksum mismatch")
	// ErrUnsupportedFormat is returned for archives written by a newer layout.
	ErrUnsupportedFormat = errors.New("unsupported backup format")
)

// Record is one note as stored in an archive.
type Record struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	Notes    string `json:"notes"`
	Shooting bool   `json:"shooting"`
	Climbing bool   `json:"climbing"`
	Defense  bool   `json:"defense"`
}

func recordFromNote(n model.Note) Record {
	return Record{
		ID:       n.ID,
		Name:     n.Name,
		Number:   n.Number,
		Notes:    n.Notes,
		Shooting: n.Play.Shooting,
		Climbing: n.Play.Climbing,
		Defense:  n.Play.Defense,
	}
}

// Fields returns the caller-settable part of the record.
func (r Record) Fields() model.NoteFields {
	return model.NoteFields{
		Name:   r.Name,
		Number: r.Number,
		Notes:  r.Notes,
		Play:   model.Gameplay{Shooting: r.Shooting, Climbing: r.Climbing, Defense: r.Defense},
	}
}

// Archive is the document written to disk.
type Archive struct {
	Format        int       `json:"format"`
	SchemaVersion int       `json:"schema_version"`
	ExportedAt    time.Time `json:"exported_at"`
	Checksum      string    `json:"checksum"`
	Notes         []Record  `json:"notes"`
}

// Lister is the read side of the note store.
type Lister interface {
	List(ctx context.Context) ([]model.Note, error)
}

// Store is what Restore needs from the note store. Import and ReplaceAll
// must each apply all notes or none.
type Store interface {
	Lister
	Import(ctx context.Context, notes []model.NoteFields) error
	ReplaceAll(ctx context.Context, notes []model.NoteFields) (int, error)
}

// Export snapshots every note of src into an archive.
func Export(ctx context.Context, src Lister, schemaVersion int) (*Archive, error) {
	notes, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list notes: %w", err)
	}
	a := &Archive{
		Format:        FormatVersion,
		SchemaVersion: schemaVersion,
		ExportedAt:    time.Now().UTC(),
		Notes:         make([]Record, 0, len(notes)),
	}
	for _, n := range notes {
		a.Notes = append(a.Notes, recordFromNote(n))
	}
	sum, err := checksum(a.Notes)
	if err != nil {
		return nil, err
	}
	a.Checksum = sum
	return a, nil
}

// checksum is the hex BLAKE2b-256 digest of the JSON encoding of notes.
func checksum(notes []Record) (string, error) {
	payload, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("could not encode notes: %w", err)
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Verify checks the archive layout and its checksum.
func (a *Archive) Verify() error {
	if a.Format > FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, a.Format)
	}
	sum, err := checksum(a.Notes)
	if err != nil {
		return err
	}
	if sum != a.Checksum {
		return ErrChecksumMismatch
	}
	return nil
}

// Write streams the archive as compressed JSON to w.
func Write(w io.Writer, a *Archive) error {
	zstdWriter, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(a); err != nil {
		_ = zstdWriter.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return zstdWriter.Close()
}

// Read decodes a compressed archive from r and verifies it.
func Read(r io.Reader) (*Archive, error) {
	zstdReader, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var a Archive
	if err := json.NewDecoder(zstdReader).Decode(&a); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if err := a.Verify(); err != nil {
		return nil, err
	}
	return &a, nil
}

// DefaultFileName is the archive name used when none is given.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("frcscout-backup-%s.json.zst", now.Format("2006-01-02"))
}

// NormalizeFileName appends ".zst" when missing.
func NormalizeFileName(name string) string {
	if !strings.HasSuffix(name, ".zst") {
		return name + ".zst"
	}
	return name
}

// WriteFile writes the archive to filename.
func WriteFile(filename string, a *Archive) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Write(file, a); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadFile reads and verifies the archive at filename.
func ReadFile(filename string) (*Archive, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Read(file)
}

// RestoreResult counts what Restore did.
type RestoreResult struct {
	Deleted  int
	Imported int
	Skipped  int
}

// Restore loads the archive into dst. Notes get fresh ids. A full restore
// replaces every existing note; otherwise notes whose fields match a note
// already in dst, or an earlier note of the same archive, are skipped.
// Either way dst is left unchanged when the restore fails.
func Restore(ctx context.Context, dst Store, a *Archive, full bool) (RestoreResult, error) {
	var res RestoreResult
	notes := make([]model.NoteFields, 0, len(a.Notes))
	if full {
		for _, r := range a.Notes {
			notes = append(notes, r.Fields())
		}
		deleted, err := dst.ReplaceAll(ctx, notes)
		if err != nil {
			return RestoreResult{}, fmt.Errorf("could not replace notes: %w", err)
		}
		res.Deleted = deleted
		res.Imported = len(notes)
		return res, nil
	}

	existing, err := dst.List(ctx)
	if err != nil {
		return res, fmt.Errorf("could not list notes: %w", err)
	}
	seen := make(map[model.NoteFields]bool, len(existing)+len(a.Notes))
	for _, n := range existing {
		seen[n.Fields()] = true
	}
	for _, r := range a.Notes {
		f := r.Fields()
		if seen[f] {
			res.Skipped++
			continue
		}
		seen[f] = true
		notes = append(notes, f)
	}
	if err := dst.Import(ctx, notes); err != nil {
		return RestoreResult{}, fmt.Errorf("could not import notes: %w", err)
	}
	res.Imported = len(notes)
	return res, nil
}
