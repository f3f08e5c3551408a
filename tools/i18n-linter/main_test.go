// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFlattenYAML(t *testing.T) {
	m := map[string]interface{}{
		"list":       map[string]interface{}{"title": "Teams"},
		"edit.saved": "Saved.",
	}
	keys := make(map[string]struct{})
	flattenYAML("", m, keys)
	for _, want := range []string{"list.title", "edit.saved"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("expected %s in %v", want, keys)
		}
	}
}

func TestLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ui", "a.go"), `package ui
func f() {
	_ = i18n.T("list.title")
	_ = i18n.T("list.missing")
	label("cli.column.id")
}`)
	writeFile(t, filepath.Join(root, "ui", "a_test.go"), `package ui
var _ = i18n.T("test.only")`)
	writeFile(t, filepath.Join(root, "_examples", "b.go"), `package x
var _ = i18n.T("ignored.key")`)

	locales := filepath.Join(root, "locales")
	writeFile(t, filepath.Join(locales, "en.yaml"), `"list.title": "Teams"
"cli.column.id": "ID"
"list.unused": "Unused"
`)
	writeFile(t, filepath.Join(locales, "de.yaml"), `"list.title": "Teams"
"list.unused": "Ungenutzt"
`)

	r, err := lint(root, locales)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Missing) != 1 || r.Missing[0] != "list.missing" {
		t.Errorf("unexpected missing keys: %v", r.Missing)
	}
	if len(r.Orphaned) != 1 || r.Orphaned[0] != "list.unused" {
		t.Errorf("unexpected orphaned keys: %v", r.Orphaned)
	}
	if got := r.Incomplete["de.yaml"]; len(got) != 1 || got[0] != "cli.column.id" {
		t.Errorf("unexpected incomplete de.yaml: %v", got)
	}
	if !r.failed() {
		t.Error("expected the run to fail")
	}

	var buf bytes.Buffer
	printReport(&buf, r)
	if !strings.Contains(buf.String(), "Missing: list.missing") {
		t.Errorf("report lacks the missing key:\n%s", buf.String())
	}
}

func TestLint_RepositoryLocalesAreConsistent(t *testing.T) {
	root := filepath.Join("..", "..")
	r, err := lint(root, filepath.Join(root, localesDir))
	if err != nil {
		t.Fatal(err)
	}
	if r.failed() {
		var buf bytes.Buffer
		printReport(&buf, r)
		t.Fatalf("locale files are inconsistent:\n%s", buf.String())
	}
}
