// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the embedded locale files against the source tree. It
// fails when code asks for a key the primary locale lacks, or when another
// locale misses a key of the primary one, and warns about orphaned keys.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	callRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	// Keys handed to helpers that call i18n.T with a variable.
	literalRe = regexp.MustCompile(`"([a-z]+\.[a-z_]+(?:\.[a-z_]+)*)"`)
)

// report is the outcome of one lint run.
type report struct {
	// Missing lists keys passed to i18n.T that the primary locale lacks.
	Missing []string
	// Orphaned lists primary keys nothing in the code refers to.
	Orphaned []string
	// Incomplete maps each secondary locale to the primary keys it lacks.
	Incomplete map[string][]string
}

func (r report) failed() bool {
	return len(r.Missing) > 0 || len(r.Incomplete) > 0
}

func main() {
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{Incomplete: map[string][]string{}}

	called, mentioned, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("error finding used keys: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("error loading primary locale %q: %w", primaryLocale, err)
	}

	for key := range called {
		if _, ok := primary[key]; !ok {
			r.Missing = append(r.Missing, key)
		}
	}
	for key := range primary {
		_, c := called[key]
		_, m := mentioned[key]
		if !c && !m {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Missing)
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("error loading %s: %w", file, err)
		}
		var missing []string
		for key := range primary {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			r.Incomplete[filepath.Base(file)] = missing
		}
	}
	return r, nil
}

func printReport(w io.Writer, r report) {
	section := func(title string, keys []string, label string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(keys) == 0 {
			fmt.Fprintln(w, "  ✨ None found.")
		}
		for _, k := range keys {
			fmt.Fprintf(w, "  - %s: %s\n", label, k)
		}
	}
	section("Keys used in code but missing from "+primaryLocale, r.Missing, "Missing")
	section("Orphaned keys (in "+primaryLocale+" but not used in code)", r.Orphaned, "Orphaned")

	var names []string
	for name := range r.Incomplete {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		section("Keys missing from "+name, r.Incomplete[name], "Missing")
	}

	switch {
	case r.failed():
		fmt.Fprintln(w, "❌ Found issues that need to be addressed.")
	case len(r.Orphaned) > 0:
		fmt.Fprintln(w, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
}

// findUsedKeys scans non-test .go files. called holds the literal arguments
// of i18n.T; mentioned holds every other key-shaped string literal.
func findUsedKeys(root string) (called, mentioned map[string]struct{}, err error) {
	called = make(map[string]struct{})
	mentioned = make(map[string]struct{})

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range callRe.FindAllStringSubmatch(string(content), -1) {
			called[m[1]] = struct{}{}
		}
		for _, m := range literalRe.FindAllStringSubmatch(string(content), -1) {
			mentioned[m[1]] = struct{}{}
		}
		return nil
	})
	return called, mentioned, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts nested maps into dot-separated keys, so nested and
// flat locale files are treated alike.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
