// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for FRC Scout using Cobra.
// It wires configuration, i18n and the note store, launches the TUI from the
// root command and offers scriptable subcommands for the same operations.
package cli
