// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for FRC Scout.
//
// Usage:
//
//	go run . [flags]
//	./frcscout [flags]
//
// This launches the FRC Scout CLI. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/frcscout/internal/logging"
	"github.com/toeirei/frcscout/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
