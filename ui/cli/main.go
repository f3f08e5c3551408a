// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, the persistent flags and the services
// every subcommand relies on: configuration, i18n and logging.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/frcscout/buildvars"
	"github.com/toeirei/frcscout/internal/config"
	"github.com/toeirei/frcscout/internal/db"
	"github.com/toeirei/frcscout/internal/i18n"
	"github.com/toeirei/frcscout/internal/logging"
	"github.com/toeirei/frcscout/ui/tui"
	"golang.org/x/term"
)

const modulePath = "github.com/toeirei/frcscout"

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

var appConfig config.Config

// stdoutIsTerminal decides whether the root command starts the TUI.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runTUI is swapped out by tests.
var runTUI = tui.Run

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := config.Defaults()
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// A "file not found" error is expected on first run.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if optionalConfigPath != nil {
			err = config.WriteConfigFileTo(&appConfig, *optionalConfigPath)
		} else {
			err = config.WriteConfigFile(&appConfig, false)
		}
		if err != nil {
			// The app runs fine on defaults.
			logging.Warnf("could not write default config file: %v", err)
		} else {
			logging.Debugf("wrote default config file")
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// An empty value in the file falls back to the default.
	if appConfig.Database.Path == "" {
		appConfig.Database.Path = defaults["database.path"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	i18n.Init(appConfig.Language)
	return nil
}

// openStore opens the configured database. Callers close it.
func openStore(ctx context.Context) (*db.Adapter, error) {
	store, err := db.New(ctx, appConfig.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("config.error_init_db"), err)
	}
	return store, nil
}

// withStore wraps a command body so it runs against an open store that is
// closed afterwards.
func withStore(run func(cmd *cobra.Command, args []string, store *db.Adapter) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logging.Errorf("closing database: %v", cerr)
			}
		}()
		return run(cmd, args, store)
	}
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// A config file named on the command line has to exist.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// logFilePath is where log output goes while the TUI owns the terminal.
func logFilePath() string {
	if p, err := config.GetConfigPath(false); err == nil {
		dir := filepath.Dir(p)
		if err := os.MkdirAll(dir, 0o700); err == nil {
			return filepath.Join(dir, "frcscout.log")
		}
	}
	return filepath.Join(os.TempDir(), "frcscout.log")
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

// NewRootCmd creates and configures a new root cobra command.
// Every call builds fresh subcommands, so tests get isolated flag state.
func NewRootCmd() *cobra.Command {
	var verbose bool
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "frcscout",
		Short: "FRC Scout keeps scouting notes on FRC teams.",
		Long: `FRC Scout records what you observe about FIRST Robotics Competition
teams: name, number, gameplay capabilities and free-form notes.

Running without a subcommand launches the interactive TUI, or prints the
note list when standard output is not a terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
				os.Exit(0)
			}
			logging.SetDebug(verbose)
			db.SetDebug(verbose)
			return setupDefaultServices(cmd, args)
		},
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			if !stdoutIsTerminal() {
				notes, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				return printNoteTable(cmd.OutOrStdout(), notes)
			}

			restore, err := logging.ToFile(logFilePath())
			if err != nil {
				logging.Warnf("%v", err)
			}
			defer restore()
			return runTUI(cmd.Context(), store, tui.Options{
				FeedbackRecipient: appConfig.Feedback.Recipient,
			})
		}),
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `Interface language ("en", "de")`)
	cmd.PersistentFlags().String("database.path", "./frcscout.db", "Path of the SQLite database file")

	cmd.AddCommand(
		newListCmd(),
		newAddCmd(),
		newShowCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newExportCmd(),
		newImportCmd(),
		newMaintenanceCmd(),
		newFeedbackCmd(),
		newVersionCmd(),
	)
	return cmd
}

// newVersionCmd prints the build details for support requests.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime. This helper is separated to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		} else {
			// Installed as a dependency of another module, e.g. via go run.
			for _, dep := range info.Deps {
				if dep != nil && dep.Path == modulePath && dep.Version != "" && dep.Version != "(devel)" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort, if no version was discovered, but a gitCommit was
	// provided via ldflags, show that to aid support.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
