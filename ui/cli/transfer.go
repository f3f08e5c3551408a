// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

// transfer.go holds the commands that move notes in and out of the app:
// archive export and import, and the feature request template.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/frcscout/internal/backup"
	"github.com/toeirei/frcscout/internal/db"
	"github.com/toeirei/frcscout/internal/feedback"
	"github.com/toeirei/frcscout/internal/i18n"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export all notes to a compressed archive",
		Long: `Writes every note to a Zstandard-compressed JSON archive.
Without a file name the archive is named frcscout-backup-YYYY-MM-DD.json.zst.`,
		Args: cobra.MaximumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			name := backup.DefaultFileName(time.Now())
			if len(args) == 1 {
				name = backup.NormalizeFileName(args[0])
			}
			a, err := backup.Export(cmd.Context(), store, store.Version())
			if err != nil {
				return err
			}
			if err := backup.WriteFile(name, a); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.export_done", len(a.Notes), name))
			return nil
		}),
	}
}

func newImportCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import notes from an archive",
		Long: `Adds the notes of an archive written by export. Notes identical to an
existing note are skipped. With --full every existing note is deleted first.`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			a, err := backup.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := backup.Restore(cmd.Context(), store, a, full)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.import_done", res.Imported, res.Skipped, res.Deleted))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&full, "full", false, "Perform a full, destructive import (deletes all existing notes first)")
	return cmd
}

func newFeedbackCmd() *cobra.Command {
	var copyText bool
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Print a feature request template",
		Long: `Prints a mailto: link and the plain text of a feature request.
The recipient comes from feedback.recipient in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := feedback.FeatureRequest(appConfig.Feedback.Recipient)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, msg.MailtoURL())
			fmt.Fprintln(out)
			fmt.Fprintln(out, msg.Text())
			if copyText {
				if err := copyFeedback(msg); err != nil {
					return fmt.Errorf("%s: %w", i18n.T("cli.feedback_failed"), err)
				}
				fmt.Fprintln(out, i18n.T("cli.feedback_copied"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyText, "copy", false, "Also copy the text to the clipboard")
	return cmd
}

// copyFeedback is replaced in tests; CI machines have no clipboard.
var copyFeedback = func(m feedback.Message) error {
	return m.CopyToClipboard()
}
