// Copyright (c) 2026 ToeiRei
// FRC Scout - team scouting notes
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/toeirei/frcscout/internal/db"
	"github.com/toeirei/frcscout/internal/i18n"
	"github.com/toeirei/frcscout/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
)

// printNoteTable renders notes as a bordered table, or a short message when
// there are none.
func printNoteTable(w io.Writer, notes []model.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, i18n.T("cli.no_notes"))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(
			i18n.T("cli.column.id"),
			i18n.T("cli.column.name"),
			i18n.T("cli.column.number"),
			i18n.T("cli.column.gameplay"),
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, n := range notes {
		t.Row(strconv.FormatInt(n.ID, 10), n.Name, n.Number, n.Play.String())
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func printNote(w io.Writer, n model.Note) {
	line := func(key, value string) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(i18n.T(key)+":"), value)
	}
	line("cli.column.id", strconv.FormatInt(n.ID, 10))
	line("cli.column.name", n.Name)
	line("cli.column.number", n.Number)
	line("cli.column.gameplay", n.Play.String())
	line("cli.column.notes", n.Notes)
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s", i18n.T("cli.invalid_id", s))
	}
	return id, nil
}

// noteFlags registers the per-field flags shared by add and edit.
func noteFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Team name")
	cmd.Flags().String("number", "", "Team number")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().Bool("shooting", false, "The team can shoot")
	cmd.Flags().Bool("climbing", false, "The team can climb")
	cmd.Flags().Bool("defense", false, "The team plays defense")
}

// applyNoteFlags copies every explicitly set field flag onto f and reports
// whether any was set.
func applyNoteFlags(cmd *cobra.Command, f *model.NoteFields) bool {
	changed := false
	str := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
			changed = true
		}
	}
	flag := func(name string, dst *bool) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetBool(name)
			changed = true
		}
	}
	str("name", &f.Name)
	str("number", &f.Number)
	str("notes", &f.Notes)
	flag("shooting", &f.Play.Shooting)
	flag("climbing", &f.Play.Climbing)
	flag("defense", &f.Play.Defense)
	return changed
}

func newListCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Long:  `Lists every note. --filter keeps notes whose name, number or notes contain all given words.`,
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			notes, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			notes = db.FilterNotes(notes, filter)
			return printNoteTable(cmd.OutOrStdout(), notes)
		}),
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show notes matching these words")
	return cmd
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a note",
		Example: `  frcscout add --name "Cheesy Poofs" --number 254 --shooting --climbing`,
		Args:    cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			var f model.NoteFields
			applyNoteFlags(cmd, &f)
			if f.IsEmpty() {
				return fmt.Errorf("%s", i18n.T("cli.empty_note"))
			}
			id, err := store.Create(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.note_created", id))
			return nil
		}),
	}
	noteFlags(cmd)
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			n, err := store.Get(cmd.Context(), id)
			if db.IsNotFound(err) {
				return fmt.Errorf("%s: %w", i18n.T("cli.note_missing", id), err)
			}
			if err != nil {
				return err
			}
			printNote(cmd.OutOrStdout(), n)
			return nil
		}),
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Change fields of a note",
		Long:    `Updates the fields given as flags and keeps all others.`,
		Example: `  frcscout edit 3 --notes "fast intake" --defense=false`,
		Args:    cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			n, err := store.Get(cmd.Context(), id)
			if db.IsNotFound(err) {
				return fmt.Errorf("%s: %w", i18n.T("cli.note_missing", id), err)
			}
			if err != nil {
				return err
			}
			f := n.Fields()
			if !applyNoteFlags(cmd, &f) {
				return fmt.Errorf("%s", i18n.T("cli.nothing_to_update"))
			}
			ok, err := store.Update(cmd.Context(), id, f)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: %w", i18n.T("cli.note_missing", id), db.ErrNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.note_updated", id))
			return nil
		}),
	}
	noteFlags(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete notes",
		Long:  `Deletes the given notes. Ids that do not exist are reported and skipped.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := parseNoteID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				ok, err := store.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(out, i18n.T("cli.note_deleted", id))
				} else {
					fmt.Fprintln(out, i18n.T("cli.note_missing", id))
				}
			}
			return nil
		}),
	}
}

func newMaintenanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintenance",
		Short: "Optimize, vacuum and integrity-check the database",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Adapter) error {
			if err := store.Maintain(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.maintenance_done"))
			return nil
		}),
	}
}
