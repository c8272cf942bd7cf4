package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/store"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var noteTitle string

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Keep free-form notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoteAdd,
}

var noteRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteRm,
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes, most recent first",
	Args:    cobra.NoArgs,
	RunE:    runNoteList,
}

func init() {
	noteAddCmd.Flags().StringVarP(&noteTitle, "title", "t", "", "Note title (default: first words of the content)")
	noteCmd.AddCommand(noteAddCmd, noteRmCmd, noteListCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	content := strings.Join(args, " ")
	title := noteTitle
	if title == "" {
		title = truncate(content, 40)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	n := &tracker.Note{Title: title, Content: content, CreatedAt: e.now()}
	if err := e.db.InsertNote(n); err != nil {
		return fmt.Errorf("adding note: %w", err)
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), n)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added note %s %s\n", checkMark(), output.StyleMuted.Render(shortID(n.ID)), n.Title)
	return nil
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.resolve(store.KindNote, args[0])
	if err != nil {
		return err
	}
	if err := e.db.DeleteNote(id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted note %s\n", checkMark(), shortID(id))
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	notes, err := e.db.ListNotes()
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if notes == nil {
			notes = []tracker.Note{}
		}
		return writeJSON(out, notes)
	}

	fmt.Fprintln(out, output.Section("Notes"))
	fmt.Fprintln(out)
	if len(notes) == 0 {
		fmt.Fprintln(out, " No notes yet.")
		return nil
	}

	now := e.now()
	tbl := output.NewTable("ID", "Title", "Content", "Updated")
	for _, n := range notes {
		tbl.AddRow(shortID(n.ID), n.Title, truncate(n.Content, 40), humanize.RelTime(n.UpdatedAt, now, "ago", "from now"))
	}
	tbl.Print(out)
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
