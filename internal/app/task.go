package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/wellwatch/internal/logging"
	"github.com/blackwell-systems/wellwatch/internal/output"
	"github.com/blackwell-systems/wellwatch/internal/store"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	taskPriority    string
	taskDescription string
	taskAll         bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Mark a completed task as open again",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskReopen,
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRm,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List open tasks (--all to include completed)",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", string(tracker.PriorityMedium), "Priority (low, medium, high)")
	taskAddCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Longer description")
	taskListCmd.Flags().BoolVarP(&taskAll, "all", "a", false, "Include completed tasks")
	taskCmd.AddCommand(taskAddCmd, taskDoneCmd, taskReopenCmd, taskRmCmd, taskListCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	priority := tracker.Priority(strings.ToLower(taskPriority))
	if !priority.Valid() {
		return fmt.Errorf("invalid priority %q (want low, medium or high)", taskPriority)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	t := &tracker.Task{
		Title:       strings.Join(args, " "),
		Description: taskDescription,
		Priority:    priority,
		CreatedAt:   e.now(),
	}
	if err := e.db.InsertTask(t); err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	logging.FromContext(cmd.Context()).Debug("task added", "id", t.ID)

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), t)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Added task %s %s\n", checkMark(), output.StyleMuted.Render(shortID(t.ID)), t.Title)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.resolve(store.KindTask, args[0])
	if err != nil {
		return err
	}
	if err := e.db.CompleteTask(id, e.now()); err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Completed task %s\n", checkMark(), shortID(id))
	return nil
}

func runTaskReopen(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.resolve(store.KindTask, args[0])
	if err != nil {
		return err
	}
	if err := e.db.ReopenTask(id); err != nil {
		return fmt.Errorf("reopening task: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Reopened task %s\n", checkMark(), shortID(id))
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.resolve(store.KindTask, args[0])
	if err != nil {
		return err
	}
	if err := e.db.DeleteTask(id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted task %s\n", checkMark(), shortID(id))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	tasks, err := e.db.ListTasks()
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}
	if !taskAll {
		var open []tracker.Task
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		tasks = open
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if tasks == nil {
			tasks = []tracker.Task{}
		}
		return writeJSON(out, tasks)
	}

	fmt.Fprintln(out, output.Section("Tasks"))
	fmt.Fprintln(out)
	if len(tasks) == 0 {
		fmt.Fprintln(out, " No tasks. Add one with 'wellwatch task add <title>'.")
		return nil
	}

	now := e.now()
	tbl := output.NewTable("ID", "Priority", "Title", "Created", "Status")
	for _, t := range tasks {
		status := "open"
		if t.Completed {
			status = output.StyleSuccess.Render("done")
			if t.CompletedAt != nil {
				status += " " + output.StyleMuted.Render(humanize.RelTime(*t.CompletedAt, now, "ago", "from now"))
			}
		}
		tbl.AddRow(
			shortID(t.ID),
			stylePriority(t.Priority),
			t.Title,
			humanize.RelTime(t.CreatedAt, now, "ago", "from now"),
			status,
		)
	}
	tbl.Print(out)
	return nil
}

// stylePriority colors a priority label: high in red, medium in yellow,
// low muted.
func stylePriority(p tracker.Priority) string {
	return stylePriorityLabel(p, strings.ToUpper(string(p)))
}

func stylePriorityLabel(p tracker.Priority, label string) string {
	switch p {
	case tracker.PriorityHigh:
		return output.StyleError.Render(label)
	case tracker.PriorityMedium:
		return output.StyleWarning.Render(label)
	default:
		return output.StyleMuted.Render(label)
	}
}
