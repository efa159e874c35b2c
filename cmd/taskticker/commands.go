package main

import (
	"github.com/spf13/cobra"

	"github.com/nhaldane/taskticker/internal/query"
)

// --- Global Command Variables ---
var (
	addGroup     string
	addDue       string
	addPriority  string
	addTags      []string
	addDependsOn string
	addNote      string
	addEvery     string
	addInterval  int
	addClone     string

	listStatus string
	listGroup  string
	listSort   string
	listWatch  bool

	rootCmd = &cobra.Command{
		Use:   "taskticker",
		Short: "A task tracker with dependencies, subtasks, and recurring tasks",
		Long: `Taskticker manages a personal task collection: tasks carry groups,
due dates, priorities, dependency links, subtask trees, and recurrence
rules. Completing a recurring task schedules its next occurrence.`,
		SilenceUsage: true,
	}

	addCmd = &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd, // Defined in cmd_add.go
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE:  runList, // Defined in cmd_list.go
	}

	toggleCmd = &cobra.Command{
		Use:   "toggle [id...]",
		Short: "Flip tasks between pending and done, scheduling recurrences",
		Long: `Toggle flips each named task's status. Completing a recurring task
schedules its next occurrence. With multiple ids the toggles are
all-or-nothing: a blocked task rolls back the toggles before it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runToggle, // Defined in cmd_toggle.go
	}

	completeCmd = &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a task done and record a completion note",
		Args:  cobra.ExactArgs(1),
		RunE:  runComplete, // Defined in cmd_complete.go
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Audit the dependency graph for cycles and dangling references",
		Args:  cobra.NoArgs,
		RunE:  runCheck, // Defined in cmd_check.go
	}

	recoverCmd = &cobra.Command{
		Use:   "recover",
		Short: "Restore the task collection from the last backup (json backend)",
		Args:  cobra.NoArgs,
		RunE:  runRecover, // Defined in cmd_recover.go
	}

	importCmd = &cobra.Command{
		Use:   "import [file]",
		Short: "Bulk-import tasks from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport, // Defined in cmd_import.go
	}

	tagsCmd = &cobra.Command{
		Use:   "tags",
		Short: "List the tag vocabulary across tasks and notes",
		Args:  cobra.NoArgs,
		RunE:  runTags, // Defined in cmd_tags.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addGroup, "group", "", "Group for the task (default General)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "Priority: normal or high")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "Comma-separated tags")
	addCmd.Flags().StringVar(&addDependsOn, "depends-on", "", "Id or id prefix of the task this one depends on")
	addCmd.Flags().StringVar(&addNote, "note", "", "Inline note text to attach")
	addCmd.Flags().StringVar(&addEvery, "every", "", "Recurrence frequency: daily, weekly, monthly, or yearly")
	addCmd.Flags().IntVar(&addInterval, "interval", 1, "Recurrence interval (every N frequency units)")
	addCmd.Flags().StringVar(&addClone, "clone", "shallow", "Recurrence clone type: shallow or deep")

	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listStatus, "status", query.StatusAll, "Filter by status: pending, done, or All")
	listCmd.Flags().StringVar(&listGroup, "group", query.GroupAll, "Filter by exact group name")
	listCmd.Flags().StringVar(&listSort, "sort", query.KeyDueDate,
		"Sort key: due_date, title, group, priority, status, sequence, or created_at")
	listCmd.Flags().BoolVar(&listWatch, "watch", false, "Keep running and re-list when the data files change (json backend)")

	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(tagsCmd)
}
