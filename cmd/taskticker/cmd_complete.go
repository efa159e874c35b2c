package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// runComplete marks a task done without touching its recurrence rule. The
// completion event handler records a summary note before the collection is
// saved.
func runComplete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	tasks, lookup, err := a.loadTasks(ctx)
	if err != nil {
		return err
	}

	task, err := findTask(tasks, args[0])
	if err != nil {
		return err
	}

	if err := a.lifecycle.Complete(ctx, task, lookup, time.Now().UTC()); err != nil {
		return err
	}

	if err := a.saveTasks(ctx, tasks); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Completed %q.\n", task.Title)
	return nil
}
