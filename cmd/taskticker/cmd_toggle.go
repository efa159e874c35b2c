package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/undo"
)

// runToggle flips one or more tasks between pending and done. Completing a
// recurring task appends the clones the lifecycle service returns, so deep
// clones land with their whole subtree. With multiple ids the toggles are
// all-or-nothing: each applied toggle is recorded on an undo ledger, and a
// rejected toggle unwinds the ones before it so nothing is saved.
func runToggle(cmd *cobra.Command, args []string) error {
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

	ledger := undo.New(a.cfg.Undo.Limit, a.logger)

	for _, ref := range args {
		task, err := findTask(tasks, ref)
		if err != nil {
			unwind(ledger)
			return err
		}

		before := task.Status
		clones, err := a.lifecycle.Toggle(task, lookup, time.Now().UTC())
		if err != nil {
			unwind(ledger)
			return fmt.Errorf("%q: %w", task.Title, err)
		}
		after := task.Status

		for _, clone := range clones {
			tasks = append(tasks, clone)
			lookup.Add(clone)
		}

		ledger.Register(undo.Func(
			func() error {
				task.Status = after
				for _, clone := range clones {
					tasks = append(tasks, clone)
					lookup.Add(clone)
				}
				return nil
			},
			func() error {
				task.Status = before
				tasks = tasks[:len(tasks)-len(clones)]
				for _, clone := range clones {
					lookup.Remove(clone.ID)
				}
				return nil
			},
		))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%q is now %s.\n", task.Title, task.Status)
		if len(clones) > 0 {
			root := clones[0]
			fmt.Fprintf(out, "Next occurrence %s due %s",
				shortID(root.ID), root.DueDate.Format(domain.DateLayout))
			if len(clones) > 1 {
				fmt.Fprintf(out, " with %d subtasks", len(clones)-1)
			}
			fmt.Fprintln(out, ".")
		}
	}

	return a.saveTasks(ctx, tasks)
}

// unwind rolls back every toggle recorded on the ledger, newest first.
func unwind(ledger *undo.Manager) {
	for ledger.Undo() {
	}
}
