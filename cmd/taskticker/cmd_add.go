package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhaldane/taskticker/internal/domain"
)

// runAdd builds a task from the command flags, runs the creation rules
// against the existing collection, and persists it. A blocking rule aborts
// the add; a warning is printed and the add proceeds.
func runAdd(cmd *cobra.Command, args []string) error {
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

	meta := domain.TaskMeta{
		Group:    addGroup,
		Tags:     addTags,
		Sequence: len(tasks) + 1,
	}

	if addDue != "" {
		due, err := time.Parse(domain.DateLayout, addDue)
		if err != nil {
			return fmt.Errorf("invalid --due value %q, want YYYY-MM-DD", addDue)
		}
		meta.DueDate = due
	}

	if addPriority != "" {
		priority, err := domain.ParsePriority(addPriority)
		if err != nil {
			return err
		}
		meta.Priority = priority
	}

	if addDependsOn != "" {
		dep, err := findTask(tasks, addDependsOn)
		if err != nil {
			return err
		}
		meta.DependsOn = dep.ID
	}

	if addNote != "" {
		meta.Notes = domain.RawText(addNote)
	}

	if addEvery != "" {
		rule := domain.Recurrence{
			Frequency: domain.Frequency(strings.ToLower(addEvery)),
			Interval:  addInterval,
			CloneType: domain.CloneType(strings.ToLower(addClone)),
		}
		if err := rule.Validate(); err != nil {
			return err
		}
		meta.Recurrence = rule
	}

	task, err := domain.NewTask(strings.Join(args, " "), meta)
	if err != nil {
		return err
	}

	result := a.validator.CheckCreation(task, lookup)
	if result.Block {
		return errors.New(result.Message)
	}
	if result.Warn {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
	}

	tasks = append(tasks, task)
	if err := a.saveTasks(ctx, tasks); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(task.ID), task.String())
	return nil
}
