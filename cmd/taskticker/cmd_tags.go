package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhaldane/taskticker/internal/domain"
)

// runTags prints the tag vocabulary in use across tasks and notes, one tag
// per line, sorted. The registry is rebuilt from the stored entities on
// every invocation; it holds no state of its own between runs.
func runTags(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	tasks, _, err := a.loadTasks(ctx)
	if err != nil {
		return err
	}
	notes, err := a.notes.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	registry := domain.NewTagRegistry()
	for _, t := range tasks {
		registry.Add(t.Tags...)
	}
	for _, n := range notes {
		registry.Add(n.Tags...)
	}

	out := cmd.OutOrStdout()
	if registry.Len() == 0 {
		fmt.Fprintln(out, "No tags in use.")
		return nil
	}
	for _, tag := range registry.All() {
		fmt.Fprintln(out, tag)
	}
	return nil
}
