package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/validation"
)

// runImport bulk-loads tasks from a JSON document and appends them to the
// collection. The batch is screened for internal high-priority conflicts
// before anything is appended, and the combined graph is audited before
// anything is saved, so a bad import never reaches disk. Dependency ids
// inside the batch may reference each other or existing tasks; the graph
// audit catches whatever dangles.
func runImport(cmd *cobra.Command, args []string) error {
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

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	batch := []*domain.Task{}
	if err := json.Unmarshal(raw, &batch); err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}
	if len(batch) == 0 {
		return fmt.Errorf("%s contains no tasks", args[0])
	}

	for _, task := range batch {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("invalid task %q: %w", task.Title, err)
		}
		if _, exists := lookup[task.ID]; exists {
			return fmt.Errorf("task id %s already exists in the collection", task.ID)
		}
	}

	if !validation.CheckBatch(batch) {
		return errors.New("import aborted: the batch contains multiple high-priority tasks in one group")
	}

	combined := append(tasks, batch...)
	report, err := a.validator.CheckGraph(combined)
	if err != nil {
		var strictErr *validation.StrictModeError
		if !errors.As(err, &strictErr) {
			return err
		}
		report = strictErr.Report
	}
	if !report.IsValid {
		printReport(cmd.ErrOrStderr(), report)
		return fmt.Errorf("import aborted: %d validation error(s)", len(report.Errors))
	}

	if err := a.saveTasks(ctx, combined); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s) from %s.\n", len(batch), args[0])
	return nil
}
