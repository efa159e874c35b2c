package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhaldane/taskticker/internal/validation"
)

// runCheck audits the whole dependency graph and prints the findings. The
// exit code reflects validity whether or not strict mode is configured;
// strict mode only changes which path the report arrives on.
func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, _, err := a.loadTasks(cmd.Context())
	if err != nil {
		return err
	}

	report, err := a.validator.CheckGraph(tasks)
	if err != nil {
		var strictErr *validation.StrictModeError
		if !errors.As(err, &strictErr) {
			return err
		}
		report = strictErr.Report
	}

	printReport(cmd.OutOrStdout(), report)
	if !report.IsValid {
		return fmt.Errorf("%d validation error(s)", len(report.Errors))
	}
	return nil
}

// printReport renders a graph audit report.
func printReport(w io.Writer, report *validation.Report) {
	for _, msg := range report.Errors {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
	for _, msg := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	if report.IsValid {
		fmt.Fprintf(w, "Graph OK: %d tasks visited.\n", len(report.AffectedTasks))
	}
}
