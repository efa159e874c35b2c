package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/jsonfile"
	"github.com/nhaldane/taskticker/internal/query"
)

// runList prints the filtered, sorted task table. With --watch it stays in
// the foreground and reprints whenever the data files change on disk, until
// interrupted.
func runList(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	render := func(tasks []*domain.Task) {
		visible := query.Sort(query.Filter(tasks, listStatus, listGroup), listSort)
		printTaskTable(out, visible)
	}
	render(tasks)

	if !listWatch {
		return nil
	}
	if a.jsonTasks == nil {
		return errors.New("--watch requires the json storage backend")
	}

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	changes, err := jsonfile.Watch(watchCtx, a.cfg.Storage.Dir, a.logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.cfg.Storage.Dir, err)
	}

	for change := range changes {
		tasks, err := a.tasks.Load(watchCtx)
		if err != nil {
			a.logger.Warn("reload after file change failed",
				slog.String("path", change.Path),
				slog.String("error", err.Error()))
			continue
		}
		fmt.Fprintf(out, "\n%s (%s)\n", change.Path, change.Op)
		render(tasks)
	}
	return nil
}

// printTaskTable renders tasks as an aligned table.
func printTaskTable(w io.Writer, tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEQ\tTITLE\tGROUP\tDUE\tPRIORITY\tSTATUS\tTAGS")
	for _, t := range tasks {
		due := "-"
		if !t.DueDate.IsZero() {
			due = t.DueDate.Format(domain.DateLayout)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), t.Sequence, t.Title, t.Group, due,
			t.Priority, t.Status, strings.Join(t.Tags, ","))
	}
	tw.Flush()
}
