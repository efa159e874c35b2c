package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// runRecover restores tasks.json from the backup document written on the
// last successful save.
func runRecover(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.jsonTasks == nil {
		return errors.New("recover requires the json storage backend")
	}
	if !a.jsonTasks.BackupExists() {
		return errors.New("no backup file found")
	}

	tasks, err := a.jsonTasks.RecoverFromBackup(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %d task(s) from backup.\n", len(tasks))
	return nil
}
