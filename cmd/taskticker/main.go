// Package main is the entry point for the taskticker command line tool.
// It wires configuration, logging, storage, and the task services behind a
// set of subcommands for adding, listing, completing, and auditing tasks.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error to stderr.
		os.Exit(1)
	}
}
