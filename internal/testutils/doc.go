// Package testutils provides testing utilities shared across packages.
//
// This package contains helpers for:
// 1. Creating test domain entities (Task, Note)
// 2. Capturing structured log output in memory
//
// # Test Domain Entities
//
// For creating domain entities, use the following patterns:
//
//	// Create a task with default values:
//	task := testutils.MustNewTask(t, "Title", domain.TaskMeta{})
//
//	// Create a task due on a specific day:
//	task := testutils.MustNewTask(t, "Title", domain.TaskMeta{
//	    DueDate: testutils.Date(2024, time.June, 1),
//	})
//
// # Log Capture
//
// For asserting on log output:
//
//	logger, records := testutils.NewRecordingLogger()
//	component.Run(logger)
//	require.Contains(t, records.Messages(), "validation issue")
package testutils
