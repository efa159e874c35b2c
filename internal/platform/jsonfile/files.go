package jsonfile

import (
	"encoding/json"
	"os"
)

// Data file names within the store directory.
const (
	tasksFileName  = "tasks.json"
	backupFileName = "tasks_backup.json"
	notesFileName  = "notes.json"
)

// writeJSONFile marshals v with two-space indentation and writes it to path
// with a trailing newline.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// copyFile duplicates src to dst. The data files are small enough that a
// read-then-write copy is fine.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// fileExists reports whether path exists as a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
