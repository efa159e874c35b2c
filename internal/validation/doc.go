// Package validation audits tasks against configurable rules: single-task
// pre-insertion checks, whole-graph structural audits (cycle detection,
// dangling references, ordering), and group constraints such as unique
// names and high-priority exclusivity. Rule violations are returned as
// data; only strict mode escalates a failed graph audit into an error.
package validation
