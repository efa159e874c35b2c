package domain

import "errors"

// Frequency represents how often a recurring task repeats.
type Frequency string

// Possible recurrence frequency values
const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// CloneType controls how much of a task's subtree a recurrence clone copies.
type CloneType string

// Possible clone type values
const (
	// CloneShallow copies only the root task, dropping its subtask hierarchy.
	CloneShallow CloneType = "shallow"

	// CloneDeep recursively duplicates the entire subtask subtree with
	// fresh ids.
	CloneDeep CloneType = "deep"
)

// Common validation errors for Recurrence
var (
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
	ErrInvalidInterval  = errors.New("recurrence interval must be at least 1")
	ErrInvalidCloneType = errors.New("invalid recurrence clone type")
)

// Recurrence describes the repeat rule attached to a task. A frequency of
// none means the task does not recur; interval scales the frequency unit
// (every N days, weeks, months, or years).
type Recurrence struct {
	Frequency Frequency `json:"frequency"`
	Interval  int       `json:"interval"`
	CloneType CloneType `json:"clone_type"`
}

// DefaultRecurrence returns the rule applied when a stored task carries no
// recurrence: inactive, interval 1, shallow cloning.
func DefaultRecurrence() Recurrence {
	return Recurrence{
		Frequency: FrequencyNone,
		Interval:  1,
		CloneType: CloneShallow,
	}
}

// Active reports whether the rule actually causes recurrence.
func (r Recurrence) Active() bool {
	return r.Frequency != FrequencyNone && r.Frequency != ""
}

// withDefaults fills unset fields of a decoded rule with schema defaults.
func (r Recurrence) withDefaults() Recurrence {
	if r.Frequency == "" {
		r.Frequency = FrequencyNone
	}
	if r.Interval == 0 {
		r.Interval = 1
	}
	if r.CloneType == "" {
		r.CloneType = CloneShallow
	}
	return r
}

// Validate checks if the Recurrence has valid data.
// Returns an error if any field fails validation.
func (r Recurrence) Validate() error {
	if !isValidFrequency(r.Frequency) {
		return ErrInvalidFrequency
	}

	if r.Interval < 1 {
		return ErrInvalidInterval
	}

	if !isValidCloneType(r.CloneType) {
		return ErrInvalidCloneType
	}

	return nil
}

// isValidFrequency checks if the given frequency is a valid Frequency.
func isValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// isValidCloneType checks if the given clone type is a valid CloneType.
func isValidCloneType(c CloneType) bool {
	switch c {
	case CloneShallow, CloneDeep:
		return true
	default:
		return false
	}
}
