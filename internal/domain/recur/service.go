package recur

import (
	"errors"
	"time"

	"github.com/nhaldane/taskticker/internal/domain"
)

// Common errors
var (
	ErrInactiveRule = errors.New("recurrence rule is inactive")
)

// Scheduler defines the interface for recurrence schedule operations
type Scheduler interface {
	// NextDue computes the due date that follows due for an active rule.
	// A zero due falls back to now's calendar date, so a task without a
	// due date still recurs from the day it was completed.
	NextDue(rec domain.Recurrence, due time.Time, now time.Time) (time.Time, error)
}

// defaultScheduler is the standard implementation of the Scheduler interface
type defaultScheduler struct {
	params *Params
}

// NewDefaultScheduler creates a new scheduler with default parameters
func NewDefaultScheduler() Scheduler {
	return &defaultScheduler{
		params: NewDefaultParams(),
	}
}

// NewSchedulerWithParams creates a new scheduler with custom parameters
func NewSchedulerWithParams(params *Params) Scheduler {
	return &defaultScheduler{
		params: params,
	}
}

// NextDue implements the Scheduler interface
func (s *defaultScheduler) NextDue(
	rec domain.Recurrence,
	due time.Time,
	now time.Time,
) (time.Time, error) {
	if !rec.Active() {
		return time.Time{}, ErrInactiveRule
	}

	if err := rec.Validate(); err != nil {
		return time.Time{}, err
	}

	base := due
	if base.IsZero() {
		base = domain.DateOf(now)
	}

	return nextDueDate(base, rec.Frequency, rec.Interval, s.params), nil
}
