package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the wire encoding for calendar dates.
const DateLayout = "2006-01-02"

// GroupGeneral is the group assigned to tasks created without one.
const GroupGeneral = "General"

// Status represents a task's completion state
type Status string

// Possible task status values
const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Priority represents a task's urgency level
type Priority string

// Possible task priority values
const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrEmptyTaskGroup      = errors.New("task group cannot be empty")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrSelfDependency      = errors.New("task cannot depend on itself")
)

// Task is the core record of the engine: a unit of work carrying grouping,
// scheduling, dependency, and recurrence state. Dependency and subtask
// links are held as ids and resolved through a caller-maintained Lookup;
// the entity never reaches into a collection on its own.
type Task struct {
	ID         uuid.UUID
	Title      string
	Group      string
	DueDate    time.Time
	CreatedAt  time.Time
	Priority   Priority
	Status     Status
	Sequence   int
	DependsOn  uuid.UUID
	Notes      NoteRef
	Tags       []string
	Recurrence Recurrence
	ParentID   uuid.UUID
	Subtasks   []uuid.UUID
}

// TaskMeta bundles the optional attributes accepted when constructing a
// Task. Zero fields take the documented defaults, so callers populate only
// what they care about.
type TaskMeta struct {
	Group      string
	DueDate    time.Time
	Priority   Priority
	Status     Status
	Sequence   int
	DependsOn  uuid.UUID
	Notes      NoteRef
	Tags       []string
	Recurrence Recurrence
	ParentID   uuid.UUID
	Subtasks   []uuid.UUID
	TaskID     uuid.UUID
	CreatedAt  time.Time
}

// NewTask creates a new Task with the given title and metadata. Zero meta
// fields default to: a fresh id, group "General", due date today, priority
// normal, status pending, sequence 1, and an inactive recurrence. The group
// is title-cased. Returns an error if validation fails.
func NewTask(title string, meta TaskMeta) (*Task, error) {
	id := meta.TaskID
	if id == uuid.Nil {
		id = uuid.New()
	}

	createdAt := meta.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	due := meta.DueDate
	if due.IsZero() {
		due = DateOf(createdAt)
	}

	priority := meta.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	status := meta.Status
	if status == "" {
		status = StatusPending
	}

	sequence := meta.Sequence
	if sequence == 0 {
		sequence = 1
	}

	recurrence := meta.Recurrence
	if recurrence == (Recurrence{}) {
		recurrence = DefaultRecurrence()
	}

	task := &Task{
		ID:         id,
		Title:      strings.TrimSpace(title),
		Group:      TitleCaseGroup(meta.Group),
		DueDate:    due,
		CreatedAt:  createdAt,
		Priority:   priority,
		Status:     status,
		Sequence:   sequence,
		DependsOn:  meta.DependsOn,
		Notes:      meta.Notes,
		Tags:       meta.Tags,
		Recurrence: recurrence,
		ParentID:   meta.ParentID,
		Subtasks:   meta.Subtasks,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if strings.TrimSpace(t.Group) == "" {
		return ErrEmptyTaskGroup
	}

	if !isValidPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	if !isValidStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if t.DependsOn != uuid.Nil && t.DependsOn == t.ID {
		return ErrSelfDependency
	}

	return t.Recurrence.Validate()
}

// IsDone reports whether the task has been completed.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsBlocked reports whether an incomplete dependency prevents completing
// this task. A depends_on id that does not resolve in lookup is treated as
// not blocking: a stale reference must never freeze a task, and referential
// integrity is audited separately by the graph validator.
func (t *Task) IsBlocked(lookup Lookup) bool {
	if t.DependsOn == uuid.Nil {
		return false
	}
	dep, ok := lookup[t.DependsOn]
	return ok && !dep.IsDone()
}

// IsParentBlocked reports whether any subtask resolves to an incomplete
// task. Subtask ids missing from lookup are skipped.
func (t *Task) IsParentBlocked(lookup Lookup) bool {
	for _, subID := range t.Subtasks {
		if sub, ok := lookup[subID]; ok && !sub.IsDone() {
			return true
		}
	}
	return false
}

// LinkNote attaches a stored note to the task and back-references the task
// from the note.
func (t *Task) LinkNote(note *Note) {
	t.Notes = LinkedNote(note.ID)
	note.TaskID = t.ID
}

// ClearNote detaches any note attachment from the task.
func (t *Task) ClearNote() {
	t.Notes = NoteRef{}
}

// String renders the single-row display form of the task.
func (t *Task) String() string {
	mark := ""
	if t.IsDone() {
		mark = "✔ "
	}
	due := "none"
	if !t.DueDate.IsZero() {
		due = t.DueDate.Format(DateLayout)
	}
	return fmt.Sprintf("[%d] %s%s (Due: %s)", t.Sequence, mark, t.Title, due)
}

// taskRecord is the flat wire form of a Task. Calendar dates use
// DateLayout; optional references encode as strings and are omitted when
// unset. An inline note travels in notes, a stored-note link in note_id.
type taskRecord struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Group      string      `json:"group"`
	DueDate    string      `json:"due_date,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	Priority   Priority    `json:"priority"`
	Status     Status      `json:"status"`
	Sequence   int         `json:"sequence"`
	DependsOn  string      `json:"depends_on,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	NoteID     string      `json:"note_id,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Recurrence *Recurrence `json:"recurrence"`
	ParentID   string      `json:"parent_id,omitempty"`
	Subtasks   []string    `json:"subtasks,omitempty"`
}

// MarshalJSON implements json.Marshaler using the flat wire form.
func (t Task) MarshalJSON() ([]byte, error) {
	rec := taskRecord{
		ID:         t.ID.String(),
		Title:      t.Title,
		Group:      t.Group,
		CreatedAt:  t.CreatedAt,
		Priority:   t.Priority,
		Status:     t.Status,
		Sequence:   t.Sequence,
		Tags:       t.Tags,
		Recurrence: &t.Recurrence,
	}

	if !t.DueDate.IsZero() {
		rec.DueDate = t.DueDate.Format(DateLayout)
	}
	if t.DependsOn != uuid.Nil {
		rec.DependsOn = t.DependsOn.String()
	}
	if t.ParentID != uuid.Nil {
		rec.ParentID = t.ParentID.String()
	}
	if text, ok := t.Notes.Text(); ok {
		rec.Notes = text
	}
	if noteID, ok := t.Notes.NoteID(); ok {
		rec.NoteID = noteID.String()
	}
	if len(t.Subtasks) > 0 {
		rec.Subtasks = make([]string, len(t.Subtasks))
		for i, subID := range t.Subtasks {
			rec.Subtasks[i] = subID.String()
		}
	}

	return json.Marshal(rec)
}

// UnmarshalJSON implements json.Unmarshaler for the flat wire form.
// Missing optional fields take their schema defaults; in particular a
// missing recurrence decodes as the inactive default rule.
func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("%w: task id %q", ErrInvalidID, rec.ID)
	}

	dependsOn, err := parseOptionalID(rec.DependsOn)
	if err != nil {
		return fmt.Errorf("%w: depends_on %q", ErrInvalidID, rec.DependsOn)
	}

	parentID, err := parseOptionalID(rec.ParentID)
	if err != nil {
		return fmt.Errorf("%w: parent_id %q", ErrInvalidID, rec.ParentID)
	}

	var due time.Time
	if rec.DueDate != "" {
		due, err = time.Parse(DateLayout, rec.DueDate)
		if err != nil {
			return fmt.Errorf("%w: due_date %q", ErrInvalidFormat, rec.DueDate)
		}
	}

	var subtasks []uuid.UUID
	if len(rec.Subtasks) > 0 {
		subtasks = make([]uuid.UUID, len(rec.Subtasks))
		for i, raw := range rec.Subtasks {
			subtasks[i], err = uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("%w: subtask id %q", ErrInvalidID, raw)
			}
		}
	}

	recurrence := DefaultRecurrence()
	if rec.Recurrence != nil {
		recurrence = rec.Recurrence.withDefaults()
	}

	var notes NoteRef
	switch {
	case rec.NoteID != "":
		noteID, err := uuid.Parse(rec.NoteID)
		if err != nil {
			return fmt.Errorf("%w: note_id %q", ErrInvalidID, rec.NoteID)
		}
		notes = LinkedNote(noteID)
	case rec.Notes != "":
		notes = RawText(rec.Notes)
	}

	t.ID = id
	t.Title = rec.Title
	t.Group = rec.Group
	t.DueDate = due
	t.CreatedAt = rec.CreatedAt
	t.Priority = rec.Priority
	t.Status = rec.Status
	t.Sequence = rec.Sequence
	t.DependsOn = dependsOn
	t.Notes = notes
	t.Tags = rec.Tags
	t.Recurrence = recurrence
	t.ParentID = parentID
	t.Subtasks = subtasks

	return nil
}

// ParseStatus converts user input to a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !isValidStatus(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
	return status, nil
}

// ParsePriority converts user input to a Priority, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !isValidPriority(priority) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskPriority, s)
	}
	return priority, nil
}

// TitleCaseGroup normalizes a group name to its display form: title-cased
// and trimmed, defaulting to GroupGeneral when empty.
func TitleCaseGroup(group string) string {
	g := strings.TrimSpace(cases.Title(language.English).String(group))
	if g == "" {
		return GroupGeneral
	}
	return g
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// parseOptionalID parses a uuid string that may be empty.
func parseOptionalID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

// isValidStatus checks if the given status is a valid Status.
func isValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusDone:
		return true
	default:
		return false
	}
}

// isValidPriority checks if the given priority is a valid Priority.
func isValidPriority(p Priority) bool {
	switch p {
	case PriorityNormal, PriorityHigh:
		return true
	default:
		return false
	}
}
