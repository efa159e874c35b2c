package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Note
var (
	ErrEmptyNoteID      = errors.New("note ID cannot be empty")
	ErrEmptyNoteContent = errors.New("note content cannot be empty")
)

// Note is a free-form text record optionally linked back to a task. Prior
// content revisions accumulate in History, newest last. A note does not own
// its task; the Task→Note reference is the owning direction.
type Note struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tags      []string
	Label     string
	History   []string
	TaskID    uuid.UUID
}

// NewNote creates a new Note with the given content, optional label, and
// tags. It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewNote(content, label string, tags []string) (*Note, error) {
	now := time.Now().UTC()
	note := &Note{
		ID:        uuid.New(),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      tags,
		Label:     label,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
// Returns an error if any field fails validation.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNoteID
	}

	if n.Content == "" {
		return ErrEmptyNoteContent
	}

	return nil
}

// UpdateContent replaces the note body, archiving the previous revision at
// the end of History and bumping UpdatedAt.
func (n *Note) UpdateContent(content string) error {
	if content == "" {
		return ErrEmptyNoteContent
	}

	n.History = append(n.History, n.Content)
	n.Content = content
	n.UpdatedAt = time.Now().UTC()
	return nil
}

// noteRecord is the flat wire form of a Note.
type noteRecord struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags,omitempty"`
	Label     string    `json:"label,omitempty"`
	History   []string  `json:"history,omitempty"`
	TaskID    string    `json:"task_id,omitempty"`
}

// MarshalJSON implements json.Marshaler using the flat wire form.
func (n Note) MarshalJSON() ([]byte, error) {
	rec := noteRecord{
		ID:        n.ID.String(),
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Tags:      n.Tags,
		Label:     n.Label,
		History:   n.History,
	}

	if n.TaskID != uuid.Nil {
		rec.TaskID = n.TaskID.String()
	}

	return json.Marshal(rec)
}

// UnmarshalJSON implements json.Unmarshaler for the flat wire form.
func (n *Note) UnmarshalJSON(data []byte) error {
	var rec noteRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("%w: note id %q", ErrInvalidID, rec.ID)
	}

	taskID, err := parseOptionalID(rec.TaskID)
	if err != nil {
		return fmt.Errorf("%w: task_id %q", ErrInvalidID, rec.TaskID)
	}

	n.ID = id
	n.Content = rec.Content
	n.CreatedAt = rec.CreatedAt
	n.UpdatedAt = rec.UpdatedAt
	n.Tags = rec.Tags
	n.Label = rec.Label
	n.History = rec.History
	n.TaskID = taskID

	return nil
}
