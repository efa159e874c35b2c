package domain

import "github.com/google/uuid"

// NoteRefKind discriminates the forms a task's note attachment can take.
type NoteRefKind string

// Possible note reference kinds
const (
	NoteRefNone   NoteRefKind = "none"
	NoteRefText   NoteRefKind = "text"
	NoteRefLinked NoteRefKind = "linked"
)

// NoteRef is a tagged union over the two note attachment forms: free-form
// text carried inline on the task, or a link to a stored Note by id. The
// zero value means no attachment.
type NoteRef struct {
	kind   NoteRefKind
	text   string
	noteID uuid.UUID
}

// RawText builds a NoteRef holding inline note text. Empty text yields the
// zero (none) reference.
func RawText(text string) NoteRef {
	if text == "" {
		return NoteRef{}
	}
	return NoteRef{kind: NoteRefText, text: text}
}

// LinkedNote builds a NoteRef pointing at a stored Note. The nil id yields
// the zero (none) reference.
func LinkedNote(noteID uuid.UUID) NoteRef {
	if noteID == uuid.Nil {
		return NoteRef{}
	}
	return NoteRef{kind: NoteRefLinked, noteID: noteID}
}

// Kind returns which form the reference holds.
func (r NoteRef) Kind() NoteRefKind {
	if r.kind == "" {
		return NoteRefNone
	}
	return r.kind
}

// IsZero reports whether the task has no note attachment.
func (r NoteRef) IsZero() bool {
	return r.Kind() == NoteRefNone
}

// Text returns the inline note text and whether the reference holds one.
func (r NoteRef) Text() (string, bool) {
	return r.text, r.Kind() == NoteRefText
}

// NoteID returns the linked note id and whether the reference holds one.
func (r NoteRef) NoteID() (uuid.UUID, bool) {
	return r.noteID, r.Kind() == NoteRefLinked
}
