package domain

import (
	"testing"
)

func TestTagRegistry(t *testing.T) {
	t.Parallel() // Enable parallel execution
	registry := NewTagRegistry()

	registry.Add("Errands", "home", "  ", "")
	registry.Add("HOME")

	if registry.Len() != 2 {
		t.Fatalf("Expected 2 tags after normalization, got %d", registry.Len())
	}

	if !registry.Contains("home") || !registry.Contains("ERRANDS") {
		t.Error("Expected Contains to match case-insensitively")
	}

	all := registry.All()
	if len(all) != 2 || all[0] != "errands" || all[1] != "home" {
		t.Errorf("Expected sorted tags [errands home], got %v", all)
	}

	registry.Remove("Home")
	if registry.Contains("home") {
		t.Error("Expected tag to be removed")
	}
	if registry.Len() != 1 {
		t.Errorf("Expected 1 tag, got %d", registry.Len())
	}
}

func TestNoteRef(t *testing.T) {
	t.Parallel() // Enable parallel execution
	var zero NoteRef
	if !zero.IsZero() || zero.Kind() != NoteRefNone {
		t.Error("Expected zero value to be the none reference")
	}

	text := RawText("remember the milk")
	if text.Kind() != NoteRefText {
		t.Errorf("Expected text kind, got %s", text.Kind())
	}
	if got, ok := text.Text(); !ok || got != "remember the milk" {
		t.Errorf("Expected text payload, got %q (ok=%v)", got, ok)
	}
	if _, ok := text.NoteID(); ok {
		t.Error("Expected no note id on a text reference")
	}

	if !RawText("").IsZero() {
		t.Error("Expected empty text to collapse to none")
	}

	note, err := NewNote("body", "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	linked := LinkedNote(note.ID)
	if linked.Kind() != NoteRefLinked {
		t.Errorf("Expected linked kind, got %s", linked.Kind())
	}
	if got, ok := linked.NoteID(); !ok || got != note.ID {
		t.Errorf("Expected note id payload, got %s (ok=%v)", got, ok)
	}
}
