package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask("  Write report  ", TaskMeta{Group: "work projects"})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Title != "Write report" {
		t.Errorf("Expected trimmed title %q, got %q", "Write report", task.Title)
	}

	if task.Group != "Work Projects" {
		t.Errorf("Expected title-cased group %q, got %q", "Work Projects", task.Group)
	}

	if task.Status != StatusPending {
		t.Errorf("Expected status %s, got %s", StatusPending, task.Status)
	}

	if task.Priority != PriorityNormal {
		t.Errorf("Expected priority %s, got %s", PriorityNormal, task.Priority)
	}

	if task.Sequence != 1 {
		t.Errorf("Expected default sequence 1, got %d", task.Sequence)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if !task.DueDate.Equal(DateOf(task.CreatedAt)) {
		t.Errorf("Expected due date to default to creation date, got %v", task.DueDate)
	}

	if task.Recurrence != DefaultRecurrence() {
		t.Errorf("Expected default recurrence, got %+v", task.Recurrence)
	}

	// Test empty group falls back to General
	task, err = NewTask("Dishes", TaskMeta{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Group != GroupGeneral {
		t.Errorf("Expected group %q, got %q", GroupGeneral, task.Group)
	}

	// Test empty title is rejected
	_, err = NewTask("   ", TaskMeta{})
	if !errors.Is(err, ErrEmptyTaskTitle) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	valid := Task{
		ID:         uuid.New(),
		Title:      "Test task",
		Group:      GroupGeneral,
		Priority:   PriorityNormal,
		Status:     StatusPending,
		Recurrence: DefaultRecurrence(),
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	testCases := []struct {
		name     string
		mutate   func(task *Task)
		expected error
	}{
		{
			name:     "nil ID",
			mutate:   func(task *Task) { task.ID = uuid.Nil },
			expected: ErrEmptyTaskID,
		},
		{
			name:     "blank title",
			mutate:   func(task *Task) { task.Title = "  " },
			expected: ErrEmptyTaskTitle,
		},
		{
			name:     "blank group",
			mutate:   func(task *Task) { task.Group = "" },
			expected: ErrEmptyTaskGroup,
		},
		{
			name:     "unknown priority",
			mutate:   func(task *Task) { task.Priority = "urgent" },
			expected: ErrInvalidTaskPriority,
		},
		{
			name:     "unknown status",
			mutate:   func(task *Task) { task.Status = "archived" },
			expected: ErrInvalidTaskStatus,
		},
		{
			name:     "self dependency",
			mutate:   func(task *Task) { task.DependsOn = task.ID },
			expected: ErrSelfDependency,
		},
		{
			name:     "zero recurrence interval",
			mutate:   func(task *Task) { task.Recurrence.Interval = 0 },
			expected: ErrInvalidInterval,
		},
		{
			name:     "unknown clone type",
			mutate:   func(task *Task) { task.Recurrence.CloneType = "partial" },
			expected: ErrInvalidCloneType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task := valid
			tc.mutate(&task)

			if err := task.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestTaskIsBlocked(t *testing.T) {
	t.Parallel() // Enable parallel execution
	depID := uuid.New()

	testCases := []struct {
		name     string
		depends  uuid.UUID
		lookup   Lookup
		expected bool
	}{
		{
			name:     "no dependency",
			depends:  uuid.Nil,
			lookup:   Lookup{},
			expected: false,
		},
		{
			name:    "pending dependency blocks",
			depends: depID,
			lookup: Lookup{
				depID: {ID: depID, Status: StatusPending},
			},
			expected: true,
		},
		{
			name:    "done dependency does not block",
			depends: depID,
			lookup: Lookup{
				depID: {ID: depID, Status: StatusDone},
			},
			expected: false,
		},
		{
			name:     "missing dependency fails open",
			depends:  depID,
			lookup:   Lookup{},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task := Task{ID: uuid.New(), DependsOn: tc.depends}

			if got := task.IsBlocked(tc.lookup); got != tc.expected {
				t.Errorf("Expected IsBlocked=%v, got %v", tc.expected, got)
			}
		})
	}
}

func TestTaskIsParentBlocked(t *testing.T) {
	t.Parallel() // Enable parallel execution
	doneID := uuid.New()
	pendingID := uuid.New()
	missingID := uuid.New()

	lookup := Lookup{
		doneID:    {ID: doneID, Status: StatusDone},
		pendingID: {ID: pendingID, Status: StatusPending},
	}

	testCases := []struct {
		name     string
		subtasks []uuid.UUID
		expected bool
	}{
		{
			name:     "no subtasks",
			subtasks: nil,
			expected: false,
		},
		{
			name:     "all subtasks done",
			subtasks: []uuid.UUID{doneID},
			expected: false,
		},
		{
			name:     "pending subtask blocks",
			subtasks: []uuid.UUID{doneID, pendingID},
			expected: true,
		},
		{
			name:     "missing subtask ids are skipped",
			subtasks: []uuid.UUID{missingID, doneID},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task := Task{ID: uuid.New(), Subtasks: tc.subtasks}

			if got := task.IsParentBlocked(lookup); got != tc.expected {
				t.Errorf("Expected IsParentBlocked=%v, got %v", tc.expected, got)
			}
		})
	}
}

func TestTaskJSONRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution
	depID := uuid.New()
	parentID := uuid.New()
	subIDs := []uuid.UUID{uuid.New(), uuid.New()}
	noteID := uuid.New()
	created := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	original := Task{
		ID:        uuid.New(),
		Title:     "Quarterly review",
		Group:     "Work",
		DueDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: created,
		Priority:  PriorityHigh,
		Status:    StatusPending,
		Sequence:  3,
		DependsOn: depID,
		Notes:     LinkedNote(noteID),
		Tags:      []string{"finance", "q2"},
		Recurrence: Recurrence{
			Frequency: FrequencyMonthly,
			Interval:  2,
			CloneType: CloneDeep,
		},
		ParentID: parentID,
		Subtasks: subIDs,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Expected no error marshaling, got %v", err)
	}

	var decoded Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected no error unmarshaling, got %v", err)
	}

	if decoded.ID != original.ID {
		t.Errorf("Expected id %s, got %s", original.ID, decoded.ID)
	}
	if decoded.Title != original.Title {
		t.Errorf("Expected title %q, got %q", original.Title, decoded.Title)
	}
	if decoded.Group != original.Group {
		t.Errorf("Expected group %q, got %q", original.Group, decoded.Group)
	}
	if !decoded.DueDate.Equal(original.DueDate) {
		t.Errorf("Expected due date %v, got %v", original.DueDate, decoded.DueDate)
	}
	if !decoded.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("Expected created at %v, got %v", original.CreatedAt, decoded.CreatedAt)
	}
	if decoded.Priority != original.Priority || decoded.Status != original.Status {
		t.Errorf("Expected priority/status %s/%s, got %s/%s",
			original.Priority, original.Status, decoded.Priority, decoded.Status)
	}
	if decoded.Sequence != original.Sequence {
		t.Errorf("Expected sequence %d, got %d", original.Sequence, decoded.Sequence)
	}
	if decoded.DependsOn != depID {
		t.Errorf("Expected depends_on %s, got %s", depID, decoded.DependsOn)
	}
	if gotID, ok := decoded.Notes.NoteID(); !ok || gotID != noteID {
		t.Errorf("Expected linked note %s, got %+v", noteID, decoded.Notes)
	}
	if len(decoded.Tags) != 2 || decoded.Tags[0] != "finance" || decoded.Tags[1] != "q2" {
		t.Errorf("Expected tags to round-trip, got %v", decoded.Tags)
	}
	if decoded.Recurrence != original.Recurrence {
		t.Errorf("Expected recurrence %+v, got %+v", original.Recurrence, decoded.Recurrence)
	}
	if decoded.ParentID != parentID {
		t.Errorf("Expected parent_id %s, got %s", parentID, decoded.ParentID)
	}
	if len(decoded.Subtasks) != 2 || decoded.Subtasks[0] != subIDs[0] || decoded.Subtasks[1] != subIDs[1] {
		t.Errorf("Expected subtasks to round-trip in order, got %v", decoded.Subtasks)
	}
}

func TestTaskUnmarshalDefaults(t *testing.T) {
	t.Parallel() // Enable parallel execution
	raw := `{
		"id": "` + uuid.New().String() + `",
		"title": "Water plants",
		"group": "Home",
		"created_at": "2024-05-01T08:00:00Z",
		"priority": "normal",
		"status": "pending",
		"sequence": 1
	}`

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !task.DueDate.IsZero() {
		t.Errorf("Expected missing due date to stay unset, got %v", task.DueDate)
	}

	if task.Recurrence != DefaultRecurrence() {
		t.Errorf("Expected missing recurrence to default, got %+v", task.Recurrence)
	}

	if !task.Notes.IsZero() {
		t.Errorf("Expected no note attachment, got %+v", task.Notes)
	}

	if task.DependsOn != uuid.Nil || task.ParentID != uuid.Nil {
		t.Error("Expected optional references to stay unset")
	}

	// Partial recurrence objects fill in schema defaults
	raw = `{
		"id": "` + uuid.New().String() + `",
		"title": "Stretch",
		"group": "Health",
		"created_at": "2024-05-01T08:00:00Z",
		"priority": "normal",
		"status": "pending",
		"sequence": 1,
		"recurrence": {"frequency": "daily"}
	}`

	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := Recurrence{Frequency: FrequencyDaily, Interval: 1, CloneType: CloneShallow}
	if task.Recurrence != expected {
		t.Errorf("Expected partial recurrence %+v, got %+v", expected, task.Recurrence)
	}
}

func TestTaskUnmarshalRejectsBadIDs(t *testing.T) {
	t.Parallel() // Enable parallel execution
	raw := `{"id": "not-a-uuid", "title": "x", "group": "General", "priority": "normal", "status": "pending", "sequence": 1}`

	var task Task
	err := json.Unmarshal([]byte(raw), &task)
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}
}

func TestLinkNote(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask("Read book", TaskMeta{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	note, err := NewNote("Chapter summaries", "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	task.LinkNote(note)

	gotID, ok := task.Notes.NoteID()
	if !ok || gotID != note.ID {
		t.Errorf("Expected task to link note %s, got %+v", note.ID, task.Notes)
	}

	if note.TaskID != task.ID {
		t.Errorf("Expected note back-reference %s, got %s", task.ID, note.TaskID)
	}

	task.ClearNote()
	if !task.Notes.IsZero() {
		t.Errorf("Expected cleared note reference, got %+v", task.Notes)
	}
}

func TestTitleCaseGroup(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "lower case words", in: "work projects", expected: "Work Projects"},
		{name: "already cased", in: "Home", expected: "Home"},
		{name: "surrounding space", in: "  errands  ", expected: "Errands"},
		{name: "empty falls back", in: "", expected: GroupGeneral},
		{name: "blank falls back", in: "   ", expected: GroupGeneral},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TitleCaseGroup(tc.in); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestParseStatusAndPriority(t *testing.T) {
	t.Parallel() // Enable parallel execution
	status, err := ParseStatus(" Done ")
	if err != nil || status != StatusDone {
		t.Errorf("Expected %s, got %s (err %v)", StatusDone, status, err)
	}

	if _, err := ParseStatus("archived"); !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	priority, err := ParsePriority("HIGH")
	if err != nil || priority != PriorityHigh {
		t.Errorf("Expected %s, got %s (err %v)", PriorityHigh, priority, err)
	}

	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidTaskPriority) {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}
}

func TestNewLookup(t *testing.T) {
	t.Parallel() // Enable parallel execution
	first, _ := NewTask("First", TaskMeta{})
	second, _ := NewTask("Second", TaskMeta{})

	lookup := NewLookup([]*Task{first, second})

	if len(lookup) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(lookup))
	}

	if lookup[first.ID] != first || lookup[second.ID] != second {
		t.Error("Expected lookup to index tasks by id")
	}

	lookup.Remove(first.ID)
	if _, ok := lookup[first.ID]; ok {
		t.Error("Expected Remove to drop the entry")
	}

	lookup.Add(first)
	if lookup[first.ID] != first {
		t.Error("Expected Add to re-index the task")
	}
}
