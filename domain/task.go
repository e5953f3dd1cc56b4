package domain

import "time"

// Status is one of the three task states. There is no fixed ordering
// between them; any state is reachable from any other, subject to the
// dependency-completion guard enforced by the engine.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// StatusChange records a single transition. Status holds the state the
// task was leaving, not the one it entered.
type StatusChange struct {
	Status    Status    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}

// StatusLog tracks the current state plus the transition trail,
// newest entry first.
type StatusLog struct {
	Current Status         `json:"current_status"`
	History []StatusChange `json:"history"`
}

// Revision records one field-level edit of a task.
type Revision struct {
	Version   int       `json:"version"`
	Changes   string    `json:"changes"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// Versioning carries the optimistic-concurrency counter and the edit
// trail, newest entry first. Current starts at 1 and moves forward on
// every persisted mutation.
type Versioning struct {
	Current int        `json:"current_version"`
	History []Revision `json:"history"`
}

// Task is the aggregate the engine operates on.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueDate       time.Time  `json:"due_date"`
	ParentTaskID  string     `json:"parent_task_id,omitempty"`
	Dependencies  []string   `json:"dependencies"`
	AssignedUsers []string   `json:"assigned_users"`
	Status        StatusLog  `json:"status"`
	Versioning    Versioning `json:"versioning"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DependsOn reports whether the dependency edge is already declared.
func (t *Task) DependsOn(id string) bool {
	if t == nil {
		return false
	}
	for _, dep := range t.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// IsAssigned reports whether the user already appears in AssignedUsers.
func (t *Task) IsAssigned(userID string) bool {
	if t == nil {
		return false
	}
	for _, id := range t.AssignedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// RecordStatus prepends the state being left to the history and moves
// the task into next.
func (t *Task) RecordStatus(next Status, changedBy string, at time.Time) {
	entry := StatusChange{
		Status:    t.Status.Current,
		ChangedAt: at,
		ChangedBy: changedBy,
	}
	t.Status.History = append([]StatusChange{entry}, t.Status.History...)
	t.Status.Current = next
}

// RecordRevision prepends an edit entry and advances the version counter.
func (t *Task) RecordRevision(changes, updatedBy string, at time.Time) {
	t.Versioning.Current++
	entry := Revision{
		Version:   t.Versioning.Current,
		Changes:   changes,
		UpdatedAt: at,
		UpdatedBy: updatedBy,
	}
	t.Versioning.History = append([]Revision{entry}, t.Versioning.History...)
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status.Current == StatusDone
}
