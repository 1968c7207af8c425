// Package task defines the task entity, its temporal and dependency
// predicates, recurrence derivation and SQLite persistence.
package task

import "time"

// Status is a task's GTD lifecycle state.
type Status string

// Task statuses.
const (
	StatusInbox     Status = "inbox"
	StatusNext      Status = "next"
	StatusWaiting   Status = "waiting"
	StatusSomeday   Status = "someday"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInbox, StatusNext, StatusWaiting, StatusSomeday, StatusCompleted:
		return true
	}
	return false
}

// Subtask is a checklist item within a task, completable on its own.
type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task describes a task record. The collection it lives in owns it; the
// entity itself only derives state from its own fields plus a caller-supplied
// snapshot of all tasks.
type Task struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Type               string     `json:"type,omitempty"`
	ProjectID          string     `json:"projectId,omitempty"`
	Status             Status     `json:"status"`
	Completed          bool       `json:"completed"`
	Contexts           []string   `json:"contexts"`
	Energy             string     `json:"energy,omitempty"`
	TimeMinutes        int        `json:"time,omitempty"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	DeferDate          *time.Time `json:"deferDate,omitempty"`
	WaitingFor         []string   `json:"waitingForTaskIds,omitempty"`
	WaitingForNote     string     `json:"waitingForDescription,omitempty"`
	Recurrence         string     `json:"recurrence,omitempty"`
	RecurrenceEnd      *time.Time `json:"recurrenceEndDate,omitempty"`
	RecurrenceParentID string     `json:"recurrenceParentId,omitempty"`
	Subtasks           []Subtask  `json:"subtasks,omitempty"`
	Priority           bool       `json:"priority,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

// SetCompleted toggles completion, keeping Completed, Status and CompletedAt
// consistent: CompletedAt is set exactly on the false to true transition and
// cleared on the way back. Reopening returns the task to the inbox.
func (t *Task) SetCompleted(done bool, now time.Time) {
	if done == t.Completed {
		return
	}
	t.Completed = done
	t.UpdatedAt = now
	if done {
		t.Status = StatusCompleted
		at := now
		t.CompletedAt = &at
		return
	}
	t.Status = StatusInbox
	t.CompletedAt = nil
}

// DateOnly truncates t to day granularity, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Available reports whether the task is not deferred past now.
func (t *Task) Available(now time.Time) bool {
	if t.DeferDate == nil {
		return true
	}
	return !DateOnly(*t.DeferDate).After(DateOnly(now))
}

// Overdue reports whether an incomplete task's due date has passed.
func (t *Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return DateOnly(*t.DueDate).Before(DateOnly(now))
}

// DueToday reports whether an incomplete task is due within [today, tomorrow).
func (t *Task) DueToday(now time.Time) bool {
	return t.DueWithin(now, 1)
}

// DueWithin reports whether an incomplete task is due within [today, today+n).
func (t *Task) DueWithin(now time.Time, n int) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	due := DateOnly(*t.DueDate)
	today := DateOnly(now)
	return !due.Before(today) && due.Before(today.AddDate(0, 0, n))
}

// DependenciesMet reports whether every task id in WaitingFor resolves to a
// completed task in all. An id that resolves to nothing counts as unmet, so
// a deleted prerequisite keeps its dependents blocked.
func (t *Task) DependenciesMet(all []Task) bool {
	if len(t.WaitingFor) == 0 {
		return true
	}
	byID := indexByID(all)
	for _, id := range t.WaitingFor {
		dep, ok := byID[id]
		if !ok || !dep.Completed {
			return false
		}
	}
	return true
}

// PendingDependencies returns the prerequisite tasks that still have to be
// completed, in WaitingFor order. Ids that resolve to no task are dropped.
func (t *Task) PendingDependencies(all []Task) []Task {
	if len(t.WaitingFor) == 0 {
		return nil
	}
	byID := indexByID(all)
	var pending []Task
	for _, id := range t.WaitingFor {
		dep, ok := byID[id]
		if ok && !dep.Completed {
			pending = append(pending, dep)
		}
	}
	return pending
}

func indexByID(all []Task) map[string]Task {
	byID := make(map[string]Task, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}
	return byID
}
