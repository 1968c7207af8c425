package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkoval/tend/internal/quickadd"
)

// FromQuickAdd builds a fresh inbox task from a parsed quick-add line.
func FromQuickAdd(r quickadd.Result, now time.Time) Task {
	t := Task{
		ID:          uuid.NewString(),
		Title:       r.Title,
		Type:        "task",
		Status:      StatusInbox,
		Contexts:    append([]string(nil), r.Contexts...),
		Energy:      r.Energy,
		TimeMinutes: r.TimeMinutes,
		Recurrence:  r.Recurrence,
		Priority:    r.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if r.DueDate != nil {
		due := *r.DueDate
		t.DueDate = &due
	}
	return t
}
