package task

import (
	"time"

	"github.com/google/uuid"
)

// Recurrence units.
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
	RecurYearly  = "yearly"
)

// IsRecurring reports whether the task has a recurrence set.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != ""
}

// ShouldRecurrenceEnd reports whether the recurrence end date is strictly
// before today, meaning no further occurrences are generated.
func (t *Task) ShouldRecurrenceEnd(now time.Time) bool {
	if t.RecurrenceEnd == nil {
		return false
	}
	return DateOnly(*t.RecurrenceEnd).Before(DateOnly(now))
}

// NextOccurrenceDate computes the due date of the next occurrence, advancing
// the base date (DueDate if set, else today) by one calendar unit. Monthly
// and yearly advances clamp the day-of-month to the target month's last day,
// so a task due Jan 31 recurs on Feb 29 in a leap year rather than rolling
// into March. Returns nil when the task has no recurrence.
func (t *Task) NextOccurrenceDate(now time.Time) *time.Time {
	base := DateOnly(now)
	if t.DueDate != nil {
		base = DateOnly(*t.DueDate)
	}
	var next time.Time
	switch t.Recurrence {
	case RecurDaily:
		next = base.AddDate(0, 0, 1)
	case RecurWeekly:
		next = base.AddDate(0, 0, 7)
	case RecurMonthly:
		next = addMonthsClamped(base, 1)
	case RecurYearly:
		next = addYearsClamped(base, 1)
	default:
		return nil
	}
	return &next
}

// NextInstance derives the successor of a completed recurring task. It
// returns nil when the task is not recurring or its recurrence has ended.
// The successor is a fresh record: new id, fresh timestamps, its own copy of
// the contexts set, and a back-reference to the family root (never a chain
// of parent pointers). The caller is responsible for inserting it.
func (t *Task) NextInstance(now time.Time) *Task {
	if !t.IsRecurring() || t.ShouldRecurrenceEnd(now) {
		return nil
	}
	status := t.Status
	if status == StatusCompleted {
		status = StatusInbox
	}
	parentID := t.RecurrenceParentID
	if parentID == "" {
		parentID = t.ID
	}
	next := &Task{
		ID:                 uuid.NewString(),
		Title:              t.Title,
		Description:        t.Description,
		Type:               t.Type,
		ProjectID:          t.ProjectID,
		Status:             status,
		Contexts:           append([]string(nil), t.Contexts...),
		Energy:             t.Energy,
		TimeMinutes:        t.TimeMinutes,
		DueDate:            t.NextOccurrenceDate(now),
		Recurrence:         t.Recurrence,
		RecurrenceParentID: parentID,
		Priority:           t.Priority,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if t.RecurrenceEnd != nil {
		end := *t.RecurrenceEnd
		next.RecurrenceEnd = &end
	}
	return next
}

// addMonthsClamped advances by whole calendar months, clamping the day to
// the last day of the target month instead of normalizing past it.
func addMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}

func addYearsClamped(d time.Time, years int) time.Time {
	year, month, day := d.Date()
	first := time.Date(year+years, month, 1, 0, 0, 0, 0, d.Location())
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}

func lastDayOfMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
