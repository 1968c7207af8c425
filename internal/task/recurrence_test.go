package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrenceDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		recurrence string
		due        *time.Time
		want       *time.Time
	}{
		{"daily", RecurDaily, datePtr(2024, 1, 31), datePtr(2024, 2, 1)},
		{"weekly", RecurWeekly, datePtr(2024, 6, 12), datePtr(2024, 6, 19)},
		{"weekly across month boundary", RecurWeekly, datePtr(2024, 6, 28), datePtr(2024, 7, 5)},
		{"monthly", RecurMonthly, datePtr(2024, 3, 15), datePtr(2024, 4, 15)},
		{"monthly clamps to leap february", RecurMonthly, datePtr(2024, 1, 31), datePtr(2024, 2, 29)},
		{"monthly clamps to short february", RecurMonthly, datePtr(2023, 1, 31), datePtr(2023, 2, 28)},
		{"monthly clamps to thirty day month", RecurMonthly, datePtr(2024, 3, 31), datePtr(2024, 4, 30)},
		{"monthly across year boundary", RecurMonthly, datePtr(2024, 12, 15), datePtr(2025, 1, 15)},
		{"yearly", RecurYearly, datePtr(2024, 6, 12), datePtr(2025, 6, 12)},
		{"yearly clamps leap day", RecurYearly, datePtr(2024, 2, 29), datePtr(2025, 2, 28)},
		{"no due date falls back to today", RecurDaily, nil, datePtr(2024, 6, 13)},
		{"unknown recurrence", "fortnightly", datePtr(2024, 6, 12), nil},
		{"no recurrence", "", datePtr(2024, 6, 12), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tk := Task{Recurrence: tt.recurrence, DueDate: tt.due}
			got := tk.NextOccurrenceDate(testNow)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestShouldRecurrenceEnd(t *testing.T) {
	t.Parallel()

	assert.False(t, (&Task{Recurrence: RecurDaily}).ShouldRecurrenceEnd(testNow), "no end date")
	assert.False(t, (&Task{RecurrenceEnd: datePtr(2024, 6, 12)}).ShouldRecurrenceEnd(testNow), "ends today still recurs")
	assert.True(t, (&Task{RecurrenceEnd: datePtr(2024, 6, 11)}).ShouldRecurrenceEnd(testNow))
}

func TestNextInstance(t *testing.T) {
	t.Parallel()

	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	parent := Task{
		ID:            "root",
		Title:         "Water plants",
		Description:   "the ones on the balcony",
		Type:          "task",
		ProjectID:     "proj-1",
		Status:        StatusCompleted,
		Completed:     true,
		Contexts:      []string{"@home"},
		Energy:        "low",
		TimeMinutes:   10,
		DueDate:       datePtr(2024, 6, 12),
		DeferDate:     datePtr(2024, 6, 10),
		WaitingFor:    []string{"other"},
		Recurrence:    RecurWeekly,
		RecurrenceEnd: &end,
		Subtasks:      []Subtask{{Title: "fern", Completed: true}},
		Priority:      true,
	}

	next := parent.NextInstance(testNow)
	require.NotNil(t, next)

	assert.NotEmpty(t, next.ID)
	assert.NotEqual(t, parent.ID, next.ID)
	assert.Equal(t, parent.Title, next.Title)
	assert.Equal(t, parent.Description, next.Description)
	assert.Equal(t, parent.ProjectID, next.ProjectID)
	assert.Equal(t, StatusInbox, next.Status, "a completed parent spawns into the inbox")
	assert.False(t, next.Completed)
	require.NotNil(t, next.DueDate)
	assert.Equal(t, time.Date(2024, 6, 19, 0, 0, 0, 0, time.UTC), *next.DueDate)
	assert.Equal(t, "root", next.RecurrenceParentID)
	assert.Equal(t, parent.Recurrence, next.Recurrence)
	require.NotNil(t, next.RecurrenceEnd)
	assert.Equal(t, end, *next.RecurrenceEnd)
	assert.True(t, next.Priority)
	assert.Equal(t, testNow, next.CreatedAt)

	// Per-occurrence state does not carry over.
	assert.Nil(t, next.DeferDate)
	assert.Empty(t, next.WaitingFor)
	assert.Empty(t, next.Subtasks)
	assert.Nil(t, next.CompletedAt)

	// The contexts slice is a copy, not shared backing storage.
	require.Equal(t, parent.Contexts, next.Contexts)
	next.Contexts[0] = "@office"
	assert.Equal(t, "@home", parent.Contexts[0])
}

func TestNextInstanceParentFlattening(t *testing.T) {
	t.Parallel()

	child := Task{ID: "gen-2", Recurrence: RecurDaily, RecurrenceParentID: "root"}
	next := child.NextInstance(testNow)
	require.NotNil(t, next)
	assert.Equal(t, "root", next.RecurrenceParentID, "grandchildren point at the family root")
}

func TestNextInstanceNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, (&Task{ID: "a"}).NextInstance(testNow), "not recurring")

	ended := Task{ID: "b", Recurrence: RecurDaily, RecurrenceEnd: datePtr(2024, 1, 1)}
	assert.Nil(t, ended.NextInstance(testNow), "recurrence ended")
}
