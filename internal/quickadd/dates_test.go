package quickadd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDatePatterns(t *testing.T) {
	t.Parallel()

	// now is Wednesday 2024-06-12.
	tests := []struct {
		name  string
		input string
		due   time.Time
		title string
	}{
		{"today", "Submit form today", date(2024, 6, 12), "Submit form"},
		{"tomorrow", "Submit form tomorrow", date(2024, 6, 13), "Submit form"},
		{"next week", "Book flights next week", date(2024, 6, 19), "Book flights"},
		{"in n days", "Renew passport in 10 days", date(2024, 6, 22), "Renew passport"},
		{"in n weeks", "Rotate tires in 3 weeks", date(2024, 7, 3), "Rotate tires"},
		{"explicit slash date", "Dentist 7/25", date(2024, 7, 25), "Dentist"},
		{"explicit date with on preposition", "Dentist on 7/25", date(2024, 7, 25), "Dentist"},
		{"explicit date with year", "Renew license 3/14/2025", date(2025, 3, 14), "Renew license"},
		{"explicit dash date with short year", "File forms 3-14-25", date(2025, 3, 14), "File forms"},
		{"same weekday rolls a week", "Water plants wednesday", date(2024, 6, 19), "Water plants"},
		{"future weekday", "Gym friday", date(2024, 6, 14), "Gym"},
		{"past weekday wraps", "Call plumber monday", date(2024, 6, 17), "Call plumber"},
		{"next weekday adds a week", "Lunch next friday", date(2024, 6, 21), "Lunch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Parse(tt.input, now)
			require.NotNil(t, res.DueDate, "input %q", tt.input)
			assert.Equal(t, tt.due, *res.DueDate)
			assert.Equal(t, tt.title, res.Title)
		})
	}
}

func TestParseDueDatePrecedence(t *testing.T) {
	t.Parallel()

	// "tomorrow" outranks the weekday mention, and both phrases are
	// scrubbed from the title by the cleanup pass.
	res := Parse("Prep slides tomorrow not friday", now)
	require.NotNil(t, res.DueDate)
	assert.Equal(t, date(2024, 6, 13), *res.DueDate)
	assert.Equal(t, "Prep slides not", res.Title)
}

func TestParseImpossibleDateIsNoMatch(t *testing.T) {
	t.Parallel()

	res := Parse("Review doc 2/30", now)
	assert.Nil(t, res.DueDate)
	assert.Equal(t, "Review doc 2/30", res.Title)

	res = Parse("Review doc 13/5", now)
	assert.Nil(t, res.DueDate)
}

func TestParseNoDueDate(t *testing.T) {
	t.Parallel()

	res := Parse("Organize garage", now)
	assert.Nil(t, res.DueDate)
	assert.Equal(t, "Organize garage", res.Title)
}

func TestNextWeekdayNeverReturnsToday(t *testing.T) {
	t.Parallel()

	today := date(2024, 6, 12)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		next := nextWeekday(today, wd)
		assert.True(t, next.After(today), "weekday %s", wd)
		assert.Equal(t, wd, next.Weekday())
		assert.LessOrEqual(t, int(next.Sub(today).Hours()/24), 7)
	}
}
