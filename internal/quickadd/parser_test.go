package quickadd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A fixed Wednesday keeps weekday arithmetic deterministic.
var now = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	res := Parse("", now)
	assert.Equal(t, "", res.Title)
	assert.Empty(t, res.Contexts)
	assert.Equal(t, "", res.Energy)
	assert.Equal(t, 0, res.TimeMinutes)
	assert.Equal(t, "", res.Recurrence)
	assert.Nil(t, res.DueDate)
	assert.False(t, res.Priority)
}

func TestParseContexts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contexts []string
		title    string
	}{
		{"marker token", "Fix the sink @home", []string{"@home"}, "Fix the sink"},
		{"bare vocabulary word", "Fix the sink home", []string{"@home"}, "Fix the sink"},
		{"marker normalized to lowercase", "Message boss @Work", []string{"@work"}, "Message boss"},
		{"bare word email is a context", "Email boss", []string{"@email"}, "boss"},
		{"custom marker token", "Ping vendor @errands-downtown", []string{"@errands-downtown"}, "Ping vendor"},
		{"deduplicated", "@phone phone Call mom", []string{"@phone"}, "Call mom"},
		{"multiple contexts", "Buy stamps @errands office", []string{"@errands", "@office"}, "Buy stamps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Parse(tt.input, now)
			assert.Equal(t, tt.contexts, res.Contexts)
			assert.Equal(t, tt.title, res.Title)
		})
	}
}

func TestParseSingleContextAlwaysMarkerPrefixed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"@shopping", "shopping", "SHOPPING", "@Shopping"} {
		res := Parse(input, now)
		require.Len(t, res.Contexts, 1, "input %q", input)
		assert.Equal(t, "@shopping", res.Contexts[0], "input %q", input)
	}
}

func TestParseEnergy(t *testing.T) {
	t.Parallel()

	res := Parse("Write report high energy", now)
	assert.Equal(t, "high", res.Energy)
	assert.Equal(t, "Write report", res.Title)

	res = Parse("Sort mail LOW ENERGY", now)
	assert.Equal(t, "low", res.Energy)
	assert.Equal(t, "Sort mail", res.Title)

	res = Parse("Plan sprint medium energy", now)
	assert.Equal(t, "medium", res.Energy)
}

func TestParseTimeEstimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		minutes int
		title   string
	}{
		{"Stretch 15 min", 15, "Stretch"},
		{"Read chapter 30 minutes", 30, "Read chapter"},
		{"Deep work 2 hours", 120, "Deep work"},
		{"Quick sync 1 hr", 60, "Quick sync"},
		{"Mow lawn 1h", 60, "Mow lawn"},
		{"No estimate here", 0, "No estimate here"},
	}
	for _, tt := range tests {
		res := Parse(tt.input, now)
		assert.Equal(t, tt.minutes, res.TimeMinutes, "input %q", tt.input)
		assert.Equal(t, tt.title, res.Title, "input %q", tt.input)
	}
}

func TestParseRecurrence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input      string
		recurrence string
		title      string
	}{
		{"Pay bills monthly", "monthly", "Pay bills"},
		{"Water plants weekly", "weekly", "Water plants"},
		{"Standup daily", "daily", "Standup"},
		{"File taxes yearly", "yearly", "File taxes"},
		{"Take vitamins every day", "daily", "Take vitamins"},
		{"Clean fridge every month", "monthly", "Clean fridge"},
		{"Backup photos recurring", "daily", "Backup photos"},
	}
	for _, tt := range tests {
		res := Parse(tt.input, now)
		assert.Equal(t, tt.recurrence, res.Recurrence, "input %q", tt.input)
		assert.Equal(t, tt.title, res.Title, "input %q", tt.input)
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"urgent", "asap", "important", "priority", "critical"} {
		res := Parse("Fix login "+word, now)
		assert.True(t, res.Priority, "word %q", word)
		assert.Equal(t, "Fix login", res.Title, "word %q", word)
	}
	assert.False(t, Parse("Fix login", now).Priority)
}

func TestParseCombined(t *testing.T) {
	t.Parallel()

	res := Parse("Call John @work tomorrow high energy", now)
	assert.Equal(t, []string{"@work"}, res.Contexts)
	assert.Equal(t, "high", res.Energy)
	require.NotNil(t, res.DueDate)
	assert.Equal(t, date(2024, 6, 13), *res.DueDate)
	assert.Equal(t, "Call John", res.Title)
}

func TestParseTitleCleanup(t *testing.T) {
	t.Parallel()

	res := Parse("Buy   milk , tomorrow", now)
	assert.Equal(t, "Buy milk", res.Title)

	res = Parse("Prep agenda - @work:", now)
	assert.Equal(t, "Prep agenda", res.Title)
}

func TestParseExtractionOrderClaimsSubstringsOnce(t *testing.T) {
	t.Parallel()

	// "home" is claimed by the context stage before the date stage runs,
	// and the energy phrase is gone before "low" could confuse anything.
	res := Parse("Repaint fence home low energy in 2 weeks", now)
	assert.Equal(t, []string{"@home"}, res.Contexts)
	assert.Equal(t, "low", res.Energy)
	require.NotNil(t, res.DueDate)
	assert.Equal(t, date(2024, 6, 26), *res.DueDate)
	assert.Equal(t, "Repaint fence", res.Title)
}
