package quickadd

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern pairs a regular expression with a resolver that turns its
// submatches into a concrete calendar date relative to now. Patterns are
// evaluated in order; the first resolvable match wins. A resolver returning
// false means the match is not a usable date (e.g. 2/30) and the next
// pattern is tried.
type datePattern struct {
	re      *regexp.Regexp
	resolve func(m []string, today time.Time) (time.Time, bool)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

const weekdayAlt = `sunday|monday|tuesday|wednesday|thursday|friday|saturday`

var datePatterns = []datePattern{
	{
		re: regexp.MustCompile(`(?i)\btoday\b`),
		resolve: func(_ []string, today time.Time) (time.Time, bool) {
			return today, true
		},
	},
	{
		re: regexp.MustCompile(`(?i)\btomorrow\b`),
		resolve: func(_ []string, today time.Time) (time.Time, bool) {
			return today.AddDate(0, 0, 1), true
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bnext\s+week\b`),
		resolve: func(_ []string, today time.Time) (time.Time, bool) {
			return today.AddDate(0, 0, 7), true
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bin\s+(\d+)\s+days?\b`),
		resolve: func(m []string, today time.Time) (time.Time, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, false
			}
			return today.AddDate(0, 0, n), true
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bin\s+(\d+)\s+weeks?\b`),
		resolve: func(m []string, today time.Time) (time.Time, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, false
			}
			return today.AddDate(0, 0, 7*n), true
		},
	},
	{
		re:      regexp.MustCompile(`(?i)\b(?:on\s+)?(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`),
		resolve: resolveExplicitDate,
	},
	{
		re: regexp.MustCompile(`(?i)\bnext\s+(` + weekdayAlt + `)\b`),
		resolve: func(m []string, today time.Time) (time.Time, bool) {
			return nextWeekday(today, weekdays[strings.ToLower(m[1])]).AddDate(0, 0, 7), true
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(` + weekdayAlt + `)\b`),
		resolve: func(m []string, today time.Time) (time.Time, bool) {
			return nextWeekday(today, weekdays[strings.ToLower(m[1])]), true
		},
	},
}

func extractDueDate(text string, now time.Time, res *Result) string {
	today := dateOnly(now)
	matched := false
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		due, ok := p.resolve(m, today)
		if !ok {
			continue
		}
		d := due
		res.DueDate = &d
		matched = true
		break
	}
	if !matched {
		return text
	}
	// Date phrases overlap ("next friday" embeds "friday"), so once a due
	// date is found every date sub-pattern is scrubbed from the title.
	for _, p := range datePatterns {
		text = p.re.ReplaceAllString(text, "")
	}
	return text
}

// resolveExplicitDate handles "M/D", "M-D" and their year-suffixed forms,
// with an optional "on" preposition claimed by the pattern so it never
// survives as an orphan word. Impossible calendar dates are treated as no
// match.
func resolveExplicitDate(m []string, today time.Time) (time.Time, bool) {
	month, err := strconv.Atoi(m[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year := today.Year()
	if m[3] != "" {
		year, err = strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, false
		}
		if year < 100 {
			year += 2000
		}
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location())
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// nextWeekday returns the next occurrence of target strictly after today:
// when today already is the target weekday, it rolls a full week forward.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	offset := (int(target) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return today.AddDate(0, 0, offset)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
