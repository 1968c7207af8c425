// Package quickadd parses a single line of free text into structured task attributes.
package quickadd

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result holds the structured attributes extracted from one input line.
type Result struct {
	Title       string
	Contexts    []string
	Energy      string
	TimeMinutes int
	Recurrence  string
	DueDate     *time.Time
	Priority    bool
}

// stage extracts one attribute kind and returns the text with its matches removed.
// Stages run in a fixed order so earlier stages claim their substrings first.
type stage func(text string, now time.Time, res *Result) string

var stages = []stage{
	extractContexts,
	extractEnergy,
	extractTime,
	extractRecurrence,
	extractPriority,
	extractDueDate,
}

// Parse extracts contexts, energy, time estimate, recurrence, priority and due
// date from input, leaving the cleaned remainder as the title. It never fails:
// any attribute without a match keeps its zero value.
func Parse(input string, now time.Time) Result {
	var res Result
	text := input
	for _, s := range stages {
		text = s(text, now, &res)
	}
	res.Title = cleanTitle(text)
	return res
}

var (
	markerContextRe = regexp.MustCompile(`(?i)@([a-z][a-z0-9_-]*)`)
	bareContextRe   = regexp.MustCompile(`(?i)\b(home|work|personal|computer|phone|office|errands|shopping|calls|email)\b`)
)

func extractContexts(text string, _ time.Time, res *Result) string {
	seen := make(map[string]bool)
	add := func(word string) {
		tag := "@" + strings.ToLower(word)
		if !seen[tag] {
			seen[tag] = true
			res.Contexts = append(res.Contexts, tag)
		}
	}
	for _, m := range markerContextRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	text = markerContextRe.ReplaceAllString(text, "")
	for _, m := range bareContextRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return bareContextRe.ReplaceAllString(text, "")
}

var energyRe = regexp.MustCompile(`(?i)\b(high|medium|low)\s+energy\b`)

func extractEnergy(text string, _ time.Time, res *Result) string {
	if m := energyRe.FindStringSubmatch(text); m != nil {
		res.Energy = strings.ToLower(m[1])
		text = energyRe.ReplaceAllString(text, "")
	}
	return text
}

var timeRe = regexp.MustCompile(`(?i)\b(\d+)\s*(minutes|minute|mins|min|hours|hour|hrs|hr|h)\b`)

func extractTime(text string, _ time.Time, res *Result) string {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return text
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		amount *= 60
	}
	res.TimeMinutes = amount
	return timeRe.ReplaceAllString(text, "")
}

var recurrenceRe = regexp.MustCompile(`(?i)\b(every\s+(?:day|week|month|year)|daily|weekly|monthly|yearly|recurring)\b`)

func extractRecurrence(text string, _ time.Time, res *Result) string {
	m := recurrenceRe.FindString(text)
	if m == "" {
		return text
	}
	res.Recurrence = canonicalRecurrence(strings.ToLower(m))
	return recurrenceRe.ReplaceAllString(text, "")
}

// canonicalRecurrence maps a matched phrase to its canonical unit by substring
// containment, checked in priority order. "daily" and "recurring" contain none
// of the unit words and fall through to daily.
func canonicalRecurrence(matched string) string {
	switch {
	case strings.Contains(matched, "day"):
		return "daily"
	case strings.Contains(matched, "week"):
		return "weekly"
	case strings.Contains(matched, "month"):
		return "monthly"
	case strings.Contains(matched, "year"):
		return "yearly"
	default:
		return "daily"
	}
}

var priorityRe = regexp.MustCompile(`(?i)\b(urgent|asap|important|priority|critical)\b`)

func extractPriority(text string, _ time.Time, res *Result) string {
	if priorityRe.MatchString(text) {
		res.Priority = true
		text = priorityRe.ReplaceAllString(text, "")
	}
	return text
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func cleanTitle(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimRight(text, ",-: ")
	return strings.TrimSpace(text)
}
