package task

import (
	"fmt"
	"sort"
	"time"
)

// Weights define the documented weighted sum behind next-action selection.
// Each term is added once when its predicate holds.
type Weights struct {
	Overdue  float64 `json:"overdue"  mapstructure:"overdue"`
	DueToday float64 `json:"due_today" mapstructure:"due_today"`
	DueSoon  float64 `json:"due_soon"  mapstructure:"due_soon"`
	Priority float64 `json:"priority"  mapstructure:"priority"`
	Next     float64 `json:"next"      mapstructure:"next"`
}

// DefaultWeights returns the stock scoring table.
func DefaultWeights() Weights {
	return Weights{
		Overdue:  10,
		DueToday: 6,
		DueSoon:  3,
		Priority: 4,
		Next:     2,
	}
}

// Score computes the weighted urgency sum for a task. horizonDays bounds the
// due-soon window.
func Score(t Task, now time.Time, horizonDays int, w Weights) float64 {
	var score float64
	if t.Overdue(now) {
		score += w.Overdue
	}
	if t.DueToday(now) {
		score += w.DueToday
	} else if t.DueWithin(now, horizonDays) {
		score += w.DueSoon
	}
	if t.Priority {
		score += w.Priority
	}
	if t.Status == StatusNext {
		score += w.Next
	}
	return score
}

// SelectNext chooses the most urgent actionable task and returns a selection
// reason. A task is actionable when it is incomplete, not parked in someday,
// not blocked, and not deferred past today. Ties break on creation time then
// id so repeated calls over unchanged state pick the same task.
func SelectNext(all []Task, now time.Time, horizonDays int, w Weights) (Task, string, error) {
	candidates := make([]Task, 0, len(all))
	for _, t := range all {
		if t.Completed || t.Status == StatusSomeday || t.Status == StatusWaiting {
			continue
		}
		if !t.Available(now) || !t.DependenciesMet(all) {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return Task{}, "no_actionable_tasks", fmt.Errorf("no actionable tasks")
	}

	sort.Slice(candidates, func(i, j int) bool {
		left, right := candidates[i], candidates[j]
		leftScore, rightScore := Score(left, now, horizonDays, w), Score(right, now, horizonDays, w)
		if leftScore != rightScore {
			return leftScore > rightScore
		}
		if !left.CreatedAt.Equal(right.CreatedAt) {
			return left.CreatedAt.Before(right.CreatedAt)
		}
		return left.ID < right.ID
	})

	selected := candidates[0]
	reason := fmt.Sprintf("score=%.1f overdue=%t due_today=%t priority=%t status=%s",
		Score(selected, now, horizonDays, w),
		selected.Overdue(now),
		selected.DueToday(now),
		selected.Priority,
		selected.Status,
	)
	return selected, reason, nil
}
