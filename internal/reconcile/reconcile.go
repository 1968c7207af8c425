// Package reconcile promotes waiting tasks whose prerequisites have all
// completed. The pass runs after any task completion and once at startup.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/mkoval/tend/internal/task"
	"github.com/rs/zerolog/log"
)

// Pass scans every task in the waiting state that is blocked on other tasks
// and promotes it to next once all of its prerequisites are completed,
// clearing the dependency set. Tasks waiting for a free-text reason only
// (empty dependency set) are left alone. The pass is idempotent: a second
// run over unchanged state mutates nothing. On error the whole pass is
// reported and can be retried as a unit.
func Pass(ctx context.Context, store *task.Store, now time.Time) (int, error) {
	all, err := store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load tasks: %w", err)
	}
	promoted := 0
	for _, t := range all {
		if t.Status != task.StatusWaiting || len(t.WaitingFor) == 0 {
			continue
		}
		if !t.DependenciesMet(all) {
			continue
		}
		t.Status = task.StatusNext
		t.WaitingFor = nil
		t.UpdatedAt = now
		if err := store.Update(ctx, &t); err != nil {
			return promoted, fmt.Errorf("promote task %s: %w", t.ID, err)
		}
		log.Debug().Str("task_id", t.ID).Msg("waiting task promoted to next")
		promoted++
	}
	return promoted, nil
}
