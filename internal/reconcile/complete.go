package reconcile

import (
	"context"
	"time"

	"github.com/mkoval/tend/internal/task"
	"github.com/rs/zerolog/log"
)

// CompleteTask marks a task completed, spawns its recurrence successor when
// one is due, and runs the reconciliation pass so waiting tasks blocked on
// it can move on. The spawned successor, if any, is returned alongside the
// completed task. A successor is created only on the actual false to true
// transition, so retrying the completion never accumulates duplicates.
func CompleteTask(ctx context.Context, store *task.Store, id string, now time.Time) (task.Task, *task.Task, error) {
	done, transitioned, err := store.Complete(ctx, id, now)
	if err != nil {
		return task.Task{}, nil, err
	}
	var spawned *task.Task
	if transitioned {
		if next := done.NextInstance(now); next != nil {
			if err := store.Create(ctx, next); err != nil {
				return task.Task{}, nil, err
			}
			spawned = next
			log.Debug().Str("task_id", done.ID).Str("next_id", next.ID).Msg("recurrence successor created")
		}
	}
	if _, err := Pass(ctx, store, now); err != nil {
		return task.Task{}, nil, err
	}
	return done, spawned, nil
}
