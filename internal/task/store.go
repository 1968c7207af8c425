package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store manages task persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a task store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const taskColumns = `id, title, description, type, project_id, status, completed,
	contexts_json, energy, time_minutes, due_date, defer_date,
	waiting_for_json, waiting_for_note, recurrence, recurrence_end,
	recurrence_parent_id, subtasks_json, priority, created_at, updated_at, completed_at`

// Create inserts a new task, assigning an id and timestamps when absent.
func (s *Store) Create(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.Type == "" {
		t.Type = "task"
	}
	if t.Status == "" {
		t.Status = StatusInbox
	}
	if !ValidStatus(t.Status) {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	contexts, waitingFor, subtasks, err := marshalLists(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tasks(`+taskColumns+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Type, t.ProjectID, string(t.Status), boolToInt(t.Completed),
		contexts, t.Energy, t.TimeMinutes, dateString(t.DueDate), dateString(t.DeferDate),
		waitingFor, t.WaitingForNote, t.Recurrence, dateString(t.RecurrenceEnd),
		t.RecurrenceParentID, subtasks, boolToInt(t.Priority),
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339), timeString(t.CompletedAt))
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Get fetches a task by id.
func (s *Store) Get(ctx context.Context, id string) (Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=?`, id)
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Task{}, fmt.Errorf("task %s not found", id)
		}
		return Task{}, fmt.Errorf("read task: %w", err)
	}
	return t, nil
}

// List returns tasks filtered by status (optional), oldest first.
func (s *Store) List(ctx context.Context, status *Status) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := []any{}
	if status != nil {
		query += ` WHERE status=?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

// All returns every task, oldest first.
func (s *Store) All(ctx context.Context) ([]Task, error) {
	return s.List(ctx, nil)
}

// Update rewrites every mutable field of the task row. UpdatedAt is
// persisted as given so callers stamp it with their own clock; a zero
// value falls back to the wall clock.
func (s *Store) Update(ctx context.Context, t *Task) error {
	if !ValidStatus(t.Status) {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now().UTC()
	}
	contexts, waitingFor, subtasks, err := marshalLists(t)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET
		title=?, description=?, type=?, project_id=?, status=?, completed=?,
		contexts_json=?, energy=?, time_minutes=?, due_date=?, defer_date=?,
		waiting_for_json=?, waiting_for_note=?, recurrence=?, recurrence_end=?,
		recurrence_parent_id=?, subtasks_json=?, priority=?, updated_at=?, completed_at=?
		WHERE id=?`,
		t.Title, t.Description, t.Type, t.ProjectID, string(t.Status), boolToInt(t.Completed),
		contexts, t.Energy, t.TimeMinutes, dateString(t.DueDate), dateString(t.DeferDate),
		waitingFor, t.WaitingForNote, t.Recurrence, dateString(t.RecurrenceEnd),
		t.RecurrenceParentID, subtasks, boolToInt(t.Priority),
		t.UpdatedAt.Format(time.RFC3339), timeString(t.CompletedAt), t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireRow(res, t.ID)
}

// Complete marks a task completed, setting completed_at exactly on the
// false to true transition. The returned flag reports whether this call
// performed that transition; completing a completed task is a no-op and
// returns false.
func (s *Store) Complete(ctx context.Context, id string, now time.Time) (Task, bool, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Task{}, false, err
	}
	if t.Completed {
		return t, false, nil
	}
	t.SetCompleted(true, now)
	if err := s.Update(ctx, &t); err != nil {
		return Task{}, false, err
	}
	return t, true, nil
}

// Reopen reverts a completed task to the inbox, clearing completed_at.
func (s *Store) Reopen(ctx context.Context, id string, now time.Time) (Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if !t.Completed {
		return t, nil
	}
	t.SetCompleted(false, now)
	if err := s.Update(ctx, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// AddDependency blocks a task on another and moves it to waiting.
func (s *Store) AddDependency(ctx context.Context, id, dependsOnID string) error {
	if id == dependsOnID {
		return fmt.Errorf("task cannot wait for itself")
	}
	if _, err := s.Get(ctx, dependsOnID); err != nil {
		return err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, existing := range t.WaitingFor {
		if existing == dependsOnID {
			return nil
		}
	}
	t.WaitingFor = append(t.WaitingFor, dependsOnID)
	t.Status = StatusWaiting
	t.UpdatedAt = time.Now().UTC()
	return s.Update(ctx, &t)
}

// Delete removes a task row. Archival policy lives with the caller.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var status, createdAt, updatedAt string
	var completed, priority int
	var contexts, waitingFor, subtasks string
	var dueDate, deferDate, recurrenceEnd, completedAt sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Type, &t.ProjectID, &status, &completed,
		&contexts, &t.Energy, &t.TimeMinutes, &dueDate, &deferDate,
		&waitingFor, &t.WaitingForNote, &t.Recurrence, &recurrenceEnd,
		&t.RecurrenceParentID, &subtasks, &priority, &createdAt, &updatedAt, &completedAt); err != nil {
		return Task{}, err
	}
	t.Status = Status(status)
	t.Completed = completed != 0
	t.Priority = priority != 0
	if err := json.Unmarshal([]byte(contexts), &t.Contexts); err != nil {
		return Task{}, fmt.Errorf("parse contexts: %w", err)
	}
	if err := json.Unmarshal([]byte(waitingFor), &t.WaitingFor); err != nil {
		return Task{}, fmt.Errorf("parse waiting_for: %w", err)
	}
	if err := json.Unmarshal([]byte(subtasks), &t.Subtasks); err != nil {
		return Task{}, fmt.Errorf("parse subtasks: %w", err)
	}
	var err error
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Task{}, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return Task{}, fmt.Errorf("parse updated_at: %w", err)
	}
	if t.DueDate, err = parseDate(dueDate); err != nil {
		return Task{}, fmt.Errorf("parse due_date: %w", err)
	}
	if t.DeferDate, err = parseDate(deferDate); err != nil {
		return Task{}, fmt.Errorf("parse defer_date: %w", err)
	}
	if t.RecurrenceEnd, err = parseDate(recurrenceEnd); err != nil {
		return Task{}, fmt.Errorf("parse recurrence_end: %w", err)
	}
	if completedAt.Valid {
		done, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return Task{}, fmt.Errorf("parse completed_at: %w", err)
		}
		t.CompletedAt = &done
	}
	return t, nil
}

func marshalLists(t *Task) (contexts, waitingFor, subtasks string, err error) {
	c, err := marshalJSONList(t.Contexts)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal contexts: %w", err)
	}
	w, err := marshalJSONList(t.WaitingFor)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal waiting_for: %w", err)
	}
	sub, err := marshalJSONList(t.Subtasks)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal subtasks: %w", err)
	}
	return c, w, sub, nil
}

func marshalJSONList[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

const dateLayout = "2006-01-02"

func dateString(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(dateLayout)
}

func timeString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result, id string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}
