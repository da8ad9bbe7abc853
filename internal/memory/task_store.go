package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/DayWing/models"
)

const taskColumns = `id, title, description, completed, completed_at, due_date, due_has_time,
	priority, tags, alert_hour, alert_minute, alert_fired, snoozed_until, created_at, updated_at`

// TaskFilter narrows ListTasks. The zero value lists every task.
type TaskFilter struct {
	// Completed, when set, keeps only tasks with that completion state.
	Completed *bool
	// Tag keeps only tasks carrying the tag.
	Tag string
}

func insertTask(ex execer, t *models.Task) error {
	_, err := ex.Exec(`INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, boolInt(t.Completed), nullTime(t.CompletedAt),
		nullTime(t.DueDate), boolInt(t.DueHasTime), int(t.Priority), encodeTags(t.Tags),
		nullInt(t.AlertHour), t.AlertMinute, boolInt(t.AlertFired), nullTime(t.SnoozedUntil),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert task %s: %w", t.ID, err)
	}
	return nil
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var completed, dueHasTime, fired int
	var priority int
	var completedAt, dueDate, snoozed, tags sql.NullString
	var alertHour sql.NullInt64
	var createdAt, updatedAt string

	if err := row.Scan(&t.ID, &t.Title, &t.Description, &completed, &completedAt, &dueDate, &dueHasTime,
		&priority, &tags, &alertHour, &t.AlertMinute, &fired, &snoozed, &createdAt, &updatedAt); err != nil {
		return t, err
	}

	t.Completed = completed != 0
	t.DueHasTime = dueHasTime != 0
	t.AlertFired = fired != 0
	t.Priority = models.Priority(priority)
	t.Tags = decodeTags(tags)
	t.AlertHour = intPtr(alertHour)

	var err error
	if t.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return t, err
	}
	if t.DueDate, err = parseNullTime(dueDate); err != nil {
		return t, err
	}
	if t.SnoozedUntil, err = parseNullTime(snoozed); err != nil {
		return t, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return t, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return t, err
	}
	return t, nil
}

// CreateTask validates and stores a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, t *models.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	return insertTask(execContext{ctx, s.db}, t)
}

// UpdateTask overwrites a stored task.
func (s *SQLiteStore) UpdateTask(ctx context.Context, t *models.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, completed = ?, completed_at = ?, due_date = ?,
			due_has_time = ?, priority = ?, tags = ?, alert_hour = ?, alert_minute = ?, alert_fired = ?,
			snoozed_until = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, boolInt(t.Completed), nullTime(t.CompletedAt), nullTime(t.DueDate),
		boolInt(t.DueHasTime), int(t.Priority), encodeTags(t.Tags), nullInt(t.AlertHour), t.AlertMinute,
		boolInt(t.AlertFired), nullTime(t.SnoozedUntil), formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return requireAffected(res, "task", t.ID)
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return &t, nil
}

// ListTasks returns tasks matching filter ordered by creation time.
func (s *SQLiteStore) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	var where []string
	var args []any
	if filter.Completed != nil {
		where = append(where, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if filter.Tag != "" {
		where = append(where, "EXISTS (SELECT 1 FROM json_each(tasks.tags) WHERE json_each.value = ?)")
		args = append(args, filter.Tag)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"

	return s.queryTasks(ctx, query, args...)
}

// CompleteTask marks a task done at the given time.
func (s *SQLiteStore) CompleteTask(ctx context.Context, id string, at time.Time) (*models.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Complete(at)
	if err := s.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes a task immediately.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return requireAffected(res, "task", id)
}

// FindTaskIDsByPrefix returns task IDs starting with prefix.
func (s *SQLiteStore) FindTaskIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	return s.findIDsByPrefix(ctx, "tasks", prefix)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *SQLiteStore) findIDsByPrefix(ctx context.Context, table, prefix string) ([]string, error) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM `+table+` WHERE id LIKE ? ESCAPE '\' ORDER BY id`, escaped+"%")
	if err != nil {
		return nil, fmt.Errorf("find %s by prefix: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return ids, nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: rows affected: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

// execContext adapts a context-aware handle to execer.
type execContext struct {
	ctx context.Context
	db  interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	}
}

func (e execContext) Exec(query string, args ...any) (sql.Result, error) {
	return e.db.ExecContext(e.ctx, query, args...)
}
