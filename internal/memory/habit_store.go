package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/josephgoksu/DayWing/internal/util"
	"github.com/josephgoksu/DayWing/models"
)

const habitColumns = `id, title, notes, priority, schedule, tags, alert_hour, alert_minute, alert_fired,
	snoozed_until, replenished_at, last_completed_at, archived, created_at, updated_at`

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var priority, fired, archived int
	var schedule string
	var tags, snoozed, replenished, lastCompleted sql.NullString
	var alertHour sql.NullInt64
	var createdAt, updatedAt string

	if err := row.Scan(&h.ID, &h.Title, &h.Notes, &priority, &schedule, &tags, &alertHour, &h.AlertMinute,
		&fired, &snoozed, &replenished, &lastCompleted, &archived, &createdAt, &updatedAt); err != nil {
		return h, err
	}

	if err := json.Unmarshal([]byte(schedule), &h.Schedule); err != nil {
		return h, fmt.Errorf("decode schedule of %s: %w", h.ID, err)
	}
	h.Priority = models.Priority(priority)
	h.Tags = decodeTags(tags)
	h.AlertHour = intPtr(alertHour)
	h.AlertFired = fired != 0
	h.Archived = archived != 0

	var err error
	if h.SnoozedUntil, err = parseNullTime(snoozed); err != nil {
		return h, err
	}
	if h.ReplenishedAt, err = parseNullTime(replenished); err != nil {
		return h, err
	}
	if h.LastCompletedAt, err = parseNullTime(lastCompleted); err != nil {
		return h, err
	}
	if h.CreatedAt, err = parseTime(createdAt); err != nil {
		return h, err
	}
	if h.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return h, err
	}
	return h, nil
}

// CreateHabit validates and stores a new habit.
func (s *SQLiteStore) CreateHabit(ctx context.Context, h *models.Habit) error {
	if err := h.Validate(); err != nil {
		return fmt.Errorf("invalid habit: %w", err)
	}
	schedule, err := json.Marshal(h.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Title, h.Notes, int(h.Priority), string(schedule), encodeTags(h.Tags),
		nullInt(h.AlertHour), h.AlertMinute, boolInt(h.AlertFired), nullTime(h.SnoozedUntil),
		nullTime(h.ReplenishedAt), nullTime(h.LastCompletedAt), boolInt(h.Archived),
		formatTime(h.CreatedAt), formatTime(h.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert habit %s: %w", h.ID, err)
	}
	return nil
}

// UpdateHabit overwrites a stored habit.
func (s *SQLiteStore) UpdateHabit(ctx context.Context, h *models.Habit) error {
	if err := h.Validate(); err != nil {
		return fmt.Errorf("invalid habit: %w", err)
	}
	schedule, err := json.Marshal(h.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE habits SET title = ?, notes = ?, priority = ?, schedule = ?, tags = ?, alert_hour = ?,
			alert_minute = ?, alert_fired = ?, snoozed_until = ?, replenished_at = ?, last_completed_at = ?,
			archived = ?, updated_at = ?
		WHERE id = ?`,
		h.Title, h.Notes, int(h.Priority), string(schedule), encodeTags(h.Tags), nullInt(h.AlertHour),
		h.AlertMinute, boolInt(h.AlertFired), nullTime(h.SnoozedUntil), nullTime(h.ReplenishedAt),
		nullTime(h.LastCompletedAt), boolInt(h.Archived), formatTime(h.UpdatedAt), h.ID)
	if err != nil {
		return fmt.Errorf("update habit %s: %w", h.ID, err)
	}
	return requireAffected(res, "habit", h.ID)
}

// GetHabit retrieves a habit by ID.
func (s *SQLiteStore) GetHabit(ctx context.Context, id string) (*models.Habit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get habit %s: %w", id, err)
	}
	return &h, nil
}

// ListHabits returns habits ordered by creation time. Archived habits are
// included only when includeArchived is set.
func (s *SQLiteStore) ListHabits(ctx context.Context, includeArchived bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return habits, nil
}

// CheckHabit marks the habit's current instance complete.
func (s *SQLiteStore) CheckHabit(ctx context.Context, id string, at time.Time) (*models.Habit, error) {
	h, err := s.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Check(at)
	if err := s.UpdateHabit(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHabit removes a habit.
func (s *SQLiteStore) DeleteHabit(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit %s: %w", id, err)
	}
	return requireAffected(res, "habit", id)
}

// ReplenishDue starts a new instance for every habit due on now's day whose
// current instance began on an earlier day. It returns the number replenished.
func (s *SQLiteStore) ReplenishDue(ctx context.Context, now time.Time) (int, error) {
	habits, err := s.ListHabits(ctx, false)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for i := range habits {
		h := &habits[i]
		if !h.IsDueOn(now) {
			continue
		}
		if h.ReplenishedAt != nil && !util.BeforeDay(*h.ReplenishedAt, now) {
			continue
		}
		h.Replenish(util.StartOfDay(now))
		if _, err := tx.ExecContext(ctx, `
			UPDATE habits SET replenished_at = ?, alert_fired = 0, updated_at = ?
			WHERE id = ?`, nullTime(h.ReplenishedAt), formatTime(now), h.ID); err != nil {
			return 0, fmt.Errorf("replenish habit %s: %w", h.ID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replenish: %w", err)
	}
	return count, nil
}

// FindHabitIDsByPrefix returns habit IDs starting with prefix.
func (s *SQLiteStore) FindHabitIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	return s.findIDsByPrefix(ctx, "habits", prefix)
}
