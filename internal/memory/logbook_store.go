package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/josephgoksu/DayWing/models"
)

const snapshotColumns = `id, title, description, priority, tags, completed_at, created_at, archived_at`

func insertSnapshot(ex execer, sn models.Snapshot) error {
	_, err := ex.Exec(`INSERT INTO snapshots (`+snapshotColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.Title, sn.Description, int(sn.Priority), encodeTags(sn.Tags),
		formatTime(sn.CompletedAt), formatTime(sn.CreatedAt), formatTime(sn.ArchivedAt))
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", sn.ID, err)
	}
	return nil
}

func scanSnapshot(row rowScanner) (models.Snapshot, error) {
	var sn models.Snapshot
	var priority int
	var tags sql.NullString
	var completedAt, createdAt, archivedAt string

	if err := row.Scan(&sn.ID, &sn.Title, &sn.Description, &priority, &tags,
		&completedAt, &createdAt, &archivedAt); err != nil {
		return sn, err
	}
	sn.Priority = models.Priority(priority)
	sn.Tags = decodeTags(tags)

	var err error
	if sn.CompletedAt, err = parseTime(completedAt); err != nil {
		return sn, err
	}
	if sn.CreatedAt, err = parseTime(createdAt); err != nil {
		return sn, err
	}
	if sn.ArchivedAt, err = parseTime(archivedAt); err != nil {
		return sn, err
	}
	return sn, nil
}

func (s *SQLiteStore) querySnapshots(ctx context.Context, query string, args ...any) ([]models.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []models.Snapshot
	for rows.Next() {
		sn, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, sn)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListSnapshots returns the logbook, most recently completed first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]models.Snapshot, error) {
	snaps, err := s.querySnapshots(ctx, `SELECT `+snapshotColumns+` FROM snapshots`)
	if err != nil {
		return nil, err
	}
	sortByCompletion(snaps)
	return snaps, nil
}

// GetSnapshot retrieves one logbook entry.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*models.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id)
	sn, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	return &sn, nil
}

// SearchSnapshots finds logbook entries whose title or description matches
// query and that pass filters. An empty query matches everything.
func (s *SQLiteStore) SearchSnapshots(ctx context.Context, query string, filters models.SnapshotFilters) ([]models.Snapshot, error) {
	var snaps []models.Snapshot
	var err error

	if strings.TrimSpace(query) == "" {
		snaps, err = s.querySnapshots(ctx, `SELECT `+snapshotColumns+` FROM snapshots`)
	} else {
		match := sanitizeFTSQuery(query)
		if match == "" {
			return nil, nil
		}
		snaps, err = s.querySnapshots(ctx, `
			SELECT s.id, s.title, s.description, s.priority, s.tags, s.completed_at, s.created_at, s.archived_at
			FROM snapshots_fts f
			JOIN snapshots s ON s.rowid = f.rowid
			WHERE snapshots_fts MATCH ?`, match)
	}
	if err != nil {
		return nil, fmt.Errorf("search snapshots: %w", err)
	}

	out := snaps[:0]
	for _, sn := range snaps {
		if filters.Matches(sn) {
			out = append(out, sn)
		}
	}
	sortByCompletion(out)
	return out, nil
}

// RestoreSnapshot turns a logbook entry back into an open task with the same
// ID and removes the entry.
func (s *SQLiteStore) RestoreSnapshot(ctx context.Context, id string, now time.Time) (*models.Task, error) {
	sn, err := s.GetSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	t := &models.Task{
		ID:          sn.ID,
		Title:       sn.Title,
		Description: sn.Description,
		Priority:    sn.Priority,
		Tags:        append([]string{}, sn.Tags...),
		CreatedAt:   sn.CreatedAt,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("restore snapshot %s: %w", id, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertTask(execContext{ctx, tx}, t); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit restore: %w", err)
	}
	return t, nil
}

// FindSnapshotIDsByPrefix returns snapshot IDs starting with prefix.
func (s *SQLiteStore) FindSnapshotIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	return s.findIDsByPrefix(ctx, "snapshots", prefix)
}

func sortByCompletion(snaps []models.Snapshot) {
	slices.SortFunc(snaps, func(a, b models.Snapshot) int {
		if c := b.CompletedAt.Compare(a.CompletedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// sanitizeFTSQuery turns free text into an FTS5 query that ORs the quoted
// words, dropping FTS5 syntax characters and operators.
func sanitizeFTSQuery(query string) string {
	replacer := strings.NewReplacer(
		`"`, " ", `^`, " ", `:`, " ", `(`, " ", `)`, " ",
		`{`, " ", `}`, " ", `[`, " ", `]`, " ", `-`, " ", `+`, " ",
		`?`, " ", `!`, " ", `.`, " ", `,`, " ", `;`, " ", `*`, " ",
	)
	var quoted []string
	for _, word := range strings.Fields(replacer.Replace(strings.ToLower(query))) {
		switch strings.ToUpper(word) {
		case "OR", "AND", "NOT", "NEAR":
			continue
		}
		quoted = append(quoted, `"`+word+`"`)
	}
	return strings.Join(quoted, " OR ")
}
