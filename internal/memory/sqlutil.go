package memory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout keeps sub-second precision so stored timestamps round-trip exactly.
const timeLayout = time.RFC3339Nano

// checkRowsErr checks for errors that may have occurred during row iteration.
// Call it after a rows.Next() loop.
func checkRowsErr(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// nullTime returns nil for a nil pointer, the formatted time otherwise.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func decodeTags(ns sql.NullString) []string {
	tags := []string{}
	if ns.Valid && ns.String != "" {
		_ = json.Unmarshal([]byte(ns.String), &tags)
	}
	return tags
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
