package models

import (
	"strings"
	"time"
)

// Snapshot is the logbook record of a completed task, captured when the task is
// archived. Snapshots are never mutated; they are only created by archiving and
// removed by purging.
type Snapshot struct {
	ID          string    `json:"id" yaml:"id" toml:"id"`
	Title       string    `json:"title" yaml:"title" toml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Priority    Priority  `json:"priority" yaml:"priority" toml:"priority"`
	CompletedAt time.Time `json:"completedAt" yaml:"completedAt" toml:"completedAt"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	ArchivedAt  time.Time `json:"archivedAt" yaml:"archivedAt" toml:"archivedAt"`
}

// SnapshotFromTask projects a task into a snapshot. The task's ID, title,
// description, priority, completion and creation dates are copied verbatim.
// ok is false when the task has no completion date.
func SnapshotFromTask(t Task, archivedAt time.Time) (Snapshot, bool) {
	if t.CompletedAt == nil {
		return Snapshot{}, false
	}
	var tags []string
	if len(t.Tags) > 0 {
		tags = append([]string(nil), t.Tags...)
	}
	return Snapshot{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		CompletedAt: *t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		Tags:        tags,
		ArchivedAt:  archivedAt,
	}, true
}

// SnapshotFilters narrows logbook searches. Zero fields match everything.
type SnapshotFilters struct {
	From *time.Time // completed on or after
	To   *time.Time // completed on or before
	Tags []string   // any tag matches (case-insensitive)
}

// Matches reports whether s passes every set filter.
func (f SnapshotFilters) Matches(s Snapshot) bool {
	if f.From != nil && s.CompletedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && s.CompletedAt.After(*f.To) {
		return false
	}
	if len(f.Tags) == 0 {
		return true
	}
	for _, want := range f.Tags {
		for _, have := range s.Tags {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}
