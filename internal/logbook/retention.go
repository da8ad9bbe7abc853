// Package logbook implements housekeeping for completed tasks.
//
// Completed tasks move through three stages based on how many days ago they
// were completed:
//
//	0-90 days    active, left alone
//	91-365 days  archived: replaced by a models.Snapshot in the logbook
//	366+ days    purged outright, no snapshot
//
// Snapshots themselves are purged once their completion date is more than
// 365 days old.
package logbook

import (
	"fmt"
	"time"

	"github.com/josephgoksu/DayWing/internal/util"
)

// Default retention thresholds, in days since completion.
const (
	DefaultArchiveAfterDays = 91
	DefaultRetainDays       = 365
)

// Action is the lifecycle step a record is eligible for.
type Action int

const (
	ActionKeep Action = iota
	ActionArchive
	ActionPurge
)

func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionArchive:
		return "archive"
	case ActionPurge:
		return "purge"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Policy holds the retention thresholds. The zero value uses the defaults.
type Policy struct {
	// ArchiveAfterDays is the first age (inclusive) at which a completed task is archived.
	ArchiveAfterDays int
	// RetainDays is the last age (inclusive) a record is kept; older records are purged.
	RetainDays int
}

// DefaultPolicy returns the standard 91/365 day policy.
func DefaultPolicy() Policy {
	return Policy{ArchiveAfterDays: DefaultArchiveAfterDays, RetainDays: DefaultRetainDays}
}

func (p Policy) withDefaults() Policy {
	if p.ArchiveAfterDays <= 0 {
		p.ArchiveAfterDays = DefaultArchiveAfterDays
	}
	if p.RetainDays <= 0 {
		p.RetainDays = DefaultRetainDays
	}
	return p
}

// Validate checks that the archive band is non-empty.
func (p Policy) Validate() error {
	p = p.withDefaults()
	if p.ArchiveAfterDays > p.RetainDays {
		return fmt.Errorf("archive threshold %d days exceeds retention %d days", p.ArchiveAfterDays, p.RetainDays)
	}
	return nil
}

// Age returns whole days elapsed since completedAt. Clock skew yields 0.
func Age(completedAt, now time.Time) int {
	return util.DaysBetween(completedAt, now)
}

// Classify maps a completion date to the lifecycle action for a live task.
// Tasks with no completion date are always kept.
func (p Policy) Classify(completedAt *time.Time, now time.Time) Action {
	if completedAt == nil {
		return ActionKeep
	}
	p = p.withDefaults()
	age := Age(*completedAt, now)
	switch {
	case age < p.ArchiveAfterDays:
		return ActionKeep
	case age <= p.RetainDays:
		return ActionArchive
	default:
		return ActionPurge
	}
}

// SnapshotExpired reports whether a snapshot completed at completedAt is past
// the retention window.
func (p Policy) SnapshotExpired(completedAt, now time.Time) bool {
	p = p.withDefaults()
	return Age(completedAt, now) > p.RetainDays
}
