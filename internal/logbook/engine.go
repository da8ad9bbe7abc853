package logbook

import (
	"context"
	"time"

	"github.com/josephgoksu/DayWing/models"
)

// Store is the persistence collaborator housekeeping runs against.
//
// Mutations are staged and only applied by Commit, which applies the whole batch
// or none of it. A failed Commit discards the staged batch.
type Store interface {
	// CompletedTasks returns all tasks currently marked completed.
	CompletedTasks(ctx context.Context) ([]models.Task, error)
	// Snapshots returns every logbook snapshot.
	Snapshots(ctx context.Context) ([]models.Snapshot, error)

	InsertSnapshot(s models.Snapshot)
	DeleteTask(id string)
	DeleteSnapshot(id string)
	Commit(ctx context.Context) error
}

// Stats counts what one housekeeping run changed.
type Stats struct {
	Archived        int `json:"archived"`
	PurgedTasks     int `json:"purgedTasks"`
	PurgedSnapshots int `json:"purgedSnapshots"`
	// Skipped counts completed tasks ignored for missing a completion date.
	Skipped int `json:"skipped"`
}

// Plan lists what a run would change, without changing anything.
type Plan struct {
	Archive        []string `json:"archive"`
	PurgeTasks     []string `json:"purgeTasks"`
	PurgeSnapshots []string `json:"purgeSnapshots"`
	SkippedTasks   []string `json:"skippedTasks,omitempty"`
}

// Engine runs the archive and purge passes.
//
// Engine holds no locks: callers must not run two housekeeping passes against
// the same store concurrently.
type Engine struct {
	store    Store
	policy   Policy
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy overrides the retention thresholds.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p.withDefaults() }
}

// WithObserver sets the diagnostics observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine creates a housekeeping engine over store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		policy:   DefaultPolicy(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs the three passes in order using one fixed now:
//
//  1. archive completed tasks aged within the archive band,
//  2. purge completed tasks older than the retention window,
//  3. purge snapshots older than the retention window.
//
// Each pass fetches fresh data and commits on its own. On failure Run returns
// the stats of the passes that committed before it, along with a *PassError.
func (e *Engine) Run(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats

	archived, skipped, err := e.archivePass(ctx, now)
	stats.Skipped = skipped
	if err != nil {
		return stats, err
	}
	stats.Archived = archived

	purged, err := e.purgeTasksPass(ctx, now)
	if err != nil {
		return stats, err
	}
	stats.PurgedTasks = purged

	purgedSnaps, err := e.purgeSnapshotsPass(ctx, now)
	if err != nil {
		return stats, err
	}
	stats.PurgedSnapshots = purgedSnaps

	return stats, nil
}

func (e *Engine) archivePass(ctx context.Context, now time.Time) (int, int, error) {
	tasks, err := e.store.CompletedTasks(ctx)
	if err != nil {
		return 0, 0, fetchError(PassArchive, KindTask, err)
	}

	count, skipped := 0, 0
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		if t.CompletedAt == nil {
			skipped++
			e.observer.Skipped(t, "completed task has no completion date")
			continue
		}
		if e.policy.Classify(t.CompletedAt, now) != ActionArchive {
			continue
		}
		snap, ok := models.SnapshotFromTask(t, now)
		if !ok {
			skipped++
			e.observer.Skipped(t, "completed task has no completion date")
			continue
		}
		e.store.InsertSnapshot(snap)
		e.store.DeleteTask(t.ID)
		count++
	}

	if err := e.commit(ctx, PassArchive, KindTask, count, now); err != nil {
		return 0, skipped, err
	}
	return count, skipped, nil
}

func (e *Engine) purgeTasksPass(ctx context.Context, now time.Time) (int, error) {
	tasks, err := e.store.CompletedTasks(ctx)
	if err != nil {
		return 0, fetchError(PassPurgeTasks, KindTask, err)
	}

	count := 0
	for _, t := range tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		if e.policy.Classify(t.CompletedAt, now) != ActionPurge {
			continue
		}
		e.store.DeleteTask(t.ID)
		count++
	}

	if err := e.commit(ctx, PassPurgeTasks, KindTask, count, now); err != nil {
		return 0, err
	}
	return count, nil
}

func (e *Engine) purgeSnapshotsPass(ctx context.Context, now time.Time) (int, error) {
	snaps, err := e.store.Snapshots(ctx)
	if err != nil {
		return 0, fetchError(PassPurgeSnapshots, KindSnapshot, err)
	}

	count := 0
	for _, s := range snaps {
		if !e.policy.SnapshotExpired(s.CompletedAt, now) {
			continue
		}
		e.store.DeleteSnapshot(s.ID)
		count++
	}

	if err := e.commit(ctx, PassPurgeSnapshots, KindSnapshot, count, now); err != nil {
		return 0, err
	}
	return count, nil
}

// commit applies the staged batch. Empty passes do not touch the store.
func (e *Engine) commit(ctx context.Context, pass Pass, kind string, count int, now time.Time) error {
	if count > 0 {
		if err := e.store.Commit(ctx); err != nil {
			return commitError(pass, kind, err)
		}
	}
	e.observer.PassCompleted(PassReport{Pass: pass, Count: count, Now: now})
	return nil
}

// Plan reports what Run would do at now without staging any mutation.
func (e *Engine) Plan(ctx context.Context, now time.Time) (Plan, error) {
	var plan Plan

	tasks, err := e.store.CompletedTasks(ctx)
	if err != nil {
		return plan, fetchError(PassArchive, KindTask, err)
	}
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		if t.CompletedAt == nil {
			plan.SkippedTasks = append(plan.SkippedTasks, t.ID)
			continue
		}
		switch e.policy.Classify(t.CompletedAt, now) {
		case ActionArchive:
			plan.Archive = append(plan.Archive, t.ID)
		case ActionPurge:
			plan.PurgeTasks = append(plan.PurgeTasks, t.ID)
		}
	}

	snaps, err := e.store.Snapshots(ctx)
	if err != nil {
		return plan, fetchError(PassPurgeSnapshots, KindSnapshot, err)
	}
	for _, s := range snaps {
		if e.policy.SnapshotExpired(s.CompletedAt, now) {
			plan.PurgeSnapshots = append(plan.PurgeSnapshots, s.ID)
		}
	}

	return plan, nil
}
