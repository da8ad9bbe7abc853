package memory

import (
	"context"
	"fmt"

	"github.com/josephgoksu/DayWing/models"
)

// Housekeeping is the logbook engine's view of the store. Mutations are staged
// in memory and written in a single transaction by Commit.
//
// A Housekeeping value is not safe for concurrent use.
type Housekeeping struct {
	store *SQLiteStore

	inserts     []models.Snapshot
	taskDeletes []string
	snapDeletes []string
}

// Housekeeping returns a fresh staging area over the store.
func (s *SQLiteStore) Housekeeping() *Housekeeping {
	return &Housekeeping{store: s}
}

// CompletedTasks returns every completed task.
func (h *Housekeeping) CompletedTasks(ctx context.Context) ([]models.Task, error) {
	return h.store.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE completed = 1 ORDER BY id`)
}

// Snapshots returns every logbook entry.
func (h *Housekeeping) Snapshots(ctx context.Context) ([]models.Snapshot, error) {
	return h.store.querySnapshots(ctx, `SELECT `+snapshotColumns+` FROM snapshots ORDER BY id`)
}

func (h *Housekeeping) InsertSnapshot(sn models.Snapshot) { h.inserts = append(h.inserts, sn) }
func (h *Housekeeping) DeleteTask(id string)              { h.taskDeletes = append(h.taskDeletes, id) }
func (h *Housekeeping) DeleteSnapshot(id string)          { h.snapDeletes = append(h.snapDeletes, id) }

// Pending reports how many staged operations await Commit.
func (h *Housekeeping) Pending() int {
	return len(h.inserts) + len(h.taskDeletes) + len(h.snapDeletes)
}

// Commit writes the staged batch atomically. The batch is cleared whether or
// not the write succeeds.
func (h *Housekeeping) Commit(ctx context.Context) error {
	defer h.reset()

	tx, err := h.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ex := execContext{ctx, tx}
	for _, sn := range h.inserts {
		if err := insertSnapshot(ex, sn); err != nil {
			return err
		}
	}
	for _, id := range h.taskDeletes {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete task %s: %w", id, err)
		}
	}
	for _, id := range h.snapDeletes {
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete snapshot %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (h *Housekeeping) reset() {
	h.inserts = nil
	h.taskDeletes = nil
	h.snapDeletes = nil
}
