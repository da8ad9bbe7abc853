package logbook

import (
	"context"
	"errors"
	"sort"

	"github.com/josephgoksu/DayWing/models"
)

// memStore is an in-memory Store with staged mutations and failure injection.
type memStore struct {
	tasks map[string]models.Task
	snaps map[string]models.Snapshot

	inserts     []models.Snapshot
	taskDeletes []string
	snapDeletes []string

	// failFetchTasksOn fails the n-th call (1-based) to CompletedTasks.
	failFetchTasksOn int
	failFetchSnaps   bool
	// failCommitOn fails the n-th call (1-based) to Commit.
	failCommitOn int

	fetchTaskCalls int
	commitCalls    int
}

var errDisk = errors.New("disk I/O error")

func newMemStore(tasks []models.Task, snaps []models.Snapshot) *memStore {
	s := &memStore{
		tasks: make(map[string]models.Task),
		snaps: make(map[string]models.Snapshot),
	}
	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
	for _, sn := range snaps {
		s.snaps[sn.ID] = sn
	}
	return s
}

func (s *memStore) CompletedTasks(ctx context.Context) ([]models.Task, error) {
	s.fetchTaskCalls++
	if s.failFetchTasksOn == s.fetchTaskCalls {
		return nil, errDisk
	}
	var out []models.Task
	for _, t := range s.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Snapshots(ctx context.Context) ([]models.Snapshot, error) {
	if s.failFetchSnaps {
		return nil, errDisk
	}
	out := make([]models.Snapshot, 0, len(s.snaps))
	for _, sn := range s.snaps {
		out = append(out, sn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) InsertSnapshot(sn models.Snapshot) { s.inserts = append(s.inserts, sn) }
func (s *memStore) DeleteTask(id string)              { s.taskDeletes = append(s.taskDeletes, id) }
func (s *memStore) DeleteSnapshot(id string)          { s.snapDeletes = append(s.snapDeletes, id) }

func (s *memStore) Commit(ctx context.Context) error {
	s.commitCalls++
	defer s.reset()
	if s.failCommitOn == s.commitCalls {
		return errDisk
	}
	for _, sn := range s.inserts {
		s.snaps[sn.ID] = sn
	}
	for _, id := range s.taskDeletes {
		delete(s.tasks, id)
	}
	for _, id := range s.snapDeletes {
		delete(s.snaps, id)
	}
	return nil
}

func (s *memStore) reset() {
	s.inserts = nil
	s.taskDeletes = nil
	s.snapDeletes = nil
}

// recordingObserver captures observer calls.
type recordingObserver struct {
	passes  []PassReport
	skipped []string
}

func (o *recordingObserver) PassCompleted(r PassReport) { o.passes = append(o.passes, r) }
func (o *recordingObserver) Skipped(t models.Task, reason string) {
	o.skipped = append(o.skipped, t.ID)
}
