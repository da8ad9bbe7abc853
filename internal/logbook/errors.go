package logbook

import (
	"errors"
	"fmt"
)

// ErrStorage marks failures reported by the persistence store.
var ErrStorage = errors.New("logbook storage error")

// Pass identifies one housekeeping pass.
type Pass string

const (
	PassArchive        Pass = "archive"
	PassPurgeTasks     Pass = "purge-tasks"
	PassPurgeSnapshots Pass = "purge-snapshots"
)

// Entity kinds a pass operates on.
const (
	KindTask     = "task"
	KindSnapshot = "snapshot"
)

// PassError reports the storage failure that aborted a housekeeping run.
type PassError struct {
	Pass Pass
	Kind string // entity kind being fetched or committed
	Op   string // "fetch" or "commit"
	Err  error
}

func (e *PassError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s pass: %s %ss: %v", e.Pass, e.Op, e.Kind, e.Err)
}

// Unwrap exposes both ErrStorage and the underlying store error.
func (e *PassError) Unwrap() []error { return []error{ErrStorage, e.Err} }

func fetchError(pass Pass, kind string, err error) error {
	return &PassError{Pass: pass, Kind: kind, Op: "fetch", Err: err}
}

func commitError(pass Pass, kind string, err error) error {
	return &PassError{Pass: pass, Kind: kind, Op: "commit", Err: err}
}
