package logbook

import (
	"log/slog"
	"time"

	"github.com/josephgoksu/DayWing/models"
)

// PassReport summarises one committed pass.
type PassReport struct {
	Pass  Pass
	Count int
	Now   time.Time
}

// Observer receives housekeeping diagnostics. The engine never logs on its own.
type Observer interface {
	// PassCompleted is called after a pass commits.
	PassCompleted(PassReport)
	// Skipped is called for a task that cannot be processed, with the reason.
	Skipped(task models.Task, reason string)
}

// NopObserver discards all diagnostics.
type NopObserver struct{}

func (NopObserver) PassCompleted(PassReport)    {}
func (NopObserver) Skipped(models.Task, string) {}

// SlogObserver writes diagnostics to a structured logger.
type SlogObserver struct {
	Logger *slog.Logger
}

// NewSlogObserver returns an observer logging to logger, or slog.Default when nil.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{Logger: logger}
}

func (o *SlogObserver) PassCompleted(r PassReport) {
	o.Logger.Info("housekeeping pass committed", "pass", string(r.Pass), "count", r.Count)
}

func (o *SlogObserver) Skipped(task models.Task, reason string) {
	o.Logger.Warn("housekeeping skipped task", "task_id", task.ID, "title", task.Title, "reason", reason)
}
