package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ID prefixes for stored entities.
const (
	TaskIDPrefix  = "task-"
	HabitIDPrefix = "habit-"
)

// Task represents a single to-do item.
type Task struct {
	ID          string     `json:"id" validate:"required,startswith=task-"`
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	// DueDate is the day the task is due. When DueHasTime is false only the
	// calendar day is meaningful.
	DueDate    *time.Time `json:"dueDate,omitempty"`
	DueHasTime bool       `json:"dueHasTime,omitempty"`
	Priority   Priority   `json:"priority" validate:"min=0,max=3"`
	Tags       []string   `json:"tags,omitempty" validate:"dive,required,max=64"`

	// Reminder configuration
	AlertHour    *int       `json:"alertHour,omitempty" validate:"omitempty,min=0,max=23"`
	AlertMinute  int        `json:"alertMinute,omitempty" validate:"min=0,max=59"`
	AlertFired   bool       `json:"alertFired,omitempty"`
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty"`

	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

// NewTask creates an open task with a fresh ID and default priority.
func NewTask(title string, now time.Time) *Task {
	return &Task{
		ID:        TaskIDPrefix + uuid.New().String()[:8],
		Title:     strings.TrimSpace(title),
		Priority:  PriorityMedium,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete marks the task done at the given time.
func (t *Task) Complete(at time.Time) {
	t.Completed = true
	t.CompletedAt = &at
	t.UpdatedAt = at
}

// Reopen clears completion state.
func (t *Task) Reopen(at time.Time) {
	t.Completed = false
	t.CompletedAt = nil
	t.AlertFired = false
	t.UpdatedAt = at
}

// Validate checks struct tags on the task.
func (t *Task) Validate() error {
	return ValidateStruct(t)
}

// global validator instance
var validate = validator.New()

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errorMessages []string
	for _, e := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
}
