package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Priority is an ordered urgency scale. Higher values are more urgent.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// ValidPriorities returns all priority values in ascending order of urgency.
func ValidPriorities() []Priority {
	return []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return p >= PriorityNone && p <= PriorityHigh
}

// String returns the lowercase name used in storage and config.
func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "none"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Label returns the display name, e.g. "High".
func (p Priority) Label() string {
	return cases.Title(language.English).String(p.String())
}

// ParsePriority parses a priority name (case-insensitive) or its numeric value.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range ValidPriorities() {
		if s == p.String() || s == fmt.Sprint(int(p)) {
			return p, nil
		}
	}
	return PriorityNone, fmt.Errorf("unknown priority %q (want none, low, medium, high)", s)
}
