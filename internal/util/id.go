// Package util provides shared date and ID helpers.
package util

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 13
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID truncates id to n characters, DefaultShortIDLength when n <= 0.
//
//	ShortID("task-abcdef12", 8)  → "task-abc"
//	ShortID("habit-xyz", 20)     → "habit-xyz"
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// PrefixFinder returns every stored ID beginning with prefix.
type PrefixFinder func(ctx context.Context, prefix string) ([]string, error)

// ResolveID resolves a full ID or a unique prefix of one.
//
// The entity prefix (e.g. "task-") is added when missing. An exact match wins
// over longer IDs sharing the prefix; otherwise exactly one candidate must match.
func ResolveID(ctx context.Context, find PrefixFinder, entityPrefix, idOrPrefix string) (string, error) {
	entity := strings.TrimSuffix(entityPrefix, "-")
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("%s ID: %w", entity, ErrNotFound)
	}

	normalized := idOrPrefix
	if !strings.HasPrefix(normalized, entityPrefix) {
		normalized = entityPrefix + normalized
	}

	candidates, err := find(ctx, normalized)
	if err != nil {
		return "", fmt.Errorf("find %s IDs: %w", entity, err)
	}
	for _, c := range candidates {
		if c == normalized {
			return c, nil
		}
	}

	return resolveFromCandidates(normalized, candidates, entity)
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string, entityType string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s with prefix %q: %w", entityType, prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d %ss: %v",
			ErrAmbiguousID, prefix, len(candidates), entityType, shown)
	}
}
