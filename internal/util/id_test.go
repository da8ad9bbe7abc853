package util

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		n    int
		want string
	}{
		{name: "default keeps full task ID", id: "task-abcdef12", n: 0, want: "task-abcdef12"},
		{name: "negative uses default", id: "habit-abcdef12", n: -1, want: "habit-abcdef1"},
		{name: "explicit length", id: "task-abcdef12", n: 8, want: "task-abc"},
		{name: "length longer than ID", id: "task-abc", n: 20, want: "task-abc"},
		{name: "empty ID", id: "", n: 8, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShortID(tc.id, tc.n); got != tc.want {
				t.Errorf("ShortID(%q, %d) = %q, want %q", tc.id, tc.n, got, tc.want)
			}
		})
	}
}

// finder returns a PrefixFinder over a fixed ID list.
func finder(ids ...string) PrefixFinder {
	return func(_ context.Context, prefix string) ([]string, error) {
		var out []string
		for _, id := range ids {
			if strings.HasPrefix(id, prefix) {
				out = append(out, id)
			}
		}
		return out, nil
	}
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	ids := finder("task-abc11111", "task-abc22222", "task-def33333", "task-x", "task-xy")

	tests := []struct {
		name       string
		idOrPrefix string
		want       string
		wantErr    error
	}{
		{name: "full ID", idOrPrefix: "task-def33333", want: "task-def33333"},
		{name: "unique prefix", idOrPrefix: "task-de", want: "task-def33333"},
		{name: "prefix without entity prefix", idOrPrefix: "abc1", want: "task-abc11111"},
		{name: "exact match beats longer IDs", idOrPrefix: "x", want: "task-x"},
		{name: "ambiguous", idOrPrefix: "abc", wantErr: ErrAmbiguousID},
		{name: "no match", idOrPrefix: "zzz", wantErr: ErrNotFound},
		{name: "empty", idOrPrefix: "  ", wantErr: ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveID(ctx, ids, "task-", tc.idOrPrefix)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ResolveID() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveID() unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ResolveID() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveID_FinderError(t *testing.T) {
	boom := errors.New("db closed")
	failing := func(context.Context, string) ([]string, error) { return nil, boom }

	_, err := ResolveID(context.Background(), failing, "habit-", "abc")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped finder error, got %v", err)
	}
}

func TestAmbiguousErrorMessage(t *testing.T) {
	many := finder("habit-a1", "habit-a2", "habit-a3", "habit-a4", "habit-a5", "habit-a6", "habit-a7")

	_, err := ResolveID(context.Background(), many, "habit-", "a")
	if !errors.Is(err, ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "matches 7 habits") {
		t.Errorf("error should report the total count: %s", msg)
	}
	if strings.Contains(msg, "habit-a6") {
		t.Errorf("error should list at most %d candidates: %s", MaxAmbiguousCandidates, msg)
	}
}
