package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func sampleRuns(n int) []Run {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	runs := make([]Run, 0, n)
	for i := 0; i < n; i++ {
		runs = append(runs, Run{
			ID:           string(rune('a' + i)),
			Timestamp:    base.Add(time.Duration(i) * time.Hour),
			Commit:       "deadbeef",
			FilesChecked: 10 + i,
			Errors:       i,
			Warnings:     1,
			Infos:        2,
			Suppressed:   1,
			Duration:     150 * time.Millisecond,
		})
	}
	return runs
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreRecordAndRecent(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, run := range sampleRuns(3) {
				if err := store.Record(ctx, run); err != nil {
					t.Fatalf("Record() error: %v", err)
				}
			}

			runs, err := store.Recent(ctx, 10)
			if err != nil {
				t.Fatalf("Recent() error: %v", err)
			}
			if len(runs) != 3 {
				t.Fatalf("len(runs) = %d, want 3", len(runs))
			}
			// Newest first.
			for i := 1; i < len(runs); i++ {
				if runs[i].Timestamp.After(runs[i-1].Timestamp) {
					t.Errorf("runs out of order: %v before %v", runs[i-1].Timestamp, runs[i].Timestamp)
				}
			}

			got := runs[0]
			if got.Errors != 2 || got.Warnings != 1 || got.Infos != 2 || got.Suppressed != 1 {
				t.Errorf("counts = %+v", got)
			}
			if got.Commit != "deadbeef" {
				t.Errorf("Commit = %q", got.Commit)
			}
			if got.Duration != 150*time.Millisecond {
				t.Errorf("Duration = %v", got.Duration)
			}
			if got.Total() != 5 {
				t.Errorf("Total() = %d, want 5", got.Total())
			}
		})
	}
}

func TestStoreRecentLimit(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, run := range sampleRuns(5) {
				if err := store.Record(ctx, run); err != nil {
					t.Fatalf("Record() error: %v", err)
				}
			}

			runs, err := store.Recent(ctx, 2)
			if err != nil {
				t.Fatalf("Recent() error: %v", err)
			}
			if len(runs) != 2 {
				t.Errorf("len(runs) = %d, want 2", len(runs))
			}

			// A non-positive limit falls back to the default window.
			runs, err = store.Recent(ctx, 0)
			if err != nil {
				t.Fatalf("Recent(0) error: %v", err)
			}
			if len(runs) != 5 {
				t.Errorf("len(runs) = %d, want all 5", len(runs))
			}
		})
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	if err := store.Record(ctx, sampleRuns(1)[0]); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("len(runs) = %d, want 1 after reopen", len(runs))
	}
}

func TestSQLiteStoreEmptyPath(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Error("empty path should be rejected")
	}
}
