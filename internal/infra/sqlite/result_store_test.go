package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quiz-admin-service/internal/domain"
)

func TestResultStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "db", "results.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	first := domain.Result{ID: "CS/2024/001_1", RegNumber: "CS/2024/001", FullName: "Ada", Score: 7, Total: 10, Department: "CS", Year: "2024", Timestamp: base}
	second := domain.Result{ID: "20191234_2", RegNumber: "20191234", FullName: "Not Provided", Score: 3.5, Total: 10, Department: "N/A", Year: "2019", Timestamp: base.Add(1500 * time.Millisecond)}
	for _, r := range []domain.Result{first, second} {
		if err := store.SaveResult(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	if err := store.SaveResult(ctx, first); err == nil {
		t.Fatalf("expected duplicate id to be rejected")
	}

	results, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 2 || results[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", results)
	}
	if results[0].Score != 3.5 || !results[0].Timestamp.Equal(second.Timestamp) {
		t.Fatalf("expected result to round trip, got %+v", results[0])
	}

	found, ok, err := store.FindResult(ctx, "CS/2024/001")
	if err != nil || !ok || found.FullName != "Ada" {
		t.Fatalf("expected to find result, got %+v ok=%v err=%v", found, ok, err)
	}
	if _, ok, _ := store.FindResult(ctx, "NOPE"); ok {
		t.Fatalf("expected no result for unknown student")
	}

	if err := store.DeleteResults(ctx, results); err != nil {
		t.Fatalf("delete: %v", err)
	}
	results, _ = store.ListResults(ctx)
	if len(results) != 0 {
		t.Fatalf("expected empty store, got %d", len(results))
	}
}
