package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"quiz-admin-service/internal/domain"
)

func TestResultStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewResultStore(newClient(mr), "")
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	first := domain.Result{ID: "CS/2024/001_1", RegNumber: "CS/2024/001", Score: 7, Total: 10, Year: "2024", Timestamp: base}
	second := domain.Result{ID: "CS/2024/001_2", RegNumber: "CS/2024/001", Score: 9, Total: 10, Year: "2024", Timestamp: base.Add(time.Second)}
	other := domain.Result{ID: "20191234_3", RegNumber: "20191234", Score: 1, Total: 10, Year: "2019", Timestamp: base.Add(2 * time.Second)}
	for _, r := range []domain.Result{first, second, other} {
		if err := store.SaveResult(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if !mr.Exists("results:doc:CS/2024/001_1") {
		t.Fatalf("expected document key to be set")
	}

	results, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 3 || results[0].ID != other.ID || results[2].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", results)
	}
	if !results[1].Timestamp.Equal(second.Timestamp) || results[1].Score != 9 {
		t.Fatalf("expected result to round trip, got %+v", results[1])
	}

	found, ok, err := store.FindResult(ctx, "CS/2024/001")
	if err != nil || !ok || found.ID != second.ID {
		t.Fatalf("expected latest result for student, got %+v ok=%v err=%v", found, ok, err)
	}

	if err := store.DeleteResults(ctx, []domain.Result{first, second}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("results:doc:CS/2024/001_1") || mr.Exists("results:doc:CS/2024/001_2") {
		t.Fatalf("expected deleted keys to be removed")
	}
	results, _ = store.ListResults(ctx)
	if len(results) != 1 || results[0].ID != other.ID {
		t.Fatalf("expected only the unexported result left, got %+v", results)
	}
	if _, ok, _ := store.FindResult(ctx, "CS/2024/001"); ok {
		t.Fatalf("expected no result for deleted student")
	}
}

func TestResultStoreWrapsErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	store := NewResultStore(newClient(mr), "")
	mr.Close()

	ctx := context.Background()
	r := domain.Result{ID: "CSC/2024/001_1", RegNumber: "CSC/2024/001", Timestamp: time.Now()}

	if err := store.SaveResult(ctx, r); err == nil || !strings.HasPrefix(err.Error(), "save result ") {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	if _, _, err := store.FindResult(ctx, r.RegNumber); err == nil || !strings.HasPrefix(err.Error(), "find result: ") {
		t.Fatalf("expected wrapped find error, got %v", err)
	}
	if _, err := store.ListResults(ctx); err == nil || !strings.HasPrefix(err.Error(), "list results: ") {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
	if err := store.DeleteResults(ctx, []domain.Result{r}); err == nil || !strings.HasPrefix(err.Error(), "delete results: ") {
		t.Fatalf("expected wrapped delete error, got %v", err)
	}
}
