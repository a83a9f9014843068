package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"quiz-admin-service/internal/domain"
)

func TestOpenSeedsDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for _, name := range []string{StudentsFile, QuestionsFile, SettingsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to be created: %v", name, err)
		}
	}

	settings, err := store.Settings(context.Background())
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.Timer != 5 || settings.QuestionsToShow != 10 {
		t.Fatalf("unexpected default settings %+v", settings)
	}
}

func TestOpenKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StudentsFile), []byte(`["CS/2024/001"]`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	roster, err := store.Roster(context.Background())
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 1 || roster[0] != "CS/2024/001" {
		t.Fatalf("expected existing roster kept, got %v", roster)
	}
}

func TestMergeRosterSkipsDuplicatesAndBlanks(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	added, err := store.MergeRoster(ctx, []string{"CS/2024/001", " ", "CS/2024/002", "CS/2024/001"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	added, _ = store.MergeRoster(ctx, []string{" CS/2024/002 ", "CS/2024/003"})
	if added != 1 {
		t.Fatalf("expected 1 added on second merge, got %d", added)
	}

	roster, _ := store.Roster(ctx)
	if len(roster) != 3 {
		t.Fatalf("expected 3 roster entries, got %v", roster)
	}
}

func TestUpdateFailureLeavesFileUntouched(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	boom := errors.New("boom")

	err = store.UpdateQuestions(ctx, func(qs []domain.Question) ([]domain.Question, error) {
		return append(qs, domain.Question{ID: "1"}), boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	qs, _ := store.Questions(ctx)
	if len(qs) != 0 {
		t.Fatalf("expected no questions written, got %d", len(qs))
	}
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	file := NewJSONFile[[]int](filepath.Join(t.TempDir(), "counter.json"))
	if err := file.EnsureDefault([]int{}); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = file.Update(func(v []int) ([]int, error) { return append(v, i), nil })
		}(i)
	}
	wg.Wait()

	v, err := file.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(v) != 20 {
		t.Fatalf("expected 20 appended values, got %d", len(v))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewJSONFile[domain.Settings](path).Load(); err == nil {
		t.Fatalf("expected decode error")
	}
}
