package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-admin-service/internal/app"
	"quiz-admin-service/internal/domain"
	"quiz-admin-service/internal/infra/filestore"
)

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	store, err := filestore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	service := app.NewSettingsServiceWithClock(store, func() time.Time { return now })
	ctx := context.Background()

	got, err := service.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Timer != 5 || got.QuestionsToShow != 10 {
		t.Fatalf("expected defaults, got %+v", got)
	}

	saved, err := service.Update(ctx, app.SettingsInput{Timer: 15, QuestionsToShow: 20})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if saved.UpdatedAt == nil || !saved.UpdatedAt.Equal(now) {
		t.Fatalf("expected updatedAt stamp, got %+v", saved)
	}

	got, _ = service.Get(ctx)
	if got.Timer != 15 || got.QuestionsToShow != 20 {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestSettingsRejectZeroValues(t *testing.T) {
	store, err := filestore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	service := app.NewSettingsService(store)
	ctx := context.Background()

	for _, in := range []app.SettingsInput{{Timer: 0, QuestionsToShow: 10}, {Timer: 5}} {
		if _, err := service.Update(ctx, in); !errors.Is(err, domain.ErrMissingSettings) {
			t.Fatalf("expected ErrMissingSettings for %+v, got %v", in, err)
		}
	}

	got, _ := service.Get(ctx)
	if got != domain.DefaultSettings() {
		t.Fatalf("rejected update must not persist, got %+v", got)
	}
}
