package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"quiz-admin-service/internal/domain"
)

type fakeExporter struct {
	calls int
	err   error
}

func (f *fakeExporter) ExportAndClear(_ context.Context, format string) (domain.ExportFile, error) {
	f.calls++
	if f.err != nil {
		return domain.ExportFile{}, f.err
	}
	return domain.ExportFile{Name: "quiz_results." + format, Rows: 3}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnceTreatsEmptyStoreAsNoop(t *testing.T) {
	exporter := &fakeExporter{err: domain.ErrNothingToExport}
	s := New(exporter, "csv", discardLogger())

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("expected no error for empty store, got %v", err)
	}
	if exporter.calls != 1 {
		t.Fatalf("expected one export call, got %d", exporter.calls)
	}
}

func TestRunOncePropagatesFailures(t *testing.T) {
	boom := errors.New("store down")
	s := New(&fakeExporter{err: boom}, "csv", discardLogger())

	if err := s.RunOnce(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestStartRejectsBadCron(t *testing.T) {
	s := New(&fakeExporter{}, "csv", discardLogger())
	defer s.Stop()

	if err := s.Start("not a cron"); err == nil {
		t.Fatalf("expected invalid cron expression error")
	}
}
