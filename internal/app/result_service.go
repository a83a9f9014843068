package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"quiz-admin-service/internal/domain"
	"quiz-admin-service/internal/export"
)

// YearFallbackCurrent makes results without a 4-digit run land in the current calendar year.
// Every number accepted by Save carries a 4-digit run, so the fallback only applies
// when the partition is resolved for records written by other tools.
const YearFallbackCurrent = "current"

// ResultOptions tune how results are partitioned and exported.
type ResultOptions struct {
	// YearFallback is domain.UnknownYear (default) or YearFallbackCurrent.
	YearFallback string
	// Archiver, when set, receives every export before the results are deleted.
	Archiver Archiver
}

// ResultService saves quiz attempts and runs the export/clear job.
type ResultService struct {
	store        ResultStore
	feed         *ResultFeed
	archiver     Archiver
	yearFallback string
	now          func() time.Time
}

func NewResultService(store ResultStore, feed *ResultFeed, opts ResultOptions) *ResultService {
	return NewResultServiceWithClock(store, feed, opts, time.Now)
}

// NewResultServiceWithClock is used by tests for deterministic IDs and timestamps.
func NewResultServiceWithClock(store ResultStore, feed *ResultFeed, opts ResultOptions, now func() time.Time) *ResultService {
	fallback := opts.YearFallback
	if fallback == "" {
		fallback = domain.UnknownYear
	}
	return &ResultService{
		store:        store,
		feed:         feed,
		archiver:     opts.Archiver,
		yearFallback: fallback,
		now:          now,
	}
}

// Save validates a submission, stores it under a year partition and returns the generated ID.
func (s *ResultService) Save(ctx context.Context, in domain.SubmitResult) (string, error) {
	if in.RegNumber == "" || in.Score == nil || in.Total == nil {
		return "", domain.ErrIncompleteResult
	}
	if !domain.ValidResultRegNumber(in.RegNumber) {
		return "", domain.ErrInvalidRegNumberFormat
	}

	now := s.now()
	reg := domain.CanonicalRegNumber(in.RegNumber)
	result := domain.Result{
		ID:         domain.ResultID(reg, now),
		RegNumber:  reg,
		FullName:   in.FullName,
		Score:      *in.Score,
		Total:      *in.Total,
		Department: in.Department,
		Year:       domain.PartitionYear(reg, s.fallbackYear(now)),
		Timestamp:  now,
	}
	if result.FullName == "" {
		result.FullName = "Not Provided"
	}
	if result.Department == "" {
		result.Department = "N/A"
	}

	if err := s.store.SaveResult(ctx, result); err != nil {
		return "", fmt.Errorf("save result: %w", err)
	}
	if s.feed != nil {
		s.feed.Publish(result)
	}
	return result.ID, nil
}

// List returns every stored result, newest first.
func (s *ResultService) List(ctx context.Context) ([]domain.Result, error) {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	if results == nil {
		results = []domain.Result{}
	}
	return results, nil
}

// ExportAndClear snapshots all results, renders them in the requested format,
// archives the file when an archiver is configured and then deletes exactly the
// snapshot in one batch. Results saved after the snapshot are kept.
func (s *ResultService) ExportAndClear(ctx context.Context, format string) (domain.ExportFile, error) {
	snapshot, err := s.store.ListResults(ctx)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("list results: %w", err)
	}
	if len(snapshot) == 0 {
		return domain.ExportFile{}, domain.ErrNothingToExport
	}

	file, err := export.Render(format, snapshot)
	if err != nil {
		return domain.ExportFile{}, err
	}

	if s.archiver != nil {
		if _, err := s.archiver.Archive(ctx, file); err != nil {
			return domain.ExportFile{}, fmt.Errorf("archive export: %w", err)
		}
	}

	if err := s.store.DeleteResults(ctx, snapshot); err != nil {
		return domain.ExportFile{}, fmt.Errorf("delete exported results: %w", err)
	}
	return file, nil
}

func (s *ResultService) fallbackYear(now time.Time) string {
	if s.yearFallback == YearFallbackCurrent {
		return strconv.Itoa(now.Year())
	}
	return s.yearFallback
}
