package domain

import "errors"

var (
	// ErrRegNumberRequired is returned when a login carries no registration number.
	ErrRegNumberRequired = errors.New("registration number is required")
	// ErrInvalidRegNumber is returned when no roster entry matches a login attempt.
	ErrInvalidRegNumber = errors.New("invalid registration number")
	// ErrIncompleteResult is returned when a result submission misses regNumber, score or total.
	ErrIncompleteResult = errors.New("incomplete result data")
	// ErrInvalidRegNumberFormat is returned when a submitted result carries a malformed registration number.
	ErrInvalidRegNumberFormat = errors.New("invalid registration number format")
	// ErrMissingQuestionFields indicates a question payload without question, options or correctAnswer.
	ErrMissingQuestionFields = errors.New("missing fields")
	// ErrQuestionNotFound indicates an unknown question ID.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNothingToExport is returned by export/clear when the result store is empty.
	ErrNothingToExport = errors.New("no results to export")
	// ErrMissingSettings is returned when timer or questionsToShow is absent or zero.
	ErrMissingSettings = errors.New("missing settings fields")
	// ErrUnsupportedFormat is returned for an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
