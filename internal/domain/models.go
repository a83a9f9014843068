package domain

import (
	"sort"
	"time"
)

// Question is a multiple choice question as stored in questions.json.
type Question struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer *int       `json:"correctAnswer"` // null when the submitted value was not numeric
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// QuestionInput carries the content fields of a create or update request.
// Nil slices and pointers mean the field was absent from the request.
type QuestionInput struct {
	Question      string
	Options       []string
	HasAnswer     bool
	CorrectAnswer *int
}

// Result is a single quiz attempt. Results are written once and never updated.
type Result struct {
	ID         string    `json:"id"`
	RegNumber  string    `json:"regNumber"`
	FullName   string    `json:"fullName"`
	Score      float64   `json:"score"`
	Total      float64   `json:"total"`
	Department string    `json:"department"`
	Year       string    `json:"year"`
	Timestamp  time.Time `json:"timestamp"`
}

// SubmitResult is the payload of a result submission. Score and Total are nil when absent.
type SubmitResult struct {
	RegNumber  string
	FullName   string
	Score      *float64
	Total      *float64
	Department string
}

// Settings is the singleton quiz configuration.
type Settings struct {
	Timer           int        `json:"timer"`
	QuestionsToShow int        `json:"questionsToShow"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// DefaultSettings are written when no settings file exists yet.
func DefaultSettings() Settings {
	return Settings{Timer: 5, QuestionsToShow: 10}
}

// ExportFile is a rendered export ready to be sent or archived.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// SortNewestFirst orders results by timestamp descending, breaking ties by ID descending.
func SortNewestFirst(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].Timestamp.Equal(results[j].Timestamp) {
			return results[i].Timestamp.After(results[j].Timestamp)
		}
		return results[i].ID > results[j].ID
	})
}
