// Package firestore stores quiz results in Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
	"quiz-admin-service/internal/domain"
)

// Options control the document layout.
type Options struct {
	// Root is the top level collection, "Results" by default.
	Root string
	// Partition names the document holding the year subcollections, "EBSU" by default.
	Partition string
	// MirrorByYear also writes every result to {Root}/{Partition}/{year}/{id}.
	MirrorByYear bool
}

// ResultStore writes each result to {Root}/{id} with a server timestamp and,
// when mirroring is enabled, a copy under the year partition. Listing, lookup
// and export read the flat collection only.
type ResultStore struct {
	client *firestore.Client
	opts   Options
}

type resultDoc struct {
	ID         string    `firestore:"id"`
	RegNumber  string    `firestore:"regNumber"`
	FullName   string    `firestore:"fullName"`
	Score      float64   `firestore:"score"`
	Total      float64   `firestore:"total"`
	Department string    `firestore:"department"`
	Year       string    `firestore:"year"`
	Timestamp  time.Time `firestore:"timestamp"`
}

// Connect opens a Firestore client through the Firebase Admin SDK. An empty
// credentialsFile falls back to application default credentials.
func Connect(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}

func NewResultStore(client *firestore.Client, opts Options) *ResultStore {
	if opts.Root == "" {
		opts.Root = "Results"
	}
	if opts.Partition == "" {
		opts.Partition = "EBSU"
	}
	return &ResultStore{client: client, opts: opts}
}

func (s *ResultStore) SaveResult(ctx context.Context, r domain.Result) error {
	data := map[string]interface{}{
		"id":         r.ID,
		"regNumber":  r.RegNumber,
		"fullName":   r.FullName,
		"score":      r.Score,
		"total":      r.Total,
		"department": r.Department,
		"year":       r.Year,
		"timestamp":  firestore.ServerTimestamp,
	}
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, ref := range s.refs(r) {
			if err := tx.Set(ref, data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ResultStore) FindResult(ctx context.Context, regNumber string) (domain.Result, bool, error) {
	docs, err := s.client.Collection(s.opts.Root).
		Where("regNumber", "==", regNumber).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return domain.Result{}, false, err
	}
	if len(docs) == 0 {
		return domain.Result{}, false, nil
	}
	r, err := decode(docs[0])
	if err != nil {
		return domain.Result{}, false, err
	}
	return r, true, nil
}

func (s *ResultStore) ListResults(ctx context.Context) ([]domain.Result, error) {
	docs, err := s.client.Collection(s.opts.Root).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	results := make([]domain.Result, 0, len(docs))
	for _, doc := range docs {
		r, err := decode(doc)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// DeleteResults deletes the given documents (and their mirrors) in one transaction.
func (s *ResultStore) DeleteResults(ctx context.Context, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, r := range results {
			for _, ref := range s.refs(r) {
				if err := tx.Delete(ref); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *ResultStore) refs(r domain.Result) []*firestore.DocumentRef {
	id := docID(r.ID)
	refs := []*firestore.DocumentRef{s.client.Collection(s.opts.Root).Doc(id)}
	if s.opts.MirrorByYear {
		refs = append(refs, s.client.Collection(s.opts.Root).Doc(s.opts.Partition).Collection(r.Year).Doc(id))
	}
	return refs
}

// docID makes a result ID usable as a document ID; slashes would be read as path separators.
func docID(id string) string {
	return strings.ReplaceAll(id, "/", "-")
}

func decode(doc *firestore.DocumentSnapshot) (domain.Result, error) {
	var d resultDoc
	if err := doc.DataTo(&d); err != nil {
		return domain.Result{}, fmt.Errorf("decode %s: %w", doc.Ref.ID, err)
	}
	return domain.Result{
		ID:         d.ID,
		RegNumber:  d.RegNumber,
		FullName:   d.FullName,
		Score:      d.Score,
		Total:      d.Total,
		Department: d.Department,
		Year:       d.Year,
		Timestamp:  d.Timestamp,
	}, nil
}
