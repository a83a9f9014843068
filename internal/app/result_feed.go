package app

import (
	"sync"

	"quiz-admin-service/internal/domain"
)

// ResultFeed fans out newly saved results to live subscribers (admin dashboards).
type ResultFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.Result]struct{}
}

func NewResultFeed() *ResultFeed {
	return &ResultFeed{subscribers: make(map[chan domain.Result]struct{})}
}

// Subscribe returns a channel of saved results.
// The caller must invoke the returned cancel function to avoid leaks.
func (f *ResultFeed) Subscribe() (<-chan domain.Result, func()) {
	ch := make(chan domain.Result, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers result to every subscriber without blocking. A full
// subscriber loses its oldest queued result.
func (f *ResultFeed) Publish(result domain.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- result:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- result
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (f *ResultFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}
