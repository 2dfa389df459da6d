// Package booking carries the booking draft through the pipeline:
// seat selection, passenger entry, receipt, payment, ticket.
package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flyhigh-team/flyhigh-web/internal/models"
)

// Draft is the accumulating booking state threaded between the
// pipeline steps. It lives only in memory; a restart of the frontend
// loses in-flight drafts and the user starts over from flight search.
type Draft struct {
	ID         string
	Flight     models.Flight
	Seats      []string
	Passengers []models.Passenger
	TotalPrice float64
	Paid       bool
	// Warning carries a partial-failure notice from the passenger
	// step forward to the receipt.
	Warning   string
	CreatedAt time.Time
}

// Total returns the carried-forward price, falling back to
// unit price times seat count. Both paths must agree.
func (d *Draft) Total() float64 {
	if d.TotalPrice > 0 {
		return d.TotalPrice
	}
	return d.Flight.Price * float64(len(d.Seats))
}

// HasPassengers reports whether the passenger step has completed.
func (d *Draft) HasPassengers() bool {
	return len(d.Passengers) > 0
}

// DraftStore keeps live drafts by ID with a TTL. Abandoned drafts are
// pruned lazily on access.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		drafts: make(map[string]*Draft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create opens a draft for a reserved flight and seat list.
func (s *DraftStore) Create(flight models.Flight, seats []string) *Draft {
	draft := &Draft{
		ID:        uuid.NewString(),
		Flight:    flight,
		Seats:     append([]string(nil), seats...),
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.drafts[draft.ID] = draft
	return draft
}

// Get returns the live draft for id, or nil when it never existed or
// has expired.
func (s *DraftStore) Get(id string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	return s.drafts[id]
}

// Save replaces the stored draft after a step mutates it.
func (s *DraftStore) Save(draft *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
}

// Delete drops a draft once the pipeline finishes or aborts.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

func (s *DraftStore) prune() {
	cutoff := s.now().Add(-s.ttl)
	for id, d := range s.drafts {
		if d.CreatedAt.Before(cutoff) {
			delete(s.drafts, id)
		}
	}
}
