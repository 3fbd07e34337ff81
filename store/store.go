// Package store provides the concurrent in-memory employee collection
// shared by every transport.
package store

import (
	"sync"
	"time"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"
)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp join dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is a keyed collection of employee records plus a monotonically
// increasing ID generator.
//
// One lock guards the records, their insertion order and the
// generator, so ID assignment and insertion are a single step for any
// concurrent reader.
type Store struct {
	mu      sync.RWMutex
	nextID  int32
	records map[int32]types.Employee
	order   []int32
	now     func() time.Time
}

// New creates an empty store. The first assigned ID is 1.
func New(opts ...Option) *Store {
	s := &Store{
		nextID:  1,
		records: make(map[int32]types.Employee),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores a copy of candidate under the next ID and returns it.
// Any ID on the candidate is ignored. A candidate without a join date
// is stamped with the store clock.
func (s *Store) Add(candidate types.Employee) types.Employee {
	rec := candidate.Clone()
	if rec.JoinDate == nil {
		rec.JoinDate = types.NewTimestamp(s.now())
	}

	s.mu.Lock()
	rec.ID = s.nextID
	s.nextID++
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	s.mu.Unlock()

	return rec.Clone()
}

// Get returns a copy of the record stored under id, or a
// *empdir.NotFoundError.
func (s *Store) Get(id int32) (types.Employee, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return types.Employee{}, empdir.NewNotFoundError(id)
	}
	return rec.Clone(), nil
}

// List returns copies of all records in insertion order, which is
// also ascending ID order.
func (s *Store) List() []types.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Employee, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
