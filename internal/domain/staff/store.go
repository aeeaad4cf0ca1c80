package staff

import (
	"fmt"
	"sync"
	"time"
)

// Observer is notified after every successful mutation.
type Observer func(op string, e Employee)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithObserver(fn Observer) Option {
	return func(s *Store) {
		s.observer = fn
	}
}

// Store is the in-memory employee collection. Records keep insertion order and
// ids stay unique for the lifetime of the store.
type Store struct {
	mu       sync.RWMutex
	records  []Employee
	ids      map[int64]struct{}
	lastID   int64
	now      func() time.Time
	observer Observer
}

func NewStore(seed []Employee, opts ...Option) (*Store, error) {
	s := &Store{
		records: make([]Employee, 0, len(seed)),
		ids:     make(map[int64]struct{}, len(seed)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, e := range seed {
		if _, dup := s.ids[e.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		s.ids[e.ID] = struct{}{}
		s.records = append(s.records, e)
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
	return s, nil
}

// List returns a snapshot of every record in insertion order.
func (s *Store) List() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Employee, len(s.records))
	copy(out, s.records)
	return out
}

// Now reads the store clock. Callers building records outside Insert use it so
// every record is stamped from the same clock.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Get(id int64) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	return Employee{}, false
}

// Insert builds a full record from the form, assigns a fresh id and appends it.
func (s *Store) Insert(form EmployeeForm) Employee {
	now := s.now()
	e := BuildEmployee(form, nil, now)

	s.mu.Lock()
	e.ID = s.nextID(now)
	s.ids[e.ID] = struct{}{}
	s.records = append(s.records, e)
	s.mu.Unlock()

	s.notify(OpInsert, e)
	return e
}

// Update replaces the record with e.ID wholesale. An unknown id is a no-op and reports false.
func (s *Store) Update(e Employee) bool {
	s.mu.Lock()
	i := s.indexOf(e.ID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.records[i] = e
	s.mu.Unlock()

	s.notify(OpUpdate, e)
	return true
}

// Delete removes the record with id. An unknown id is a no-op and reports false.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	delete(s.ids, id)
	s.mu.Unlock()

	s.notify(OpDelete, removed)
	return true
}

func (s *Store) indexOf(id int64) int {
	if _, ok := s.ids[id]; !ok {
		return -1
	}
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID derives an id from the clock, bumped past the last assigned id and any
// id already present. Callers hold s.mu.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for {
		if _, taken := s.ids[id]; !taken {
			break
		}
		id++
	}
	s.lastID = id
	return id
}

func (s *Store) notify(op string, e Employee) {
	if s.observer != nil {
		s.observer(op, e)
	}
}
