package queue

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"mqbroker/internal/message"
	"mqbroker/pkg/metrics"
)

var (
	ErrDuplicate = errors.New("message already queued")
	ErrEmpty     = errors.New("queue is empty")
)

// Entry is a queued record together with the bookkeeping attached on insert.
type Entry struct {
	ID          string
	Record      message.Record
	Fingerprint string
	EnqueuedAt  time.Time
}

type item struct {
	entry     Entry
	canonical []byte
}

// Store is a FIFO of unique records. All operations hold a single mutex for
// their full duration, including the duplicate scan.
type Store struct {
	mu          sync.Mutex
	items       []item
	fingerprint *message.Fingerprinter
	now         func() time.Time
}

func NewStore(fp *message.Fingerprinter) *Store {
	if fp == nil {
		fp = message.NewFingerprinter("")
	}
	return &Store{
		fingerprint: fp,
		now:         time.Now,
	}
}

// Insert appends rec at the tail unless an identical record is already
// queued, in which case the store is left unchanged and ErrDuplicate is
// returned.
func (s *Store) Insert(rec message.Record) (Entry, error) {
	canonical := rec.Canonical()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if bytes.Equal(it.canonical, canonical) {
			return it.entry, ErrDuplicate
		}
	}

	entry := Entry{
		ID:          uuid.New().String(),
		Record:      rec,
		Fingerprint: s.fingerprint.Fingerprint(rec),
		EnqueuedAt:  s.now(),
	}
	s.items = append(s.items, item{entry: entry, canonical: canonical})
	metrics.SetQueueSize(len(s.items))

	return entry, nil
}

// RemoveFront removes and returns the oldest entry.
func (s *Store) RemoveFront() (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return Entry{}, ErrEmpty
	}

	head := s.items[0].entry
	s.items[0] = item{}
	s.items = s.items[1:]
	if len(s.items) == 0 {
		s.items = nil
	}
	metrics.SetQueueSize(len(s.items))

	return head, nil
}

// Snapshot returns a copy of the queued entries in insertion order.
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.items))
	for i, it := range s.items {
		out[i] = it.entry
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Records strips the bookkeeping from entries.
func Records(entries []Entry) []message.Record {
	out := make([]message.Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out
}
