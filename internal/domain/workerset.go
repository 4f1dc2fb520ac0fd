package domain

import "sync"

// WorkerSet records the distinct worker identities that executed at least one
// item of a single batch. Workers register concurrently; insertion is
// idempotent, so repeated registration by the same worker is harmless.
type WorkerSet struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

func NewWorkerSet() *WorkerSet {
	return &WorkerSet{
		ids: make(map[int]struct{}),
	}
}

// Add registers a worker identity. Safe for concurrent use.
func (s *WorkerSet) Add(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Size returns the number of distinct identities registered
func (s *WorkerSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
