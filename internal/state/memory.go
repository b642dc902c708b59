package state

import (
	"context"
	"sync"
)

// MemoryRepository keeps the mode record in process memory. It backs the
// store in tests and in credential-free development runs.
type MemoryRepository struct {
	mu     sync.Mutex
	record *ModeRecord
	saves  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(_ context.Context) (*ModeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.record == nil {
		return nil, nil
	}
	record := *r.record
	return &record, nil
}

func (r *MemoryRepository) Save(_ context.Context, record ModeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := record
	r.record = &saved
	r.saves++
	return nil
}

// SaveCount reports how many writes the repository has seen.
func (r *MemoryRepository) SaveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
