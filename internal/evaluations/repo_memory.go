package evaluations

import (
	"context"
	"sync"
)

// MemoryRepo keeps the most recent evaluations in a fixed-size ring.
type MemoryRepo struct {
	mu    sync.RWMutex
	ring  []Evaluation
	next  int
	count int
	byID  map[string]int
}

func NewMemoryRepo(capacity int) *MemoryRepo {
	if capacity <= 0 {
		capacity = MaxListLimit
	}
	return &MemoryRepo{
		ring: make([]Evaluation, capacity),
		byID: make(map[string]int, capacity),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, evaluation Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == len(r.ring) {
		delete(r.byID, r.ring[r.next].ID)
	} else {
		r.count++
	}
	r.ring[r.next] = evaluation
	r.byID[evaluation.ID] = r.next
	r.next = (r.next + 1) % len(r.ring)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return r.ring[idx], nil
}

func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = clampLimit(limit)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit > r.count {
		limit = r.count
	}
	out := make([]Evaluation, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.ring)) % len(r.ring)
		out = append(out, r.ring[idx])
	}
	return out, nil
}
