package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/okian/fairdraw/internal/domain/model"
	"github.com/okian/fairdraw/pkg/metrics"
)

// MemStore is an in-memory, bounded Store. It is safe for concurrent use.
// Draws live only as long as the process.
type MemStore struct {
	mu       sync.RWMutex
	byID     map[string]model.Draw
	order    []string // insertion order, oldest first
	maxDraws int
}

// NewMemStore constructs a MemStore with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID:     make(map[string]model.Draw),
		maxDraws: defaultMaxDraws,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save implements Store.Save.
func (s *MemStore) Save(_ context.Context, d model.Draw) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	start := time.Now()

	s.mu.Lock()
	if _, exists := s.byID[d.ID]; exists {
		s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == d.ID })
	}
	s.byID[d.ID] = d
	s.order = append(s.order, d.ID)
	for len(s.order) > s.maxDraws {
		delete(s.byID, s.order[0])
		s.order = s.order[1:]
	}
	count := len(s.order)
	s.mu.Unlock()

	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateStoredDraws(count)
	return nil
}

// Get implements Store.Get.
func (s *MemStore) Get(_ context.Context, id string) (model.Draw, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	d, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return model.Draw{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return d, nil
}

// List implements Store.List.
func (s *MemStore) List(_ context.Context, limit int) ([]model.DrawSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.DrawSummary, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.byID[s.order[i]].Summary())
	}
	return out, nil
}

// Count implements Store.Count.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
