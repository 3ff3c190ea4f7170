// Package service provides the application service that implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	repository "github.com/okian/fairdraw/internal/adapters/repository"
	"github.com/okian/fairdraw/internal/domain/draw"
	"github.com/okian/fairdraw/internal/domain/model"
	"github.com/okian/fairdraw/internal/domain/roundrobin"
	"github.com/okian/fairdraw/pkg/logger"
	"github.com/okian/fairdraw/pkg/metrics"
)

// Service creates, stores and serves draws.
type Service struct {
	mu sync.RWMutex

	store  repository.Store
	logger logger.Logger

	// Configuration
	maxStoredDraws int
	maxTargetTotal int
	seed           int64

	// seedMu guards seeds, which is shared by concurrent CreateDraw calls.
	seedMu sync.Mutex
	seeds  *rand.Rand

	// State
	started   bool
	startedAt time.Time

	drawsCreated atomic.Int64
	drawErrors   atomic.Int64
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxStoredDraws: defaultMaxStoredDraws,
		maxTargetTotal: defaultMaxTargetTotal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the store and the seed source.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemStore(repository.WithMaxDraws(s.maxStoredDraws))
	}

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.seeds = rand.New(rand.NewSource(seed)) //nolint:gosec // seeds are logged for replay, not secret

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "draw service started",
		logger.Int64("seed", seed),
		logger.Int("max_stored_draws", s.maxStoredDraws),
		logger.Int("max_target_total", s.maxTargetTotal),
	)
	return nil
}

// Stop marks the service stopped. Stored draws are kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "draw service stopped")
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// nextSeed returns a non-zero seed from the service source.
func (s *Service) nextSeed() int64 {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	for {
		if v := s.seeds.Int63(); v != 0 {
			return v
		}
	}
}

// CreateDraw computes, stores and returns a draw of targetTotal matches for
// roster. A nil or zero seed picks one from the service source; the seed
// actually used is recorded on the draw so it can be replayed.
func (s *Service) CreateDraw(ctx context.Context, roster model.Roster, targetTotal int, seed *int64) (model.Draw, error) {
	if !s.isStarted() {
		return model.Draw{}, ErrNotStarted
	}
	start := time.Now()

	d, err := s.createDraw(ctx, roster, targetTotal, seed)
	if err != nil {
		s.drawErrors.Add(1)
		kind := ErrorKind(err)
		metrics.RecordDrawError(kind)
		metrics.RecordErrorByComponent("service", kind)
		metrics.RecordErrorLatency("service", kind, float64(time.Since(start).Microseconds())/1000.0)
		s.logger.Warn(ctx, "draw failed", logger.String("kind", kind), logger.Error(err))
		return model.Draw{}, err
	}

	s.drawsCreated.Add(1)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0
	recordReport(d.Report)
	metrics.RecordDraw(len(d.Counts), len(d.Sequence), latencyMs)
	s.logger.Info(ctx, "draw created",
		logger.String("draw_id", d.ID),
		logger.Int64("seed", d.Seed),
		logger.Int("participants", len(d.Counts)),
		logger.Int("matches", len(d.Sequence)),
		logger.Float64("latency_ms", latencyMs),
	)
	return d, nil
}

func (s *Service) createDraw(ctx context.Context, roster model.Roster, targetTotal int, seed *int64) (model.Draw, error) {
	if err := s.validate(roster, targetTotal); err != nil {
		return model.Draw{}, err
	}

	effective := int64(0)
	if seed != nil {
		effective = *seed
	}
	if effective == 0 {
		effective = s.nextSeed()
	}

	planner := draw.NewPlanner(
		draw.WithSeed(effective),
		draw.WithLogger(s.logger.Named("planner")),
	)
	plan, err := planner.Draw(ctx, roster, targetTotal)
	if err != nil {
		return model.Draw{}, err
	}

	d := model.Draw{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Seed:        effective,
		TargetTotal: targetTotal,
		Average:     plan.Average,
		Sequence:    plan.Sequence,
		Counts:      plan.Counts,
		Groups:      roundrobin.SummarizeRoster(roster),
		Report:      plan.Report,
	}
	if err := s.store.Save(ctx, d); err != nil {
		return model.Draw{}, fmt.Errorf("save draw: %w", err)
	}
	return d, nil
}

func (s *Service) validate(roster model.Roster, targetTotal int) error {
	if len(roster) == 0 || roster.Len() == 0 {
		return fmt.Errorf("%w: roster has no participants", ErrInvalidInput)
	}
	if targetTotal < 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidInput, draw.ErrNegativeTotal, targetTotal)
	}
	if targetTotal > s.maxTargetTotal {
		return fmt.Errorf("%w: target_total %d exceeds limit %d", ErrInvalidInput, targetTotal, s.maxTargetTotal)
	}
	if err := roster.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// GetDraw returns a stored draw by ID.
func (s *Service) GetDraw(ctx context.Context, id string) (model.Draw, error) {
	if !s.isStarted() {
		return model.Draw{}, ErrNotStarted
	}
	return s.store.Get(ctx, id)
}

// ListDraws returns stored draw summaries, newest first.
func (s *Service) ListDraws(ctx context.Context, limit int) ([]model.DrawSummary, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.store.List(ctx, limit)
}

// GetStats returns service statistics for monitoring and refreshes the
// system gauges.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"drawsCreated":   s.drawsCreated.Load(),
		"drawErrors":     s.drawErrors.Load(),
		"maxStoredDraws": s.maxStoredDraws,
		"maxTargetTotal": s.maxTargetTotal,
	}

	if s.started {
		stored := s.store.Count(context.Background())
		stats["storedDraws"] = stored
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		metrics.UpdateStoredDraws(stored)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	goroutines := runtime.NumGoroutine()
	stats["goroutines"] = goroutines
	stats["heapAllocBytes"] = ms.HeapAlloc
	metrics.UpdateSystemMemoryUsage(ms.HeapAlloc)
	metrics.UpdateSystemGoroutineCount(goroutines)
	if ms.NumGC > 0 {
		metrics.RecordSystemGCPauseTime(float64(ms.PauseNs[(ms.NumGC+255)%256]) / 1e6)
	}

	return stats
}

// Error kinds reported in metrics and logs.
const (
	KindInvalidInput = "invalid_input"
	KindUnrealizable = "unrealizable"
	KindRealization  = "realization"
	KindNotStarted   = "not_started"
	KindInternal     = "internal"
)

// ErrorKind classifies err for metrics and API responses.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, draw.ErrNoEligiblePairs):
		return KindUnrealizable
	case errors.Is(err, draw.ErrRealization):
		return KindRealization
	case errors.Is(err, ErrNotStarted):
		return KindNotStarted
	default:
		return KindInternal
	}
}

func recordReport(r model.Report) {
	if r.AllocatorFallback {
		metrics.RecordRecovery("allocator_fallback", 1)
	}
	metrics.RecordRecovery("fill_deficit", r.DeficitFilled)
	metrics.RecordRecovery("trim_excess", r.ExcessTrimmed)
	metrics.RecordRecovery("force_trim", r.ForcedTrims)
	metrics.RecordRecovery("odd_group_fix", r.OddGroupsFixed)
	metrics.RecordRecovery("dominant_rebalance", r.DominantRebalanced)
	metrics.RecordRecovery("truncate", r.Truncated)
	metrics.RecordRecovery("pad", r.Padded)
	metrics.RecordForcedRepeats(r.ForcedRepeats)
}
