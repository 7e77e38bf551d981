package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"sgpulse/pkg/contracts/domain"
)

// Store memoizes pipeline results by source identity. A table is produced
// at most once per distinct source for the lifetime of the store; source
// content is assumed stable until Invalidate is called.
type Store struct {
	pipeline *Pipeline
	logger   *slog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	tables map[string]*domain.Table
}

// NewStore creates a store around the given pipeline.
func NewStore(pipeline *Pipeline, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		pipeline: pipeline,
		logger:   logger,
		tables:   make(map[string]*domain.Table),
	}
}

// Load returns the cleaned table for a source, building it on first use.
// The second return value reports whether the result came from cache.
// Concurrent first loads of the same source share one pipeline run.
func (s *Store) Load(ctx context.Context, source string) (*domain.Table, bool, error) {
	key := sourceKey(source)

	s.mu.RLock()
	table, ok := s.tables[key]
	s.mu.RUnlock()
	if ok {
		s.logger.DebugContext(ctx, "table cache hit", slog.String("source", source))
		return table, true, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.tables[key]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		built, err := s.pipeline.Load(ctx, source)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.tables[key] = built
		s.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*domain.Table), false, nil
}

// Get returns the cached table for a source without triggering a load.
func (s *Store) Get(source string) (*domain.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[sourceKey(source)]
	return table, ok
}

// Invalidate drops the cached table for a source so the next Load rebuilds
// it from disk.
func (s *Store) Invalidate(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, sourceKey(source))
}

// sourceKey normalizes a source path into a cache identity.
func sourceKey(source string) string {
	if abs, err := filepath.Abs(source); err == nil {
		return abs
	}
	return filepath.Clean(source)
}
