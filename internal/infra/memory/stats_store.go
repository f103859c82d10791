package memory

import (
	"context"
	"sync"

	"country-quiz-game/internal/domain"
)

// StatsStore keeps per-profile stats in process memory. It is the default
// when neither Redis nor Postgres is configured; stats then last only as
// long as the process.
type StatsStore struct {
	mu    sync.RWMutex
	stats map[string]domain.GameStats
}

func NewStatsStore() *StatsStore {
	return &StatsStore{
		stats: make(map[string]domain.GameStats),
	}
}

func (s *StatsStore) Load(_ context.Context, profileID string) (domain.GameStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[profileID]
	if !ok {
		return domain.DefaultStats(), nil
	}
	return stats.Clone(), nil
}

func (s *StatsStore) Save(_ context.Context, profileID string, stats domain.GameStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[profileID] = stats.Clone()
	return nil
}
