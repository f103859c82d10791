package redis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"country-quiz-game/internal/domain"
)

// StatsStore persists the per-profile stats record as a JSON blob under
// stats:{profileID}. Missing and malformed records both load as defaults;
// the blob is kept without a TTL.
type StatsStore struct {
	client *redis.Client
}

func NewStatsStore(client *redis.Client) *StatsStore {
	return &StatsStore{client: client}
}

func (s *StatsStore) Load(ctx context.Context, profileID string) (domain.GameStats, error) {
	raw, err := s.client.Get(ctx, s.key(profileID)).Bytes()
	if err == redis.Nil {
		return domain.DefaultStats(), nil
	}
	if err != nil {
		return domain.DefaultStats(), err
	}

	var stats domain.GameStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Printf("decode stats for %s: %v (resetting to defaults)", profileID, err)
		return domain.DefaultStats(), nil
	}
	return stats, nil
}

func (s *StatsStore) Save(ctx context.Context, profileID string, stats domain.GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(profileID), data, 0).Err()
}

func (s *StatsStore) key(profileID string) string {
	return "stats:" + profileID
}
