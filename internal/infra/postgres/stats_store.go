package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"country-quiz-game/internal/domain"
)

// StatsStore persists the per-profile stats record as a JSONB row.
type StatsStore struct {
	pool *pgxpool.Pool
}

func NewStatsStore(pool *pgxpool.Pool) *StatsStore {
	return &StatsStore{pool: pool}
}

func (s *StatsStore) Load(ctx context.Context, profileID string) (domain.GameStats, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM game_stats WHERE profile_id=$1`, profileID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultStats(), nil
	}
	if err != nil {
		return domain.DefaultStats(), fmt.Errorf("load stats: %w", err)
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
		return fmt.Errorf("marshal stats: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO game_stats (profile_id, data, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (profile_id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		profileID, data)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}
