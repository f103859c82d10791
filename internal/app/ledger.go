package app

import (
	"context"
	"log"
	"time"

	"country-quiz-game/internal/domain"
)

// StatsStore is the persistence port for the per-profile stats record.
// Implementations must return domain.DefaultStats() when no record exists
// yet, and treat malformed content the same way.
type StatsStore interface {
	Load(ctx context.Context, profileID string) (domain.GameStats, error)
	Save(ctx context.Context, profileID string, stats domain.GameStats) error
}

// Ledger folds completed sessions into durable lifetime stats and evaluates
// the achievement catalog. Persistence failures degrade rather than
// propagate: a failed load starts from defaults, a failed save is logged and
// the in-memory result is still returned.
type Ledger struct {
	store StatsStore
	now   func() time.Time
}

func NewLedger(store StatsStore) *Ledger {
	return NewLedgerWithClock(store, time.Now)
}

// NewLedgerWithClock allows deterministic dates in tests.
func NewLedgerWithClock(store StatsStore, now func() time.Time) *Ledger {
	return &Ledger{store: store, now: now}
}

// RecordSession merges one completed session into the profile's stats and
// returns the updated record plus any achievements that newly unlocked.
// Every completed session is recorded, including score zero.
func (l *Ledger) RecordSession(ctx context.Context, profileID string, mode domain.Mode, score, totalQuestions, sessionBestStreak int) (domain.GameStats, []domain.Achievement) {
	stats, err := l.store.Load(ctx, profileID)
	if err != nil {
		log.Printf("load stats for %s: %v (starting from defaults)", profileID, err)
		stats = domain.DefaultStats()
	}
	if stats.HighScores == nil {
		stats.HighScores = domain.DefaultStats().HighScores
	}

	stats.TotalGames++
	stats.TotalScore += score
	if score > stats.HighScores[mode] {
		stats.HighScores[mode] = score
	}

	// Same-day sessions extend the streak context; a new day replaces it.
	today := l.now().Format(domain.DateLayout)
	if stats.LastPlayedDate == today {
		if sessionBestStreak > stats.CurrentStreak {
			stats.CurrentStreak = sessionBestStreak
		}
	} else {
		stats.CurrentStreak = sessionBestStreak
		stats.LastPlayedDate = today
	}
	if stats.CurrentStreak > stats.BestStreak {
		stats.BestStreak = stats.CurrentStreak
	}

	var unlocked []domain.Achievement
	for _, achievement := range domain.Achievements {
		if stats.HasAchievement(achievement.ID) {
			continue
		}
		if achievement.Unlocked(stats, score, totalQuestions) {
			stats.Achievements = append(stats.Achievements, achievement.ID)
			unlocked = append(unlocked, achievement)
		}
	}

	if err := l.store.Save(ctx, profileID, stats); err != nil {
		log.Printf("save stats for %s: %v", profileID, err)
	}
	return stats, unlocked
}

// Stats returns the profile's current record, defaults when none exists or
// the store is unavailable.
func (l *Ledger) Stats(ctx context.Context, profileID string) domain.GameStats {
	stats, err := l.store.Load(ctx, profileID)
	if err != nil {
		log.Printf("load stats for %s: %v (serving defaults)", profileID, err)
		return domain.DefaultStats()
	}
	if stats.HighScores == nil {
		stats.HighScores = domain.DefaultStats().HighScores
	}
	return stats
}
