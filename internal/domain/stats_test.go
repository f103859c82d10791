package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStatsRoundTrip(t *testing.T) {
	stats := DefaultStats()
	stats.TotalGames = 7
	stats.TotalScore = 42
	stats.HighScores[ModeFlags] = 9
	stats.CurrentStreak = 3
	stats.BestStreak = 6
	stats.Achievements = []string{"first-game", "streak-5"}
	stats.LastPlayedDate = "2025-03-21"

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var loaded GameStats
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(stats, loaded) {
		t.Fatalf("round trip changed stats: %+v vs %+v", stats, loaded)
	}
}

func TestCloneSharesNoState(t *testing.T) {
	stats := DefaultStats()
	stats.Achievements = []string{"first-game"}

	clone := stats.Clone()
	clone.HighScores[ModeFlags] = 10
	clone.Achievements[0] = "perfect"

	if stats.HighScores[ModeFlags] != 0 {
		t.Fatalf("clone mutation leaked into high scores")
	}
	if stats.Achievements[0] != "first-game" {
		t.Fatalf("clone mutation leaked into achievements")
	}
}

func TestPerfectUnlocksOnlyOnFullScore(t *testing.T) {
	var perfect Achievement
	for _, a := range Achievements {
		if a.ID == "perfect" {
			perfect = a
		}
	}
	if perfect.ID == "" {
		t.Fatalf("perfect achievement missing from catalog")
	}

	stats := DefaultStats()
	if !perfect.Unlocked(stats, 10, 10) {
		t.Fatalf("expected perfect to unlock on 10/10")
	}
	if !perfect.Unlocked(stats, 5, 5) {
		t.Fatalf("expected perfect to unlock on 5/5, independent of mode or length")
	}
	if perfect.Unlocked(stats, 9, 10) {
		t.Fatalf("expected perfect to stay locked on 9/10")
	}
}
