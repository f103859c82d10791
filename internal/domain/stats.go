package domain

// DateLayout is the calendar-date format stored in LastPlayedDate.
const DateLayout = "2006-01-02"

// GameStats is the durable per-profile record of lifetime play. It is
// mutated only by the ledger at session completion and round-trips through
// JSON unchanged.
type GameStats struct {
	TotalGames     int          `json:"totalGames"`
	TotalScore     int          `json:"totalScore"`
	HighScores     map[Mode]int `json:"highScores"`
	CurrentStreak  int          `json:"currentStreak"`
	BestStreak     int          `json:"bestStreak"`
	Achievements   []string     `json:"achievements"`
	LastPlayedDate string       `json:"lastPlayedDate"`
}

// DefaultStats returns the zero-value record used before a profile has any
// persisted history.
func DefaultStats() GameStats {
	return GameStats{
		HighScores: map[Mode]int{
			ModeFlags:      0,
			ModeCapitals:   0,
			ModePopulation: 0,
		},
		Achievements: []string{},
	}
}

// HasAchievement reports whether the achievement id is already unlocked.
func (s GameStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a copy sharing no mutable state with s.
func (s GameStats) Clone() GameStats {
	out := s
	out.HighScores = make(map[Mode]int, len(s.HighScores))
	for mode, score := range s.HighScores {
		out.HighScores[mode] = score
	}
	out.Achievements = append([]string(nil), s.Achievements...)
	return out
}
