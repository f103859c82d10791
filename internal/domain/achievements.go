package domain

// Achievement is a static catalog entry. Unlocked is evaluated against the
// already-updated stats plus the just-completed session; every predicate is
// monotonic, so an unlocked achievement can never be lost.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	Unlocked func(stats GameStats, score, totalQuestions int) bool `json:"-"`
}

// Achievements is the fixed catalog, in display order.
var Achievements = []Achievement{
	{
		ID:          "first-game",
		Name:        "First Steps",
		Description: "Complete your first quiz",
		Icon:        "🎯",
		Unlocked: func(stats GameStats, _, _ int) bool {
			return stats.TotalGames == 1
		},
	},
	{
		ID:          "perfect",
		Name:        "Perfect Score",
		Description: "Get 100% in a quiz",
		Icon:        "🏆",
		Unlocked: func(_ GameStats, score, totalQuestions int) bool {
			return score == totalQuestions
		},
	},
	{
		ID:          "veteran",
		Name:        "Veteran",
		Description: "Complete 10 quizzes",
		Icon:        "🎖️",
		Unlocked: func(stats GameStats, _, _ int) bool {
			return stats.TotalGames >= 10
		},
	},
	{
		ID:          "expert",
		Name:        "Expert",
		Description: "Complete 50 quizzes",
		Icon:        "👑",
		Unlocked: func(stats GameStats, _, _ int) bool {
			return stats.TotalGames >= 50
		},
	},
	{
		ID:          "streak-5",
		Name:        "On Fire",
		Description: "Get 5 correct answers in a row",
		Icon:        "🔥",
		Unlocked: func(stats GameStats, _, _ int) bool {
			return stats.CurrentStreak >= 5
		},
	},
	{
		ID:          "streak-10",
		Name:        "Unstoppable",
		Description: "Get 10 correct answers in a row",
		Icon:        "⚡",
		Unlocked: func(stats GameStats, _, _ int) bool {
			return stats.CurrentStreak >= 10
		},
	},
	{
		ID:          "scholar",
		Name:        "Scholar",
		Description: "Score 8 or more in a quiz",
		Icon:        "📚",
		Unlocked: func(_ GameStats, score, _ int) bool {
			return score >= 8
		},
	},
	{
		ID:          "genius",
		Name:        "Genius",
		Description: "Score 9 or more in a quiz",
		Icon:        "🧠",
		Unlocked: func(_ GameStats, score, _ int) bool {
			return score >= 9
		},
	},
}
