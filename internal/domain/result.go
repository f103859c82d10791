package domain

// ResultTier is the completion-screen encouragement for a score percentage.
type ResultTier struct {
	Emoji   string `json:"emoji"`
	Message string `json:"message"`
}

// TierFor maps a rounded score percentage to one of four canned tiers.
func TierFor(percentage int) ResultTier {
	switch {
	case percentage >= 80:
		return ResultTier{Emoji: "🏆", Message: "Outstanding! You're a geography expert! 🌟"}
	case percentage >= 60:
		return ResultTier{Emoji: "🎉", Message: "Great job! You know your countries well! ✨"}
	case percentage >= 40:
		return ResultTier{Emoji: "👍", Message: "Good effort! Keep practicing! 💪"}
	default:
		return ResultTier{Emoji: "📚", Message: "Keep learning! Every expert was once a beginner! 🚀"}
	}
}
