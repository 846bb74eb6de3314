package model

// AllowedMoods maps each mood to its display emoji. The key set is the
// closed mood vocabulary; anything else is coerced to no mood on write.
var AllowedMoods = map[string]string{
	"Happy":      "😀",
	"Sad":        "😢",
	"Angry":      "😠",
	"Calm":       "😌",
	"Excited":    "🤩",
	"Reflective": "🤔",
}

// IsAllowedMood reports whether mood is in the closed vocabulary.
func IsAllowedMood(mood string) bool {
	_, ok := AllowedMoods[mood]
	return ok
}

// MoodEmoji returns the emoji for a mood, or "" when unset/unknown.
func MoodEmoji(mood string) string {
	return AllowedMoods[mood]
}
