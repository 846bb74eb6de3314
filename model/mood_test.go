package model

import "testing"

func TestMoodVocabulary(t *testing.T) {
	for mood, emoji := range AllowedMoods {
		if !IsAllowedMood(mood) {
			t.Errorf("%s should be allowed", mood)
		}
		if MoodEmoji(mood) != emoji {
			t.Errorf("MoodEmoji(%s) = %q, want %q", mood, MoodEmoji(mood), emoji)
		}
	}
	if IsAllowedMood("happy") {
		t.Error("mood matching is case-sensitive")
	}
	if MoodEmoji("Ecstatic") != "" {
		t.Error("unknown moods have no emoji")
	}
}
