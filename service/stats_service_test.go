package service

import (
	"testing"

	"daybook/dao"
)

func TestMostCommonMoodEmpty(t *testing.T) {
	if got := mostCommonMood(nil); got != nil {
		t.Fatalf("expected nil for no moods, got %q", *got)
	}
}

func TestMostCommonMoodHighestCountWins(t *testing.T) {
	counts := []dao.MoodCount{
		{Mood: "Sad", Count: 2},
		{Mood: "Happy", Count: 5},
		{Mood: "Calm", Count: 3},
	}
	got := mostCommonMood(counts)
	if got == nil || *got != "Happy" {
		t.Fatalf("expected Happy, got %v", got)
	}
}

func TestMostCommonMoodTieBreaksLexicographically(t *testing.T) {
	counts := []dao.MoodCount{
		{Mood: "Sad", Count: 4},
		{Mood: "Calm", Count: 4},
		{Mood: "Happy", Count: 1},
	}
	got := mostCommonMood(counts)
	if got == nil || *got != "Calm" {
		t.Fatalf("expected Calm on tie, got %v", got)
	}
}
