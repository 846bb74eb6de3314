package model

import "time"

// UserStats caches per-user aggregates derived from entries. It must stay
// re-derivable from the entries table; the stats service is the only writer.
type UserStats struct {
	UserID        uint64    `gorm:"primarykey" json:"user_id"`
	TotalEntries  int       `gorm:"not null;default:0" json:"total_entries"`
	TotalWords    int       `gorm:"not null;default:0" json:"total_words"`
	AvgWords      float64   `gorm:"not null;default:0" json:"avg_words_per_entry"`
	MostCommon    *string   `gorm:"column:most_common_mood;size:20" json:"most_common_mood,omitempty"`
	LastEntryDate *string   `gorm:"column:last_entry_date;size:10" json:"last_entry_date,omitempty"`
	CurrentStreak int       `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak int       `gorm:"not null;default:0" json:"longest_streak"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MoodHistory is an increment-only log of (user, mood, day) entry counts
// backing the mood-distribution analytics.
type MoodHistory struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_user_mood_date" json:"user_id"`
	Mood       string    `gorm:"not null;size:20;uniqueIndex:idx_user_mood_date" json:"mood"`
	EntryDate  string    `gorm:"not null;size:10;uniqueIndex:idx_user_mood_date" json:"entry_date"`
	EntryCount int       `gorm:"not null;default:0" json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
}
