package model

import "time"

// Reaction is unique per (entry, user) and toggled rather than counted
// per type.
type Reaction struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	EntryID      uint64    `gorm:"not null;uniqueIndex:idx_entry_user" json:"entry_id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_entry_user" json:"user_id"`
	ReactionType string    `gorm:"not null;size:20;default:like" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}
