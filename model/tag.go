package model

import "time"

// Tag 标签，usage_count 为冗余计数
type Tag struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"unique;not null;size:50" json:"name"`
	UsageCount int       `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// EntryTag joins entries and tags. The composite key makes duplicate links
// a conflict instead of a second row.
type EntryTag struct {
	EntryID uint64 `gorm:"primarykey" json:"entry_id"`
	TagID   uint64 `gorm:"primarykey" json:"tag_id"`
}
