package model

import "time"

// Category 分类
type Category struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"unique;not null;size:50" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Color       string    `gorm:"size:7;default:#6B7280" json:"color"`
	Icon        string    `gorm:"size:20" json:"icon"`
	CreatedBy   uint64    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
