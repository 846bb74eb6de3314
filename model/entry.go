package model

import "time"

// Privacy levels for entries.
const (
	PrivacyPrivate = "private"
	PrivacyPublic  = "public"
)

// Entry 日记条目
type Entry struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`
	Title        string    `gorm:"not null;size:200" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Mood         *string   `gorm:"size:20" json:"mood,omitempty"`
	CategoryID   *uint64   `gorm:"index" json:"category_id,omitempty"`
	Location     *string   `gorm:"size:150" json:"location,omitempty"`
	PrivacyLevel string    `gorm:"not null;size:10;default:private" json:"privacy_level"`
	MusicLink    *string   `gorm:"size:255" json:"music_link,omitempty"`
	WordCount    int       `gorm:"not null;default:0" json:"word_count"`
	IsDeleted    bool      `gorm:"not null;default:false;index" json:"-"`
	Timestamp    time.Time `gorm:"not null;index" json:"timestamp"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Media    []Media  `gorm:"foreignKey:EntryID" json:"media,omitempty"`
}

// EntryStats holds per-entry engagement counters, zero-initialized at
// creation and used by the feed's popularity sort.
type EntryStats struct {
	EntryID       uint64    `gorm:"primarykey" json:"entry_id"`
	ReactionCount int       `gorm:"not null;default:0" json:"reaction_count"`
	CommentCount  int       `gorm:"not null;default:0" json:"comment_count"`
	ShareCount    int       `gorm:"not null;default:0" json:"share_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Media 附件：本地相对路径或外部 URL
type Media struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	EntryID   uint64    `gorm:"not null;index" json:"entry_id"`
	FilePath  string    `gorm:"not null;size:500" json:"file_path"`
	FileType  string    `gorm:"not null;size:100" json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}
