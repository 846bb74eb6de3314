package dao

import (
	"gorm.io/gorm"

	"daybook/model"
)

// FeedFilter selects and orders public entries.
type FeedFilter struct {
	Search string
	Mood   string
	Sort   string // newest (default), oldest, popular
}

// FeedItem is a public entry joined with author and viewer reaction info.
// MoodEmoji is derived in the service, not scanned.
type FeedItem struct {
	model.Entry
	Username      string `gorm:"column:username" json:"username"`
	CategoryName  string `gorm:"column:category_name" json:"category_name"`
	ReactionCount int    `gorm:"column:reaction_count" json:"reaction_count"`
	ViewerReacted bool   `gorm:"column:viewer_reacted" json:"viewer_reacted"`
	MoodEmoji     string `gorm:"-" json:"mood_emoji,omitempty"`
}

type FeedDAO struct {
	db *gorm.DB
}

func NewFeedDAO(db *gorm.DB) *FeedDAO {
	return &FeedDAO{db: db}
}

// ListPublic returns public, non-deleted entries from all users with
// reaction counts and whether the viewer has reacted.
func (dao *FeedDAO) ListPublic(viewerID uint64, filter FeedFilter) ([]FeedItem, error) {
	q := dao.db.Model(&model.Entry{}).
		Select("entries.*, users.username, categories.name AS category_name, "+
			"(SELECT COUNT(*) FROM reactions WHERE reactions.entry_id = entries.id) AS reaction_count, "+
			"EXISTS(SELECT 1 FROM reactions WHERE reactions.entry_id = entries.id "+
			"AND reactions.user_id = ?) AS viewer_reacted", viewerID).
		Joins("LEFT JOIN users ON users.id = entries.user_id").
		Joins("LEFT JOIN categories ON categories.id = entries.category_id").
		Where("entries.privacy_level = ? AND entries.is_deleted = FALSE", model.PrivacyPublic)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("entries.title LIKE ? OR entries.content LIKE ?", pattern, pattern)
	}
	if filter.Mood != "" && filter.Mood != "all" {
		q = q.Where("entries.mood = ?", filter.Mood)
	}

	switch filter.Sort {
	case "oldest":
		q = q.Order("entries.timestamp ASC")
	case "popular":
		q = q.Order("(SELECT COALESCE(reaction_count + comment_count + share_count, 0) " +
			"FROM entry_stats WHERE entry_stats.entry_id = entries.id) DESC").
			Order("entries.timestamp DESC")
	default:
		q = q.Order("entries.timestamp DESC")
	}

	var items []FeedItem
	err := q.Scan(&items).Error
	return items, err
}
