package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daybook/model"
)

type StatsDAO struct {
	db *gorm.DB
}

func NewStatsDAO(db *gorm.DB) *StatsDAO {
	return &StatsDAO{db: db}
}

// EntryAggregate mirrors the per-user aggregate query over entries.
type EntryAggregate struct {
	TotalEntries  int     `gorm:"column:total_entries"`
	TotalWords    int     `gorm:"column:total_words"`
	AvgWords      float64 `gorm:"column:avg_words"`
	LastEntryDate *string `gorm:"column:last_entry_date"`
}

// MoodCount pairs a mood with how many entries carry it.
type MoodCount struct {
	Mood  string `gorm:"column:mood" json:"mood"`
	Count int    `gorm:"column:entry_count" json:"entry_count"`
}

// Aggregate computes totals directly from non-deleted entries.
func (dao *StatsDAO) Aggregate(userID uint64) (*EntryAggregate, error) {
	var agg EntryAggregate
	err := dao.db.Model(&model.Entry{}).
		Select("COUNT(*) AS total_entries, "+
			"COALESCE(SUM(word_count), 0) AS total_words, "+
			"COALESCE(AVG(word_count), 0) AS avg_words, "+
			"MAX(DATE(timestamp)) AS last_entry_date").
		Where("user_id = ? AND is_deleted = FALSE", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// MoodCounts returns per-mood entry counts over all non-deleted entries.
func (dao *StatsDAO) MoodCounts(userID uint64) ([]MoodCount, error) {
	var counts []MoodCount
	err := dao.db.Model(&model.Entry{}).
		Select("mood, COUNT(*) AS entry_count").
		Where("user_id = ? AND is_deleted = FALSE AND mood IS NOT NULL", userID).
		Group("mood").
		Scan(&counts).Error
	return counts, err
}

// UpsertUserStats inserts or refreshes the cached aggregate row.
func (dao *StatsDAO) UpsertUserStats(stats *model.UserStats) error {
	return dao.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(stats).Error
}

// GetUserStats returns the cached aggregates, or nil when never computed.
func (dao *StatsDAO) GetUserStats(userID uint64) (*model.UserStats, error) {
	var stats model.UserStats
	err := dao.db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// IncrementMoodHistory bumps the (user, mood, date) counter, creating the
// row on first sight. Runs inside the caller's transaction.
func (dao *StatsDAO) IncrementMoodHistory(tx *gorm.DB, userID uint64, mood, entryDate string) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "mood"}, {Name: "entry_date"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"entry_count": gorm.Expr("entry_count + 1"),
		}),
	}).Create(&model.MoodHistory{
		UserID:     userID,
		Mood:       mood,
		EntryDate:  entryDate,
		EntryCount: 1,
	}).Error
}

// MoodDistribution returns per-mood counts for the trailing window in days.
func (dao *StatsDAO) MoodDistribution(userID uint64, days int) ([]MoodCount, error) {
	var counts []MoodCount
	err := dao.db.Model(&model.Entry{}).
		Select("mood, COUNT(*) AS entry_count").
		Where("user_id = ? AND is_deleted = FALSE AND mood IS NOT NULL", userID).
		Where("DATE(timestamp) >= DATE_SUB(CURDATE(), INTERVAL ? DAY)", days).
		Group("mood").
		Order("entry_count DESC").
		Scan(&counts).Error
	return counts, err
}

// CalendarDay is one day of the writing calendar.
type CalendarDay struct {
	EntryDate  string `gorm:"column:entry_date" json:"entry_date"`
	EntryCount int    `gorm:"column:entry_count" json:"entry_count"`
	TotalWords int    `gorm:"column:total_words" json:"total_words"`
}

// WritingCalendar aggregates the current year's entries per day.
func (dao *StatsDAO) WritingCalendar(userID uint64) ([]CalendarDay, error) {
	var days []CalendarDay
	err := dao.db.Model(&model.Entry{}).
		Select("DATE(timestamp) AS entry_date, COUNT(*) AS entry_count, "+
			"COALESCE(SUM(word_count), 0) AS total_words").
		Where("user_id = ? AND is_deleted = FALSE", userID).
		Where("YEAR(timestamp) = YEAR(CURDATE())").
		Group("DATE(timestamp)").
		Order("entry_date").
		Scan(&days).Error
	return days, err
}

// CategoryUsage is a per-category entry count for the analytics breakdown.
type CategoryUsage struct {
	Name  string `gorm:"column:name" json:"name"`
	Color string `gorm:"column:color" json:"color"`
	Icon  string `gorm:"column:icon" json:"icon"`
	Count int    `gorm:"column:entry_count" json:"entry_count"`
}

// CategoryBreakdown counts the user's entries per category.
func (dao *StatsDAO) CategoryBreakdown(userID uint64) ([]CategoryUsage, error) {
	var rows []CategoryUsage
	err := dao.db.Model(&model.Category{}).
		Select("categories.name, categories.color, categories.icon, "+
			"COUNT(entries.id) AS entry_count").
		Joins("JOIN entries ON entries.category_id = categories.id "+
			"AND entries.user_id = ? AND entries.is_deleted = FALSE", userID).
		Group("categories.id").
		Order("entry_count DESC").
		Scan(&rows).Error
	return rows, err
}

// ThisMonthCount counts the user's entries in the current calendar month.
func (dao *StatsDAO) ThisMonthCount(userID uint64) (int64, error) {
	var n int64
	err := dao.db.Model(&model.Entry{}).
		Where("user_id = ? AND is_deleted = FALSE", userID).
		Where("MONTH(timestamp) = MONTH(CURDATE()) AND YEAR(timestamp) = YEAR(CURDATE())").
		Count(&n).Error
	return n, err
}

// CountEntries counts all non-deleted entries across users (admin totals).
func (dao *StatsDAO) CountEntries() (int64, error) {
	var n int64
	err := dao.db.Model(&model.Entry{}).Where("is_deleted = FALSE").Count(&n).Error
	return n, err
}
