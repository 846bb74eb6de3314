package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daybook/model"
)

type EntryDAO struct {
	db *gorm.DB
}

func NewEntryDAO(db *gorm.DB) *EntryDAO {
	return &EntryDAO{db: db}
}

// DB exposes the underlying handle for transaction orchestration.
func (dao *EntryDAO) DB() *gorm.DB {
	return dao.db
}

// Create inserts an entry inside the caller's transaction.
func (dao *EntryDAO) Create(tx *gorm.DB, entry *model.Entry) error {
	return tx.Create(entry).Error
}

// GetOwned returns a non-deleted entry belonging to the user.
func (dao *EntryDAO) GetOwned(entryID, userID uint64) (*model.Entry, error) {
	var entry model.Entry
	err := dao.db.Preload("Media").
		Where("id = ? AND user_id = ? AND is_deleted = FALSE", entryID, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetVisible returns a non-deleted entry the viewer may read: their own, or
// any public one.
func (dao *EntryDAO) GetVisible(entryID, viewerID uint64) (*model.Entry, error) {
	var entry model.Entry
	err := dao.db.Preload("Media").Preload("User").Preload("Category").
		Where("id = ? AND is_deleted = FALSE AND (user_id = ? OR privacy_level = ?)",
			entryID, viewerID, model.PrivacyPublic).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUser returns the user's non-deleted entries, newest first.
func (dao *EntryDAO) ListByUser(userID uint64) ([]model.Entry, error) {
	var entries []model.Entry
	err := dao.db.Preload("Media").Preload("Category").
		Where("user_id = ? AND is_deleted = FALSE", userID).
		Order("timestamp DESC").
		Find(&entries).Error
	return entries, err
}

// Update applies the given columns inside the caller's transaction.
func (dao *EntryDAO) Update(tx *gorm.DB, entryID uint64, fields map[string]any) error {
	return tx.Model(&model.Entry{}).Where("id = ?", entryID).Updates(fields).Error
}

// SoftDelete marks the entry deleted; media rows and files stay in place.
func (dao *EntryDAO) SoftDelete(tx *gorm.DB, entryID uint64) error {
	return tx.Model(&model.Entry{}).Where("id = ?", entryID).
		Update("is_deleted", true).Error
}

// CreateMedia records an attachment for an entry.
func (dao *EntryDAO) CreateMedia(tx *gorm.DB, media *model.Media) error {
	return tx.Create(media).Error
}

// InitEntryStats inserts a zeroed stats row if absent (idempotent).
func (dao *EntryDAO) InitEntryStats(tx *gorm.DB, entryID uint64) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.EntryStats{EntryID: entryID}).Error
}

// DistinctEntryDates returns the user's distinct entry dates (YYYY-MM-DD)
// in descending order, soft-deleted entries excluded.
func (dao *EntryDAO) DistinctEntryDates(userID uint64) ([]string, error) {
	var dates []string
	err := dao.db.Model(&model.Entry{}).
		Where("user_id = ? AND is_deleted = FALSE", userID).
		Distinct("DATE(timestamp)").
		Order("DATE(timestamp) DESC").
		Pluck("DATE(timestamp)", &dates).Error
	return dates, err
}
