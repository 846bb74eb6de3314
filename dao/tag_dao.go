package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daybook/model"
)

type TagDAO struct {
	db *gorm.DB
}

func NewTagDAO(db *gorm.DB) *TagDAO {
	return &TagDAO{db: db}
}

// GetOrCreate resolves a tag by name, creating it when absent.
func (dao *TagDAO) GetOrCreate(tx *gorm.DB, name string) (*model.Tag, error) {
	var tag model.Tag
	err := tx.Where(model.Tag{Name: name}).FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// AddTagToEntry links a tag to an entry. The link is insert-ignore on the
// composite key, and usage_count is bumped only when a row was actually
// inserted, so duplicate links never double-increment.
func (dao *TagDAO) AddTagToEntry(tx *gorm.DB, entryID, tagID uint64) error {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.EntryTag{EntryID: entryID, TagID: tagID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return tx.Model(&model.Tag{}).Where("id = ?", tagID).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error
}

// RemoveEntryTags decrements usage_count (floored at 0) for every tag
// linked to the entry, then removes the links.
func (dao *TagDAO) RemoveEntryTags(tx *gorm.DB, entryID uint64) error {
	err := tx.Model(&model.Tag{}).
		Where("id IN (?)", tx.Model(&model.EntryTag{}).
			Select("tag_id").Where("entry_id = ?", entryID)).
		Update("usage_count", gorm.Expr("GREATEST(usage_count - 1, 0)")).Error
	if err != nil {
		return err
	}
	return tx.Where("entry_id = ?", entryID).Delete(&model.EntryTag{}).Error
}

// TagsForEntry returns the tags currently linked to an entry.
func (dao *TagDAO) TagsForEntry(entryID uint64) ([]model.Tag, error) {
	var tags []model.Tag
	err := dao.db.
		Joins("JOIN entry_tags ON entry_tags.tag_id = tags.id").
		Where("entry_tags.entry_id = ?", entryID).
		Order("tags.name").
		Find(&tags).Error
	return tags, err
}

// Popular returns the most used tags.
func (dao *TagDAO) Popular(limit int) ([]model.Tag, error) {
	var tags []model.Tag
	err := dao.db.Where("usage_count > 0").
		Order("usage_count DESC, name ASC").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

// Count returns the total number of tags.
func (dao *TagDAO) Count() (int64, error) {
	var n int64
	err := dao.db.Model(&model.Tag{}).Count(&n).Error
	return n, err
}
