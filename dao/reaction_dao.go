package dao

import (
	"errors"

	"gorm.io/gorm"

	"daybook/model"
)

type ReactionDAO struct {
	db *gorm.DB
}

func NewReactionDAO(db *gorm.DB) *ReactionDAO {
	return &ReactionDAO{db: db}
}

// Toggle inserts or removes the (entry, user) reaction and returns whether
// the viewer now has a reaction plus the entry's total count. Uniqueness on
// the pair makes concurrent toggles resolve to one row at most.
func (dao *ReactionDAO) Toggle(entryID, userID uint64) (reacted bool, count int64, err error) {
	err = dao.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Reaction
		findErr := tx.Where("entry_id = ? AND user_id = ?", entryID, userID).
			First(&existing).Error
		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			reacted = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			r := model.Reaction{EntryID: entryID, UserID: userID, ReactionType: "like"}
			if err := tx.Create(&r).Error; err != nil {
				return err
			}
			reacted = true
		default:
			return findErr
		}
		return tx.Model(&model.Reaction{}).
			Where("entry_id = ?", entryID).Count(&count).Error
	})
	return reacted, count, err
}
