package dao

import (
	"gorm.io/gorm"

	"daybook/model"
)

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{db: db}
}

func (dao *CategoryDAO) Create(category *model.Category) error {
	return dao.db.Create(category).Error
}

func (dao *CategoryDAO) GetByID(id uint64) (*model.Category, error) {
	var category model.Category
	err := dao.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryWithCount carries the category plus its non-deleted entry count.
type CategoryWithCount struct {
	model.Category
	EntryCount int `gorm:"column:entry_count" json:"entry_count"`
}

// List returns all categories with entry counts, ordered by name.
func (dao *CategoryDAO) List() ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := dao.db.Model(&model.Category{}).
		Select("categories.*, COUNT(entries.id) AS entry_count").
		Joins("LEFT JOIN entries ON entries.category_id = categories.id " +
			"AND entries.is_deleted = FALSE").
		Group("categories.id").
		Order("categories.name").
		Scan(&rows).Error
	return rows, err
}

func (dao *CategoryDAO) Delete(id uint64) error {
	return dao.db.Delete(&model.Category{}, id).Error
}

func (dao *CategoryDAO) Count() (int64, error) {
	var n int64
	err := dao.db.Model(&model.Category{}).Count(&n).Error
	return n, err
}
