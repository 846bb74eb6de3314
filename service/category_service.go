package service

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"daybook/dao"
	"daybook/model"
)

var (
	ErrCategoryName     = errors.New("category name is required")
	ErrCategoryExists   = errors.New("category name must be unique")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryService manages the shared category list and popular tags.
type CategoryService struct {
	categories *dao.CategoryDAO
	tags       *dao.TagDAO
}

func NewCategoryService(categories *dao.CategoryDAO, tags *dao.TagDAO) *CategoryService {
	return &CategoryService{categories: categories, tags: tags}
}

// Create adds a category with a unique name.
func (s *CategoryService) Create(userID uint64, name, description, color, icon string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryName
	}
	if color == "" {
		color = "#6B7280"
	}
	category := model.Category{
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		Icon:        icon,
		CreatedBy:   userID,
	}
	if err := s.categories.Create(&category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return &category, nil
}

// List returns all categories with entry counts.
func (s *CategoryService) List() ([]dao.CategoryWithCount, error) {
	return s.categories.List()
}

// Delete removes a category; entries keep a dangling-free null reference
// through the FK's ON DELETE behavior.
func (s *CategoryService) Delete(id uint64) error {
	if _, err := s.categories.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categories.Delete(id)
}

// PopularTags returns the most used tags for the categories page.
func (s *CategoryService) PopularTags(limit int) ([]model.Tag, error) {
	return s.tags.Popular(limit)
}
