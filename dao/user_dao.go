package dao

import (
	"time"

	"gorm.io/gorm"

	"daybook/model"
)

type UserDAO struct {
	db *gorm.DB
}

// NewUserDAO 创建一个新的 UserDAO 实例
func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser 创建新用户
func (dao *UserDAO) CreateUser(user *model.User) error {
	return dao.db.Create(user).Error
}

// GetByUsername 根据用户名获取用户
func (dao *UserDAO) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := dao.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (dao *UserDAO) GetByID(id uint64) (*model.User, error) {
	var user model.User
	err := dao.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin stamps the login time.
func (dao *UserDAO) UpdateLastLogin(id uint64) error {
	now := time.Now()
	return dao.db.Model(&model.User{}).Where("id = ?", id).
		Update("last_login", now).Error
}

// UpdateProfile updates the editable profile fields.
func (dao *UserDAO) UpdateProfile(id uint64, fields map[string]any) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// UpdatePassword replaces the stored hash.
func (dao *UserDAO) UpdatePassword(id uint64, hash string) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}

// ListRecent returns the newest registered users.
func (dao *UserDAO) ListRecent(limit int) ([]model.User, error) {
	var users []model.User
	err := dao.db.Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users.
func (dao *UserDAO) Count() (int64, error) {
	var n int64
	err := dao.db.Model(&model.User{}).Count(&n).Error
	return n, err
}

// UpdateRole sets the user's role.
func (dao *UserDAO) UpdateRole(id uint64, role model.Role) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).
		Update("user_role", role).Error
}

// ToggleActive flips the active flag atomically.
func (dao *UserDAO) ToggleActive(id uint64) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active")).Error
}
