package model

import "time"

// Role is the closed set of user roles stored in the user_role column.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Permission names checked by handlers and middleware.
const (
	PermManageUsers      = "manage_users"
	PermManageCategories = "manage_categories"
	PermWriteEntries     = "write_entries"
)

var rolePermissions = map[Role]map[string]bool{
	RoleAdmin: {
		PermManageUsers:      true,
		PermManageCategories: true,
		PermWriteEntries:     true,
	},
	RoleUser: {
		PermManageCategories: true,
		PermWriteEntries:     true,
	},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role grants the named permission.
func (r Role) Can(permission string) bool {
	return rolePermissions[r][permission]
}

// User 用户模型
type User struct {
	ID               uint64     `gorm:"primarykey" json:"id"`
	Username         string     `gorm:"unique;not null;size:50" json:"username"`
	PasswordHash     string     `gorm:"not null;size:255" json:"-"`
	FullName         string     `gorm:"size:100" json:"full_name"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	ProfilePic       string     `gorm:"size:255" json:"profile_pic"`
	UserRole         Role       `gorm:"column:user_role;not null;size:20;default:User" json:"user_role"`
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	SecurityQuestion string     `gorm:"size:255" json:"-"`
	SecurityAnswer   string     `gorm:"size:255" json:"-"` // stored lowercased + trimmed
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
