package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"daybook/config"
	"daybook/dao"
	"daybook/model"
	"daybook/utils"
)

var (
	ErrUserExists      = errors.New("user already exists")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrAccountDisabled = errors.New("account is deactivated")
)

// UserService bundles registration, login and profile maintenance.
type UserService struct {
	dao *dao.UserDAO
}

func NewUserService(dao *dao.UserDAO) *UserService {
	return &UserService{dao: dao}
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Username         string
	Password         string
	FullName         string
	SecurityQuestion string
	SecurityAnswer   string
}

// Register persists a freshly created user after hashing the password.
// Security answers are stored lowercased and trimmed so the reset flow can
// compare case-insensitively.
func (s *UserService) Register(in RegisterInput) (*model.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Username:         strings.TrimSpace(in.Username),
		PasswordHash:     hashed,
		FullName:         strings.TrimSpace(in.FullName),
		UserRole:         model.RoleUser,
		IsActive:         true,
		SecurityQuestion: strings.TrimSpace(in.SecurityQuestion),
		SecurityAnswer:   strings.ToLower(strings.TrimSpace(in.SecurityAnswer)),
	}
	if err := s.dao.CreateUser(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// Login validates credentials. The same generic error covers unknown
// usernames and wrong passwords.
func (s *UserService) Login(username, password string) (*model.User, error) {
	user, err := s.dao.GetByUsername(strings.TrimSpace(username))
	if err != nil || user.ID == 0 {
		return nil, ErrBadCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if err := s.dao.UpdateLastLogin(user.ID); err != nil {
		config.Logger.Warnw("last_login update failed", "user_id", user.ID, "err", err)
	}
	return user, nil
}

// Get returns a user by ID.
func (s *UserService) Get(userID uint64) (*model.User, error) {
	return s.dao.GetByID(userID)
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FullName    string
	DateOfBirth string // YYYY-MM-DD, optional
	ProfilePic  string // relative path from an earlier upload, optional
}

// UpdateProfile applies profile edits; a malformed date of birth is
// dropped rather than rejected.
func (s *UserService) UpdateProfile(userID uint64, in ProfileInput) error {
	fields := map[string]any{
		"full_name": strings.TrimSpace(in.FullName),
	}
	if dob := strings.TrimSpace(in.DateOfBirth); dob != "" {
		if d, err := time.Parse(dateLayout, dob); err == nil {
			fields["date_of_birth"] = d
		}
	}
	if in.ProfilePic != "" {
		fields["profile_pic"] = in.ProfilePic
	}
	return s.dao.UpdateProfile(userID, fields)
}
