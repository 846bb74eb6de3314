package service

import (
	"errors"

	"daybook/dao"
	"daybook/model"
)

var ErrUnknownRole = errors.New("unknown role")

// AdminService backs the admin panel: site totals, recent users, and
// role/status management.
type AdminService struct {
	users      *dao.UserDAO
	stats      *dao.StatsDAO
	categories *dao.CategoryDAO
	tags       *dao.TagDAO
}

func NewAdminService(users *dao.UserDAO, stats *dao.StatsDAO,
	categories *dao.CategoryDAO, tags *dao.TagDAO) *AdminService {
	return &AdminService{users: users, stats: stats, categories: categories, tags: tags}
}

// Totals are the admin dashboard headline numbers.
type Totals struct {
	Users      int64 `json:"users"`
	Entries    int64 `json:"entries"`
	Categories int64 `json:"categories"`
	Tags       int64 `json:"tags"`
}

func (s *AdminService) Totals() (*Totals, error) {
	users, err := s.users.Count()
	if err != nil {
		return nil, err
	}
	entries, err := s.stats.CountEntries()
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Count()
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.Count()
	if err != nil {
		return nil, err
	}
	return &Totals{Users: users, Entries: entries, Categories: categories, Tags: tags}, nil
}

// RecentUsers returns the newest registered accounts.
func (s *AdminService) RecentUsers(limit int) ([]model.User, error) {
	return s.users.ListRecent(limit)
}

// UpdateRole sets a user's role after validating it against the closed set.
func (s *AdminService) UpdateRole(userID uint64, role model.Role) error {
	if !role.Valid() {
		return ErrUnknownRole
	}
	return s.users.UpdateRole(userID, role)
}

// ToggleActive flips a user's active flag.
func (s *AdminService) ToggleActive(userID uint64) error {
	return s.users.ToggleActive(userID)
}
