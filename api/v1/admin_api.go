package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/api/v1/request"
	"daybook/config"
	"daybook/model"
	"daybook/service"
)

// AdminAPI backs the admin panel. Every route here sits behind
// RequireAdmin so handlers do not re-check the role.
type AdminAPI struct {
	service *service.AdminService
}

func NewAdminAPI(s *service.AdminService) *AdminAPI {
	return &AdminAPI{service: s}
}

// Dashboard returns site totals and the newest accounts.
func (a *AdminAPI) Dashboard(c *gin.Context) {
	totals, err := a.service.Totals()
	if err != nil {
		config.Logger.Errorw("admin totals failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load dashboard"})
		return
	}
	users, err := a.service.RecentUsers(10)
	if err != nil {
		config.Logger.Errorw("admin recent users failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals, "recent_users": users})
}

// UpdateRole changes a user's role.
func (a *AdminAPI) UpdateRole(c *gin.Context) {
	var req request.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.service.UpdateRole(req.UserID, model.Role(req.Role)); err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		config.Logger.Errorw("role update failed", "target_id", req.UserID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

// ToggleActive flips an account's active flag.
func (a *AdminAPI) ToggleActive(c *gin.Context) {
	var req request.ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.service.ToggleActive(req.UserID); err != nil {
		config.Logger.Errorw("toggle active failed", "target_id", req.UserID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}
