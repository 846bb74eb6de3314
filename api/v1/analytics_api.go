package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/config"
	"daybook/service"
)

// AnalyticsAPI serves the per-user analytics dashboard.
type AnalyticsAPI struct {
	service *service.StatsService
}

func NewAnalyticsAPI(s *service.StatsService) *AnalyticsAPI {
	return &AnalyticsAPI{service: s}
}

// Dashboard recomputes and returns the caller's writing analytics.
func (a *AnalyticsAPI) Dashboard(c *gin.Context) {
	userID := c.GetUint64("user_id")
	analytics, err := a.service.UserAnalytics(userID)
	if err != nil {
		config.Logger.Errorw("analytics failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load analytics"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
