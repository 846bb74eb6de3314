package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/api/v1/request"
	"daybook/config"
	"daybook/dao"
	"daybook/service"
)

// FeedAPI serves the public feed and reaction toggling.
type FeedAPI struct {
	service *service.FeedService
}

func NewFeedAPI(s *service.FeedService) *FeedAPI {
	return &FeedAPI{service: s}
}

// List returns public entries filtered by search/mood and sorted.
func (f *FeedAPI) List(c *gin.Context) {
	var q request.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := f.service.List(c.GetUint64("user_id"), dao.FeedFilter{
		Search: q.Search,
		Mood:   q.Mood,
		Sort:   q.Sort,
	})
	if err != nil {
		config.Logger.Errorw("feed query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load feed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// React toggles the caller's reaction on a public entry.
func (f *FeedAPI) React(c *gin.Context) {
	var req request.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reacted, count, err := f.service.ToggleReaction(req.EntryID, c.GetUint64("user_id"))
	if err != nil {
		config.Logger.Errorw("reaction toggle failed", "entry_id", req.EntryID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save reaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reacted": reacted, "count": count})
}
