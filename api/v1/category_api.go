package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daybook/api/v1/request"
	"daybook/config"
	"daybook/service"
)

// CategoryAPI manages the shared category list. Reads are open to any
// logged-in user; create/delete sit behind the category permission.
type CategoryAPI struct {
	service *service.CategoryService
}

func NewCategoryAPI(s *service.CategoryService) *CategoryAPI {
	return &CategoryAPI{service: s}
}

// List returns all categories with entry counts plus the popular tags.
func (a *CategoryAPI) List(c *gin.Context) {
	categories, err := a.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
		return
	}
	tags, err := a.service.PopularTags(20)
	if err != nil {
		config.Logger.Errorw("popular tags failed", "err", err)
		tags = nil
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "popular_tags": tags})
}

// Create adds a category.
func (a *CategoryAPI) Create(c *gin.Context) {
	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := a.service.Create(c.GetUint64("user_id"),
		req.Name, req.Description, req.Color, req.Icon)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryName), errors.Is(err, service.ErrCategoryExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			config.Logger.Errorw("category create failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create category"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Delete removes a category.
func (a *CategoryAPI) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}
	if err := a.service.Delete(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		config.Logger.Errorw("category delete failed", "category_id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
