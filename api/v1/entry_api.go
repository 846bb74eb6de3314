package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daybook/api/v1/request"
	"daybook/internal/auth"
	"daybook/service"
)

// EntryAPI exposes the diary entry CRUD handlers.
type EntryAPI struct {
	service *service.EntryService
	session *auth.SessionManager
}

func NewEntryAPI(s *service.EntryService, session *auth.SessionManager) *EntryAPI {
	return &EntryAPI{service: s, session: session}
}

// List returns the caller's entries, newest first.
func (e *EntryAPI) List(c *gin.Context) {
	entries, err := e.service.List(c.GetUint64("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Get returns one entry the caller may read, with tags.
func (e *EntryAPI) Get(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	entry, tags, err := e.service.Get(entryID, c.GetUint64("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "tags": tags})
}

// Create handles the multipart new-entry form, including media files.
func (e *EntryAPI) Create(c *gin.Context) {
	var req request.CreateEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := service.CreateEntryInput{
		Title:        req.Title,
		Content:      req.Content,
		Mood:         req.Mood,
		EntryDate:    req.EntryDate,
		MusicLink:    req.MusicLink,
		ImageURL:     req.ImageURL,
		Location:     req.Location,
		PrivacyLevel: req.PrivacyLevel,
		TagsCSV:      req.Tags,
		CategoryID:   req.CategoryID,
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Files = form.File["media"]
	}

	entryID, err := e.service.Create(c.GetUint64("user_id"), in)
	if err != nil {
		if errors.Is(err, service.ErrEntryFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Internal detail is logged in the service; the caller only
		// ever sees the generic message.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry. Please try again."})
		return
	}
	e.flash(c, "Entry created successfully!", "success")
	c.JSON(http.StatusOK, gin.H{"entry_id": entryID})
}

// Update rewrites an entry the caller owns.
func (e *EntryAPI) Update(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	var req request.UpdateEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err = e.service.Update(entryID, c.GetUint64("user_id"), service.UpdateEntryInput{
		Title:        req.Title,
		Content:      req.Content,
		Mood:         req.Mood,
		Location:     req.Location,
		PrivacyLevel: req.PrivacyLevel,
		MusicLink:    req.MusicLink,
		TagsCSV:      req.Tags,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		case errors.Is(err, service.ErrEntryFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry. Please try again."})
		}
		return
	}
	e.flash(c, "Entry updated", "success")
	c.JSON(http.StatusOK, gin.H{"message": "entry updated"})
}

// Delete soft-deletes an entry the caller owns.
func (e *EntryAPI) Delete(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	if err := e.service.Delete(entryID, c.GetUint64("user_id")); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry."})
		return
	}
	e.flash(c, "Entry deleted", "success")
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

func (e *EntryAPI) flash(c *gin.Context, msg, typ string) {
	if sid := c.GetString("session_id"); sid != "" {
		_ = e.session.PushFlash(sid, auth.Flash{Message: msg, Type: typ})
	}
}
