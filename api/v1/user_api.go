package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"daybook/api/v1/request"
	"daybook/config"
	"daybook/internal/auth"
	"daybook/internal/metrics"
	"daybook/service"
)

// UserAPI exposes HTTP handlers for signup/login/logout and the profile.
type UserAPI struct {
	service *service.UserService
	session *auth.SessionManager
	media   *service.MediaService
}

func NewUserAPI(s *service.UserService, session *auth.SessionManager, media *service.MediaService) *UserAPI {
	return &UserAPI{service: s, session: session, media: media}
}

// Register handles new account creation.
func (u *UserAPI) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := u.service.Register(service.RegisterInput{
		Username:         req.Username,
		Password:         req.Password,
		FullName:         req.FullName,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
			return
		}
		config.Logger.Errorw("register failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account created"})
}

// Login validates credentials and starts a server-side session, handing
// the browser only the opaque cookie.
func (u *UserAPI) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncLogin("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := u.service.Login(req.Username, req.Password)
	if err != nil {
		metrics.IncLogin("unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ttl := time.Duration(config.GlobalConfig.Session.TTLSeconds) * time.Second
	sid, err := u.session.Create(user.ID, ttl)
	if err != nil {
		metrics.IncLogin("internal_error")
		config.Logger.Errorw("session create failed", "user_id", user.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	metrics.IncLogin("success")
	c.SetCookie(config.GlobalConfig.Session.CookieName, sid,
		int(config.GlobalConfig.Session.TTLSeconds), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message":  "login success",
		"username": user.Username,
		"role":     user.UserRole,
	})
}

// Logout destroys the session and expires the cookie.
func (u *UserAPI) Logout(c *gin.Context) {
	sid := c.GetString("session_id")
	if sid != "" {
		_ = u.session.Destroy(sid)
	}
	c.SetCookie(config.GlobalConfig.Session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logout success"})
}

// Me returns the logged-in user's profile.
func (u *UserAPI) Me(c *gin.Context) {
	user, err := u.service.Get(c.GetUint64("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies profile edits; an optional multipart profile
// picture rides through the same upload validation as entry media.
func (u *UserAPI) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req request.ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.ProfileInput{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
	}
	if fh, err := c.FormFile("profile_pic"); err == nil && fh != nil {
		relPath, _, err := u.media.StoreUpload(userID, fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "profile picture rejected"})
			return
		}
		in.ProfilePic = relPath
	}
	if err := u.service.UpdateProfile(userID, in); err != nil {
		config.Logger.Errorw("profile update failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	u.flash(c, "Profile updated", "success")
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// Flashes drains the session's one-shot notification queue.
func (u *UserAPI) Flashes(c *gin.Context) {
	sid := c.GetString("session_id")
	flashes, err := u.session.ConsumeFlashes(sid)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"flashes": []auth.Flash{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashes": flashes})
}

func (u *UserAPI) flash(c *gin.Context, msg, typ string) {
	if sid := c.GetString("session_id"); sid != "" {
		_ = u.session.PushFlash(sid, auth.Flash{Message: msg, Type: typ})
	}
}
