package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/api/v1/request"
	"daybook/internal/auth"
	"daybook/service"
)

// ResetAPI drives the three-step password reset: identify the account,
// answer the security question, set a new password. The flow token is
// minted on a successful Start and must accompany the later steps.
type ResetAPI struct {
	service *service.ResetService
}

func NewResetAPI(s *service.ResetService) *ResetAPI {
	return &ResetAPI{service: s}
}

// Start begins a reset flow for a username and returns the security
// question plus the flow token.
func (r *ResetAPI) Start(c *gin.Context) {
	var req request.ResetStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := auth.NewSessionID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start reset"})
		return
	}
	question, err := r.service.Start(token, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetUserNotFound),
			errors.Is(err, service.ErrResetNoQuestion):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start reset"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "question": question})
}

// Answer verifies the security answer. A wrong answer keeps the flow on
// the challenge step and re-sends the question; expired state sends the
// caller back to step one.
func (r *ResetAPI) Answer(c *gin.Context) {
	var req request.ResetAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := r.service.Answer(req.Token, req.Answer); err != nil {
		switch {
		case errors.Is(err, service.ErrResetWrongAnswer):
			question, qerr := r.service.Question(req.Token)
			if qerr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "restart": true})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "question": question})
		case errors.Is(err, service.ErrResetExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "restart": true})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify answer"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer verified"})
}

// Complete sets the new password for a verified flow.
func (r *ResetAPI) Complete(c *gin.Context) {
	var req request.ResetCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := r.service.Complete(req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrResetExpired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "restart": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated, please log in"})
}
