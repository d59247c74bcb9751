package handlers

import (
	"errors"
	"net/http"

	"ideaboard/internal/middleware"
	"ideaboard/internal/models"
	"ideaboard/internal/services"

	"github.com/gin-gonic/gin"
)

// CommentDateLayout is the formatted timestamp programmatic callers get
// back from the comment endpoint.
const CommentDateLayout = "02/01/2006 15:04"

// JSON success envelope
func OK(c *gin.Context, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["status"] = "success"
	c.JSON(http.StatusOK, obj)
}

// Fail maps a typed service failure onto an HTTP status. Anything outside
// the taxonomy is a store-level failure and surfaces as a generic 500
// without leaking detail.
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrDuplicateEmail):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"status": "error", "message": message})
}

// CurrentUser pulls the identity LoadUser attached. Handlers behind
// AuthRequired may rely on it being present.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
