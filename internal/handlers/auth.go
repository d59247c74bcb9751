package handlers

import (
	"ideaboard/internal/models"
	"ideaboard/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func bindSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	return session.Save()
}

// Register creates the account and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	_ = c.ShouldBind(&req)

	user, err := h.auth.Register(req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	if err := bindSession(c, user); err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	_ = c.ShouldBind(&req)

	user, err := h.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	if err := bindSession(c, user); err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	OK(c, nil)
}
