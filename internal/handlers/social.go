package handlers

import (
	"ideaboard/internal/services"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	social services.SocialService
}

func NewSocialHandler(social services.SocialService) *SocialHandler {
	return &SocialHandler{social: social}
}

// ToggleLike flips the caller's like on an idea and reports the action
// taken plus the resulting count.
func (h *SocialHandler) ToggleLike(c *gin.Context) {
	id, ok := ideaID(c)
	if !ok {
		return
	}

	result, err := h.social.ToggleLike(CurrentUser(c), id)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{
		"action":     result.Action,
		"like_count": result.LikeCount,
	})
}

type commentRequest struct {
	Body string `json:"body" form:"body"`
}

// AddComment stores a sanitized comment and echoes it back with a
// formatted timestamp for programmatic callers.
func (h *SocialHandler) AddComment(c *gin.Context) {
	id, ok := ideaID(c)
	if !ok {
		return
	}
	var req commentRequest
	_ = c.ShouldBind(&req)

	comment, err := h.social.AddComment(CurrentUser(c), id, req.Body)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{
		"comment": comment,
		"user":    comment.User.Email,
		"content": comment.Body,
		"date":    comment.CreatedAt.Format(CommentDateLayout),
	})
}
