package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"ideaboard/internal/models"
	"ideaboard/internal/utils"

	"gorm.io/gorm"
)

const CommentMaxLen = 500

const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

// LikeResult reports which way a toggle went and the count after it.
type LikeResult struct {
	Action    string `json:"action"`
	LikeCount int64  `json:"like_count"`
}

type SocialService interface {
	ToggleLike(user *models.User, ideaID uint) (*LikeResult, error)
	AddComment(user *models.User, ideaID uint, body string) (*models.Comment, error)
}

type socialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) SocialService {
	return &socialService{db: db}
}

// ToggleLike removes an existing like or creates a missing one. The
// check-then-act pair runs inside a transaction; if two identical requests
// race past the check anyway, the (user_id, idea_id) unique index rejects
// the second insert and the toggle reports "liked" instead of failing.
func (s *socialService) ToggleLike(user *models.User, ideaID uint) (*LikeResult, error) {
	var idea models.Idea
	if err := s.db.First(&idea, ideaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: idea does not exist", ErrNotFound)
		}
		return nil, err
	}

	result := LikeResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND idea_id = ?", user.ID, idea.ID).First(&existing).Error
		if err == nil {
			result.Action = ActionUnliked
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like := models.Like{UserID: user.ID, IdeaID: idea.ID}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Racing duplicate, the like already landed
				result.Action = ActionLiked
				return nil
			}
			return err
		}
		result.Action = ActionLiked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Like{}).Where("idea_id = ?", idea.ID).Count(&result.LikeCount).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// AddComment sanitizes the body down to plain text plus inline emphasis
// before validating, so markup does not count toward the limit and a
// tags-only comment is rejected as empty.
func (s *socialService) AddComment(user *models.User, ideaID uint, body string) (*models.Comment, error) {
	clean := utils.SanitizeComment(body)
	if clean == "" {
		return nil, fmt.Errorf("%w: comment is empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(clean) > CommentMaxLen {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, CommentMaxLen)
	}

	var idea models.Idea
	if err := s.db.First(&idea, ideaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: idea does not exist", ErrNotFound)
		}
		return nil, err
	}

	comment := models.Comment{
		IdeaID: idea.ID,
		UserID: user.ID,
		Body:   clean,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.User = *user
	return &comment, nil
}
