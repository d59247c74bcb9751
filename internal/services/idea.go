package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"ideaboard/internal/models"

	"gorm.io/gorm"
)

const (
	TitleMinLen = 3
	TitleMaxLen = 100
	BodyMaxLen  = 1000
)

type IdeaService interface {
	Create(user *models.User, title, body string) (*models.Idea, error)
	Edit(user *models.User, ideaID uint, title, body string) (*models.Idea, error)
	Delete(user *models.User, ideaID uint) error
}

type ideaService struct {
	db *gorm.DB
}

func NewIdeaService(db *gorm.DB) IdeaService {
	return &ideaService{db: db}
}

// validateIdea holds the one set of bounds shared by create and edit.
func validateIdea(title, body string) error {
	titleLen := utf8.RuneCountInString(title)
	if titleLen < TitleMinLen || titleLen > TitleMaxLen {
		return fmt.Errorf("%w: title must be %d to %d characters", ErrInvalidInput, TitleMinLen, TitleMaxLen)
	}
	bodyLen := utf8.RuneCountInString(body)
	if bodyLen == 0 || bodyLen > BodyMaxLen {
		return fmt.Errorf("%w: body must be 1 to %d characters", ErrInvalidInput, BodyMaxLen)
	}
	return nil
}

// ownedIdea loads an idea and checks the caller owns it.
func (s *ideaService) ownedIdea(user *models.User, ideaID uint) (*models.Idea, error) {
	var idea models.Idea
	if err := s.db.First(&idea, ideaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: idea does not exist", ErrNotFound)
		}
		return nil, err
	}
	if idea.UserID != user.ID {
		return nil, fmt.Errorf("%w: only the owner may modify an idea", ErrForbidden)
	}
	return &idea, nil
}

func (s *ideaService) Create(user *models.User, title, body string) (*models.Idea, error) {
	if err := validateIdea(title, body); err != nil {
		return nil, err
	}

	idea := models.Idea{
		UserID: user.ID,
		Title:  title,
		Body:   body,
	}
	if err := s.db.Create(&idea).Error; err != nil {
		return nil, err
	}
	idea.User = *user
	return &idea, nil
}

func (s *ideaService) Edit(user *models.User, ideaID uint, title, body string) (*models.Idea, error) {
	idea, err := s.ownedIdea(user, ideaID)
	if err != nil {
		return nil, err
	}
	if err := validateIdea(title, body); err != nil {
		return nil, err
	}

	idea.Title = title
	idea.Body = body
	if err := s.db.Save(idea).Error; err != nil {
		return nil, err
	}
	return idea, nil
}

// Delete removes an idea together with its comments and likes in one
// transaction, so no dependent row outlives the idea.
func (s *ideaService) Delete(user *models.User, ideaID uint) error {
	idea, err := s.ownedIdea(user, ideaID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", idea.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", idea.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(idea).Error
	})
}
