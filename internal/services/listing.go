package services

import (
	"sort"

	"ideaboard/internal/models"

	"gorm.io/gorm"
)

type ListingService interface {
	ListAll() ([]models.Idea, error)
	ListByOwner(user *models.User) ([]models.Idea, error)
	ListByPopularity() ([]models.Idea, error)
}

type listingService struct {
	db *gorm.DB
}

func NewListingService(db *gorm.DB) ListingService {
	return &listingService{db: db}
}

// fillLikeCounts batch-fills like counts for a page of ideas with a single
// grouped query instead of one count per idea.
func (s *listingService) fillLikeCounts(ideas []models.Idea) error {
	if len(ideas) == 0 {
		return nil
	}

	ideaIDs := make([]uint, len(ideas))
	for i, idea := range ideas {
		ideaIDs[i] = idea.ID
	}

	type countResult struct {
		IdeaID uint
		Count  int
	}
	var results []countResult
	err := s.db.Model(&models.Like{}).
		Select("idea_id, COUNT(*) as count").
		Where("idea_id IN ?", ideaIDs).
		Group("idea_id").
		Scan(&results).Error
	if err != nil {
		return err
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.IdeaID] = r.Count
	}

	for i := range ideas {
		ideas[i].LikeCount = countMap[ideas[i].ID]
	}
	return nil
}

// query loads ideas newest first with owners, comment threads, and like
// counts attached, optionally filtered to one owner.
func (s *listingService) query(ownerID uint) ([]models.Idea, error) {
	q := s.db.Preload("User").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at ASC")
		}).
		Preload("Comments.User").
		Order("created_at DESC")
	if ownerID != 0 {
		q = q.Where("user_id = ?", ownerID)
	}

	var ideas []models.Idea
	if err := q.Find(&ideas).Error; err != nil {
		return nil, err
	}
	if err := s.fillLikeCounts(ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (s *listingService) ListAll() ([]models.Idea, error) {
	return s.query(0)
}

func (s *listingService) ListByOwner(user *models.User) ([]models.Idea, error) {
	return s.query(user.ID)
}

// ListByPopularity orders by like count descending. The sort is stable over
// the newest-first base order, so ties keep a deterministic order.
func (s *listingService) ListByPopularity() ([]models.Idea, error) {
	ideas, err := s.query(0)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].LikeCount > ideas[j].LikeCount
	})
	return ideas, nil
}
