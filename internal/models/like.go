package models

import (
	"time"
)

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_idea" json:"user_id"`
	IdeaID    uint      `gorm:"not null;uniqueIndex:idx_like_user_idea" json:"idea_id"`
	CreatedAt time.Time `json:"created_at"`
}

// The composite unique index is the real guard against double likes:
// a racing duplicate insert fails there and is treated as a no-op.
