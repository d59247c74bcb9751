package services

import (
	"testing"

	"ideaboard/internal/db"
	"ideaboard/internal/models"
	"ideaboard/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory store with the production schema. A single
// connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := g.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(g))
	return g
}

func newTestUser(t *testing.T, g *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{Email: email, Password: hash}
	require.NoError(t, g.Create(&user).Error)
	return &user
}

func newTestIdea(t *testing.T, g *gorm.DB, owner *models.User, title string) *models.Idea {
	t.Helper()

	idea := models.Idea{UserID: owner.ID, Title: title, Body: "some body"}
	require.NoError(t, g.Create(&idea).Error)
	return &idea
}
