package testutil

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reviewhub/database"
	"reviewhub/internal/api/models"
	applog "reviewhub/pkg/logger"
)

func init() {
	// Code under test logs through the global logger.
	if applog.Log == nil {
		applog.Log = zap.NewNop()
	}
}

// TestDatabase wraps an in-memory SQLite database migrated with the real
// application models. Each call gets its own named memory database so
// parallel tests do not share state.
type TestDatabase struct {
	DB *gorm.DB
}

// TestRedis wraps a miniredis instance.
type TestRedis struct {
	Server *miniredis.Miniredis
	URL    string
}

func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	td := &TestDatabase{DB: db}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return td
}

func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	server := miniredis.RunT(t)
	return &TestRedis{
		Server: server,
		URL:    fmt.Sprintf("redis://%s", server.Addr()),
	}
}

// Fixture builders. Each creates the row and fails the test on error.

func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category %q: %v", slug, err)
	}
	return category
}

func CreateGenre(t *testing.T, db *gorm.DB, name, slug string) *models.Genre {
	t.Helper()

	genre := &models.Genre{Name: name, Slug: slug}
	if err := db.Create(genre).Error; err != nil {
		t.Fatalf("failed to create genre %q: %v", slug, err)
	}
	return genre
}

func CreateTitle(t *testing.T, db *gorm.DB, name string, year int) *models.Title {
	t.Helper()

	title := &models.Title{Name: name, Year: year}
	if err := db.Create(title).Error; err != nil {
		t.Fatalf("failed to create title %q: %v", name, err)
	}
	return title
}

func CreateReview(t *testing.T, db *gorm.DB, titleID int64, authorID string, score int) *models.Review {
	t.Helper()

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     "fixture review text",
		Score:    score,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}

func CreateComment(t *testing.T, db *gorm.DB, reviewID int64, authorID string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     "fixture comment text",
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}
