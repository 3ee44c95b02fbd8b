package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/api/models"
	"reviewhub/internal/testutil"
)

func TestIsUniqueViolation_DuplicateReview(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	repo := NewReviewRepository(td.DB)
	ctx := context.Background()

	author := testutil.CreateUser(t, td.DB, "constraintuser", models.RoleUser)
	title := testutil.CreateTitle(t, td.DB, "Constraint Check", 2001)

	first := &models.Review{TitleID: title.ID, AuthorID: author.ID, Text: "first", Score: 7}
	require.NoError(t, repo.Create(ctx, first))

	// Bypasses the service fast-path; the unique index must still hold.
	second := &models.Review{TitleID: title.ID, AuthorID: author.ID, Text: "second", Score: 9}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "duplicate (title, author) insert must classify as a unique violation, got: %v", err)

	var count int64
	require.NoError(t, td.DB.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", title.ID, author.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "exactly one row survives")
}

func TestIsUniqueViolation_DuplicateUsername(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(td.DB)
	ctx := context.Background()

	testutil.CreateUser(t, td.DB, "collide", models.RoleUser)

	err := repo.Create(ctx, &models.User{Username: "collide", Email: "other@example.com"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation_OtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}
