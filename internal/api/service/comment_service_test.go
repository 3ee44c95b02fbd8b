package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/testutil"
)

func setupCommentService(t *testing.T) (CommentService, *testutil.TestDatabase) {
	td := testutil.SetupTestDatabase(t)
	return NewCommentService(
		repository.NewCommentRepository(td.DB),
		repository.NewReviewRepository(td.DB),
	), td
}

func TestCreateComment_RequiresReview(t *testing.T) {
	svc, td := setupCommentService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, td.DB, "commenter", models.RoleUser)
	title := testutil.CreateTitle(t, td.DB, "Contact", 1985)
	review := testutil.CreateReview(t, td.DB, title.ID, author.ID, 8)

	resp, err := svc.Create(ctx, title.ID, review.ID, author.ID, "agreed on all points")
	require.NoError(t, err)
	assert.Equal(t, "agreed on all points", resp.Text)
	assert.Equal(t, "commenter", resp.Author)

	_, err = svc.Create(ctx, title.ID, 9999, author.ID, "no such review")
	assert.ErrorIs(t, err, ErrReviewNotFound)

	// A review id under the wrong title must not resolve either.
	other := testutil.CreateTitle(t, td.DB, "Cosmos", 1980)
	_, err = svc.Create(ctx, other.ID, review.ID, author.ID, "wrong parent")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestUpdateComment_Permissions(t *testing.T) {
	svc, td := setupCommentService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, td.DB, "cauthor", models.RoleUser)
	stranger := testutil.CreateUser(t, td.DB, "cstranger", models.RoleUser)
	admin := testutil.CreateUser(t, td.DB, "cadmin", models.RoleAdmin)
	title := testutil.CreateTitle(t, td.DB, "Ubik", 1969)
	review := testutil.CreateReview(t, td.DB, title.ID, author.ID, 7)
	comment := testutil.CreateComment(t, td.DB, review.ID, author.ID)

	_, err := svc.Update(ctx, title.ID, review.ID, comment.ID, claimsFor(stranger), dto.UpdateCommentDTO{
		Text: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := svc.Update(ctx, title.ID, review.ID, comment.ID, claimsFor(author), dto.UpdateCommentDTO{
		Text: strPtr("edited by author"),
	})
	require.NoError(t, err)
	assert.Equal(t, "edited by author", resp.Text)

	_, err = svc.Update(ctx, title.ID, review.ID, comment.ID, claimsFor(admin), dto.UpdateCommentDTO{
		Text: strPtr("edited by admin"),
	})
	assert.NoError(t, err)
}

func TestDeleteComment(t *testing.T) {
	svc, td := setupCommentService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, td.DB, "dauthor", models.RoleUser)
	moderator := testutil.CreateUser(t, td.DB, "dmod", models.RoleModerator)
	title := testutil.CreateTitle(t, td.DB, "VALIS", 1981)
	review := testutil.CreateReview(t, td.DB, title.ID, author.ID, 9)
	comment := testutil.CreateComment(t, td.DB, review.ID, author.ID)

	require.NoError(t, svc.Delete(ctx, title.ID, review.ID, comment.ID, claimsFor(moderator)))

	_, err := svc.GetByID(ctx, title.ID, review.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	// The parent review is untouched.
	var reviews int64
	require.NoError(t, td.DB.Model(&models.Review{}).Where("id = ?", review.ID).Count(&reviews).Error)
	assert.EqualValues(t, 1, reviews)
}

func TestListComments_Scoped(t *testing.T) {
	svc, td := setupCommentService(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, td.DB, "lauthor", models.RoleUser)
	title := testutil.CreateTitle(t, td.DB, "Laterna Magica", 1987)
	review := testutil.CreateReview(t, td.DB, title.ID, author.ID, 6)
	other := testutil.CreateUser(t, td.DB, "lother", models.RoleUser)
	otherReview := testutil.CreateReview(t, td.DB, title.ID, other.ID, 4)

	testutil.CreateComment(t, td.DB, review.ID, author.ID)
	testutil.CreateComment(t, td.DB, review.ID, other.ID)
	testutil.CreateComment(t, td.DB, otherReview.ID, other.ID)

	page, err := svc.ListByReview(ctx, title.ID, review.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.Pagination.Total)
}
