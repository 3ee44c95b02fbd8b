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

func TestCreateCategory_SlugRules(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	svc := NewCategoryService(repository.NewCategoryRepo(td.DB))
	ctx := context.Background()

	resp, err := svc.Create(ctx, dto.CreateCategoryDTO{Name: "Books", Slug: "books"})
	require.NoError(t, err)
	assert.Equal(t, "books", resp.Slug)

	_, err = svc.Create(ctx, dto.CreateCategoryDTO{Name: "Audiobooks", Slug: "books"})
	assert.ErrorIs(t, err, ErrSlugInUse)

	for _, bad := range []string{"has space", "slash/slug", "dot.slug"} {
		_, err = svc.Create(ctx, dto.CreateCategoryDTO{Name: "Bad", Slug: bad})
		assert.ErrorIs(t, err, ErrInvalidSlug, "%q must be rejected", bad)
	}

	_, err = svc.Create(ctx, dto.CreateCategoryDTO{Name: "OK", Slug: "with-dash_and_underscore"})
	assert.NoError(t, err)
}

func TestGetCategoryBySlug(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	svc := NewCategoryService(repository.NewCategoryRepo(td.DB))
	ctx := context.Background()

	testutil.CreateCategory(t, td.DB, "Books", "books")

	resp, err := svc.GetBySlug(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, "Books", resp.Name)

	_, err = svc.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategory_DetachesTitles(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	svc := NewCategoryService(repository.NewCategoryRepo(td.DB))
	ctx := context.Background()

	category := testutil.CreateCategory(t, td.DB, "Movies", "movies")
	title := testutil.CreateTitle(t, td.DB, "Alien", 1979)
	require.NoError(t, td.DB.Model(title).Update("category_id", category.ID).Error)

	require.NoError(t, svc.DeleteBySlug(ctx, "movies"))

	var reloaded models.Title
	require.NoError(t, td.DB.First(&reloaded, title.ID).Error)
	assert.Nil(t, reloaded.CategoryID, "the title survives with its category detached")

	assert.ErrorIs(t, svc.DeleteBySlug(ctx, "movies"), ErrCategoryNotFound)
}

func TestListCategories_Search(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	svc := NewCategoryService(repository.NewCategoryRepo(td.DB))
	ctx := context.Background()

	testutil.CreateCategory(t, td.DB, "Books", "books")
	testutil.CreateCategory(t, td.DB, "Comic Books", "comic-books")
	testutil.CreateCategory(t, td.DB, "Music", "music")

	page, err := svc.List(ctx, "book", 1, 20)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
}
