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

func TestCreateGenre_SlugConflict(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	svc := NewGenreService(repository.NewGenreRepo(td.DB))
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateGenreDTO{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateGenreDTO{Name: "More Drama", Slug: "drama"})
	assert.ErrorIs(t, err, ErrSlugInUse)

	_, err = svc.Create(ctx, dto.CreateGenreDTO{Name: "Bad", Slug: "no spaces"})
	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestGetGenreBySlug(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	svc := NewGenreService(repository.NewGenreRepo(td.DB))
	ctx := context.Background()

	testutil.CreateGenre(t, td.DB, "Drama", "drama")

	resp, err := svc.GetBySlug(ctx, "drama")
	require.NoError(t, err)
	assert.Equal(t, "Drama", resp.Name)

	_, err = svc.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestDeleteGenre_KeepsTitles(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	svc := NewGenreService(repository.NewGenreRepo(td.DB))
	ctx := context.Background()

	genre := testutil.CreateGenre(t, td.DB, "Horror", "horror")
	title := testutil.CreateTitle(t, td.DB, "The Shining", 1977)
	require.NoError(t, td.DB.Create(&models.TitleGenre{TitleID: title.ID, GenreID: genre.ID}).Error)

	require.NoError(t, svc.DeleteBySlug(ctx, "horror"))

	var titles int64
	require.NoError(t, td.DB.Model(&models.Title{}).Where("id = ?", title.ID).Count(&titles).Error)
	assert.EqualValues(t, 1, titles, "the title survives losing a genre")

	var links int64
	require.NoError(t, td.DB.Model(&models.TitleGenre{}).Where("genre_id = ?", genre.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, svc.DeleteBySlug(ctx, "horror"), ErrGenreNotFound)
}
