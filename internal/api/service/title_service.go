package service

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error)
	Create(ctx context.Context, in dto.CreateTitleDTO) (*dto.TitleResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    *repository.TitleRepo
	categoryRepo *repository.CategoryRepo
	genreRepo    *repository.GenreRepo
	reviewRepo   repository.ReviewRepository
}

func NewTitleService(
	titleRepo *repository.TitleRepo,
	categoryRepo *repository.CategoryRepo,
	genreRepo *repository.GenreRepo,
	reviewRepo repository.ReviewRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
	}
}

// validateYear enforces 0 <= year <= current calendar year.
func validateYear(year int) error {
	if year < 0 || year > time.Now().Year() {
		return ErrYearOutOfRange
	}
	return nil
}

// roundRating turns a score aggregate into the derived rating: a 1-decimal
// mean, or nil when the title has no reviews.
func roundRating(agg *repository.ScoreAggregate) *float64 {
	if agg == nil || agg.Count == 0 {
		return nil
	}
	rounded := math.Round(agg.Average*10) / 10
	return &rounded
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	aggs, err := s.reviewRepo.AggregateScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	data := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *float64
		if agg, ok := aggs[titles[i].ID]; ok {
			rating = roundRating(&agg)
		}
		data = append(data, *dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return &dto.PaginatedTitleResponse{
		Data:       data,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}

func (s *titleService) Create(ctx context.Context, in dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := validateYear(*in.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        *in.Year,
		Description: in.Description,
	}

	if in.Category != "" {
		category, err := s.resolveCategory(ctx, in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}
	genreIDs, err := s.resolveGenres(ctx, in.Genre)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, title, genreIDs); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, title.ID)
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	agg, err := s.reviewRepo.AggregateScore(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title, roundRating(agg)), nil
}

func (s *titleService) Update(ctx context.Context, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if in.Year != nil {
		if err := validateYear(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.resolveCategory(ctx, *in.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
		}
	}

	var genreIDs []int64
	if in.Genre != nil {
		resolved, err := s.resolveGenres(ctx, *in.Genre)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			resolved = []int64{}
		}
		genreIDs = resolved
	}

	if err := s.titleRepo.Update(ctx, title, genreIDs); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]int64, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique(slugs)) {
		return nil, ErrUnknownGenre
	}
	ids := make([]int64, 0, len(genres))
	for i := range genres {
		ids = append(ids, genres[i].ID)
	}
	return ids, nil
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
