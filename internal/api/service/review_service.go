package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/pkg/logger"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	Create(ctx context.Context, titleID int64, authorID string, in dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Update(ctx context.Context, titleID, reviewID int64, actor AuthClaims, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID int64, actor AuthClaims) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  *repository.TitleRepo
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo *repository.TitleRepo) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// validateScore enforces 1 <= score <= 10 inclusive.
func validateScore(score int) error {
	if score < 1 || score > 10 {
		return ErrScoreOutOfRange
	}
	return nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		data = append(data, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return &dto.PaginatedReviewResponse{
		Data:       data,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}

// Create rejects a second review by the same author for the same title. The
// lookup is the fast path; the unique index on (title, author) is the
// authoritative guard when two requests race.
func (s *reviewService) Create(ctx context.Context, titleID int64, authorID string, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := validateScore(*in.Score); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.GetByTitleAndAuthor(ctx, titleID, authorID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     in.Text,
		Score:    *in.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			logger.Log.Warn("concurrent duplicate review rejected by constraint",
				zap.Int64("title_id", titleID),
				zap.String("author_id", authorID),
			)
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// Reload with author data
	created, err := s.reviewRepo.GetByTitleAndAuthor(ctx, titleID, authorID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(created), nil
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, actor AuthClaims, in dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor.Role, actor.UserID, review.AuthorID) {
		return nil, ErrForbidden
	}

	if in.Score != nil {
		if err := validateScore(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}
	if in.Text != nil {
		review.Text = *in.Text
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	updated, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(updated), nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, actor AuthClaims) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !CanModify(actor.Role, actor.UserID, review.AuthorID) {
		return ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) findReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
