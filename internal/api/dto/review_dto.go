package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateReviewDTO for POST /titles/:title_id/reviews. Score range is a
// business rule checked in the service so the failure is reported uniformly.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

// UpdateReviewDTO for PATCH; nil fields stay untouched.
type UpdateReviewDTO struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      r.ID,
		Author:  r.Author.Username,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

type PaginatedReviewResponse struct {
	Data []ReviewResponse `json:"data"`
	Pagination
}
