package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// CreateReviewDTO for POST /titles/{title_id}/reviews
type CreateReviewDTO struct {
	Text  string `json:"text" validate:"required"`
	Score *int   `json:"score" validate:"required,gte=1,lte=10"`
}

// UpdateReviewDTO for PATCH /titles/{title_id}/reviews/{id}
type UpdateReviewDTO struct {
	Text  *string `json:"text" validate:"omitnil,min=1"`
	Score *int    `json:"score" validate:"omitnil,gte=1,lte=10"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Title   int64     `json:"title"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToReviewResponse converts a Review model (with Author loaded) to its DTO
func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Title:   r.TitleID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}
