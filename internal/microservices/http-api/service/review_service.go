package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/repository"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, page dto.Page) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewDTO) (*models.Review, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository) ReviewService {
	return &reviewService{reviews: reviews, titles: titles}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page dto.Page) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByTitle(ctx, titleID, page.Limit, page.Offset)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, mapReadError(err, "review")
	}
	return review, nil
}

// Create posts actor's review of the title. A second review by the same
// author is a validation error, whether caught here or by the unique index.
func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewDTO) (*models.Review, error) {
	if err := permission.Check(actor, permission.ReviewCommentPermission(actor, http.MethodPost, "")); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	exists, err := s.reviews.ExistsByAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fieldError(NonFieldErrors, ErrDuplicateReview)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fieldError(NonFieldErrors, ErrDuplicateReview)
		}
		return nil, mapWriteError(err)
	}
	review.Author = *actor
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.authorize(ctx, actor, http.MethodPatch, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, mapWriteError(err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	if _, err := s.authorize(ctx, actor, http.MethodDelete, titleID, reviewID); err != nil {
		return err
	}
	return mapReadError(s.reviews.Delete(ctx, titleID, reviewID), "review")
}

// authorize loads the review and checks that actor may change it. Anonymous
// callers are refused before the lookup.
func (s *reviewService) authorize(ctx context.Context, actor *models.User, method string, titleID, reviewID int64) (*models.Review, error) {
	if actor == nil {
		return nil, permission.ErrNotAuthenticated
	}
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor, permission.ReviewCommentPermission(actor, method, review.AuthorID)); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	ok, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("title %d: %w", titleID, ErrNotFound)
	}
	return nil
}
