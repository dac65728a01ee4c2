package service

import (
	"context"
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/repository"
)

// CommentService manages comments on a review. Every call names the title
// too, and a review that does not belong to it is not found.
type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page dto.Page) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*models.Comment, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page dto.Page) ([]models.Comment, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByReview(ctx, reviewID, page.Limit, page.Offset)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, mapReadError(err, "comment")
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*models.Comment, error) {
	if err := permission.Check(actor, permission.ReviewCommentPermission(actor, http.MethodPost, "")); err != nil {
		return nil, err
	}
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, mapWriteError(err)
	}
	comment.Author = *actor
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.authorize(ctx, actor, http.MethodPatch, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, mapWriteError(err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	if _, err := s.authorize(ctx, actor, http.MethodDelete, titleID, reviewID, commentID); err != nil {
		return err
	}
	return mapReadError(s.comments.Delete(ctx, reviewID, commentID), "comment")
}

func (s *commentService) authorize(ctx context.Context, actor *models.User, method string, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if actor == nil {
		return nil, permission.ErrNotAuthenticated
	}
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor, permission.ReviewCommentPermission(actor, method, comment.AuthorID)); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	_, err := s.reviews.GetByID(ctx, titleID, reviewID)
	return mapReadError(err, "review")
}
