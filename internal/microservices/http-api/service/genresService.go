package service

import (
	"context"
	"errors"
	"strings"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

var errSlugExists = errors.New("an entry with this slug already exists")

type GenreService interface {
	List(ctx context.Context, search string, page dto.Page) ([]models.Genre, int64, error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(r repository.GenreRepository) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) List(ctx context.Context, search string, page dto.Page) ([]models.Genre, int64, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error) {
	req.Name = strings.TrimSpace(req.Name)
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}
	if _, err := s.repo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, fieldError("slug", errSlugExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	g := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, mapWriteError(err)
	}
	return g, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	return mapReadError(s.repo.DeleteBySlug(ctx, slug), "genre")
}
