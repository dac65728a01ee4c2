package service

import (
	"context"
	"errors"
	"strings"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, page dto.Page) ([]models.Category, int64, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(r repository.CategoryRepository) CategoryService {
	return &categoryService{repo: r}
}

func (s *categoryService) List(ctx context.Context, search string, page dto.Page) ([]models.Category, int64, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), page.Limit, page.Offset)
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if verr := validateStruct(&req); verr != nil {
		return nil, verr
	}
	if _, err := s.repo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, fieldError("slug", errSlugExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	c := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapWriteError(err)
	}
	return c, nil
}

// Delete removes the category; its titles stay, uncategorised.
func (s *categoryService) Delete(ctx context.Context, slug string) error {
	return mapReadError(s.repo.DeleteBySlug(ctx, slug), "category")
}
