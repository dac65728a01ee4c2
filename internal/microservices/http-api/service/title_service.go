package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page dto.Page) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titles     repository.TitleRepository
	genres     repository.GenreRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

func NewTitleService(
	titles repository.TitleRepository,
	genres repository.GenreRepository,
	categories repository.CategoryRepository,
) TitleService {
	return &titleService{titles: titles, genres: genres, categories: categories, now: time.Now}
}

// ParseTitleFilter reads name, category, genre, year and ordering from the
// query string. Only a malformed year is an error.
func ParseTitleFilter(q url.Values) (repository.TitleFilter, error) {
	f := repository.TitleFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
		Genre:    q.Get("genre"),
	}
	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			verr := &ValidationError{}
			verr.Add("year", "Enter a whole number.")
			return f, verr
		}
		f.Year = &year
	}
	for _, field := range strings.Split(q.Get("ordering"), ",") {
		field = strings.TrimSpace(field)
		if field != "" && repository.ValidTitleOrdering(field) {
			f.Ordering = append(f.Ordering, field)
		}
	}
	return f, nil
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page dto.Page) ([]models.Title, int64, error) {
	return s.titles.List(ctx, filter, page.Limit, page.Offset)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, mapReadError(err, "title")
	}
	return t, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error) {
	verr := &ValidationError{}
	verr.Merge(validateStruct(&req))
	if req.Year != nil {
		s.checkYear(verr, *req.Year)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category, verr)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre, verr)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	t := &models.Title{
		Name:        req.Name,
		Year:        *req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Genres:      genres,
	}
	if err := s.titles.Create(ctx, t); err != nil {
		return nil, mapWriteError(err)
	}
	t.Category = category
	return t, nil
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	verr.Merge(validateStruct(&req))
	if req.Year != nil {
		s.checkYear(verr, *req.Year)
	}
	if req.Category.Set && req.Category.Value == nil {
		verr.Add("category", "This field may not be null.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Year != nil {
		t.Year = *req.Year
	}
	if req.Description.Set {
		t.Description = req.Description.Value
	}
	if req.Category.Set {
		category, err := s.resolveCategory(ctx, *req.Category.Value, verr)
		if err != nil {
			return nil, err
		}
		if category != nil {
			t.CategoryID = &category.ID
			t.Category = category
		}
	}
	replaceGenres := req.Genre != nil
	if replaceGenres {
		genres, err := s.resolveGenres(ctx, *req.Genre, verr)
		if err != nil {
			return nil, err
		}
		t.Genres = genres
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.titles.Update(ctx, t, replaceGenres); err != nil {
		return nil, mapWriteError(err)
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return mapReadError(s.titles.Delete(ctx, id), "title")
}

func (s *titleService) checkYear(verr *ValidationError, year int) {
	if current := s.now().Year(); year < 0 || year > current {
		verr.Add("year", fmt.Sprintf("Year must be between 0 and %d.", current))
	}
}

// resolveCategory looks up slug, recording a field error when it is unknown.
func (s *titleService) resolveCategory(ctx context.Context, slug string, verr *ValidationError) (*models.Category, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		verr.Add("category", fmt.Sprintf("Object with slug=%s does not exist.", slug))
		return nil, nil
	}
	return nil, err
}

// resolveGenres looks up every slug, recording a field error per unknown one.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string, verr *ValidationError) ([]models.Genre, error) {
	unique := make([]string, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}

	genres, err := s.genres.GetBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range unique {
		if !found[slug] {
			verr.Add("genre", fmt.Sprintf("Object with slug=%s does not exist.", slug))
		}
	}
	return genres, nil
}
