package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	Create(ctx context.Context, g *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type GenreRepo struct {
	db *gorm.DB
}

func NewGenreRepo(db *gorm.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// List returns genres ordered by name, narrowed by SlugOrNameSearch.
func (r *GenreRepo) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	var list []models.Genre
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Genre{}).Scopes(SlugOrNameSearch(search)).Count(&total).Error; err != nil {
		return nil, 0, translate("count genres", err)
	}
	if err := r.db.WithContext(ctx).
		Scopes(SlugOrNameSearch(search)).
		Order("name asc").
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, translate("list genres", err)
	}
	return list, total, nil
}

func (r *GenreRepo) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, translate("get genre", err)
	}
	return &g, nil
}

// GetBySlugs returns the genres whose slug is listed, in name order.
// Unknown slugs are simply absent from the result.
func (r *GenreRepo) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var list []models.Genre
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Order("name asc").Find(&list).Error; err != nil {
		return nil, translate("get genres by slug", err)
	}
	return list, nil
}

func (r *GenreRepo) Create(ctx context.Context, g *models.Genre) error {
	return translate("create genre", r.db.WithContext(ctx).Create(g).Error)
}

// DeleteBySlug removes the genre and, through the cascade, its title links.
func (r *GenreRepo) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Genre{})
	if result.Error != nil {
		return translate("delete genre", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("delete genre", gorm.ErrRecordNotFound)
	}
	return nil
}
