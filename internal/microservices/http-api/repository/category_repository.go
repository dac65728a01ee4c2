package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns categories ordered by name, narrowed by SlugOrNameSearch.
func (r *categoryRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	var list []models.Category
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Category{}).Scopes(SlugOrNameSearch(search)).Count(&total).Error; err != nil {
		return nil, 0, translate("count categories", err)
	}
	err := r.db.WithContext(ctx).
		Scopes(SlugOrNameSearch(search)).
		Order("name asc").
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, translate("list categories", err)
	}
	return list, total, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, translate("get category", err)
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *models.Category) error {
	return translate("create category", r.db.WithContext(ctx).Create(c).Error)
}

// DeleteBySlug removes the category. Titles in it keep existing with no category.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return translate("delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("delete category", gorm.ErrRecordNotFound)
	}
	return nil
}

// SlugOrNameSearch keeps rows whose slug starts with search or whose name
// equals it. An empty search keeps everything.
func SlugOrNameSearch(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where("slug LIKE ? OR name = ?", PrefixPattern(search), search)
	}
}
