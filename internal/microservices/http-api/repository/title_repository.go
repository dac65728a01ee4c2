package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title, replaceGenres bool) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Title{}).Scopes(filter.Where).Count(&total).Error; err != nil {
		return nil, 0, translate("count titles", err)
	}

	err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Scopes(WithRating, filter.Where, filter.Order).
		Preload("Category").
		Preload("Genres", orderGenres).
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, translate("list titles", err)
	}
	return list, total, nil
}

// GetByID loads a title with its rating, category and genres.
func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Scopes(WithRating).
		Preload("Category").
		Preload("Genres", orderGenres).
		Where("titles.id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, translate("get title", err)
	}
	return &t, nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate("check title", err)
	}
	return count > 0, nil
}

// Create inserts the title and links t.Genres, which must already exist.
func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres := t.Genres
		t.Genres = nil
		if err := tx.Omit("Category", "Genres").Create(t).Error; err != nil {
			return err
		}
		t.Genres = genres
		if len(genres) == 0 {
			return nil
		}
		return tx.Model(t).Omit("Genres.*").Association("Genres").Append(genres)
	})
	return translate("create title", err)
}

// Update writes the scalar columns and, when replaceGenres is set, swaps the
// genre links for t.Genres.
func (r *titleRepository) Update(ctx context.Context, t *models.Title, replaceGenres bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Title{ID: t.ID}).
			Select("name", "year", "description", "category_id").
			Updates(map[string]any{
				"name":        t.Name,
				"year":        t.Year,
				"description": t.Description,
				"category_id": t.CategoryID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if !replaceGenres {
			return nil
		}
		return tx.Model(&models.Title{ID: t.ID}).Omit("Genres.*").Association("Genres").Replace(t.Genres)
	})
	return translate("update title", err)
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return translate("delete title", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("delete title", gorm.ErrRecordNotFound)
	}
	return nil
}

func orderGenres(db *gorm.DB) *gorm.DB {
	return db.Order("genres.name ASC")
}
