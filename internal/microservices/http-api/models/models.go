package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All returns every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Genre{},
		&Title{},
		&GenreTitle{},
		&Review{},
		&Comment{},
	}
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Title{}, "Genres", &GenreTitle{}); err != nil {
		return fmt.Errorf("setup genre_titles join table: %w", err)
	}
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
