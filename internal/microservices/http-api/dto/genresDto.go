package dto

import "yamdb/internal/microservices/http-api/models"

// CreateGenreDTO for POST /genres and POST /categories
type CreateGenreDTO struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// CreateCategoryDTO has the same shape as a genre
type CreateCategoryDTO = CreateGenreDTO

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		Name: g.Name,
		Slug: g.Slug,
	}
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{
		Name: c.Name,
		Slug: c.Slug,
	}
}
