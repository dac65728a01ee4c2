package dto

import "yamdb/internal/microservices/http-api/models"

// CreateTitleRequest: payload for POST /titles. Genres and category are
// referenced by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Year        *int     `json:"year" validate:"required"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"required,dive,required"`
	Category    string   `json:"category" validate:"required"`
}

// UpdateTitleRequest: partial payload for PATCH /titles/{id}
type UpdateTitleRequest struct {
	Name        *string        `json:"name" validate:"omitnil,min=1,max=50"`
	Year        *int           `json:"year"`
	Description NullableString `json:"description"`
	Genre       *[]string      `json:"genre" validate:"omitnil,dive,required"`
	Category    NullableString `json:"category"`
}

// TitleResponse is the read representation with nested genres and category
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// TitleWriteResponse mirrors the write payload: genres and category as slugs
type TitleWriteResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// FromModelToTitleResponse converts a Title model to the read DTO
func FromModelToTitleResponse(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	return resp
}

// FromModelToTitleWriteResponse converts a Title model to the write DTO
func FromModelToTitleWriteResponse(t *models.Title) TitleWriteResponse {
	resp := TitleWriteResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       make([]string, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, g.Slug)
	}
	if t.Category != nil {
		slug := t.Category.Slug
		resp.Category = &slug
	}
	return resp
}
