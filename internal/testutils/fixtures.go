package testutils

import (
	"fmt"
	"strings"

	"yamdb/internal/microservices/http-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTestUser creates a user with a unique username and email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *models.User {
	uniqueID := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	u := &models.User{
		Username: fmt.Sprintf("user_%s", uniqueID),
		Email:    fmt.Sprintf("user_%s@example.com", uniqueID),
		Role:     models.RoleUser,
	}
	for _, opt := range opts {
		opt(u)
	}

	if err := db.Create(u).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return u
}

// UserOption configures test user
type UserOption func(*models.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *models.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithRole sets the role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// CreateTestCategory creates a category with the given slug
func CreateTestCategory(db *gorm.DB, name, slug string) *models.Category {
	c := &models.Category{Name: name, Slug: slug}
	if err := db.Create(c).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test category: %v", err))
	}
	return c
}

// CreateTestGenre creates a genre with the given slug
func CreateTestGenre(db *gorm.DB, name, slug string) *models.Genre {
	g := &models.Genre{Name: name, Slug: slug}
	if err := db.Create(g).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test genre: %v", err))
	}
	return g
}

// CreateTestTitle creates a title linked to the optional category and genres
func CreateTestTitle(db *gorm.DB, name string, year int, category *models.Category, genres ...models.Genre) *models.Title {
	t := &models.Title{Name: name, Year: year, Genres: genres}
	if category != nil {
		t.CategoryID = &category.ID
	}
	if err := db.Omit("Category", "Genres.*").Create(t).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test title: %v", err))
	}
	return t
}

// CreateTestReview creates a review by author on title
func CreateTestReview(db *gorm.DB, title *models.Title, author *models.User, score int) *models.Review {
	r := &models.Review{TitleID: title.ID, AuthorID: author.ID, Text: "review text", Score: score}
	if err := db.Omit("Author", "Title").Create(r).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test review: %v", err))
	}
	return r
}
