package dto

import "yamdb/internal/microservices/http-api/models"

// CreateUserRequest: payload for POST /users (admin)
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=150,username,notme"`
	Email     string `json:"email" validate:"required,max=254,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,role"`
}

// UpdateUserRequest: partial payload for PATCH /users/{username} and /users/me.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitnil,min=1,max=150,username,notme"`
	Email     *string `json:"email" validate:"omitnil,max=254,email"`
	FirstName *string `json:"first_name" validate:"omitnil,max=150"`
	LastName  *string `json:"last_name" validate:"omitnil,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitnil,role"`
}

// UserResponse is the full profile representation
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}
