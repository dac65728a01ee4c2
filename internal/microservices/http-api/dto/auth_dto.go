package dto

// Data Transfer Objects for the signup and token exchange endpoints

// SignUpRequest: payload for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,max=254,email"`
	Username string `json:"username" validate:"required,max=140,username,notme"`
}

// SignUpResponse echoes the accepted identity; the code travels by email only
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest: payload for POST /auth/token
type TokenRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// TokenResponse carries the bearer token
type TokenResponse struct {
	Token string `json:"token"`
}
