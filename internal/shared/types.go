package shared

import "github.com/golang-jwt/jwt/v5"

// shared types across the application

// AuthClaims is the payload of the bearer tokens handed out by /auth/token.
// The role is informational only; requests re-read the stored user.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenTypeAccess marks access tokens in AuthClaims.TokenType.
const TokenTypeAccess = "access"
