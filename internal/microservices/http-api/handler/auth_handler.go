package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	limiter     ratelimit.Limiter
}

// NewAuthHandler wires the signup and token endpoints. limiter may be nil.
func NewAuthHandler(authService service.AuthService, limiter ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup/", middleware.RateLimit(h.limiter, "signup"), h.SignUp)
	rg.POST("/token/", middleware.RateLimit(h.limiter, "token"), h.Token)
}

// SignUp handles POST /auth/signup/ and mails a confirmation code.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Token handles POST /auth/token/ and exchanges a confirmation code for a JWT.
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	resp, err := h.authService.IssueToken(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
