package middleware

import (
	"errors"
	"net/http"
	"strings"

	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	userKey   = "user"
	userIDKey = "userID"
	roleKey   = "role"
)

// Authenticate resolves an optional bearer token to the stored user. Requests
// without an Authorization header continue anonymously; a header that does
// not carry a valid token is rejected.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "invalid authorization header format")
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				unauthorized(c, "given token not valid")
				return
			}
			Logger(c).ErrorContext(c.Request.Context(), "authenticate", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// SetUser stores the authenticated caller on the context.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Set(userIDKey, user.ID)
	c.Set(roleKey, user.Role)
}

// CurrentUser returns the caller, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireAuthenticated lets through any known user.
func RequireAuthenticated() gin.HandlerFunc {
	return gate(func(c *gin.Context, user *models.User) bool {
		return permission.IsAuthenticated(user)
	})
}

// RequireAdmin lets through admins and superusers only.
func RequireAdmin() gin.HandlerFunc {
	return gate(func(c *gin.Context, user *models.User) bool {
		return permission.IsAdminOrSuperuser(user)
	})
}

// AdminOrReadOnly lets everyone read and only admins write.
func AdminOrReadOnly() gin.HandlerFunc {
	return gate(func(c *gin.Context, user *models.User) bool {
		return permission.IsAdminOrReadOnly(user, c.Request.Method)
	})
}

func gate(allowed func(c *gin.Context, user *models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if err := permission.Check(user, allowed(c, user)); err != nil {
			if errors.Is(err, permission.ErrNotAuthenticated) {
				unauthorized(c, err.Error())
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": err.Error()})
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}
