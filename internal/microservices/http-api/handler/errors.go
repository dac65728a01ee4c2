package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// writeError maps a service error to its status and JSON body. Validation
// errors are rendered field by field; everything else as {"detail": ...}.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case errors.Is(err, permission.ErrNotAuthenticated):
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	case errors.Is(err, permission.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"detail": service.ErrConflict.Error()})
	default:
		_ = c.Error(err)
		middleware.Logger(c).ErrorContext(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

// bindJSON decodes the request body into dst. Syntax and type errors become
// validation errors so they render like any other bad input.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		verr := &service.ValidationError{}
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.Is(err, io.EOF):
			verr.Add(service.NonFieldErrors, "no data provided")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			verr.Add(typeErr.Field, fmt.Sprintf("expected %s, got %s", typeErr.Type.Kind(), typeErr.Value))
		case errors.As(err, &syntaxErr):
			verr.Add(service.NonFieldErrors, fmt.Sprintf("JSON parse error at offset %d", syntaxErr.Offset))
		default:
			verr.Add(service.NonFieldErrors, strings.TrimPrefix(err.Error(), "json: "))
		}
		return verr
	}
	return nil
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": fmt.Sprintf("method %q not allowed", c.Request.Method)})
}
