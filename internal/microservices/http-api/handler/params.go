package handler

import (
	"fmt"
	"net/url"
	"strconv"

	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter. Anything else is treated
// as a missing resource.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q: %w", name, c.Param(name), service.ErrNotFound)
	}
	return id, nil
}

// requestURL rebuilds the absolute URL of the current request, used for
// the next/previous links of list responses.
func requestURL(c *gin.Context) *url.URL {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
	}
}
