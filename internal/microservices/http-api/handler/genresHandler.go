package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// RegisterRoutes mounts /genres. Genres are listed, created and deleted;
// a single genre cannot be retrieved or edited.
func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.AdminOrReadOnly())
	rg.GET("/", h.List)
	rg.POST("/", h.Create)
	rg.DELETE("/:slug/", h.Delete)
	rg.GET("/:slug/", methodNotAllowed)
	rg.PUT("/:slug/", methodNotAllowed)
	rg.PATCH("/:slug/", methodNotAllowed)
}

func (h *GenreHandler) List(c *gin.Context) {
	page := dto.ParsePage(c.Request.URL.Query())
	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.GenreFromModel(g))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, requestURL(c)))
}

func (h *GenreHandler) Create(c *gin.Context) {
	var in dto.CreateGenreDTO
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	g, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GenreFromModel(*g))
}

func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
