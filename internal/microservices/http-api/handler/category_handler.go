package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.AdminOrReadOnly())
	rg.GET("/", h.List)
	rg.POST("/", h.Create)
	rg.DELETE("/:slug/", h.Delete)
	rg.GET("/:slug/", methodNotAllowed)
	rg.PUT("/:slug/", methodNotAllowed)
	rg.PATCH("/:slug/", methodNotAllowed)
}

func (h *CategoryHandler) List(c *gin.Context) {
	page := dto.ParsePage(c.Request.URL.Query())
	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		resp = append(resp, dto.CategoryFromModel(cat))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, requestURL(c)))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in dto.CreateCategoryDTO
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(*cat))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
