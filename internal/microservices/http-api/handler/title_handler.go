package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// RegisterRoutes mounts /titles. The nested review routes share the
// :title_id parameter and are mounted by ReviewHandler.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("", middleware.AdminOrReadOnly())
	g.GET("/", h.List)
	g.POST("/", h.Create)
	g.GET("/:title_id/", h.Get)
	g.PATCH("/:title_id/", h.Update)
	g.DELETE("/:title_id/", h.Delete)
	g.PUT("/:title_id/", methodNotAllowed)
}

// List handles GET /titles/ with name, category, genre, year and ordering
// filters.
func (h *TitleHandler) List(c *gin.Context) {
	q := c.Request.URL.Query()
	filter, err := service.ParseTitleFilter(q)
	if err != nil {
		writeError(c, err)
		return
	}
	page := dto.ParsePage(q)

	titles, total, err := h.svc.List(c.Request.Context(), filter, page)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		resp = append(resp, dto.FromModelToTitleResponse(&titles[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, requestURL(c)))
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "title_id")
	if err != nil {
		writeError(c, err)
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(t))
}

// Create responds with the write representation: genre and category slugs.
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleWriteResponse(t))
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "title_id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req dto.UpdateTitleRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleWriteResponse(t))
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "title_id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
