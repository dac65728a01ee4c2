package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// RegisterRoutes registers review routes under a /titles group
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/:title_id/reviews")
	{
		reviews.GET("/", h.List)
		reviews.POST("/", h.Create)
		reviews.GET("/:review_id/", h.Get)
		reviews.PATCH("/:review_id/", h.Update)
		reviews.DELETE("/:review_id/", h.Delete)
		reviews.PUT("/:review_id/", middleware.RequireAuthenticated(), methodNotAllowed)
	}
}

// List returns the reviews of a title, newest first
// GET /titles/:title_id/reviews/
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		writeError(c, err)
		return
	}
	page := dto.ParsePage(c.Request.URL.Query())

	reviews, total, err := h.reviewService.List(c.Request.Context(), titleID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.FromModelToReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, requestURL(c)))
}

// Create posts the caller's review
// POST /titles/:title_id/reviews/
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req dto.CreateReviewDTO
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), middleware.CurrentUser(c), titleID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

// GET /titles/:title_id/reviews/:review_id/
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// PATCH /titles/:title_id/reviews/:review_id/
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var req dto.UpdateReviewDTO
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// DELETE /titles/:title_id/reviews/:review_id/
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reviewPath(c *gin.Context) (titleID, reviewID int64, err error) {
	if titleID, err = pathID(c, "title_id"); err != nil {
		return 0, 0, err
	}
	if reviewID, err = pathID(c, "review_id"); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
