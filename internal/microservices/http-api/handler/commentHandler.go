package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment routes under a /titles group
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/:title_id/reviews/:review_id/comments")
	{
		comments.GET("/", h.List)
		comments.POST("/", h.Create)
		comments.GET("/:comment_id/", h.Get)
		comments.PATCH("/:comment_id/", h.Update)
		comments.DELETE("/:comment_id/", h.Delete)
		comments.PUT("/:comment_id/", middleware.RequireAuthenticated(), methodNotAllowed)
	}
}

// List returns the comments of a review, newest first
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	page := dto.ParsePage(c.Request.URL.Query())

	comments, total, err := h.commentService.List(c.Request.Context(), titleID, reviewID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, dto.FromModelToCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, requestURL(c)))
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var req dto.CreateCommentDTO
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var req dto.UpdateCommentDTO
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, commentID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, commentID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID int64, err error) {
	if titleID, reviewID, err = reviewPath(c); err != nil {
		return 0, 0, 0, err
	}
	if commentID, err = pathID(c, "comment_id"); err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
