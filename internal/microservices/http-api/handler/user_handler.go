package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRoutes mounts /users. The me routes need any account, the rest an
// admin. me is registered before the username routes so it is never taken
// for a username.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/me", middleware.RequireAuthenticated())
	me.GET("/", h.GetMe)
	me.PATCH("/", h.UpdateMe)
	me.PUT("/", methodNotAllowed)
	me.DELETE("/", methodNotAllowed)

	admin := rg.Group("", middleware.RequireAdmin())
	admin.GET("/", h.List)
	admin.POST("/", h.Create)
	admin.GET("/:username/", h.Get)
	admin.PATCH("/:username/", h.Update)
	admin.DELETE("/:username/", h.Delete)
	admin.PUT("/:username/", methodNotAllowed)
}

func (h *UserHandler) List(c *gin.Context) {
	page := dto.ParsePage(c.Request.URL.Query())
	users, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.FromModelToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, requestURL(c)))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	user, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	user, err := h.svc.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("username")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe handles GET /users/me/
func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe handles PATCH /users/me/. Any role in the payload is ignored.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	user, err := h.svc.UpdateMe(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}
