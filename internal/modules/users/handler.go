package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentledger/internal/pkg/response"
	"rentledger/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /users; createGuard and passwordGuard wrap the sensitive writes.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, createGuard, passwordGuard gin.HandlerFunc) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("", h.List)
		userGroup.POST("", createGuard, h.Create)
		userGroup.POST("/password", passwordGuard, h.ChangePassword)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(user))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), c.GetInt64("user_id"), req)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, ErrInvalidPassword), errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect")
	default:
		response.Internal(c, err)
	}
}
