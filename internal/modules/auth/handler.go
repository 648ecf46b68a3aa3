package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentledger/internal/pkg/response"
	"rentledger/internal/pkg/validator"
)

// Handler manages the HTTP side of sessions
type Handler struct {
	service *Service
	cookie  SessionCookie
}

func NewHandler(service *Service, cookie SessionCookie) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// RegisterPublicRoutes mounts login and logout; loginGuard is applied to login only.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, loginGuard ...gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", append(loginGuard, h.Login)...)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Internal(c, err)
		return
	}

	h.cookie.Set(c, token)
	response.Success(c, http.StatusOK, gin.H{"user": NewUserResponse(user)})
}

func (h *Handler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": NewUserResponse(user)})
}
