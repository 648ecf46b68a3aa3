package templates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentledger/internal/pkg/response"
	"rentledger/internal/pkg/utils"
	"rentledger/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the templates under /expenses/templates.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	templateGroup := protected.Group("/expenses/templates")
	{
		templateGroup.GET("", h.List)
		templateGroup.POST("", h.Create)
		templateGroup.PUT("/:id", h.Update)
		templateGroup.DELETE("/:id", h.Delete)
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
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	t, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.InvalidID(c)
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.InvalidID(c)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrTemplateNotFound) {
		response.NotFound(c, "Template not found")
		return
	}
	response.Internal(c, err)
}
