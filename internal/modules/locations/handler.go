package locations

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	locationGroup := protected.Group("/locations")
	{
		locationGroup.GET("", h.List)
		locationGroup.POST("", h.Create)
		locationGroup.GET("/:id", h.Get)
		locationGroup.PUT("/:id", h.Update)
		locationGroup.DELETE("/:id", h.Delete)
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

func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.InvalidID(c)
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	l, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.InvalidID(c)
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	l, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
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
	switch {
	case errors.Is(err, ErrLocationNotFound):
		response.NotFound(c, "Location not found")
	case errors.Is(err, ErrAssetMissing):
		response.ValidationFailed(c, []validator.Issue{{Field: "assetId", Rule: "exists", Message: "asset does not exist"}})
	case errors.Is(err, utils.ErrInvalidDate):
		response.ValidationFailed(c, []validator.Issue{{Field: "date", Rule: "date", Message: "must be a valid date"}})
	default:
		response.Internal(c, err)
	}
}
