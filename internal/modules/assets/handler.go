package assets

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
	assetGroup := protected.Group("/assets")
	{
		assetGroup.GET("", h.List)
		assetGroup.POST("", h.Create)
		assetGroup.GET("/:id", h.Get)
		assetGroup.PUT("/:id", h.Update)
		assetGroup.DELETE("/:id", h.Delete)
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

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	asset, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, asset)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.InvalidID(c)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	asset, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, asset)
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
	case errors.Is(err, ErrAssetNotFound):
		response.NotFound(c, "Asset not found")
	case errors.Is(err, utils.ErrInvalidDate):
		response.ValidationFailed(c, []validator.Issue{{Field: "purchaseDate", Rule: "date", Message: "must be a valid date"}})
	default:
		response.Internal(c, err)
	}
}
