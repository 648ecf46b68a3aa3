package expenses

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
	expenseGroup := protected.Group("/expenses")
	{
		expenseGroup.GET("", h.List)
		expenseGroup.POST("", h.Create)
		expenseGroup.GET("/:id", h.Get)
		expenseGroup.PUT("/:id", h.Update)
		expenseGroup.DELETE("/:id", h.Delete)
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

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	e, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.InvalidID(c)
		return
	}
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	e, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
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

func bindRequest(c *gin.Context) (ExpenseRequest, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c)
		return req, false
	}
	if issues := validator.Validate(req); issues != nil {
		response.ValidationFailed(c, issues)
		return req, false
	}
	return req, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		response.NotFound(c, "Expense not found")
	case errors.Is(err, ErrTemplateMissing):
		response.ValidationFailed(c, []validator.Issue{{Field: "templateId", Rule: "exists", Message: "template does not exist"}})
	case errors.Is(err, ErrLocationMissing):
		response.ValidationFailed(c, []validator.Issue{{Field: "locationId", Rule: "exists", Message: "location does not exist"}})
	case errors.Is(err, ErrNameMissing):
		response.ValidationFailed(c, []validator.Issue{{Field: "name", Rule: "required", Message: "name is required"}})
	case errors.Is(err, ErrCostMissing):
		response.ValidationFailed(c, []validator.Issue{{Field: "cost", Rule: "required", Message: "cost is required"}})
	default:
		response.Internal(c, err)
	}
}
