package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentledger/internal/pkg/charts"
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
	protected.GET("/dashboard", h.Summary)
	protected.GET("/dashboard/trends", h.Trends)
	protected.GET("/charts/locations", h.LocationSeries)
}

// Summary handles GET /dashboard?start&end.
func (h *Handler) Summary(c *gin.Context) {
	var issues []validator.Issue

	start, err := optionalTime(c.Query("start"), utils.ParseDate)
	if err != nil {
		issues = append(issues, validator.Issue{Field: "start", Rule: "date", Message: "must be a valid date"})
	}
	end, err := optionalTime(c.Query("end"), utils.ParseRangeEnd)
	if err != nil {
		issues = append(issues, validator.Issue{Field: "end", Rule: "date", Message: "must be a valid date"})
	}
	if issues != nil {
		response.ValidationFailed(c, issues)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), c.GetInt64("user_id"), start, end)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			response.ValidationFailed(c, []validator.Issue{{Field: "start", Rule: "ltefield", Message: "must not be after end"}})
			return
		}
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) Trends(c *gin.Context) {
	trends, err := h.service.Trends(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, trends)
}

// LocationSeries handles GET /charts/locations?groupBy=month|year&assetId=.
func (h *Handler) LocationSeries(c *gin.Context) {
	groupBy, err := charts.ParseGroupBy(c.Query("groupBy"))
	if err != nil {
		response.ValidationFailed(c, []validator.Issue{{Field: "groupBy", Rule: "oneof", Message: err.Error()}})
		return
	}

	var assetID *int64
	if raw := c.Query("assetId"); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			response.InvalidID(c)
			return
		}
		assetID = &id
	}

	series, err := h.service.LocationSeries(c.Request.Context(), groupBy, assetID)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, series)
}

func optionalTime(raw string, parse func(string) (time.Time, error)) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
