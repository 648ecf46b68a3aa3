package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentledger/internal/database/dbtest"
	"rentledger/internal/repository"
)

func doJSON(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var out map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr, out
}

func TestHandler_TemplateRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	user := dbtest.SeedUser(t, db, "owner@example.com")

	r := gin.New()
	protected := r.Group("/api")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Next()
	})
	NewHandler(NewService(repository.NewTemplateRepository(db), &recordingInvalidator{})).RegisterRoutes(protected)

	rr, body := doJSON(r, http.MethodPost, "/api/expenses/templates", map[string]any{"name": "Fuel", "defaultCost": "40"})
	require.Equal(t, http.StatusCreated, rr.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "40", data["defaultCost"])
	id := int64(data["id"].(float64))

	rr, body = doJSON(r, http.MethodPost, "/api/expenses/templates", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, body = doJSON(r, http.MethodPut, fmt.Sprintf("/api/expenses/templates/%d", id), map[string]any{"clearDefaultCost": true})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, body["data"].(map[string]any)["defaultCost"])

	rr, _ = doJSON(r, http.MethodGet, "/api/expenses/templates", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/expenses/templates/%d", id), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/expenses/templates/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = doJSON(r, http.MethodDelete, "/api/expenses/templates/zero", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
