package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentledger/internal/config"
	"rentledger/internal/database/dbtest"
	"rentledger/internal/domain"
)

const (
	testHost   = "ledger.test"
	testOrigin = "http://ledger.test"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type client struct {
	t       *testing.T
	app     *App
	session *http.Cookie
	origin  string
	referer string
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		JWTSecret:          "test-secret",
		SessionTTL:         time.Hour,
		CookieName:         "rl_session",
		CacheTTL:           time.Minute,
		LoginRateLimit:     3,
		SensitiveRateLimit: 5,
		RateLimitWindow:    10 * time.Minute,
	}
}

func setupApp(t *testing.T, cfg *config.Config) (*App, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{Email: "admin@example.com", PasswordHash: string(hash)}).Error)

	a := New(cfg, db, zap.NewNop())
	t.Cleanup(a.Close)
	return a, db
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Host = testHost
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}
	if c.session != nil {
		req.AddCookie(c.session)
	}

	rr := httptest.NewRecorder()
	c.app.Router.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func (c *client) login(password string) *httptest.ResponseRecorder {
	rr, _ := c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ADMIN@example.com", "password": password})
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "rl_session" && ck.Value != "" {
			c.session = ck
		}
	}
	return rr
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestLedgerFlow(t *testing.T) {
	a, _ := setupApp(t, testConfig())
	c := &client{t: t, app: a, origin: testOrigin}

	rr, _ := c.do(http.MethodGet, "/api/assets", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	require.Equal(t, http.StatusOK, c.login("secret123").Code)
	require.NotNil(t, c.session)

	rr, env := c.do(http.MethodPost, "/api/assets", map[string]any{"name": "Booth A", "purchasePrice": 1000})
	require.Equal(t, http.StatusCreated, rr.Code)
	booth := decode[struct {
		ID int64 `json:"id"`
	}](t, env)

	rr, _ = c.do(http.MethodPost, "/api/locations", map[string]any{"assetId": booth.ID, "price": 300})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = c.do(http.MethodPost, "/api/expenses", map[string]any{"name": "Insurance", "cost": 50})
	require.Equal(t, http.StatusCreated, rr.Code)

	type figures struct {
		Revenue  string `json:"revenue"`
		Expenses string `json:"expenses"`
		Net      string `json:"net"`
	}

	rr, env = c.do(http.MethodGet, fmt.Sprintf("/api/assets/%d", booth.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[figures](t, env)
	assert.Equal(t, "300", got.Revenue)
	assert.Equal(t, "50", got.Expenses)
	assert.Equal(t, "-750", got.Net)

	// warm the list cache, then check a second asset halves the global share
	rr, _ = c.do(http.MethodGet, "/api/assets", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, _ = c.do(http.MethodPost, "/api/assets", map[string]any{"name": "Tent", "purchasePrice": "200"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env = c.do(http.MethodGet, "/api/assets", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]struct {
		Name string `json:"name"`
		figures
	}](t, env)
	require.Len(t, list, 2)
	for _, item := range list {
		if item.Name == "Booth A" {
			assert.Equal(t, "25", item.Expenses)
			assert.Equal(t, "-725", item.Net)
		}
	}

	rr, env = c.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	dash := decode[struct {
		Revenue   string `json:"revenue"`
		Expenses  string `json:"expenses"`
		Net       string `json:"net"`
		Assets    int64  `json:"assets"`
		Purchases string `json:"purchases"`
	}](t, env)
	assert.Equal(t, "300", dash.Revenue)
	assert.Equal(t, "50", dash.Expenses)
	assert.Equal(t, "250", dash.Net)
	assert.Equal(t, int64(2), dash.Assets)
	assert.Equal(t, "1200", dash.Purchases)

	rr, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/assets/%d", booth.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, env = c.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	dash = decode[struct {
		Revenue   string `json:"revenue"`
		Expenses  string `json:"expenses"`
		Net       string `json:"net"`
		Assets    int64  `json:"assets"`
		Purchases string `json:"purchases"`
	}](t, env)
	assert.Equal(t, "0", dash.Revenue)
	assert.Equal(t, int64(1), dash.Assets)

	rr, _ = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestCrossOriginWritesRejected(t *testing.T) {
	a, _ := setupApp(t, testConfig())
	c := &client{t: t, app: a, origin: testOrigin}
	require.Equal(t, http.StatusOK, c.login("secret123").Code)

	// the CORS layer turns unknown origins away before the same-origin guard
	c.origin = "http://evil.example"
	rr, _ := c.do(http.MethodPost, "/api/assets", map[string]any{"name": "x", "purchasePrice": 1})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	c.origin = ""
	c.referer = "http://evil.example/assets"
	rr, env := c.do(http.MethodPost, "/api/assets", map[string]any{"name": "x", "purchasePrice": 1})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN_ORIGIN", env.Error.Code)

	rr, _ = c.do(http.MethodGet, "/api/assets", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginRateLimited(t *testing.T) {
	a, _ := setupApp(t, testConfig())
	c := &client{t: t, app: a, origin: testOrigin}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, c.login("wrong-password").Code)
	}
	rr := c.login("secret123")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestHealth(t *testing.T) {
	a, _ := setupApp(t, testConfig())
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
