package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bucketlist/internal/config"
	"bucketlist/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
	mr     *miniredis.Miniredis
}

func testConfig(env string) *config.Config {
	return &config.Config{
		Env:        env,
		Port:       "0",
		JWTSecret:  testSecret,
		TokenTTL:   24 * time.Hour,
		BcryptCost: 4,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithConfig(t, testConfig("test"))
}

func newTestEnvWithConfig(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	return &testEnv{server: s, app: s.App(), db: db, mr: mr}
}

func newRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// sendTo runs req against app and decodes a JSON response body into a map.
func sendTo(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	return sendTo(t, e.app, req)
}

// do sends body as JSON with an optional bearer token. body may be nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := newRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req)
}

// register creates an account and returns its bearer token.
func (e *testEnv) register(t *testing.T, email, username string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/v1/auth/register/", "", map[string]any{
		"email":      email,
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "s3cret",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	token, ok := body["auth_token"].(string)
	require.True(t, ok)
	return token
}

func (e *testEnv) createBucketlist(t *testing.T, token, title string) uint {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/v1/bucketlists/", token, map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	return uint(body["bucketlist"].(map[string]any)["id"].(float64))
}

func (e *testEnv) createItem(t *testing.T, token string, bucketlistID uint, name string) uint {
	t.Helper()
	status, body := e.do(t, http.MethodPost, fmt.Sprintf("/v1/bucketlists/%d/items/", bucketlistID), token, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	return uint(body["item"].(map[string]any)["id"].(float64))
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body["status"])

	status, body = e.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "healthy", checks["redis"])
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodGet, "/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "fail", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPanicIsRecovered(t *testing.T) {
	e := newTestEnv(t)
	e.app.Get("/boom", func(*fiber.Ctx) error { panic("boom") })

	status, body := e.do(t, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "Internal server error", body["message"])
}
