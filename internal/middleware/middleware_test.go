package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSQL struct{ err error }

func (f fakeSQL) Ping(context.Context) error { return f.err }
func (f fakeSQL) GetStats() sql.DBStats { return sql.DBStats{MaxOpenConnections: 1, OpenConnections: 1} }

type fakeRedis struct {
	err      error
	sessions int
}

func (f fakeRedis) Ping(context.Context) error { return f.err }
func (f fakeRedis) CountKeys(_ context.Context, pattern string) (int, error) {
	if pattern != "session:*" {
		return 0, errors.New("unexpected pattern " + pattern)
	}
	return f.sessions, nil
}

func healthResponse(t *testing.T, h *HealthChecker) (int, map[string]interface{}) {
	router := gin.New()
	router.GET("/health", h.HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthCheck_Healthy(t *testing.T) {
	code, body := healthResponse(t, NewHealthChecker(fakeSQL{}, "sqlite", fakeRedis{sessions: 2}, zap.NewNop()))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])

	services := body["services"].(map[string]interface{})
	assert.Equal(t, "sqlite", services["database"].(map[string]interface{})["driver"])
	assert.Equal(t, float64(2), services["redis"].(map[string]interface{})["active_sessions"])
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	for name, h := range map[string]*HealthChecker{
		"database": NewHealthChecker(fakeSQL{err: errors.New("down")}, "postgres", fakeRedis{}, zap.NewNop()),
		"redis":    NewHealthChecker(fakeSQL{}, "postgres", fakeRedis{err: errors.New("down")}, zap.NewNop()),
	} {
		t.Run(name, func(t *testing.T) {
			code, body := healthResponse(t, h)
			assert.Equal(t, http.StatusServiceUnavailable, code)
			assert.Equal(t, "unhealthy", body["status"])
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(requestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
}

func TestRequireSession_StoreFailureIs500(t *testing.T) {
	router := gin.New()
	router.GET("/p", RequireSession(authFunc(func(context.Context, string) (string, error) {
		return "", errors.New("redis: connection refused")
	}), "pallet_session", zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type authFunc func(ctx context.Context, raw string) (string, error)

func (f authFunc) Authenticate(ctx context.Context, raw string) (string, error) { return f(ctx, raw) }
