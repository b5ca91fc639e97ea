package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/application/service"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/config"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/persistance/memory"
	"github.com/hapkiduki/loadplan-go/internal/interfaces/http/middleware"
)

func newRouter(rateLimit config.RateLimitConfig) http.Handler {
	return New(Deps{
		Server: config.ServerConfig{
			WriteTimeout:       5 * time.Second,
			MaxRequestSize:     1 << 16,
			CORSAllowedOrigins: []string{"*"},
		},
		RateLimit:  rateLimit,
		Version:    "test",
		StartedAt:  time.Now(),
		Calculator: service.NewCalculatorService(memory.NewCalculationRepository(10), nil),
	})
}

func TestRouter_Health(t *testing.T) {
	h := newRouter(config.RateLimitConfig{})

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "test", rec.Header().Get("X-API-Version"))
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	}
}

func TestRouter_CalculationRoundTrip(t *testing.T) {
	h := newRouter(config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/container-fit",
		strings.NewReader(`{"container_type":"20ft-high-cube","asset":{"length":4.5,"width":2.1,"height":2.5}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "trace-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.APIResponse[dto.ContainerFitResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Fits)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, "trace-1", resp.Meta.RequestID)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calculations", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestRouter_RejectsNonJSON(t *testing.T) {
	h := newRouter(config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/restraint", strings.NewReader("load_mass=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := newRouter(config.RateLimitConfig{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), dto.CodeNotFound)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	h := newRouter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_BodyTooLarge(t *testing.T) {
	h := newRouter(config.RateLimitConfig{})

	big := `{"label":"` + strings.Repeat("x", 1<<17) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/center-of-gravity", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
