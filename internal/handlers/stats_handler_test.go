package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"park-stats-api/internal/models"
	"park-stats-api/internal/services"
	"park-stats-api/internal/upstream"
	"park-stats-api/pkg/lambda"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// parkAPI fakes the upstream Park API with the given bodies per path
func parkAPI(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func repeatJSON(n int, elem string) string {
	return "[" + strings.TrimSuffix(strings.Repeat(elem+",", n), ",") + "]"
}

func liveParkAPI(t *testing.T) *httptest.Server {
	tasks := "[" + strings.Join([]string{
		strings.TrimSuffix(strings.Repeat(`{"status":"complete"},`, 200), ","),
		strings.TrimSuffix(strings.Repeat(`{"status":"completed"},`, 21), ","),
		strings.TrimSuffix(strings.Repeat(`{"status":"in_progress"},`, 79), ","),
	}, ",") + "]"

	return parkAPI(t, map[string]string{
		"/products": repeatJSON(36, `{"name":"widget"}`),
		"/tasks":    tasks,
		"/docs":     fmt.Sprintf(`{"routes":%s,"version":"v1.66.0"}`, repeatJSON(214, `{"path":"/x"}`)),
	})
}

func newStatsService(baseURL string) services.StatsService {
	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL: baseURL,
		Token:   "test-token",
		Timeout: time.Second,
	})
	return services.NewStatsService(client)
}

func newTestRouter(service services.StatsService) *gin.Engine {
	router := gin.New()
	SetupRoutes(router, &RouterConfig{StatsService: service})
	return router
}

func decodeStats(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))

	ts, ok := payload["timestamp"].(string)
	require.True(t, ok, "timestamp must be a string")
	_, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err, "timestamp must be ISO-8601")

	delete(payload, "timestamp")
	return payload
}

var expectedLive = map[string]any{
	"products":       float64(36),
	"tasksCompleted": float64(221),
	"totalTasks":     float64(300),
	"apiRoutes":      float64(214),
	"apiVersion":     "v1.66.0",
	"healthy":        true,
}

var expectedFallback = map[string]any{
	"products":       float64(36),
	"tasksCompleted": float64(221),
	"totalTasks":     float64(300),
	"apiRoutes":      float64(214),
	"apiVersion":     "v1.66.0",
	"healthy":        false,
	"error":          "Using fallback data",
}

func assertCORS(t *testing.T, headers func(string) string) {
	t.Helper()
	assert.Equal(t, "*", headers("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET", headers("Access-Control-Allow-Methods"))
}

func TestStatsHandler_GetStats(t *testing.T) {
	t.Run("LiveData", func(t *testing.T) {
		router := newTestRouter(newStatsService(liveParkAPI(t).URL))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, StatsPath, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assertCORS(t, w.Header().Get)
		assert.Equal(t, expectedLive, decodeStats(t, w.Body.Bytes()))
	})

	t.Run("UpstreamDown", func(t *testing.T) {
		down := httptest.NewServer(http.NotFoundHandler())
		down.Close()
		router := newTestRouter(newStatsService(down.URL))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, StatsPath, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assertCORS(t, w.Header().Get)
		assert.Equal(t, expectedFallback, decodeStats(t, w.Body.Bytes()))
	})

	t.Run("UpstreamNotFound", func(t *testing.T) {
		api := parkAPI(t, map[string]string{
			"/products": `[]`,
			"/tasks":    `[]`,
		})
		router := newTestRouter(newStatsService(api.URL))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, StatsPath, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, expectedFallback, decodeStats(t, w.Body.Bytes()))
	})

	t.Run("AnyMethodAccepted", func(t *testing.T) {
		router := newTestRouter(newStatsService(liveParkAPI(t).URL))

		for _, method := range []string{http.MethodPost, http.MethodOptions, http.MethodDelete} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(method, StatsPath+"?ignored=1", strings.NewReader(`{"x":1}`)))

			assert.Equal(t, http.StatusOK, w.Code, method)
			assert.Equal(t, expectedLive, decodeStats(t, w.Body.Bytes()), method)
		}
	})
}

func TestStatsHandler_HandleGet(t *testing.T) {
	t.Run("LiveData", func(t *testing.T) {
		handler := NewStatsHandler(newStatsService(liveParkAPI(t).URL))

		resp, err := handler.HandleGet(context.Background(), &lambda.Request{Method: http.MethodGet})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Headers["Content-Type"])
		assertCORS(t, func(key string) string { return resp.Headers[key] })
		assert.Equal(t, expectedLive, decodeStats(t, resp.Body))
	})

	t.Run("Fallback", func(t *testing.T) {
		api := parkAPI(t, map[string]string{
			"/products": `not json`,
			"/tasks":    `[]`,
			"/docs":     `{}`,
		})
		handler := NewStatsHandler(newStatsService(api.URL))

		resp, err := handler.HandleGet(context.Background(), &lambda.Request{Method: http.MethodGet})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assertCORS(t, func(key string) string { return resp.Headers[key] })
		assert.Equal(t, expectedFallback, decodeStats(t, resp.Body))
	})
}

func TestFallbackResponse(t *testing.T) {
	resp, err := FallbackResponse(errors.New("config unavailable"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertCORS(t, func(key string) string { return resp.Headers[key] })
	assert.Equal(t, expectedFallback, decodeStats(t, resp.Body))
}

func TestStatsResponse_NoErrorFieldWhenHealthy(t *testing.T) {
	resp, err := StatsResponse(&models.StatsResponse{Healthy: true, Timestamp: models.FormatTimestamp(time.Now())})
	require.NoError(t, err)

	assert.NotContains(t, string(resp.Body), `"error"`)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(newStatsService("http://127.0.0.1:1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "park-stats-api", payload["service"])
}
