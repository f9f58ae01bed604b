package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/expense-tracker/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestRouter(tokens *services.TokenService) *gin.Engine {
	r := gin.New()
	auth := NewAuthMiddleware(tokens)
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "username": GetUsername(c)})
	})
	return r
}

func doRequest(r http.Handler, method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["message"]
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r := newAuthTestRouter(services.NewTokenService("secret", time.Hour))

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token"} {
		w := doRequest(r, http.MethodGet, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "Unauthorized", messageOf(t, w), "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := newAuthTestRouter(services.NewTokenService("secret", time.Hour))

	foreign, err := services.NewTokenService("other-secret", time.Hour).GenerateToken(1, "a")
	require.NoError(t, err)

	for _, token := range []string{"garbage", foreign} {
		w := doRequest(r, http.MethodGet, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid Token", messageOf(t, w))
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	r := newAuthTestRouter(tokens)

	token, err := tokens.GenerateToken(42, "alice")
	require.NoError(t, err)

	for _, scheme := range []string{"Bearer", "bearer"} {
		w := doRequest(r, http.MethodGet, "/me", scheme+" "+token)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, uint(42), body.ID)
		assert.Equal(t, "alice", body.Username)
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Zero(t, GetUserID(c))
	assert.Empty(t, GetUsername(c))
}

func TestCORS(t *testing.T) {
	handled := false
	r := gin.New()
	r.Use(CORS("*"))
	r.Any("/api/expenses", func(c *gin.Context) {
		handled = true
		c.Status(http.StatusOK)
	})

	w := doRequest(r, http.MethodOptions, "/api/expenses", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.False(t, handled)

	w = doRequest(r, http.MethodGet, "/api/expenses", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, handled)
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("this body is too large"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/fail", func(c *gin.Context) {
		c.Error(io.ErrUnexpectedEOF)
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", w.Body.String())
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"path":"/ping"`)

	w = doRequest(r, http.MethodGet, "/ping", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	buf.Reset()
	doRequest(r, http.MethodGet, "/fail", "")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), "unexpected EOF")
}

func TestMetrics(t *testing.T) {
	metrics := NewMetrics()
	r := gin.New()
	r.Use(metrics.Middleware())
	r.GET("/expenses/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	doRequest(r, http.MethodGet, "/expenses/1", "")
	doRequest(r, http.MethodGet, "/expenses/2", "")
	doRequest(r, http.MethodGet, "/nowhere", "")

	w := doRequest(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `expense_tracker_http_requests_total{method="GET",route="/expenses/:id",status="404"} 2`)
	assert.Contains(t, body, `expense_tracker_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, "expense_tracker_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
