package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"lrbook/internal/domain"
	"lrbook/internal/pkg/jwt"
)

type stubAgents map[string]*domain.Agent

func (s stubAgents) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, errors.New("not found")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func identityRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/protected", func(c *gin.Context) {
		id, _ := Identity(c)
		c.JSON(http.StatusOK, gin.H{
			"agent_id": id.ID,
			"role":     id.Role,
			"location": id.Location,
		})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, _ := jwtService.GenerateToken("agent-42", "agent", "Asha", "Chennai")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	identityRouter(JWTAuth(jwtService, nil)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agent-42")
	assert.Contains(t, w.Body.String(), "Chennai")
}

func TestJWTAuth_ReloadsAgent(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken("agent-1", "agent", "Asha", "")
	agents := stubAgents{"agent-1": {ID: "agent-1", Role: domain.RoleAgent, Location: "Madurai", IsActive: true}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	identityRouter(JWTAuth(jwtService, agents)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Madurai")
}

func TestJWTAuth_InactiveAgent(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken("agent-1", "agent", "", "")
	agents := stubAgents{"agent-1": {ID: "agent-1", Role: domain.RoleAgent, IsActive: false}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	identityRouter(JWTAuth(jwtService, agents)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AGENT_INACTIVE")
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"no token", "", "AUTH_HEADER_MISSING"},
		{"wrong format", "Basic dGVzdA==", "INVALID_AUTH_FORMAT"},
		{"invalid token", "Bearer invalid-jwt-here", "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JWTAuth(jwtService, nil))
			router.GET("/protected", func(c *gin.Context) {
				t.Fatal("handler should not be reached")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestJWTAuth_WebsocketQueryToken(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken("agent-7", "agent", "", "")
	router := identityRouter(JWTAuth(jwtService, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected?token="+token, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "query token only accepted on upgrade")

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agent-7")
}

func TestAdminOnly(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	router := identityRouter(JWTAuth(jwtService, nil), AdminOnly())

	agentToken, _ := jwtService.GenerateToken("a", "agent", "", "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+agentToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, _ := jwtService.GenerateToken("b", "admin", "", "")
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	router := gin.New()
	router.Use(ErrorLogger())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
}
