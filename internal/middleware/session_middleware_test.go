package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emra/admin-console/internal/session"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "admin_session"

type fakeResolver struct {
	tokens map[string]string
	err    error
}

func (f fakeResolver) Resolve(_ context.Context, id string) (*adminapi.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	token, ok := f.tokens[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return adminapi.NewSession(id, token), nil
}

func setupMiddlewareTest(resolver SessionResolver) (*gin.Engine, *SessionMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggingMiddleware())
	return router, NewSessionMiddleware(resolver, testCookie)
}

func TestRequireSession_Authenticated(t *testing.T) {
	router, sessions := setupMiddlewareTest(fakeResolver{tokens: map[string]string{"sid-1": "tok"}})
	router.GET("/products", sessions.RequireSession(), func(c *gin.Context) {
		sess, ok := GetSession(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": sess.ID(), "authenticated": sess.Authenticated()})
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"sid-1","authenticated":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequireSession_RedirectsToLogin(t *testing.T) {
	tests := []struct {
		name     string
		cookie   string
		resolver fakeResolver
	}{
		{name: "no cookie", resolver: fakeResolver{}},
		{name: "unknown session", cookie: "gone", resolver: fakeResolver{tokens: map[string]string{}}},
		{name: "store failure", cookie: "sid-1", resolver: fakeResolver{err: errors.New("redis down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, sessions := setupMiddlewareTest(tt.resolver)
			called := false
			router.GET("/orders", sessions.RequireSession(), func(c *gin.Context) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: testCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
		})
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	router, sessions := setupMiddlewareTest(fakeResolver{tokens: map[string]string{"sid-1": "tok"}})
	router.GET("/login", sessions.RedirectIfAuthenticated(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggingMiddleware_KeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggingMiddleware())
	router.GET("/health", func(c *gin.Context) {
		assert.NotNil(t, GetLoggerFromContext(c))
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
