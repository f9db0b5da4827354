package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/internal/app/service"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/emra/admin-console/internal/session"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "admin_session"

type authEnv struct {
	api      *fakeAPI
	router   *gin.Engine
	sessions *session.Manager
}

// setupAuthControllerTest builds the real gate: memory store, manager and 401 hook
func setupAuthControllerTest(t *testing.T) *authEnv {
	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	manager := session.NewManager(session.NewMemoryStore(), time.Hour)
	client, err := adminapi.NewClient(adminapi.Config{BaseURL: srv.URL + "/api"},
		adminapi.WithUnauthorizedHandler(manager.HandleUnauthorized))
	require.NoError(t, err)

	authController := NewAuthController(service.NewAuthService(repository.NewAuthRepository(client)), manager, CookieConfig{Name: testCookie})
	gate := middleware.NewSessionMiddleware(manager, testCookie)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/login", gate.RedirectIfAuthenticated(), authController.LoginPage)
	router.POST("/login", authController.Login)
	router.POST("/logout", authController.Logout)
	router.GET("/me", gate.RequireSession(), authController.Me)

	return &authEnv{api: api, router: router, sessions: manager}
}

func (env *authEnv) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", testCookie)
	return nil
}

func TestAuthController_LoginSetsSessionCookie(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.api.handle("POST /api/admin/login", http.StatusOK, `{"data":{"token":"jwt-1","admin":{"id":"a1","username":"root"}}}`)

	w := env.do(http.MethodPost, "/login", `{"username":" root ","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	sess, err := env.sessions.Resolve(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", sess.Token())

	body := decodeBody(t, w)
	assert.Equal(t, "root", body["admin"].(map[string]interface{})["username"])
}

func TestAuthController_LoginFailureHidesDetails(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.api.handle("POST /api/admin/login", http.StatusUnauthorized, `{"message":"user root is locked"}`)

	for _, body := range []string{`{"username":"root","password":"bad"}`, `{"username":"","password":""}`, `not json`} {
		w := env.do(http.MethodPost, "/login", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, body)
		assert.JSONEq(t, `{"error":"AUTH_INVALID_CREDENTIALS","message":"Неверный логин или пароль"}`, w.Body.String(), body)
	}
}

func TestAuthController_LoginPageRedirectsLiveSession(t *testing.T) {
	env := setupAuthControllerTest(t)
	id, _, err := env.sessions.Create(context.Background(), "jwt-1")
	require.NoError(t, err)

	w := env.do(http.MethodGet, "/login", "", &http.Cookie{Name: testCookie, Value: id})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = env.do(http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_Logout(t *testing.T) {
	env := setupAuthControllerTest(t)
	id, _, err := env.sessions.Create(context.Background(), "jwt-1")
	require.NoError(t, err)

	w := env.do(http.MethodPost, "/logout", "", &http.Cookie{Name: testCookie, Value: id})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, sessionCookie(t, w).Value)

	_, err = env.sessions.Resolve(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestAuthController_UnauthorizedEndsSession(t *testing.T) {
	env := setupAuthControllerTest(t)
	env.api.handle("GET /api/admin/me", http.StatusUnauthorized, `{"message":"jwt expired"}`)
	id, _, err := env.sessions.Create(context.Background(), "jwt-1")
	require.NoError(t, err)

	w := env.do(http.MethodGet, "/me", "", &http.Cookie{Name: testCookie, Value: id})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	_, err = env.sessions.Resolve(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// the next request never reaches the API
	w = env.do(http.MethodGet, "/me", "", &http.Cookie{Name: testCookie, Value: id})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, env.api.calls(), 1)
}
