package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/emra/admin-console/internal/middleware"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// fakeAPI stands in for the admin REST API; routes are keyed by "METHOD path"
type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]string
	status   map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: map[string]string{}, status: map[string]int{}}
}

func (f *fakeAPI) handle(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = body
	f.status[route] = status
}

// calls returns the recorded "METHOD path" sequence
func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	for i, r := range f.requests {
		out[i] = r.Method + " " + r.Path
	}
	return out
}

func (f *fakeAPI) bodies(route string) []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]interface{}
	for _, r := range f.requests {
		if r.Method+" "+r.Path == route {
			out = append(out, r.Body)
		}
	}
	return out
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	route := r.Method + " " + r.URL.Path
	body, ok := f.routes[route]
	status := f.status[route]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

type testEnv struct {
	api    *fakeAPI
	client *adminapi.Client
	router *gin.Engine
	sess   *adminapi.Session
}

// setupControllerTest wires a gin router whose requests all carry an authenticated session
func setupControllerTest(t *testing.T, opts ...adminapi.Option) *testEnv {
	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := adminapi.NewClient(adminapi.Config{BaseURL: srv.URL + "/api"}, opts...)
	require.NoError(t, err)

	sess := adminapi.NewSession("sid-1", "tok")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, sess)
		c.Next()
	})

	return &testEnv{api: api, client: client, router: router, sess: sess}
}

func (env *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
