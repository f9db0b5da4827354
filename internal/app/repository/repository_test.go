package repository

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]interface{}
}

// fakeAPI records every request and answers from a route table keyed by "METHOD path"
type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]string
	status   map[string]int
}

func (f *fakeAPI) handle(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = body
	f.status[route] = status
}

func (f *fakeAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	rec := recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
	}
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

func setupRepositoryTest(t *testing.T) (*fakeAPI, *adminapi.Client, *adminapi.Session) {
	api := &fakeAPI{routes: map[string]string{}, status: map[string]int{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := adminapi.NewClient(adminapi.Config{BaseURL: srv.URL + "/api"})
	require.NoError(t, err)
	return api, client, adminapi.NewSession("sid-1", "tok")
}
