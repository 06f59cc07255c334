package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
)

// fakeAPI answers "METHOD path" routes and keeps the request order.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]func(r *http.Request) (int, string)
	log    []string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{routes: make(map[string]func(*http.Request) (int, string))}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeAPI) handle(route string, fn func(r *http.Request) (int, string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = fn
}

func (f *fakeAPI) static(route string, status int, body string) {
	f.handle(route, func(*http.Request) (int, string) { return status, body })
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	route := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.log = append(f.log, route)
	fn, ok := f.routes[route]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
		return
	}
	status, body := fn(r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeAPI) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.log...)
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = nil
}

func signedToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject}).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// newSignedInDashboard returns a dashboard whose token store already holds a
// session for subject.
func newSignedInDashboard(t *testing.T, baseURL, subject string) *Dashboard {
	t.Helper()
	d := newDashboard(t, baseURL)
	if err := d.tokens.Save(context.Background(), signedToken(t, subject)); err != nil {
		t.Fatalf("save token: %v", err)
	}
	return d
}

func newDashboard(t *testing.T, baseURL string) *Dashboard {
	t.Helper()
	d, err := New(Config{Gateway: gateway.Config{BaseURL: baseURL}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}
