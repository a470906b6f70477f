package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/99designs/keyring"

	"github.com/talentlms/talentlms-go/internal/config"
)

// testEnv holds the mock server a test's commands talk to.
type testEnv struct {
	server *httptest.Server
}

// setupTestEnvWithHandler starts a TLS server running handler and points
// every command at it:
//   - TALENTLMS_DOMAIN is the server's host:port and TALENTLMS_API_KEY is "test-key"
//   - the config file location is a missing file in a temp dir
//   - the keyring is empty and in memory
//   - listings are cached in a temp dir
func setupTestEnvWithHandler(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	for _, key := range []string{
		config.EnvRateLimit, config.EnvRatePercent, config.EnvTimeout,
		config.EnvRetryCount, config.EnvVerbose, config.EnvRedisURL,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv(config.EnvDomain, strings.TrimPrefix(server.URL, "https://"))
	t.Setenv("TALENTLMS_CONFIG", filepath.Join(t.TempDir(), "config.json"))
	withEmptyKeyring(t)

	origClient := httpClient
	httpClient = server.Client()
	t.Cleanup(func() { httpClient = origClient })

	dir := t.TempDir()
	origCacheDir := cacheDir
	cacheDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { cacheDir = origCacheDir })

	return &testEnv{server: server}
}

// withEmptyKeyring sets up an empty mock keyring for testing
func withEmptyKeyring(t *testing.T) keyring.Keyring {
	t.Helper()
	ring := keyring.NewArrayKeyring(nil)
	cleanup := config.SetOpenKeyring(func(keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	})
	t.Cleanup(cleanup)
	return ring
}

// runCmd executes the CLI with args and returns what it wrote.
func runCmd(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ctx := WithStreams(context.Background(), &Streams{
		Out:    &out,
		ErrOut: &errOut,
		In:     strings.NewReader(stdin),
	})
	err = Execute(ctx, args)
	return out.String(), errOut.String(), err
}

// jsonResponse creates an http.HandlerFunc that returns a JSON response with the given status and body.
func jsonResponse(statusCode int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = io.WriteString(w, body)
	}
}

// recordedRequest is what the route handler saw.
type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

// routeHandler routes requests by exact "METHOD PATH" and records every
// request it receives. Unknown routes get a 404 text body.
type routeHandler struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
}

func newRouteHandler() *routeHandler {
	return &routeHandler{routes: make(map[string]http.HandlerFunc)}
}

// On registers a handler for the given HTTP method and path.
func (rh *routeHandler) On(method, path string, handler http.HandlerFunc) *routeHandler {
	rh.routes[method+" "+path] = handler
	return rh
}

func (rh *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rh.mu.Lock()
	rh.requests = append(rh.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   string(body),
		Auth:   r.Header.Get("Authorization"),
	})
	handler, ok := rh.routes[r.Method+" "+r.URL.Path]
	rh.mu.Unlock()

	if ok {
		handler(w, r)
		return
	}
	http.NotFound(w, r)
}

// Requests returns a copy of the recorded requests.
func (rh *routeHandler) Requests() []recordedRequest {
	rh.mu.Lock()
	defer rh.mu.Unlock()
	return append([]recordedRequest(nil), rh.requests...)
}

// countPath returns how many requests hit path.
func (rh *routeHandler) countPath(path string) int {
	n := 0
	for _, r := range rh.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}
