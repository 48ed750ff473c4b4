package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// recorder counts and remembers the requests a test server received.
type recorder struct {
	mu       sync.Mutex
	requests []string
}

func (r *recorder) add(request *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := request.URL.EscapedPath()
	if request.URL.RawQuery != "" {
		target += "?" + request.URL.RawQuery
	}

	r.requests = append(r.requests, target)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.requests...)
}

func (r *recorder) count() int {
	return len(r.all())
}

// newTestClient starts a server running handler and returns a client whose
// API root is server.URL/api/v4.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*client.Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		rec.add(request)
		handler(writer, request)
	}))
	t.Cleanup(server.Close)

	c, err := client.New(context.Background(), &gitlab.Config{BaseURL: server.URL, Token: "glpat-test"})
	require.NoError(t, err)

	return c, rec
}

func writeJSON(t *testing.T, writer http.ResponseWriter, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(writer).Encode(body))
}
