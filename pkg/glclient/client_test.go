package glclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
	"github.com/fivetwenty-io/gitlab-client/pkg/glclient"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "gitlab.com", expected: "https://gitlab.com"},
		{input: "gitlab.example.com/", expected: "https://gitlab.example.com"},
		{input: "https://gitlab.example.com/api/v4", expected: "https://gitlab.example.com"},
		{input: "https://gitlab.example.com/api/v4/", expected: "https://gitlab.example.com"},
		{input: "http://localhost:8080", expected: "http://localhost:8080"},
		{input: "https://example.com/gitlab", expected: "https://example.com/gitlab"},
		{input: "  gitlab.com  ", expected: "https://gitlab.com"},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, glclient.NormalizeBaseURL(testCase.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := glclient.New(context.Background(), nil)
		require.ErrorIs(t, err, gitlab.ErrConfigRequired)
	})

	t.Run("requires endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := glclient.New(context.Background(), &gitlab.Config{})
		require.ErrorIs(t, err, gitlab.ErrAPIEndpointRequired)
	})

	t.Run("leaves the caller's config untouched", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v4/version", request.URL.Path)
			_, _ = writer.Write([]byte(`{"version":"17.0.0","revision":"deadbeef"}`))
		}))
		defer server.Close()

		config := &gitlab.Config{BaseURL: server.URL + "/api/v4/"}

		for range 2 {
			client, err := glclient.New(context.Background(), config)
			require.NoError(t, err)

			_, err = client.Version(context.Background())
			require.NoError(t, err)
		}

		assert.Equal(t, server.URL+"/api/v4/", config.BaseURL)
	})

	t.Run("wraps validation errors", func(t *testing.T) {
		t.Parallel()

		_, err := glclient.New(context.Background(), &gitlab.Config{BaseURL: "gitlab.com", ResolvePageSize: 1000})
		require.ErrorIs(t, err, gitlab.ErrInvalidConfig)
	})
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	client, err := glclient.NewWithEndpoint(context.Background(), "https://gitlab.example.com")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/version", request.URL.Path)
		assert.Equal(t, "glpat-test", request.Header.Get("PRIVATE-TOKEN"))
		_, _ = writer.Write([]byte(`{"version":"17.0.0","revision":"deadbeef"}`))
	}))
	defer server.Close()

	client, err := glclient.NewWithToken(context.Background(), server.URL+"/api/v4", "glpat-test")
	require.NoError(t, err)

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "17.0.0", version.Version)
}

func TestSkipTLSVerifyRequiresDevMode(t *testing.T) {
	t.Setenv("GITLAB_CLIENT_DEV_MODE", "")

	_, err := glclient.New(context.Background(), &gitlab.Config{BaseURL: "gitlab.example.com", SkipTLSVerify: true})
	require.ErrorIs(t, err, gitlab.ErrSkipTLSOnlyInDev)

	t.Setenv("GITLAB_CLIENT_DEV_MODE", "true")

	client, err := glclient.New(context.Background(), &gitlab.Config{BaseURL: "gitlab.example.com", SkipTLSVerify: true})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewFromEnv(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "env-token", request.Header.Get("PRIVATE-TOKEN"))
		_, _ = writer.Write([]byte(`{"version":"16.11.2"}`))
	}))
	defer server.Close()

	t.Setenv("GITLAB_HOSTNAME", server.URL)
	t.Setenv("GITLAB_TOKEN", "env-token")

	client, err := glclient.NewFromEnv(context.Background())
	require.NoError(t, err)

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "16.11.2", version.Version)
}
