// Package glclient provides the main entry point for creating GitLab API clients
package glclient

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// devModeEnv must be "true" or "1" for SkipTLSVerify to be honoured.
const devModeEnv = "GITLAB_CLIENT_DEV_MODE"

var apiSuffix = regexp.MustCompile(`/api/v\d+$`)

// New creates a new GitLab API client. BaseURL may be a bare host name
// (gitlab.example.com), a URL, or an API root (https://gitlab.example.com/api/v4).
func New(ctx context.Context, config *gitlab.Config) (gitlab.Client, error) {
	if config == nil {
		return nil, gitlab.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, gitlab.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.BaseURL = NormalizeBaseURL(config.BaseURL)

	if normalized.SkipTLSVerify && !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set %s=true)", gitlab.ErrSkipTLSOnlyInDev, devModeEnv)
	}

	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NormalizeBaseURL trims trailing slashes, adds https:// when no scheme is
// given and strips an /api/vN suffix.
func NormalizeBaseURL(endpoint string) string {
	baseURL := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return apiSuffix.ReplaceAllString(baseURL, "")
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(devModeEnv)

	return devMode == "true" || devMode == "1"
}

// NewWithEndpoint creates a new client with just an endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (gitlab.Client, error) {
	return New(ctx, &gitlab.Config{
		BaseURL: endpoint,
	})
}

// NewWithToken creates a new client with an endpoint and a personal access token.
func NewWithToken(ctx context.Context, endpoint, token string) (gitlab.Client, error) {
	return New(ctx, &gitlab.Config{
		BaseURL: endpoint,
		Token:   token,
	})
}

// NewFromEnv creates a client from GITLAB_HOSTNAME (default gitlab.com)
// and GITLAB_TOKEN.
func NewFromEnv(ctx context.Context) (gitlab.Client, error) {
	hostname := os.Getenv(constants.EnvHostname)
	if hostname == "" {
		hostname = constants.DefaultHostname
	}

	return NewWithToken(ctx, hostname, os.Getenv(constants.EnvToken))
}
