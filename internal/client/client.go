package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/gitlab-client/internal/auth"
	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// Client implements the gitlab.Client interface.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	logger          gitlab.Logger
	debug           bool
	resolvePageSize int

	// Resource clients
	groups        *GroupsClient
	projects      *ProjectsClient
	issues        *IssuesClient
	mergeRequests *MergeRequestsClient
}

// createAuthorizer returns nil when no token is configured, so requests go
// out unauthenticated.
func createAuthorizer(config *gitlab.Config) auth.Authorizer {
	if config.Token == "" {
		return nil
	}

	return auth.NewTokenManager(config.Token, config.TokenType)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *gitlab.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.RateLimit > 0 {
		httpOpts = append(httpOpts, http.WithRateLimit(config.RateLimit, config.RateBurst))
	}

	if config.CircuitBreaker {
		httpOpts = append(httpOpts, http.WithCircuitBreaker(config.BaseURL))
	}

	if config.MetricsRegisterer != nil {
		httpOpts = append(httpOpts, http.WithMetrics(config.MetricsRegisterer))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, http.WithInsecureSkipVerify())
	}

	return httpOpts
}

// apiURL returns the API root for config, e.g. https://gitlab.com/api/v4.
func apiURL(config *gitlab.Config) string {
	version := config.APIVersion
	if version == "" {
		version = constants.DefaultAPIVersion
	}

	return config.BaseURL + constants.APIPathPrefix + version
}

// New creates a GitLab API client. config.BaseURL must already be
// normalized; glclient.New does that for callers.
func New(ctx context.Context, config *gitlab.Config) (*Client, error) {
	if config == nil {
		return nil, gitlab.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, gitlab.ErrAPIEndpointRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(apiURL(config), createAuthorizer(config), createHTTPClientOptions(config)...)

	resolvePageSize := config.ResolvePageSize
	if resolvePageSize == 0 {
		resolvePageSize = constants.DefaultResolvePageSize
	}

	client := &Client{
		httpClient:      httpClient,
		baseURL:         config.BaseURL,
		logger:          config.Logger,
		debug:           config.Debug,
		resolvePageSize: resolvePageSize,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.groups = NewGroupsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.issues = NewIssuesClient(c.httpClient)
	c.mergeRequests = NewMergeRequestsClient(c.httpClient)
}

// APIURL returns the API root requests are sent to.
func (c *Client) APIURL() string {
	return c.httpClient.BaseURL()
}

// Version implements gitlab.Client.Version.
func (c *Client) Version(ctx context.Context) (*gitlab.Version, error) {
	resp, err := c.httpClient.Get(ctx, "version", nil)
	if err != nil {
		return nil, fmt.Errorf("getting version: %w", err)
	}

	var version gitlab.Version

	err = json.Unmarshal(resp.Body, &version)
	if err != nil {
		return nil, fmt.Errorf("parsing version response: %w", err)
	}

	return &version, nil
}

// Groups implements gitlab.Client.Groups.
func (c *Client) Groups() gitlab.GroupsClient {
	return c.groups
}

// Projects implements gitlab.Client.Projects.
func (c *Client) Projects() gitlab.ProjectsClient {
	return c.projects
}

// Issues implements gitlab.Client.Issues.
func (c *Client) Issues() gitlab.IssuesClient {
	return c.issues
}

// MergeRequests implements gitlab.Client.MergeRequests.
func (c *Client) MergeRequests() gitlab.MergeRequestsClient {
	return c.mergeRequests
}

var _ gitlab.Client = (*Client)(nil)
