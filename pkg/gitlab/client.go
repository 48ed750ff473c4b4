package gitlab

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

// GroupsClient reads groups.
type GroupsClient interface {
	List(listing GroupsListing) Lister[Group]
	Owned() Lister[Group]
	Get(ctx context.Context, id int) (*Group, error)
	Projects(listing GroupProjectsListing) Lister[Project]
	Issues(listing GroupIssuesListing) Lister[Issue]
}

// ProjectsClient reads projects and their events, hooks and branches.
type ProjectsClient interface {
	List(listing ProjectsListing) Lister[Project]
	Search(listing ProjectSearchListing) Lister[Project]
	Get(ctx context.Context, project ProjectID) (*Project, error)
	Events(project ProjectID) Lister[Event]
	Hooks(project ProjectID) Lister[Hook]
	GetHook(ctx context.Context, project ProjectID, hookID int) (*Hook, error)
	Branches(project ProjectID) Lister[Branch]
	GetBranch(ctx context.Context, project ProjectID, branch string) (*Branch, error)
}

// IssuesClient reads issues.
type IssuesClient interface {
	List(listing IssuesListing) Lister[Issue]
	ListForProject(listing ProjectIssuesListing) Lister[Issue]
	Get(ctx context.Context, project ProjectID, issueID int) (*Issue, error)
}

// MergeRequestsClient reads merge requests.
type MergeRequestsClient interface {
	List(listing MergeRequestsListing) Lister[MergeRequest]
	Get(ctx context.Context, project ProjectID, mergeRequestID int) (*MergeRequest, error)
}

// Resolvers look up single items by keys the API cannot filter on exactly.
// found is false with a nil error when nothing matched; a failed project
// lookup stops issue and merge request resolution.
type Resolvers interface {
	ResolveProject(ctx context.Context, namespace, name string) (*Project, bool, error)
	ResolveIssue(ctx context.Context, namespace, name string, iid int) (*Issue, bool, error)
	ResolveMergeRequest(ctx context.Context, namespace, name string, iid int) (*MergeRequest, bool, error)
}

type Client interface {
	Groups() GroupsClient
	Projects() ProjectsClient
	Issues() IssuesClient
	MergeRequests() MergeRequestsClient
	Resolvers

	// Version returns the server version (GET version).
	Version(ctx context.Context) (*Version, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenType selects how the token is sent.
type TokenType string

const (
	// TokenTypePrivate sends a personal access token in PRIVATE-TOKEN.
	TokenTypePrivate TokenType = "private"
	// TokenTypeOAuth sends an OAuth2 access token as a Bearer Authorization header.
	TokenTypeOAuth TokenType = "oauth"
	// TokenTypeJob sends a CI job token in JOB-TOKEN.
	TokenTypeJob TokenType = "job"
)

// Config represents client configuration for building a gitlab.Client.
//
// # Transport behaviour
//
// By default every call performs exactly one HTTP request. Retries
// (RetryMax), client-side rate limiting (RateLimit) and the circuit breaker
// (CircuitBreaker) are opt-in. Per-request deadlines are controlled through
// the context passed to each call.
type Config struct {
	// BaseURL: GitLab instance URL (e.g. "https://gitlab.example.com").
	// glclient.New adds "https://" when no scheme is present and strips a
	// trailing slash or /api/vN suffix.
	BaseURL string `validate:"required,url"`

	// Token: access token; empty sends unauthenticated requests.
	Token string
	// TokenType: how Token is sent; defaults to TokenTypePrivate.
	TokenType TokenType `validate:"omitempty,oneof=private oauth job"`
	// APIVersion: REST API version; defaults to "v4".
	APIVersion string `validate:"omitempty,startswith=v"`

	// HTTPTimeout: overall timeout of one HTTP request including body read.
	HTTPTimeout time.Duration `validate:"gte=0"`
	// RetryMax: retries for 5xx, 429 and connection errors. Zero disables retries.
	RetryMax int `validate:"gte=0"`
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration `validate:"gte=0"`
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration `validate:"gte=0"`

	// RateLimit: requests per second allowed by the client; zero disables limiting.
	RateLimit float64 `validate:"gte=0"`
	// RateBurst: bucket size of the limiter; defaults to 1.
	RateBurst int `validate:"gte=0"`

	// CircuitBreaker: fail fast with ErrCircuitOpen after repeated 5xx or
	// connection failures.
	CircuitBreaker bool

	// MetricsRegisterer: when set, request counters and latency histograms
	// are registered on it.
	MetricsRegisterer prometheus.Registerer `validate:"-"`

	// ResolvePageSize: page size used by the Resolvers; defaults to 20.
	ResolvePageSize int `validate:"gte=0,lte=100"`

	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger `validate:"-"`
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// SkipTLSVerify: disables certificate verification; only honoured when
	// GITLAB_CLIENT_DEV_MODE is "true" or "1".
	SkipTLSVerify bool
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	err := validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
