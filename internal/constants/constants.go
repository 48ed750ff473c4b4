package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout bounds the CLI's server version probe.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are disabled unless RetryMax is configured.
const (
	// DefaultRetryMax is the retry count used by the CLI when --retries is given without a value.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Circuit breaker defaults.
const (
	// BreakerMinRequests is the number of requests observed before the breaker may trip.
	BreakerMinRequests = 5

	// BreakerFailureRatio trips the breaker once this share of requests failed.
	BreakerFailureRatio = 0.5

	// BreakerInterval is the cyclic period after which closed-state counts reset.
	BreakerInterval = 60 * time.Second

	// BreakerOpenTimeout is how long the breaker stays open before probing again.
	BreakerOpenTimeout = 30 * time.Second
)

// Pagination.
const (
	// DefaultResolvePageSize is the page size used when scanning listings for a single item.
	DefaultResolvePageSize = 20

	// MaxPageSize is the largest per_page value the remote API honours.
	MaxPageSize = 100

	// FirstPage is the index of the first page; pages are 1-based.
	FirstPage = 1
)

// Remote API.
const (
	// DefaultHostname is used when no GitLab host is configured.
	DefaultHostname = "gitlab.com"

	// DefaultAPIVersion is the REST API version prefix.
	DefaultAPIVersion = "v4"

	// APIPathPrefix is prepended to the version, e.g. /api/v4.
	APIPathPrefix = "/api/"
)

// Query parameter names for offset pagination.
const (
	// PageParam selects the page.
	PageParam = "page"

	// PerPageParam selects the page size.
	PerPageParam = "per_page"
)

// Header names.
const (
	// HeaderPrivateToken carries a personal access token.
	HeaderPrivateToken = "PRIVATE-TOKEN"

	// HeaderJobToken carries a CI job token.
	HeaderJobToken = "JOB-TOKEN"

	// HeaderAuthorization carries an OAuth2 bearer token.
	HeaderAuthorization = "Authorization"

	// HeaderRequestID correlates client logs with server logs.
	HeaderRequestID = "X-Request-Id"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "gitlab-client-go"
)

// Environment variables.
const (
	// EnvHostname names the GitLab host.
	EnvHostname = "GITLAB_HOSTNAME"

	// EnvToken holds the access token.
	EnvToken = "GITLAB_TOKEN"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// DateFormat is used for dates in tables.
	DateFormat = "2006-01-02"

	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2
)
