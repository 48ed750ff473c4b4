package constants

import "errors"

// Configuration errors.
var (
	ErrNoTokenConfigured = errors.New("no token configured, set GITLAB_TOKEN or run 'glapi config set-token'")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrTokenNotSettable  = errors.New("token cannot be set via 'config set', use 'glapi config set-token'")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidScope        = errors.New("invalid project scope")
	ErrInvalidState        = errors.New("invalid state")
	ErrInvalidOrderBy      = errors.New("invalid order-by value")
	ErrInvalidSort         = errors.New("invalid sort direction")
	ErrInvalidVisibility   = errors.New("invalid visibility")
	ErrInvalidID           = errors.New("invalid numeric id")
)

// Resolution errors.
var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrIssueNotFound        = errors.New("issue not found")
	ErrMergeRequestNotFound = errors.New("merge request not found")
)
