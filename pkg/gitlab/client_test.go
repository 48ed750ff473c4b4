package gitlab_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *gitlab.Config
		wantErr error
	}{
		{name: "nil config", config: nil, wantErr: gitlab.ErrConfigRequired},
		{name: "missing base URL", config: &gitlab.Config{}, wantErr: gitlab.ErrInvalidConfig},
		{name: "not a URL", config: &gitlab.Config{BaseURL: "gitlab"}, wantErr: gitlab.ErrInvalidConfig},
		{
			name:    "unknown token type",
			config:  &gitlab.Config{BaseURL: "https://gitlab.com", TokenType: "basic"},
			wantErr: gitlab.ErrInvalidConfig,
		},
		{
			name:    "bad api version",
			config:  &gitlab.Config{BaseURL: "https://gitlab.com", APIVersion: "4"},
			wantErr: gitlab.ErrInvalidConfig,
		},
		{
			name:    "resolve page size above the maximum",
			config:  &gitlab.Config{BaseURL: "https://gitlab.com", ResolvePageSize: 500},
			wantErr: gitlab.ErrInvalidConfig,
		},
		{
			name:    "negative retries",
			config:  &gitlab.Config{BaseURL: "https://gitlab.com", RetryMax: -1},
			wantErr: gitlab.ErrInvalidConfig,
		},
		{name: "minimal", config: &gitlab.Config{BaseURL: "https://gitlab.com"}},
		{
			name: "full",
			config: &gitlab.Config{
				BaseURL:           "https://gitlab.example.com",
				Token:             "glpat-test",
				TokenType:         gitlab.TokenTypeJob,
				APIVersion:        "v4",
				RetryMax:          3,
				RateLimit:         5,
				CircuitBreaker:    true,
				MetricsRegisterer: prometheus.NewRegistry(),
				ResolvePageSize:   100,
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.config.Validate()
			if testCase.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}
