//go:build integration

package integration

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
	"github.com/fivetwenty-io/gitlab-client/pkg/glclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Hostname  string
	Token     string
	Namespace string
	Project   string
	IssueIID  int
	GlapiPath string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	iid, _ := strconv.Atoi(os.Getenv("GITLAB_TEST_ISSUE_IID"))

	return &TestConfig{
		Hostname:  os.Getenv("GITLAB_HOSTNAME"),
		Token:     os.Getenv("GITLAB_TOKEN"),
		Namespace: os.Getenv("GITLAB_TEST_NAMESPACE"),
		Project:   os.Getenv("GITLAB_TEST_PROJECT"),
		IssueIID:  iid,
		GlapiPath: getGlapiPath(),
		Verbose:   os.Getenv("GLAPI_VERBOSE") == "true",
	}
}

// getGlapiPath determines the path to the glapi binary
func getGlapiPath() string {
	if path := os.Getenv("GLAPI_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../glapi",
		"./glapi",
		"../glapi",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "glapi"
}

// SkipIfMissingConfig skips the test unless a token and a target project are configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" {
		t.Skip("GITLAB_TOKEN not set, skipping integration test")
	}

	if config.Namespace == "" || config.Project == "" {
		t.Skip("GITLAB_TEST_NAMESPACE or GITLAB_TEST_PROJECT not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips CLI tests when no glapi binary is available.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.GlapiPath); err != nil {
		t.Skipf("glapi binary not found at %s, skipping integration test", config.GlapiPath)
	}
}

// NewClient builds a client for the configured instance.
func (config *TestConfig) NewClient(t *testing.T) gitlab.Client {
	t.Helper()

	hostname := config.Hostname
	if hostname == "" {
		hostname = "gitlab.com"
	}

	client, err := glclient.NewWithToken(context.Background(), hostname, config.Token)
	require.NoError(t, err)

	return client
}

// CommandRunner provides utilities for running glapi commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a glapi command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.GlapiPath, args...) // #nosec G204 -- test binary
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.GlapiPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}
