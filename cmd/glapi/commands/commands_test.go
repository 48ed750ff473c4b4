package commands_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gitlab-client/cmd/glapi/commands"
	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// The commands read their settings from the global viper instance, so the
// tests in this package do not run in parallel.

type requestLog struct {
	mu       sync.Mutex
	requests []string
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()

	target := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	l.requests = append(l.requests, target)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.requests...)
}

func setup(t *testing.T, handler http.HandlerFunc) *requestLog {
	t.Helper()

	log := &requestLog{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	viper.Reset()
	viper.Set("api", server.URL)
	viper.Set("token", "glpat-test")
	viper.Set("output", constants.FormatJSON)
	t.Cleanup(viper.Reset)

	return log
}

func execute(args ...string) (string, error) {
	root := &cobra.Command{Use: "glapi", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(commands.NewVersionCommand("1.2.3", "abc", "today"))
	root.AddCommand(commands.NewConfigCommand())
	root.AddCommand(commands.NewGroupsCommand())
	root.AddCommand(commands.NewProjectsCommand())
	root.AddCommand(commands.NewIssuesCommand())
	root.AddCommand(commands.NewMergeRequestsCommand())

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func TestProjectsList_EncodesFilters(t *testing.T) {
	log := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []gitlab.Project{{ID: 1, PathWithNamespace: "group/proj"}})
	})

	out, err := execute("projects", "list", "--scope", "all", "--search", "group/proj", "--sort", "asc", "--archived=false")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/v4/projects/all?archived=false&sort=asc&search=group/proj"}, log.all())

	var projects []gitlab.Project
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "group/proj", projects[0].PathWithNamespace)
}

func TestProjectsGet_ByPath(t *testing.T) {
	log := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, gitlab.Project{ID: 9, Name: "proj"})
	})

	_, err := execute("projects", "get", "group/proj")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/v4/projects/group%2Fproj"}, log.all())
}

func TestGroupsList_InvalidSortSendsNothing(t *testing.T) {
	log := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []gitlab.Group{})
	})

	_, err := execute("groups", "list", "--sort", "sideways")
	require.Error(t, err)

	assert.ErrorIs(t, err, constants.ErrInvalidSort)
	assert.ErrorIs(t, err, gitlab.ErrUnknownEnumValue)
	assert.Empty(t, log.all())
}

func TestGroupsList_SkipGroups(t *testing.T) {
	log := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []gitlab.Group{{ID: 3, FullPath: "three"}})
	})

	_, err := execute("groups", "list", "--skip", "1,2", "--order-by", "path")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/v4/groups?skip_groups[]=1&skip_groups[]=2&order_by=path"}, log.all())
}

func TestMergeRequestsList_AllPages(t *testing.T) {
	log := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			writeJSON(w, []gitlab.MergeRequest{{ID: 1, IID: 1}, {ID: 2, IID: 2}})

			return
		}

		writeJSON(w, []gitlab.MergeRequest{{ID: 3, IID: 3}})
	})

	out, err := execute("merge-requests", "list", "42", "--state", "opened", "--all", "--per-page", "2")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/v4/projects/42/merge_requests?state=opened&page=1&per_page=2",
		"/api/v4/projects/42/merge_requests?state=opened&page=2&per_page=2",
	}, log.all())

	var mergeRequests []gitlab.MergeRequest
	require.NoError(t, json.Unmarshal([]byte(out), &mergeRequests))
	assert.Len(t, mergeRequests, 3)
}

func resolveBackend(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v4/projects":
		writeJSON(w, []gitlab.Project{{
			ID:        42,
			Path:      "proj",
			Name:      "proj",
			Namespace: gitlab.Namespace{Path: "ns", FullPath: "ns"},
		}})
	case "/api/v4/projects/42/issues":
		writeJSON(w, []gitlab.Issue{{ID: 1007, IID: 7, ProjectID: 42}})
	case "/api/v4/projects/42/merge_requests":
		writeJSON(w, []gitlab.MergeRequest{{ID: 2005, IID: 5, ProjectID: 42}})
	default:
		http.NotFound(w, r)
	}
}

func TestIssuesResolve(t *testing.T) {
	log := setup(t, resolveBackend)
	viper.Set("output", constants.FormatTable)

	out, err := execute("issues", "resolve", "-n", "ns", "-p", "proj", "-i", "7")
	require.NoError(t, err)

	assert.Equal(t, "Id for ns/proj#7: 1007\n", out)
	assert.Equal(t, []string{
		"/api/v4/projects?search=proj&page=1&per_page=20",
		"/api/v4/projects/42/issues?page=1&per_page=20",
	}, log.all())
}

func TestIssuesResolve_NotFound(t *testing.T) {
	setup(t, resolveBackend)

	_, err := execute("issues", "resolve", "-n", "ns", "-p", "proj", "-i", "8")
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrIssueNotFound)
	assert.Contains(t, err.Error(), "ns/proj#8")
}

func TestIssuesResolve_RequiresFlags(t *testing.T) {
	log := setup(t, resolveBackend)

	_, err := execute("issues", "resolve", "-n", "ns", "-p", "proj")
	require.Error(t, err)
	assert.Empty(t, log.all())
}

func TestMergeRequestsResolve(t *testing.T) {
	setup(t, resolveBackend)
	viper.Set("output", constants.FormatTable)

	out, err := execute("merge-requests", "resolve", "-n", "ns", "-p", "proj", "-i", "5")
	require.NoError(t, err)

	assert.Equal(t, "Id for ns/proj!5: 2005\n", out)
}

func TestProjectsResolve_Unauthorized(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"401 Unauthorized"}`))
	})

	_, err := execute("projects", "resolve", "ns", "proj")
	require.Error(t, err)
	assert.True(t, gitlab.IsUnauthorized(err))
}

func TestIssuesGet_InvalidID(t *testing.T) {
	log := setup(t, resolveBackend)

	_, err := execute("issues", "get", "42", "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrInvalidID)
	assert.Empty(t, log.all())
}

func TestVersion(t *testing.T) {
	t.Run("local only", func(t *testing.T) {
		log := setup(t, func(w http.ResponseWriter, r *http.Request) {})

		out, err := execute("version")
		require.NoError(t, err)

		var info commands.VersionInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "1.2.3", info.Version)
		assert.Empty(t, info.Server)
		assert.Empty(t, log.all())
	})

	t.Run("server", func(t *testing.T) {
		setup(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, gitlab.Version{Version: "17.0.0", Revision: "deadbeef"})
		})

		out, err := execute("version", "--server")
		require.NoError(t, err)

		var info commands.VersionInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "17.0.0", info.Server)
		assert.Equal(t, "deadbeef", info.ServerRevision)
	})

	t.Run("server without token", func(t *testing.T) {
		setup(t, func(w http.ResponseWriter, r *http.Request) {})
		viper.Set("token", "")

		_, err := execute("version", "--server")
		assert.ErrorIs(t, err, constants.ErrNoTokenConfigured)
	})
}

func TestOutput_InvalidFormat(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []gitlab.Group{})
	})
	viper.Set("output", "xml")

	_, err := execute("groups", "list")
	assert.ErrorIs(t, err, constants.ErrInvalidOutputFormat)
}

func TestOutput_Table(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []gitlab.Group{{ID: 5, FullPath: "parent/child", Name: "child", Visibility: "private"}})
	})
	viper.Set("output", constants.FormatTable)

	out, err := execute("groups", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "parent/child")
	assert.Contains(t, out, "private")
}

func readConfig(t *testing.T, path string) commands.Config {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config commands.Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}

func TestConfig(t *testing.T) { //nolint:funlen
	path := filepath.Join(t.TempDir(), "glapi", "config.yml")

	setup(t, func(w http.ResponseWriter, r *http.Request) {})
	viper.Set("config", path)

	_, err := execute("config", "set", "output", "yaml")
	require.NoError(t, err)
	_, err = execute("config", "set", "api", "gitlab.example.com")
	require.NoError(t, err)

	config := readConfig(t, path)
	assert.Equal(t, "yaml", config.Output)
	assert.Equal(t, "gitlab.example.com", config.API)
	assert.Empty(t, config.Token, "values from flags and env must not be persisted")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	_, err = execute("config", "set", "token", "secret")
	require.ErrorIs(t, err, constants.ErrTokenNotSettable)

	_, err = execute("config", "set", "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)

	_, err = execute("config", "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	_, err = execute("config", "set", "token-type", "cookie")
	require.ErrorIs(t, err, gitlab.ErrInvalidConfig)

	root := &cobra.Command{Use: "glapi", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(commands.NewConfigCommand())
	root.SetIn(strings.NewReader("glpat-stored\n"))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "set-token", "--type", "oauth"})
	require.NoError(t, root.Execute())

	config = readConfig(t, path)
	assert.Equal(t, "glpat-stored", config.Token)
	assert.Equal(t, "oauth", config.TokenType)
	assert.Equal(t, "yaml", config.Output)

	_, err = execute("config", "unset", "output")
	require.NoError(t, err)

	config = readConfig(t, path)
	assert.Empty(t, config.Output)
	assert.Equal(t, "glpat-stored", config.Token)

	out, err := execute("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, constants.MaskedSecret)
	assert.NotContains(t, out, "glpat-test")
}
