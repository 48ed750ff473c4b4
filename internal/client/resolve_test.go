package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/internal/client"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func fillerProjects(n int) []gitlab.Project {
	projects := make([]gitlab.Project, n)
	for i := range projects {
		projects[i] = gitlab.Project{
			ID:        1000 + i,
			Name:      fmt.Sprintf("api-%d", i),
			Path:      fmt.Sprintf("api-%d", i),
			Namespace: gitlab.Namespace{Path: "other", FullPath: "other"},
		}
	}

	return projects
}

func backendAPI() gitlab.Project {
	return gitlab.Project{
		ID:        9,
		Name:      "API",
		Path:      "api",
		Namespace: gitlab.Namespace{Path: "backend", FullPath: "platform/backend"},
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_ResolveProject(t *testing.T) {
	t.Parallel()
	t.Run("found on second page", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Query().Get("page") {
			case "1":
				writeJSON(t, writer, fillerProjects(20))
			default:
				writeJSON(t, writer, append(fillerProjects(2), backendAPI()))
			}
		})

		project, found, err := c.ResolveProject(context.Background(), "backend", "api")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 9, project.ID)
		assert.Equal(t, []string{
			"/api/v4/projects?search=api&page=1&per_page=20",
			"/api/v4/projects?search=api&page=2&per_page=20",
		}, rec.all())
	})

	t.Run("matches full namespace path and display name", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, []gitlab.Project{backendAPI()})
		})

		project, found, err := c.ResolveProject(context.Background(), "platform/backend", "API")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 9, project.ID)
	})

	t.Run("short page without match is not found", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, fillerProjects(3))
		})

		project, found, err := c.ResolveProject(context.Background(), "backend", "api")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, project)
		assert.Equal(t, 1, rec.count())
	})

	t.Run("fetch error stops the scan", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte(`{"message":"500 Internal Server Error"}`))
		})

		_, found, err := c.ResolveProject(context.Background(), "backend", "api")
		require.Error(t, err)
		assert.False(t, found)

		respErr := &gitlab.ResponseError{}
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
		assert.Equal(t, 1, rec.count())
	})

	t.Run("configured page size", func(t *testing.T) {
		t.Parallel()

		var requests []string

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requests = append(requests, request.URL.RawQuery)
			writeJSON(t, writer, []gitlab.Project{})
		}))
		defer server.Close()

		c, err := client.New(context.Background(), &gitlab.Config{BaseURL: server.URL, ResolvePageSize: 5})
		require.NoError(t, err)

		_, found, err := c.ResolveProject(context.Background(), "backend", "my api")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, []string{"search=my+api&page=1&per_page=5"}, requests)
	})
}

func issuesPage(from, n int) []gitlab.Issue {
	issues := make([]gitlab.Issue, n)
	for i := range issues {
		issues[i] = gitlab.Issue{ID: 5000 + from + i, IID: from + i, ProjectID: 9}
	}

	return issues
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_ResolveIssue(t *testing.T) {
	t.Parallel()
	t.Run("scans issues of the resolved project", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Path {
			case "/api/v4/projects":
				writeJSON(t, writer, []gitlab.Project{backendAPI()})
			case "/api/v4/projects/9/issues":
				page, _ := strconv.Atoi(request.URL.Query().Get("page"))
				writeJSON(t, writer, issuesPage((page-1)*20+1, 20))
			default:
				writer.WriteHeader(http.StatusNotFound)
			}
		})

		issue, found, err := c.ResolveIssue(context.Background(), "backend", "api", 25)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 25, issue.IID)
		assert.Equal(t, 5025, issue.ID)
		assert.Equal(t, []string{
			"/api/v4/projects?search=api&page=1&per_page=20",
			"/api/v4/projects/9/issues?page=1&per_page=20",
			"/api/v4/projects/9/issues?page=2&per_page=20",
		}, rec.all())
	})

	t.Run("missing project skips the issue scan", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, []gitlab.Project{})
		})

		issue, found, err := c.ResolveIssue(context.Background(), "backend", "api", 1)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, issue)
		assert.Equal(t, []string{"/api/v4/projects?search=api&page=1&per_page=20"}, rec.all())
	})

	t.Run("project lookup error skips the issue scan", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
		})

		_, found, err := c.ResolveIssue(context.Background(), "backend", "api", 1)
		require.Error(t, err)
		assert.True(t, gitlab.IsUnauthorized(err))
		assert.False(t, found)
		assert.Equal(t, []string{"/api/v4/projects?search=api&page=1&per_page=20"}, rec.all())
	})

	t.Run("iid beyond the last issue", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/api/v4/projects" {
				writeJSON(t, writer, []gitlab.Project{backendAPI()})

				return
			}

			writeJSON(t, writer, issuesPage(1, 4))
		})

		issue, found, err := c.ResolveIssue(context.Background(), "backend", "api", 99)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, issue)
		assert.Equal(t, []string{
			"/api/v4/projects?search=api&page=1&per_page=20",
			"/api/v4/projects/9/issues?page=1&per_page=20",
		}, rec.all())
	})

	t.Run("issue page error stops the scan", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Query().Get("page") {
			case "1":
				if request.URL.Path == "/api/v4/projects" {
					writeJSON(t, writer, []gitlab.Project{backendAPI()})
				} else {
					writeJSON(t, writer, issuesPage(1, 20))
				}
			default:
				writer.WriteHeader(http.StatusInternalServerError)
			}
		})

		issue, found, err := c.ResolveIssue(context.Background(), "backend", "api", 30)
		require.Error(t, err)
		assert.False(t, found)
		assert.Nil(t, issue)

		respErr := &gitlab.ResponseError{}
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
		assert.Contains(t, err.Error(), "resolving issue backend/api#30")
		assert.Equal(t, []string{
			"/api/v4/projects?search=api&page=1&per_page=20",
			"/api/v4/projects/9/issues?page=1&per_page=20",
			"/api/v4/projects/9/issues?page=2&per_page=20",
		}, rec.all())
	})
}

func mergeRequestsPage(from, n int) []gitlab.MergeRequest {
	mergeRequests := make([]gitlab.MergeRequest, n)
	for i := range mergeRequests {
		mergeRequests[i] = gitlab.MergeRequest{ID: 300 + from + i, IID: from + i, ProjectID: 9}
	}

	return mergeRequests
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_ResolveMergeRequest(t *testing.T) {
	t.Parallel()
	t.Run("scans merge requests of the resolved project", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Path {
			case "/api/v4/projects":
				writeJSON(t, writer, []gitlab.Project{backendAPI()})
			default:
				writeJSON(t, writer, mergeRequestsPage(2, 2))
			}
		})

		mergeRequest, found, err := c.ResolveMergeRequest(context.Background(), "backend", "api", 3)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 303, mergeRequest.ID)
		assert.Equal(t, []string{
			"/api/v4/projects?search=api&page=1&per_page=20",
			"/api/v4/projects/9/merge_requests?page=1&per_page=20",
		}, rec.all())
	})

	t.Run("missing project skips the merge request scan", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, fillerProjects(2))
		})

		mergeRequest, found, err := c.ResolveMergeRequest(context.Background(), "backend", "api", 1)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, mergeRequest)
		assert.Equal(t, []string{"/api/v4/projects?search=api&page=1&per_page=20"}, rec.all())
	})

	t.Run("project lookup error skips the merge request scan", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
		})

		mergeRequest, found, err := c.ResolveMergeRequest(context.Background(), "backend", "api", 1)
		require.Error(t, err)
		assert.True(t, gitlab.IsForbidden(err))
		assert.False(t, found)
		assert.Nil(t, mergeRequest)
		assert.Equal(t, []string{"/api/v4/projects?search=api&page=1&per_page=20"}, rec.all())
	})

	t.Run("iid beyond the last merge request", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Path {
			case "/api/v4/projects":
				writeJSON(t, writer, []gitlab.Project{backendAPI()})
			default:
				page, _ := strconv.Atoi(request.URL.Query().Get("page"))
				if page == 1 {
					writeJSON(t, writer, mergeRequestsPage(1, 20))
				} else {
					writeJSON(t, writer, mergeRequestsPage(21, 3))
				}
			}
		})

		mergeRequest, found, err := c.ResolveMergeRequest(context.Background(), "backend", "api", 99)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, mergeRequest)
		assert.Equal(t, []string{
			"/api/v4/projects?search=api&page=1&per_page=20",
			"/api/v4/projects/9/merge_requests?page=1&per_page=20",
			"/api/v4/projects/9/merge_requests?page=2&per_page=20",
		}, rec.all())
	})

	t.Run("merge request page error stops the scan", func(t *testing.T) {
		t.Parallel()

		c, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/api/v4/projects" {
				writeJSON(t, writer, []gitlab.Project{backendAPI()})

				return
			}

			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte(`{"message":"500 Internal Server Error"}`))
		})

		mergeRequest, found, err := c.ResolveMergeRequest(context.Background(), "backend", "api", 3)
		require.Error(t, err)
		assert.False(t, found)
		assert.Nil(t, mergeRequest)

		respErr := &gitlab.ResponseError{}
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
		assert.Contains(t, err.Error(), "resolving merge request backend/api!3")
		assert.Equal(t, []string{
			"/api/v4/projects?search=api&page=1&per_page=20",
			"/api/v4/projects/9/merge_requests?page=1&per_page=20",
		}, rec.all())
	})
}
