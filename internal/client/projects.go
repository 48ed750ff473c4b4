package client

import (
	"context"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// ProjectsClient implements gitlab.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// List implements gitlab.ProjectsClient.List.
func (c *ProjectsClient) List(listing gitlab.ProjectsListing) gitlab.Lister[gitlab.Project] {
	return newPagedLister[gitlab.Project](c.httpClient, listing, "projects")
}

// Search implements gitlab.ProjectsClient.Search.
func (c *ProjectsClient) Search(listing gitlab.ProjectSearchListing) gitlab.Lister[gitlab.Project] {
	return newPagedLister[gitlab.Project](c.httpClient, listing, "project search results")
}

// Get implements gitlab.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, project gitlab.ProjectID) (*gitlab.Project, error) {
	return getOne[gitlab.Project](ctx, c.httpClient, gitlab.NewProjectListing(project), "project")
}

// Events implements gitlab.ProjectsClient.Events.
func (c *ProjectsClient) Events(project gitlab.ProjectID) gitlab.Lister[gitlab.Event] {
	return newPagedLister[gitlab.Event](c.httpClient, gitlab.NewProjectEventsListing(project), "project events")
}

// Hooks implements gitlab.ProjectsClient.Hooks.
func (c *ProjectsClient) Hooks(project gitlab.ProjectID) gitlab.Lister[gitlab.Hook] {
	return newUnpagedLister[gitlab.Hook](c.httpClient, gitlab.NewProjectHooksListing(project), "project hooks")
}

// GetHook implements gitlab.ProjectsClient.GetHook.
func (c *ProjectsClient) GetHook(ctx context.Context, project gitlab.ProjectID, hookID int) (*gitlab.Hook, error) {
	return getOne[gitlab.Hook](ctx, c.httpClient, gitlab.NewProjectHookListing(project, hookID), "project hook")
}

// Branches implements gitlab.ProjectsClient.Branches.
func (c *ProjectsClient) Branches(project gitlab.ProjectID) gitlab.Lister[gitlab.Branch] {
	return newUnpagedLister[gitlab.Branch](c.httpClient, gitlab.NewProjectBranchesListing(project), "branches")
}

// GetBranch implements gitlab.ProjectsClient.GetBranch.
func (c *ProjectsClient) GetBranch(ctx context.Context, project gitlab.ProjectID, branch string) (*gitlab.Branch, error) {
	return getOne[gitlab.Branch](ctx, c.httpClient, gitlab.NewProjectBranchListing(project, branch), "branch")
}
