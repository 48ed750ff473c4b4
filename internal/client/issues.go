package client

import (
	"context"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// IssuesClient implements gitlab.IssuesClient.
type IssuesClient struct {
	httpClient *http.Client
}

// NewIssuesClient creates a new issues client.
func NewIssuesClient(httpClient *http.Client) *IssuesClient {
	return &IssuesClient{
		httpClient: httpClient,
	}
}

// List implements gitlab.IssuesClient.List.
func (c *IssuesClient) List(listing gitlab.IssuesListing) gitlab.Lister[gitlab.Issue] {
	return newPagedLister[gitlab.Issue](c.httpClient, listing, "issues")
}

// ListForProject implements gitlab.IssuesClient.ListForProject.
func (c *IssuesClient) ListForProject(listing gitlab.ProjectIssuesListing) gitlab.Lister[gitlab.Issue] {
	return newPagedLister[gitlab.Issue](c.httpClient, listing, "project issues")
}

// Get implements gitlab.IssuesClient.Get.
func (c *IssuesClient) Get(ctx context.Context, project gitlab.ProjectID, issueID int) (*gitlab.Issue, error) {
	return getOne[gitlab.Issue](ctx, c.httpClient, gitlab.NewProjectIssueListing(project, issueID), "issue")
}
