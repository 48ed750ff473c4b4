package client

import (
	"context"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// GroupsClient implements gitlab.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
	}
}

// List implements gitlab.GroupsClient.List.
func (c *GroupsClient) List(listing gitlab.GroupsListing) gitlab.Lister[gitlab.Group] {
	return newPagedLister[gitlab.Group](c.httpClient, listing, "groups")
}

// Owned implements gitlab.GroupsClient.Owned.
func (c *GroupsClient) Owned() gitlab.Lister[gitlab.Group] {
	return newUnpagedLister[gitlab.Group](c.httpClient, gitlab.OwnedGroupsListing{}, "owned groups")
}

// Get implements gitlab.GroupsClient.Get.
func (c *GroupsClient) Get(ctx context.Context, id int) (*gitlab.Group, error) {
	return getOne[gitlab.Group](ctx, c.httpClient, gitlab.NewGroupListing(id), "group")
}

// Projects implements gitlab.GroupsClient.Projects.
func (c *GroupsClient) Projects(listing gitlab.GroupProjectsListing) gitlab.Lister[gitlab.Project] {
	return newPagedLister[gitlab.Project](c.httpClient, listing, "group projects")
}

// Issues implements gitlab.GroupsClient.Issues.
func (c *GroupsClient) Issues(listing gitlab.GroupIssuesListing) gitlab.Lister[gitlab.Issue] {
	return newPagedLister[gitlab.Issue](c.httpClient, listing, "group issues")
}
