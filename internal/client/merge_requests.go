package client

import (
	"context"

	"github.com/fivetwenty-io/gitlab-client/internal/http"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// MergeRequestsClient implements gitlab.MergeRequestsClient.
type MergeRequestsClient struct {
	httpClient *http.Client
}

func NewMergeRequestsClient(httpClient *http.Client) *MergeRequestsClient {
	return &MergeRequestsClient{
		httpClient: httpClient,
	}
}

// List implements gitlab.MergeRequestsClient.List.
func (c *MergeRequestsClient) List(listing gitlab.MergeRequestsListing) gitlab.Lister[gitlab.MergeRequest] {
	return newPagedLister[gitlab.MergeRequest](c.httpClient, listing, "merge requests")
}

// Get implements gitlab.MergeRequestsClient.Get.
func (c *MergeRequestsClient) Get(ctx context.Context, project gitlab.ProjectID, mergeRequestID int) (*gitlab.MergeRequest, error) {
	return getOne[gitlab.MergeRequest](ctx, c.httpClient, gitlab.NewMergeRequestListing(project, mergeRequestID), "merge request")
}
