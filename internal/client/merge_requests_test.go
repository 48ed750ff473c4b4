package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

func TestMergeRequestsClient(t *testing.T) {
	t.Parallel()
	t.Run("list with filters", func(t *testing.T) {
		t.Parallel()

		client, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, []gitlab.MergeRequest{{ID: 100, IID: 7, Title: "Add resolver"}})
		})

		listing := gitlab.NewMergeRequestsListing(gitlab.ProjectByID(3)).
			Sort(gitlab.SortAsc).
			State(gitlab.MergeRequestStateMerged).
			IIDs(7, 8)

		mergeRequests, err := client.MergeRequests().List(listing).List(context.Background())
		require.NoError(t, err)
		require.Len(t, mergeRequests, 1)
		assert.Equal(t, 7, mergeRequests[0].IID)
		assert.Equal(t, []string{"/api/v4/projects/3/merge_requests?iid[]=7&iid[]=8&state=merged&sort=asc"}, rec.all())
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		client, rec := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, gitlab.MergeRequest{ID: 100, IID: 7})
		})

		mergeRequest, err := client.MergeRequests().Get(context.Background(), gitlab.ProjectByPath("group/api"), 100)
		require.NoError(t, err)
		assert.Equal(t, 100, mergeRequest.ID)
		assert.Equal(t, []string{"/api/v4/projects/group%2Fapi/merge_requests/100"}, rec.all())
	})
}
