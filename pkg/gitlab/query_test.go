package gitlab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

//nolint:funlen // Test functions can be longer for detailed testing
func TestListing_Query(t *testing.T) {
	t.Parallel()

	project := gitlab.ProjectByID(123)

	tests := []struct {
		name     string
		listing  gitlab.Listing
		expected string
	}{
		// Bare paths
		{name: "groups", listing: gitlab.NewGroupsListing(), expected: "groups"},
		{name: "owned groups", listing: gitlab.OwnedGroupsListing{}, expected: "groups/owned"},
		{name: "group", listing: gitlab.NewGroupListing(5), expected: "groups/5"},
		{name: "group projects", listing: gitlab.NewGroupProjectsListing(5), expected: "groups/5/projects"},
		{name: "group issues", listing: gitlab.NewGroupIssuesListing(5), expected: "groups/5/issues"},
		{name: "projects", listing: gitlab.NewProjectsListing(), expected: "projects"},
		{name: "project", listing: gitlab.NewProjectListing(project), expected: "projects/123"},
		{name: "project events", listing: gitlab.NewProjectEventsListing(project), expected: "projects/123/events"},
		{name: "project hooks", listing: gitlab.NewProjectHooksListing(project), expected: "projects/123/hooks"},
		{name: "project hook", listing: gitlab.NewProjectHookListing(project, 8), expected: "projects/123/hooks/8"},
		{name: "branches", listing: gitlab.NewProjectBranchesListing(project), expected: "projects/123/repository/branches"},
		{name: "issues", listing: gitlab.NewIssuesListing(), expected: "issues"},
		{name: "project issues", listing: gitlab.NewProjectIssuesListing(project), expected: "projects/123/issues"},
		{name: "project issue", listing: gitlab.NewProjectIssueListing(project, 9), expected: "projects/123/issues/9"},
		{name: "merge requests", listing: gitlab.NewMergeRequestsListing(project), expected: "projects/123/merge_requests"},
		{name: "merge request", listing: gitlab.NewMergeRequestListing(project, 9), expected: "projects/123/merge_requests/9"},

		// Project scopes
		{name: "scope accessible", listing: gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAccessible), expected: "projects"},
		{name: "scope all", listing: gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAll), expected: "projects/all"},
		{name: "scope owned", listing: gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeOwned), expected: "projects/owned"},
		{name: "scope visible", listing: gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeVisible), expected: "projects/visible"},

		// Booleans and enums
		{
			name:     "archived true",
			listing:  gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAll).Archived(true),
			expected: "projects/all?archived=true",
		},
		{
			name:     "archived false",
			listing:  gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAll).Archived(false),
			expected: "projects/all?archived=false",
		},
		{
			name:     "visibility internal",
			listing:  gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAll).Visibility(gitlab.VisibilityInternal),
			expected: "projects/all?visibility=internal",
		},
		{
			name:     "order by last activity",
			listing:  gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAll).OrderBy(gitlab.ProjectOrderByLastActivityAt),
			expected: "projects/all?order_by=last_activity_at",
		},
		{
			name:     "search pattern",
			listing:  gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAll).Search("SearchPattern"),
			expected: "projects/all?search=SearchPattern",
		},
		{
			name:     "archived and sort",
			listing:  gitlab.NewProjectsListing().Scope(gitlab.ProjectScopeAll).Archived(false).Sort(gitlab.SortAsc),
			expected: "projects/all?archived=false&sort=asc",
		},
		{
			name:     "merge request state",
			listing:  gitlab.NewMergeRequestsListing(project).State(gitlab.MergeRequestStateOpened),
			expected: "projects/123/merge_requests?state=opened",
		},
		{
			name:     "issue state closed",
			listing:  gitlab.NewProjectIssuesListing(project).State(gitlab.IssueStateClosed),
			expected: "projects/123/issues?state=closed",
		},
		{
			name:     "group order by path",
			listing:  gitlab.NewGroupsListing().OrderBy(gitlab.GroupOrderByPath),
			expected: "groups?order_by=path",
		},
		{
			name:     "search listing",
			listing:  gitlab.NewProjectSearchListing("api").OrderBy(gitlab.SearchOrderByCreatedAt),
			expected: "projects/search/api?order_by=created_at",
		},
		{
			name:     "group projects with every filter",
			listing:  gitlab.NewGroupProjectsListing(5).CIEnabledFirst(true).Search("x").Sort(gitlab.SortDesc).OrderBy(gitlab.ProjectOrderByPath).Visibility(gitlab.VisibilityPublic).Archived(true),
			expected: "groups/5/projects?archived=true&visibility=public&order_by=path&sort=desc&search=x&ci_enabled_first=true",
		},

		// Lists
		{
			name:     "single iid",
			listing:  gitlab.NewMergeRequestsListing(project).IIDs(456),
			expected: "projects/123/merge_requests?iid=456",
		},
		{
			name:     "several iids",
			listing:  gitlab.NewMergeRequestsListing(project).IIDs(456, 789),
			expected: "projects/123/merge_requests?iid[]=456&iid[]=789",
		},
		{
			name:     "empty iids are omitted",
			listing:  gitlab.NewMergeRequestsListing(project).IIDs(),
			expected: "projects/123/merge_requests",
		},
		{
			name:     "project issue iids",
			listing:  gitlab.NewProjectIssuesListing(project).IIDs(1, 2, 3),
			expected: "projects/123/issues?iid[]=1&iid[]=2&iid[]=3",
		},
		{
			name:     "labels are comma joined",
			listing:  gitlab.NewIssuesListing().Labels("a", "b", "c"),
			expected: "issues?labels=a,b,c",
		},
		{
			name:     "single skip group keeps brackets",
			listing:  gitlab.NewGroupsListing().SkipGroups(7),
			expected: "groups?skip_groups[]=7",
		},
		{
			name:     "merge requests multiple filters",
			listing:  gitlab.NewMergeRequestsListing(project).IIDs(456, 789).Sort(gitlab.SortAsc).OrderBy(gitlab.OrderByCreatedAt),
			expected: "projects/123/merge_requests?iid[]=456&iid[]=789&order_by=created_at&sort=asc",
		},

		// Escaping
		{
			name:     "project path is escaped in the path",
			listing:  gitlab.NewProjectIssuesListing(gitlab.ProjectByPath("group/project")),
			expected: "projects/group%2Fproject/issues",
		},
		{
			name:     "namespaced search is not escaped in the query",
			listing:  gitlab.NewProjectsListing().Search("group/project"),
			expected: "projects?search=group/project",
		},
		{
			name:     "free text uses plus for spaces",
			listing:  gitlab.NewGroupIssuesListing(5).Milestone("Sprint 4 & 5"),
			expected: "groups/5/issues?milestone=Sprint+4+%26+5",
		},
		{
			name:     "labels are escaped individually",
			listing:  gitlab.NewProjectIssuesListing(project).Labels("needs review", "a,b"),
			expected: "projects/123/issues?labels=needs+review,a%2Cb",
		},
		{
			name:     "branch name is escaped in the path",
			listing:  gitlab.NewProjectBranchListing(project, "feature/login"),
			expected: "projects/123/repository/branches/feature%2Flogin",
		},
		{
			name:     "search query is escaped in the path",
			listing:  gitlab.NewProjectSearchListing("my group/api"),
			expected: "projects/search/my%20group%2Fapi",
		},
		{
			name:     "empty search is still sent",
			listing:  gitlab.NewProjectsListing().Search(""),
			expected: "projects?search=",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.listing.Query())
			assert.Equal(t, testCase.listing.Query(), testCase.listing.Query())
		})
	}
}

func TestListing_OrderIndependence(t *testing.T) {
	t.Parallel()

	project := gitlab.ProjectByID(123)

	first := gitlab.NewMergeRequestsListing(project).OrderBy(gitlab.OrderByUpdatedAt).Sort(gitlab.SortDesc)
	second := gitlab.NewMergeRequestsListing(project).Sort(gitlab.SortDesc).OrderBy(gitlab.OrderByUpdatedAt)

	assert.Equal(t, "projects/123/merge_requests?order_by=updated_at&sort=desc", first.Query())
	assert.Equal(t, first.Query(), second.Query())

	issues := gitlab.NewProjectIssuesListing(project).IIDs(4).Sort(gitlab.SortAsc).Labels("bug").State(gitlab.IssueStateOpened)
	assert.Equal(t, "projects/123/issues?state=opened&labels=bug&sort=asc&iid=4", issues.Query())
}

func TestListing_Immutability(t *testing.T) {
	t.Parallel()

	base := gitlab.NewProjectsListing().Archived(false)
	owned := base.Scope(gitlab.ProjectScopeOwned)
	sorted := base.Sort(gitlab.SortAsc)

	assert.Equal(t, "projects?archived=false", base.Query())
	assert.Equal(t, "projects/owned?archived=false", owned.Query())
	assert.Equal(t, "projects?archived=false&sort=asc", sorted.Query())

	iids := []int{1, 2}
	listing := gitlab.NewMergeRequestsListing(gitlab.ProjectByID(1)).IIDs(iids...)
	iids[0] = 99

	assert.Equal(t, "projects/1/merge_requests?iid[]=1&iid[]=2", listing.Query())

	labels := []string{"a", "b"}
	issues := gitlab.NewIssuesListing().Labels(labels...)
	labels[1] = "z"

	assert.Equal(t, "issues?labels=a,b", issues.Query())
}

func TestListing_InvalidEnumPanics(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "gitlab: invalid SortDirection value 7", func() {
		gitlab.NewGroupsListing().Sort(gitlab.SortDirection(7))
	})
	assert.Panics(t, func() {
		gitlab.NewProjectsListing().Visibility(gitlab.Visibility(0))
	})
	assert.Panics(t, func() {
		gitlab.NewMergeRequestsListing(gitlab.ProjectByID(1)).State(gitlab.MergeRequestState(42))
	})
	assert.Panics(t, func() {
		gitlab.NewProjectsListing().Scope(gitlab.ProjectScope(-1))
	})
}

func TestEscaping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "group/project", gitlab.EscapeQueryValue("group/project"))
	assert.Equal(t, "a+b%3Dc", gitlab.EscapeQueryValue("a b=c"))
	assert.Equal(t, "group%2Fproject", gitlab.EscapePathSegment("group/project"))
	assert.Equal(t, "group%2Fsub%2Fproject", gitlab.ProjectByPath("group/sub/project").String())
	assert.Equal(t, "42", gitlab.ProjectByID(42).String())
}

func TestParseProjectID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gitlab.ProjectByID(42), gitlab.ParseProjectID("42"))
	assert.Equal(t, gitlab.ProjectByPath("group/api"), gitlab.ParseProjectID("group/api"))
	assert.Equal(t, gitlab.ProjectByPath("0"), gitlab.ParseProjectID("0"))
}
