package gitlab

import (
	"fmt"
	"strings"
)

// enum is implemented by the closed filter types below. The zero value of
// each type means "not set"; String returns the wire token and panics on a
// value outside the declared set.
type enum interface {
	~int
	fmt.Stringer
}

func invalidEnum(kind string, value int) string {
	return fmt.Sprintf("gitlab: invalid %s value %d", kind, value)
}

// mustEnum rejects values outside the declared set when a filter is built.
func mustEnum[E enum](value E) E {
	_ = value.String()

	return value
}

func parseEnum[E enum](kind, input string, values []E) (E, error) {
	for _, value := range values {
		if value.String() == input {
			return value, nil
		}
	}

	names := make([]string, len(values))
	for i, value := range values {
		names[i] = value.String()
	}

	return 0, fmt.Errorf("%w: %s %q (expected one of %s)", ErrUnknownEnumValue, kind, input, strings.Join(names, ", "))
}

// SortDirection orders results ascending or descending.
type SortDirection int

const (
	SortAsc SortDirection = iota + 1
	SortDesc
)

func (s SortDirection) String() string {
	switch s {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		panic(invalidEnum("SortDirection", int(s)))
	}
}

// ParseSortDirection parses asc or desc.
func ParseSortDirection(input string) (SortDirection, error) {
	return parseEnum("sort", input, []SortDirection{SortAsc, SortDesc})
}

// GroupOrderBy is the ordering field of a group listing.
type GroupOrderBy int

const (
	GroupOrderByName GroupOrderBy = iota + 1
	GroupOrderByPath
)

func (o GroupOrderBy) String() string {
	switch o {
	case GroupOrderByName:
		return "name"
	case GroupOrderByPath:
		return "path"
	default:
		panic(invalidEnum("GroupOrderBy", int(o)))
	}
}

// ParseGroupOrderBy parses a group ordering field.
func ParseGroupOrderBy(input string) (GroupOrderBy, error) {
	return parseEnum("group order_by", input, []GroupOrderBy{GroupOrderByName, GroupOrderByPath})
}

// ProjectOrderBy is the ordering field of a project listing.
type ProjectOrderBy int

const (
	ProjectOrderByID ProjectOrderBy = iota + 1
	ProjectOrderByName
	ProjectOrderByPath
	ProjectOrderByCreatedAt
	ProjectOrderByUpdatedAt
	ProjectOrderByLastActivityAt
)

func (o ProjectOrderBy) String() string {
	switch o {
	case ProjectOrderByID:
		return "id"
	case ProjectOrderByName:
		return "name"
	case ProjectOrderByPath:
		return "path"
	case ProjectOrderByCreatedAt:
		return "created_at"
	case ProjectOrderByUpdatedAt:
		return "updated_at"
	case ProjectOrderByLastActivityAt:
		return "last_activity_at"
	default:
		panic(invalidEnum("ProjectOrderBy", int(o)))
	}
}

// ParseProjectOrderBy parses a project ordering field.
func ParseProjectOrderBy(input string) (ProjectOrderBy, error) {
	return parseEnum("project order_by", input, []ProjectOrderBy{
		ProjectOrderByID, ProjectOrderByName, ProjectOrderByPath,
		ProjectOrderByCreatedAt, ProjectOrderByUpdatedAt, ProjectOrderByLastActivityAt,
	})
}

// SearchOrderBy is the ordering field of a project name search. The
// search endpoint accepts fewer fields than the project listings.
type SearchOrderBy int

const (
	SearchOrderByID SearchOrderBy = iota + 1
	SearchOrderByName
	SearchOrderByCreatedAt
	SearchOrderByLastActivityAt
)

func (o SearchOrderBy) String() string {
	switch o {
	case SearchOrderByID:
		return "id"
	case SearchOrderByName:
		return "name"
	case SearchOrderByCreatedAt:
		return "created_at"
	case SearchOrderByLastActivityAt:
		return "last_activity_at"
	default:
		panic(invalidEnum("SearchOrderBy", int(o)))
	}
}

// ParseSearchOrderBy parses a project search ordering field.
func ParseSearchOrderBy(input string) (SearchOrderBy, error) {
	return parseEnum("search order_by", input, []SearchOrderBy{
		SearchOrderByID, SearchOrderByName, SearchOrderByCreatedAt, SearchOrderByLastActivityAt,
	})
}

// OrderBy is the ordering field of issue and merge request listings.
type OrderBy int

const (
	OrderByCreatedAt OrderBy = iota + 1
	OrderByUpdatedAt
)

func (o OrderBy) String() string {
	switch o {
	case OrderByCreatedAt:
		return "created_at"
	case OrderByUpdatedAt:
		return "updated_at"
	default:
		panic(invalidEnum("OrderBy", int(o)))
	}
}

// ParseOrderBy parses created_at or updated_at.
func ParseOrderBy(input string) (OrderBy, error) {
	return parseEnum("order_by", input, []OrderBy{OrderByCreatedAt, OrderByUpdatedAt})
}

// Visibility restricts project listings by visibility level.
type Visibility int

const (
	VisibilityPublic Visibility = iota + 1
	VisibilityInternal
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	case VisibilityPrivate:
		return "private"
	default:
		panic(invalidEnum("Visibility", int(v)))
	}
}

// ParseVisibility parses public, internal or private.
func ParseVisibility(input string) (Visibility, error) {
	return parseEnum("visibility", input, []Visibility{VisibilityPublic, VisibilityInternal, VisibilityPrivate})
}

// IssueState filters issues by state.
type IssueState int

const (
	IssueStateOpened IssueState = iota + 1
	IssueStateClosed
)

func (s IssueState) String() string {
	switch s {
	case IssueStateOpened:
		return "opened"
	case IssueStateClosed:
		return "closed"
	default:
		panic(invalidEnum("IssueState", int(s)))
	}
}

// ParseIssueState parses opened or closed.
func ParseIssueState(input string) (IssueState, error) {
	return parseEnum("issue state", input, []IssueState{IssueStateOpened, IssueStateClosed})
}

// MergeRequestState filters merge requests by state.
type MergeRequestState int

const (
	MergeRequestStateMerged MergeRequestState = iota + 1
	MergeRequestStateOpened
	MergeRequestStateClosed
	MergeRequestStateAll
)

func (s MergeRequestState) String() string {
	switch s {
	case MergeRequestStateMerged:
		return "merged"
	case MergeRequestStateOpened:
		return "opened"
	case MergeRequestStateClosed:
		return "closed"
	case MergeRequestStateAll:
		return "all"
	default:
		panic(invalidEnum("MergeRequestState", int(s)))
	}
}

// ParseMergeRequestState parses merged, opened, closed or all.
func ParseMergeRequestState(input string) (MergeRequestState, error) {
	return parseEnum("merge request state", input, []MergeRequestState{
		MergeRequestStateMerged, MergeRequestStateOpened, MergeRequestStateClosed, MergeRequestStateAll,
	})
}

// ProjectScope selects which project collection a ProjectsListing reads.
// The zero value reads every project accessible to the caller.
type ProjectScope int

const (
	ProjectScopeAccessible ProjectScope = iota + 1
	ProjectScopeAll
	ProjectScopeOwned
	ProjectScopeVisible
)

func (s ProjectScope) String() string {
	switch s {
	case ProjectScopeAccessible:
		return "accessible"
	case ProjectScopeAll:
		return "all"
	case ProjectScopeOwned:
		return "owned"
	case ProjectScopeVisible:
		return "visible"
	default:
		panic(invalidEnum("ProjectScope", int(s)))
	}
}

func (s ProjectScope) path() string {
	switch s {
	case 0, ProjectScopeAccessible:
		return "projects"
	case ProjectScopeAll:
		return "projects/all"
	case ProjectScopeOwned:
		return "projects/owned"
	case ProjectScopeVisible:
		return "projects/visible"
	default:
		panic(invalidEnum("ProjectScope", int(s)))
	}
}

// ParseProjectScope parses accessible, all, owned or visible.
func ParseProjectScope(input string) (ProjectScope, error) {
	return parseEnum("project scope", input, []ProjectScope{
		ProjectScopeAccessible, ProjectScopeAll, ProjectScopeOwned, ProjectScopeVisible,
	})
}
