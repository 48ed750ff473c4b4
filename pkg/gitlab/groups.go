package gitlab

import (
	"slices"
	"strconv"
)

// GroupsListing lists the groups visible to the caller (GET groups).
//
// Filters are encoded in this order: skip_groups, all_available, search,
// order_by, sort. skip_groups always uses the bracketed array form.
type GroupsListing struct {
	skipGroups   []int
	allAvailable *bool
	search       *string
	orderBy      GroupOrderBy
	sort         SortDirection
}

// NewGroupsListing returns a groups listing with no filters.
func NewGroupsListing() GroupsListing {
	return GroupsListing{}
}

// SkipGroups excludes the given group ids.
func (l GroupsListing) SkipGroups(ids ...int) GroupsListing {
	l.skipGroups = slices.Clone(ids)

	return l
}

// AllAvailable shows all groups the caller can access, not only memberships.
func (l GroupsListing) AllAvailable(allAvailable bool) GroupsListing {
	l.allAvailable = &allAvailable

	return l
}

// Search matches groups by name or path.
func (l GroupsListing) Search(search string) GroupsListing {
	l.search = &search

	return l
}

func (l GroupsListing) OrderBy(orderBy GroupOrderBy) GroupsListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l GroupsListing) Sort(sort SortDirection) GroupsListing {
	l.sort = mustEnum(sort)

	return l
}

// Query implements Listing.
func (l GroupsListing) Query() string {
	enc := newQueryEncoder("groups")
	enc.array("skip_groups", l.skipGroups)
	enc.boolean("all_available", l.allAvailable)
	enc.text("search", l.search)
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)

	return enc.String()
}

// OwnedGroupsListing lists the groups owned by the caller (GET groups/owned).
type OwnedGroupsListing struct{}

// Query implements Listing.
func (OwnedGroupsListing) Query() string {
	return "groups/owned"
}

// GroupListing reads a single group (GET groups/:id).
type GroupListing struct {
	id int
}

// NewGroupListing returns the details listing of group id.
func NewGroupListing(id int) GroupListing {
	return GroupListing{id: id}
}

// Query implements Listing.
func (l GroupListing) Query() string {
	return "groups/" + strconv.Itoa(l.id)
}

// GroupProjectsListing lists the projects of a group (GET groups/:id/projects).
//
// Filters are encoded in this order: archived, visibility, order_by, sort,
// search, ci_enabled_first.
type GroupProjectsListing struct {
	groupID        int
	archived       *bool
	visibility     Visibility
	orderBy        ProjectOrderBy
	sort           SortDirection
	search         *string
	ciEnabledFirst *bool
}

// NewGroupProjectsListing returns the projects listing of group id.
func NewGroupProjectsListing(groupID int) GroupProjectsListing {
	return GroupProjectsListing{groupID: groupID}
}

func (l GroupProjectsListing) Archived(archived bool) GroupProjectsListing {
	l.archived = &archived

	return l
}

func (l GroupProjectsListing) Visibility(visibility Visibility) GroupProjectsListing {
	l.visibility = mustEnum(visibility)

	return l
}

func (l GroupProjectsListing) OrderBy(orderBy ProjectOrderBy) GroupProjectsListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l GroupProjectsListing) Sort(sort SortDirection) GroupProjectsListing {
	l.sort = mustEnum(sort)

	return l
}

func (l GroupProjectsListing) Search(search string) GroupProjectsListing {
	l.search = &search

	return l
}

// CIEnabledFirst lists projects with CI enabled before the others.
func (l GroupProjectsListing) CIEnabledFirst(first bool) GroupProjectsListing {
	l.ciEnabledFirst = &first

	return l
}

// Query implements Listing.
func (l GroupProjectsListing) Query() string {
	enc := newQueryEncoder("groups/" + strconv.Itoa(l.groupID) + "/projects")
	enc.boolean("archived", l.archived)
	encodeEnum(enc, "visibility", l.visibility)
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)
	enc.text("search", l.search)
	enc.boolean("ci_enabled_first", l.ciEnabledFirst)

	return enc.String()
}
