package gitlab

import (
	"slices"
	"strconv"
)

// IssuesListing lists issues created by or assigned to the caller (GET issues).
//
// Filters are encoded in this order: state, labels, order_by, sort.
type IssuesListing struct {
	state   IssueState
	labels  []string
	orderBy OrderBy
	sort    SortDirection
}

func NewIssuesListing() IssuesListing {
	return IssuesListing{}
}

func (l IssuesListing) State(state IssueState) IssuesListing {
	l.state = mustEnum(state)

	return l
}

// Labels keeps issues carrying every given label; sent comma separated.
func (l IssuesListing) Labels(labels ...string) IssuesListing {
	l.labels = slices.Clone(labels)

	return l
}

func (l IssuesListing) OrderBy(orderBy OrderBy) IssuesListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l IssuesListing) Sort(sort SortDirection) IssuesListing {
	l.sort = mustEnum(sort)

	return l
}

// Query implements Listing.
func (l IssuesListing) Query() string {
	enc := newQueryEncoder("issues")
	encodeEnum(enc, "state", l.state)
	enc.joined("labels", l.labels)
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)

	return enc.String()
}

// GroupIssuesListing lists the issues of a group (GET groups/:id/issues).
//
// Filters are encoded in this order: state, labels, milestone, order_by, sort.
type GroupIssuesListing struct {
	groupID   int
	state     IssueState
	labels    []string
	milestone *string
	orderBy   OrderBy
	sort      SortDirection
}

func NewGroupIssuesListing(groupID int) GroupIssuesListing {
	return GroupIssuesListing{groupID: groupID}
}

func (l GroupIssuesListing) State(state IssueState) GroupIssuesListing {
	l.state = mustEnum(state)

	return l
}

func (l GroupIssuesListing) Labels(labels ...string) GroupIssuesListing {
	l.labels = slices.Clone(labels)

	return l
}

// Milestone keeps issues of the milestone with this title.
func (l GroupIssuesListing) Milestone(title string) GroupIssuesListing {
	l.milestone = &title

	return l
}

func (l GroupIssuesListing) OrderBy(orderBy OrderBy) GroupIssuesListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l GroupIssuesListing) Sort(sort SortDirection) GroupIssuesListing {
	l.sort = mustEnum(sort)

	return l
}

// Query implements Listing.
func (l GroupIssuesListing) Query() string {
	enc := newQueryEncoder("groups/" + strconv.Itoa(l.groupID) + "/issues")
	encodeEnum(enc, "state", l.state)
	enc.joined("labels", l.labels)
	enc.text("milestone", l.milestone)
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)

	return enc.String()
}

// ProjectIssuesListing lists the issues of a project (GET projects/:id/issues).
//
// Filters are encoded in this order: state, labels, milestone, order_by,
// sort, iid. A single iid is sent as iid=N, several as iid[]=N&iid[]=M.
type ProjectIssuesListing struct {
	project   ProjectID
	state     IssueState
	labels    []string
	milestone *string
	orderBy   OrderBy
	sort      SortDirection
	iids      []int
}

func NewProjectIssuesListing(project ProjectID) ProjectIssuesListing {
	return ProjectIssuesListing{project: project}
}

func (l ProjectIssuesListing) State(state IssueState) ProjectIssuesListing {
	l.state = mustEnum(state)

	return l
}

func (l ProjectIssuesListing) Labels(labels ...string) ProjectIssuesListing {
	l.labels = slices.Clone(labels)

	return l
}

func (l ProjectIssuesListing) Milestone(title string) ProjectIssuesListing {
	l.milestone = &title

	return l
}

func (l ProjectIssuesListing) OrderBy(orderBy OrderBy) ProjectIssuesListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l ProjectIssuesListing) Sort(sort SortDirection) ProjectIssuesListing {
	l.sort = mustEnum(sort)

	return l
}

// IIDs keeps the issues with these project-scoped numbers.
func (l ProjectIssuesListing) IIDs(iids ...int) ProjectIssuesListing {
	l.iids = slices.Clone(iids)

	return l
}

// Query implements Listing.
func (l ProjectIssuesListing) Query() string {
	enc := newQueryEncoder(projectPath(l.project) + "/issues")
	encodeEnum(enc, "state", l.state)
	enc.joined("labels", l.labels)
	enc.text("milestone", l.milestone)
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)
	enc.list("iid", l.iids)

	return enc.String()
}

// ProjectIssueListing reads one issue by its internal id
// (GET projects/:id/issues/:issue_id).
type ProjectIssueListing struct {
	project ProjectID
	issueID int
}

func NewProjectIssueListing(project ProjectID, issueID int) ProjectIssueListing {
	return ProjectIssueListing{project: project, issueID: issueID}
}

// Query implements Listing.
func (l ProjectIssueListing) Query() string {
	return projectPath(l.project) + "/issues/" + strconv.Itoa(l.issueID)
}
