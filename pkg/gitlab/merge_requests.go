package gitlab

import (
	"slices"
	"strconv"
)

// MergeRequestsListing lists the merge requests of a project
// (GET projects/:id/merge_requests).
//
// Filters are encoded in this order: iid, state, order_by, sort.
type MergeRequestsListing struct {
	project ProjectID
	iids    []int
	state   MergeRequestState
	orderBy OrderBy
	sort    SortDirection
}

func NewMergeRequestsListing(project ProjectID) MergeRequestsListing {
	return MergeRequestsListing{project: project}
}

// IIDs keeps the merge requests with these project-scoped numbers.
func (l MergeRequestsListing) IIDs(iids ...int) MergeRequestsListing {
	l.iids = slices.Clone(iids)

	return l
}

func (l MergeRequestsListing) State(state MergeRequestState) MergeRequestsListing {
	l.state = mustEnum(state)

	return l
}

func (l MergeRequestsListing) OrderBy(orderBy OrderBy) MergeRequestsListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l MergeRequestsListing) Sort(sort SortDirection) MergeRequestsListing {
	l.sort = mustEnum(sort)

	return l
}

// Query implements Listing.
func (l MergeRequestsListing) Query() string {
	enc := newQueryEncoder(projectPath(l.project) + "/merge_requests")
	enc.list("iid", l.iids)
	encodeEnum(enc, "state", l.state)
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)

	return enc.String()
}

// MergeRequestListing reads one merge request by its internal id
// (GET projects/:id/merge_requests/:merge_request_id).
type MergeRequestListing struct {
	project        ProjectID
	mergeRequestID int
}

func NewMergeRequestListing(project ProjectID, mergeRequestID int) MergeRequestListing {
	return MergeRequestListing{project: project, mergeRequestID: mergeRequestID}
}

// Query implements Listing.
func (l MergeRequestListing) Query() string {
	return projectPath(l.project) + "/merge_requests/" + strconv.Itoa(l.mergeRequestID)
}
