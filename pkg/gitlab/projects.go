package gitlab

import "strconv"

// ProjectID identifies a project in a path, either by its numeric id or
// by its namespaced path (group/project).
type ProjectID struct {
	id   int
	path string
}

// ProjectByID identifies a project by numeric id.
func ProjectByID(id int) ProjectID {
	return ProjectID{id: id}
}

// ProjectByPath identifies a project by namespaced path, e.g. group/project.
func ProjectByPath(path string) ProjectID {
	return ProjectID{path: path}
}

// ParseProjectID treats an all-digit input as a numeric id and anything
// else as a namespaced path.
func ParseProjectID(input string) ProjectID {
	id, err := strconv.Atoi(input)
	if err == nil && id > 0 {
		return ProjectByID(id)
	}

	return ProjectByPath(input)
}

// String returns the path segment form: the id, or the escaped path.
func (p ProjectID) String() string {
	if p.path != "" {
		return EscapePathSegment(p.path)
	}

	return strconv.Itoa(p.id)
}

func projectPath(id ProjectID) string {
	return "projects/" + id.String()
}

// ProjectsListing lists projects (GET projects, projects/all,
// projects/owned or projects/visible depending on the scope).
//
// Filters are encoded in this order: archived, visibility, order_by, sort,
// search, simple.
type ProjectsListing struct {
	scope      ProjectScope
	archived   *bool
	visibility Visibility
	orderBy    ProjectOrderBy
	sort       SortDirection
	search     *string
	simple     *bool
}

// NewProjectsListing returns a listing of every project accessible to the caller.
func NewProjectsListing() ProjectsListing {
	return ProjectsListing{}
}

// Scope selects the project collection.
func (l ProjectsListing) Scope(scope ProjectScope) ProjectsListing {
	l.scope = mustEnum(scope)

	return l
}

func (l ProjectsListing) Archived(archived bool) ProjectsListing {
	l.archived = &archived

	return l
}

func (l ProjectsListing) Visibility(visibility Visibility) ProjectsListing {
	l.visibility = mustEnum(visibility)

	return l
}

func (l ProjectsListing) OrderBy(orderBy ProjectOrderBy) ProjectsListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l ProjectsListing) Sort(sort SortDirection) ProjectsListing {
	l.sort = mustEnum(sort)

	return l
}

// Search matches projects whose name contains search.
func (l ProjectsListing) Search(search string) ProjectsListing {
	l.search = &search

	return l
}

// Simple asks for a reduced project representation.
func (l ProjectsListing) Simple(simple bool) ProjectsListing {
	l.simple = &simple

	return l
}

// Query implements Listing.
func (l ProjectsListing) Query() string {
	enc := newQueryEncoder(l.scope.path())
	enc.boolean("archived", l.archived)
	encodeEnum(enc, "visibility", l.visibility)
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)
	enc.text("search", l.search)
	enc.boolean("simple", l.simple)

	return enc.String()
}

// ProjectSearchListing searches projects by name (GET projects/search/:query).
//
// Filters are encoded in this order: order_by, sort.
type ProjectSearchListing struct {
	query   string
	orderBy SearchOrderBy
	sort    SortDirection
}

// NewProjectSearchListing searches for projects named like query.
func NewProjectSearchListing(query string) ProjectSearchListing {
	return ProjectSearchListing{query: query}
}

func (l ProjectSearchListing) OrderBy(orderBy SearchOrderBy) ProjectSearchListing {
	l.orderBy = mustEnum(orderBy)

	return l
}

func (l ProjectSearchListing) Sort(sort SortDirection) ProjectSearchListing {
	l.sort = mustEnum(sort)

	return l
}

// Query implements Listing.
func (l ProjectSearchListing) Query() string {
	enc := newQueryEncoder("projects/search/" + EscapePathSegment(l.query))
	encodeEnum(enc, "order_by", l.orderBy)
	encodeEnum(enc, "sort", l.sort)

	return enc.String()
}

// ProjectListing reads a single project (GET projects/:id).
type ProjectListing struct {
	project ProjectID
}

func NewProjectListing(project ProjectID) ProjectListing {
	return ProjectListing{project: project}
}

// Query implements Listing.
func (l ProjectListing) Query() string {
	return projectPath(l.project)
}

// ProjectEventsListing lists a project's events (GET projects/:id/events).
type ProjectEventsListing struct {
	project ProjectID
}

func NewProjectEventsListing(project ProjectID) ProjectEventsListing {
	return ProjectEventsListing{project: project}
}

// Query implements Listing.
func (l ProjectEventsListing) Query() string {
	return projectPath(l.project) + "/events"
}

// ProjectHooksListing lists a project's webhooks (GET projects/:id/hooks).
type ProjectHooksListing struct {
	project ProjectID
}

func NewProjectHooksListing(project ProjectID) ProjectHooksListing {
	return ProjectHooksListing{project: project}
}

// Query implements Listing.
func (l ProjectHooksListing) Query() string {
	return projectPath(l.project) + "/hooks"
}

// ProjectHookListing reads one webhook (GET projects/:id/hooks/:hook_id).
type ProjectHookListing struct {
	project ProjectID
	hookID  int
}

func NewProjectHookListing(project ProjectID, hookID int) ProjectHookListing {
	return ProjectHookListing{project: project, hookID: hookID}
}

// Query implements Listing.
func (l ProjectHookListing) Query() string {
	return projectPath(l.project) + "/hooks/" + strconv.Itoa(l.hookID)
}

// ProjectBranchesListing lists repository branches (GET projects/:id/repository/branches).
type ProjectBranchesListing struct {
	project ProjectID
}

func NewProjectBranchesListing(project ProjectID) ProjectBranchesListing {
	return ProjectBranchesListing{project: project}
}

// Query implements Listing.
func (l ProjectBranchesListing) Query() string {
	return projectPath(l.project) + "/repository/branches"
}

// ProjectBranchListing reads one branch (GET projects/:id/repository/branches/:branch).
// Branch names such as feature/x are escaped like any other path segment.
type ProjectBranchListing struct {
	project ProjectID
	branch  string
}

func NewProjectBranchListing(project ProjectID, branch string) ProjectBranchListing {
	return ProjectBranchListing{project: project, branch: branch}
}

// Query implements Listing.
func (l ProjectBranchListing) Query() string {
	return projectPath(l.project) + "/repository/branches/" + EscapePathSegment(l.branch)
}
