package gitlab

import "time"

// Version is the response of GET version.
type Version struct {
	Version  string `json:"version"  yaml:"version"`
	Revision string `json:"revision" yaml:"revision"`
}

// Group is a GitLab group.
type Group struct {
	ID                   int    `json:"id"                     yaml:"id"`
	Name                 string `json:"name"                   yaml:"name"`
	Path                 string `json:"path"                   yaml:"path"`
	FullName             string `json:"full_name"              yaml:"full_name"`
	FullPath             string `json:"full_path"              yaml:"full_path"`
	Description          string `json:"description"            yaml:"description"`
	Visibility           string `json:"visibility"             yaml:"visibility"`
	LFSEnabled           bool   `json:"lfs_enabled"            yaml:"lfs_enabled"`
	AvatarURL            string `json:"avatar_url,omitempty"   yaml:"avatar_url,omitempty"`
	WebURL               string `json:"web_url"                yaml:"web_url"`
	RequestAccessEnabled bool   `json:"request_access_enabled" yaml:"request_access_enabled"`
	ParentID             *int   `json:"parent_id,omitempty"    yaml:"parent_id,omitempty"`
}

// Namespace is the group or user namespace a project lives in.
type Namespace struct {
	ID       int    `json:"id"        yaml:"id"`
	Name     string `json:"name"      yaml:"name"`
	Path     string `json:"path"      yaml:"path"`
	Kind     string `json:"kind"      yaml:"kind"`
	FullPath string `json:"full_path" yaml:"full_path"`
}

// Permissions holds the caller's access levels on a project.
type Permissions struct {
	ProjectAccess *Access `json:"project_access" yaml:"project_access"`
	GroupAccess   *Access `json:"group_access"   yaml:"group_access"`
}

// Access is one access grant.
type Access struct {
	AccessLevel       int `json:"access_level"       yaml:"access_level"`
	NotificationLevel int `json:"notification_level" yaml:"notification_level"`
}

// Project is a GitLab project.
type Project struct {
	ID                int          `json:"id"                       yaml:"id"`
	Description       string       `json:"description"              yaml:"description"`
	DefaultBranch     string       `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	TagList           []string     `json:"tag_list"                 yaml:"tag_list"`
	Topics            []string     `json:"topics"                   yaml:"topics"`
	Archived          bool         `json:"archived"                 yaml:"archived"`
	Visibility        string       `json:"visibility"               yaml:"visibility"`
	SSHURLToRepo      string       `json:"ssh_url_to_repo"          yaml:"ssh_url_to_repo"`
	HTTPURLToRepo     string       `json:"http_url_to_repo"         yaml:"http_url_to_repo"`
	WebURL            string       `json:"web_url"                  yaml:"web_url"`
	Name              string       `json:"name"                     yaml:"name"`
	NameWithNamespace string       `json:"name_with_namespace"      yaml:"name_with_namespace"`
	Path              string       `json:"path"                     yaml:"path"`
	PathWithNamespace string       `json:"path_with_namespace"      yaml:"path_with_namespace"`
	Namespace         Namespace    `json:"namespace"                yaml:"namespace"`
	Owner             *User        `json:"owner,omitempty"          yaml:"owner,omitempty"`
	IssuesEnabled     bool         `json:"issues_enabled"           yaml:"issues_enabled"`
	MergeRequests     bool         `json:"merge_requests_enabled"   yaml:"merge_requests_enabled"`
	StarCount         int          `json:"star_count"               yaml:"star_count"`
	ForksCount        int          `json:"forks_count"              yaml:"forks_count"`
	OpenIssuesCount   int          `json:"open_issues_count"        yaml:"open_issues_count"`
	CreatedAt         *time.Time   `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
	LastActivityAt    *time.Time   `json:"last_activity_at,omitempty" yaml:"last_activity_at,omitempty"`
	Permissions       *Permissions `json:"permissions,omitempty"    yaml:"permissions,omitempty"`
}

// User is a GitLab user as embedded in other resources.
type User struct {
	ID        int    `json:"id"                   yaml:"id"`
	Name      string `json:"name"                 yaml:"name"`
	Username  string `json:"username"             yaml:"username"`
	State     string `json:"state"                yaml:"state"`
	AvatarURL string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	WebURL    string `json:"web_url,omitempty"    yaml:"web_url,omitempty"`
}

// Milestone is a project or group milestone.
type Milestone struct {
	ID          int        `json:"id"                   yaml:"id"`
	IID         int        `json:"iid"                  yaml:"iid"`
	ProjectID   int        `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	GroupID     int        `json:"group_id,omitempty"   yaml:"group_id,omitempty"`
	Title       string     `json:"title"                yaml:"title"`
	Description string     `json:"description"          yaml:"description"`
	State       string     `json:"state"                yaml:"state"`
	DueDate     string     `json:"due_date,omitempty"   yaml:"due_date,omitempty"`
	StartDate   string     `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	WebURL      string     `json:"web_url,omitempty"    yaml:"web_url,omitempty"`
}

// Issue is a project issue. IID is the project-scoped number shown in the
// UI (#42); ID is the instance-wide internal id.
type Issue struct {
	ID             int        `json:"id"                  yaml:"id"`
	IID            int        `json:"iid"                 yaml:"iid"`
	ProjectID      int        `json:"project_id"          yaml:"project_id"`
	Title          string     `json:"title"               yaml:"title"`
	Description    string     `json:"description"         yaml:"description"`
	State          string     `json:"state"               yaml:"state"`
	CreatedAt      *time.Time `json:"created_at"          yaml:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"          yaml:"updated_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
	Labels         []string   `json:"labels"              yaml:"labels"`
	Milestone      *Milestone `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Assignee       *User      `json:"assignee,omitempty"  yaml:"assignee,omitempty"`
	Assignees      []User     `json:"assignees"           yaml:"assignees"`
	Author         User       `json:"author"              yaml:"author"`
	Subscribed     bool       `json:"subscribed"          yaml:"subscribed"`
	UserNotesCount int        `json:"user_notes_count"    yaml:"user_notes_count"`
	Upvotes        int        `json:"upvotes"             yaml:"upvotes"`
	Downvotes      int        `json:"downvotes"           yaml:"downvotes"`
	DueDate        string     `json:"due_date,omitempty"  yaml:"due_date,omitempty"`
	Confidential   bool       `json:"confidential"        yaml:"confidential"`
	WebURL         string     `json:"web_url,omitempty"   yaml:"web_url,omitempty"`
}

// MergeRequest is a project merge request.
type MergeRequest struct {
	ID                        int        `json:"id"                           yaml:"id"`
	IID                       int        `json:"iid"                          yaml:"iid"`
	ProjectID                 int        `json:"project_id"                   yaml:"project_id"`
	Title                     string     `json:"title"                        yaml:"title"`
	Description               string     `json:"description"                  yaml:"description"`
	State                     string     `json:"state"                        yaml:"state"`
	CreatedAt                 *time.Time `json:"created_at"                   yaml:"created_at"`
	UpdatedAt                 *time.Time `json:"updated_at"                   yaml:"updated_at"`
	MergedAt                  *time.Time `json:"merged_at,omitempty"          yaml:"merged_at,omitempty"`
	TargetBranch              string     `json:"target_branch"                yaml:"target_branch"`
	SourceBranch              string     `json:"source_branch"                yaml:"source_branch"`
	Upvotes                   int        `json:"upvotes"                      yaml:"upvotes"`
	Downvotes                 int        `json:"downvotes"                    yaml:"downvotes"`
	Author                    User       `json:"author"                       yaml:"author"`
	Assignee                  *User      `json:"assignee,omitempty"           yaml:"assignee,omitempty"`
	SourceProjectID           int        `json:"source_project_id"            yaml:"source_project_id"`
	TargetProjectID           int        `json:"target_project_id"            yaml:"target_project_id"`
	Labels                    []string   `json:"labels"                       yaml:"labels"`
	Draft                     bool       `json:"draft"                        yaml:"draft"`
	Milestone                 *Milestone `json:"milestone,omitempty"          yaml:"milestone,omitempty"`
	MergeWhenPipelineSucceeds bool       `json:"merge_when_pipeline_succeeds" yaml:"merge_when_pipeline_succeeds"`
	SHA                       string     `json:"sha"                          yaml:"sha"`
	UserNotesCount            int        `json:"user_notes_count"             yaml:"user_notes_count"`
	WebURL                    string     `json:"web_url,omitempty"            yaml:"web_url,omitempty"`
}

// Hook is a project webhook.
type Hook struct {
	ID                    int        `json:"id"                      yaml:"id"`
	URL                   string     `json:"url"                     yaml:"url"`
	ProjectID             int        `json:"project_id"              yaml:"project_id"`
	PushEvents            bool       `json:"push_events"             yaml:"push_events"`
	IssuesEvents          bool       `json:"issues_events"           yaml:"issues_events"`
	MergeRequestsEvents   bool       `json:"merge_requests_events"   yaml:"merge_requests_events"`
	TagPushEvents         bool       `json:"tag_push_events"         yaml:"tag_push_events"`
	NoteEvents            bool       `json:"note_events"             yaml:"note_events"`
	PipelineEvents        bool       `json:"pipeline_events"         yaml:"pipeline_events"`
	EnableSSLVerification bool       `json:"enable_ssl_verification" yaml:"enable_ssl_verification"`
	CreatedAt             *time.Time `json:"created_at"              yaml:"created_at"`
}

// Branch is a repository branch.
type Branch struct {
	Name               string `json:"name"                 yaml:"name"`
	Merged             bool   `json:"merged"               yaml:"merged"`
	Protected          bool   `json:"protected"            yaml:"protected"`
	Default            bool   `json:"default"              yaml:"default"`
	DevelopersCanPush  bool   `json:"developers_can_push"  yaml:"developers_can_push"`
	DevelopersCanMerge bool   `json:"developers_can_merge" yaml:"developers_can_merge"`
	WebURL             string `json:"web_url,omitempty"    yaml:"web_url,omitempty"`
	Commit             Commit `json:"commit"               yaml:"commit"`
}

// Commit is the head commit of a branch.
type Commit struct {
	ID            string     `json:"id"             yaml:"id"`
	ShortID       string     `json:"short_id"       yaml:"short_id"`
	Title         string     `json:"title"          yaml:"title"`
	Message       string     `json:"message"        yaml:"message"`
	AuthorName    string     `json:"author_name"    yaml:"author_name"`
	AuthorEmail   string     `json:"author_email"   yaml:"author_email"`
	AuthoredDate  *time.Time `json:"authored_date"  yaml:"authored_date"`
	CommittedDate *time.Time `json:"committed_date" yaml:"committed_date"`
	ParentIDs     []string   `json:"parent_ids"     yaml:"parent_ids"`
}

// Event is an entry of a project's activity feed.
type Event struct {
	ID             int        `json:"id"                     yaml:"id"`
	Title          string     `json:"title,omitempty"        yaml:"title,omitempty"`
	ProjectID      int        `json:"project_id"             yaml:"project_id"`
	ActionName     string     `json:"action_name"            yaml:"action_name"`
	TargetID       *int       `json:"target_id,omitempty"    yaml:"target_id,omitempty"`
	TargetIID      *int       `json:"target_iid,omitempty"   yaml:"target_iid,omitempty"`
	TargetType     string     `json:"target_type,omitempty"  yaml:"target_type,omitempty"`
	TargetTitle    string     `json:"target_title,omitempty" yaml:"target_title,omitempty"`
	AuthorID       int        `json:"author_id"              yaml:"author_id"`
	AuthorUsername string     `json:"author_username"        yaml:"author_username"`
	Author         *User      `json:"author,omitempty"       yaml:"author,omitempty"`
	CreatedAt      *time.Time `json:"created_at"             yaml:"created_at"`
}
