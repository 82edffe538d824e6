package ghapi

import (
	"time"
)

// User is the simple user object embedded in most GitHub resources.
type User struct {
	Login     string `json:"login"                yaml:"login"`
	ID        int64  `json:"id"                   yaml:"id"`
	NodeID    string `json:"node_id,omitempty"    yaml:"node_id,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"   yaml:"html_url,omitempty"`
	Type      string `json:"type,omitempty"       yaml:"type,omitempty"`
	SiteAdmin bool   `json:"site_admin"           yaml:"site_admin"`
}

// GitUser is the author or committer recorded in a git object.
type GitUser struct {
	Name  string    `json:"name"  yaml:"name"`
	Email string    `json:"email" yaml:"email"`
	Date  time.Time `json:"date"  yaml:"date"`
}

// Tree references a git tree.
type Tree struct {
	SHA string `json:"sha" yaml:"sha"`
	URL string `json:"url" yaml:"url"`
}

// CommitDetail is the git-level part of a commit.
type CommitDetail struct {
	Author       *GitUser `json:"author,omitempty"    yaml:"author,omitempty"`
	Committer    *GitUser `json:"committer,omitempty" yaml:"committer,omitempty"`
	Message      string   `json:"message"             yaml:"message"`
	Tree         Tree     `json:"tree"                yaml:"tree"`
	URL          string   `json:"url"                 yaml:"url"`
	CommentCount int      `json:"comment_count"       yaml:"comment_count"`
}

// CommitParent references a parent commit.
type CommitParent struct {
	SHA     string `json:"sha"                yaml:"sha"`
	URL     string `json:"url"                yaml:"url"`
	HTMLURL string `json:"html_url,omitempty" yaml:"html_url,omitempty"`
}

// Commit is an item of the list-commits endpoint.
type Commit struct {
	SHA       string         `json:"sha"                 yaml:"sha"`
	NodeID    string         `json:"node_id"             yaml:"node_id"`
	URL       string         `json:"url"                 yaml:"url"`
	HTMLURL   string         `json:"html_url"            yaml:"html_url"`
	Commit    CommitDetail   `json:"commit"              yaml:"commit"`
	Author    *User          `json:"author,omitempty"    yaml:"author,omitempty"`
	Committer *User          `json:"committer,omitempty" yaml:"committer,omitempty"`
	Parents   []CommitParent `json:"parents"             yaml:"parents"`
}

// Repository is a GitHub repository.
type Repository struct {
	ID              int64      `json:"id"                    yaml:"id"`
	NodeID          string     `json:"node_id"               yaml:"node_id"`
	Name            string     `json:"name"                  yaml:"name"`
	FullName        string     `json:"full_name"             yaml:"full_name"`
	Owner           *User      `json:"owner,omitempty"       yaml:"owner,omitempty"`
	Private         bool       `json:"private"               yaml:"private"`
	HTMLURL         string     `json:"html_url"              yaml:"html_url"`
	Description     string     `json:"description,omitempty" yaml:"description,omitempty"`
	Fork            bool       `json:"fork"                  yaml:"fork"`
	Language        string     `json:"language,omitempty"    yaml:"language,omitempty"`
	StargazersCount int        `json:"stargazers_count"      yaml:"stargazers_count"`
	WatchersCount   int        `json:"watchers_count"        yaml:"watchers_count"`
	ForksCount      int        `json:"forks_count"           yaml:"forks_count"`
	OpenIssuesCount int        `json:"open_issues_count"     yaml:"open_issues_count"`
	DefaultBranch   string     `json:"default_branch"        yaml:"default_branch"`
	Topics          []string   `json:"topics,omitempty"      yaml:"topics,omitempty"`
	Archived        bool       `json:"archived"              yaml:"archived"`
	CreatedAt       time.Time  `json:"created_at"            yaml:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"            yaml:"updated_at"`
	PushedAt        *time.Time `json:"pushed_at,omitempty"   yaml:"pushed_at,omitempty"`
}

// Label is an issue label.
type Label struct {
	ID          int64  `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Color       string `json:"color"                 yaml:"color"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// IssuePullRequest is present on issues that are pull requests.
type IssuePullRequest struct {
	URL     string `json:"url"      yaml:"url"`
	HTMLURL string `json:"html_url" yaml:"html_url"`
}

// Issue is a GitHub issue or pull request.
type Issue struct {
	ID          int64             `json:"id"                     yaml:"id"`
	NodeID      string            `json:"node_id"                yaml:"node_id"`
	Number      int               `json:"number"                 yaml:"number"`
	Title       string            `json:"title"                  yaml:"title"`
	Body        string            `json:"body,omitempty"         yaml:"body,omitempty"`
	State       string            `json:"state"                  yaml:"state"`
	User        *User             `json:"user,omitempty"         yaml:"user,omitempty"`
	Labels      []Label           `json:"labels,omitempty"       yaml:"labels,omitempty"`
	Assignees   []User            `json:"assignees,omitempty"    yaml:"assignees,omitempty"`
	Comments    int               `json:"comments"               yaml:"comments"`
	HTMLURL     string            `json:"html_url"               yaml:"html_url"`
	CreatedAt   time.Time         `json:"created_at"             yaml:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"             yaml:"updated_at"`
	ClosedAt    *time.Time        `json:"closed_at,omitempty"    yaml:"closed_at,omitempty"`
	PullRequest *IssuePullRequest `json:"pull_request,omitempty" yaml:"pull_request,omitempty"`
}

// IssueCreateRequest is the body of the create-issue endpoint.
type IssueCreateRequest struct {
	Title     string   `json:"title"               yaml:"title"`
	Body      string   `json:"body,omitempty"      yaml:"body,omitempty"`
	Assignees []string `json:"assignees,omitempty" yaml:"assignees,omitempty"`
	Labels    []string `json:"labels,omitempty"    yaml:"labels,omitempty"`
	Milestone *int     `json:"milestone,omitempty" yaml:"milestone,omitempty"`
}

// RateLimitResource is the quota of one API resource family.
type RateLimitResource struct {
	Limit     int   `json:"limit"     yaml:"limit"`
	Used      int   `json:"used"      yaml:"used"`
	Remaining int   `json:"remaining" yaml:"remaining"`
	Reset     int64 `json:"reset"     yaml:"reset"`
}

// ResetTime converts Reset to a time.
func (r RateLimitResource) ResetTime() time.Time {
	return time.Unix(r.Reset, 0)
}

// RateLimitOverview is the body of GET /rate_limit.
type RateLimitOverview struct {
	Resources map[string]RateLimitResource `json:"resources" yaml:"resources"`
	Rate      RateLimitResource            `json:"rate"      yaml:"rate"`
}

// RepositorySearchResult is one page of repository search results.
type RepositorySearchResult = Page[Repository]

// IssueSearchResult is one page of issue search results.
type IssueSearchResult = Page[Issue]
