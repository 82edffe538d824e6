package ghapi

import (
	"context"
)

// Client is the main interface for the GitHub REST API.
type Client interface {
	Repos() ReposClient
	Search() SearchClient
	Issues() IssuesClient
	RateLimit() RateLimitClient
}

// ReposClient covers repository endpoints.
type ReposClient interface {
	Get(ctx context.Context, owner, repo string) (*Repository, error)
	ListCommits(ctx context.Context, owner, repo string, params *QueryParams) ([]Commit, error)
}

// SearchClient covers the search endpoints. Stream variants walk every page
// and pace requests by the rate-limit headers.
type SearchClient interface {
	Repositories(ctx context.Context, params *QueryParams) (*RepositorySearchResult, error)
	Issues(ctx context.Context, params *QueryParams) (*IssueSearchResult, error)
	StreamRepositories(params *QueryParams, opts ...StreamOption) *Stream[Repository]
	StreamIssues(params *QueryParams, opts ...StreamOption) *Stream[Issue]
}

// IssuesClient covers issue endpoints.
type IssuesClient interface {
	Get(ctx context.Context, owner, repo string, number int) (*Issue, error)
	Create(ctx context.Context, owner, repo string, req *IssueCreateRequest) (*Issue, error)
}

// RateLimitClient reports the caller's quota. GitHub does not count this call
// against it.
type RateLimitClient interface {
	Get(ctx context.Context) (*RateLimitOverview, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

// Config holds the client-level settings shared by every endpoint. Backend
// settings such as credentials, timeouts and retries are given to the
// backend constructor instead.
type Config struct {
	// APIEndpoint: base URL for the API. Defaults to https://api.github.com.
	// ghclient.New trims a trailing slash and adds "https://" if no scheme
	// is present.
	APIEndpoint string
	// PerPage: default page size for streams. Clamped to [1, 100].
	PerPage int
	// Debug: enables page-by-page stream logging through Logger. Per-request
	// logging is configured on the Caller with WithDebug.
	Debug bool
	// Logger: optional structured logger used by endpoint clients and streams.
	Logger Logger
}
