package client

import (
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// Client implements ghapi.Client on top of a ghapi.Caller.
type Client struct {
	caller  ghapi.Caller
	baseURL string
	perPage int
	logger  ghapi.Logger

	repos     *ReposClient
	search    *SearchClient
	issues    *IssuesClient
	rateLimit *RateLimitClient
}

var _ ghapi.Client = (*Client)(nil)

// New creates a client that sends every request through caller.
func New(caller ghapi.Caller, config *ghapi.Config) (*Client, error) {
	if caller == nil {
		return nil, ghapi.ErrCallerRequired
	}

	if config == nil {
		return nil, ghapi.ErrConfigRequired
	}

	logger := config.Logger
	if logger == nil || !config.Debug {
		logger = ghapi.NopLogger()
	}

	perPage := config.PerPage
	if perPage <= 0 {
		perPage = constants.DefaultPerPage
	}

	client := &Client{
		caller:  caller,
		baseURL: NormalizeEndpoint(config.APIEndpoint),
		perPage: min(perPage, constants.MaxPerPage),
		logger:  logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NormalizeEndpoint trims a trailing slash and adds https:// when no scheme
// is present. An empty endpoint selects the public API.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return constants.DefaultAPIEndpoint
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return strings.TrimRight(endpoint, "/")
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Repos implements ghapi.Client.Repos.
func (c *Client) Repos() ghapi.ReposClient {
	return c.repos
}

// Search implements ghapi.Client.Search.
func (c *Client) Search() ghapi.SearchClient {
	return c.search
}

// Issues implements ghapi.Client.Issues.
func (c *Client) Issues() ghapi.IssuesClient {
	return c.issues
}

// RateLimit implements ghapi.Client.RateLimit.
func (c *Client) RateLimit() ghapi.RateLimitClient {
	return c.rateLimit
}

func (c *Client) initializeResourceClients() {
	ep := &endpoint{caller: c.caller, baseURL: c.baseURL}

	c.repos = newReposClient(ep)
	c.search = newSearchClient(ep, c.perPage, c.logger)
	c.issues = newIssuesClient(ep)
	c.rateLimit = newRateLimitClient(ep)
}

// endpoint is what every resource client shares.
type endpoint struct {
	caller  ghapi.Caller
	baseURL string
}

func (e *endpoint) request(method, path string, query url.Values) (*ghapi.RequestEnvelope, error) {
	uri, err := ghapi.BuildURI(e.baseURL, path, query)
	if err != nil {
		return nil, err
	}

	return ghapi.NewRequest(method, uri), nil
}

// repoPath escapes owner and repo into /repos/{owner}/{repo}.
func repoPath(owner, repo string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

func basicError() ghapi.ErrorDecoder {
	return ghapi.Expect[ghapi.BasicError]()
}
