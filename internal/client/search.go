package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// SearchClient implements ghapi.SearchClient.
type SearchClient struct {
	*endpoint

	perPage int
	logger  ghapi.Logger
}

// newSearchClient creates a new search client. perPage is the stream page
// size used when the query does not set one.
func newSearchClient(ep *endpoint, perPage int, logger ghapi.Logger) *SearchClient {
	return &SearchClient{endpoint: ep, perPage: perPage, logger: logger}
}

var searchRepositoriesErrors = ghapi.ErrorMap{
	http.StatusUnprocessableEntity: ghapi.Expect[ghapi.ValidationError](),
	http.StatusServiceUnavailable:  ghapi.Expect[ghapi.ServiceUnavailable](),
}

var searchIssuesErrors = ghapi.ErrorMap{
	http.StatusForbidden:           basicError(),
	http.StatusUnprocessableEntity: ghapi.Expect[ghapi.ValidationError](),
	http.StatusServiceUnavailable:  ghapi.Expect[ghapi.ServiceUnavailable](),
}

// Repositories implements ghapi.SearchClient.Repositories.
func (c *SearchClient) Repositories(ctx context.Context, params *ghapi.QueryParams) (*ghapi.RepositorySearchResult, error) {
	page, err := searchPage[ghapi.Repository](ctx, c.endpoint, "/search/repositories", params, searchRepositoriesErrors)
	if err != nil {
		return nil, fmt.Errorf("searching repositories: %w", err)
	}

	return page, nil
}

// Issues implements ghapi.SearchClient.Issues.
func (c *SearchClient) Issues(ctx context.Context, params *ghapi.QueryParams) (*ghapi.IssueSearchResult, error) {
	page, err := searchPage[ghapi.Issue](ctx, c.endpoint, "/search/issues", params, searchIssuesErrors)
	if err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}

	return page, nil
}

// StreamRepositories implements ghapi.SearchClient.StreamRepositories.
func (c *SearchClient) StreamRepositories(params *ghapi.QueryParams, opts ...ghapi.StreamOption) *ghapi.Stream[ghapi.Repository] {
	return ghapi.NewStream(func(ctx context.Context, page, perPage int) (*ghapi.Page[ghapi.Repository], error) {
		return c.Repositories(ctx, params.Clone().WithPage(page).WithPerPage(perPage))
	}, c.streamPerPage(params), c.streamOptions(opts)...)
}

// StreamIssues implements ghapi.SearchClient.StreamIssues.
func (c *SearchClient) StreamIssues(params *ghapi.QueryParams, opts ...ghapi.StreamOption) *ghapi.Stream[ghapi.Issue] {
	return ghapi.NewStream(func(ctx context.Context, page, perPage int) (*ghapi.Page[ghapi.Issue], error) {
		return c.Issues(ctx, params.Clone().WithPage(page).WithPerPage(perPage))
	}, c.streamPerPage(params), c.streamOptions(opts)...)
}

func (c *SearchClient) streamPerPage(params *ghapi.QueryParams) int {
	if params != nil && params.PerPage > 0 {
		return params.PerPage
	}

	return c.perPage
}

func (c *SearchClient) streamOptions(opts []ghapi.StreamOption) []ghapi.StreamOption {
	return append([]ghapi.StreamOption{ghapi.WithStreamLogger(c.logger)}, opts...)
}

func searchPage[T any](
	ctx context.Context,
	ep *endpoint,
	path string,
	params *ghapi.QueryParams,
	errs ghapi.ErrorMap,
) (*ghapi.Page[T], error) {
	env, err := ep.request(http.MethodGet, path, params.ToValues())
	if err != nil {
		return nil, err
	}

	page, meta, err := ghapi.InvokeMeta[ghapi.Page[T]](ctx, ep.caller, env, errs)
	if err != nil {
		return nil, err
	}

	page.RateLimit = meta.RateLimit

	return &page, nil
}
