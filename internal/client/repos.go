package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// ReposClient implements ghapi.ReposClient.
type ReposClient struct {
	*endpoint
}

// newReposClient creates a new repositories client.
func newReposClient(ep *endpoint) *ReposClient {
	return &ReposClient{endpoint: ep}
}

var getRepositoryErrors = ghapi.ErrorMap{
	http.StatusMovedPermanently: basicError(),
	http.StatusForbidden:        basicError(),
	http.StatusNotFound:         basicError(),
}

var listCommitsErrors = ghapi.ErrorMap{
	http.StatusBadRequest:          basicError(),
	http.StatusNotFound:            basicError(),
	http.StatusConflict:            basicError(),
	http.StatusInternalServerError: basicError(),
}

// Get implements ghapi.ReposClient.Get.
func (c *ReposClient) Get(ctx context.Context, owner, repo string) (*ghapi.Repository, error) {
	env, err := c.request(http.MethodGet, repoPath(owner, repo), nil)
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}

	repository, err := ghapi.Invoke[ghapi.Repository](ctx, c.caller, env, getRepositoryErrors)
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}

	return &repository, nil
}

// ListCommits implements ghapi.ReposClient.ListCommits.
func (c *ReposClient) ListCommits(ctx context.Context, owner, repo string, params *ghapi.QueryParams) ([]ghapi.Commit, error) {
	env, err := c.request(http.MethodGet, repoPath(owner, repo)+"/commits", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	commits, err := ghapi.Invoke[[]ghapi.Commit](ctx, c.caller, env, listCommitsErrors)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	return commits, nil
}
