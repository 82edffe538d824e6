package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// IssuesClient implements ghapi.IssuesClient.
type IssuesClient struct {
	*endpoint
}

// newIssuesClient creates a new issues client.
func newIssuesClient(ep *endpoint) *IssuesClient {
	return &IssuesClient{endpoint: ep}
}

var getIssueErrors = ghapi.ErrorMap{
	http.StatusMovedPermanently: basicError(),
	http.StatusNotFound:         basicError(),
	http.StatusGone:             basicError(),
}

var createIssueErrors = ghapi.ErrorMap{
	http.StatusBadRequest:          basicError(),
	http.StatusForbidden:           basicError(),
	http.StatusNotFound:            basicError(),
	http.StatusGone:                basicError(),
	http.StatusUnprocessableEntity: ghapi.Expect[ghapi.ValidationError](),
	http.StatusServiceUnavailable:  ghapi.Expect[ghapi.ServiceUnavailable](),
}

// Get implements ghapi.IssuesClient.Get.
func (c *IssuesClient) Get(ctx context.Context, owner, repo string, number int) (*ghapi.Issue, error) {
	path := repoPath(owner, repo) + "/issues/" + strconv.Itoa(number)

	env, err := c.request(http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting issue: %w", err)
	}

	issue, err := ghapi.Invoke[ghapi.Issue](ctx, c.caller, env, getIssueErrors)
	if err != nil {
		return nil, fmt.Errorf("getting issue: %w", err)
	}

	return &issue, nil
}

// Create implements ghapi.IssuesClient.Create.
func (c *IssuesClient) Create(ctx context.Context, owner, repo string, req *ghapi.IssueCreateRequest) (*ghapi.Issue, error) {
	body, err := ghapi.EncodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	env, err := c.request(http.MethodPost, repoPath(owner, repo)+"/issues", nil)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	issue, err := ghapi.Invoke[ghapi.Issue](ctx, c.caller, env.WithBody(body), createIssueErrors)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	return &issue, nil
}
