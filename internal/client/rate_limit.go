package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// RateLimitClient implements ghapi.RateLimitClient.
type RateLimitClient struct {
	*endpoint
}

// newRateLimitClient creates a new rate limit client.
func newRateLimitClient(ep *endpoint) *RateLimitClient {
	return &RateLimitClient{endpoint: ep}
}

var rateLimitErrors = ghapi.ErrorMap{
	http.StatusNotFound: basicError(),
}

// Get implements ghapi.RateLimitClient.Get.
func (c *RateLimitClient) Get(ctx context.Context) (*ghapi.RateLimitOverview, error) {
	env, err := c.request(http.MethodGet, "/rate_limit", nil)
	if err != nil {
		return nil, fmt.Errorf("getting rate limit: %w", err)
	}

	overview, err := ghapi.Invoke[ghapi.RateLimitOverview](ctx, c.caller, env, rateLimitErrors)
	if err != nil {
		return nil, fmt.Errorf("getting rate limit: %w", err)
	}

	return &overview, nil
}
