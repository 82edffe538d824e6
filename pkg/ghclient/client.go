package ghclient

import (
	"fmt"

	"github.com/fivetwenty-io/ghapi-client/internal/client"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi/backend/retryable"
)

// New creates a GitHub API client that sends every request through caller.
func New(caller ghapi.Caller, config *ghapi.Config) (ghapi.Client, error) {
	c, err := client.New(caller, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithAuth creates a client on the blocking retryable backend.
func NewWithAuth(endpoint string, auth ghapi.Auth) (ghapi.Client, error) {
	caller := ghapi.Blocking(retryable.New(auth))

	return New(caller, &ghapi.Config{APIEndpoint: endpoint})
}

// NewWithToken creates a client authenticating with a personal access token.
func NewWithToken(endpoint, token string) (ghapi.Client, error) {
	return NewWithAuth(endpoint, ghapi.TokenAuth(token))
}
