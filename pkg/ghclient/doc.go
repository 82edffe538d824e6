// Package ghclient provides the primary entry point for constructing a
// GitHub REST API client that implements the ghapi.Client interface.
//
// The client is independent of the transport. Pick a backend, wrap it in a
// Caller and hand it to New:
//
//	import (
//	  "github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
//	  "github.com/fivetwenty-io/ghapi-client/pkg/ghapi/backend/async"
//	  "github.com/fivetwenty-io/ghapi-client/pkg/ghclient"
//	)
//
//	adapter := async.New(ghapi.BearerAuth(jwt), async.WithRequestsPerSecond(10, 1))
//	cli, err := ghclient.New(ghapi.Async(adapter), &ghapi.Config{})
//
// NewWithToken and NewWithAuth are shortcuts for the blocking retryable
// backend.
package ghclient
