// Package ghapi is the transport adapter layer of a GitHub REST API client.
//
// # Overview
//
// Endpoint code describes each call as a RequestEnvelope and hands it to a
// Caller. The Caller drives one backend Adapter: the retryable and resty
// backends block, the async and wasmfetch backends return a Future. Whatever
// the backend, the Adapter applies the standard headers and the
// Authorization header derived from an Auth value, and every backend failure
// surfaces as an *AdapterError.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
//	  "github.com/fivetwenty-io/ghapi-client/pkg/ghapi/backend/retryable"
//	  "github.com/fivetwenty-io/ghapi-client/pkg/ghclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  adapter := retryable.New(ghapi.TokenAuth("ghp_..."))
//	  cli, err := ghclient.New(ghapi.Blocking(adapter), &ghapi.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  commits, err := cli.Repos().ListCommits(ctx, "golang", "go", ghapi.NewQueryParams().WithPerPage(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = commits
//	}
//
// # Errors
//
// Endpoint calls fail with one of *AdapterError, *SerializationError,
// *URLEncodingError, *StatusError[T] for a status the endpoint declares, or
// *GenericError for any other failure status. IsNotFound, IsForbidden and
// IsRateLimited branch on common cases.
//
// # Pagination
//
// Stream walks a paged listing lazily, one request at a time. When the
// previous page reported x-ratelimit-remaining and x-ratelimit-reset, the
// stream waits (time until reset + jitter) / remaining before the next
// request:
//
//	stream := cli.Search().StreamRepositories(ghapi.NewQueryParams().WithQuery("language:go"))
//	for repo, err := range stream.Items(ctx) {
//	  if err != nil { break }
//	  _ = repo
//	}
package ghapi
