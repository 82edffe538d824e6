// Package http holds the plumbing shared by the network backends: header
// injection and a single-use response body.
package http

import (
	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// HeaderWriter is the subset of http.Header a backend request exposes.
type HeaderWriter interface {
	Add(key, value string)
	Set(key, value string)
	Del(key string)
}

// ApplyHeaders writes the envelope headers, then the standard headers, then
// the Authorization header. Standard and auth headers replace any envelope
// header of the same name, and with no credentials Authorization is removed.
func ApplyHeaders(h HeaderWriter, env *ghapi.RequestEnvelope, auth ghapi.Auth, userAgent string) {
	for _, header := range env.Headers {
		h.Add(header.Name, header.Value)
	}

	for _, header := range StandardHeaders(userAgent) {
		h.Set(header.Name, header.Value)
	}

	if value, ok := auth.Header(); ok {
		h.Set(constants.HeaderAuthorization, value)
	} else {
		h.Del(constants.HeaderAuthorization)
	}
}

// StandardHeaders returns the headers every request carries.
func StandardHeaders(userAgent string) []ghapi.Header {
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}

	return []ghapi.Header{
		{Name: constants.HeaderAccept, Value: constants.AcceptGitHubV3},
		{Name: constants.HeaderUserAgent, Value: userAgent},
		{Name: constants.HeaderContentType, Value: constants.ContentTypeJSON},
	}
}
