package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	internalhttp "github.com/fivetwenty-io/ghapi-client/internal/http"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

func TestApplyHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		auth          ghapi.Auth
		authorization string
	}{
		{name: "token", auth: ghapi.TokenAuth("abc"), authorization: "token abc"},
		{name: "bearer", auth: ghapi.BearerAuth("jwt"), authorization: "Bearer jwt"},
		{name: "basic", auth: ghapi.BasicAuth("user", "pass"), authorization: "Basic dXNlcjpwYXNz"},
		{name: "none", auth: ghapi.NoAuth()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := http.Header{}
			env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/rate_limit")

			internalhttp.ApplyHeaders(h, env, tt.auth, "")

			expected := http.Header{
				"Accept":       []string{"application/vnd.github.v3+json"},
				"User-Agent":   []string{"ghapi-client"},
				"Content-Type": []string{"application/json"},
			}
			if tt.authorization != "" {
				expected.Set("Authorization", tt.authorization)
			}

			assert.Equal(t, expected, h)
		})
	}
}

func TestApplyHeaders_StandardHeadersOverrideEnvelope(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/").
		WithHeader("Accept", "text/html").
		WithHeader("Authorization", "token stale").
		WithHeader("X-Trace", "a").
		WithHeader("X-Trace", "b")

	internalhttp.ApplyHeaders(h, env, ghapi.TokenAuth("fresh"), "my-tool/1.0")

	assert.Equal(t, []string{"application/vnd.github.v3+json"}, h.Values("Accept"))
	assert.Equal(t, []string{"token fresh"}, h.Values("Authorization"))
	assert.Equal(t, []string{"my-tool/1.0"}, h.Values("User-Agent"))
	assert.Equal(t, []string{"a", "b"}, h.Values("X-Trace"))
}

func TestApplyHeaders_NoAuthRemovesEnvelopeAuthorization(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/").
		WithHeader("Authorization", "token leaked")

	internalhttp.ApplyHeaders(h, env, ghapi.NoAuth(), "")

	assert.Empty(t, h.Values("Authorization"))
}
