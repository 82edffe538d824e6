package ghapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

func TestAuth_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		auth     ghapi.Auth
		expected string
		present  bool
	}{
		{name: "none", auth: ghapi.NoAuth(), present: false},
		{name: "zero value", auth: ghapi.Auth{}, present: false},
		{name: "token", auth: ghapi.TokenAuth("abc"), expected: "token abc", present: true},
		{name: "bearer", auth: ghapi.BearerAuth("xyz"), expected: "Bearer xyz", present: true},
		{name: "basic", auth: ghapi.BasicAuth("u", "p"), expected: "Basic dTpw", present: true},
		{name: "basic empty password", auth: ghapi.BasicAuth("octocat", ""), expected: "Basic b2N0b2NhdDo=", present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			value, ok := tt.auth.Header()
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestAuth_StringMasksSecrets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", ghapi.NoAuth().String())
	assert.Equal(t, "token(***)", ghapi.TokenAuth("ghp_secret").String())
	assert.Equal(t, "bearer(***)", ghapi.BearerAuth("jwt").String())
	assert.Equal(t, "basic(octocat:***)", ghapi.BasicAuth("octocat", "hunter2").String())
	assert.NotContains(t, ghapi.BasicAuth("octocat", "hunter2").String(), "hunter2")
}

func TestAuth_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ghapi.AuthNone, ghapi.NoAuth().Kind())
	assert.Equal(t, ghapi.AuthToken, ghapi.TokenAuth("t").Kind())
	assert.Equal(t, ghapi.AuthBearer, ghapi.BearerAuth("t").Kind())
	assert.Equal(t, ghapi.AuthBasic, ghapi.BasicAuth("u", "p").Kind())
	assert.Equal(t, "bearer", ghapi.AuthBearer.String())
}
