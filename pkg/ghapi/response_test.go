package ghapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

func TestParseRateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		remaining string
		reset     string
		ok        bool
		expected  ghapi.RateLimitSnapshot
	}{
		{
			name:      "both headers",
			remaining: "10",
			reset:     "1700000000",
			ok:        true,
			expected:  ghapi.RateLimitSnapshot{Remaining: 10, ResetAt: time.Unix(1700000000, 0)},
		},
		{name: "missing reset", remaining: "10", ok: false},
		{name: "missing remaining", reset: "1700000000", ok: false},
		{name: "malformed remaining", remaining: "ten", reset: "1700000000", ok: false},
		{name: "malformed reset", remaining: "10", reset: "soon", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := newFakeResponse(http.StatusOK, "")
			if tt.remaining != "" {
				resp.header.Set("x-ratelimit-remaining", tt.remaining)
			}

			if tt.reset != "" {
				resp.header.Set("x-ratelimit-reset", tt.reset)
			}

			snap, ok := ghapi.ParseRateLimit(resp)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.expected.ResetAt.Equal(snap.ResetAt))
			assert.Equal(t, tt.expected.Remaining, snap.Remaining)
		})
	}
}

func TestParseRateLimit_NilResponse(t *testing.T) {
	t.Parallel()

	_, ok := ghapi.ParseRateLimit(nil)
	assert.False(t, ok)
}

func TestIsSuccessStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, ghapi.IsSuccessStatus(200))
	assert.True(t, ghapi.IsSuccessStatus(204))
	assert.True(t, ghapi.IsSuccessStatus(299))
	assert.False(t, ghapi.IsSuccessStatus(199))
	assert.False(t, ghapi.IsSuccessStatus(300))
	assert.False(t, ghapi.IsSuccessStatus(404))
}
