package ghapi

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
)

// Response is the uniform view of a completed HTTP exchange.
//
// The body is consumed at most once. Each backend implements exactly one of
// ToJSON and ToJSONAsync; the other returns an error matching
// ErrUnimplemented. Decoding a second time returns ErrBodyConsumed.
type Response interface {
	// IsSuccess reports whether the status is in [200, 300).
	IsSuccess() bool
	StatusCode() int
	// Header returns the first value of the named header, or "".
	Header(name string) string
	ToJSON(v any) error
	ToJSONAsync(ctx context.Context, v any) error
	// Close releases the body without decoding it. It is safe to call after
	// a decode and more than once.
	Close() error
}

// IsSuccessStatus reports whether code is a 2xx status.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

// RateLimitSnapshot is the rate-limit state reported by the last response.
type RateLimitSnapshot struct {
	Remaining int       `json:"remaining" yaml:"remaining"`
	ResetAt   time.Time `json:"reset_at"  yaml:"reset_at"`
}

// ParseRateLimit reads x-ratelimit-remaining and x-ratelimit-reset from resp.
// It reports false when either header is missing or malformed.
func ParseRateLimit(resp Response) (RateLimitSnapshot, bool) {
	if resp == nil {
		return RateLimitSnapshot{}, false
	}

	return parseRateLimit(resp.Header(constants.HeaderRateLimitRemaining), resp.Header(constants.HeaderRateLimitReset))
}

func parseRateLimit(remainingRaw, resetRaw string) (RateLimitSnapshot, bool) {
	remainingRaw = strings.TrimSpace(remainingRaw)
	resetRaw = strings.TrimSpace(resetRaw)

	if remainingRaw == "" || resetRaw == "" {
		return RateLimitSnapshot{}, false
	}

	remaining, err := strconv.Atoi(remainingRaw)
	if err != nil {
		return RateLimitSnapshot{}, false
	}

	reset, err := strconv.ParseInt(resetRaw, 10, 64)
	if err != nil {
		return RateLimitSnapshot{}, false
	}

	return RateLimitSnapshot{Remaining: remaining, ResetAt: time.Unix(reset, 0)}, true
}
