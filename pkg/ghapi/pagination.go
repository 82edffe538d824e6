package ghapi

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
)

// PaginationState tracks progress through a paged listing. A fresh state
// starts at page 1 with one assumed item so that the first page is fetched.
type PaginationState struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	ItemsSeen   int `json:"items_seen"   yaml:"items_seen"`
	TotalItems  int `json:"total_items"  yaml:"total_items"`
}

// NewPaginationState returns the initial state.
func NewPaginationState() PaginationState {
	return PaginationState{CurrentPage: 1, ItemsSeen: 0, TotalItems: 1}
}

// Exhausted reports whether every item has been seen.
func (s PaginationState) Exhausted() bool {
	return s.ItemsSeen >= s.TotalItems
}

// Page is one page of a listing that reports its total size, such as the
// search endpoints.
type Page[T any] struct {
	TotalCount        *int `json:"total_count,omitempty" yaml:"total_count,omitempty"`
	IncompleteResults bool `json:"incomplete_results"    yaml:"incomplete_results"`
	Items             []T  `json:"items,omitempty"       yaml:"items,omitempty"`

	// RateLimit is taken from the response headers, not the body.
	RateLimit *RateLimitSnapshot `json:"-" yaml:"-"`
}

// Total returns total_count, or 1 when the server omitted it.
func (p *Page[T]) Total() int {
	if p == nil || p.TotalCount == nil {
		return 1
	}

	return *p.TotalCount
}

// PageFunc fetches one page. page is 1-based.
type PageFunc[T any] func(ctx context.Context, page, perPage int) (*Page[T], error)

// RateLimitWait returns how long to pause before the next request so that the
// remaining budget lasts until the reset time:
// (max(reset-now, 0) + jitter) / max(remaining, 1).
func RateLimitWait(snap RateLimitSnapshot, now time.Time, jitter time.Duration) time.Duration {
	untilReset := max(snap.ResetAt.Sub(now), 0)
	remaining := max(snap.Remaining, 1)

	return (untilReset + jitter) / time.Duration(remaining)
}

// StreamOption configures a Stream.
type StreamOption func(*streamOptions)

type streamOptions struct {
	jitter   time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	logger   Logger
	maxPages int
}

// WithJitter overrides the slack added to the time until reset.
func WithJitter(d time.Duration) StreamOption {
	return func(o *streamOptions) { o.jitter = d }
}

// WithClock overrides the clock used to compute rate-limit waits.
func WithClock(now func() time.Time) StreamOption {
	return func(o *streamOptions) { o.now = now }
}

// WithSleeper overrides how the stream pauses between pages.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) StreamOption {
	return func(o *streamOptions) { o.sleep = sleep }
}

// WithStreamLogger logs page fetches and rate-limit pauses.
func WithStreamLogger(logger Logger) StreamOption {
	return func(o *streamOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxPages stops the stream after n pages. Zero means no limit.
func WithMaxPages(n int) StreamOption {
	return func(o *streamOptions) { o.maxPages = n }
}

// Stream yields the items of a paged listing one at a time, fetching pages
// lazily and pacing requests by the server's rate-limit headers. At most one
// page request is in flight. A Stream is not safe for concurrent use; create
// a new one to restart from page 1.
type Stream[T any] struct {
	fetch   PageFunc[T]
	perPage int
	opts    streamOptions

	state   PaginationState
	pending *RateLimitSnapshot
	buf     []T
	fetched int
	done    bool
	err     error
}

// NewStream creates a stream over fetch. perPage is clamped to [1, 100] and
// defaults to 30. A nil fetch yields a stream that fails with
// ErrPageFuncRequired.
func NewStream[T any](fetch PageFunc[T], perPage int, opts ...StreamOption) *Stream[T] {
	switch {
	case perPage <= 0:
		perPage = constants.DefaultPerPage
	case perPage > constants.MaxPerPage:
		perPage = constants.MaxPerPage
	}

	o := streamOptions{
		jitter: constants.RateLimitJitter,
		now:    time.Now,
		sleep:  sleepContext,
		logger: NopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Stream[T]{
		fetch:   fetch,
		perPage: perPage,
		opts:    o,
		state:   NewPaginationState(),
	}
	if fetch == nil {
		s.err = ErrPageFuncRequired
	}

	return s
}

// State returns the current pagination state.
func (s *Stream[T]) State() PaginationState {
	return s.state
}

// Err returns the error that terminated the stream, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// HasNext reports whether Next will return an item, fetching the next page
// if needed. It returns false on failure; check Err.
func (s *Stream[T]) HasNext(ctx context.Context) bool {
	for len(s.buf) == 0 {
		if s.err != nil || s.done {
			return false
		}

		s.advance(ctx)
	}

	return true
}

// Next returns the next item. It returns ErrNoMoreItems once the listing is
// exhausted, and the same error on every call after a failure.
func (s *Stream[T]) Next(ctx context.Context) (T, error) {
	var zero T

	if !s.HasNext(ctx) {
		if s.err != nil {
			return zero, s.err
		}

		return zero, ErrNoMoreItems
	}

	item := s.buf[0]
	s.buf = s.buf[1:]

	return item, nil
}

// All collects every remaining item.
func (s *Stream[T]) All(ctx context.Context) ([]T, error) {
	var all []T

	err := s.ForEach(ctx, func(item T) error {
		all = append(all, item)

		return nil
	})
	if err != nil {
		return all, err
	}

	return all, nil
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (s *Stream[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for {
		item, err := s.Next(ctx)
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}
}

// Items adapts the stream to a range-over-func iterator. Iteration ends after
// yielding a non-nil error.
func (s *Stream[T]) Items(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := s.Next(ctx)
			if errors.Is(err, ErrNoMoreItems) {
				return
			}

			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

func (s *Stream[T]) advance(ctx context.Context) {
	if s.state.Exhausted() || (s.opts.maxPages > 0 && s.fetched >= s.opts.maxPages) {
		s.done = true

		return
	}

	if s.pending != nil {
		wait := RateLimitWait(*s.pending, s.opts.now(), s.opts.jitter)
		if wait > 0 {
			s.opts.logger.Debug("Waiting for rate limit", map[string]interface{}{
				"wait":      wait.String(),
				"remaining": s.pending.Remaining,
				"reset_at":  s.pending.ResetAt,
			})

			err := s.opts.sleep(ctx, wait)
			if err != nil {
				s.err = fmt.Errorf("waiting for rate limit: %w", err)

				return
			}
		}
	}

	page := s.state.CurrentPage

	result, err := s.fetch(ctx, page, s.perPage)
	if err != nil {
		s.err = fmt.Errorf("fetching page %d: %w", page, err)

		return
	}

	if result == nil {
		result = &Page[T]{}
	}

	s.fetched++
	s.state.CurrentPage++
	s.state.TotalItems = result.Total()
	s.state.ItemsSeen += len(result.Items)
	s.pending = result.RateLimit
	s.buf = result.Items

	s.opts.logger.Debug("Fetched page", map[string]interface{}{
		"page":        page,
		"items":       len(result.Items),
		"items_seen":  s.state.ItemsSeen,
		"total_items": s.state.TotalItems,
	})

	// A short listing would otherwise be re-requested forever.
	if len(result.Items) == 0 {
		s.done = true
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
