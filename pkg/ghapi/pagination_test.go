package ghapi_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

var errPageFailed = errors.New("page failed")

func intPtr(v int) *int { return &v }

// pager serves pages of consecutive integers from a fixed total.
type pager struct {
	total     int
	omitTotal bool
	failOn    int
	rateLimit func(page int) *ghapi.RateLimitSnapshot
	requested []int
}

func (p *pager) fetch(_ context.Context, page, perPage int) (*ghapi.Page[int], error) {
	p.requested = append(p.requested, page)

	if page == p.failOn {
		return nil, errPageFailed
	}

	result := &ghapi.Page[int]{}
	if !p.omitTotal {
		result.TotalCount = intPtr(p.total)
	}

	for i := (page - 1) * perPage; i < page*perPage && i < p.total; i++ {
		result.Items = append(result.Items, i)
	}

	if p.rateLimit != nil {
		result.RateLimit = p.rateLimit(page)
	}

	return result, nil
}

// sleepRecorder replaces real sleeping.
type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)

	return nil
}

func TestNewPaginationState(t *testing.T) {
	t.Parallel()

	state := ghapi.NewPaginationState()
	assert.Equal(t, ghapi.PaginationState{CurrentPage: 1, ItemsSeen: 0, TotalItems: 1}, state)
	assert.False(t, state.Exhausted())
}

func TestStream_AllItemsInOrder(t *testing.T) {
	t.Parallel()

	p := &pager{total: 5}
	stream := ghapi.NewStream(p.fetch, 2)

	items, err := stream.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, items)
	assert.Equal(t, []int{1, 2, 3}, p.requested)
	assert.Equal(t, ghapi.PaginationState{CurrentPage: 4, ItemsSeen: 5, TotalItems: 5}, stream.State())
}

func TestStream_ExactMultipleStopsWithoutExtraFetch(t *testing.T) {
	t.Parallel()

	p := &pager{total: 4}
	items, err := ghapi.NewStream(p.fetch, 2).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, []int{1, 2}, p.requested)
}

func TestStream_EmptyListing(t *testing.T) {
	t.Parallel()

	p := &pager{total: 0}
	stream := ghapi.NewStream(p.fetch, 30)

	_, err := stream.Next(context.Background())
	require.ErrorIs(t, err, ghapi.ErrNoMoreItems)
	assert.Equal(t, []int{1}, p.requested)
}

func TestStream_MissingTotalStopsAfterFirstPage(t *testing.T) {
	t.Parallel()

	p := &pager{total: 3, omitTotal: true}
	items, err := ghapi.NewStream(p.fetch, 10).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, items)
	assert.Equal(t, []int{1}, p.requested)
}

func TestStream_ShortPageEndsStream(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(context.Context, int, int) (*ghapi.Page[int], error) {
		calls++
		if calls == 1 {
			return &ghapi.Page[int]{TotalCount: intPtr(10), Items: []int{1, 2}}, nil
		}

		return &ghapi.Page[int]{TotalCount: intPtr(10)}, nil
	}

	items, err := ghapi.NewStream(fetch, 2).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)
	assert.Equal(t, 2, calls)
}

func TestStream_FailureAbortsStream(t *testing.T) {
	t.Parallel()

	p := &pager{total: 10, failOn: 2}
	stream := ghapi.NewStream(p.fetch, 3)

	var got []int

	err := stream.ForEach(context.Background(), func(item int) error {
		got = append(got, item)

		return nil
	})
	require.ErrorIs(t, err, errPageFailed)
	assert.Equal(t, []int{0, 1, 2}, got)

	_, err = stream.Next(context.Background())
	require.ErrorIs(t, err, errPageFailed)
	assert.Equal(t, []int{1, 2}, p.requested)
	assert.ErrorIs(t, stream.Err(), errPageFailed)
}

func TestStream_RateLimitWaitBetweenPages(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	p := &pager{
		total: 6,
		rateLimit: func(int) *ghapi.RateLimitSnapshot {
			return &ghapi.RateLimitSnapshot{Remaining: 4, ResetAt: now.Add(10 * time.Second)}
		},
	}
	sleeper := &sleepRecorder{}

	stream := ghapi.NewStream(p.fetch, 2,
		ghapi.WithClock(func() time.Time { return now }),
		ghapi.WithSleeper(sleeper.sleep),
	)

	items, err := stream.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 6)

	// (10s + 2s jitter) / 4 remaining, before pages 2 and 3 only.
	assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second}, sleeper.waits)
}

func TestStream_NoWaitWithoutRateLimitHeaders(t *testing.T) {
	t.Parallel()

	sleeper := &sleepRecorder{}
	p := &pager{total: 5}

	_, err := ghapi.NewStream(p.fetch, 1, ghapi.WithSleeper(sleeper.sleep)).All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sleeper.waits)
}

func TestStream_CancelledWaitAbortsStream(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	p := &pager{
		total: 4,
		rateLimit: func(int) *ghapi.RateLimitSnapshot {
			return &ghapi.RateLimitSnapshot{Remaining: 1, ResetAt: now.Add(time.Hour)}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	stream := ghapi.NewStream(p.fetch, 2, ghapi.WithClock(func() time.Time { return now }))

	_, err := stream.Next(ctx)
	require.NoError(t, err)
	_, err = stream.Next(ctx)
	require.NoError(t, err)

	cancel()

	_, err = stream.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1}, p.requested)
}

func TestStream_MaxPages(t *testing.T) {
	t.Parallel()

	p := &pager{total: 100}
	items, err := ghapi.NewStream(p.fetch, 10, ghapi.WithMaxPages(2)).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 20)
	assert.Equal(t, []int{1, 2}, p.requested)
}

func TestStream_PerPageClamped(t *testing.T) {
	t.Parallel()

	var perPages []int

	fetch := func(_ context.Context, _, perPage int) (*ghapi.Page[int], error) {
		perPages = append(perPages, perPage)

		return &ghapi.Page[int]{TotalCount: intPtr(0)}, nil
	}

	_, _ = ghapi.NewStream(fetch, 0).All(context.Background())
	_, _ = ghapi.NewStream(fetch, 500).All(context.Background())

	assert.Equal(t, []int{30, 100}, perPages)
}

func TestStream_Items(t *testing.T) {
	t.Parallel()

	p := &pager{total: 3}

	var got []int

	for item, err := range ghapi.NewStream(p.fetch, 2).Items(context.Background()) {
		require.NoError(t, err)

		got = append(got, item)
	}

	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestStream_ItemsStopsOnError(t *testing.T) {
	t.Parallel()

	p := &pager{total: 10, failOn: 1}

	var errs []error

	for _, err := range ghapi.NewStream(p.fetch, 2).Items(context.Background()) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], errPageFailed)
}

func TestStream_NilFetch(t *testing.T) {
	t.Parallel()

	stream := ghapi.NewStream[int](nil, 10)

	assert.False(t, stream.HasNext(context.Background()))
	require.ErrorIs(t, stream.Err(), ghapi.ErrPageFuncRequired)

	_, err := stream.Next(context.Background())
	require.ErrorIs(t, err, ghapi.ErrPageFuncRequired)

	items, err := stream.All(context.Background())
	require.ErrorIs(t, err, ghapi.ErrPageFuncRequired)
	assert.Empty(t, items)
}

func TestRateLimitWait(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name     string
		snap     ghapi.RateLimitSnapshot
		jitter   time.Duration
		expected time.Duration
	}{
		{
			name:     "spreads time over remaining budget",
			snap:     ghapi.RateLimitSnapshot{Remaining: 4, ResetAt: now.Add(10 * time.Second)},
			jitter:   2 * time.Second,
			expected: 3 * time.Second,
		},
		{
			name:     "two requests left ten seconds before reset",
			snap:     ghapi.RateLimitSnapshot{Remaining: 2, ResetAt: now.Add(10 * time.Second)},
			jitter:   2 * time.Second,
			expected: 6 * time.Second,
		},
		{
			name:     "zero remaining treated as one",
			snap:     ghapi.RateLimitSnapshot{Remaining: 0, ResetAt: now.Add(10 * time.Second)},
			jitter:   2 * time.Second,
			expected: 12 * time.Second,
		},
		{
			name:     "reset in the past waits only the jitter",
			snap:     ghapi.RateLimitSnapshot{Remaining: 2, ResetAt: now.Add(-time.Minute)},
			jitter:   2 * time.Second,
			expected: time.Second,
		},
		{
			name:     "large budget means short waits",
			snap:     ghapi.RateLimitSnapshot{Remaining: 5000, ResetAt: now.Add(3598 * time.Second)},
			jitter:   2 * time.Second,
			expected: 720 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ghapi.RateLimitWait(tt.snap, now, tt.jitter))
		})
	}
}
