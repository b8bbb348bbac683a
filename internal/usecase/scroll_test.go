package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
)

type stubLoadMorer struct {
	mu      sync.Mutex
	calls   int
	hasMore bool
	err     error
	snap    models.SessionSnapshot
}

func (s *stubLoadMorer) LoadMore(context.Context) (models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.snap, s.err
}

func (s *stubLoadMorer) Retry(context.Context) (models.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.snap, s.err
}

func (s *stubLoadMorer) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

func (s *stubLoadMorer) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *stubLoadMorer) setHasMore(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasMore = v
}

func (s *stubLoadMorer) loadCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestScrollDriverDebouncesBursts(t *testing.T) {
	t.Parallel()

	target := &stubLoadMorer{hasMore: true}
	driver := NewScrollDriver(target, time.Hour)
	ctx := context.Background()

	_, triggered, err := driver.NearEnd(ctx)
	require.NoError(t, err)
	assert.True(t, triggered)

	// the rest of the burst collapses into the one load
	for i := 0; i < 5; i++ {
		_, triggered, err = driver.NearEnd(ctx)
		require.NoError(t, err)
		assert.False(t, triggered)
	}
	assert.Equal(t, 1, target.loadCalls())
}

func TestScrollDriverStopsWhenExhausted(t *testing.T) {
	t.Parallel()

	target := &stubLoadMorer{hasMore: false}
	driver := NewScrollDriver(target, time.Hour)
	ctx := context.Background()

	_, triggered, err := driver.NearEnd(ctx)
	require.NoError(t, err)
	assert.False(t, triggered)
	assert.Zero(t, target.loadCalls())

	// an exhausted signal does not burn the debounce token
	target.setHasMore(true)
	_, triggered, err = driver.NearEnd(ctx)
	require.NoError(t, err)
	assert.True(t, triggered)
	assert.Equal(t, 1, target.loadCalls())
}

func TestScrollDriverSwallowsBenignErrors(t *testing.T) {
	t.Parallel()

	for _, benign := range []error{models.ErrLoadInFlight, models.ErrNoMoreResults} {
		target := &stubLoadMorer{hasMore: true, err: benign}
		driver := NewScrollDriver(target, time.Hour)

		_, triggered, err := driver.NearEnd(context.Background())
		require.NoError(t, err)
		assert.False(t, triggered)
		assert.Equal(t, 1, target.loadCalls())
	}
}

func TestScrollDriverSurfacesRealErrors(t *testing.T) {
	t.Parallel()

	target := &stubLoadMorer{hasMore: true, err: models.ErrAllSourcesFailed}
	driver := NewScrollDriver(target, time.Hour)

	_, triggered, err := driver.NearEnd(context.Background())
	assert.ErrorIs(t, err, models.ErrAllSourcesFailed)
	assert.False(t, triggered)
}

func TestScrollDriverRetryBypassesDebounce(t *testing.T) {
	t.Parallel()

	target := &stubLoadMorer{hasMore: true}
	driver := NewScrollDriver(target, time.Hour)
	ctx := context.Background()

	_, triggered, err := driver.NearEnd(ctx)
	require.NoError(t, err)
	require.True(t, triggered)

	// retry runs even though the debounce window is still closed
	_, err = driver.Retry(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, target.loadCalls())

	target.err = errors.New("boom")
	_, err = driver.Retry(ctx)
	assert.EqualError(t, err, "boom")

	target.err = models.ErrNoMoreResults
	_, err = driver.Retry(ctx)
	assert.NoError(t, err)
}
