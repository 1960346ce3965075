package vocab

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	calls   atomic.Int32
	release chan struct{}
	mu      sync.Mutex
	set     MarkerSet
	err     error
}

func newStubSource() *stubSource {
	return &stubSource{set: MarkerSet{
		Version: "v1",
		Markers: []MarkerDefinition{{ID: "LEAD", Name: "Lead", ToxicityWeight: 9}},
	}}
}

func (s *stubSource) LoadMarkers(ctx context.Context) (MarkerSet, error) {
	s.calls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return MarkerSet{}, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set, s.err
}

func (s *stubSource) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestCacheConcurrentCallersShareOneLoad(t *testing.T) {
	src := newStubSource()
	src.release = make(chan struct{})
	c := NewCache(src, CacheOptions{}, discardLogger())

	var wg sync.WaitGroup
	results := make([]*Vocabulary, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Vocabulary(context.Background())
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let the goroutines pile up behind the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, v := range results {
		require.NotNil(t, v)
		assert.Same(t, results[0], v)
	}
}

func TestCacheReloadsAfterTTL(t *testing.T) {
	src := newStubSource()
	clock := &fakeClock{t: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache(src, CacheOptions{TTL: time.Minute}, discardLogger())
	c.now = clock.Now

	v1, err := c.Vocabulary(context.Background())
	require.NoError(t, err)
	_, err = c.Vocabulary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load(), "fresh copy must not reload")

	clock.Advance(2 * time.Minute)
	v2, err := c.Vocabulary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
	assert.NotSame(t, v1, v2)
}

func TestCacheFailureWithoutVocabularyIsUnavailable(t *testing.T) {
	src := newStubSource()
	src.fail(errors.New("connection refused"))
	var observed error
	c := NewCache(src, CacheOptions{OnLoad: func(_ *Vocabulary, err error) { observed = err }}, discardLogger())

	v, err := c.Vocabulary(context.Background())
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrVocabularyUnavailable)
	assert.Error(t, observed)
}

func TestCacheEmptySourceIsUnavailable(t *testing.T) {
	src := newStubSource()
	src.set = MarkerSet{Version: "empty"}
	c := NewCache(src, CacheOptions{}, discardLogger())

	_, err := c.Vocabulary(context.Background())
	assert.ErrorIs(t, err, ErrVocabularyUnavailable)
	assert.Nil(t, c.Current())
}

func TestCacheServesStaleCopyWhenReloadFails(t *testing.T) {
	src := newStubSource()
	clock := &fakeClock{t: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCache(src, CacheOptions{TTL: time.Minute}, discardLogger())
	c.now = clock.Now

	v1, err := c.Vocabulary(context.Background())
	require.NoError(t, err)

	src.fail(errors.New("timeout"))
	clock.Advance(2 * time.Minute)

	v2, err := c.Vocabulary(context.Background())
	require.NoError(t, err)
	assert.Same(t, v1, v2)

	// The failed attempt resets the clock, so the next call does not retry.
	_, err = c.Vocabulary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCacheCallerContextCancelled(t *testing.T) {
	src := newStubSource()
	src.release = make(chan struct{})
	defer close(src.release)
	c := NewCache(src, CacheOptions{}, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Vocabulary(ctx)
	assert.ErrorIs(t, err, ErrVocabularyUnavailable)
}

func TestCacheLoadTimeout(t *testing.T) {
	src := newStubSource()
	src.release = make(chan struct{})
	defer close(src.release)
	c := NewCache(src, CacheOptions{LoadTimeout: 20 * time.Millisecond}, discardLogger())

	_, err := c.Vocabulary(context.Background())
	assert.ErrorIs(t, err, ErrVocabularyUnavailable)
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestCacheRefreshForcesLoad(t *testing.T) {
	src := newStubSource()
	c := NewCache(src, CacheOptions{}, discardLogger())

	_, err := c.Vocabulary(context.Background())
	require.NoError(t, err)

	src.mu.Lock()
	src.set.Version = "v2"
	src.mu.Unlock()

	v, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2", v.Version())
	assert.Equal(t, "v2", c.Current().Version())
}
