package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrVocabularyUnavailable means no vocabulary could be loaded and none was
// cached. Callers should treat it as retryable.
var ErrVocabularyUnavailable = errors.New("vocabulary unavailable")

var errEmptyVocabulary = errors.New("source returned no markers")

const (
	DefaultTTL         = 5 * time.Minute
	DefaultLoadTimeout = 10 * time.Second
)

// CacheOptions tunes a Cache. Zero values take the defaults.
type CacheOptions struct {
	TTL         time.Duration
	LoadTimeout time.Duration
	// OnLoad is called after every load attempt, with either the new
	// vocabulary or the error.
	OnLoad func(v *Vocabulary, err error)
}

// Cache holds the current vocabulary and refills it from a Source at most
// once per TTL. Concurrent callers share a single in-flight load.
type Cache struct {
	source Source
	opts   CacheOptions
	logger *slog.Logger
	now    func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	current  *Vocabulary
	loadedAt time.Time
}

func NewCache(source Source, opts CacheOptions, logger *slog.Logger) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = DefaultLoadTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{source: source, opts: opts, logger: logger, now: time.Now}
}

// Current returns the cached vocabulary without loading, or nil.
func (c *Cache) Current() *Vocabulary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Vocabulary returns a fresh vocabulary, loading it when the cached copy is
// missing or older than the TTL. If a reload fails the stale copy is served.
func (c *Cache) Vocabulary(ctx context.Context) (*Vocabulary, error) {
	c.mu.RLock()
	v, at := c.current, c.loadedAt
	c.mu.RUnlock()
	if v != nil && c.now().Sub(at) < c.opts.TTL {
		return v, nil
	}
	return c.wait(ctx, v)
}

// Refresh forces a load regardless of the TTL.
func (c *Cache) Refresh(ctx context.Context) (*Vocabulary, error) {
	return c.wait(ctx, c.Current())
}

func (c *Cache) wait(ctx context.Context, stale *Vocabulary) (*Vocabulary, error) {
	ch := c.group.DoChan("vocabulary", func() (interface{}, error) {
		return c.load()
	})
	select {
	case <-ctx.Done():
		if stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrVocabularyUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Vocabulary), nil
	}
}

// load runs detached from any caller's context so one impatient request
// cannot cancel the shared load for everyone else.
func (c *Cache) load() (*Vocabulary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.LoadTimeout)
	defer cancel()

	start := c.now()
	set, err := c.source.LoadMarkers(ctx)
	if err == nil && len(set.Markers) == 0 {
		err = errEmptyVocabulary
	}
	if err != nil {
		if c.opts.OnLoad != nil {
			c.opts.OnLoad(nil, err)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.current != nil {
			// Keep serving the last good table; retry after another TTL.
			c.loadedAt = c.now()
			c.logger.Warn("vocabulary reload failed, serving stale copy",
				"version", c.current.Version(), "error", err)
			return c.current, nil
		}
		c.logger.Error("vocabulary load failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrVocabularyUnavailable, err)
	}

	v := New(set.Version, set.Markers, c.logger)
	c.mu.Lock()
	c.current = v
	c.loadedAt = c.now()
	c.mu.Unlock()

	c.logger.Info("vocabulary loaded",
		"version", v.Version(),
		"markers", v.Len(),
		"conflicts", len(v.Conflicts()),
		"duration_ms", c.now().Sub(start).Milliseconds(),
	)
	if c.opts.OnLoad != nil {
		c.opts.OnLoad(v, nil)
	}
	return v, nil
}
