// Package curation collects names the normalizer could not resolve so
// curators can extend the vocabulary.
package curation

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MikeSquared-Agency/Toxscan/internal/hermes"
	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

const (
	DefaultFlushInterval = 30 * time.Second
	DefaultBufferSize    = 1024
	DefaultMaxPending    = 10000

	finalFlushTimeout = 5 * time.Second
)

// UnmappedStore persists aggregated sightings. Upserts add to existing
// counts.
type UnmappedStore interface {
	UpsertUnmappedMarkers(ctx context.Context, entries []store.UnmappedMarker) error
}

type sighting struct {
	raw  string
	code string
	at   time.Time
}

// Tracker implements normalize.Recorder. RecordUnmapped never blocks: when
// the buffer is full the sighting is dropped and counted. New names beyond
// maxPending distinct entries awaiting a flush are counted the same way.
type Tracker struct {
	store    UnmappedStore
	hermes   hermes.Client
	metrics  *metrics.Metrics
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	in      chan sighting
	dropped atomic.Int64

	// Owned by the loop goroutine.
	pending    map[string]*store.UnmappedMarker
	maxPending int

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewTracker(s UnmappedStore, h hermes.Client, m *metrics.Metrics, interval time.Duration, bufferSize int, logger *slog.Logger) *Tracker {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:      s,
		hermes:     h,
		metrics:    m,
		logger:     logger,
		interval:   interval,
		now:        time.Now,
		in:         make(chan sighting, bufferSize),
		pending:    make(map[string]*store.UnmappedMarker),
		maxPending: DefaultMaxPending,
		stopCh:     make(chan struct{}),
	}
}

func (t *Tracker) RecordUnmapped(raw, code string) {
	select {
	case t.in <- sighting{raw: raw, code: code, at: t.now().UTC()}:
	default:
		t.drop()
	}
}

func (t *Tracker) drop() {
	t.dropped.Add(1)
	t.metrics.IncUnmappedDropped()
}

// Dropped reports sightings lost to a full buffer or a full pending set
// since the last successful flush.
func (t *Tracker) Dropped() int64 { return t.dropped.Load() }

func (t *Tracker) Start(ctx context.Context) {
	t.wg.Add(1)
	go t.loop(ctx)
}

// Stop drains buffered sightings, flushes them and waits for the loop.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
	t.wg.Wait()
}

func (t *Tracker) loop(ctx context.Context) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			t.shutdown()
			return
		case <-ctx.Done():
			t.shutdown()
			return
		case s := <-t.in:
			t.add(s)
		case <-ticker.C:
			t.flush(ctx)
		}
	}
}

func (t *Tracker) shutdown() {
	for {
		select {
		case s := <-t.in:
			t.add(s)
		default:
			ctx, cancel := context.WithTimeout(context.Background(), finalFlushTimeout)
			defer cancel()
			t.flush(ctx)
			return
		}
	}
}

func (t *Tracker) add(s sighting) {
	key := strings.ToLower(strings.TrimSpace(s.raw))
	if key == "" {
		return
	}
	if e, ok := t.pending[key]; ok {
		e.Count++
		e.LastSeen = s.at
		return
	}
	if len(t.pending) >= t.maxPending {
		t.drop()
		return
	}
	t.pending[key] = &store.UnmappedMarker{
		RawName:   strings.TrimSpace(s.raw),
		Code:      s.code,
		Count:     1,
		FirstSeen: s.at,
		LastSeen:  s.at,
	}
}

func (t *Tracker) flush(ctx context.Context) {
	if len(t.pending) == 0 {
		return
	}
	entries := make([]store.UnmappedMarker, 0, len(t.pending))
	for _, e := range t.pending {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].RawName < entries[j].RawName
	})

	if t.store != nil {
		if err := t.store.UpsertUnmappedMarkers(ctx, entries); err != nil {
			// Keep the batch; the next tick retries it.
			t.logger.Error("failed to persist unmapped markers", "count", len(entries), "error", err)
			return
		}
	}
	t.pending = make(map[string]*store.UnmappedMarker)

	names := make([]hermes.UnmappedName, len(entries))
	for i, e := range entries {
		names[i] = hermes.UnmappedName{RawName: e.RawName, Code: e.Code, Count: e.Count}
	}
	dropped := t.dropped.Swap(0)
	hermes.Emit(t.hermes, t.logger, hermes.SubjectMarkerUnmapped, hermes.MarkersUnmappedEvent{
		Names:     names,
		Dropped:   int(dropped),
		Timestamp: t.now().UTC(),
	})
	t.logger.Info("flushed unmapped markers", "names", len(entries), "dropped", dropped)
}
