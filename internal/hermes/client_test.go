package hermes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

type recordingClient struct {
	subjects []string
	handlers map[string]func(string, []byte)
	err      error
}

func (r *recordingClient) Publish(subject string, _ interface{}) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}

func (r *recordingClient) Subscribe(subject string, handler func(string, []byte)) error {
	if r.err != nil {
		return r.err
	}
	if r.handlers == nil {
		r.handlers = make(map[string]func(string, []byte))
	}
	r.handlers[subject] = handler
	return nil
}

func (r *recordingClient) Close() {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmit(t *testing.T) {
	logger := discardLogger()

	// Nil client is a no-op.
	Emit(nil, logger, SubjectMarkerUnmapped, MarkersUnmappedEvent{})

	c := &recordingClient{}
	Emit(c, logger, SubjectScanMissed("12345678"), ScanMissedEvent{Barcode: "12345678"})
	if len(c.subjects) != 1 || c.subjects[0] != "toxscan.scan.12345678.missed" {
		t.Errorf("unexpected publishes: %v", c.subjects)
	}

	c.err = errors.New("nats: connection closed")
	Emit(c, logger, SubjectVocabularyReloaded, VocabularyReloadedEvent{})
	if len(c.subjects) != 2 {
		t.Errorf("expected publish attempt despite error, got %v", c.subjects)
	}
}

func TestStreamConfig(t *testing.T) {
	cfg := StreamConfig()
	if cfg.Name != StreamName {
		t.Errorf("expected stream %s, got %s", StreamName, cfg.Name)
	}
	if cfg.MaxAge != 30*24*time.Hour {
		t.Errorf("expected 30 day retention, got %s", cfg.MaxAge)
	}
	if cfg.Storage != jetstream.FileStorage || cfg.Discard != jetstream.DiscardOld {
		t.Errorf("unexpected storage policy: %v / %v", cfg.Storage, cfg.Discard)
	}
	for _, s := range cfg.Subjects {
		if s == SubjectVocabularyRefresh {
			t.Error("refresh requests must not be retained")
		}
	}

	// The package-level subject list is not aliased.
	cfg.Subjects[0] = "mutated"
	if StreamSubjects[0] == "mutated" {
		t.Error("StreamConfig shares its subject slice")
	}
}

func TestSubscribeRefresh(t *testing.T) {
	if err := SubscribeRefresh(nil, discardLogger(), time.Second, nil); err != nil {
		t.Fatalf("nil client should be a no-op, got %v", err)
	}

	c := &recordingClient{}
	calls := 0
	var deadline bool
	err := SubscribeRefresh(c, discardLogger(), time.Minute, func(ctx context.Context) error {
		calls++
		_, deadline = ctx.Deadline()
		return errors.New("source unavailable")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, ok := c.handlers[SubjectVocabularyRefresh]
	if !ok {
		t.Fatalf("expected subscription to %s, got %v", SubjectVocabularyRefresh, c.handlers)
	}

	h(SubjectVocabularyRefresh, nil)
	h(SubjectVocabularyRefresh, []byte(`{}`))
	if calls != 2 {
		t.Errorf("expected 2 refreshes, got %d", calls)
	}
	if !deadline {
		t.Error("refresh should run with a deadline")
	}

	c.err = errors.New("nats: connection closed")
	if err := SubscribeRefresh(c, discardLogger(), time.Minute, func(context.Context) error { return nil }); err == nil {
		t.Error("expected subscribe error to surface")
	}
}
