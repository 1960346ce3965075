package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/Toxscan/internal/config"
	"github.com/MikeSquared-Agency/Toxscan/internal/hermes"
	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

type recordingClient struct {
	subjects []string
	events   []interface{}
}

func (r *recordingClient) Publish(subject string, data interface{}) error {
	r.subjects = append(r.subjects, subject)
	r.events = append(r.events, data)
	return nil
}

func (r *recordingClient) Subscribe(string, func(string, []byte)) error { return nil }
func (r *recordingClient) Close()                                       {}

func TestOnVocabularyLoadPublishesWithoutLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	bus := &recordingClient{}
	hook := onVocabularyLoad(bus, metrics.NewMetrics(nil), logger)

	v := vocab.New("v7", []vocab.MarkerDefinition{
		{ID: "LEAD", Name: "Lead", Aliases: []string{"pb"}},
		{ID: "MERC", Name: "Mercury"},
	}, logger)
	logs.Reset()

	hook(v, nil)
	if strings.Contains(logs.String(), "vocabulary loaded") {
		t.Errorf("load is already logged by the cache, got %q", logs.String())
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != hermes.SubjectVocabularyReloaded {
		t.Fatalf("unexpected publishes: %v", bus.subjects)
	}
	ev := bus.events[0].(hermes.VocabularyReloadedEvent)
	if ev.Version != "v7" || ev.Markers != 2 || ev.Aliases != 3 || ev.Error != "" {
		t.Errorf("unexpected event: %+v", ev)
	}

	hook(nil, errors.New("connection refused"))
	ev = bus.events[1].(hermes.VocabularyReloadedEvent)
	if ev.Error != "connection refused" || ev.Markers != 0 {
		t.Errorf("unexpected failure event: %+v", ev)
	}
}

func TestVocabularySource(t *testing.T) {
	db := store.NewMemoryStore()
	if s, err := vocabularySource(config.VocabularyConfig{}, db); err != nil || s == nil {
		t.Errorf("expected builtin source by default, got %v, %v", s, err)
	}
	if _, err := vocabularySource(config.VocabularyConfig{Source: config.VocabularyFile, Path: "markers.yaml"}, db); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := vocabularySource(config.VocabularyConfig{Source: "redis"}, db); err == nil {
		t.Error("expected error for unknown source")
	}
}
