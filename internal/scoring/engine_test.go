package scoring

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recorded struct {
	mu    sync.Mutex
	names []string
}

func (r *recorded) RecordUnmapped(raw, _ string) {
	r.mu.Lock()
	r.names = append(r.names, raw)
	r.mu.Unlock()
}

type failingSource struct{}

func (failingSource) LoadMarkers(context.Context) (vocab.MarkerSet, error) {
	return vocab.MarkerSet{}, errors.New("connection refused")
}

func builtinEngine(rec *recorded) *Engine {
	set := vocab.Builtin()
	v := vocab.New(set.Version, set.Markers, discardLogger())
	opts := EngineOptions{Metrics: metrics.NewMetrics(nil)}
	if rec != nil {
		opts.Recorder = rec
	}
	return NewEngine(StaticProvider{V: v}, opts, discardLogger())
}

func TestScoreIngredientsFragranceAndParaben(t *testing.T) {
	rec := &recorded{}
	e := builtinEngine(rec)

	res, err := e.ScoreIngredients(context.Background(), "Water, Fragrance, Methylparaben")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallScore != 70 {
		t.Errorf("expected 70, got %d", res.OverallScore)
	}
	if res.Domains[vocab.DomainParabens] != StatusModerate || res.Domains[vocab.DomainPhthalates] != StatusModerate {
		t.Errorf("unexpected domains: %v", res.Domains)
	}
	if res.TotalCount != 3 || res.MatchedCount != 2 {
		t.Errorf("expected 3 total / 2 matched, got %d/%d", res.TotalCount, res.MatchedCount)
	}
	if res.VocabularyVersion != vocab.BuiltinVersion {
		t.Errorf("expected builtin version, got %s", res.VocabularyVersion)
	}
	if len(rec.names) != 1 || rec.names[0] != "Water" {
		t.Errorf("expected Water recorded as unmapped, got %v", rec.names)
	}
}

func TestScoreIngredientsEmptyText(t *testing.T) {
	e := builtinEngine(nil)
	res, err := e.ScoreIngredients(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallScore != 20 || len(res.Matches) != 0 || res.TotalCount != 0 {
		t.Errorf("expected base result, got score %d with %d matches", res.OverallScore, len(res.Matches))
	}
	for d, s := range res.Domains {
		if s != StatusNormal {
			t.Errorf("domain %s: expected normal, got %s", d, s)
		}
	}
}

func TestScoreIngredientsSurfacesTruncation(t *testing.T) {
	e := NewEngine(builtinEngine(nil).provider, EngineOptions{Params: func() ScoreParams {
		p := DefaultScoreParams()
		p.MaxTokens = 2
		return p
	}()}, discardLogger())

	res, err := e.ScoreIngredients(context.Background(), "Talc, Lead, Formaldehyde")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Truncated || res.Dropped != 1 || res.TotalCount != 2 {
		t.Errorf("expected truncation of 1, got %v/%d/%d", res.Truncated, res.Dropped, res.TotalCount)
	}
	for _, m := range res.Matches {
		if m.MarkerID == "FORM" {
			t.Error("dropped token must not be scored")
		}
	}
}

func TestScoreIngredientsDuplicateAliases(t *testing.T) {
	e := builtinEngine(nil)
	res, err := e.ScoreIngredients(context.Background(), "Fragrance, Parfum, Perfume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 || res.Matches[0].SourceText != "Fragrance" {
		t.Errorf("expected one FRAG match from the first token, got %+v", res.Matches)
	}
	// 20 + 5*8 + 1.5
	if res.OverallScore != 62 {
		t.Errorf("expected 62, got %d", res.OverallScore)
	}
}

func TestScoreIngredientsUnmappedNameNeverShadowsKnownMarker(t *testing.T) {
	e := builtinEngine(nil)
	ctx := context.Background()

	res, err := e.ScoreIngredients(ctx, "Unlisted fluorosurfactant (PFOA), Perfluorooctanoic Acid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallScore != 85 {
		t.Errorf("expected 85, got %d", res.OverallScore)
	}
	if len(res.Matches) != 1 || res.Matches[0].MarkerID != "PFOA" {
		t.Errorf("expected PFOA matched once, got %+v", res.Matches)
	}

	res, err = e.ScoreIngredients(ctx, "Citric Acid, Calcium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 || res.Matches[0].MarkerID != "CA" {
		t.Errorf("expected Calcium kept, got %+v", res.Matches)
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0].SourceText != "Citric Acid" {
		t.Errorf("expected Citric Acid unmatched, got %+v", res.Unmatched)
	}
}

func TestNormalizeMarker(t *testing.T) {
	rec := &recorded{}
	e := builtinEngine(rec)

	id, err := e.NormalizeMarker(context.Background(), "Xyzolate-9000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "X9" {
		t.Errorf("expected X9, got %s", id)
	}
	if len(rec.names) != 1 {
		t.Errorf("expected unmapped name recorded, got %v", rec.names)
	}

	id, _ = e.NormalizeMarker(context.Background(), "Perfluorooctanoic Acid (ng/mL)")
	if id != "PFOA" {
		t.Errorf("expected PFOA, got %s", id)
	}
}

func TestResolveAllKeepsOrder(t *testing.T) {
	e := builtinEngine(nil)
	got, err := e.ResolveAll(context.Background(), []string{"Lead", "Mystery Thing", "Cadmium"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"LEAD", "MT", "CAD"}
	for i := range want {
		if got[i].MarkerID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i].MarkerID)
		}
	}
	if got[1].Known {
		t.Error("fallback match must not be known")
	}
	if got[0].Weight != 9 {
		t.Errorf("expected LEAD weight 9, got %f", got[0].Weight)
	}
}

func TestEngineWithoutProvider(t *testing.T) {
	e := NewEngine(nil, EngineOptions{}, discardLogger())
	if _, err := e.ScoreIngredients(context.Background(), "Water"); !errors.Is(err, ErrNoVocabulary) {
		t.Errorf("expected ErrNoVocabulary, got %v", err)
	}
	if _, err := e.NormalizeMarker(context.Background(), "Lead"); !errors.Is(err, ErrNoVocabulary) {
		t.Errorf("expected ErrNoVocabulary, got %v", err)
	}
}

func TestEngineRefusesToScoreWithoutVocabulary(t *testing.T) {
	cache := vocab.NewCache(failingSource{}, vocab.CacheOptions{}, discardLogger())
	e := NewEngine(cache, EngineOptions{}, discardLogger())

	res, err := e.ScoreIngredients(context.Background(), "Lead, Mercury")
	if !errors.Is(err, vocab.ErrVocabularyUnavailable) {
		t.Fatalf("expected ErrVocabularyUnavailable, got %v", err)
	}
	if res != nil {
		t.Error("expected no result")
	}

	if _, err := NewEngine(StaticProvider{}, EngineOptions{}, discardLogger()).ResolveAll(context.Background(), []string{"x"}); !errors.Is(err, vocab.ErrVocabularyUnavailable) {
		t.Errorf("expected ErrVocabularyUnavailable from empty static provider, got %v", err)
	}
}

func TestEngineConcurrentScoring(t *testing.T) {
	e := builtinEngine(&recorded{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.ScoreIngredients(context.Background(), "Water, Fragrance, Methylparaben")
			if err != nil || res.OverallScore != 70 {
				t.Errorf("unexpected result: %v %v", res, err)
			}
		}()
	}
	wg.Wait()
}
