package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/normalize"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

// ErrNoVocabulary is returned when the engine was built without a
// vocabulary provider.
var ErrNoVocabulary = errors.New("scoring: engine has no vocabulary provider")

// VocabularyProvider hands out the current vocabulary snapshot.
// *vocab.Cache satisfies it.
type VocabularyProvider interface {
	Vocabulary(ctx context.Context) (*vocab.Vocabulary, error)
}

// StaticProvider serves a fixed vocabulary.
type StaticProvider struct {
	V *vocab.Vocabulary
}

func (p StaticProvider) Vocabulary(context.Context) (*vocab.Vocabulary, error) {
	if p.V == nil {
		return nil, vocab.ErrVocabularyUnavailable
	}
	return p.V, nil
}

type EngineOptions struct {
	Params    ScoreParams
	Normalize normalize.Options
	Recorder  normalize.Recorder
	Metrics   *metrics.Metrics
}

// IngredientScore is the hazard result for one ingredient list plus the
// parse bookkeeping callers surface to users.
type IngredientScore struct {
	HazardScoreResult
	Parsed            []string `json:"parsed"`
	TotalCount        int      `json:"total_count"`
	MatchedCount      int      `json:"matched_count"`
	Truncated         bool     `json:"truncated"`
	Dropped           int      `json:"dropped"`
	VocabularyVersion string   `json:"vocabulary_version"`
}

// Engine ties the vocabulary, normalizer and aggregator together. All
// methods are safe for concurrent use.
type Engine struct {
	provider VocabularyProvider
	params   ScoreParams
	agg      *Aggregator
	normOpts normalize.Options
	recorder normalize.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewEngine(provider VocabularyProvider, opts EngineOptions, logger *slog.Logger) *Engine {
	if opts.Params == (ScoreParams{}) {
		opts.Params = DefaultScoreParams()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		provider: provider,
		params:   opts.Params,
		agg:      NewAggregator(opts.Params),
		normOpts: opts.Normalize,
		recorder: opts.Recorder,
		metrics:  opts.Metrics,
		logger:   logger,
	}
}

// Params returns the formula constants in use.
func (e *Engine) Params() ScoreParams { return e.params }

// Normalizer returns a normalizer bound to the current vocabulary.
func (e *Engine) Normalizer(ctx context.Context) (*normalize.Normalizer, error) {
	if e == nil || e.provider == nil {
		return nil, ErrNoVocabulary
	}
	v, err := e.provider.Vocabulary(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return normalize.New(v, e.normOpts, e.recorder), nil
}

// NormalizeMarker resolves one name to its canonical marker ID. Unresolvable
// names yield a synthesized code, not an error.
func (e *Engine) NormalizeMarker(ctx context.Context, raw string) (string, error) {
	n, err := e.Normalizer(ctx)
	if err != nil {
		return "", err
	}
	r := n.Normalize(raw)
	e.metrics.IncResolution(string(r.Method))
	return r.MarkerID, nil
}

// ResolveAll normalizes names in order against one vocabulary snapshot.
func (e *Engine) ResolveAll(ctx context.Context, names []string) ([]ResolvedMatch, error) {
	n, err := e.Normalizer(ctx)
	if err != nil {
		return nil, err
	}
	return e.resolve(n, names), nil
}

func (e *Engine) resolve(n *normalize.Normalizer, names []string) []ResolvedMatch {
	out := make([]ResolvedMatch, 0, len(names))
	for _, name := range names {
		r := n.Normalize(name)
		e.metrics.IncResolution(string(r.Method))
		out = append(out, MatchFromResolution(r))
	}
	return out
}

// ScoreResolved aggregates matches that were resolved elsewhere.
func (e *Engine) ScoreResolved(matches []ResolvedMatch, tokenCount int) HazardScoreResult {
	return e.agg.Score(matches, tokenCount)
}

// ScoreIngredients parses, normalizes and scores a raw ingredient list. It
// fails only when no vocabulary is available; empty or noisy text scores
// at the base value.
func (e *Engine) ScoreIngredients(ctx context.Context, raw string) (*IngredientScore, error) {
	start := time.Now()
	n, err := e.Normalizer(ctx)
	if err != nil {
		return nil, err
	}

	parsed := ParseIngredients(raw, e.params.MaxTokens)
	texts := parsed.Texts()
	res := e.agg.Score(e.resolve(n, texts), len(texts))

	if parsed.Truncated {
		e.logger.Debug("ingredient list truncated", "kept", len(texts), "dropped", parsed.Dropped)
	}
	e.metrics.ObserveScore(string(res.Level), time.Since(start))

	return &IngredientScore{
		HazardScoreResult: res,
		Parsed:            texts,
		TotalCount:        len(texts),
		MatchedCount:      len(res.Matches),
		Truncated:         parsed.Truncated,
		Dropped:           parsed.Dropped,
		VocabularyVersion: n.Vocabulary().Version(),
	}, nil
}
