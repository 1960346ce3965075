package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Toxscan/internal/normalize"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
)

// LevelFor buckets an overall score.
func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelVeryHigh
	case score >= 60:
		return LevelHigh
	case score >= 40:
		return LevelModerate
	default:
		return LevelLow
	}
}

type DomainStatus string

const (
	StatusNormal   DomainStatus = "normal"
	StatusModerate DomainStatus = "moderate"
	StatusElevated DomainStatus = "elevated"
)

// ResolvedMatch is one normalized name with the weights of the marker it
// resolved to. Unknown matches carry their fallback code and no weights.
type ResolvedMatch struct {
	MarkerID   string                   `json:"marker_id"`
	Name       string                   `json:"name,omitempty"`
	SourceText string                   `json:"source_text"`
	Method     normalize.Method         `json:"method"`
	Known      bool                     `json:"known"`
	Weight     float64                  `json:"weight"`
	Domains    map[vocab.Domain]float64 `json:"domains,omitempty"`
}

func MatchFromResolution(r normalize.Resolution) ResolvedMatch {
	m := ResolvedMatch{
		MarkerID:   r.MarkerID,
		SourceText: r.SourceText,
		Method:     r.Method,
		Known:      r.Known,
	}
	if r.Known && r.Definition != nil {
		m.Name = r.Definition.Name
		m.Weight = r.Definition.ToxicityWeight
		m.Domains = r.Definition.Domains
	}
	return m
}

type HazardScoreResult struct {
	OverallScore int                           `json:"overall_score"`
	Level        Level                         `json:"level"`
	Domains      map[vocab.Domain]DomainStatus `json:"domains"`
	DomainValues map[vocab.Domain]float64      `json:"domain_values"`
	MaxToxicity  float64                       `json:"max_toxicity"`
	Matches      []ResolvedMatch               `json:"matches"`
	Unmatched    []ResolvedMatch               `json:"unmatched"`
	Concerns     []ResolvedMatch               `json:"concerns"`
}

// TopMatches returns at most n known matches in encounter order.
func (r HazardScoreResult) TopMatches(n int) []ResolvedMatch {
	if n < 0 || n >= len(r.Matches) {
		return r.Matches
	}
	return r.Matches[:n]
}

// ElevatedDomains lists elevated domains in declared domain order.
func (r HazardScoreResult) ElevatedDomains() []vocab.Domain {
	var out []vocab.Domain
	for _, d := range vocab.AllDomains() {
		if r.Domains[d] == StatusElevated {
			out = append(out, d)
		}
	}
	return out
}

// Aggregator turns resolved matches into a hazard score. It is stateless
// and safe for concurrent use.
type Aggregator struct {
	params ScoreParams
}

func NewAggregator(params ScoreParams) *Aggregator {
	return &Aggregator{params: params}
}

// Score deduplicates matches by marker ID (first wins), takes the maximum
// declared weight per domain, and applies the overall formula. tokenCount is
// the number of parsed tokens, matched or not. Zero known matches yield the
// base score with every domain normal.
func (a *Aggregator) Score(matches []ResolvedMatch, tokenCount int) HazardScoreResult {
	p := a.params
	res := HazardScoreResult{
		Domains:      make(map[vocab.Domain]DomainStatus, len(vocab.AllDomains())),
		DomainValues: make(map[vocab.Domain]float64, len(vocab.AllDomains())),
		Matches:      []ResolvedMatch{},
		Unmatched:    []ResolvedMatch{},
		Concerns:     []ResolvedMatch{},
	}
	for _, d := range vocab.AllDomains() {
		res.DomainValues[d] = 0
	}

	for _, m := range Dedup(matches) {
		if !m.Known {
			res.Unmatched = append(res.Unmatched, m)
			continue
		}
		res.Matches = append(res.Matches, m)
		if m.Weight > res.MaxToxicity {
			res.MaxToxicity = m.Weight
		}
		for d, w := range m.Domains {
			if w > res.DomainValues[d] {
				res.DomainValues[d] = w
			}
		}
		if m.Weight >= p.ConcernThreshold && len(res.Concerns) < p.MaxConcerns {
			res.Concerns = append(res.Concerns, m)
		}
	}

	score := p.BaseScore
	if len(res.Matches) > 0 {
		score += res.MaxToxicity*p.MaxWeightMultiplier +
			math.Min(p.VolumeCap, p.VolumePerToken*float64(tokenCount))
	}
	res.OverallScore = int(clamp(math.Round(score), 0, 100))
	res.Level = LevelFor(res.OverallScore)

	for d, v := range res.DomainValues {
		res.Domains[d] = a.status(v)
	}
	return res
}

func (a *Aggregator) status(v float64) DomainStatus {
	switch {
	case v > a.params.ElevatedAbove:
		return StatusElevated
	case v > a.params.ModerateAbove:
		return StatusModerate
	default:
		return StatusNormal
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
