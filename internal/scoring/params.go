package scoring

import (
	"errors"
	"fmt"
)

// ScoreParams holds the constants of the hazard formula.
type ScoreParams struct {
	// BaseScore is the floor every product starts from.
	BaseScore float64
	// MaxWeightMultiplier scales the highest toxicity weight among matches.
	MaxWeightMultiplier float64
	VolumePerToken      float64
	VolumeCap           float64

	ConcernThreshold float64
	MaxConcerns      int
	MaxTokens        int

	// Domain values above ModerateAbove are moderate, above ElevatedAbove
	// elevated.
	ModerateAbove float64
	ElevatedAbove float64
}

// DefaultScoreParams returns the production formula.
func DefaultScoreParams() ScoreParams {
	return ScoreParams{
		BaseScore:           20,
		MaxWeightMultiplier: 8,
		VolumePerToken:      0.5,
		VolumeCap:           20,
		ConcernThreshold:    5,
		MaxConcerns:         10,
		MaxTokens:           DefaultMaxTokens,
		ModerateAbove:       3,
		ElevatedAbove:       6,
	}
}

// Validate rejects parameter sets that cannot produce a score in [0,100].
func (p ScoreParams) Validate() error {
	for name, v := range map[string]float64{
		"base_score":            p.BaseScore,
		"max_weight_multiplier": p.MaxWeightMultiplier,
		"volume_per_token":      p.VolumePerToken,
		"volume_cap":            p.VolumeCap,
		"concern_threshold":     p.ConcernThreshold,
	} {
		if v < 0 {
			return fmt.Errorf("negative %s: %f", name, v)
		}
	}
	if p.BaseScore > 100 {
		return fmt.Errorf("base_score %.1f exceeds 100", p.BaseScore)
	}
	if p.MaxTokens <= 0 {
		return errors.New("max_tokens must be positive")
	}
	if p.MaxConcerns < 0 {
		return errors.New("max_concerns must not be negative")
	}
	if p.ModerateAbove > p.ElevatedAbove {
		return fmt.Errorf("moderate threshold %.1f above elevated threshold %.1f", p.ModerateAbove, p.ElevatedAbove)
	}
	return nil
}
