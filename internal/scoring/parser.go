package scoring

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxTokens bounds the work done for one ingredient list.
const DefaultMaxTokens = 50

// CandidateToken is one fragment of an ingredient list or result table, in
// the order it appeared.
type CandidateToken struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type ParseResult struct {
	Tokens    []CandidateToken `json:"tokens"`
	Truncated bool             `json:"truncated"`
	// Dropped counts usable tokens discarded past the cap.
	Dropped int `json:"dropped"`
}

// Texts returns the token strings in order.
func (r ParseResult) Texts() []string {
	out := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		out[i] = t.Text
	}
	return out
}

// ParseIngredients splits raw on commas, then each part on semicolons.
// Fragments are trimmed and those shorter than two characters are discarded
// as formatting noise. At most maxTokens are kept (DefaultMaxTokens if
// maxTokens <= 0).
func ParseIngredients(raw string, maxTokens int) ParseResult {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	res := ParseResult{Tokens: []CandidateToken{}}

	raw = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(raw)
	for _, part := range strings.Split(raw, ",") {
		for _, piece := range strings.Split(part, ";") {
			text := strings.TrimSpace(piece)
			if utf8.RuneCountInString(text) < 2 {
				continue
			}
			if len(res.Tokens) >= maxTokens {
				res.Truncated = true
				res.Dropped++
				continue
			}
			res.Tokens = append(res.Tokens, CandidateToken{Text: text, Position: len(res.Tokens)})
		}
	}
	return res
}
