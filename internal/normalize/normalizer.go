// Package normalize maps free-text marker and ingredient names onto canonical
// vocabulary IDs.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

// Method names the step that produced a resolution.
type Method string

const (
	MethodEmpty     Method = "empty"
	MethodExact     Method = "exact"
	MethodAlnum     Method = "alnum"
	MethodPartial   Method = "partial"
	MethodHeuristic Method = "heuristic"
	MethodFallback  Method = "fallback"
)

const (
	DefaultMinPartialAliasLen = 4
	DefaultFallbackMaxLen     = 8

	// UnmappedPrefix is prepended to a synthesized code that equals a
	// vocabulary marker ID.
	UnmappedPrefix = "UNKNOWN_"
)

// Options tunes matching thresholds. Zero values take the defaults.
type Options struct {
	// Aliases must be longer than this to take part in substring matching.
	MinPartialAliasLen int
	FallbackMaxLen     int
}

func (o Options) withDefaults() Options {
	if o.MinPartialAliasLen <= 0 {
		o.MinPartialAliasLen = DefaultMinPartialAliasLen
	}
	if o.FallbackMaxLen <= 0 {
		o.FallbackMaxLen = DefaultFallbackMaxLen
	}
	return o
}

// Recorder receives names that fell through to a synthesized code.
// Implementations must not block.
type Recorder interface {
	RecordUnmapped(raw, code string)
}

// NopRecorder discards unmapped names.
type NopRecorder struct{}

func (NopRecorder) RecordUnmapped(string, string) {}

// Resolution is the outcome of normalizing one name.
type Resolution struct {
	MarkerID   string                  `json:"marker_id"`
	SourceText string                  `json:"source_text"`
	Method     Method                  `json:"method"`
	Known      bool                    `json:"known"`
	Definition *vocab.MarkerDefinition `json:"-"`
}

// Normalizer resolves names against one vocabulary snapshot. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	vocab    *vocab.Vocabulary
	opts     Options
	recorder Recorder
}

func New(v *vocab.Vocabulary, opts Options, rec Recorder) *Normalizer {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Normalizer{vocab: v, opts: opts.withDefaults(), recorder: rec}
}

// Vocabulary returns the snapshot this normalizer resolves against.
func (n *Normalizer) Vocabulary() *vocab.Vocabulary { return n.vocab }

// MarkerID is Normalize reduced to the canonical ID.
func (n *Normalizer) MarkerID(raw string) string {
	return n.Normalize(raw).MarkerID
}

// Normalize resolves raw in strict priority order: exact alias, alphanumeric
// key, substring containment, name-family heuristics, a parenthetical
// abbreviation naming a marker, then a synthesized fallback code. It never
// fails.
func (n *Normalizer) Normalize(raw string) Resolution {
	res := Resolution{SourceText: raw}
	if strings.TrimSpace(raw) == "" {
		res.MarkerID = vocab.UnknownMarkerID
		res.Method = MethodEmpty
		return res
	}

	// Aliases that themselves carry parentheses must survive cleaning.
	if d, ok := n.vocab.LookupAlias(raw); ok {
		return known(res, d, MethodExact)
	}

	cleaned := Clean(raw)
	if d, ok := n.vocab.LookupAlias(cleaned); ok {
		return known(res, d, MethodExact)
	}

	if d, ok := n.vocab.LookupAlnum(vocab.AlnumKey(cleaned)); ok {
		return known(res, d, MethodAlnum)
	}

	if d, ok := n.partial(cleaned); ok {
		return known(res, d, MethodPartial)
	}

	if d, ok := n.heuristic(cleaned); ok {
		return known(res, d, MethodHeuristic)
	}

	if d, ok := n.abbreviated(raw); ok {
		return known(res, d, MethodExact)
	}

	res.MarkerID = n.unmappedCode(raw)
	res.Method = MethodFallback
	n.recorder.RecordUnmapped(raw, res.MarkerID)
	return res
}

// abbreviated resolves an all-caps parenthetical token that is itself a
// vocabulary alias or marker ID, as in "Unlisted fluorosurfactant (PFOA)".
func (n *Normalizer) abbreviated(raw string) (*vocab.MarkerDefinition, bool) {
	for _, m := range parenGroup.FindAllStringSubmatch(raw, -1) {
		code, ok := abbreviation(m[1])
		if !ok {
			continue
		}
		if d, ok := n.vocab.LookupAlias(m[1]); ok {
			return d, true
		}
		if d, ok := n.vocab.Marker(code); ok {
			return d, true
		}
	}
	return nil, false
}

// unmappedCode is Fallback namespaced away from vocabulary IDs, so an unknown
// name never carries the ID of a real marker.
func (n *Normalizer) unmappedCode(raw string) string {
	code := Fallback(raw, n.opts.FallbackMaxLen)
	for {
		if _, taken := n.vocab.Marker(code); !taken {
			return code
		}
		code = UnmappedPrefix + code
	}
}

func known(res Resolution, d *vocab.MarkerDefinition, m Method) Resolution {
	res.MarkerID = d.ID
	res.Method = m
	res.Known = true
	res.Definition = d
	return res
}

// partial scans aliases in declaration order and takes the first alias that
// the input contains, or that contains the input. Both sides must clear the
// length threshold so "tg" or "na" never match on their own.
func (n *Normalizer) partial(cleaned string) (*vocab.MarkerDefinition, bool) {
	min := n.opts.MinPartialAliasLen
	inputLong := len(cleaned) > min
	for _, e := range n.vocab.Aliases() {
		if len(e.Alias) <= min {
			continue
		}
		if strings.Contains(cleaned, e.Alias) || (inputLong && strings.Contains(e.Alias, cleaned)) {
			return n.vocab.Marker(e.MarkerID)
		}
	}
	return nil, false
}

// massUnits are the concentration units stripped in parentheses or as a
// trailing suffix, optionally qualified per creatinine as urine panels report.
const (
	massUnits     = `ug/g|µg/g|mcg/g|ng/g|ng/mg|mg/g|µmol/l|umol/l|nmol/l|pg/ml|ng/ml|ug/dl|mg/dl`
	perCreatinine = `(?:\s*(?:creatinine|creat|cr)\b)?`
)

var (
	unitParen  = regexp.MustCompile(`(?i)\s*\(\s*(?:` + massUnits + `|mg/l|ppb|ppm|%)` + perCreatinine + `\s*\)\s*`)
	unitSuffix = regexp.MustCompile(`(?i)\s*(?:` + massUnits + `)` + perCreatinine + `\s*$`)
	abbrParen  = regexp.MustCompile(`\s*\(([A-Z][A-Z0-9\-]{1,9})\)\s*`)
	parenGroup = regexp.MustCompile(`\(([^()]*)\)`)
)

// Clean lower-cases raw, strips unit parentheticals, unit suffixes and an
// all-caps abbreviation restatement such as "(DEDTP)", then collapses
// whitespace. The abbreviation is kept when the whole name is itself
// upper-case, since then it may be the only distinguishing part.
func Clean(raw string) string {
	s := raw
	if hasLower(abbrParen.ReplaceAllString(s, " ")) {
		s = abbrParen.ReplaceAllString(s, " ")
	}
	s = strings.ToLower(s)
	s = unitParen.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = unitSuffix.ReplaceAllString(s, "")
	return vocab.NormalizeAlias(s)
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// Fallback synthesizes a code for a name nothing matched. An all-caps
// parenthetical token in the original wins; otherwise the upper-cased initial
// of every alphanumeric word, capped at maxLen. Distinct names can collide on
// the same initials.
func Fallback(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultFallbackMaxLen
	}
	for _, m := range parenGroup.FindAllStringSubmatch(raw, -1) {
		if code, ok := abbreviation(m[1]); ok {
			return code
		}
	}

	words := strings.FieldsFunc(vocab.Fold(raw), func(r rune) bool {
		return !isASCIIAlnum(r)
	})
	var b strings.Builder
	for _, w := range words {
		if b.Len() >= maxLen {
			break
		}
		b.WriteByte(byte(unicode.ToUpper(rune(w[0]))))
	}
	if b.Len() == 0 {
		return vocab.UnknownMarkerID
	}
	return b.String()
}

// abbreviation accepts tokens like "DEDTP" or "GENX/HPFO-DA" and rewrites
// separators to underscores.
func abbreviation(tok string) (string, bool) {
	tok = strings.TrimSpace(tok)
	if len(tok) < 2 || len(tok) > 16 {
		return "", false
	}
	letters := 0
	var b strings.Builder
	for _, r := range tok {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '/' || r == '_' || r == '.' || r == ',':
			b.WriteByte('_')
		default:
			return "", false
		}
	}
	if letters == 0 {
		return "", false
	}
	return b.String(), true
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
