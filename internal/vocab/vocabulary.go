package vocab

import (
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// UnknownMarkerID is returned for empty input.
	UnknownMarkerID = "UNKNOWN"

	MinWeight = 0
	MaxWeight = 10
)

// MarkerDefinition is one canonical marker and the names it is known by.
type MarkerDefinition struct {
	ID             string             `json:"marker_id" yaml:"id"`
	Name           string             `json:"name" yaml:"name"`
	Panel          string             `json:"panel,omitempty" yaml:"panel,omitempty"`
	ToxicityWeight float64            `json:"toxicity_weight" yaml:"toxicity_weight"`
	Domains        map[Domain]float64 `json:"domains,omitempty" yaml:"domains,omitempty"`
	Aliases        []string           `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// MarkerSet is the unit a Source produces.
type MarkerSet struct {
	Version string             `json:"version" yaml:"version"`
	Markers []MarkerDefinition `json:"markers" yaml:"markers"`
}

// AliasEntry pairs a normalized alias with the marker it resolves to.
type AliasEntry struct {
	Alias    string `json:"alias"`
	MarkerID string `json:"marker_id"`
}

// ConflictKind says which index a Conflict was found in.
type ConflictKind string

const (
	// ConflictAlias is an exact alias claimed twice; the later claim is
	// unreachable.
	ConflictAlias ConflictKind = "alias"
	// ConflictAlnum is two aliases of different markers that share an
	// AlnumKey; the later one still resolves exactly.
	ConflictAlnum ConflictKind = "alnum"
)

// Conflict records an alias claimed by more than one marker.
type Conflict struct {
	Kind      ConflictKind `json:"kind"`
	Alias     string       `json:"alias"`
	KeptID    string       `json:"kept_marker_id"`
	DroppedID string       `json:"dropped_marker_id"`
}

// Vocabulary is an immutable, indexed marker table. All lookups are safe for
// concurrent use; returned definitions must not be modified.
type Vocabulary struct {
	version   string
	markers   []*MarkerDefinition
	byID      map[string]*MarkerDefinition
	aliases   []AliasEntry
	exact     map[string]*MarkerDefinition
	alnum     map[string]*MarkerDefinition
	conflicts []Conflict
}

// New indexes defs in declaration order. Duplicate aliases and duplicate IDs
// are logged and resolved first-wins; out-of-range weights are clamped.
func New(version string, defs []MarkerDefinition, logger *slog.Logger) *Vocabulary {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Vocabulary{
		version: version,
		byID:    make(map[string]*MarkerDefinition, len(defs)),
		exact:   make(map[string]*MarkerDefinition),
		alnum:   make(map[string]*MarkerDefinition),
	}

	for _, d := range defs {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			logger.Warn("vocabulary: skipping marker without id", "name", d.Name)
			continue
		}
		if _, dup := v.byID[id]; dup {
			logger.Warn("vocabulary: duplicate marker id ignored", "marker_id", id)
			continue
		}

		def := &MarkerDefinition{
			ID:             id,
			Name:           strings.TrimSpace(d.Name),
			Panel:          d.Panel,
			ToxicityWeight: clampWeight(d.ToxicityWeight),
			Domains:        make(map[Domain]float64, len(d.Domains)),
		}
		for dom, w := range d.Domains {
			pd, ok := ParseDomain(string(dom))
			if !ok {
				logger.Warn("vocabulary: unknown domain dropped", "marker_id", id, "domain", dom)
				continue
			}
			def.Domains[pd] = clampWeight(w)
		}
		if d.ToxicityWeight != def.ToxicityWeight {
			logger.Warn("vocabulary: toxicity weight clamped", "marker_id", id, "weight", d.ToxicityWeight)
		}

		names := make([]string, 0, len(d.Aliases)+1)
		if def.Name != "" {
			names = append(names, def.Name)
		}
		names = append(names, d.Aliases...)

		seen := make(map[string]bool, len(names))
		for _, raw := range names {
			alias := NormalizeAlias(raw)
			if alias == "" || seen[alias] {
				continue
			}
			seen[alias] = true
			def.Aliases = append(def.Aliases, alias)

			if kept, taken := v.exact[alias]; taken {
				v.conflicts = append(v.conflicts, Conflict{Kind: ConflictAlias, Alias: alias, KeptID: kept.ID, DroppedID: id})
				logger.Warn("vocabulary: duplicate alias, first registration wins",
					"alias", alias, "kept", kept.ID, "dropped", id)
				continue
			}
			v.exact[alias] = def
			v.aliases = append(v.aliases, AliasEntry{Alias: alias, MarkerID: id})

			key := AlnumKey(alias)
			if key == "" {
				continue
			}
			if kept, taken := v.alnum[key]; !taken {
				v.alnum[key] = def
			} else if kept.ID != id {
				v.conflicts = append(v.conflicts, Conflict{Kind: ConflictAlnum, Alias: alias, KeptID: kept.ID, DroppedID: id})
				logger.Warn("vocabulary: alphanumeric key shared, first registration wins",
					"alias", alias, "key", key, "kept", kept.ID, "dropped", id)
			}
		}

		v.byID[id] = def
		v.markers = append(v.markers, def)
	}

	return v
}

// Version identifies the marker table this vocabulary was built from.
func (v *Vocabulary) Version() string { return v.version }

// Len returns the number of markers.
func (v *Vocabulary) Len() int { return len(v.markers) }

// Marker returns the definition for a canonical ID.
func (v *Vocabulary) Marker(id string) (*MarkerDefinition, bool) {
	d, ok := v.byID[id]
	return d, ok
}

// Markers returns definitions in declaration order.
func (v *Vocabulary) Markers() []*MarkerDefinition {
	out := make([]*MarkerDefinition, len(v.markers))
	copy(out, v.markers)
	return out
}

// LookupAlias is an exact, case-insensitive, whitespace-collapsed lookup.
func (v *Vocabulary) LookupAlias(text string) (*MarkerDefinition, bool) {
	d, ok := v.exact[NormalizeAlias(text)]
	return d, ok
}

// LookupAlnum looks up a key already produced by AlnumKey.
func (v *Vocabulary) LookupAlnum(key string) (*MarkerDefinition, bool) {
	if key == "" {
		return nil, false
	}
	d, ok := v.alnum[key]
	return d, ok
}

// Aliases returns the winning (alias, marker) pairs in declaration order:
// definition order first, then alias order within a definition.
func (v *Vocabulary) Aliases() []AliasEntry {
	out := make([]AliasEntry, len(v.aliases))
	copy(out, v.aliases)
	return out
}

// Conflicts lists aliases claimed by more than one marker, exact or by
// AlnumKey, in registration order.
func (v *Vocabulary) Conflicts() []Conflict {
	out := make([]Conflict, len(v.conflicts))
	copy(out, v.conflicts)
	return out
}

// NormalizeAlias lower-cases s and collapses internal whitespace.
func NormalizeAlias(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

var greekFold = strings.NewReplacer(
	"α", "a", "β", "b", "γ", "g", "δ", "d", "ε", "e", "κ", "k",
	"λ", "l", "ω", "o", "µ", "u", "μ", "u",
)

// Fold lower-cases s, spells Greek letters as their Latin initial and removes
// diacritics.
func Fold(s string) string {
	s = greekFold.Replace(strings.ToLower(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// AlnumKey folds s and keeps only letters and digits, so "11-β-Prostaglandin
// F2α" and "11b-prostaglandin f2a" share a key.
func AlnumKey(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampWeight(w float64) float64 {
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}
