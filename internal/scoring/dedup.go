package scoring

import "github.com/MikeSquared-Agency/Toxscan/internal/vocab"

// DedupBy keeps the first item for each key, preserving encounter order.
// Later duplicates are dropped, never merged.
func DedupBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// MatchKey identifies a match for deduplication. Known matches key on the
// marker ID; unknown ones on their whitespace-collapsed, lower-cased text,
// since distinct names can share a synthesized code.
func MatchKey(m ResolvedMatch) string {
	if m.Known {
		return m.MarkerID
	}
	return "?" + vocab.NormalizeAlias(m.SourceText)
}

// Dedup keeps the first match per MatchKey.
func Dedup(matches []ResolvedMatch) []ResolvedMatch {
	return DedupBy(matches, MatchKey)
}
