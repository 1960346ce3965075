package normalize

import (
	"strings"

	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

// rule recognizes a name family that upstream extraction tends to mangle.
type rule struct {
	target string
	match  func(name string, tokens []string) bool
}

// heuristics are tried in order; a rule only fires if its target exists in
// the vocabulary being used.
var heuristics = []rule{
	{"CML", func(s string, _ []string) bool {
		return strings.Contains(s, "carboxymethyl") && strings.Contains(s, "lysine")
	}},
	{"8_ISO_PGF2A", func(s string, tok []string) bool {
		return isProstaglandin(s) && (hasToken(tok, "iso") || strings.Contains(s, "isoprost"))
	}},
	{"11B_PGF2A", func(s string, tok []string) bool {
		return isProstaglandin(s) && leadingNumber(tok, "11")
	}},
	{"15_KETO_PGF2A", func(s string, tok []string) bool {
		return isProstaglandin(s) && leadingNumber(tok, "15")
	}},
	{"8OHDG", func(s string, _ []string) bool {
		return strings.Contains(s, "hydroxydeoxyguanosine") ||
			strings.Contains(s, "hydroxy-2-deoxyguanosine") ||
			strings.Contains(s, "8-ohdg") ||
			strings.Contains(s, "8-oxo-dg") ||
			(strings.Contains(s, "deoxyguanosine") && strings.Contains(s, "8"))
	}},
	{"11DH_TXB2", func(s string, _ []string) bool {
		return strings.Contains(s, "thromboxane") && strings.Contains(s, "dehydro")
	}},
	{"MDA", func(s string, tok []string) bool {
		return strings.Contains(s, "malondialdehyde") || hasToken(tok, "mda")
	}},
}

func (n *Normalizer) heuristic(cleaned string) (*vocab.MarkerDefinition, bool) {
	folded := vocab.Fold(cleaned)
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
	for _, h := range heuristics {
		if !h.match(folded, tokens) {
			continue
		}
		if d, ok := n.vocab.Marker(h.target); ok {
			return d, true
		}
	}
	return nil, false
}

func isProstaglandin(s string) bool {
	return strings.Contains(s, "prostaglandin") || strings.Contains(s, "pgf") || strings.Contains(s, "isoprost")
}

func hasToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

// leadingNumber reports whether the first token starts with num, covering
// both "11-..." and the fused "11b-..." spelling.
func leadingNumber(tokens []string, num string) bool {
	if len(tokens) == 0 {
		return false
	}
	first := tokens[0]
	if !strings.HasPrefix(first, num) {
		return false
	}
	rest := first[len(num):]
	return rest == "" || (rest[0] < '0' || rest[0] > '9')
}
