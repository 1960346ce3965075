package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

// MaxSubstitutions is how many alternatives a product page shows.
const MaxSubstitutions = 3

// RankSubstitutions orders alternatives whose domain focus is one of the
// given domains first, then by improvement percentage, and keeps the top
// three. The input slice is not modified.
func RankSubstitutions(subs []*store.Substitution, domains []string) []*store.Substitution {
	focus := make(map[string]bool, len(domains))
	for _, d := range domains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			focus[d] = true
		}
	}
	out := append([]*store.Substitution(nil), subs...)
	sort.SliceStable(out, func(i, j int) bool {
		fi := focus[strings.ToLower(out[i].DomainFocus)]
		fj := focus[strings.ToLower(out[j].DomainFocus)]
		if fi != fj {
			return fi
		}
		return out[i].ImprovementPercentage > out[j].ImprovementPercentage
	})
	if len(out) > MaxSubstitutions {
		out = out[:MaxSubstitutions]
	}
	return out
}

// Substitutions returns safer alternatives for a product. Product-specific
// rows win; universal rows for the sub-category are the fallback. When no
// sub-category is given the product's own is used. total counts candidates
// before the cut.
func (s *Service) Substitutions(ctx context.Context, productID, subCategory string, domains []string) (subs []*store.Substitution, total int, err error) {
	var candidates []*store.Substitution
	if productID != "" {
		candidates, err = s.store.ListSubstitutionsForProduct(ctx, productID)
		if err != nil {
			return nil, 0, fmt.Errorf("list substitutions: %w", err)
		}
	}
	if len(candidates) == 0 {
		if subCategory == "" && productID != "" {
			p, err := s.store.GetProduct(ctx, productID)
			if err != nil {
				return nil, 0, fmt.Errorf("get product: %w", err)
			}
			if p != nil {
				subCategory = p.SubCategory
			}
		}
		if subCategory != "" {
			candidates, err = s.store.ListUniversalSubstitutions(ctx, subCategory)
			if err != nil {
				return nil, 0, fmt.Errorf("list universal substitutions: %w", err)
			}
			for _, c := range candidates {
				c.IsUniversal = true
			}
		}
	}
	return RankSubstitutions(candidates, domains), len(candidates), nil
}
