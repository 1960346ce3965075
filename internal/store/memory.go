package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

// MemoryStore is an in-process Store for running without Postgres and for
// tests. Returned records are copies.
type MemoryStore struct {
	mu            sync.RWMutex
	products      map[string]*Product
	misses        map[string]*ScanMiss
	unmapped      map[string]*UnmappedMarker
	labs          map[string]*LabResult
	substitutions []*Substitution
	markers       vocab.MarkerSet
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*Product),
		misses:   make(map[string]*ScanMiss),
		unmapped: make(map[string]*UnmappedMarker),
		labs:     make(map[string]*LabResult),
		now:      time.Now,
	}
}

func (s *MemoryStore) Close() error { return nil }

// AddSubstitution seeds a substitution row.
func (s *MemoryStore) AddSubstitution(sub Substitution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.substitutions = append(s.substitutions, &sub)
}

// SetMarkers replaces the marker definitions served by LoadMarkers.
func (s *MemoryStore) SetMarkers(set vocab.MarkerSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = set
}

// --- Products ---

func (s *MemoryStore) GetProductByBarcodes(_ context.Context, barcodes []string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *Product
	for _, p := range s.products {
		for _, bc := range barcodes {
			if p.Barcode == bc && (best == nil || p.UpdatedAt.After(best.UpdatedAt)) {
				best = p
			}
		}
	}
	return copyProduct(best), nil
}

func (s *MemoryStore) GetProduct(_ context.Context, productID string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProduct(s.products[productID]), nil
}

func (s *MemoryStore) FindProductByNameBrand(_ context.Context, name, brand string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if strings.EqualFold(p.Name, name) && strings.EqualFold(p.Brand, brand) {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ProductID]; ok {
		return fmt.Errorf("product %s already exists", p.ProductID)
	}
	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ProductID] = copyProduct(p)
	return nil
}

func (s *MemoryStore) UpdateProductScore(_ context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products[p.ProductID]
	if !ok {
		return ErrNotFound
	}
	cur.HazardScore = p.HazardScore
	cur.HazardLevel = p.HazardLevel
	cur.DomainStatus = p.DomainStatus
	cur.Concerns = p.Concerns
	cur.VocabularyVersion = p.VocabularyVersion
	if p.SubCategory != "" {
		cur.SubCategory = p.SubCategory
	}
	cur.UpdatedAt = s.now().UTC()
	return nil
}

func copyProduct(p *Product) *Product {
	if p == nil {
		return nil
	}
	cp := *p
	if p.HazardScore != nil {
		v := *p.HazardScore
		cp.HazardScore = &v
	}
	if p.DomainStatus != nil {
		cp.DomainStatus = make(map[string]string, len(p.DomainStatus))
		for k, v := range p.DomainStatus {
			cp.DomainStatus[k] = v
		}
	}
	cp.Concerns = append([]string(nil), p.Concerns...)
	return &cp
}

// --- Scan misses ---

func (s *MemoryStore) RecordScanMiss(_ context.Context, barcode, categoryHint string, at time.Time) (*ScanMiss, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.misses[barcode]
	if !ok {
		m = &ScanMiss{
			Barcode:      barcode,
			FirstScanned: at,
			CategoryHint: categoryHint,
			Status:       MissPending,
		}
		s.misses[barcode] = m
	}
	m.ScanCount++
	m.LastScanned = at
	if m.CategoryHint == "" {
		m.CategoryHint = categoryHint
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryStore) ListScanMisses(_ context.Context, filter MissFilter) ([]*ScanMiss, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*ScanMiss
	for _, m := range s.misses {
		if m.Status == filter.Status && m.ScanCount >= filter.MinScans {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScanCount != out[j].ScanCount {
			return out[i].ScanCount > out[j].ScanCount
		}
		return out[i].LastScanned.After(out[j].LastScanned)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) UpdateScanMissStatus(_ context.Context, barcode string, status MissStatus, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.misses[barcode]
	if !ok {
		return ErrNotFound
	}
	m.Status = status
	m.Notes = notes
	m.ResolvedAt = nil
	if status != MissPending {
		now := s.now().UTC()
		m.ResolvedAt = &now
	}
	return nil
}

// --- Curation ---

func (s *MemoryStore) UpsertUnmappedMarkers(_ context.Context, entries []UnmappedMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		cur, ok := s.unmapped[e.RawName]
		if !ok {
			cp := e
			s.unmapped[e.RawName] = &cp
			continue
		}
		cur.Code = e.Code
		cur.Count += e.Count
		if e.LastSeen.After(cur.LastSeen) {
			cur.LastSeen = e.LastSeen
		}
	}
	return nil
}

func (s *MemoryStore) ListUnmappedMarkers(_ context.Context, limit int) ([]*UnmappedMarker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*UnmappedMarker, 0, len(s.unmapped))
	for _, u := range s.unmapped {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].LastSeen.After(out[j].LastSeen)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Labs ---

func (s *MemoryStore) SaveLabResults(_ context.Context, results []*LabResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		cp := *r
		s.labs[r.ResultID] = &cp
	}
	return nil
}

func (s *MemoryStore) ListLabResults(_ context.Context, reportID string) ([]*LabResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*LabResult
	for _, r := range s.labs {
		if r.ReportID == reportID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResultID < out[j].ResultID })
	return out, nil
}

// --- Substitutions ---

func (s *MemoryStore) ListSubstitutionsForProduct(_ context.Context, productID string) ([]*Substitution, error) {
	return s.substitutionsWhere(5, func(sub *Substitution) bool {
		return sub.OriginalProductID == productID
	}), nil
}

func (s *MemoryStore) ListUniversalSubstitutions(_ context.Context, subCategory string) ([]*Substitution, error) {
	return s.substitutionsWhere(3, func(sub *Substitution) bool {
		return sub.IsUniversal && sub.OriginalSubCategory == subCategory
	}), nil
}

func (s *MemoryStore) substitutionsWhere(limit int, keep func(*Substitution) bool) []*Substitution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Substitution
	for _, sub := range s.substitutions {
		if keep(sub) {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ImprovementPercentage > out[j].ImprovementPercentage
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// --- Vocabulary ---

func (s *MemoryStore) LoadMarkers(ctx context.Context) (vocab.MarkerSet, error) {
	if err := ctx.Err(); err != nil {
		return vocab.MarkerSet{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := vocab.MarkerSet{Version: s.markers.Version}
	set.Markers = append(set.Markers, s.markers.Markers...)
	return set, nil
}
