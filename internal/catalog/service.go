// Package catalog resolves scanned barcodes to scored products, falling back
// from the local store to the Open Food Facts family of catalogs.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Toxscan/internal/hermes"
	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidBarcode   = errors.New("invalid barcode")
	ErrDuplicateProduct = errors.New("product already exists")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrInvalidStatus    = errors.New("invalid miss status")
)

// Lookup tiers.
const (
	TierLocal = "local"
	TierMiss  = "miss"
)

// NotFoundError reports a barcode no tier knew. Logged is false when the
// scan miss could not be recorded.
type NotFoundError struct {
	Barcode   string
	Logged    bool
	ScanCount int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Barcode)
}

func (e *NotFoundError) Unwrap() error { return ErrProductNotFound }

type LookupResult struct {
	Product *store.Product           `json:"product"`
	Tier    string                   `json:"tier"`
	Score   *scoring.IngredientScore `json:"score,omitempty"`
	IsNew   bool                     `json:"is_new"`
}

type Service struct {
	store   store.Store
	engine  *scoring.Engine
	sources []ProductSource
	hermes  hermes.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewService builds a catalog. Sources are tried in order after the local
// store.
func NewService(s store.Store, engine *scoring.Engine, sources []ProductSource, h hermes.Client, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   s,
		engine:  engine,
		sources: sources,
		hermes:  h,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Lookup resolves a scanned barcode. Unknown barcodes are recorded as scan
// misses and reported with a *NotFoundError.
func (s *Service) Lookup(ctx context.Context, raw string) (*LookupResult, error) {
	bc, err := NormalizeBarcode(raw)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetProductByBarcodes(ctx, BarcodeVariants(bc))
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if p != nil {
		s.metrics.IncLookup(TierLocal)
		res := &LookupResult{Product: p, Tier: TierLocal}
		if !p.Scored() && p.Ingredients != "" {
			res.Score = s.rescore(ctx, p)
		}
		return res, nil
	}

	for _, src := range s.sources {
		info, err := src.Lookup(ctx, bc)
		if err != nil {
			s.logger.Warn("external lookup failed", "source", src.Name(), "barcode", bc, "error", err)
			continue
		}
		if info == nil {
			continue
		}
		s.metrics.IncLookup(src.Name())
		return s.importProduct(ctx, bc, info), nil
	}

	s.metrics.IncLookup(TierMiss)
	return nil, s.recordMiss(ctx, bc)
}

// rescore scores a stored product that was saved without a score.
func (s *Service) rescore(ctx context.Context, p *store.Product) *scoring.IngredientScore {
	score, err := s.engine.ScoreIngredients(ctx, p.Ingredients)
	if err != nil {
		s.logger.Warn("failed to score stored product", "product_id", p.ProductID, "error", err)
		return nil
	}
	applyScore(p, score)
	if err := s.store.UpdateProductScore(ctx, p); err != nil {
		s.logger.Warn("failed to persist product score", "product_id", p.ProductID, "error", err)
	}
	s.emitScored(p)
	return score
}

// importProduct saves an external hit. Persistence failures are logged; the
// caller still gets the product.
func (s *Service) importProduct(ctx context.Context, bc string, info *ProductInfo) *LookupResult {
	p := &store.Product{
		ProductID:   s.newProductID(info.Category),
		Barcode:     bc,
		Name:        info.Name,
		Brand:       info.Brand,
		Category:    info.Category,
		SubCategory: ClassifySubCategory(*info),
		Ingredients: info.Ingredients,
		ImageURL:    info.ImageURL,
		Source:      info.Source,
	}
	res := &LookupResult{Product: p, Tier: info.Source, IsNew: true}
	if p.Ingredients != "" {
		score, err := s.engine.ScoreIngredients(ctx, p.Ingredients)
		if err != nil {
			s.logger.Warn("failed to score imported product", "barcode", bc, "error", err)
		} else {
			applyScore(p, score)
			res.Score = score
		}
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		s.logger.Error("failed to save imported product", "barcode", bc, "source", info.Source, "error", err)
		return res
	}
	s.logger.Info("product imported", "product_id", p.ProductID, "barcode", bc, "source", info.Source)
	s.emitCreated(p)
	if p.Scored() {
		s.emitScored(p)
	}
	return res
}

func (s *Service) recordMiss(ctx context.Context, bc string) error {
	nf := &NotFoundError{Barcode: bc}
	miss, err := s.store.RecordScanMiss(ctx, bc, "Unknown", s.now().UTC())
	if err != nil {
		s.logger.Error("failed to record scan miss", "barcode", bc, "error", err)
		return nf
	}
	nf.Logged = true
	nf.ScanCount = miss.ScanCount
	hermes.Emit(s.hermes, s.logger, hermes.SubjectScanMissed(bc), hermes.ScanMissedEvent{
		Barcode:      bc,
		ScanCount:    miss.ScanCount,
		CategoryHint: miss.CategoryHint,
		LastScanned:  miss.LastScanned,
	})
	return nf
}

// NewProduct is a manually curated product. A SubCategory that is one of
// the curated values skips classification.
type NewProduct struct {
	ProductID      string `json:"product_id,omitempty"`
	Name           string `json:"product_name"`
	Brand          string `json:"brand,omitempty"`
	Category       string `json:"category,omitempty"`
	SourceCategory string `json:"source_category,omitempty"`
	SubCategory    string `json:"sub_category,omitempty"`
	Barcode        string `json:"upc_barcode,omitempty"`
	Ingredients    string `json:"ingredients_raw,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	Source         string `json:"source,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// AddProduct creates a product after checking for duplicates by barcode and
// by name and brand. On a duplicate the existing product is returned with
// ErrDuplicateProduct.
func (s *Service) AddProduct(ctx context.Context, in NewProduct) (*store.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product_name is required", ErrInvalidProduct)
	}

	var bc string
	if strings.TrimSpace(in.Barcode) != "" {
		var err error
		if bc, err = NormalizeBarcode(in.Barcode); err != nil {
			return nil, err
		}
		existing, err := s.store.GetProductByBarcodes(ctx, BarcodeVariants(bc))
		if err != nil {
			return nil, fmt.Errorf("check barcode: %w", err)
		}
		if existing != nil {
			return existing, ErrDuplicateProduct
		}
	}
	if brand := strings.TrimSpace(in.Brand); brand != "" {
		existing, err := s.store.FindProductByNameBrand(ctx, name, brand)
		if err != nil {
			return nil, fmt.Errorf("check name: %w", err)
		}
		if existing != nil {
			return existing, ErrDuplicateProduct
		}
	}

	p := &store.Product{
		ProductID:   strings.TrimSpace(in.ProductID),
		Barcode:     bc,
		Name:        name,
		Brand:       strings.TrimSpace(in.Brand),
		Category:    strings.TrimSpace(in.Category),
		Ingredients: strings.TrimSpace(in.Ingredients),
		ImageURL:    in.ImageURL,
		Source:      in.Source,
		Notes:       in.Notes,
	}
	if p.Brand == "" {
		p.Brand = defaultBrand
	}
	if p.Category == "" {
		p.Category = CategoryPersonalCare
	}
	if p.Source == "" {
		p.Source = store.SourceManual
	}
	if p.ProductID == "" {
		p.ProductID = s.newProductID(p.Category)
	}
	if sub := strings.TrimSpace(in.SubCategory); ValidSubCategory(sub) {
		p.SubCategory = sub
	} else if sub := ClassifySubCategory(ProductInfo{
		Name:           p.Name,
		Category:       p.Category,
		SourceCategory: in.SourceCategory,
		Source:         p.Source,
	}); ValidSubCategory(sub) {
		p.SubCategory = sub
	}

	if p.Ingredients != "" {
		score, err := s.engine.ScoreIngredients(ctx, p.Ingredients)
		if err != nil && !errors.Is(err, vocab.ErrVocabularyUnavailable) {
			return nil, err
		}
		if score != nil {
			applyScore(p, score)
		}
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info("product added", "product_id", p.ProductID, "barcode", p.Barcode, "sub_category", p.SubCategory)
	s.emitCreated(p)
	if p.Scored() {
		s.emitScored(p)
	}
	return p, nil
}

// newProductID builds a category-prefixed ID from the clock.
func (s *Service) newProductID(category string) string {
	prefix := "CP-"
	switch category {
	case CategoryFood:
		prefix = "FD-"
	case CategoryHomeCleaning:
		prefix = "HH-"
	}
	return fmt.Sprintf("%s%06d", prefix, s.now().UnixMilli()%1_000_000)
}

func applyScore(p *store.Product, score *scoring.IngredientScore) {
	v := score.OverallScore
	p.HazardScore = &v
	p.HazardLevel = string(score.Level)
	p.VocabularyVersion = score.VocabularyVersion
	p.DomainStatus = make(map[string]string, len(score.Domains))
	for d, st := range score.Domains {
		p.DomainStatus[string(d)] = string(st)
	}
	p.Concerns = make([]string, 0, len(score.Concerns))
	for _, c := range score.Concerns {
		p.Concerns = append(p.Concerns, c.Name)
	}
}

func (s *Service) emitCreated(p *store.Product) {
	hermes.Emit(s.hermes, s.logger, hermes.SubjectProductCreated(p.Barcode), hermes.ProductCreatedEvent{
		ProductID:   p.ProductID,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Brand:       p.Brand,
		SubCategory: p.SubCategory,
		Source:      p.Source,
	})
}

func (s *Service) emitScored(p *store.Product) {
	hermes.Emit(s.hermes, s.logger, hermes.SubjectProductScored(p.Barcode), hermes.ProductScoredEvent{
		ProductID:         p.ProductID,
		Barcode:           p.Barcode,
		Source:            p.Source,
		HazardScore:       *p.HazardScore,
		HazardLevel:       p.HazardLevel,
		DomainStatus:      p.DomainStatus,
		VocabularyVersion: p.VocabularyVersion,
	})
}
