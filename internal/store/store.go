package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

// ErrNotFound is returned by updates that matched no row. Lookups return
// nil, nil instead.
var ErrNotFound = errors.New("not found")

// Product sources.
const (
	SourceOpenFoodFacts   = "open_food_facts"
	SourceOpenBeautyFacts = "open_beauty_facts"
	SourceManual          = "manual"
)

type Product struct {
	ProductID   string `json:"product_id"`
	Barcode     string `json:"upc_barcode"`
	Name        string `json:"product_name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category,omitempty"`
	Ingredients string `json:"ingredients_raw,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Source      string `json:"source"`
	Notes       string `json:"notes,omitempty"`

	// Scoring
	HazardScore       *int              `json:"hazard_score,omitempty"`
	HazardLevel       string            `json:"hazard_level,omitempty"`
	DomainStatus      map[string]string `json:"domain_status,omitempty"`
	Concerns          []string          `json:"concerns,omitempty"`
	VocabularyVersion string            `json:"vocabulary_version,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scored reports whether the product carries a persisted hazard score.
func (p *Product) Scored() bool { return p.HazardScore != nil }

type MissStatus string

const (
	MissPending MissStatus = "pending"
	MissAdded   MissStatus = "added"
	MissInvalid MissStatus = "invalid"
	MissIgnored MissStatus = "ignored"
)

func (s MissStatus) Valid() bool {
	switch s {
	case MissPending, MissAdded, MissInvalid, MissIgnored:
		return true
	}
	return false
}

// ScanMiss is a barcode nobody could resolve, kept for curation.
type ScanMiss struct {
	Barcode      string     `json:"barcode"`
	ScanCount    int        `json:"scan_count"`
	FirstScanned time.Time  `json:"first_scanned"`
	LastScanned  time.Time  `json:"last_scanned"`
	CategoryHint string     `json:"category_hint,omitempty"`
	Status       MissStatus `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

type MissFilter struct {
	Status   MissStatus
	MinScans int
	Limit    int
}

// UnmappedMarker aggregates a raw name the normalizer could not resolve.
type UnmappedMarker struct {
	RawName   string    `json:"raw_name"`
	Code      string    `json:"code"`
	Count     int       `json:"count"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// Lab result marker types.
const (
	MarkerTypeBiomarker = "biomarker"
	MarkerTypeGenotype  = "genotype"
)

type LabResult struct {
	ID                 uuid.UUID `json:"id"`
	ResultID           string    `json:"result_id"`
	ReportID           string    `json:"report_id"`
	PatientID          string    `json:"patient_id,omitempty"`
	Panel              string    `json:"panel"`
	MarkerID           string    `json:"marker_id"`
	MarkerNameOriginal string    `json:"marker_name_original"`
	MarkerType         string    `json:"marker_type"`
	Mapped             bool      `json:"mapped"`

	Value    *float64 `json:"value,omitempty"`
	Genotype string   `json:"genotype,omitempty"`
	Units    string   `json:"units,omitempty"`
	RefLow   *float64 `json:"ref_low,omitempty"`
	RefHigh  *float64 `json:"ref_high,omitempty"`
	Flag     string   `json:"flag,omitempty"`
	Category string   `json:"category,omitempty"`

	PreviousValue *float64 `json:"previous_value,omitempty"`
	PreviousDate  string   `json:"previous_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Substitution suggests a safer alternative for a product or, when
// universal, for every product in a sub-category.
type Substitution struct {
	SubstitutionID         string  `json:"substitution_id"`
	OriginalProductID      string  `json:"original_product_id,omitempty"`
	OriginalSubCategory    string  `json:"original_sub_category,omitempty"`
	AlternativeName        string  `json:"alternative_name"`
	AlternativeBrand       string  `json:"alternative_brand,omitempty"`
	AlternativeHazardScore *int    `json:"alternative_hazard_score,omitempty"`
	HazardImprovement      float64 `json:"hazard_improvement"`
	ImprovementPercentage  float64 `json:"improvement_percentage"`
	DomainFocus            string  `json:"domain_focus,omitempty"`
	ReasonForSwap          string  `json:"reason_for_swap,omitempty"`
	SwapPriority           string  `json:"swap_priority,omitempty"`
	IsUniversal            bool    `json:"is_universal"`
}

// Store is the persistence interface for Toxscan.
type Store interface {
	// Products
	GetProductByBarcodes(ctx context.Context, barcodes []string) (*Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	FindProductByNameBrand(ctx context.Context, name, brand string) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProductScore(ctx context.Context, p *Product) error

	// Scan misses
	RecordScanMiss(ctx context.Context, barcode, categoryHint string, at time.Time) (*ScanMiss, error)
	ListScanMisses(ctx context.Context, filter MissFilter) ([]*ScanMiss, error)
	UpdateScanMissStatus(ctx context.Context, barcode string, status MissStatus, notes string) error

	// Curation
	UpsertUnmappedMarkers(ctx context.Context, entries []UnmappedMarker) error
	ListUnmappedMarkers(ctx context.Context, limit int) ([]*UnmappedMarker, error)

	// Labs
	SaveLabResults(ctx context.Context, results []*LabResult) error
	ListLabResults(ctx context.Context, reportID string) ([]*LabResult, error)

	// Substitutions
	ListSubstitutionsForProduct(ctx context.Context, productID string) ([]*Substitution, error)
	ListUniversalSubstitutions(ctx context.Context, subCategory string) ([]*Substitution, error)

	// Vocabulary
	LoadMarkers(ctx context.Context) (vocab.MarkerSet, error)

	Close() error
}
