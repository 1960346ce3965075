package hermes

import "time"

type ProductScoredEvent struct {
	ProductID         string            `json:"product_id"`
	Barcode           string            `json:"barcode"`
	Source            string            `json:"source"`
	HazardScore       int               `json:"hazard_score"`
	HazardLevel       string            `json:"hazard_level"`
	DomainStatus      map[string]string `json:"domain_status,omitempty"`
	VocabularyVersion string            `json:"vocabulary_version"`
}

type ProductCreatedEvent struct {
	ProductID   string `json:"product_id"`
	Barcode     string `json:"barcode,omitempty"`
	Name        string `json:"product_name"`
	Brand       string `json:"brand"`
	SubCategory string `json:"sub_category"`
	Source      string `json:"source"`
}

type ScanMissedEvent struct {
	Barcode      string    `json:"barcode"`
	ScanCount    int       `json:"scan_count"`
	CategoryHint string    `json:"category_hint,omitempty"`
	LastScanned  time.Time `json:"last_scanned"`
}

type MissUpdatedEvent struct {
	Barcode string `json:"barcode"`
	Status  string `json:"status"`
	Notes   string `json:"notes,omitempty"`
}

type UnmappedName struct {
	RawName string `json:"raw_name"`
	Code    string `json:"code"`
	Count   int    `json:"count"`
}

type MarkersUnmappedEvent struct {
	Names     []UnmappedName `json:"names"`
	Dropped   int            `json:"dropped,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type LabsProcessedEvent struct {
	ReportID       string `json:"report_id"`
	PatientID      string `json:"patient_id,omitempty"`
	Panel          string `json:"panel"`
	ResultCount    int    `json:"result_count"`
	UnmappedCount  int    `json:"unmapped_count"`
	GenotypeCount  int    `json:"genotype_count"`
	DuplicateCount int    `json:"duplicate_count"`
	HazardScore    int    `json:"hazard_score"`
}

type VocabularyReloadedEvent struct {
	Version   string    `json:"version"`
	Markers   int       `json:"markers"`
	Aliases   int       `json:"aliases"`
	Conflicts int       `json:"conflicts"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
