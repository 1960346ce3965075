package labs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Toxscan/internal/hermes"
	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

// ErrEmptyReport is returned when a report carries no markers at all.
var ErrEmptyReport = errors.New("report has no markers")

// ResultStore is the slice of the store the processor writes to.
type ResultStore interface {
	SaveLabResults(ctx context.Context, results []*store.LabResult) error
}

// ProcessedReport is a normalized report ready to display or persist.
type ProcessedReport struct {
	ReportID    string             `json:"report_id"`
	PatientID   string             `json:"patient_id,omitempty"`
	PatientName string             `json:"patient_name,omitempty"`
	SampleDate  string             `json:"sample_date,omitempty"`
	Panel       string             `json:"panel_type"`
	Results     []*store.LabResult `json:"results"`

	BiomarkerCount int `json:"biomarker_count"`
	GenotypeCount  int `json:"snp_count"`
	UnmappedCount  int `json:"unmapped_count"`
	DuplicateCount int `json:"duplicate_count"`
	SkippedCount   int `json:"skipped_count"`

	// Hazard over known markers detected above zero.
	Hazard            scoring.HazardScoreResult `json:"hazard"`
	VocabularyVersion string                    `json:"vocabulary_version"`
}

type Processor struct {
	engine  *scoring.Engine
	store   ResultStore
	hermes  hermes.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewProcessor wires a processor. store and hermes may be nil, in which
// case Ingest only normalizes.
func NewProcessor(engine *scoring.Engine, s ResultStore, h hermes.Client, m *metrics.Metrics, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{engine: engine, store: s, hermes: h, metrics: m, logger: logger, now: time.Now}
}

// Process normalizes every marker against one vocabulary snapshot. The
// first marker to resolve to a given ID wins; later ones count as
// duplicates.
func (p *Processor) Process(ctx context.Context, report Report) (*ProcessedReport, error) {
	if len(report.Markers) == 0 {
		return nil, ErrEmptyReport
	}
	n, err := p.engine.Normalizer(ctx)
	if err != nil {
		return nil, err
	}

	reportID := strings.TrimSpace(report.ReportID)
	if reportID == "" {
		reportID = UnknownReportID
	}
	panel := strings.ToUpper(strings.TrimSpace(report.Panel))
	if panel == "" {
		panel = PanelTox
	}

	out := &ProcessedReport{
		ReportID:          reportID,
		PatientID:         report.PatientID,
		PatientName:       report.PatientName,
		SampleDate:        report.SampleDate,
		Panel:             panel,
		Results:           []*store.LabResult{},
		VocabularyVersion: n.Vocabulary().Version(),
	}

	type entry struct {
		marker ExtractedMarker
		match  scoring.ResolvedMatch
	}
	var entries []entry
	for _, m := range report.Markers {
		raw := m.RawName()
		if raw == "" {
			out.SkippedCount++
			continue
		}
		r := n.Normalize(raw)
		p.metrics.IncResolution(string(r.Method))
		entries = append(entries, entry{marker: m, match: scoring.MatchFromResolution(r)})
	}
	unique := scoring.DedupBy(entries, func(e entry) string { return scoring.MatchKey(e.match) })
	out.DuplicateCount = len(entries) - len(unique)

	createdAt := p.now().UTC()
	var detected []scoring.ResolvedMatch
	for _, e := range unique {
		res, ok := p.result(e.marker, e.match, panel)
		if !ok {
			out.SkippedCount++
			continue
		}
		res.ID = uuid.New()
		res.ResultID = fmt.Sprintf("%s-%s-%03d", reportID, panel, len(out.Results)+1)
		res.ReportID = reportID
		res.PatientID = report.PatientID
		res.CreatedAt = createdAt
		out.Results = append(out.Results, res)

		if res.MarkerType == store.MarkerTypeGenotype {
			out.GenotypeCount++
		} else {
			out.BiomarkerCount++
		}
		if !res.Mapped {
			out.UnmappedCount++
		}
		if e.match.Known && res.Value != nil && *res.Value > 0 {
			detected = append(detected, e.match)
		}
	}

	out.Hazard = p.engine.ScoreResolved(detected, len(detected))
	return out, nil
}

// result converts one marker. Markers without a usable value are dropped,
// except on the toxin panel where they read as not detected.
func (p *Processor) result(m ExtractedMarker, match scoring.ResolvedMatch, panel string) (*store.LabResult, bool) {
	res := &store.LabResult{
		Panel:              panel,
		MarkerID:           match.MarkerID,
		MarkerNameOriginal: m.RawName(),
		MarkerType:         store.MarkerTypeBiomarker,
		Mapped:             match.Known,
		Units:              m.Units,
		Flag:               strings.ToUpper(strings.TrimSpace(m.Flag)),
		Category:           m.Category,
		PreviousDate:       m.PreviousDate,
	}
	if g := strings.TrimSpace(m.Genotype); g != "" {
		res.MarkerType = store.MarkerTypeGenotype
		res.Genotype = g
		return res, true
	}

	v, ok := ParseValue(m.Value)
	if !ok {
		if panel != PanelTox {
			return nil, false
		}
		v = 0
	}
	res.Value = &v
	res.RefLow, res.RefHigh = refBounds(m)
	if pv, ok := ParseValue(m.PreviousValue); ok {
		res.PreviousValue = &pv
	}
	return res, true
}

// Ingest processes a report, persists the results and announces them.
func (p *Processor) Ingest(ctx context.Context, report Report) (*ProcessedReport, error) {
	out, err := p.Process(ctx, report)
	if err != nil {
		return nil, err
	}
	if p.store != nil && len(out.Results) > 0 {
		if err := p.store.SaveLabResults(ctx, out.Results); err != nil {
			return nil, fmt.Errorf("save lab results: %w", err)
		}
	}
	p.metrics.IncLabReport(out.Panel)

	hermes.Emit(p.hermes, p.logger, hermes.SubjectLabsProcessed(out.ReportID), hermes.LabsProcessedEvent{
		ReportID:       out.ReportID,
		PatientID:      out.PatientID,
		Panel:          out.Panel,
		ResultCount:    len(out.Results),
		UnmappedCount:  out.UnmappedCount,
		GenotypeCount:  out.GenotypeCount,
		DuplicateCount: out.DuplicateCount,
		HazardScore:    out.Hazard.OverallScore,
	})

	p.logger.Info("lab report processed",
		"report_id", out.ReportID,
		"panel", out.Panel,
		"results", len(out.Results),
		"unmapped", out.UnmappedCount,
		"duplicates", out.DuplicateCount,
		"skipped", out.SkippedCount,
	)
	return out, nil
}
