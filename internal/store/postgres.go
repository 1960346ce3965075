package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Products ---

const productColumns = `product_id, barcode, name, brand, category, sub_category,
	ingredients, image_url, source, notes,
	hazard_score, hazard_level, domain_status, concerns, vocabulary_version,
	created_at, updated_at`

func (s *PostgresStore) GetProductByBarcodes(ctx context.Context, barcodes []string) (*Product, error) {
	if len(barcodes) == 0 {
		return nil, nil
	}
	p, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE barcode = ANY($1)
		ORDER BY updated_at DESC LIMIT 1`, barcodes))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *PostgresStore) GetProduct(ctx context.Context, productID string) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE product_id = $1`, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *PostgresStore) FindProductByNameBrand(ctx context.Context, name, brand string) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE lower(name) = lower($1) AND lower(brand) = lower($2)
		LIMIT 1`, name, brand))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p *Product) error {
	domainJSON, _ := json.Marshal(p.DomainStatus)
	return s.pool.QueryRow(ctx, `
		INSERT INTO products (product_id, barcode, name, brand, category, sub_category,
			ingredients, image_url, source, notes,
			hazard_score, hazard_level, domain_status, concerns, vocabulary_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`,
		p.ProductID, p.Barcode, p.Name, p.Brand, p.Category, p.SubCategory,
		p.Ingredients, p.ImageURL, p.Source, p.Notes,
		p.HazardScore, p.HazardLevel, domainJSON, p.Concerns, p.VocabularyVersion,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *PostgresStore) UpdateProductScore(ctx context.Context, p *Product) error {
	domainJSON, _ := json.Marshal(p.DomainStatus)
	tag, err := s.pool.Exec(ctx, `
		UPDATE products SET
			hazard_score = $2, hazard_level = $3, domain_status = $4, concerns = $5,
			vocabulary_version = $6,
			sub_category = COALESCE(NULLIF($7, ''), sub_category),
			updated_at = now()
		WHERE product_id = $1`,
		p.ProductID, p.HazardScore, p.HazardLevel, domainJSON, p.Concerns,
		p.VocabularyVersion, p.SubCategory,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{}
	var subCategory, ingredients, imageURL, notes, level, version sql.NullString
	var domainJSON []byte
	err := row.Scan(
		&p.ProductID, &p.Barcode, &p.Name, &p.Brand, &p.Category, &subCategory,
		&ingredients, &imageURL, &p.Source, &notes,
		&p.HazardScore, &level, &domainJSON, &p.Concerns, &version,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.SubCategory = subCategory.String
	p.Ingredients = ingredients.String
	p.ImageURL = imageURL.String
	p.Notes = notes.String
	p.HazardLevel = level.String
	p.VocabularyVersion = version.String
	if domainJSON != nil {
		_ = json.Unmarshal(domainJSON, &p.DomainStatus)
	}
	return p, nil
}

// --- Scan misses ---

const missColumns = `barcode, scan_count, first_scanned, last_scanned,
	COALESCE(category_hint, ''), status, COALESCE(notes, ''), resolved_at`

// RecordScanMiss inserts a pending miss or bumps the scan count of an
// existing one.
func (s *PostgresStore) RecordScanMiss(ctx context.Context, barcode, categoryHint string, at time.Time) (*ScanMiss, error) {
	m := &ScanMiss{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO scan_misses (barcode, scan_count, first_scanned, last_scanned, category_hint, status)
		VALUES ($1, 1, $2, $2, $3, 'pending')
		ON CONFLICT (barcode) DO UPDATE SET
			scan_count = scan_misses.scan_count + 1,
			last_scanned = EXCLUDED.last_scanned,
			category_hint = COALESCE(NULLIF(scan_misses.category_hint, ''), EXCLUDED.category_hint)
		RETURNING `+missColumns,
		barcode, at, categoryHint,
	).Scan(&m.Barcode, &m.ScanCount, &m.FirstScanned, &m.LastScanned,
		&m.CategoryHint, &m.Status, &m.Notes, &m.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *PostgresStore) ListScanMisses(ctx context.Context, filter MissFilter) ([]*ScanMiss, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+missColumns+`
		FROM scan_misses
		WHERE status = $1 AND scan_count >= $2
		ORDER BY scan_count DESC, last_scanned DESC
		LIMIT $3`,
		filter.Status, filter.MinScans, filter.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var misses []*ScanMiss
	for rows.Next() {
		m := &ScanMiss{}
		if err := rows.Scan(&m.Barcode, &m.ScanCount, &m.FirstScanned, &m.LastScanned,
			&m.CategoryHint, &m.Status, &m.Notes, &m.ResolvedAt); err != nil {
			return nil, err
		}
		misses = append(misses, m)
	}
	return misses, rows.Err()
}

func (s *PostgresStore) UpdateScanMissStatus(ctx context.Context, barcode string, status MissStatus, notes string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE scan_misses SET
			status = $2,
			notes = $3,
			resolved_at = CASE WHEN $2 = 'pending' THEN NULL ELSE now() END
		WHERE barcode = $1`,
		barcode, status, notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Curation ---

// UpsertUnmappedMarkers adds counts to existing rows in one round trip.
func (s *PostgresStore) UpsertUnmappedMarkers(ctx context.Context, entries []UnmappedMarker) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO unmapped_markers (raw_name, code, count, first_seen, last_seen)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (raw_name) DO UPDATE SET
				code = EXCLUDED.code,
				count = unmapped_markers.count + EXCLUDED.count,
				last_seen = GREATEST(unmapped_markers.last_seen, EXCLUDED.last_seen)`,
			e.RawName, e.Code, e.Count, e.FirstSeen, e.LastSeen,
		)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert unmapped marker: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) ListUnmappedMarkers(ctx context.Context, limit int) ([]*UnmappedMarker, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT raw_name, code, count, first_seen, last_seen
		FROM unmapped_markers
		ORDER BY count DESC, last_seen DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*UnmappedMarker
	for rows.Next() {
		u := &UnmappedMarker{}
		if err := rows.Scan(&u.RawName, &u.Code, &u.Count, &u.FirstSeen, &u.LastSeen); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- Labs ---

const labColumns = `id, result_id, report_id, patient_id, panel, marker_id, marker_name_original,
	marker_type, mapped, value, genotype, units, ref_low, ref_high, flag, category,
	previous_value, previous_date, created_at`

// SaveLabResults writes a report's results in one transaction. Re-processing
// a report overwrites results with the same result ID.
func (s *PostgresStore) SaveLabResults(ctx context.Context, results []*LabResult) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, r := range results {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO lab_results (id, result_id, report_id, patient_id, panel, marker_id,
				marker_name_original, marker_type, mapped, value, genotype, units,
				ref_low, ref_high, flag, category, previous_value, previous_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			ON CONFLICT (result_id) DO UPDATE SET
				marker_id = EXCLUDED.marker_id,
				marker_name_original = EXCLUDED.marker_name_original,
				marker_type = EXCLUDED.marker_type,
				mapped = EXCLUDED.mapped,
				value = EXCLUDED.value,
				genotype = EXCLUDED.genotype,
				units = EXCLUDED.units,
				ref_low = EXCLUDED.ref_low,
				ref_high = EXCLUDED.ref_high,
				flag = EXCLUDED.flag,
				category = EXCLUDED.category,
				previous_value = EXCLUDED.previous_value,
				previous_date = EXCLUDED.previous_date
			RETURNING id, created_at`,
			r.ID, r.ResultID, r.ReportID, r.PatientID, r.Panel, r.MarkerID,
			r.MarkerNameOriginal, r.MarkerType, r.Mapped, r.Value, r.Genotype, r.Units,
			r.RefLow, r.RefHigh, r.Flag, r.Category, r.PreviousValue, r.PreviousDate,
		).Scan(&r.ID, &r.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert lab result %s: %w", r.ResultID, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) ListLabResults(ctx context.Context, reportID string) ([]*LabResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+labColumns+`
		FROM lab_results WHERE report_id = $1
		ORDER BY result_id`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*LabResult
	for rows.Next() {
		r := &LabResult{}
		var patientID, genotype, units, flag, category, prevDate sql.NullString
		if err := rows.Scan(
			&r.ID, &r.ResultID, &r.ReportID, &patientID, &r.Panel, &r.MarkerID, &r.MarkerNameOriginal,
			&r.MarkerType, &r.Mapped, &r.Value, &genotype, &units, &r.RefLow, &r.RefHigh, &flag, &category,
			&r.PreviousValue, &prevDate, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		r.PatientID = patientID.String
		r.Genotype = genotype.String
		r.Units = units.String
		r.Flag = flag.String
		r.Category = category.String
		r.PreviousDate = prevDate.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// --- Substitutions ---

const substitutionColumns = `substitution_id, COALESCE(original_product_id, ''),
	COALESCE(original_sub_category, ''), alternative_name, COALESCE(alternative_brand, ''),
	alternative_hazard_score, hazard_improvement, improvement_percentage,
	COALESCE(domain_focus, ''), COALESCE(reason_for_swap, ''), COALESCE(swap_priority, ''),
	is_universal`

func (s *PostgresStore) ListSubstitutionsForProduct(ctx context.Context, productID string) ([]*Substitution, error) {
	return s.querySubstitutions(ctx, `
		SELECT `+substitutionColumns+`
		FROM product_substitutions
		WHERE original_product_id = $1
		ORDER BY improvement_percentage DESC
		LIMIT 5`, productID)
}

func (s *PostgresStore) ListUniversalSubstitutions(ctx context.Context, subCategory string) ([]*Substitution, error) {
	return s.querySubstitutions(ctx, `
		SELECT `+substitutionColumns+`
		FROM product_substitutions
		WHERE is_universal AND original_sub_category = $1
		ORDER BY improvement_percentage DESC
		LIMIT 3`, subCategory)
}

func (s *PostgresStore) querySubstitutions(ctx context.Context, query string, arg string) ([]*Substitution, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Substitution
	for rows.Next() {
		sub := &Substitution{}
		if err := rows.Scan(
			&sub.SubstitutionID, &sub.OriginalProductID, &sub.OriginalSubCategory,
			&sub.AlternativeName, &sub.AlternativeBrand, &sub.AlternativeHazardScore,
			&sub.HazardImprovement, &sub.ImprovementPercentage,
			&sub.DomainFocus, &sub.ReasonForSwap, &sub.SwapPriority, &sub.IsUniversal,
		); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// --- Vocabulary ---

// LoadMarkers reads the curated marker table in declaration order, making
// the store usable as a vocab.Source. The version is derived from the most
// recent edit.
func (s *PostgresStore) LoadMarkers(ctx context.Context) (vocab.MarkerSet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT marker_id, name, COALESCE(panel, ''), toxicity_weight, domains, aliases, updated_at
		FROM marker_definitions
		WHERE active
		ORDER BY sort_order, marker_id`)
	if err != nil {
		return vocab.MarkerSet{}, fmt.Errorf("query marker definitions: %w", err)
	}
	defer rows.Close()

	var set vocab.MarkerSet
	var latest time.Time
	for rows.Next() {
		var d vocab.MarkerDefinition
		var domainJSON []byte
		var updatedAt time.Time
		if err := rows.Scan(&d.ID, &d.Name, &d.Panel, &d.ToxicityWeight, &domainJSON, &d.Aliases, &updatedAt); err != nil {
			return vocab.MarkerSet{}, err
		}
		if domainJSON != nil {
			if err := json.Unmarshal(domainJSON, &d.Domains); err != nil {
				return vocab.MarkerSet{}, fmt.Errorf("marker %s domains: %w", d.ID, err)
			}
		}
		if updatedAt.After(latest) {
			latest = updatedAt
		}
		set.Markers = append(set.Markers, d)
	}
	if err := rows.Err(); err != nil {
		return vocab.MarkerSet{}, err
	}
	set.Version = "pg-" + latest.UTC().Format("20060102T150405Z")
	return set, nil
}
