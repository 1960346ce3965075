package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Toxscan/internal/hermes"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

const (
	defaultMissLimit = 100
	maxMissLimit     = 500
)

// missColumns are the columns curators fill in when researching misses.
var missColumns = []string{
	"barcode", "scan_count", "first_scanned", "last_scanned", "category_hint",
	"product_name", "brand", "category", "sub_category", "ingredients", "notes",
}

// ListMisses returns scan misses, most scanned first. Status defaults to
// pending, the minimum scan count to 1 and the limit to 100 (at most 500).
func (s *Service) ListMisses(ctx context.Context, filter store.MissFilter) ([]*store.ScanMiss, error) {
	if filter.Status == "" {
		filter.Status = store.MissPending
	}
	if !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
	}
	if filter.MinScans < 1 {
		filter.MinScans = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultMissLimit
	}
	if filter.Limit > maxMissLimit {
		filter.Limit = maxMissLimit
	}
	misses, err := s.store.ListScanMisses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list scan misses: %w", err)
	}
	if misses == nil {
		misses = []*store.ScanMiss{}
	}
	return misses, nil
}

// WriteMissesCSV writes misses as a research sheet with blank columns for
// the product details.
func WriteMissesCSV(w io.Writer, misses []*store.ScanMiss) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(missColumns); err != nil {
		return err
	}
	for _, m := range misses {
		hint := m.CategoryHint
		if hint == "" {
			hint = "Unknown"
		}
		row := []string{
			m.Barcode,
			strconv.Itoa(m.ScanCount),
			formatDate(m.FirstScanned),
			formatDate(m.LastScanned),
			hint,
			"", "", "", "", "", "",
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// UpdateMissStatus moves a miss through curation.
func (s *Service) UpdateMissStatus(ctx context.Context, rawBarcode string, status store.MissStatus, notes string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	bc, err := NormalizeBarcode(rawBarcode)
	if err != nil {
		return err
	}
	notes = strings.TrimSpace(notes)
	if err := s.store.UpdateScanMissStatus(ctx, bc, status, notes); err != nil {
		return err
	}
	hermes.Emit(s.hermes, s.logger, hermes.SubjectMissUpdated(bc), hermes.MissUpdatedEvent{
		Barcode: bc,
		Status:  string(status),
		Notes:   notes,
	})
	return nil
}
