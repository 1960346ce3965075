package hermes

import (
	"strings"
	"time"
)

const (
	SubjectMarkerUnmapped     = "toxscan.marker.unmapped"
	SubjectVocabularyReloaded = "toxscan.vocabulary.reloaded"
	// SubjectVocabularyRefresh asks every instance to reload its vocabulary.
	SubjectVocabularyRefresh = "toxscan.vocabulary.refresh"

	StreamName   = "TOXSCAN_EVENTS"
	StreamMaxAge = 30 * 24 * time.Hour
)

// StreamSubjects are persisted in the JetStream stream. Refresh requests
// are fire-and-forget and stay out of it.
var StreamSubjects = []string{
	"toxscan.product.>",
	"toxscan.scan.>",
	"toxscan.marker.>",
	"toxscan.labs.>",
	"toxscan.miss.>",
	SubjectVocabularyReloaded,
}

func SubjectProductScored(barcode string) string  { return "toxscan.product." + token(barcode) + ".scored" }
func SubjectProductCreated(barcode string) string { return "toxscan.product." + token(barcode) + ".created" }
func SubjectScanMissed(barcode string) string     { return "toxscan.scan." + token(barcode) + ".missed" }
func SubjectMissUpdated(barcode string) string    { return "toxscan.miss." + token(barcode) + ".updated" }
func SubjectLabsProcessed(reportID string) string { return "toxscan.labs." + token(reportID) + ".processed" }

// token makes s safe as a single NATS subject token.
func token(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
