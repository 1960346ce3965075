// Package labs normalizes extracted lab report markers onto the canonical
// vocabulary and persists them as lab results.
package labs

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// PanelTox is the environmental toxin panel. Unparseable values on it mean
// "below detection" and are kept as zero.
const PanelTox = "TOX"

// UnknownReportID stands in for reports extracted without an ID.
const UnknownReportID = "UNKNOWN"

// ExtractedMarker is one marker as produced by the report extraction step.
// Values arrive as numbers or strings like "<0.5" or "12.3 H".
type ExtractedMarker struct {
	Name          string `json:"marker_name"`
	AltName       string `json:"name,omitempty"`
	Value         any    `json:"value"`
	Units         string `json:"units,omitempty"`
	RefLow        any    `json:"ref_low,omitempty"`
	RefHigh       any    `json:"ref_high,omitempty"`
	RefRange      string `json:"ref_range,omitempty"`
	Flag          string `json:"flag,omitempty"`
	Category      string `json:"category,omitempty"`
	Genotype      string `json:"genotype,omitempty"`
	PreviousValue any    `json:"previous_value,omitempty"`
	PreviousDate  string `json:"previous_date,omitempty"`
}

// RawName is the marker name as printed, falling back to the alternate key.
func (m ExtractedMarker) RawName() string {
	if n := strings.TrimSpace(m.Name); n != "" {
		return n
	}
	return strings.TrimSpace(m.AltName)
}

type Report struct {
	ReportID    string            `json:"report_id"`
	PatientID   string            `json:"patient_id,omitempty"`
	PatientName string            `json:"patient_name,omitempty"`
	SampleDate  string            `json:"sample_date,omitempty"`
	Panel       string            `json:"panel_type"`
	Markers     []ExtractedMarker `json:"markers"`
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

// ParseValue reads a numeric lab value. Strings may carry < or > qualifiers
// and trailing units or flags; the first number wins.
func ParseValue(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		return parseNumber(x)
	default:
		return 0, false
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(s))
	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var rangePattern = regexp.MustCompile(`([\d.]+)\s*[-–]\s*([\d.]+)`)

// ParseRefRange reads ">X" (low bound), "<X" (high bound) or "X-Y" (either
// hyphen or en dash). Anything else yields no bounds.
func ParseRefRange(s string) (low, high *float64) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, nil
	case strings.HasPrefix(s, ">"):
		if f, ok := parseNumber(s[1:]); ok {
			return &f, nil
		}
		return nil, nil
	case strings.HasPrefix(s, "<"):
		if f, ok := parseNumber(s[1:]); ok {
			return nil, &f
		}
		return nil, nil
	}
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	lo, errLo := strconv.ParseFloat(m[1], 64)
	hi, errHi := strconv.ParseFloat(m[2], 64)
	if errLo != nil || errHi != nil {
		return nil, nil
	}
	return &lo, &hi
}

// refBounds prefers explicit bounds and fills gaps from the printed range.
func refBounds(m ExtractedMarker) (low, high *float64) {
	if f, ok := ParseValue(m.RefLow); ok {
		low = &f
	}
	if f, ok := ParseValue(m.RefHigh); ok {
		high = &f
	}
	if low != nil && high != nil || m.RefRange == "" {
		return low, high
	}
	rl, rh := ParseRefRange(m.RefRange)
	if low == nil {
		low = rl
	}
	if high == nil {
		high = rh
	}
	return low, high
}
