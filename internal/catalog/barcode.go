package catalog

import (
	"fmt"
	"strings"
)

const (
	minBarcodeLen = 8
	maxBarcodeLen = 14
)

// NormalizeBarcode strips everything but digits and checks the length of
// what remains (UPC-E through GTIN-14).
func NormalizeBarcode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	bc := b.String()
	if len(bc) < minBarcodeLen || len(bc) > maxBarcodeLen {
		return "", fmt.Errorf("%w: %q must be %d-%d digits", ErrInvalidBarcode, raw, minBarcodeLen, maxBarcodeLen)
	}
	return bc, nil
}

// BarcodeVariants lists the forms a barcode may be stored under: as given,
// then zero-padded to UPC-A, EAN-13 and GTIN-14.
func BarcodeVariants(bc string) []string {
	out := []string{bc}
	for _, n := range []int{12, 13, 14} {
		if len(bc) < n {
			out = append(out, strings.Repeat("0", n-len(bc))+bc)
		}
	}
	return out
}
