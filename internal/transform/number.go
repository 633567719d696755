package transform

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hpungsan/clipmesh/internal/clip"
)

// NumberFormatter renders Number items with thousands separators.
//
// Integral values print without decimals ("1234567" → "1,234,567").
// Other values are rounded to two decimals ("1234.5" → "1,234.50",
// "-1234.5" → "-1,234.50"); the sign appears once, in front.
type NumberFormatter struct{}

// Eligible implements Transformer.
func (NumberFormatter) Eligible(ct clip.ContentType) bool {
	return ct == clip.TypeNumber
}

// Kind implements Transformer.
func (NumberFormatter) Kind() clip.TransformType {
	return clip.NumberFormat()
}

// Transform implements Transformer.
func (NumberFormatter) Transform(content string) (string, error) {
	v, err := clip.ParseNumber(strings.TrimSpace(content))
	if err != nil {
		return "", fmt.Errorf("parse number: %w", err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "", fmt.Errorf("cannot format non-finite value %v", v)
	}

	abs := math.Abs(v)

	if abs == math.Trunc(abs) {
		digits := strconv.FormatFloat(abs, 'f', 0, 64)
		grouped, err := groupDigits(digits)
		if err != nil {
			return "", err
		}
		return signOf(v, digits) + grouped, nil
	}

	rounded := strconv.FormatFloat(abs, 'f', 2, 64)
	intDigits, fracDigits, _ := strings.Cut(rounded, ".")
	grouped, err := groupDigits(intDigits)
	if err != nil {
		return "", err
	}
	return signOf(v, intDigits+fracDigits) + grouped + "." + fracDigits, nil
}

// signOf returns "-" for negative v unless its rounded digits are all zero.
func signOf(v float64, digits string) string {
	if v < 0 && strings.Trim(digits, "0") != "" {
		return "-"
	}
	return ""
}

// groupDigits inserts commas every three digits of an unsigned decimal string.
func groupDigits(digits string) (string, error) {
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return "", fmt.Errorf("invalid integer digits %q", digits)
	}
	return humanize.BigComma(n), nil
}
