package clip

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Classify maps raw text to a content type. Rules are evaluated in order and
// the first match wins:
//
//  1. starts with http:// or https://          → Url
//  2. contains '@' and '.' and no whitespace    → Email
//  3. parses fully as a floating-point number   → Number
//  4. wrapped in {} or []                       → Json (shape only)
//  5. more than one line and contains a comma   → Csv
//  6. anything else                             → Text
//
// All rules look at the whitespace-trimmed content. Callers filter empty
// content before classifying.
func Classify(content string) ContentType {
	trimmed := strings.TrimSpace(content)

	switch {
	case strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://"):
		return TypeURL
	case looksLikeEmail(trimmed):
		return TypeEmail
	case isNumber(trimmed):
		return TypeNumber
	case isBracketed(trimmed):
		return TypeJSON
	case strings.Contains(trimmed, "\n") && strings.Contains(trimmed, ","):
		return TypeCSV
	}
	return TypeText
}

func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@") &&
		strings.Contains(s, ".") &&
		!strings.ContainsFunc(s, unicode.IsSpace)
}

func isNumber(s string) bool {
	_, err := ParseNumber(s)
	return err == nil
}

func isBracketed(s string) bool {
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

// ParseNumber parses decimal or scientific notation, with an optional sign,
// plus the inf/nan spellings. Hexadecimal floats are rejected. A magnitude
// outside float64 range still parses (to ±Inf or 0).
func ParseNumber(s string) (float64, error) {
	body := strings.TrimLeft(s, "+-")
	if len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return 0, fmt.Errorf("hexadecimal notation not accepted: %q", s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, err
	}
	return v, nil
}
