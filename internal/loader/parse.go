package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Timestamp layouts accepted by ParseTime, tried in order. Fractional
// seconds are accepted by time.Parse even when the layout omits them.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// The parse helpers share one contract: an empty, blank or missing value is
// unset (nil) and never an error; anything else must parse cleanly.

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseString returns nil for a blank value and the raw value otherwise.
// Bytes that are not valid UTF-8 become U+FFFD.
func ParseString(s string) *string {
	if blank(s) {
		return nil
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	return &s
}

// ParseInt parses a base-10 integer. Integral float text such as "3.0" is
// accepted because spreadsheet exports write integers that way.
func ParseInt(s string) (*int64, error) {
	if blank(s) {
		return nil, nil
	}
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	n := int64(f)
	return &n, nil
}

// ParseFloat parses a finite float; NaN and infinities are rejected.
func ParseFloat(s string) (*float64, error) {
	if blank(s) {
		return nil, nil
	}
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &f, nil
}

// ParseDecimal parses a monetary amount without going through float64.
func ParseDecimal(s string) (decimal.NullDecimal, error) {
	if blank(s) {
		return decimal.NullDecimal{}, nil
	}
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseTime parses a timestamp in any of the accepted layouts. Values
// without a zone are taken as UTC.
func ParseTime(s string) (*time.Time, error) {
	if blank(s) {
		return nil, nil
	}
	s = strings.TrimSpace(s)

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", s)
}
