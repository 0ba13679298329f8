// README: Tolerant numeric parsing for spreadsheet cells and form inputs.
package ratesheet

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ParseNumber converts a loosely-typed cell into a finite float.
// Blank, malformed and non-finite values yield def. A decimal comma is accepted.
func ParseNumber(raw any, def float64) float64 {
	if raw == nil {
		return def
	}

	var n float64
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return def
		}
		s = strings.Replace(s, ",", ".", 1)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		n = f
	case []byte:
		return ParseNumber(string(v), def)
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return def
		}
		n = f
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return def
	}
	return n
}

// parseOptional is ParseNumber for prefill cells: blank or malformed gives nil.
func parseOptional(raw any) *float64 {
	if cellString(raw) == "" {
		return nil
	}
	n := ParseNumber(raw, math.NaN())
	if math.IsNaN(n) {
		return nil
	}
	return &n
}

// cellString stringifies a cell and trims it.
func cellString(raw any) string {
	if raw == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(raw))
}
