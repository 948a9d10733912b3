package microjson

import (
	"errors"
	"strconv"
	"time"
)

// Fixed-size bounds for the attribute name buffer and the value token
// buffer.
const (
	maxAttrName   = 31
	maxValueToken = 512
)

// ErrBadNumber is returned by the numeric helpers below on an empty or
// malformed lexeme; callers translate it to StatusBadNumber, except for a
// time lexeme, where it becomes StatusConversionError.
var ErrBadNumber = errors.New("microjson: bad number")

// parseInteger does base-prefix-aware decimal/hex/octal parsing, strtol
// conventions.
func parseInteger(tok []byte) (int64, error) {
	if len(tok) == 0 {
		return 0, ErrBadNumber
	}
	v, err := strconv.ParseInt(string(tok), 0, 64)
	if err != nil {
		return 0, ErrBadNumber
	}
	return v, nil
}

// parseUnsigned is the unsigned counterpart of parseInteger.
func parseUnsigned(tok []byte) (uint64, error) {
	if len(tok) == 0 {
		return 0, ErrBadNumber
	}
	v, err := strconv.ParseUint(string(tok), 0, 64)
	if err != nil {
		return 0, ErrBadNumber
	}
	return v, nil
}

// parseReal converts a decimal or exponent-form lexeme to a float64.
// strconv.ParseFloat is already locale-independent (it never consults the
// process locale the way C's strtod can), so it satisfies that contract
// directly. On range overflow, following strtod convention, the
// out-of-range value is clamped to +/-Inf and the call still reports
// success rather than failing the whole attribute.
func parseReal(tok []byte) (float64, error) {
	if len(tok) == 0 {
		return 0, ErrBadNumber
	}
	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, ErrBadNumber
	}
	return v, nil
}

// isoLayouts are tried in order against an ISO-8601 "time" lexeme: with
// and without a fractional-seconds suffix. No timezone handling is
// attempted; the input is treated as UTC.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// parseISO8601 converts a "YYYY-MM-DDTHH:MM:SS[.fraction]" lexeme to
// seconds since the Unix epoch, treating the input as UTC.
func parseISO8601(tok []byte) (float64, error) {
	s := string(tok)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			whole := t.Unix()
			frac := float64(t.Nanosecond()) / 1e9
			return float64(whole) + frac, nil
		}
	}
	return 0, ErrBadNumber
}

// lexemeClass classifies a scanned, unquoted value token for type
// reconciliation: is it a bool literal, and if numeric, does it carry a
// decimal point.
type lexemeClass struct {
	isBool    bool
	isNumeric bool
	hasDot    bool
}

func classifyLexeme(tok []byte) lexemeClass {
	if string(tok) == "true" || string(tok) == "false" {
		return lexemeClass{isBool: true}
	}
	if len(tok) == 0 {
		return lexemeClass{}
	}
	c := tok[0]
	if c == '-' || c == '+' || (c >= '0' && c <= '9') {
		hasDot := false
		for _, b := range tok {
			if b == '.' {
				hasDot = true
				break
			}
		}
		return lexemeClass{isNumeric: true, hasDot: hasDot}
	}
	return lexemeClass{}
}
