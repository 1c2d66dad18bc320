package dataframe

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind classifies the semantic type of a column. It is inferred once
// during load; a column holding mixed types degrades to KindText.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBool
	KindTime
)

// String returns a human-readable kind name for status lines.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "timestamp"
	default:
		return "text"
	}
}

// timeLayout is the display and parse format for timestamp cells.
const timeLayout = "2006-01-02 15:04:05"

// dateLayouts are tried, in order, when deciding whether a text column
// is date-like. Only unambiguous layouts are listed.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Value is a single table cell. The zero Value is null. Integer and
// floating-point cells share KindNumber but keep separate storage, so
// an integer renders exactly as its source text and an int64 beyond
// 2^53 survives without rounding.
type Value struct {
	kind  Kind
	set   bool
	isInt bool
	str   string
	num   float64
	i     int64
	b     bool
	t     time.Time
}

// Null returns the null cell value.
func Null() Value { return Value{} }

// String returns a text cell.
func String(s string) Value { return Value{kind: KindText, set: true, str: s} }

// Number returns a floating-point numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, set: true, num: f} }

// Int returns an integer numeric cell.
func Int(i int64) Value { return Value{kind: KindNumber, set: true, isInt: true, i: i} }

// Bool returns a boolean cell.
func Bool(b bool) Value { return Value{kind: KindBool, set: true, b: b} }

// Time returns a timestamp cell.
func Time(t time.Time) Value { return Value{kind: KindTime, set: true, t: t} }

// IsNull reports whether the cell holds no value.
func (v Value) IsNull() bool { return !v.set }

// Kind returns the cell's own kind. Null cells report KindText.
func (v Value) Kind() Kind { return v.kind }

// Text renders the cell the way it is displayed, searched, and copied.
// Null renders as the empty string.
func (v Value) Text() string {
	if !v.set {
		return ""
	}
	switch v.kind {
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.i, 10)
		}
		return formatFloat(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(timeLayout)
	default:
		return v.str
	}
}

// formatFloat renders a float cell in plain decimal notation where it
// stays readable, so a value like 1000000.5 never turns into 1e+06 in
// the grid, search, or export. Extreme magnitudes fall back to 'g'.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if f != 0 && (abs >= 1e15 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float returns the cell as a float64 for analysis input. Timestamps
// convert to Unix seconds, booleans to 0/1. The second return is false
// for nulls and non-convertible text.
func (v Value) Float() (float64, bool) {
	if !v.set {
		return 0, false
	}
	switch v.kind {
	case KindNumber:
		if v.isInt {
			return float64(v.i), true
		}
		return v.num, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindTime:
		return float64(v.t.Unix()), true
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		return f, err == nil
	}
}

// TimeValue returns the underlying timestamp for KindTime cells.
func (v Value) TimeValue() (time.Time, bool) {
	if !v.set || v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// compareValues orders two cells within a column of the given kind.
// Null sorts after every value, so ascending puts nulls last and the
// descending flip puts them first, consistently.
func compareValues(a, b Value, kind Kind) int {
	switch {
	case !a.set && !b.set:
		return 0
	case !a.set:
		return 1
	case !b.set:
		return -1
	}
	switch kind {
	case KindNumber:
		// Integer pairs compare exactly; the float path would collapse
		// neighbours above 2^53.
		if a.isInt && b.isInt {
			switch {
			case a.i < b.i:
				return -1
			case a.i > b.i:
				return 1
			}
			return 0
		}
		af, _ := a.Float()
		bf, _ := b.Float()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	case KindBool:
		switch {
		case !a.b && b.b:
			return -1
		case a.b && !b.b:
			return 1
		}
		return 0
	case KindTime:
		switch {
		case a.t.Before(b.t):
			return -1
		case a.t.After(b.t):
			return 1
		}
		return 0
	default:
		return strings.Compare(a.Text(), b.Text())
	}
}

// parseCell converts one raw text cell into a typed Value under the
// column kind decided by inference. It never fails; anything that does
// not parse stays text.
func parseCell(raw string, kind Kind) Value {
	if raw == "" {
		return Null()
	}
	switch kind {
	case KindNumber:
		trimmed := strings.TrimSpace(raw)
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return Int(i)
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Number(f)
		}
	case KindBool:
		if b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw))); err == nil {
			return Bool(b)
		}
	case KindTime:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
				return Time(t)
			}
		}
	}
	return String(raw)
}

// inferKind decides a column kind from raw text cells. Every non-empty
// cell must agree for a typed kind; otherwise the column stays text.
func inferKind(cells []string) Kind {
	sawValue := false
	isNumber, isBool, isTime := true, true, true
	for _, raw := range cells {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		sawValue = true
		if isNumber {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				isNumber = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(strings.ToLower(raw)); err != nil {
				isBool = false
			}
		}
		if isTime {
			ok := false
			for _, layout := range dateLayouts {
				if _, err := time.Parse(layout, raw); err == nil {
					ok = true
					break
				}
			}
			isTime = ok
		}
		if !isNumber && !isBool && !isTime {
			return KindText
		}
	}
	if !sawValue {
		return KindText
	}
	// A column of "0"/"1" parses as both; numbers win over booleans.
	switch {
	case isNumber:
		return KindNumber
	case isBool:
		return KindBool
	case isTime:
		return KindTime
	}
	return KindText
}
