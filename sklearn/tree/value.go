package tree

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindMissing valueKind = iota
	kindNumber
	kindCategory
)

// Value is a single feature observation: a number, a categorical token, or
// missing. The zero Value is missing.
type Value struct {
	kind  valueKind
	num   float64
	token string
}

// Table is an ordered sequence of rows of equal length.
type Table [][]Value

// Number returns a numeric value. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: kindNumber, num: f}
}

// Category returns a categorical token.
func Category(token string) Value {
	return Value{kind: kindCategory, token: token}
}

// Missing returns the missing marker.
func Missing() Value {
	return Value{}
}

// missingTokens are the strings ParseValue reads as missing.
var missingTokens = map[string]struct{}{
	"": {}, "?": {}, "NA": {}, "NaN": {}, "None": {}, "null": {},
}

// ParseValue converts a raw textual cell to a Value. Missing tokens
// ("", "?", "NA", "NaN", "None", "null") become Missing, anything that
// parses as a float becomes a Number, and everything else is a Category.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if _, ok := missingTokens[s]; ok {
		return Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Category(s)
}

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool { return v.kind == kindMissing }

// IsNumber reports whether v is numeric.
func (v Value) IsNumber() bool { return v.kind == kindNumber }

// IsCategory reports whether v is a categorical token.
func (v Value) IsCategory() bool { return v.kind == kindCategory }

// Float returns the numeric value, or 0 if v is not a number.
func (v Value) Float() float64 { return v.num }

// Token returns the categorical token, or "" if v is not a category.
func (v Value) Token() string { return v.token }

// Equal reports whether v and o have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case kindNumber:
		return v.num == o.num
	case kindCategory:
		return v.token == o.token
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case kindCategory:
		return v.token
	default:
		return "<missing>"
	}
}

// MarshalJSON encodes numbers as JSON numbers, categories as strings and
// missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		if math.IsInf(v.num, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.num)
	case kindCategory:
		return json.Marshal(v.token)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Missing()
	case float64:
		*v = Number(x)
	case string:
		*v = Category(x)
	default:
		*v = Category(string(data))
	}
	return nil
}

// FeatureKind tells how a split compares values.
type FeatureKind uint8

const (
	// Continuous splits route value <= threshold to the left child.
	Continuous FeatureKind = iota
	// Categorical splits route value == threshold to the left child.
	Categorical
)

func (k FeatureKind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "continuous"
}

// MarshalText implements encoding.TextMarshaler.
func (k FeatureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
