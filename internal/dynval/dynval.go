// Package dynval is the boundary between the engine and the dynamic value
// trees produced by the definition runtime. A definition arrives as a
// cty.Value; this package classifies its kind and performs the strict,
// range-checked coercions the decode schemas bind with. A value of the wrong
// kind, or outside a declared range, always surfaces as a TypeMismatch and is
// never silently truncated.
package dynval

import (
	"math/big"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/protoerr"
)

// Kind classifies a dynamic value into the six shapes the engine understands.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindTable
)

// String returns the lower-case name of the kind, as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// KindOf classifies v. Null and absent values are KindNil regardless of their
// static type.
func KindOf(v cty.Value) Kind {
	if v.IsNull() || !v.IsKnown() {
		return KindNil
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return KindBool
	case ty == cty.Number:
		return KindNumber
	case ty == cty.String:
		return KindString
	case ty.IsTupleType(), ty.IsListType(), ty.IsSetType():
		return KindSequence
	case ty.IsObjectType(), ty.IsMapType():
		return KindTable
	default:
		return KindNil
	}
}

// Has reports whether v is a table containing the given key.
func Has(v cty.Value, key string) bool {
	if KindOf(v) != KindTable {
		return false
	}
	if v.Type().IsObjectType() {
		return v.Type().HasAttribute(key) && !v.GetAttr(key).IsNull()
	}
	return v.HasIndex(cty.StringVal(key)).True()
}

// Attr returns the value stored under key, or cty.NilVal when v is not a
// table or the key is absent.
func Attr(v cty.Value, key string) cty.Value {
	if !Has(v, key) {
		return cty.NilVal
	}
	if v.Type().IsObjectType() {
		return v.GetAttr(key)
	}
	return v.Index(cty.StringVal(key))
}

// Keys returns the sorted key set of a table value, or nil for any other kind.
func Keys(v cty.Value) []string {
	if KindOf(v) != KindTable {
		return nil
	}
	var keys []string
	for key := range v.AsValueMap() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Elements returns the elements of a sequence value in order, failing with
// TypeMismatch for any other kind.
func Elements(v cty.Value) ([]cty.Value, error) {
	if KindOf(v) != KindSequence {
		return nil, protoerr.TypeMismatchf("expected sequence, got %s", KindOf(v))
	}
	return v.AsValueSlice(), nil
}

// Index returns the i-th element of a sequence value.
func Index(v cty.Value, i int) (cty.Value, error) {
	elems, err := Elements(v)
	if err != nil {
		return cty.NilVal, err
	}
	if i < 0 || i >= len(elems) {
		return cty.NilVal, protoerr.TypeMismatchf("sequence index %d out of range (length %d)", i, len(elems))
	}
	return elems[i], nil
}

// String coerces v to a Go string, requiring the string kind.
func String(v cty.Value) (string, error) {
	if KindOf(v) != KindString {
		return "", protoerr.TypeMismatchf("expected string, got %s", KindOf(v))
	}
	return v.AsString(), nil
}

// Bool coerces v to a Go bool, requiring the bool kind.
func Bool(v cty.Value) (bool, error) {
	if KindOf(v) != KindBool {
		return false, protoerr.TypeMismatchf("expected bool, got %s", KindOf(v))
	}
	return v.True(), nil
}

// Float coerces v to a float64, requiring the number kind.
func Float(v cty.Value) (float64, error) {
	if KindOf(v) != KindNumber {
		return 0, protoerr.TypeMismatchf("expected number, got %s", KindOf(v))
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}

// Int coerces v to an int64, requiring an integral number. Fractional and
// overflowing values are rejected rather than truncated.
func Int(v cty.Value) (int64, error) {
	if KindOf(v) != KindNumber {
		return 0, protoerr.TypeMismatchf("expected number, got %s", KindOf(v))
	}
	n, acc := v.AsBigFloat().Int64()
	if acc != big.Exact {
		return 0, protoerr.TypeMismatchf("expected integer, got %s", v.AsBigFloat().Text('g', -1))
	}
	return n, nil
}

// IntBetween coerces v to an int64 within [lo, hi], inclusive.
func IntBetween(v cty.Value, lo, hi int64) (int64, error) {
	n, err := Int(v)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, protoerr.TypeMismatchf("value %d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

// FloatBetween coerces v to a float64 within [lo, hi], inclusive.
func FloatBetween(v cty.Value, lo, hi float64) (float64, error) {
	f, err := Float(v)
	if err != nil {
		return 0, err
	}
	if f < lo || f > hi {
		return 0, protoerr.TypeMismatchf("value %g out of range [%g, %g]", f, lo, hi)
	}
	return f, nil
}

// Strings coerces a sequence of strings into a Go slice.
func Strings(v cty.Value) ([]string, error) {
	elems, err := Elements(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elems))
	for i, elem := range elems {
		s, err := String(elem)
		if err != nil {
			return nil, protoerr.TypeMismatchf("element %d: expected string, got %s", i, KindOf(elem))
		}
		out = append(out, s)
	}
	return out, nil
}
