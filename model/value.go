package model

import (
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	NullKind ValueKind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	}
	return "invalid"
}

// Value is the generic nested metadata value carried by annotations.
//
// Values are immutable after construction. Object entries preserve
// insertion order so generated output is deterministic.
type Value struct {
	Kind ValueKind

	// BoolVal is set for BoolKind.
	BoolVal bool

	// IntVal/FloatVal hold the number; IsFloat selects which. Numbers keep
	// their source form so integer metadata never renders a float token.
	IntVal   int64
	FloatVal float64
	IsFloat  bool

	// StrVal is set for StringKind.
	StrVal string

	// Elems is the ordered element list of ArrayKind.
	Elems []*Value

	// Entries is the ordered member list of ObjectKind. Keys are Values
	// themselves (typically strings) and are unique.
	Entries []ObjectEntry
}

// ObjectEntry is one key/value pair of an object value.
type ObjectEntry struct {
	Key   *Value
	Value *Value
}

// Constructors. These return fresh values; sharing subtrees between values
// is fine because values are never mutated.

func NullValue() *Value            { return &Value{Kind: NullKind} }
func BoolValue(b bool) *Value      { return &Value{Kind: BoolKind, BoolVal: b} }
func IntValue(i int64) *Value      { return &Value{Kind: NumberKind, IntVal: i} }
func FloatValue(f float64) *Value  { return &Value{Kind: NumberKind, FloatVal: f, IsFloat: true} }
func StringValue(s string) *Value  { return &Value{Kind: StringKind, StrVal: s} }
func ArrayValue(e ...*Value) *Value { return &Value{Kind: ArrayKind, Elems: e} }

// ObjectValue builds an object from ordered entries.
func ObjectValue(entries ...ObjectEntry) *Value {
	return &Value{Kind: ObjectKind, Entries: entries}
}

// Entry pairs a string key with a value, the common object-entry case.
func Entry(key string, v *Value) ObjectEntry {
	return ObjectEntry{Key: StringValue(key), Value: v}
}

// Field returns the value under a string key, or nil.
func (v *Value) Field(key string) *Value {
	if v == nil || v.Kind != ObjectKind {
		return nil
	}
	for _, e := range v.Entries {
		if e.Key.Kind == StringKind && e.Key.StrVal == key {
			return e.Value
		}
	}
	return nil
}

// IsNull reports whether the value is nil or the null variant.
func (v *Value) IsNull() bool {
	return v == nil || v.Kind == NullKind
}

// Equal reports deep structural equality, including object entry order.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case NullKind:
		return true
	case BoolKind:
		return v.BoolVal == o.BoolVal
	case NumberKind:
		return v.IsFloat == o.IsFloat && v.IntVal == o.IntVal && v.FloatVal == o.FloatVal
	case StringKind:
		return v.StrVal == o.StrVal
	case ArrayKind:
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.Entries) != len(o.Entries) {
			return false
		}
		for i := range v.Entries {
			if !v.Entries[i].Key.Equal(o.Entries[i].Key) ||
				!v.Entries[i].Value.Equal(o.Entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders a compact debug form. Generated-source rendering lives in
// the literal package, not here.
func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case NullKind:
		return "null"
	case BoolKind:
		return strconv.FormatBool(v.BoolVal)
	case NumberKind:
		if v.IsFloat {
			return strconv.FormatFloat(v.FloatVal, 'g', -1, 64)
		}
		return strconv.FormatInt(v.IntVal, 10)
	case StringKind:
		return strconv.Quote(v.StrVal)
	case ArrayKind:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjectKind:
		parts := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			parts[i] = e.Key.String() + ": " + e.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "invalid"
}
