// Package literal compiles metadata values into Rust literal source
// expressions, for use inside schema initializer positions.
//
// Compile is a pure structural recursion with no shared state, so it is
// safe to call concurrently from independent generation workers.
package literal

import (
	"strconv"
	"strings"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
)

// DocMapMacro is the mapping-constructor macro used for object values.
const DocMapMacro = "doc_map!"

// EmptyVec is the designated empty-sequence literal. A bare `vec![]` would
// be ambiguous without a type annotation, so empty arrays construct
// explicitly instead.
const EmptyVec = "Vec::new()"

// Compile renders a metadata value as a Rust literal expression.
//
// Null has no defined literal form in a schema initializer position; it
// returns ErrUnsupportedValue rather than guessing a default.
func Compile(v *model.Value) (string, error) {
	if v == nil {
		return "", errors.Wrap(errors.ErrUnsupportedValue, "nil value")
	}
	var sb strings.Builder
	if err := compile(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func compile(sb *strings.Builder, v *model.Value) error {
	switch v.Kind {
	case model.BoolKind:
		sb.WriteString(strconv.FormatBool(v.BoolVal))
		return nil

	case model.NumberKind:
		if v.IsFloat {
			sb.WriteString(formatFloat(v.FloatVal))
		} else {
			sb.WriteString(strconv.FormatInt(v.IntVal, 10))
		}
		return nil

	case model.StringKind:
		sb.WriteString(Quote(v.StrVal))
		return nil

	case model.ArrayKind:
		if len(v.Elems) == 0 {
			sb.WriteString(EmptyVec)
			return nil
		}
		sb.WriteString("vec![")
		for i, elem := range v.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := compile(sb, elem); err != nil {
				return err
			}
		}
		sb.WriteString("]")
		return nil

	case model.ObjectKind:
		// doc_map!["a" => 1, "b" => 2]; keys recurse generically, they
		// are values in their own right
		sb.WriteString(DocMapMacro)
		sb.WriteString("[")
		for i, entry := range v.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			if err := compile(sb, entry.Key); err != nil {
				return err
			}
			sb.WriteString(" => ")
			if err := compile(sb, entry.Value); err != nil {
				return err
			}
		}
		sb.WriteString("]")
		return nil

	case model.NullKind:
		// Open question upstream: no literal form is defined for null in
		// an initializer position, so this stays explicitly unsupported
		return errors.Wrap(errors.ErrUnsupportedValue, "null metadata value")
	}
	return errors.Wrapf(errors.ErrUnsupportedValue, "value kind %s", v.Kind)
}

// HasObject reports whether v or anything nested in it is an object,
// meaning the compiled form relies on the doc_map! macro.
func HasObject(v *model.Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case model.ObjectKind:
		return true
	case model.ArrayKind:
		for _, elem := range v.Elems {
			if HasObject(elem) {
				return true
			}
		}
	}
	return false
}

// formatFloat renders a float token that Rust will parse as a float even
// for whole values (1 -> "1.0").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Quote renders a Rust double-quoted string literal with escapes.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
