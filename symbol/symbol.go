// Package symbol maps model shapes to Rust symbols: the type name to write
// at a use site, the namespace to import it from, generic type arguments,
// and the schema constant associated with the shape.
package symbol

import "strings"

// Delimiter separates Rust namespace segments.
const Delimiter = "::"

// Symbol is the Rust projection of a shape.
//
// Symbols are immutable; builders and the provider hand out fresh values.
type Symbol struct {
	// Name is the local type or constant name ("String", "Vec", "PERSON_SCHEMA").
	Name string

	// Namespace is the full path the name lives under ("std::vec",
	// "smithy4rs_core::prelude"). Empty for types declared in the
	// generated file itself.
	Namespace string

	// Refs are generic type arguments ("Vec<String>" carries one ref).
	Refs []*Symbol

	// Schema is the associated schema constant for this symbol, when the
	// originating shape has one.
	Schema *Symbol

	// IsMacro marks macro symbols ("smithy", "doc_map") which render with
	// a trailing bang at call sites.
	IsMacro bool
}

// New builds a plain symbol.
func New(name, namespace string) *Symbol {
	return &Symbol{Name: name, Namespace: namespace}
}

// Macro builds a macro symbol.
func Macro(name, namespace string) *Symbol {
	return &Symbol{Name: name, Namespace: namespace, IsMacro: true}
}

// WithRefs returns a copy carrying the given type arguments.
func (s *Symbol) WithRefs(refs ...*Symbol) *Symbol {
	out := *s
	out.Refs = refs
	return &out
}

// WithSchema returns a copy carrying the given schema symbol.
func (s *Symbol) WithSchema(schema *Symbol) *Symbol {
	out := *s
	out.Schema = schema
	return &out
}

// Segments splits the namespace on the delimiter; empty namespaces yield
// no segments.
func (s *Symbol) Segments() []string {
	if s.Namespace == "" {
		return nil
	}
	return strings.Split(s.Namespace, Delimiter)
}

// IsImportable reports whether recording this symbol should produce a use
// statement. Local declarations and the std prelude need none.
func (s *Symbol) IsImportable() bool {
	if s.Namespace == "" || s.Namespace == "local" {
		return false
	}
	return !strings.HasPrefix(s.Namespace, "std")
}

// Equal reports structural equality.
func (s *Symbol) Equal(o *Symbol) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Name != o.Name || s.Namespace != o.Namespace || s.IsMacro != o.IsMacro {
		return false
	}
	if len(s.Refs) != len(o.Refs) {
		return false
	}
	for i := range s.Refs {
		if !s.Refs[i].Equal(o.Refs[i]) {
			return false
		}
	}
	return s.Schema.Equal(o.Schema)
}

// String renders the relative form with type arguments, for logs and tests.
func (s *Symbol) String() string {
	if len(s.Refs) == 0 {
		return s.Name
	}
	parts := make([]string, len(s.Refs))
	for i, r := range s.Refs {
		parts[i] = r.String()
	}
	return s.Name + "<" + strings.Join(parts, ", ") + ">"
}
