package writer

import "github.com/teranos/shapegen/model"

// Section is a typed marker identifying an extension point during text
// emission. Sections form a parent chain per emission; interceptors are
// keyed by section name.
type Section interface {
	// SectionName identifies the section kind for interceptor dispatch.
	SectionName() string
}

// DocumentedSection is implemented by sections that can carry user-facing
// documentation. Target may return nil for sections not tied to a shape.
type DocumentedSection interface {
	Section
	Target() *model.Shape
}

// Mode classifies how an interceptor composes with a section body.
type Mode int

const (
	// Prepend emits additional content before the normal body.
	Prepend Mode = iota
	// Append emits additional content after the normal body.
	Append
	// Override replaces the body entirely; the interceptor receives the
	// previously rendered text (including any appended content so far).
	Override
)

// Interceptor injects content at a tagged section without the template
// author knowing about it. Interceptors for the same section compose in
// registration order; an interceptor whose Relevant check fails is
// skipped with no effect.
type Interceptor interface {
	// SectionName names the section kind this interceptor targets. The
	// empty string matches every section.
	SectionName() string

	// Mode reports how the interceptor composes with the body.
	Mode() Mode

	// Relevant reports whether the interceptor applies to this section
	// instance.
	Relevant(s Section) bool

	// Render writes the interceptor's contribution. previous is the
	// section text rendered so far for Override mode, "" otherwise.
	Render(w *Writer, previous string, s Section) error
}

// Renderable produces inline content when referenced from a template `:C`
// placeholder.
type Renderable interface {
	Render(w *Writer) error
}

// RenderFunc adapts a function to the Renderable interface.
type RenderFunc func(w *Writer) error

func (f RenderFunc) Render(w *Writer) error { return f(w) }
