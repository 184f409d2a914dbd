// Package traits renders annotation initializer expressions for schema
// blocks.
//
// An initializer turns one annotation into the Rust expression placed
// after '@' in a schema definition, e.g.
//
//	@Length::builder().min(1).max(4).build();
//
// Initializers are consulted in registration order and the first match
// wins, so integrations register specific initializers before general
// ones and the catch-all last.
package traits

import (
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/writer"
)

// Mapping resolves an annotation ID to the Rust symbol implementing it.
// Typed initializers only match annotations that carry a mapping; the
// catch-all needs none.
type Mapping interface {
	TraitSymbol(id model.ShapeID) (*symbol.Symbol, bool)
}

// Initializer writes the initializer expression for one annotation kind.
type Initializer interface {
	// Matches reports whether this initializer handles the annotation.
	Matches(m Mapping, a *model.Annotation) bool

	// Write emits the initializer expression inline, without a trailing
	// newline or terminator.
	Write(w *writer.Writer, m Mapping, a *model.Annotation) error
}

// Registry holds initializers in registration order.
type Registry struct {
	initializers []Initializer
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends initializers; order is significant.
func (r *Registry) Register(inits ...Initializer) {
	r.initializers = append(r.initializers, inits...)
}

// For returns the first initializer matching the annotation. With a
// catch-all registered this never fails; without one, annotations no
// initializer claims surface as ErrUnmatchedAnnotation naming the owning
// shape.
func (r *Registry) For(m Mapping, owner model.ShapeID, a *model.Annotation) (Initializer, error) {
	for _, init := range r.initializers {
		if init.Matches(m, a) {
			return init, nil
		}
	}
	return nil, errors.WrapUnmatched(a.ID.String(), owner.String())
}

// Len reports how many initializers are registered.
func (r *Registry) Len() int {
	return len(r.initializers)
}
