// Package integrations bundles the pluggable pieces of a generation run:
// annotation initializers, trait type mappings, and section interceptors.
//
// Integrations are assembled once at startup in a fixed order; everything
// they contribute is immutable for the rest of the run.
package integrations

import (
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/traits"
	"github.com/teranos/shapegen/writer"
)

// Integration contributes initializers, trait mappings and interceptors
// to a generation run.
type Integration interface {
	// Name identifies the integration in configuration and logs.
	Name() string

	// Initializers returns annotation initializers in the order they
	// should be consulted.
	Initializers() []traits.Initializer

	// TraitSymbols maps annotation IDs to the Rust types implementing
	// them.
	TraitSymbols() map[model.ShapeID]*symbol.Symbol

	// Interceptors returns section interceptors in registration order.
	Interceptors() []writer.Interceptor
}

// Default returns the standard integration set: core initializers first,
// rustdoc documentation rendering second.
func Default() []Integration {
	return []Integration{Core{}, Rustdoc{}}
}
