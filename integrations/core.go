package integrations

import (
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/traits"
	"github.com/teranos/shapegen/writer"
)

// Core registers the built-in annotation initializers and the prelude
// trait type mappings.
type Core struct{}

func (Core) Name() string { return "core" }

// Initializers returns typed initializers first and the catch-all last;
// lookup is first-match-wins.
func (Core) Initializers() []traits.Initializer {
	return []traits.Initializer{
		traits.Length{},
		traits.Range{},
		traits.StringPayload{},
		traits.Marker{},
		traits.Generic{},
	}
}

// TraitSymbols maps the prelude annotations to their runtime trait types.
// Length and range are absent: their initializers carry fixed symbols.
func (Core) TraitSymbols() map[model.ShapeID]*symbol.Symbol {
	return map[model.ShapeID]*symbol.Symbol{
		model.TraitJSONName:     symbol.PreludeTrait("JsonName"),
		model.TraitPattern:      symbol.PreludeTrait("Pattern"),
		model.TraitMediaType:    symbol.PreludeTrait("MediaType"),
		model.TraitTimestampFmt: symbol.PreludeTrait("TimestampFormat"),
		model.TraitError:        symbol.PreludeTrait("Error"),
		model.TraitRequired:     symbol.PreludeTrait("Required"),
		model.TraitSensitive:    symbol.PreludeTrait("Sensitive"),
		model.TraitSparse:       symbol.PreludeTrait("Sparse"),
		model.TraitUniqueItems:  symbol.PreludeTrait("UniqueItems"),
		model.TraitStreaming:    symbol.PreludeTrait("Streaming"),
		model.TraitIdempotency:  symbol.PreludeTrait("IdempotencyToken"),
	}
}

func (Core) Interceptors() []writer.Interceptor { return nil }
