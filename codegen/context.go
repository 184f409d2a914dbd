package codegen

import (
	"github.com/teranos/shapegen/generators"
	"github.com/teranos/shapegen/integrations"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/traits"
	"github.com/teranos/shapegen/writer"
)

// traitMap is the merged trait-symbol table across integrations.
type traitMap map[model.ShapeID]*symbol.Symbol

func (m traitMap) TraitSymbol(id model.ShapeID) (*symbol.Symbol, bool) {
	sym, ok := m[id]
	return sym, ok
}

// Context holds everything a generation run shares across artifact
// workers. All fields are read-only after NewContext returns.
type Context struct {
	Model    *model.Model
	Settings *Settings
	Provider *symbol.Provider

	registry     *traits.Registry
	mapping      traitMap
	interceptors []writer.Interceptor
}

// NewContext assembles a run context from the model and integration set.
// Integrations contribute in order: earlier initializers win matches, and
// later trait mappings override earlier ones.
func NewContext(m *model.Model, settings *Settings, ints []integrations.Integration) *Context {
	ctx := &Context{
		Model:    m,
		Settings: settings,
		Provider: symbol.NewProvider(m),
		registry: traits.NewRegistry(),
		mapping:  traitMap{},
	}
	for _, in := range ints {
		ctx.registry.Register(in.Initializers()...)
		for id, sym := range in.TraitSymbols() {
			ctx.mapping[id] = sym
		}
		ctx.interceptors = append(ctx.interceptors, in.Interceptors()...)
		logger.Logger.Debugw("registered integration",
			"name", in.Name(),
			"initializers", len(in.Initializers()),
			"interceptors", len(in.Interceptors()))
	}
	return ctx
}

// NewWriter returns a fresh artifact writer carrying the run's
// interceptor chain. Each artifact must own its writer.
func (c *Context) NewWriter(filename string) *writer.Writer {
	return writer.New(filename, c.interceptors...)
}

// Generators returns the collaborator bundle the shape generators take,
// bound to m. The director passes the transformed model here so synthetic
// shapes resolve during generation.
func (c *Context) Generators(m *model.Model) generators.Context {
	return generators.Context{
		Model:    m,
		Provider: symbol.NewProvider(m),
		Registry: c.registry,
		Mapping:  c.mapping,
	}
}
