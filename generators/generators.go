package generators

import (
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/traits"
	"github.com/teranos/shapegen/util"
	"github.com/teranos/shapegen/writer"
)

// Context carries the shared collaborators every generator needs. The
// provider and registry are immutable after assembly and safe to share
// across artifact workers.
type Context struct {
	Model    *model.Model
	Provider *symbol.Provider
	Registry *traits.Registry
	Mapping  traits.Mapping
}

// excludedTraits never render initializer lines: documentation traits are
// composed into docstrings and defaults are handled by the runtime macros.
var excludedTraits = map[model.ShapeID]bool{
	model.TraitDocumentation: true,
	model.TraitExternalDocs:  true,
	model.TraitUnstable:      true,
	model.TraitDeprecated:    true,
	model.TraitSince:         true,
	model.TraitDefault:       true,
}

// emitTraitLines writes one "@<initializer>;" line per renderable
// annotation on the shape, in declaration order.
func emitTraitLines(w *writer.Writer, ctx Context, shape *model.Shape) error {
	for i := range shape.Traits {
		a := &shape.Traits[i]
		if excludedTraits[a.ID] {
			continue
		}
		init, err := ctx.Registry.For(ctx.Mapping, shape.ID, a)
		if err != nil {
			return err
		}
		w.WriteInline("@")
		if err := init.Write(w, ctx.Mapping, a); err != nil {
			return err
		}
		w.Write(";")
	}
	return w.Err()
}

// schemaBlock opens a smithy! macro block for the shape and renders body
// inside its schema section, shape-level initializer lines first.
func schemaBlock(w *writer.Writer, ctx Context, shape *model.Shape, body func()) error {
	var err error
	w.InState(func() {
		w.PutContext("smithy", symbol.SmithyMacro)
		w.PutContext("id", shape.ID)
		w.OpenBlock("${smithy:T}!(${id:S}: {", "});", func() {
			w.InSection(&SchemaSection{Shape: shape}, func() {
				if err = emitTraitLines(w, ctx, shape); err != nil {
					return
				}
				body()
			})
		})
	})
	if err != nil {
		return err
	}
	return w.Err()
}

// memberIdent is the schema constant name of a member within its
// container's schema block.
func memberIdent(name string) string {
	return util.ToScreamingSnakeCase(name)
}
