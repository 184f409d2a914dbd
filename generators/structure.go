package generators

import (
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/writer"
)

const structureSchemaTemplate = `structure ${shape:I} {${#memberSchemas}
    ${value:C|}${/memberSchemas}
}`

const structureShapeTemplate = `#[derive(${derive:T}, PartialEq, Clone)]
#[smithy_schema(${shape:I})]
pub struct ${shape:T} {${#memberFields}
    ${value:C|}${/memberFields}
}`

// Structure emits the schema block and struct declaration for one
// structure shape. Synthetic and prelude structures produce no output.
func Structure(w *writer.Writer, ctx Context, shape *model.Shape) error {
	if shape.ID.IsSynthetic() || shape.ID.IsPrelude() {
		return nil
	}
	sym, err := ctx.Provider.Resolve(shape)
	if err != nil {
		return err
	}

	memberSchemas := make([]writer.Renderable, 0, len(shape.Members))
	memberFields := make([]writer.Renderable, 0, len(shape.Members))
	for _, member := range shape.Members {
		memberSchemas = append(memberSchemas, structMemberSchema{ctx: ctx, member: member})
		memberFields = append(memberFields, structMemberField{ctx: ctx, member: member})
	}

	w.InState(func() {
		w.PutContext("shape", sym)
		if err = schemaBlock(w, ctx, shape, func() {
			w.InState(func() {
				w.PutContext("memberSchemas", memberSchemas)
				w.Write(structureSchemaTemplate)
			})
		}); err != nil {
			return
		}
		w.Write("")
		w.InSection(&ShapeSection{Shape: shape}, func() {
			w.InState(func() {
				w.PutContext("memberFields", memberFields)
				w.PutContext("derive", symbol.ShapeDerive)
				w.Write(structureShapeTemplate)
			})
		})
		w.Write("")
	})
	if err != nil {
		return err
	}
	return w.Err()
}

// structMemberSchema renders one schema member entry, annotation
// initializer lines first.
type structMemberSchema struct {
	ctx    Context
	member *model.Shape
}

func (g structMemberSchema) Render(w *writer.Writer) error {
	if err := emitTraitLines(w, g.ctx, g.member); err != nil {
		return err
	}
	sym, err := g.ctx.Provider.Resolve(g.member)
	if err != nil {
		return err
	}
	w.InState(func() {
		w.PutContext("memberIdent", memberIdent(g.member.MemberName()))
		w.PutContext("shape", sym)
		w.PutContext("memberName", g.member.MemberName())
		w.Write("${memberIdent:L}: ${shape:I} = ${memberName:S}")
	})
	return w.Err()
}

// structMemberField renders one pub field inside the struct declaration.
type structMemberField struct {
	ctx    Context
	member *model.Shape
}

func (g structMemberField) Render(w *writer.Writer) error {
	sym, err := g.ctx.Provider.Resolve(g.member)
	if err != nil {
		return err
	}
	w.InSection(&MemberSection{Shape: g.member}, func() {
		w.InState(func() {
			w.PutContext("memberIdent", memberIdent(g.member.MemberName()))
			w.PutContext("member", sym)
			w.PutContext("memberName", g.member.MemberName())
			w.Write("#[smithy_schema(${memberIdent:L})]")
			w.Write("pub ${memberName:L}: ${member:T},")
		})
	})
	return w.Err()
}
