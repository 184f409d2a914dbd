package generators

import (
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/util"
	"github.com/teranos/shapegen/writer"
)

const unionSchemaTemplate = `union ${shape:I} {${#memberSchemas}
    ${value:C|}${/memberSchemas}
}`

const unionShapeTemplate = `#[${union:T}]
#[derive(${derive:T})]
#[smithy_schema(${shape:I})]
pub enum ${shape:T} {${#memberVariants}
    ${value:C|}${/memberVariants}
}`

// Union emits the schema block and tagged-enum declaration for one union
// shape.
func Union(w *writer.Writer, ctx Context, shape *model.Shape) error {
	if shape.ID.IsSynthetic() || shape.ID.IsPrelude() {
		return nil
	}
	sym, err := ctx.Provider.Resolve(shape)
	if err != nil {
		return err
	}

	memberSchemas := make([]writer.Renderable, 0, len(shape.Members))
	memberVariants := make([]writer.Renderable, 0, len(shape.Members))
	for _, member := range shape.Members {
		memberSchemas = append(memberSchemas, unionMemberSchema{ctx: ctx, member: member})
		memberVariants = append(memberVariants, unionMemberVariant{ctx: ctx, member: member})
	}

	w.InState(func() {
		w.PutContext("shape", sym)
		if err = schemaBlock(w, ctx, shape, func() {
			w.InState(func() {
				w.PutContext("memberSchemas", memberSchemas)
				w.Write(unionSchemaTemplate)
			})
		}); err != nil {
			return
		}
		w.Write("")
		w.InSection(&ShapeSection{Shape: shape}, func() {
			w.InState(func() {
				w.PutContext("memberVariants", memberVariants)
				w.PutContext("derive", symbol.ShapeDerive)
				w.PutContext("union", symbol.UnionMacro)
				w.Write(unionShapeTemplate)
			})
		})
		w.Write("")
	})
	if err != nil {
		return err
	}
	return w.Err()
}

type unionMemberSchema struct {
	ctx    Context
	member *model.Shape
}

func (g unionMemberSchema) Render(w *writer.Writer) error {
	if err := emitTraitLines(w, g.ctx, g.member); err != nil {
		return err
	}
	sym, err := g.ctx.Provider.Resolve(g.member)
	if err != nil {
		return err
	}
	w.InState(func() {
		w.PutContext("memberSchema", memberIdent(g.member.MemberName()))
		w.PutContext("member", sym)
		w.PutContext("memberName", g.member.MemberName())
		w.Write("${memberSchema:L}: ${member:I} = ${memberName:S}")
	})
	return w.Err()
}

type unionMemberVariant struct {
	ctx    Context
	member *model.Shape
}

func (g unionMemberVariant) Render(w *writer.Writer) error {
	sym, err := g.ctx.Provider.Resolve(g.member)
	if err != nil {
		return err
	}
	w.InSection(&MemberSection{Shape: g.member}, func() {
		w.InState(func() {
			w.PutContext("memberSchema", memberIdent(g.member.MemberName()))
			w.PutContext("member", sym)
			w.PutContext("memberName", util.ToPascalCase(g.member.MemberName()))
			w.Write("#[smithy_schema(${memberSchema:L})]")
			w.Write("${memberName:L}(${member:T}),")
		})
	})
	return w.Err()
}
