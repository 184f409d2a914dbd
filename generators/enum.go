package generators

import (
	"strconv"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/literal"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/util"
	"github.com/teranos/shapegen/writer"
)

const enumSchemaTemplate = `enum ${shape:I} {${#variants}
    ${value:C|}${/variants}
}`

const enumShapeTemplate = `#[${enum:T}]
#[derive(${derive:T})]
#[smithy_schema(${shape:I})]
pub enum ${shape:T} {${#variants}
    ${value:C|}${/variants}
}`

// Enum emits the schema block and enum declaration for string enums and
// int enums; both use the `enum` schema keyword and differ only in the
// variant value literal.
func Enum(w *writer.Writer, ctx Context, shape *model.Shape) error {
	if shape.ID.IsSynthetic() || shape.ID.IsPrelude() {
		return nil
	}
	sym, err := ctx.Provider.Resolve(shape)
	if err != nil {
		return err
	}

	schemaVariants := make([]writer.Renderable, 0, len(shape.Members))
	shapeVariants := make([]writer.Renderable, 0, len(shape.Members))
	for _, member := range shape.Members {
		schemaVariants = append(schemaVariants, enumVariant{member: member})
		shapeVariants = append(shapeVariants, enumVariant{member: member, comma: true})
	}

	w.InState(func() {
		w.PutContext("shape", sym)
		if err = schemaBlock(w, ctx, shape, func() {
			w.InState(func() {
				w.PutContext("variants", schemaVariants)
				w.Write(enumSchemaTemplate)
			})
		}); err != nil {
			return
		}
		w.Write("")
		w.InSection(&ShapeSection{Shape: shape}, func() {
			w.InState(func() {
				w.PutContext("variants", shapeVariants)
				w.PutContext("derive", symbol.ShapeDerive)
				w.PutContext("enum", symbol.EnumMacro)
				w.Write(enumShapeTemplate)
			})
		})
		w.Write("")
	})
	if err != nil {
		return err
	}
	return w.Err()
}

// enumVariant renders "Name = value" with the variant's wire value; the
// declaration form adds a trailing comma.
type enumVariant struct {
	member *model.Shape
	comma  bool
}

func (g enumVariant) Render(w *writer.Writer) error {
	value, err := variantValue(g.member)
	if err != nil {
		return err
	}
	w.InState(func() {
		w.PutContext("name", util.ToPascalCase(g.member.MemberName()))
		w.PutContext("value", value)
		if g.comma {
			w.Write("${name:L} = ${value:L},")
		} else {
			w.Write("${name:L} = ${value:L}")
		}
	})
	return w.Err()
}

func variantValue(member *model.Shape) (string, error) {
	v := member.EnumValue
	if v == nil {
		return "", errors.Newf("enum member %s has no wire value", member.ID)
	}
	switch v.Kind {
	case model.StringKind:
		return literal.Quote(v.StrVal), nil
	case model.NumberKind:
		return strconv.FormatInt(v.IntVal, 10), nil
	}
	return "", errors.Wrapf(errors.ErrUnsupportedValue, "enum member %s value kind %s", member.ID, v.Kind)
}
