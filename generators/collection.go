package generators

import (
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/writer"
)

// List emits the schema-only block for a list shape; lists have no Rust
// declaration of their own, use sites reference Vec directly.
func List(w *writer.Writer, ctx Context, shape *model.Shape) error {
	if shape.ID.IsSynthetic() || shape.ID.IsPrelude() {
		return nil
	}
	sym, err := ctx.Provider.Resolve(shape)
	if err != nil {
		return err
	}
	member, err := resolveMember(ctx, shape, "member")
	if err != nil {
		return err
	}

	blockErr := schemaBlock(w, ctx, shape, func() {
		w.InState(func() {
			w.PutContext("shape", sym)
			w.PutContext("member", member)
			w.Write("list ${shape:I} {")
			w.Write("    member: ${member:I}")
			w.Write("}")
		})
	})
	if blockErr != nil {
		return blockErr
	}
	w.Write("")
	return w.Err()
}

// Map emits the schema-only block for a map shape.
func Map(w *writer.Writer, ctx Context, shape *model.Shape) error {
	if shape.ID.IsSynthetic() || shape.ID.IsPrelude() {
		return nil
	}
	sym, err := ctx.Provider.Resolve(shape)
	if err != nil {
		return err
	}
	key, err := resolveMember(ctx, shape, "key")
	if err != nil {
		return err
	}
	value, err := resolveMember(ctx, shape, "value")
	if err != nil {
		return err
	}

	blockErr := schemaBlock(w, ctx, shape, func() {
		w.InState(func() {
			w.PutContext("shape", sym)
			w.PutContext("key", key)
			w.PutContext("value", value)
			w.Write("map ${shape:I} {")
			w.Write("    key: ${key:I}")
			w.Write("    value: ${value:I}")
			w.Write("}")
		})
	})
	if blockErr != nil {
		return blockErr
	}
	w.Write("")
	return w.Err()
}

func resolveMember(ctx Context, shape *model.Shape, name string) (*symbol.Symbol, error) {
	member := shape.Member(name)
	if member == nil {
		return nil, errors.WrapUnresolved(shape.ID.WithMember(name).String(), shape.ID.String())
	}
	return ctx.Provider.Resolve(member)
}
