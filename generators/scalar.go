package generators

import (
	"strings"

	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/writer"
)

// Scalar emits the schema-only block for one non-prelude simple shape,
// e.g. `smithy!("com.test#MyString": { string MY_STRING });`.
func Scalar(w *writer.Writer, ctx Context, shape *model.Shape) error {
	if shape.ID.IsSynthetic() || shape.ID.IsPrelude() || !shape.Kind.IsSimple() {
		return nil
	}
	sym, err := ctx.Provider.Resolve(shape)
	if err != nil {
		return err
	}

	blockErr := schemaBlock(w, ctx, shape, func() {
		w.InState(func() {
			w.PutContext("type", strings.ToLower(shape.Kind.String()))
			w.PutContext("shape", sym)
			w.Write("${type:L} ${shape:I}")
		})
	})
	if blockErr != nil {
		return blockErr
	}
	w.Write("")
	return w.Err()
}
