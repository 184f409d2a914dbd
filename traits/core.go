package traits

import (
	"strconv"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/literal"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/writer"
)

// Length renders the length constraint through its builder, keeping
// absent bounds out of the expression entirely.
type Length struct{}

func (Length) Matches(_ Mapping, a *model.Annotation) bool {
	return a.ID == model.TraitLength
}

func (Length) Write(w *writer.Writer, _ Mapping, a *model.Annotation) error {
	w.InState(func() {
		w.PutContext("length", symbol.PreludeTrait("Length"))
		putBound(w, "min", a.Value)
		putBound(w, "max", a.Value)
		w.WriteInline("${length:T}::builder()${?min}.min(${min:L})${/min}${?max}.max(${max:L})${/max}.build()")
	})
	return w.Err()
}

// Range renders the range constraint. Bounds are arbitrary-precision
// decimals on the Rust side, so they pass through as quoted strings.
type Range struct{}

func (Range) Matches(_ Mapping, a *model.Annotation) bool {
	return a.ID == model.TraitRange
}

func (Range) Write(w *writer.Writer, _ Mapping, a *model.Annotation) error {
	w.InState(func() {
		w.PutContext("range", symbol.PreludeTrait("Range"))
		putBound(w, "min", a.Value)
		putBound(w, "max", a.Value)
		w.WriteInline("${range:T}::builder()${?min}.min(${min:S})${/min}${?max}.max(${max:S})${/max}.build()")
	})
	return w.Err()
}

// StringPayload renders single-string annotations as T::new("value").
// It only claims annotations with a registered type mapping.
type StringPayload struct{}

func (StringPayload) Matches(m Mapping, a *model.Annotation) bool {
	if _, ok := m.TraitSymbol(a.ID); !ok {
		return false
	}
	_, ok := a.StringPayload()
	return ok
}

func (StringPayload) Write(w *writer.Writer, m Mapping, a *model.Annotation) error {
	sym, ok := m.TraitSymbol(a.ID)
	if !ok {
		return errors.WrapUnmatched(a.ID.String(), "")
	}
	payload, _ := a.StringPayload()
	w.WriteInline("$T::new($S)", sym, payload)
	return w.Err()
}

// Marker renders payload-free annotations as the bare type; construction
// needs no arguments. It only claims annotations with a registered type
// mapping.
type Marker struct{}

func (Marker) Matches(m Mapping, a *model.Annotation) bool {
	if _, ok := m.TraitSymbol(a.ID); !ok {
		return false
	}
	return a.IsMarker()
}

func (Marker) Write(w *writer.Writer, m Mapping, a *model.Annotation) error {
	sym, ok := m.TraitSymbol(a.ID)
	if !ok {
		return errors.WrapUnmatched(a.ID.String(), "")
	}
	w.WriteInline("$T", sym)
	return w.Err()
}

// Generic is the catch-all: any annotation, mapped or not, renders as a
// DynamicTrait carrying its ID and compiled metadata literal. Register it
// last.
type Generic struct{}

func (Generic) Matches(Mapping, *model.Annotation) bool {
	return true
}

func (Generic) Write(w *writer.Writer, _ Mapping, a *model.Annotation) error {
	w.InState(func() {
		w.PutContext("id", a.ID)
		w.PutContext("dynamicTrait", symbol.DynamicTrait)
		w.PutContext("node", nodeLiteral{a.Value})
		w.WriteInline("${dynamicTrait:T}::from(${id:S}, ${node:C})")
	})
	return w.Err()
}

// nodeLiteral emits the compiled metadata literal for the catch-all. A
// marker annotation carries no value and compiles to an empty map.
type nodeLiteral struct {
	value *model.Value
}

func (n nodeLiteral) Render(w *writer.Writer) error {
	if n.value == nil {
		w.Imports().Record(symbol.DocMapMacro)
		w.WriteInlineRaw(literal.DocMapMacro + "[]")
		return nil
	}
	compiled, err := literal.Compile(n.value)
	if err != nil {
		return err
	}
	if literal.HasObject(n.value) {
		w.Imports().Record(symbol.DocMapMacro)
	}
	w.WriteInlineRaw(compiled)
	return nil
}

// putBound binds a numeric bound as a formatted token only when present,
// so the conditional drops absent bounds but keeps explicit zeros.
func putBound(w *writer.Writer, field string, v *model.Value) {
	if v == nil {
		return
	}
	bound := v.Field(field)
	if bound == nil || bound.Kind != model.NumberKind {
		return
	}
	if bound.IsFloat {
		w.PutContext(field, strconv.FormatFloat(bound.FloatVal, 'g', -1, 64))
	} else {
		w.PutContext(field, strconv.FormatInt(bound.IntVal, 10))
	}
}
