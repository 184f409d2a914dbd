package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/writer"
)

type mapTable map[model.ShapeID]*symbol.Symbol

func (t mapTable) TraitSymbol(id model.ShapeID) (*symbol.Symbol, bool) {
	sym, ok := t[id]
	return sym, ok
}

func render(t *testing.T, init Initializer, m Mapping, a *model.Annotation) string {
	t.Helper()
	w := writer.New("test.rs")
	require.NoError(t, init.Write(w, m, a))
	require.NoError(t, w.Err())
	return w.String()
}

func TestLengthInitializer(t *testing.T) {
	tests := []struct {
		name  string
		value *model.Value
		want  string
	}{
		{
			"both bounds",
			model.ObjectValue(
				model.Entry("min", model.IntValue(1)),
				model.Entry("max", model.IntValue(4)),
			),
			"Length::builder().min(1).max(4).build()\n",
		},
		{
			"min only",
			model.ObjectValue(model.Entry("min", model.IntValue(0))),
			"Length::builder().min(0).build()\n",
		},
		{
			"max only",
			model.ObjectValue(model.Entry("max", model.IntValue(10))),
			"Length::builder().max(10).build()\n",
		},
		{
			"no bounds",
			model.ObjectValue(),
			"Length::builder().build()\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Annotation{ID: model.TraitLength, Value: tt.value}
			assert.Equal(t, tt.want, render(t, Length{}, mapTable{}, a))
		})
	}
}

func TestLengthRecordsImport(t *testing.T) {
	a := &model.Annotation{ID: model.TraitLength, Value: model.ObjectValue(
		model.Entry("min", model.IntValue(1)),
	)}
	w := writer.New("test.rs")
	require.NoError(t, Length{}.Write(w, mapTable{}, a))
	assert.Equal(t, "use smithy4rs_core::prelude::Length;\n", w.Imports().String())
}

func TestRangeInitializerQuotesBounds(t *testing.T) {
	a := &model.Annotation{ID: model.TraitRange, Value: model.ObjectValue(
		model.Entry("min", model.IntValue(1)),
		model.Entry("max", model.FloatValue(4.5)),
	)}
	got := render(t, Range{}, mapTable{}, a)
	assert.Equal(t, "Range::builder().min(\"1\").max(\"4.5\").build()\n", got)
}

func TestStringPayloadInitializer(t *testing.T) {
	id := model.MustShapeID("smithy.api#jsonName")
	m := mapTable{id: symbol.PreludeTrait("JsonName")}
	a := &model.Annotation{ID: id, Value: model.StringValue("renamed")}

	require.True(t, (StringPayload{}).Matches(m, a))
	assert.Equal(t, "JsonName::new(\"renamed\")\n", render(t, StringPayload{}, m, a))
}

func TestStringPayloadRequiresMapping(t *testing.T) {
	a := &model.Annotation{ID: model.MustShapeID("custom#str"), Value: model.StringValue("v")}
	assert.False(t, (StringPayload{}).Matches(mapTable{}, a))
}

func TestMarkerInitializer(t *testing.T) {
	id := model.MustShapeID("smithy.api#sensitive")
	m := mapTable{id: symbol.PreludeTrait("Sensitive")}
	a := &model.Annotation{ID: id}

	require.True(t, (Marker{}).Matches(m, a))
	assert.Equal(t, "Sensitive\n", render(t, Marker{}, m, a))
}

func TestMarkerRejectsValuedAnnotation(t *testing.T) {
	id := model.MustShapeID("smithy.api#sensitive")
	m := mapTable{id: symbol.PreludeTrait("Sensitive")}
	a := &model.Annotation{ID: id, Value: model.StringValue("x")}
	assert.False(t, (Marker{}).Matches(m, a))
}

func TestGenericInitializer(t *testing.T) {
	tests := []struct {
		name  string
		value *model.Value
		want  string
	}{
		{
			"string value",
			model.StringValue("hello"),
			"DynamicTrait::from(\"custom#myTrait\", \"hello\")\n",
		},
		{
			"array value",
			model.ArrayValue(model.IntValue(1), model.IntValue(2)),
			"DynamicTrait::from(\"custom#myTrait\", vec![1, 2])\n",
		},
		{
			"empty array",
			model.ArrayValue(),
			"DynamicTrait::from(\"custom#myTrait\", Vec::new())\n",
		},
		{
			"object value",
			model.ObjectValue(model.Entry("a", model.IntValue(1))),
			"DynamicTrait::from(\"custom#myTrait\", doc_map![\"a\" => 1])\n",
		},
		{
			"no value",
			nil,
			"DynamicTrait::from(\"custom#myTrait\", doc_map![])\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Annotation{ID: model.MustShapeID("custom#myTrait"), Value: tt.value}
			assert.Equal(t, tt.want, render(t, Generic{}, mapTable{}, a))
		})
	}
}

func TestGenericNullValueUnsupported(t *testing.T) {
	a := &model.Annotation{ID: model.MustShapeID("custom#myTrait"), Value: model.NullValue()}
	w := writer.New("test.rs")
	err := Generic{}.Write(w, mapTable{}, a)
	if err == nil {
		err = w.Err()
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedValue)
}

func TestGenericRecordsImports(t *testing.T) {
	a := &model.Annotation{ID: model.MustShapeID("custom#myTrait"), Value: model.ObjectValue(
		model.Entry("a", model.IntValue(1)),
	)}
	w := writer.New("test.rs")
	require.NoError(t, Generic{}.Write(w, mapTable{}, a))
	got := w.Imports().String()
	assert.Contains(t, got, "DynamicTrait")
	assert.Contains(t, got, "doc_map")
}

func TestRegistryFirstMatchWins(t *testing.T) {
	r := NewRegistry()
	r.Register(Length{}, Range{}, StringPayload{}, Marker{}, Generic{})

	a := &model.Annotation{ID: model.TraitLength, Value: model.ObjectValue()}
	init, err := r.For(mapTable{}, model.MustShapeID("test#S"), a)
	require.NoError(t, err)
	assert.IsType(t, Length{}, init)

	// anything unknown falls through to the catch-all
	custom := &model.Annotation{ID: model.MustShapeID("custom#x"), Value: model.BoolValue(true)}
	init, err = r.For(mapTable{}, model.MustShapeID("test#S"), custom)
	require.NoError(t, err)
	assert.IsType(t, Generic{}, init)
}

func TestRegistryUnmatched(t *testing.T) {
	r := NewRegistry()
	r.Register(Length{})

	a := &model.Annotation{ID: model.MustShapeID("custom#x")}
	_, err := r.For(mapTable{}, model.MustShapeID("test#S"), a)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnmatchedAnnotation)
	assert.Contains(t, err.Error(), "test#S")
}
