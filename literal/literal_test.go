package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
)

func TestCompileScalars(t *testing.T) {
	tests := []struct {
		name  string
		value *model.Value
		want  string
	}{
		{"bool true", model.BoolValue(true), "true"},
		{"bool false", model.BoolValue(false), "false"},
		{"int", model.IntValue(42), "42"},
		{"negative int", model.IntValue(-7), "-7"},
		{"float", model.FloatValue(2.5), "2.5"},
		{"whole float keeps float token", model.FloatValue(3), "3.0"},
		{"string", model.StringValue("hello"), `"hello"`},
		{"string escapes", model.StringValue("a\"b\\c\nd"), `"a\"b\\c\nd"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileArray(t *testing.T) {
	got, err := Compile(model.ArrayValue(model.IntValue(1), model.StringValue("a")))
	require.NoError(t, err)
	assert.Equal(t, `vec![1, "a"]`, got)
}

func TestCompileEmptyArray(t *testing.T) {
	// The designated empty-sequence literal, not an empty constructor call
	got, err := Compile(model.ArrayValue())
	require.NoError(t, err)
	assert.Equal(t, "Vec::new()", got)
}

func TestCompileObjectPreservesOrder(t *testing.T) {
	obj := model.ObjectValue(
		model.Entry("a", model.IntValue(1)),
		model.Entry("b", model.IntValue(2)),
	)
	got, err := Compile(obj)
	require.NoError(t, err)
	assert.Equal(t, `doc_map!["a" => 1, "b" => 2]`, got)
}

func TestCompileNested(t *testing.T) {
	obj := model.ObjectValue(
		model.Entry("tags", model.ArrayValue(model.StringValue("x"))),
		model.Entry("meta", model.ObjectValue(model.Entry("deep", model.BoolValue(true)))),
	)
	got, err := Compile(obj)
	require.NoError(t, err)
	assert.Equal(t, `doc_map!["tags" => vec!["x"], "meta" => doc_map!["deep" => true]]`, got)
}

func TestCompileNullUnsupported(t *testing.T) {
	_, err := Compile(model.NullValue())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValue))

	// Null nested inside an aggregate fails the same way
	_, err = Compile(model.ArrayValue(model.IntValue(1), model.NullValue()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValue))
}

func TestCompileIdempotent(t *testing.T) {
	v := model.ObjectValue(model.Entry("min", model.IntValue(1)), model.Entry("max", model.IntValue(4)))
	first, err := Compile(v)
	require.NoError(t, err)
	second, err := Compile(v)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
