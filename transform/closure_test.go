package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
)

func structure(id string, members ...*model.Shape) *model.Shape {
	return &model.Shape{ID: model.MustShapeID(id), Kind: model.KindStructure, Members: members}
}

func member(owner, name, target string) *model.Shape {
	return &model.Shape{
		ID:     model.MustShapeID(owner).WithMember(name),
		Kind:   model.KindMember,
		Target: model.MustShapeID(target),
	}
}

func ids(shapes []*model.Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.ID.String()
	}
	return out
}

func TestClosureRemovesNestedShapes(t *testing.T) {
	// A contains B; B contains nothing else: only A is top level
	m := model.NewModel(
		structure("test#A", member("test#A", "b", "test#B")),
		structure("test#B", member("test#B", "s", "smithy.api#String")),
	)
	closure, err := Closure(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"test#A"}, ids(closure))
}

func TestClosureKeepsIndependentShapes(t *testing.T) {
	m := model.NewModel(
		structure("test#A", member("test#A", "s", "smithy.api#String")),
		structure("test#B", member("test#B", "i", "smithy.api#Integer")),
	)
	closure, err := Closure(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"test#A", "test#B"}, ids(closure))
}

func TestClosureToleratesCycles(t *testing.T) {
	// A and B reference each other and C references A: the walk must
	// terminate on the cycle, and both cycle members count as nested
	m := model.NewModel(
		structure("test#A", member("test#A", "b", "test#B")),
		structure("test#B", member("test#B", "a", "test#A")),
		structure("test#C",
			member("test#C", "a", "test#A"),
			member("test#C", "s", "smithy.api#String"),
		),
	)
	closure, err := Closure(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"test#C"}, ids(closure))
}

func TestClosureSelfReference(t *testing.T) {
	// recursive shape stays top level; reaching yourself is not nesting
	m := model.NewModel(
		structure("test#Node", member("test#Node", "next", "test#Node")),
	)
	closure, err := Closure(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"test#Node"}, ids(closure))
}

func TestClosureEmptyModel(t *testing.T) {
	_, err := Closure(model.NewModel())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyClosure)
}

func TestClosureDeterministic(t *testing.T) {
	build := func() *model.Model {
		return model.NewModel(
			structure("test#Z", member("test#Z", "s", "smithy.api#String")),
			structure("test#A", member("test#A", "s", "smithy.api#String")),
			structure("test#M", member("test#M", "s", "smithy.api#String")),
		)
	}
	first, err := Closure(build())
	require.NoError(t, err)
	for range 10 {
		again, err := Closure(build())
		require.NoError(t, err)
		assert.Equal(t, ids(first), ids(again))
	}
	assert.Equal(t, []string{"test#A", "test#M", "test#Z"}, ids(first))
}

func TestSyntheticServiceWrapsAggregates(t *testing.T) {
	m := model.NewModel(
		structure("test#Person", member("test#Person", "name", "smithy.api#String")),
	)
	out, err := SyntheticService(m)
	require.NoError(t, err)

	service := out.Shape(ServiceID)
	require.NotNil(t, service)
	require.Len(t, service.Operations, 1)
	assert.Equal(t, "smithy.synthetic#PersonOperation", service.Operations[0].String())

	op := out.Shape(service.Operations[0])
	require.NotNil(t, op)
	assert.Equal(t, "smithy.synthetic#PersonInput", op.Input.String())
	assert.Equal(t, "smithy.synthetic#PersonOutput", op.Output.String())

	input := out.Shape(op.Input)
	require.NotNil(t, input)
	require.Len(t, input.Members, 1)
	assert.Equal(t, WrapperMember, input.Members[0].MemberName())
	assert.Equal(t, "test#Person", input.Members[0].Target.String())
}

func TestSyntheticServicePassesOperationsThrough(t *testing.T) {
	op := &model.Shape{
		ID:     model.MustShapeID("test#GetThing"),
		Kind:   model.KindOperation,
		Input:  model.MustShapeID("test#In"),
		Output: model.MustShapeID("test#Out"),
	}
	m := model.NewModel(
		op,
		structure("test#In", member("test#In", "s", "smithy.api#String")),
		structure("test#Out", member("test#Out", "s", "smithy.api#String")),
	)
	out, err := SyntheticService(m)
	require.NoError(t, err)

	service := out.Shape(ServiceID)
	require.NotNil(t, service)
	assert.Equal(t, []model.ShapeID{op.ID}, service.Operations)
	// the operation's own closure is nested, so nothing else got wrapped
	assert.Nil(t, out.Shape(model.MustShapeID("smithy.synthetic#InOperation")))
}

func TestSyntheticServiceTracksErrorShapes(t *testing.T) {
	fault := structure("test#Fault", member("test#Fault", "msg", "smithy.api#String"))
	fault.Traits = []model.Annotation{{ID: model.TraitError, Value: model.StringValue("client")}}
	m := model.NewModel(fault)

	out, err := SyntheticService(m)
	require.NoError(t, err)
	op := out.Shape(model.MustShapeID("smithy.synthetic#FaultOperation"))
	require.NotNil(t, op)
	assert.Equal(t, []model.ShapeID{fault.ID}, op.Errors)
}

func TestSyntheticServiceEmptyClosure(t *testing.T) {
	_, err := SyntheticService(model.NewModel())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyClosure)
}

func TestSyntheticServiceDeterministicIDs(t *testing.T) {
	build := func() *model.Model {
		return model.NewModel(
			structure("test#B", member("test#B", "s", "smithy.api#String")),
			structure("test#A", member("test#A", "s", "smithy.api#String")),
		)
	}
	first, err := SyntheticService(build())
	require.NoError(t, err)
	second, err := SyntheticService(build())
	require.NoError(t, err)
	assert.Equal(t, ids(first.Shapes()), ids(second.Shapes()))
}
