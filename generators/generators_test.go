package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/traits"
	"github.com/teranos/shapegen/writer"
)

type traitTable map[model.ShapeID]*symbol.Symbol

func (t traitTable) TraitSymbol(id model.ShapeID) (*symbol.Symbol, bool) {
	sym, ok := t[id]
	return sym, ok
}

func newContext(shapes ...*model.Shape) Context {
	m := model.NewModel(shapes...)
	registry := traits.NewRegistry()
	registry.Register(traits.Length{}, traits.Range{}, traits.StringPayload{}, traits.Marker{}, traits.Generic{})
	return Context{
		Model:    m,
		Provider: symbol.NewProvider(m),
		Registry: registry,
		Mapping: traitTable{
			model.TraitRequired: symbol.PreludeTrait("Required"),
			model.TraitPattern:  symbol.PreludeTrait("Pattern"),
		},
	}
}

func member(owner, name, target string, annotations ...model.Annotation) *model.Shape {
	return &model.Shape{
		ID:     model.MustShapeID(owner).WithMember(name),
		Kind:   model.KindMember,
		Target: model.MustShapeID(target),
		Traits: annotations,
	}
}

func render(t *testing.T, gen func(*writer.Writer, Context, *model.Shape) error, shape *model.Shape, ctx Context) string {
	t.Helper()
	w := writer.New("test.rs")
	require.NoError(t, gen(w, ctx, shape))
	out := w.String()
	require.NoError(t, w.Err())
	return out
}

func TestStructureGolden(t *testing.T) {
	shape := &model.Shape{
		ID:   model.MustShapeID("com.example#Person"),
		Kind: model.KindStructure,
	}
	shape.Members = []*model.Shape{
		member("com.example#Person", "name", "smithy.api#String", model.Annotation{
			ID: model.TraitRequired, Value: model.NullValue(),
		}),
		member("com.example#Person", "age", "smithy.api#Integer"),
	}
	ctx := newContext(shape)

	assert.Equal(t, `smithy!("com.example#Person": {
    structure PERSON_SCHEMA {
        @Required;
        NAME: STRING = "name"
        AGE: INTEGER = "age"
    }
});

#[derive(SmithyShape, PartialEq, Clone)]
#[smithy_schema(PERSON_SCHEMA)]
pub struct Person {
    #[smithy_schema(NAME)]
    pub name: String,
    #[smithy_schema(AGE)]
    pub age: i32,
}
`, render(t, Structure, shape, ctx))
}

func TestStructureEmpty(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Empty"), Kind: model.KindStructure}
	ctx := newContext(shape)

	assert.Equal(t, `smithy!("com.example#Empty": {
    structure EMPTY_SCHEMA {
    }
});

#[derive(SmithyShape, PartialEq, Clone)]
#[smithy_schema(EMPTY_SCHEMA)]
pub struct Empty {
}
`, render(t, Structure, shape, ctx))
}

func TestStructureTraitLineOrder(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Tagged"), Kind: model.KindStructure}
	shape.Members = []*model.Shape{
		member("com.example#Tagged", "tag", "smithy.api#String",
			model.Annotation{ID: model.TraitPattern, Value: model.StringValue("^a+$")},
			model.Annotation{
				ID: model.TraitLength,
				Value: model.ObjectValue(
					model.Entry("min", model.IntValue(1)),
				),
			},
		),
	}
	ctx := newContext(shape)

	assert.Contains(t, render(t, Structure, shape, ctx),
		`        @Pattern::new("^a+$");
        @Length::builder().min(1).build();
        TAG: STRING = "tag"`)
}

func TestStructureSkipsDocumentationTraits(t *testing.T) {
	shape := &model.Shape{
		ID:   model.MustShapeID("com.example#Quiet"),
		Kind: model.KindStructure,
		Traits: []model.Annotation{
			{ID: model.TraitDocumentation, Value: model.StringValue("ignored here")},
			{ID: model.TraitDeprecated, Value: model.ObjectValue()},
		},
	}
	ctx := newContext(shape)

	out := render(t, Structure, shape, ctx)
	assert.NotContains(t, out, "@")
	assert.NotContains(t, out, "ignored here")
}

func TestStructureSkipsSyntheticAndPrelude(t *testing.T) {
	ctx := newContext()
	synthetic := &model.Shape{ID: model.MustShapeID("smithy.synthetic#Wrapper"), Kind: model.KindStructure}
	assert.Empty(t, render(t, Structure, synthetic, ctx))
}

func TestUnionGolden(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Choice"), Kind: model.KindUnion}
	shape.Members = []*model.Shape{
		member("com.example#Choice", "variantA", "smithy.api#String"),
		member("com.example#Choice", "variantB", "smithy.api#Integer"),
	}
	ctx := newContext(shape)

	assert.Equal(t, `smithy!("com.example#Choice": {
    union CHOICE_SCHEMA {
        VARIANT_A: STRING = "variantA"
        VARIANT_B: INTEGER = "variantB"
    }
});

#[smithy_union]
#[derive(SmithyShape)]
#[smithy_schema(CHOICE_SCHEMA)]
pub enum Choice {
    #[smithy_schema(VARIANT_A)]
    Varianta(String),
    #[smithy_schema(VARIANT_B)]
    Variantb(i32),
}
`, render(t, Union, shape, ctx))
}

func TestEnumGolden(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Suit"), Kind: model.KindEnum}
	clubs := member("com.example#Suit", "CLUBS", "smithy.api#String")
	clubs.EnumValue = model.StringValue("clubs")
	hearts := member("com.example#Suit", "HEARTS", "smithy.api#String")
	hearts.EnumValue = model.StringValue("hearts")
	shape.Members = []*model.Shape{clubs, hearts}
	ctx := newContext(shape)

	assert.Equal(t, `smithy!("com.example#Suit": {
    enum SUIT_SCHEMA {
        Clubs = "clubs"
        Hearts = "hearts"
    }
});

#[smithy_enum]
#[derive(SmithyShape)]
#[smithy_schema(SUIT_SCHEMA)]
pub enum Suit {
    Clubs = "clubs",
    Hearts = "hearts",
}
`, render(t, Enum, shape, ctx))
}

func TestIntEnumGolden(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Code"), Kind: model.KindIntEnum}
	ok := member("com.example#Code", "OK", "smithy.api#Integer")
	ok.EnumValue = model.IntValue(0)
	failed := member("com.example#Code", "FAILED", "smithy.api#Integer")
	failed.EnumValue = model.IntValue(1)
	shape.Members = []*model.Shape{ok, failed}
	ctx := newContext(shape)

	out := render(t, Enum, shape, ctx)
	assert.Contains(t, out, `enum CODE_SCHEMA {
        Ok = 0
        Failed = 1
    }`)
	assert.Contains(t, out, "Ok = 0,\n    Failed = 1,")
}

func TestEnumMissingValueFails(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Bad"), Kind: model.KindEnum}
	shape.Members = []*model.Shape{member("com.example#Bad", "X", "smithy.api#String")}
	ctx := newContext(shape)

	w := writer.New("test.rs")
	err := Enum(w, ctx, shape)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "com.example#Bad$X")
}

func TestListGolden(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Names"), Kind: model.KindList}
	shape.Members = []*model.Shape{member("com.example#Names", "member", "smithy.api#String")}
	ctx := newContext(shape)

	// Lists are not generated types, so the schema name has no suffix
	assert.Equal(t, `smithy!("com.example#Names": {
    list NAMES {
        member: STRING
    }
});
`, render(t, List, shape, ctx))
}

func TestMapGolden(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Ages"), Kind: model.KindMap}
	shape.Members = []*model.Shape{
		member("com.example#Ages", "key", "smithy.api#String"),
		member("com.example#Ages", "value", "smithy.api#Integer"),
	}
	ctx := newContext(shape)

	assert.Equal(t, `smithy!("com.example#Ages": {
    map AGES {
        key: STRING
        value: INTEGER
    }
});
`, render(t, Map, shape, ctx))
}

func TestMapMissingMemberFails(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Broken"), Kind: model.KindMap}
	shape.Members = []*model.Shape{member("com.example#Broken", "key", "smithy.api#String")}
	ctx := newContext(shape)

	w := writer.New("test.rs")
	err := Map(w, ctx, shape)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "com.example#Broken$value")
}

func TestScalarGolden(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#MyString"), Kind: model.KindString}
	ctx := newContext(shape)

	assert.Equal(t, `smithy!("com.example#MyString": {
    string MY_STRING
});
`, render(t, Scalar, shape, ctx))
}

func TestStructureImports(t *testing.T) {
	shape := &model.Shape{ID: model.MustShapeID("com.example#Person"), Kind: model.KindStructure}
	shape.Members = []*model.Shape{member("com.example#Person", "name", "smithy.api#String")}
	ctx := newContext(shape)

	w := writer.New("test.rs")
	require.NoError(t, Structure(w, ctx, shape))
	assert.Equal(t, `use smithy4rs_core::{
    derive::SmithyShape,
    prelude::STRING,
    smithy,
};
`, w.Imports().String())
}
