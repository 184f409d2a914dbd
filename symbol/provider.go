package symbol

import (
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/util"
)

// CoreNamespace is the Rust runtime crate generated code depends on.
const CoreNamespace = "smithy4rs_core"

// PreludeNamespace holds the schema constants of prelude shapes.
const PreludeNamespace = CoreNamespace + "::prelude"

// LocalNamespace marks schema constants declared in the generated file
// itself; it never produces an import.
const LocalNamespace = "local"

// GeneratedFile is the declaration file all generated symbols live in.
const GeneratedFile = "smithy-generated.rs"

// SchemaSuffix is appended to the schema constant of generated types.
const SchemaSuffix = "_SCHEMA"

// Shared runtime symbols referenced by generators.
var (
	SmithyMacro  = Macro("smithy", CoreNamespace)
	DocMapMacro  = Macro("doc_map", CoreNamespace)
	UnionMacro   = New("smithy_union", CoreNamespace+"::derive")
	EnumMacro    = New("smithy_enum", CoreNamespace+"::derive")
	ShapeDerive  = New("SmithyShape", CoreNamespace+"::derive")
	DynamicTrait = New("DynamicTrait", CoreNamespace+"::schema")
)

// PreludeTrait returns the runtime symbol of a prelude trait struct
// ("Length" -> smithy4rs_core::prelude::Length).
func PreludeTrait(name string) *Symbol {
	return New(name, PreludeNamespace)
}

// Provider resolves shapes to symbols. It is pure and stateless beyond the
// model reference, so one instance is safely shared across workers.
type Provider struct {
	model *model.Model
}

// NewProvider builds a provider over a loaded model.
func NewProvider(m *model.Model) *Provider {
	return &Provider{model: m}
}

// Resolve maps a shape to its symbol. Resolution is total over all shape
// kinds, idempotent, and free of side effects; an unmapped kind is a
// configuration error, never a silent skip.
func (p *Provider) Resolve(shape *model.Shape) (*Symbol, error) {
	switch shape.Kind {
	case model.KindBlob:
		return p.builtin(shape, "ByteBuffer", CoreNamespace), nil
	case model.KindBoolean:
		return p.builtin(shape, "bool", "std"), nil
	case model.KindString:
		return p.builtin(shape, "String", "std"), nil
	case model.KindByte:
		return p.builtin(shape, "i8", "std"), nil
	case model.KindShort:
		return p.builtin(shape, "i16", "std"), nil
	case model.KindInteger:
		return p.builtin(shape, "i32", "std"), nil
	case model.KindLong:
		return p.builtin(shape, "i64", "std"), nil
	case model.KindFloat:
		return p.builtin(shape, "f32", "std"), nil
	case model.KindDouble:
		return p.builtin(shape, "f64", "std"), nil
	case model.KindBigInteger:
		return p.builtin(shape, "BigInt", CoreNamespace), nil
	case model.KindBigDecimal:
		return p.builtin(shape, "BigDecimal", CoreNamespace), nil
	case model.KindTimestamp:
		return p.builtin(shape, "Instant", CoreNamespace), nil
	case model.KindDocument:
		return p.builtin(shape, "Document", CoreNamespace), nil

	case model.KindList:
		member, err := p.resolveMemberTarget(shape, "member")
		if err != nil {
			return nil, err
		}
		return p.builtin(shape, "Vec", "std::vec").WithRefs(member), nil

	case model.KindMap:
		key, err := p.resolveMemberTarget(shape, "key")
		if err != nil {
			return nil, err
		}
		value, err := p.resolveMemberTarget(shape, "value")
		if err != nil {
			return nil, err
		}
		return p.builtin(shape, "IndexMap", CoreNamespace).WithRefs(key, value), nil

	case model.KindStructure, model.KindUnion, model.KindEnum, model.KindIntEnum:
		return &Symbol{Name: shape.ID.Name, Schema: SchemaSymbol(shape)}, nil

	case model.KindMember:
		target, err := p.model.Target(shape)
		if err != nil {
			return nil, err
		}
		return p.Resolve(target)

	case model.KindOperation, model.KindService, model.KindResource:
		// Schema-only shapes: no Rust type of their own
		return &Symbol{Name: shape.ID.Name, Namespace: LocalNamespace, Schema: SchemaSymbol(shape)}, nil
	}
	return nil, errors.AssertionFailedf("no symbol mapping configured for shape kind %s (%s)", shape.Kind, shape.ID)
}

// MemberName returns the Rust field name of a member.
func (p *Provider) MemberName(member *model.Shape) string {
	return util.ToSnakeCase(member.MemberName())
}

func (p *Provider) builtin(shape *model.Shape, name, namespace string) *Symbol {
	return &Symbol{Name: name, Namespace: namespace, Schema: SchemaSymbol(shape)}
}

func (p *Provider) resolveMemberTarget(shape *model.Shape, name string) (*Symbol, error) {
	member := shape.Member(name)
	if member == nil {
		return nil, errors.WrapUnresolved(shape.ID.WithMember(name).String(), shape.ID.String())
	}
	return p.Resolve(member)
}

// SchemaSymbol derives the schema constant symbol of a shape: the shape
// name in SCREAMING_SNAKE_CASE, suffixed _SCHEMA for generated types,
// living in the runtime prelude for prelude shapes and in the local file
// otherwise.
func SchemaSymbol(shape *model.Shape) *Symbol {
	name := util.ToScreamingSnakeCase(shape.ID.Name)
	if shape.Kind.IsGenerated() {
		name += SchemaSuffix
	}
	namespace := LocalNamespace
	if shape.ID.IsPrelude() {
		namespace = PreludeNamespace
	}
	return New(name, namespace)
}
