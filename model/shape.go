// Package model holds the immutable shape graph consumed by the generation
// engine: shape definitions, their members, and attached trait annotations.
//
// Shapes are constructed once by the loader and read-only afterwards.
// Cyclic graphs (struct self-reference through a member target) are legal;
// traversal code must guard with visited sets rather than recurse blindly.
package model

import (
	"strings"

	"github.com/teranos/shapegen/errors"
)

// Kind identifies the variety of a shape.
type Kind int

const (
	KindUnknown Kind = iota
	KindBlob
	KindBoolean
	KindString
	KindByte
	KindShort
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindBigInteger
	KindBigDecimal
	KindTimestamp
	KindDocument
	KindEnum
	KindIntEnum
	KindList
	KindMap
	KindStructure
	KindUnion
	KindMember
	KindOperation
	KindResource
	KindService
)

var kindNames = map[Kind]string{
	KindBlob:       "blob",
	KindBoolean:    "boolean",
	KindString:     "string",
	KindByte:       "byte",
	KindShort:      "short",
	KindInteger:    "integer",
	KindLong:       "long",
	KindFloat:      "float",
	KindDouble:     "double",
	KindBigInteger: "bigInteger",
	KindBigDecimal: "bigDecimal",
	KindTimestamp:  "timestamp",
	KindDocument:   "document",
	KindEnum:       "enum",
	KindIntEnum:    "intEnum",
	KindList:       "list",
	KindMap:        "map",
	KindStructure:  "structure",
	KindUnion:      "union",
	KindMember:     "member",
	KindOperation:  "operation",
	KindResource:   "resource",
	KindService:    "service",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindFromString parses the type name used in the model AST form.
func KindFromString(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindUnknown
}

// IsSimple reports whether the kind is a scalar (non-aggregate,
// non-service) shape.
func (k Kind) IsSimple() bool {
	switch k {
	case KindBlob, KindBoolean, KindString, KindByte, KindShort, KindInteger,
		KindLong, KindFloat, KindDouble, KindBigInteger, KindBigDecimal,
		KindTimestamp, KindDocument:
		return true
	}
	return false
}

// IsGenerated reports whether shapes of this kind produce a Rust type
// declaration of their own (as opposed to schema-only output).
func (k Kind) IsGenerated() bool {
	switch k {
	case KindStructure, KindUnion, KindEnum, KindIntEnum:
		return true
	}
	return false
}

// ShapeID is the stable identifier of a shape: "ns#Name" or
// "ns#Name$member" for members.
type ShapeID struct {
	Namespace string
	Name      string
	Member    string
}

// ParseShapeID parses "ns#Name" or "ns#Name$member".
func ParseShapeID(s string) (ShapeID, error) {
	hash := strings.IndexByte(s, '#')
	if hash <= 0 || hash == len(s)-1 {
		return ShapeID{}, errors.Newf("invalid shape ID %q: expected ns#Name", s)
	}
	id := ShapeID{Namespace: s[:hash]}
	rest := s[hash+1:]
	if dollar := strings.IndexByte(rest, '$'); dollar >= 0 {
		id.Name = rest[:dollar]
		id.Member = rest[dollar+1:]
	} else {
		id.Name = rest
	}
	if id.Name == "" {
		return ShapeID{}, errors.Newf("invalid shape ID %q: empty name", s)
	}
	return id, nil
}

// MustShapeID parses an ID known to be valid at compile time.
func MustShapeID(s string) ShapeID {
	id, err := ParseShapeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ShapeID) String() string {
	if id.Member != "" {
		return id.Namespace + "#" + id.Name + "$" + id.Member
	}
	return id.Namespace + "#" + id.Name
}

// WithMember returns the ID of a member of this shape.
func (id ShapeID) WithMember(name string) ShapeID {
	return ShapeID{Namespace: id.Namespace, Name: id.Name, Member: name}
}

// WithoutMember returns the containing shape's ID.
func (id ShapeID) WithoutMember() ShapeID {
	return ShapeID{Namespace: id.Namespace, Name: id.Name}
}

// IsZero reports whether the ID is unset.
func (id ShapeID) IsZero() bool {
	return id.Namespace == "" && id.Name == ""
}

// PreludeNamespace is the namespace of external built-in shapes. Shapes in
// this namespace are never candidates for generation and their schema
// constants live in the runtime prelude.
const PreludeNamespace = "smithy.api"

// SyntheticNamespace holds shapes fabricated by the closure transform.
const SyntheticNamespace = "smithy.synthetic"

// IsPrelude reports whether the ID names an external built-in shape.
func (id ShapeID) IsPrelude() bool {
	return id.Namespace == PreludeNamespace
}

// IsSynthetic reports whether the ID was fabricated by a transform.
func (id ShapeID) IsSynthetic() bool {
	return id.Namespace == SyntheticNamespace
}

// Shape is one type definition in the source graph.
//
// Aggregate shapes (structure, union, enum, intEnum, list, map, operation)
// carry an ordered member list; each member is itself a Shape of KindMember
// whose Target references the member's type. List members are named
// "member"; map members "key" and "value".
type Shape struct {
	ID     ShapeID
	Kind   Kind
	Traits []Annotation

	// Members is the ordered member list of an aggregate shape.
	Members []*Shape

	// Target is the referenced shape ID; set only for KindMember.
	Target ShapeID

	// EnumValue carries the wire value of an enum or intEnum member.
	EnumValue *Value

	// Input/Output/Errors are set for KindOperation.
	Input  ShapeID
	Output ShapeID
	Errors []ShapeID

	// Operations is set for KindService.
	Operations []ShapeID
}

// MemberName returns the member's name within its container, or "".
func (s *Shape) MemberName() string {
	return s.ID.Member
}

// Member returns the named member shape, or nil.
func (s *Shape) Member(name string) *Shape {
	for _, m := range s.Members {
		if m.ID.Member == name {
			return m
		}
	}
	return nil
}

// Trait returns the annotation with the given ID, or nil.
func (s *Shape) Trait(id ShapeID) *Annotation {
	for i := range s.Traits {
		if s.Traits[i].ID == id {
			return &s.Traits[i]
		}
	}
	return nil
}

// HasTrait reports whether the shape carries the given annotation.
func (s *Shape) HasTrait(id ShapeID) bool {
	return s.Trait(id) != nil
}
