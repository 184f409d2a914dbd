package model

import (
	"sort"

	"github.com/teranos/shapegen/errors"
)

// Model is the validated, cycle-tolerant shape graph handed to the engine.
// It is immutable once built.
type Model struct {
	shapes map[ShapeID]*Shape
}

// NewModel builds a model from a shape set. Prelude shapes are added
// automatically so member targets like smithy.api#String always resolve.
func NewModel(shapes ...*Shape) *Model {
	m := &Model{shapes: make(map[ShapeID]*Shape, len(shapes)+len(preludeShapes))}
	for _, s := range preludeShapes {
		m.shapes[s.ID] = s
	}
	for _, s := range shapes {
		m.shapes[s.ID] = s
		for _, member := range s.Members {
			m.shapes[member.ID] = member
		}
	}
	return m
}

// Shape returns the shape with the given ID, or nil.
func (m *Model) Shape(id ShapeID) *Shape {
	return m.shapes[id]
}

// ExpectShape returns the shape or an unresolved-reference error naming the
// owner of the dangling reference.
func (m *Model) ExpectShape(id ShapeID, owner ShapeID) (*Shape, error) {
	if s := m.shapes[id]; s != nil {
		return s, nil
	}
	return nil, errors.WrapUnresolved(id.String(), owner.String())
}

// Shapes returns all shapes ordered by ID for deterministic iteration.
func (m *Model) Shapes() []*Shape {
	out := make([]*Shape, 0, len(m.shapes))
	for _, s := range m.shapes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Len returns the number of shapes, prelude included.
func (m *Model) Len() int {
	return len(m.shapes)
}

// With returns a new model containing this model's shapes plus extras.
// The receiver is unchanged; transforms build new models rather than
// mutating loaded ones.
func (m *Model) With(extra ...*Shape) *Model {
	out := &Model{shapes: make(map[ShapeID]*Shape, len(m.shapes)+len(extra))}
	for id, s := range m.shapes {
		out.shapes[id] = s
	}
	for _, s := range extra {
		out.shapes[s.ID] = s
		for _, member := range s.Members {
			out.shapes[member.ID] = member
		}
	}
	return out
}

// Target dereferences a member shape to its (transitively non-member)
// target. Non-member shapes return themselves. The hop count is bounded by
// the model size, guarding against malformed member-to-member cycles.
func (m *Model) Target(s *Shape) (*Shape, error) {
	current := s
	for hops := 0; current.Kind == KindMember; hops++ {
		if hops > len(m.shapes) {
			return nil, errors.AssertionFailedf("member resolution diverged at %s", s.ID)
		}
		next, err := m.ExpectShape(current.Target, current.ID)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// preludeShapes are the external built-in shapes every model can target.
var preludeShapes = buildPrelude()

func buildPrelude() []*Shape {
	kinds := map[string]Kind{
		"Blob":       KindBlob,
		"Boolean":    KindBoolean,
		"String":     KindString,
		"Byte":       KindByte,
		"Short":      KindShort,
		"Integer":    KindInteger,
		"Long":       KindLong,
		"Float":      KindFloat,
		"Double":     KindDouble,
		"BigInteger": KindBigInteger,
		"BigDecimal": KindBigDecimal,
		"Timestamp":  KindTimestamp,
		"Document":   KindDocument,
		"Unit":       KindStructure,
	}
	shapes := make([]*Shape, 0, len(kinds))
	for name, kind := range kinds {
		shapes = append(shapes, &Shape{
			ID:   ShapeID{Namespace: PreludeNamespace, Name: name},
			Kind: kind,
		})
	}
	sort.Slice(shapes, func(i, j int) bool { return shapes[i].ID.Name < shapes[j].ID.Name })
	return shapes
}
