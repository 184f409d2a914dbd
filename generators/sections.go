// Package generators emits the per-kind Rust declarations: schema macro
// blocks for every shape, plus derive-annotated type declarations for
// structures, unions and enums.
package generators

import (
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/writer"
)

// SchemaSection tags the schema definition inside a smithy! block.
type SchemaSection struct {
	Shape *model.Shape
}

func (*SchemaSection) SectionName() string    { return "schema" }
func (s *SchemaSection) Target() *model.Shape { return s.Shape }

// ShapeSection tags a generated Rust type declaration.
type ShapeSection struct {
	Shape *model.Shape
}

func (*ShapeSection) SectionName() string    { return "shape" }
func (s *ShapeSection) Target() *model.Shape { return s.Shape }

// MemberSection tags one field or variant inside a type declaration.
type MemberSection struct {
	Shape *model.Shape
}

func (*MemberSection) SectionName() string    { return "member" }
func (s *MemberSection) Target() *model.Shape { return s.Shape }

// DocstringSection is injected at the top of every documented section;
// documentation interceptors compose its content and a formatter renders
// the result as /// lines.
type DocstringSection struct {
	Shape *model.Shape

	// Parent is the section the docstring is injected into.
	Parent writer.Section
}

func (*DocstringSection) SectionName() string    { return "docstring" }
func (s *DocstringSection) Target() *model.Shape { return s.Shape }
