package integrations

import (
	"strings"

	"github.com/teranos/shapegen/generators"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
	"github.com/teranos/shapegen/traits"
	"github.com/teranos/shapegen/util"
	"github.com/teranos/shapegen/writer"
)

// docWidth is the column documentation lines wrap at.
const docWidth = 88

// Rustdoc renders shape documentation as /// docstrings: the injector
// opens a docstring section at every documented section, trait
// interceptors compose its content, and the formatter runs last to wrap
// the composed text into comment lines.
type Rustdoc struct{}

func (Rustdoc) Name() string { return "rustdoc" }

func (Rustdoc) Initializers() []traits.Initializer             { return nil }
func (Rustdoc) TraitSymbols() map[model.ShapeID]*symbol.Symbol { return nil }

// Interceptors returns the docstring chain. Order matters: content
// producers run before the schema-doc override and the formatter closes
// the chain.
func (Rustdoc) Interceptors() []writer.Interceptor {
	return []writer.Interceptor{
		docInjector{},
		documentationText{},
		sinceNote{},
		unstableWarning{},
		externalReferences{},
		schemaDoc{},
		docFormatter{},
	}
}

// docInjector opens a docstring section at the top of every documented
// section and emits the #[deprecated] attribute on declarations.
type docInjector struct{}

func (docInjector) SectionName() string { return "" }
func (docInjector) Mode() writer.Mode   { return writer.Prepend }

func (docInjector) Relevant(s writer.Section) bool {
	if _, isDocstring := s.(*generators.DocstringSection); isDocstring {
		return false
	}
	_, ok := s.(writer.DocumentedSection)
	return ok
}

func (docInjector) Render(w *writer.Writer, _ string, s writer.Section) error {
	shape := s.(writer.DocumentedSection).Target()
	w.InjectSection(&generators.DocstringSection{Shape: shape, Parent: s})
	if shape == nil {
		return w.Err()
	}
	// Schema constants carry docs but not the deprecation attribute; that
	// belongs on the declaration
	if _, isSchema := s.(*generators.SchemaSection); isSchema {
		return w.Err()
	}
	if dep := shape.Trait(model.TraitDeprecated); dep != nil {
		w.InState(func() {
			w.PutContext("since", stringField(dep.Value, "since"))
			w.PutContext("note", stringField(dep.Value, "message"))
			w.Write("#[deprecated${?since}(since = ${since:S}${?note}, note = ${note:S}${/note})${/since}]")
		})
	}
	return w.Err()
}

// documentationText replaces the docstring body with the shape's own
// documentation, keeping previously composed content below it.
type documentationText struct{}

func (documentationText) SectionName() string { return "docstring" }
func (documentationText) Mode() writer.Mode   { return writer.Override }

func (documentationText) Relevant(s writer.Section) bool {
	ds := s.(*generators.DocstringSection)
	return ds.Shape != nil && ds.Shape.HasTrait(model.TraitDocumentation)
}

func (documentationText) Render(w *writer.Writer, previous string, s writer.Section) error {
	ds := s.(*generators.DocstringSection)
	doc, _ := ds.Shape.Trait(model.TraitDocumentation).StringPayload()
	w.WriteRaw(doc)
	if previous != "" {
		w.WriteInlineRaw("\n")
		w.WriteInlineRaw(previous)
	}
	return w.Err()
}

// sinceNote appends a version note block for the since annotation.
type sinceNote struct{}

func (sinceNote) SectionName() string { return "docstring" }
func (sinceNote) Mode() writer.Mode   { return writer.Append }

func (sinceNote) Relevant(s writer.Section) bool {
	ds := s.(*generators.DocstringSection)
	return ds.Shape != nil && ds.Shape.HasTrait(model.TraitSince)
}

func (sinceNote) Render(w *writer.Writer, _ string, s writer.Section) error {
	ds := s.(*generators.DocstringSection)
	version, _ := ds.Shape.Trait(model.TraitSince).StringPayload()
	w.InState(func() {
		w.PutContext("since", version)
		w.WriteRaw(`<div class="note">`)
		w.WriteRaw("")
		w.Write("**Since**: ${since:L}")
		w.WriteRaw("")
		w.WriteRaw("</div>")
		w.WriteRaw("")
	})
	return w.Err()
}

// unstableWarning appends a warning block for unstable shapes.
type unstableWarning struct{}

func (unstableWarning) SectionName() string { return "docstring" }
func (unstableWarning) Mode() writer.Mode   { return writer.Append }

func (unstableWarning) Relevant(s writer.Section) bool {
	ds := s.(*generators.DocstringSection)
	return ds.Shape != nil && ds.Shape.HasTrait(model.TraitUnstable)
}

func (unstableWarning) Render(w *writer.Writer, _ string, _ writer.Section) error {
	w.WriteRaw(`<div class="warning">`)
	w.WriteRaw("")
	w.WriteRaw("**WARNING**: Unstable feature")
	w.WriteRaw("")
	w.WriteRaw("</div>")
	w.WriteRaw("")
	return w.Err()
}

// externalReferences appends a link list for external documentation.
type externalReferences struct{}

func (externalReferences) SectionName() string { return "docstring" }
func (externalReferences) Mode() writer.Mode   { return writer.Append }

func (externalReferences) Relevant(s writer.Section) bool {
	ds := s.(*generators.DocstringSection)
	return ds.Shape != nil && ds.Shape.HasTrait(model.TraitExternalDocs)
}

func (externalReferences) Render(w *writer.Writer, _ string, s writer.Section) error {
	ds := s.(*generators.DocstringSection)
	value := ds.Shape.Trait(model.TraitExternalDocs).Value
	var links []writer.KV
	if value != nil {
		for _, entry := range value.Entries {
			if entry.Key != nil && entry.Value != nil {
				links = append(links, writer.KV{Key: entry.Key.StrVal, Value: entry.Value.StrVal})
			}
		}
	}
	w.InState(func() {
		w.PutContext("links", links)
		w.Write("## References${#links}\n- [**${key:L}**](${value:L})${/links}")
		w.WriteRaw("")
	})
	return w.Err()
}

// schemaDoc gives schema constants of generated types a fixed doc line
// linking back to the declaration, replacing whatever the trait
// interceptors composed.
type schemaDoc struct{}

func (schemaDoc) SectionName() string { return "docstring" }
func (schemaDoc) Mode() writer.Mode   { return writer.Override }

func (schemaDoc) Relevant(s writer.Section) bool {
	ds := s.(*generators.DocstringSection)
	if ds.Shape == nil || !ds.Shape.Kind.IsGenerated() {
		return false
	}
	_, isSchema := ds.Parent.(*generators.SchemaSection)
	return isSchema
}

func (schemaDoc) Render(w *writer.Writer, _ string, s writer.Section) error {
	ds := s.(*generators.DocstringSection)
	w.WriteRaw("Schema for [`" + ds.Shape.ID.Name + "`]")
	return w.Err()
}

// docFormatter wraps the composed docstring into /// comment lines; an
// empty docstring renders nothing at all.
type docFormatter struct{}

func (docFormatter) SectionName() string { return "docstring" }
func (docFormatter) Mode() writer.Mode   { return writer.Override }

func (docFormatter) Relevant(writer.Section) bool { return true }

func (docFormatter) Render(w *writer.Writer, previous string, _ writer.Section) error {
	if previous == "" {
		return nil
	}
	for _, line := range strings.Split(strings.TrimSuffix(previous, "\n"), "\n") {
		for _, wrapped := range util.WrapText(line, docWidth) {
			w.WriteRaw(strings.TrimRight("/// "+wrapped, " "))
		}
	}
	return w.Err()
}

func stringField(v *model.Value, field string) string {
	if v == nil {
		return ""
	}
	f := v.Field(field)
	if f == nil {
		return ""
	}
	return f.StrVal
}
