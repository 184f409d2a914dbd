// Package writer implements the template-driven text emitter for Rust
// code generation.
//
// Templates carry positional ($L, $S, $T, $I, $C) and named (${name:T})
// placeholders, conditionals (${?name}...${/name}, ${^name}...${/name})
// and iteration (${#name}...${/name}). Named placeholders resolve against
// a stack of context scopes; push/pop must stay balanced — an unbalanced
// pop is a programming error, not a recoverable failure.
//
// Sections pushed with a tag buffer their body and run registered
// interceptors (prepend/append/override, in registration order) before the
// composed text reaches the parent buffer. Whitespace normalization (blank
// line collapsing, trailing space trimming) happens once in String().
package writer

import (
	"fmt"
	"strings"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/literal"
	"github.com/teranos/shapegen/symbol"
)

// Formatter renders one placeholder value. Formatters may record symbols
// in the import container as a side effect.
type Formatter func(w *Writer, v any) (string, error)

// KV is an ordered key/value pair for template iteration over mappings.
type KV struct {
	Key   string
	Value any
}

type state struct {
	scope   map[string]any
	section Section
	buf     *strings.Builder

	// indent is the block level at which buf was opened. Buffered text is
	// kept relative to it so indentation is applied exactly once, when the
	// content reaches its parent buffer.
	indent int
}

// Writer is a stateful text emitter bound to one output artifact. It is
// not safe for concurrent use; parallel artifacts each own a writer.
type Writer struct {
	// Filename is the artifact this writer feeds.
	Filename string

	base         strings.Builder
	states       []*state
	imports      *ImportContainer
	interceptors []Interceptor
	formatters   map[byte]Formatter
	indent       int
	err          error
}

// New builds a writer for one artifact. Interceptors are resolved at
// construction time and fixed for the writer's lifetime.
func New(filename string, interceptors ...Interceptor) *Writer {
	w := &Writer{
		Filename:     filename,
		imports:      NewImportContainer(),
		interceptors: interceptors,
		formatters:   make(map[byte]Formatter),
	}
	// Root scope; String() asserts the stack has returned to it
	w.states = []*state{{scope: make(map[string]any)}}
	w.PutFormatter('T', formatType)
	w.PutFormatter('I', formatIdent)
	return w
}

// Imports exposes the artifact's import container.
func (w *Writer) Imports() *ImportContainer {
	return w.imports
}

// Err returns the first error recorded during writing, if any.
func (w *Writer) Err() error {
	return w.err
}

// PutFormatter registers a formatter for a placeholder kind character.
func (w *Writer) PutFormatter(c byte, f Formatter) {
	w.formatters[c] = f
}

// PutContext binds a named value in the current scope.
func (w *Writer) PutContext(name string, value any) {
	w.top().scope[name] = value
}

// PushState opens a plain context scope.
func (w *Writer) PushState() {
	w.states = append(w.states, &state{scope: make(map[string]any)})
}

// PushSection opens a context scope tagged with a section. Text written
// until the matching PopState is buffered and run through the section's
// interceptors.
func (w *Writer) PushSection(s Section) {
	w.states = append(w.states, &state{
		scope:   make(map[string]any),
		section: s,
		buf:     &strings.Builder{},
		indent:  w.indent,
	})
}

// PopState closes the innermost scope. Popping the root scope is an
// unbalanced pop and records an assertion failure.
func (w *Writer) PopState() {
	if len(w.states) <= 1 {
		w.setErr(errors.AssertionFailedf("unbalanced PopState on writer for %s", w.Filename))
		return
	}
	st := w.states[len(w.states)-1]
	w.states = w.states[:len(w.states)-1]
	if st.section == nil {
		return
	}
	// Flush through emit so the composed text, which is relative to the
	// level the section opened at, picks up block indentation exactly once
	text := w.applyInterceptors(st.section, st.buf.String())
	w.emit(text)
}

// InSection runs fn inside a tagged section, guaranteeing the matching pop
// on every control path.
func (w *Writer) InSection(s Section, fn func()) {
	w.PushSection(s)
	defer w.PopState()
	fn()
}

// InState runs fn inside a plain scope, guaranteeing the matching pop.
func (w *Writer) InState(fn func()) {
	w.PushState()
	defer w.PopState()
	fn()
}

// InjectSection emits an empty-bodied section so that interceptors
// registered for it may contribute content.
func (w *Writer) InjectSection(s Section) {
	w.PushSection(s)
	w.PopState()
}

// Write expands a template against the context and positional args and
// emits it followed by a newline.
func (w *Writer) Write(tmpl string, args ...any) {
	w.WriteInline(tmpl, args...)
	w.emit("\n")
}

// WriteInline expands a template and emits it without a trailing newline.
func (w *Writer) WriteInline(tmpl string, args ...any) {
	out, err := w.expand(tmpl, args)
	if err != nil {
		w.setErr(err)
		return
	}
	w.emit(out)
}

// WriteRaw emits text verbatim, bypassing template expansion, followed by
// a newline.
func (w *Writer) WriteRaw(text string) {
	w.emit(text)
	w.emit("\n")
}

// WriteInlineRaw emits text verbatim without a trailing newline.
func (w *Writer) WriteInlineRaw(text string) {
	w.emit(text)
}

// OpenBlock writes the opening line, indents the body produced by fn one
// level, then writes the closing line.
func (w *Writer) OpenBlock(open, close string, fn func()) {
	w.Write(open)
	w.indent++
	fn()
	w.indent--
	w.Write(close)
}

// String returns the normalized artifact text. An unbalanced state stack
// at this point is a defect and surfaces through Err.
func (w *Writer) String() string {
	if len(w.states) != 1 {
		w.setErr(errors.AssertionFailedf(
			"writer for %s finished with %d unpopped states", w.Filename, len(w.states)-1))
	}
	return normalize(w.base.String())
}

// top returns the innermost state.
func (w *Writer) top() *state {
	return w.states[len(w.states)-1]
}

// buf returns the innermost capture buffer, falling back to the base.
func (w *Writer) buf() *strings.Builder {
	b, _ := w.target()
	return b
}

// target returns the active buffer and the block level it opened at.
func (w *Writer) target() (*strings.Builder, int) {
	for i := len(w.states) - 1; i >= 0; i-- {
		if w.states[i].buf != nil {
			return w.states[i].buf, w.states[i].indent
		}
	}
	return &w.base, 0
}

// get resolves a named context value through the scope stack.
func (w *Writer) get(name string) (any, bool) {
	for i := len(w.states) - 1; i >= 0; i-- {
		if v, ok := w.states[i].scope[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (w *Writer) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

// emit writes text to the active buffer, applying block indentation at
// the start of non-empty lines. Only the indentation acquired since the
// buffer opened is applied; the rest belongs to the buffer's parent.
func (w *Writer) emit(text string) {
	if text == "" {
		return
	}
	b, opened := w.target()
	rel := w.indent - opened
	if rel <= 0 {
		b.WriteString(text)
		return
	}
	prefix := strings.Repeat("    ", rel)
	for len(text) > 0 {
		nl := strings.IndexByte(text, '\n')
		var line string
		if nl < 0 {
			line, text = text, ""
		} else {
			line, text = text[:nl], text[nl+1:]
		}
		if line != "" && w.atLineStart(b) {
			b.WriteString(prefix)
		}
		b.WriteString(line)
		if nl >= 0 {
			b.WriteByte('\n')
		}
	}
}

func (w *Writer) atLineStart(b *strings.Builder) bool {
	s := b.String()
	return len(s) == 0 || s[len(s)-1] == '\n'
}

// capture renders fn into a private buffer and returns the produced text,
// relative to the current block level.
func (w *Writer) capture(fn func() error) (string, error) {
	st := &state{scope: make(map[string]any), buf: &strings.Builder{}, indent: w.indent}
	w.states = append(w.states, st)
	err := fn()
	w.states = w.states[:len(w.states)-1]
	return st.buf.String(), err
}

// applyInterceptors composes the section body with every relevant
// interceptor in registration order.
func (w *Writer) applyInterceptors(s Section, body string) string {
	text := body
	for _, ic := range w.interceptors {
		if ic.SectionName() != "" && ic.SectionName() != s.SectionName() {
			continue
		}
		if !ic.Relevant(s) {
			continue
		}
		previous := ""
		if ic.Mode() == Override {
			previous = text
		}
		out, err := w.capture(func() error { return ic.Render(w, previous, s) })
		if err != nil {
			w.setErr(err)
			return text
		}
		switch ic.Mode() {
		case Prepend:
			text = out + text
		case Append:
			text = text + out
		case Override:
			text = out
		}
	}
	return text
}

// format renders a value with the formatter bound to kind c.
func (w *Writer) format(c byte, v any) (string, error) {
	if f, ok := w.formatters[c]; ok {
		return f(w, v)
	}
	switch c {
	case 'L':
		return formatLiteral(v), nil
	case 'S':
		return literal.Quote(formatLiteral(v)), nil
	case 'C':
		return w.formatCall(v)
	}
	return "", errors.AssertionFailedf("no formatter registered for $%c", c)
}

func formatLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// formatCall renders an inline runnable, trimming one trailing newline so
// calls compose on one line.
func (w *Writer) formatCall(v any) (string, error) {
	var r Renderable
	switch t := v.(type) {
	case Renderable:
		r = t
	case func(*Writer) error:
		r = RenderFunc(t)
	default:
		return "", errors.AssertionFailedf("$C expects a Renderable, got %T", v)
	}
	out, err := w.capture(func() error { return r.Render(w) })
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// formatType renders a type symbol as Name<Arg1, Arg2>, recording the
// symbol and its type arguments in the import container.
func formatType(w *Writer, v any) (string, error) {
	sym, ok := v.(*symbol.Symbol)
	if !ok {
		return "", errors.AssertionFailedf("$T expects a *symbol.Symbol, got %T", v)
	}
	w.imports.Record(sym)
	if len(sym.Refs) == 0 {
		return sym.Name, nil
	}
	parts := make([]string, len(sym.Refs))
	for i, ref := range sym.Refs {
		rendered, err := formatType(w, ref)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return sym.Name + "<" + strings.Join(parts, ", ") + ">", nil
}

// formatIdent renders a symbol's schema constant name, recording it for
// import when it lives outside the generated file.
func formatIdent(w *Writer, v any) (string, error) {
	sym, ok := v.(*symbol.Symbol)
	if !ok {
		return "", errors.AssertionFailedf("$I expects a *symbol.Symbol, got %T", v)
	}
	if sym.Schema == nil {
		return "", errors.AssertionFailedf("symbol %s has no schema identifier", sym.Name)
	}
	w.imports.Record(sym.Schema)
	return sym.Schema.Name, nil
}

// normalize trims trailing spaces, collapses runs of blank lines, and
// guarantees a single trailing newline.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	// Drop trailing blank lines, keep exactly one newline at EOF
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
