package writer

import (
	"strings"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/model"
	"github.com/teranos/shapegen/symbol"
)

// expand interpolates a template. Positional placeholders ($L, $S, ...)
// consume args left to right; named placeholders (${name:L}) resolve
// against the context scope stack.
func (w *Writer) expand(tmpl string, args []any) (string, error) {
	var out strings.Builder
	argIdx := 0
	i := 0
	for i < len(tmpl) {
		c := tmpl[i]
		if c != '$' {
			out.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(tmpl) {
			return "", errors.Newf("template ends with a dangling '$': %q", tmpl)
		}
		next := tmpl[i+1]
		switch {
		case next == '$':
			out.WriteByte('$')
			i += 2
		case next == '{':
			advanced, err := w.expandExpr(tmpl, i, &out)
			if err != nil {
				return "", err
			}
			i = advanced
		default:
			if argIdx >= len(args) {
				return "", errors.Newf("template %q expects more positional arguments than the %d given", tmpl, len(args))
			}
			s, err := w.format(next, args[argIdx])
			if err != nil {
				return "", err
			}
			argIdx++
			out.WriteString(s)
			i += 2
		}
	}
	if argIdx < len(args) {
		return "", errors.Newf("template %q consumed %d of %d positional arguments", tmpl, argIdx, len(args))
	}
	return out.String(), nil
}

// expandExpr handles one ${...} expression starting at the '$' at pos.
// Returns the template index after the expression (including any block
// body and closing tag).
func (w *Writer) expandExpr(tmpl string, pos int, out *strings.Builder) (int, error) {
	end := strings.IndexByte(tmpl[pos+2:], '}')
	if end < 0 {
		return 0, errors.Newf("unterminated ${ expression in template %q", tmpl)
	}
	end += pos + 2
	expr := tmpl[pos+2 : end]
	if expr == "" {
		return 0, errors.Newf("empty ${} expression in template %q", tmpl)
	}

	switch expr[0] {
	case '?', '^', '#':
		name := expr[1:]
		body, after, err := blockBody(tmpl, name, end+1)
		if err != nil {
			return 0, err
		}
		val, _ := w.get(name)
		switch expr[0] {
		case '?':
			if truthy(val) {
				if err := w.expandInto(body, out); err != nil {
					return 0, err
				}
			}
		case '^':
			if !truthy(val) {
				if err := w.expandInto(body, out); err != nil {
					return 0, err
				}
			}
		case '#':
			if err := w.expandLoop(name, val, body, out); err != nil {
				return 0, err
			}
		}
		return after, nil
	case '/':
		return 0, errors.Newf("closing tag ${%s} without a matching opener in template %q", expr, tmpl)
	}

	// Plain named placeholder: name[:kind][|]
	align := strings.HasSuffix(expr, "|")
	if align {
		expr = expr[:len(expr)-1]
	}
	name := expr
	kind := byte('L')
	if j := strings.LastIndexByte(expr, ':'); j >= 0 {
		name = expr[:j]
		if j+1 != len(expr)-1 {
			return 0, errors.Newf("malformed placeholder ${%s} in template %q", expr, tmpl)
		}
		kind = expr[j+1]
	}
	val, ok := w.get(name)
	if !ok {
		return 0, errors.Newf("no context value named %q for template %q", name, tmpl)
	}
	s, err := w.format(kind, val)
	if err != nil {
		return 0, err
	}
	if align && strings.Contains(s, "\n") {
		s = alignContinuations(s, w.linePrefix(out))
	}
	out.WriteString(s)
	return end + 1, nil
}

func (w *Writer) expandInto(body string, out *strings.Builder) error {
	s, err := w.expand(body, nil)
	if err != nil {
		return err
	}
	out.WriteString(s)
	return nil
}

// expandLoop renders body once per element, binding "value", "key",
// "key.first" and "key.last" in a fresh scope.
func (w *Writer) expandLoop(name string, val any, body string, out *strings.Builder) error {
	items, err := loopItems(name, val)
	if err != nil {
		return err
	}
	for idx, it := range items {
		w.PushState()
		w.PutContext("value", it.Value)
		w.PutContext("key", it.Key)
		w.PutContext("key.first", idx == 0)
		w.PutContext("key.last", idx == len(items)-1)
		err := w.expandInto(body, out)
		w.PopState()
		if err != nil {
			return err
		}
	}
	return nil
}

// blockBody locates the body of a block opened before from, honoring
// nested blocks over the same name.
func blockBody(tmpl, name string, from int) (body string, after int, err error) {
	closeTok := "${/" + name + "}"
	opens := []string{"${?" + name + "}", "${^" + name + "}", "${#" + name + "}"}
	depth := 1
	i := from
	for i < len(tmpl) {
		if strings.HasPrefix(tmpl[i:], closeTok) {
			depth--
			if depth == 0 {
				return tmpl[from:i], i + len(closeTok), nil
			}
			i += len(closeTok)
			continue
		}
		opened := false
		for _, tok := range opens {
			if strings.HasPrefix(tmpl[i:], tok) {
				depth++
				i += len(tok)
				opened = true
				break
			}
		}
		if !opened {
			i++
		}
	}
	return "", 0, errors.Newf("block over %q never closed in template %q", name, tmpl)
}

func loopItems(name string, val any) ([]KV, error) {
	switch t := val.(type) {
	case nil:
		return nil, nil
	case []KV:
		return t, nil
	case []any:
		items := make([]KV, len(t))
		for i, v := range t {
			items[i] = KV{Value: v}
		}
		return items, nil
	case []string:
		items := make([]KV, len(t))
		for i, v := range t {
			items[i] = KV{Value: v}
		}
		return items, nil
	case []Renderable:
		items := make([]KV, len(t))
		for i, v := range t {
			items[i] = KV{Value: v}
		}
		return items, nil
	case []*symbol.Symbol:
		items := make([]KV, len(t))
		for i, v := range t {
			items[i] = KV{Value: v}
		}
		return items, nil
	case []*model.Value:
		items := make([]KV, len(t))
		for i, v := range t {
			items[i] = KV{Value: v}
		}
		return items, nil
	}
	return nil, errors.AssertionFailedf("context value %q is not iterable (%T)", name, val)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []KV:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case []Renderable:
		return len(t) > 0
	case []*symbol.Symbol:
		return len(t) > 0
	case []*model.Value:
		return len(t) > 0
	case *model.Value:
		return t != nil && !t.IsNull()
	case *symbol.Symbol:
		return t != nil
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

// linePrefix reports the leading whitespace of the line currently being
// built, spanning the active buffer tail and pending expansion output.
func (w *Writer) linePrefix(out *strings.Builder) string {
	line := w.buf().String() + out.String()
	if i := strings.LastIndexByte(line, '\n'); i >= 0 {
		line = line[i+1:]
	}
	ws := 0
	for ws < len(line) && (line[ws] == ' ' || line[ws] == '\t') {
		ws++
	}
	return line[:ws]
}

// alignContinuations prefixes every continuation line of a multi-line
// value so it lines up under the placeholder's column.
func alignContinuations(s, prefix string) string {
	if prefix == "" {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
