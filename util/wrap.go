package util

import "strings"

// WrapText greedily word-wraps a single line at the given width. Words
// longer than the width are kept whole on their own line. An empty input
// yields one empty line.
func WrapText(s string, width int) []string {
	if len(s) <= width {
		return []string{s}
	}
	var out []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			out = append(out, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		out = append(out, line.String())
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
