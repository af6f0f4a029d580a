// Package sanitize strips markup from user-supplied text before it is shown
// in a terminal or stored by the mock API.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy removes all HTML tags and attributes.
	StrictPolicy = bluemonday.StrictPolicy()

	// UGCPolicy allows safe user-generated formatting (<p>, <b>, <a>, lists).
	UGCPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML tags. Entities bluemonday escapes are decoded again
// so names like "R&D" print as typed.
func Text(input string) string {
	return html.UnescapeString(StrictPolicy.Sanitize(input))
}

// HTML keeps safe formatting tags and removes scripts, iframes, handlers and styles.
func HTML(input string) string {
	return UGCPolicy.Sanitize(input)
}

// PlainText turns a possibly formatted description into terminal text:
// block tags become line breaks, everything else is stripped.
func PlainText(input string) string {
	if input == "" {
		return ""
	}
	r := strings.NewReplacer(
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"</p>", "\n", "</li>", "\n",
	)
	text := Text(r.Replace(input))
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// TextSlice sanitizes each string in a slice, removing all HTML.
func TextSlice(inputs []string) []string {
	if inputs == nil {
		return nil
	}
	sanitized := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = Text(input)
	}
	return sanitized
}
