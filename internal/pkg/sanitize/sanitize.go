// Package sanitize strips markup from user-supplied text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// plain turns the entities the policy emits for ordinary punctuation back into
// characters. "&lt;" and "&gt;" stay encoded so the result never carries a tag.
var plain = strings.NewReplacer(
	"&amp;", "&",
	"&#39;", "'",
	"&#34;", `"`,
	"&quot;", `"`,
)

// Text removes every HTML element from s and trims surrounding whitespace.
// Entity-encoded markup is decoded first, so "&lt;script&gt;" is removed like
// a literal tag.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(plain.Replace(strict.Sanitize(html.UnescapeString(s))))
}

// Ptr applies Text to *s in place. Nil pointers are ignored.
func Ptr(s *string) {
	if s != nil {
		*s = Text(*s)
	}
}
