// Package sanitize makes inbound request values safe to log and display.
// It is not an SQL escaping layer; statements bind their arguments.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

var slashes = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`, "\x00", `\0`)

// AddSlashes backslash-escapes quotes, backslashes and NUL bytes.
func AddSlashes(s string) string {
	return slashes.Replace(s)
}

// StripTags removes HTML/XML tags, comments and doctypes, keeping text.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		}
	}
}

// Value escapes then strips a single scalar.
func Value(s string) string {
	return StripTags(AddSlashes(s))
}
