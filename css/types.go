package css

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Declaration is a single "property: value" pair together with where it
// was found.
type Declaration struct {
	Context   []string    // Enclosing @-rules, outermost first (e.g. "@media print")
	Selector  string      // Selector list of the enclosing ruleset, empty for inline styles
	Property  string      // Lower case property name, custom properties keep their case
	Tokens    []css.Token // Value tokens with "!important" removed
	Raw       string      // Value as text
	Important bool
	Custom    bool // Custom property (--name)
}

// Stylesheet is the flat list of declarations found in a CSS source.
type Stylesheet struct {
	Source       string
	Declarations []Declaration
	Imports      []string
	Warnings     []string
}

// DeclarationsFor returns declarations of the given property in source
// order.
func (s *Stylesheet) DeclarationsFor(property string) []Declaration {
	property = strings.ToLower(property)
	var out []Declaration
	for _, d := range s.Declarations {
		if d.Property == property {
			out = append(out, d)
		}
	}
	return out
}

// rawValue joins tokens back into text collapsing whitespace runs into a
// single space.
func rawValue(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
