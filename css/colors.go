package css

import (
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"colorful/color"
)

// Occurrence is a color value found in a declaration.
type Occurrence struct {
	Source   string
	Context  []string
	Selector string
	Property string
	Text     string // as written
	Color    color.Color
}

// colorFunctions are the functional notations understood by color.Parser.
// Other functions (gradients, var(), ...) are searched for nested colors.
var colorFunctions = []string{"rgb(", "rgba(", "agcolor("}

// ExtractColors returns color values used by declarations of sheet in
// source order. When props is not empty only these properties are
// inspected. Hash tokens and color functions are reported even when they
// do not hold a valid color, identifiers only when they are keywords.
func ExtractColors(sheet *Stylesheet, parser *color.Parser, props []string) []Occurrence {
	if parser == nil {
		parser = color.NewParser(nil)
	}
	wanted := make(map[string]bool, len(props))
	for _, p := range props {
		wanted[strings.ToLower(strings.TrimSpace(p))] = true
	}

	var out []Occurrence
	for _, d := range sheet.Declarations {
		if len(wanted) > 0 && !wanted[strings.ToLower(d.Property)] {
			continue
		}
		emit := func(text string, c color.Color) {
			out = append(out, Occurrence{
				Source:   sheet.Source,
				Context:  d.Context,
				Selector: d.Selector,
				Property: d.Property,
				Text:     text,
				Color:    c,
			})
		}
		if d.Custom {
			// Custom property values are not tokenized, only whole values
			// are considered.
			if c := parser.Parse(d.Raw); c.IsColor() {
				emit(d.Raw, c)
			}
			continue
		}
		scanTokens(d.Tokens, parser, emit)
	}
	return out
}

func scanTokens(tokens []css.Token, parser *color.Parser, emit func(string, color.Color)) {
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.TokenType {
		case css.HashToken:
			text := string(t.Data)
			emit(text, parser.Parse(text))

		case css.IdentToken:
			text := string(t.Data)
			if c := parser.Parse(text); c.IsColor() {
				emit(text, c)
			}

		case css.FunctionToken:
			if !slices.Contains(colorFunctions, strings.ToLower(string(t.Data))) {
				continue
			}
			end := closingParen(tokens, i)
			text := tokensText(tokens[i : end+1])
			emit(text, parser.Parse(text))
			i = end
		}
	}
}

// closingParen returns index of the token closing the function opened at
// start, or the last index when the value is truncated.
func closingParen(tokens []css.Token, start int) int {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch tokens[i].TokenType {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(tokens) - 1
}

func tokensText(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}
