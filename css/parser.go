package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser collects declarations from CSS stylesheets and inline styles.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	return p.parse(data, false, source)
}

// ParseInline parses the content of a style attribute.
func (p *Parser) ParseInline(style string, source ...string) *Stylesheet {
	return p.parse([]byte(style), true, source)
}

func (p *Parser) parse(data []byte, inline bool, source []string) *Stylesheet {
	sheet := &Stylesheet{
		Declarations: make([]Declaration, 0),
		Warnings:     make([]string, 0),
	}
	if len(source) > 0 && source[0] != "" {
		sheet.Source = source[0]
		p.log.Debug("Parsing CSS", zap.String("source", sheet.Source), zap.Int("bytes", len(data)), zap.Bool("inline", inline))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), inline)

	var (
		context  []string
		pending  []string
		selector string
	)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			prelude := string(data)
			if values := rawValue(parser.Values()); values != "" {
				prelude += " " + values
			}
			context = append(context, prelude)

		case css.EndAtRuleGrammar:
			if len(context) > 0 {
				context = context[:len(context)-1]
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := string(data)
			if strings.EqualFold(atRule, "@import") {
				if url := extractImportURL(parser.Values()); url != "" {
					sheet.Imports = append(sheet.Imports, url)
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.QualifiedRuleGrammar:
			// "a, b { ... }" is reported as qualified rule "a" followed by
			// ruleset "b"
			pending = append(pending, parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			pending = append(pending, parseSelectors(data, parser.Values())...)
			selector, pending = strings.Join(pending, ", "), nil

		case css.EndRulesetGrammar:
			selector = ""

		case css.DeclarationGrammar:
			if d, ok := newDeclaration(string(data), parser.Values()); ok {
				d.Context, d.Selector = cloneContext(context), selector
				sheet.Declarations = append(sheet.Declarations, d)
			}

		case css.CustomPropertyGrammar:
			values := cloneTokens(parser.Values())
			d := Declaration{
				Property: string(data),
				Tokens:   values,
				Raw:      strings.TrimSpace(rawValue(values)),
				Custom:   true,
			}
			d.Context, d.Selector = cloneContext(context), selector
			sheet.Declarations = append(sheet.Declarations, d)
		}
	}
}

func newDeclaration(name string, values []css.Token) (Declaration, bool) {
	if len(values) == 0 {
		return Declaration{}, false
	}
	values, important := stripImportant(values)
	return Declaration{
		Property:  strings.ToLower(name),
		Tokens:    cloneTokens(values),
		Raw:       rawValue(values),
		Important: important,
	}, true
}

// stripImportant removes a trailing "!important" from value tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end < 2 || tokens[end-1].TokenType != css.IdentToken || !strings.EqualFold(string(tokens[end-1].Data), "important") {
		return tokens, false
	}
	bang := end - 2
	for bang > 0 && tokens[bang].TokenType == css.WhitespaceToken {
		bang--
	}
	if tokens[bang].TokenType != css.DelimToken || string(tokens[bang].Data) != "!" {
		return tokens, false
	}
	return tokens[:bang], true
}

// cloneTokens copies value tokens out of the tokenizer buffer, which is reused
// on every call to Next.
func cloneTokens(tokens []css.Token) []css.Token {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]css.Token, len(tokens))
	for i, t := range tokens {
		out[i] = css.Token{TokenType: t.TokenType, Data: bytes.Clone(t.Data)}
	}
	return out
}

func cloneContext(context []string) []string {
	if len(context) == 0 {
		return nil
	}
	return append([]string(nil), context...)
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// parseSelectors extracts selector strings from token data.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}
