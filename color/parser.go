package color

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parser turns arbitrary input into Color values. It is immutable and safe
// for concurrent use.
type Parser struct {
	log          *zap.Logger
	foldKeywords bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithCaseInsensitiveKeywords makes keyword lookup ignore case the way CSS
// does ("Red" is red). By default keywords must be spelled in lower case.
func WithCaseInsensitiveKeywords() ParserOption {
	return func(p *Parser) {
		p.foldKeywords = true
	}
}

// NewParser creates a parser. A nil logger disables logging.
func NewParser(log *zap.Logger, opts ...ParserOption) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{log: log.Named("color-parser")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser(nil)

// New parses v with the default parser. See Parser.Parse.
func New(v any) Color {
	return defaultParser.Parse(v)
}

// Parse coerces v into a Color. Accepted are strings (keywords, hex, rgb(),
// rgba() and AgColor() syntaxes), sequences of 3 or 4 channel values, maps
// with exactly the keys r, g, b and optionally a, image/color values and
// existing colors. Anything else produces a Color for which IsColor is
// false, Parse never fails.
func (p *Parser) Parse(v any) Color {
	switch x := v.(type) {
	case Color:
		return Color{raw: x.raw, source: x.source, parser: p}
	case *Color:
		if x == nil {
			return Color{source: "<nil>", parser: p}
		}
		return Color{raw: x.raw, source: x.source, parser: p}
	}
	return Color{raw: p.coerce(v), source: describe(v), parser: p}
}

func (p *Parser) lookupKeyword(s string) ([3]uint8, bool) {
	if rgb, ok := LookupKeyword(s); ok {
		return rgb, true
	}
	if !p.foldKeywords {
		return [3]uint8{}, false
	}
	// Caser keeps state, it cannot be shared.
	return LookupKeyword(cases.Lower(language.Und).String(strings.TrimSpace(s)))
}

// parseString resolves keywords first and falls back to the string grammars.
func (p *Parser) parseString(s string) *rawColor {
	if rgb, ok := p.lookupKeyword(s); ok {
		p.log.Debug("Color keyword", zap.String("input", s))
		return rawFromBytes(rgb, decOne)
	}
	if strings.ToLower(s) == Transparent {
		return &rawColor{r: decZero, g: decZero, b: decZero, a: decZero}
	}
	return p.match(s, stringGrammars)
}

// match tries grammars in order, the first one matching the whole input
// wins.
func (p *Parser) match(s string, set []grammar) *rawColor {
	for _, g := range set {
		rgb, alpha, ok := g.match(s)
		if !ok {
			continue
		}
		raw, err := normalize(g.kind, rgb, alpha)
		if err != nil {
			p.log.Debug("Unable to normalize color", zap.String("input", s), zap.String("grammar", g.name), zap.Error(err))
			return nil
		}
		p.log.Debug("Color matched", zap.String("input", s), zap.String("grammar", g.name), zap.Stringer("kind", g.kind))
		return raw
	}
	p.log.Debug("Not a color", zap.String("input", s))
	return nil
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}
