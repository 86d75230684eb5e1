package color

import (
	"regexp"
	"strings"
)

// channelKind tells the normalizer how to read a matched channel token.
type channelKind int

const (
	kindHex      channelKind = iota // two hex digits
	kindShortHex                    // one hex digit, doubled
	kindBase256                     // 0-255
	kindPercent                     // 0-100%
	kindFraction                    // 0-1
	kindMixed                       // base 256 or percent, decided per token
)

func (k channelKind) String() string {
	switch k {
	case kindHex:
		return "hex"
	case kindShortHex:
		return "short-hex"
	case kindBase256:
		return "base256"
	case kindPercent:
		return "percent"
	case kindFraction:
		return "fraction"
	case kindMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

const (
	rxFraction = `(?:1(?:\.0+)?|0?\.\d+|0)`

	rxBase256        = `(?:255|25[0-4]|2[0-4]\d|(?:[0-1]?\d)?\d)`
	rxBase256Decimal = `(?:255(?:\.0+)?|(?:25[0-4]|2[0-4]\d|(?:[0-1]?\d)?\d)(?:\.\d+)?|\.\d+)`
	rxPercent        = `(?:100(?:\.0+)?|\d{0,2}\.\d+|\d{1,2})\s*%`

	rxHexLC      = `[a-f\d]{2}`
	rxHexUC      = `[A-F\d]{2}`
	rxShortHexLC = `[a-f\d]`
	rxShortHexUC = `[A-F\d]`
)

// grammar is a single anchored syntax. Every pattern captures exactly three
// channel tokens followed by an optional alpha token.
type grammar struct {
	name string
	rx   *regexp.Regexp
	kind channelKind
}

// match returns channel tokens and the alpha token ("" when absent).
func (g grammar) match(s string) (rgb [3]string, alpha string, ok bool) {
	m := g.rx.FindStringSubmatch(s)
	if m == nil {
		return rgb, "", false
	}
	copy(rgb[:], m[1:4])
	if len(m) > 4 {
		alpha = m[4]
	}
	return rgb, alpha, true
}

func hexGrammar(name, channel string, kind channelKind) grammar {
	ch := "(" + channel + ")"
	return grammar{
		name: name,
		rx:   regexp.MustCompile(`^\s*#` + ch + ch + ch + `\s*$`),
		kind: kind,
	}
}

// funcGrammar builds "prefix( c, c, c )" allowing whitespace around the
// parentheses and separators. With alpha set a trailing ", a" is admitted.
func funcGrammar(name, prefix, channel string, kind channelKind, alpha bool) grammar {
	ch := "(" + channel + ")"
	sep := `\s*,\s*`
	var b strings.Builder
	b.WriteString(`^\s*`)
	b.WriteString(prefix)
	b.WriteString(`\s*\(\s*`)
	b.WriteString(strings.Join([]string{ch, ch, ch}, sep))
	if alpha {
		b.WriteString(`(?:` + sep + `(` + rxFraction + `))?`)
	}
	b.WriteString(`\s*\)\s*$`)
	return grammar{name: name, rx: regexp.MustCompile(b.String()), kind: kind}
}

// stringGrammars are tried in order against string input, first match wins.
var stringGrammars = []grammar{
	hexGrammar("hex", rxHexLC, kindHex),
	hexGrammar("hex", rxHexUC, kindHex),
	hexGrammar("short-hex", rxShortHexLC, kindShortHex),
	hexGrammar("short-hex", rxShortHexUC, kindShortHex),
	funcGrammar("rgb", `rgb`, rxBase256, kindBase256, false),
	funcGrammar("rgba", `rgba`, rxBase256, kindBase256, true),
	funcGrammar("rgb-percent", `rgb`, rxPercent, kindPercent, false),
	funcGrammar("rgba-percent", `rgba`, rxPercent, kindPercent, true),
	funcGrammar("agcolor", `AgColor`, rxFraction, kindFraction, true),
}

// sequenceGrammars are used for re-serialized sequence and mapping input.
// Their elements may be fractional base 256 values and may mix in
// percentages, which plain strings are not allowed to do.
var sequenceGrammars = append(slicesClone(stringGrammars),
	funcGrammar("rgb-mixed", `rgb`, rxMixed, kindMixed, false),
	funcGrammar("rgba-mixed", `rgba`, rxMixed, kindMixed, true),
)

const rxMixed = `(?:` + rxBase256Decimal + `|` + rxPercent + `)`

func slicesClone(g []grammar) []grammar {
	return append([]grammar(nil), g...)
}
