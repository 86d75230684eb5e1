package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"colorful/numfmt"
)

var (
	dec255     = decimal.NewFromInt(255)
	dec100     = decimal.NewFromInt(100)
	decOne     = decimal.NewFromInt(1)
	decZero    = decimal.Zero
	percentMul = dec255.Div(dec100) // 2.55, exact
)

// rawColor is the normalized record: r, g, b in [0, 255] and a in [0, 1],
// kept with every digit the source supplied.
type rawColor struct {
	r, g, b decimal.Decimal
	a       decimal.Decimal
}

func (rc *rawColor) channels() [3]decimal.Decimal {
	return [3]decimal.Decimal{rc.r, rc.g, rc.b}
}

// normalizeChannel converts a single matched token into the 0-255 domain
// without rounding.
func normalizeChannel(kind channelKind, token string) (decimal.Decimal, error) {
	switch kind {
	case kindShortHex:
		token += token
		fallthrough
	case kindHex:
		n, err := strconv.ParseUint(token, 16, 8)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("bad hex channel %q: %w", token, err)
		}
		return decimal.NewFromInt(int64(n)), nil
	case kindBase256:
		return numfmt.Parse(token)
	case kindPercent:
		p, err := numfmt.Parse(strings.TrimSuffix(strings.TrimSpace(token), "%"))
		if err != nil {
			return decimal.Decimal{}, err
		}
		return p.Mul(percentMul), nil
	case kindFraction:
		f, err := numfmt.Parse(token)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return f.Mul(dec255), nil
	case kindMixed:
		if strings.HasSuffix(token, "%") {
			return normalizeChannel(kindPercent, token)
		}
		return normalizeChannel(kindBase256, token)
	default:
		return decimal.Decimal{}, fmt.Errorf("unknown channel kind %d", kind)
	}
}

// normalizeAlpha parses the alpha token, absent alpha is exactly 1.
func normalizeAlpha(token string) (decimal.Decimal, error) {
	if token == "" {
		return decOne, nil
	}
	return numfmt.Parse(token)
}

func normalize(kind channelKind, rgb [3]string, alpha string) (*rawColor, error) {
	var ch [3]decimal.Decimal
	for i, token := range rgb {
		v, err := normalizeChannel(kind, token)
		if err != nil {
			return nil, err
		}
		ch[i] = v
	}
	a, err := normalizeAlpha(alpha)
	if err != nil {
		return nil, err
	}
	return &rawColor{r: ch[0], g: ch[1], b: ch[2], a: a}, nil
}

// toPercent converts a raw channel back to a percentage.
func toPercent(raw decimal.Decimal) decimal.Decimal {
	return numfmt.Div(raw.Mul(dec100), dec255)
}

// toFraction converts a raw channel back to the 0-1 domain.
func toFraction(raw decimal.Decimal) decimal.Decimal {
	return numfmt.Div(raw, dec255)
}
