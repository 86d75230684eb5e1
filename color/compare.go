package color

import (
	"github.com/shopspring/decimal"

	"colorful/numfmt"
)

func (c Color) other(v any) Color {
	switch x := v.(type) {
	case Color:
		return x
	case *Color:
		if x != nil {
			return *x
		}
	}
	p := c.parser
	if p == nil {
		p = defaultParser
	}
	return p.Parse(v)
}

// Equals compares channels rounded to integers. With WithTolerance(n) each
// channel pair may differ by up to n. Alpha must match exactly regardless of
// tolerance. Two invalid colors are never equal.
func (c Color) Equals(other any, opts ...Option) bool {
	o := c.other(other)
	if !c.IsColor() || !o.IsColor() {
		return false
	}
	tolerance := decimal.NewFromInt(int64(newOptions(opts).tolerance))

	a, b := c.raw.channels(), o.raw.channels()
	for i := range a {
		diff := numfmt.Round(a[i], 0).Sub(numfmt.Round(b[i], 0)).Abs()
		if diff.GreaterThan(tolerance) {
			return false
		}
	}
	return c.raw.a.Equal(o.raw.a)
}

// StrictlyEquals compares full precision percentages and alpha, colors that
// only agree after rounding are not strictly equal.
func (c Color) StrictlyEquals(other any) bool {
	o := c.other(other)
	if !c.IsColor() || !o.IsColor() {
		return false
	}
	s1, err1 := c.AsRGBAPercent(WithMaxPrecision())
	s2, err2 := o.AsRGBAPercent(WithMaxPrecision())
	return err1 == nil && err2 == nil && s1 == s2
}
