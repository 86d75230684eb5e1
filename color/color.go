// Package color parses CSS and AgColor color notations into an exact
// internal RGBA record and renders it back into any supported notation
// without losing precision.
//
// Supported input:
//
//	#RRGGBB, #RGB                 hex, one case per value
//	rgb(255, 0, 0)                rgba() is an alias, alpha is optional
//	rgb(100%, 0%, 0%)             channels must all be percentages
//	AgColor(1, 0, 0, 0.5)         fractions
//	red, transparent              keywords
//	[]any{255, 0, "0%"}           sequences and maps of r, g, b, a
//
// Values that do not match produce a Color for which IsColor is false.
// Conversions on such a value fail with ErrNotColor.
package color

import (
	"fmt"
	stdcolor "image/color"
	"strings"

	"github.com/shopspring/decimal"

	"colorful/numfmt"
)

// Color is an immutable parsed color. The zero value is not a color.
type Color struct {
	raw    *rawColor
	source string
	parser *Parser
}

// IsColor reports whether the input was recognized.
func (c Color) IsColor() bool {
	return c.raw != nil
}

// IsOpaque reports whether c is a color with alpha exactly 1.
func (c Color) IsOpaque() bool {
	return c.IsColor() && c.raw.a.Equal(decOne)
}

// IsTransparent reports whether c is a color with alpha below 1.
func (c Color) IsTransparent() bool {
	return c.IsColor() && c.raw.a.LessThan(decOne)
}

// EnsureColor returns an error wrapping ErrNotColor unless c is a color.
func (c Color) EnsureColor() error {
	if !c.IsColor() {
		return fmt.Errorf("%w (created from %q)", ErrNotColor, c.source)
	}
	return nil
}

// EnsureOpaque returns an error wrapping ErrNotOpaque for transparent colors.
func (c Color) EnsureOpaque() error {
	if err := c.EnsureColor(); err != nil {
		return err
	}
	if !c.IsOpaque() {
		return fmt.Errorf("%w (a = %s)", ErrNotOpaque, numfmt.Format(c.raw.a, numfmt.Max))
	}
	return nil
}

// EnsureTransparent returns an error wrapping ErrNotTransparent for opaque
// colors.
func (c Color) EnsureTransparent() error {
	if err := c.EnsureColor(); err != nil {
		return err
	}
	if !c.IsTransparent() {
		return ErrNotTransparent
	}
	return nil
}

// AsHex renders "#rrggbb". Options: UpperCase, LowerCase, WithoutPrefix.
func (c Color) AsHex(opts ...Option) (string, error) {
	if err := c.EnsureOpaque(); err != nil {
		return "", err
	}
	o := newOptions(opts)

	var b strings.Builder
	if !o.noPrefix {
		b.WriteByte('#')
	}
	format := "%02x"
	if o.upperCase {
		format = "%02X"
	}
	for _, v := range c.base256() {
		fmt.Fprintf(&b, format, v)
	}
	return b.String(), nil
}

// AsHexUC is AsHex with upper case digits.
func (c Color) AsHexUC() (string, error) {
	return c.AsHex(UpperCase())
}

// AsHexLC is AsHex with lower case digits.
func (c Color) AsHexLC() (string, error) {
	return c.AsHex(LowerCase())
}

// AsRGB renders "rgb(r, g, b)". Channels are always rounded to integers.
func (c Color) AsRGB() (string, error) {
	if err := c.EnsureOpaque(); err != nil {
		return "", err
	}
	return "rgb(" + c.joinBase256() + ")", nil
}

// AsRGBA renders "rgba(r, g, b, a)" with integer channels. Alpha keeps full
// precision unless WithAlphaPrecision is given.
func (c Color) AsRGBA(opts ...Option) (string, error) {
	if err := c.EnsureColor(); err != nil {
		return "", err
	}
	o := newOptions(opts)
	return "rgba(" + c.joinBase256() + ", " + c.alphaText(o) + ")", nil
}

// AsRGBPercent renders "rgb(p%, p%, p%)". Channels are rounded to integers
// unless WithPrecision or WithMaxPrecision is given.
func (c Color) AsRGBPercent(opts ...Option) (string, error) {
	if err := c.EnsureOpaque(); err != nil {
		return "", err
	}
	o := newOptions(opts)
	return "rgb(" + strings.Join(c.percents(o), ", ") + ")", nil
}

// AsRGBAPercent renders "rgba(p%, p%, p%, a)".
func (c Color) AsRGBAPercent(opts ...Option) (string, error) {
	if err := c.EnsureColor(); err != nil {
		return "", err
	}
	o := newOptions(opts)
	return "rgba(" + strings.Join(c.percents(o), ", ") + ", " + c.alphaText(o) + ")", nil
}

// AsAgColor renders "AgColor( f, f, f, a )". Fractions keep full precision
// unless WithPrecision is given.
func (c Color) AsAgColor(opts ...Option) (string, error) {
	if err := c.EnsureColor(); err != nil {
		return "", err
	}
	o := newOptions(opts)
	p := o.channels(numfmt.Max)

	parts := make([]string, 0, 4)
	for _, ch := range c.raw.channels() {
		parts = append(parts, numfmt.Format(toFraction(ch), p))
	}
	parts = append(parts, c.alphaText(o))
	return "AgColor( " + strings.Join(parts, ", ") + " )", nil
}

// AsRGBArray returns r, g, b rounded to integers unless WithPrecision or
// WithMaxPrecision is given.
func (c Color) AsRGBArray(opts ...Option) ([]float64, error) {
	if err := c.EnsureOpaque(); err != nil {
		return nil, err
	}
	return c.numbers(newOptions(opts)), nil
}

// AsRGBAArray is AsRGBArray with alpha appended. Alpha is not rounded unless
// WithAlphaPrecision is given.
func (c Color) AsRGBAArray(opts ...Option) ([]float64, error) {
	if err := c.EnsureColor(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return append(c.numbers(o), numfmt.Float(numfmt.Apply(c.raw.a, o.alphaPrecision()))), nil
}

// AsComputed picks AsRGB for opaque colors and AsRGBA otherwise, the way
// browsers report computed styles.
func (c Color) AsComputed(opts ...Option) (string, error) {
	if err := c.EnsureColor(); err != nil {
		return "", err
	}
	if c.IsOpaque() {
		return c.AsRGB()
	}
	return c.AsRGBA(opts...)
}

// AsNRGBA converts c to a non-premultiplied image/color value.
func (c Color) AsNRGBA() (stdcolor.NRGBA, error) {
	if err := c.EnsureColor(); err != nil {
		return stdcolor.NRGBA{}, err
	}
	ch := c.base256()
	a := numfmt.Round(c.raw.a.Mul(dec255), 0)
	return stdcolor.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(a.IntPart())}, nil
}

// String returns the computed form or a short note for invalid colors.
func (c Color) String() string {
	s, err := c.AsComputed()
	if err != nil {
		return "invalid color (" + c.source + ")"
	}
	return s
}

func (c Color) base256() [3]uint8 {
	var out [3]uint8
	for i, ch := range c.raw.channels() {
		out[i] = uint8(numfmt.Round(ch, 0).IntPart())
	}
	return out
}

func (c Color) joinBase256() string {
	ch := c.base256()
	return fmt.Sprintf("%d, %d, %d", ch[0], ch[1], ch[2])
}

func (c Color) percents(o *options) []string {
	p := o.channels(numfmt.Digits(0))
	out := make([]string, 0, 3)
	for _, ch := range c.raw.channels() {
		out = append(out, numfmt.Format(toPercent(ch), p)+"%")
	}
	return out
}

func (c Color) numbers(o *options) []float64 {
	p := o.channels(numfmt.Digits(0))
	out := make([]float64, 0, 4)
	for _, ch := range c.raw.channels() {
		out = append(out, numfmt.Float(numfmt.Apply(ch, p)))
	}
	return out
}

func (c Color) alphaText(o *options) string {
	return numfmt.Format(c.raw.a, o.alphaPrecision())
}

// Raw returns the exact channel values, ok is false for invalid colors.
func (c Color) Raw() (r, g, b, a decimal.Decimal, ok bool) {
	if !c.IsColor() {
		return
	}
	return c.raw.r, c.raw.g, c.raw.b, c.raw.a, true
}
