package color

import "colorful/numfmt"

// Option adjusts how a conversion or comparison is performed.
type Option func(*options)

type options struct {
	precision    numfmt.Precision
	precisionSet bool
	alpha        numfmt.Precision
	alphaSet     bool
	upperCase    bool
	noPrefix     bool
	tolerance    int
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// channels returns requested channel precision or def when none was given.
func (o *options) channels(def numfmt.Precision) numfmt.Precision {
	if o.precisionSet {
		return o.precision
	}
	return def
}

// alphaPrecision defaults to full precision, alpha is never rounded unless
// asked to.
func (o *options) alphaPrecision() numfmt.Precision {
	if o.alphaSet {
		return o.alpha
	}
	return numfmt.Max
}

// WithPrecision keeps n fractional digits of every RGB channel. Negative n
// rounds integer digits.
func WithPrecision(n int) Option {
	return UsePrecision(numfmt.Digits(n))
}

// WithMaxPrecision reproduces RGB channels with every digit they carry.
func WithMaxPrecision() Option {
	return UsePrecision(numfmt.Max)
}

// UsePrecision sets channel precision from an already parsed value.
func UsePrecision(p numfmt.Precision) Option {
	return func(o *options) {
		o.precision, o.precisionSet = p, true
	}
}

// WithAlphaPrecision rounds alpha to n fractional digits.
func WithAlphaPrecision(n int) Option {
	return func(o *options) {
		o.alpha, o.alphaSet = numfmt.Digits(n), true
	}
}

// UpperCase selects upper case hex digits.
func UpperCase() Option {
	return func(o *options) {
		o.upperCase = true
	}
}

// LowerCase selects lower case hex digits, this is the default.
func LowerCase() Option {
	return func(o *options) {
		o.upperCase = false
	}
}

// WithoutPrefix drops the leading '#' of hex output.
func WithoutPrefix() Option {
	return func(o *options) {
		o.noPrefix = true
	}
}

// WithTolerance allows each rounded channel to differ by up to n when
// testing equality.
func WithTolerance(n int) Option {
	return func(o *options) {
		o.tolerance = max(n, 0)
	}
}
