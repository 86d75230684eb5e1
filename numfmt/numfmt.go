// Package numfmt renders decimal numbers as plain text with either a fixed
// number of fractional digits or the full precision they carry.
//
// All arithmetic is done on exact decimals, so rounding happens in base 10:
// Round(1.005, 2) is 1.01, not the 1.00 binary floating point would give.
package numfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxFractionDigits limits full precision output. Values that need more
// fractional digits are rounded to this many.
const MaxFractionDigits = 20

// GuardDigits is the number of fractional digits non-terminating divisions
// are carried to before any formatting takes place.
const GuardDigits = 40

var half = decimal.New(5, -1)

// Precision selects how many fractional digits a value keeps when rendered.
// The zero value means zero fractional digits.
type Precision struct {
	digits int32
	max    bool
}

// Max keeps every digit the value has (up to MaxFractionDigits).
var Max = Precision{max: true}

// Digits keeps n fractional digits. Negative n rounds the integer part:
// Digits(-1) renders 104 as 100.
func Digits(n int) Precision {
	return Precision{digits: int32(n)}
}

// IsMax reports whether p requests full precision.
func (p Precision) IsMax() bool {
	return p.max
}

// Places returns the number of fractional digits, meaningless for Max.
func (p Precision) Places() int {
	return int(p.digits)
}

func (p Precision) String() string {
	if p.max {
		return "max"
	}
	return strconv.Itoa(int(p.digits))
}

// ParsePrecision accepts "max" or an integer.
func ParsePrecision(s string) (Precision, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "max") {
		return Max, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Precision{}, fmt.Errorf("precision must be an integer or \"max\": %w", err)
	}
	return Digits(n), nil
}

// adjust implements decimal-shift rounding: the point is moved by places
// digits, the integer operation is applied and the point is moved back.
func adjust(op func(decimal.Decimal) decimal.Decimal, d decimal.Decimal, places int32) decimal.Decimal {
	if places == 0 {
		return op(d)
	}
	return op(d.Shift(places)).Shift(-places)
}

func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// Round rounds d to places fractional digits, ties towards positive infinity.
func Round(d decimal.Decimal, places int) decimal.Decimal {
	return adjust(roundHalfUp, d, int32(places))
}

// Floor rounds d down to places fractional digits.
func Floor(d decimal.Decimal, places int) decimal.Decimal {
	return adjust(decimal.Decimal.Floor, d, int32(places))
}

// Ceil rounds d up to places fractional digits.
func Ceil(d decimal.Decimal, places int) decimal.Decimal {
	return adjust(decimal.Decimal.Ceil, d, int32(places))
}

// Apply returns d rounded as p requests.
func Apply(d decimal.Decimal, p Precision) decimal.Decimal {
	if p.max {
		if d.Exponent() < -MaxFractionDigits {
			return Round(d, MaxFractionDigits)
		}
		return d
	}
	return Round(d, int(p.digits))
}

// Format renders d in plain decimal notation after applying p. Trailing
// fractional zeros are dropped, scientific notation is never produced.
func Format(d decimal.Decimal, p Precision) string {
	return Apply(d, p).String()
}

// Float returns the float64 closest to d.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

var errNotFinite = errors.New("value is not a finite number")

// FromFloat converts f using the shortest decimal text that reads back as
// the same float64, so 0.1 becomes exactly 0.1.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, errNotFinite
	}
	return decimal.NewFromFloat(f), nil
}

// FormatFloat renders f in plain decimal notation with the shortest digits
// that identify it. bitSize is 32 or 64.
func FormatFloat(f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errNotFinite
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize), nil
}

// Parse reads decimal text. A missing integer part (".5") is accepted.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "."):
		s = "0" + s
	case strings.HasPrefix(s, "-."), strings.HasPrefix(s, "+."):
		s = s[:1] + "0" + s[1:]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unable to parse decimal %q: %w", s, err)
	}
	return d, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Div divides exactly when the quotient terminates within GuardDigits
// fractional digits and rounds at GuardDigits otherwise.
func Div(d, by decimal.Decimal) decimal.Decimal {
	return d.DivRound(by, GuardDigits)
}
