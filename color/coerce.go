package color

import (
	"encoding/json"
	stdcolor "image/color"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"colorful/numfmt"
)

func rawFromBytes(rgb [3]uint8, a decimal.Decimal) *rawColor {
	return &rawColor{
		r: decimal.NewFromInt(int64(rgb[0])),
		g: decimal.NewFromInt(int64(rgb[1])),
		b: decimal.NewFromInt(int64(rgb[2])),
		a: a,
	}
}

// coerce dispatches on the shape of v. Structured input is re-serialized
// into rgb()/rgba() text so that every entry point shares the grammar.
func (p *Parser) coerce(v any) *rawColor {
	switch x := v.(type) {
	case nil, bool:
		return nil
	case string:
		return p.parseString(x)
	case stdcolor.Color:
		return p.coerceImageColor(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return p.parseString(rv.String())
	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		return p.coerceSequence(elems)
	case reflect.Map:
		return p.coerceMap(rv)
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return p.coerce(rv.Elem().Interface())
	}
	p.log.Debug("Unsupported color input", zap.Stringer("type", rv.Type()))
	return nil
}

func (p *Parser) coerceImageColor(c stdcolor.Color) *rawColor {
	n := stdcolor.NRGBAModel.Convert(c).(stdcolor.NRGBA)
	a := numfmt.Div(decimal.NewFromInt(int64(n.A)), dec255)
	return rawFromBytes([3]uint8{n.R, n.G, n.B}, a)
}

func (p *Parser) coerceSequence(elems []any) *rawColor {
	if len(elems) != 3 && len(elems) != 4 {
		p.log.Debug("Color sequence must have 3 or 4 elements", zap.Int("length", len(elems)))
		return nil
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		s, ok := serializeElement(e)
		if !ok {
			p.log.Debug("Unsupported color sequence element", zap.Int("index", i), zap.Any("value", e))
			return nil
		}
		parts[i] = s
	}
	fn := "rgb"
	if len(parts) == 4 {
		fn = "rgba"
	}
	return p.match(fn+"("+strings.Join(parts, ", ")+")", sequenceGrammars)
}

var (
	rgbKeys  = []string{"r", "g", "b"}
	rgbaKeys = []string{"r", "g", "b", "a"}
)

// coerceMap accepts maps keyed by strings holding exactly {r,g,b} or
// {r,g,b,a}.
func (p *Parser) coerceMap(rv reflect.Value) *rawColor {
	if rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	keys := rgbKeys
	if rv.Len() == 4 {
		keys = rgbaKeys
	}
	if rv.Len() != len(keys) {
		p.log.Debug("Color map must have keys r, g, b and optionally a", zap.Int("keys", rv.Len()))
		return nil
	}
	elems := make([]any, 0, len(keys))
	for _, k := range keys {
		val := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if !val.IsValid() {
			p.log.Debug("Color map is missing key", zap.String("key", k))
			return nil
		}
		elems = append(elems, val.Interface())
	}
	return p.coerceSequence(elems)
}

// serializeElement renders a sequence element as grammar text. Floats use
// the shortest decimal form, never an exponent.
func serializeElement(e any) (string, bool) {
	switch x := e.(type) {
	case string:
		if strings.ContainsAny(x, ",()") {
			return "", false
		}
		return x, true
	case decimal.Decimal:
		return x.String(), true
	case *decimal.Decimal:
		if x == nil {
			return "", false
		}
		return x.String(), true
	case json.Number:
		d, err := numfmt.Parse(string(x))
		if err != nil {
			return "", false
		}
		return d.String(), true
	}

	rv := reflect.ValueOf(e)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		s, err := numfmt.FormatFloat(rv.Float(), rv.Type().Bits())
		if err != nil {
			return "", false
		}
		return s, true
	case reflect.String:
		return serializeElement(rv.String())
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return "", false
		}
		return serializeElement(rv.Elem().Interface())
	}
	return "", false
}
