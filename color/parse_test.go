package color_test

import (
	"encoding/json"
	stdcolor "image/color"
	"math"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"colorful/color"
)

func newTestParser(t *testing.T, opts ...color.ParserOption) *color.Parser {
	t.Helper()
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	return color.NewParser(log, opts...)
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []float64
	}{
		{"keyword", "turquoise", []float64{64, 224, 208, 1}},
		{"keyword rebeccapurple", "rebeccapurple", []float64{102, 51, 153, 1}},
		{"transparent", "transparent", []float64{0, 0, 0, 0}},
		{"transparent any case", "TransParent", []float64{0, 0, 0, 0}},

		{"hex upper", "#0490A3", []float64{4, 144, 163, 1}},
		{"hex lower", "#0490a3", []float64{4, 144, 163, 1}},
		{"short hex upper", "#09A", []float64{0, 153, 170, 1}},
		{"short hex lower", "#09a", []float64{0, 153, 170, 1}},
		{"hex padded", "  #0490a3 ", []float64{4, 144, 163, 1}},

		{"rgb", "rgb(0, 153, 170)", []float64{0, 153, 170, 1}},
		{"rgb without spaces", "rgb(0,153,170)", []float64{0, 153, 170, 1}},
		{"rgb excess spaces", "  rgb   (   0   ,   153   ,   170   )   ", []float64{0, 153, 170, 1}},

		{"percent", "rgb(0%, 60%, 67%)", []float64{0, 153, 171, 1}},
		{"percent fractions", "rgb(0.0000%, 100.0%, 67.2587491%)", []float64{0, 255, 172, 1}},
		{"percent leading dot", "rgb(.623%, 100.0%, 67.2587491%)", []float64{2, 255, 172, 1}},
		{"percent without spaces", "rgb(0%,60%,67%)", []float64{0, 153, 171, 1}},
		{"percent excess spaces", "  rgb   (   0%   ,   60%   ,   67%   )   ", []float64{0, 153, 171, 1}},

		{"rgba opaque", "rgba(0, 153, 170, 1)", []float64{0, 153, 170, 1}},
		{"rgba half", "rgba(0, 153, 170, 0.5)", []float64{0, 153, 170, 0.5}},
		{"rgba leading dot alpha", "rgba(0, 153, 170, .5)", []float64{0, 153, 170, 0.5}},
		{"rgba zero alpha", "rgba(0, 153, 170, 0)", []float64{0, 153, 170, 0}},
		{"rgba excess spaces", "  rgba   (   0   ,   153   ,   170,   1   )   ", []float64{0, 153, 170, 1}},
		{"rgba without alpha", "rgba(0, 153, 170)", []float64{0, 153, 170, 1}},

		{"rgba percent", "rgba(0%, 60%, 67%, .5)", []float64{0, 153, 171, 0.5}},
		{"rgba percent fractions", "rgba(0.0000%, 100.0%, 67.2587491%, 0.5)", []float64{0, 255, 172, 0.5}},
		{"rgba percent excess spaces", "  rgba   (   0%   ,   60%   ,   67%   ,   .5   )   ", []float64{0, 153, 171, 0.5}},

		{"agcolor", "AgColor(0, 1, 0.672587491, 0.5)", []float64{0, 255, 172, 0.5}},
		{"agcolor long zeros", "AgColor(0.0000, 1.0, 0.672587491, 0.5)", []float64{0, 255, 172, 0.5}},
		{"agcolor leading dots", "AgColor(.00623, 1, .672587491, .5)", []float64{2, 255, 172, 0.5}},
		{"agcolor without spaces", "AgColor(.00623,1,.672587491,.5)", []float64{2, 255, 172, 0.5}},
		{"agcolor excess spaces", "   AgColor   (   .00623   ,   1   ,   .672587491   ,   .5   )", []float64{2, 255, 172, 0.5}},
		{"agcolor without alpha", "AgColor(0, 1, 0.672587491)", []float64{0, 255, 172, 1}},

		{"int slice", []int{4, 144, 163}, []float64{4, 144, 163, 1}},
		{"any slice with alpha", []any{4, 144, 163, 0.5}, []float64{4, 144, 163, 0.5}},
		{"float slice", []float64{4.499999999999999, 143.5, 163.0000001010101}, []float64{4, 144, 163, 1}},
		{"array", [3]uint8{4, 144, 163}, []float64{4, 144, 163, 1}},
		{"percent strings", []string{".623%", "100.0%", "67.2587491%"}, []float64{2, 255, 172, 1}},
		{"percent strings with alpha", []any{".623%", "100.0%", "67.2587491%", 0.5}, []float64{2, 255, 172, 0.5}},
		{"mixed sequence", []any{4.499999999999999, 143.5, "67.2587491%"}, []float64{4, 144, 172, 1}},
		{"mixed sequence with alpha", []any{4.499999999999999, 143.5, "67%", 0.5}, []float64{4, 144, 171, 0.5}},
		{"decimal elements", []decimal.Decimal{decimal.RequireFromString("4.5"), decimal.NewFromInt(144), decimal.NewFromInt(163)}, []float64{5, 144, 163, 1}},
		{"json numbers", []any{json.Number("4"), json.Number("144"), json.Number("163")}, []float64{4, 144, 163, 1}},

		{"map", map[string]int{"r": 4, "g": 144, "b": 163}, []float64{4, 144, 163, 1}},
		{"map with alpha", map[string]any{"r": 4, "g": 144, "b": 163, "a": 0.5}, []float64{4, 144, 163, 0.5}},
		{"map percents", map[string]string{"r": ".623%", "g": "100.0%", "b": "67.2587491%"}, []float64{2, 255, 172, 1}},
		{"map mixed", map[string]any{"r": 4.499999999999999, "g": 143.5, "b": "67%", "a": 0.5}, []float64{4, 144, 171, 0.5}},

		{"image color", stdcolor.NRGBA{R: 4, G: 144, B: 163, A: 255}, []float64{4, 144, 163, 1}},
		{"existing color", color.New("#0490a3"), []float64{4, 144, 163, 1}},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := p.Parse(tt.input)
			if !c.IsColor() {
				t.Fatalf("Parse(%v) is not a color", tt.input)
			}
			got, err := c.AsRGBAArray()
			if err != nil {
				t.Fatalf("AsRGBAArray() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("AsRGBAArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_FullPrecision(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []float64
	}{
		{"float slice", []float64{4.499999999999999, 143.5, 163.0000001010101}, []float64{4.499999999999999, 143.5, 163.0000001010101, 1}},
		{"float slice with alpha", []float64{4.499999999999999, 143.5, 163.0000001010101, 0.5}, []float64{4.499999999999999, 143.5, 163.0000001010101, 0.5}},
		{"mixed sequence", []any{4.499999999999999, 143.5, "67.2587491%"}, []float64{4.499999999999999, 143.5, 171.509810205, 1}},
		{"mixed sequence with alpha", []any{4.499999999999999, 143.5, "67%", 0.5}, []float64{4.499999999999999, 143.5, 170.85, 0.5}},
		{"map", map[string]float64{"r": 4.499999999999999, "g": 143.5, "b": 163.0000001010101}, []float64{4.499999999999999, 143.5, 163.0000001010101, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := color.New(tt.input).AsRGBAArray(color.WithMaxPrecision())
			if err != nil {
				t.Fatalf("AsRGBAArray() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("AsRGBAArray(max) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	var nilColor *color.Color
	tests := []struct {
		name  string
		input any
	}{
		{"arbitrary word", "foo"},
		{"mixed percent", "rgb(0, 60%, 67%)"},
		{"mixed percent with alpha", "rgba(0, 60%, 67%, .5)"},
		{"empty map", map[string]any{}},
		{"incomplete map", map[string]int{"r": 10, "b": 10}},
		{"incomplete map with alpha", map[string]float64{"r": 10, "b": 10, "a": 0.5}},
		{"map with extra key", map[string]int{"r": 10, "g": 10, "b": 10, "x": 1}},
		{"map with int keys", map[int]int{0: 10, 1: 10, 2: 10}},
		{"empty slice", []any{}},
		{"words", []string{"foo", "bar", "baz"}},
		{"word percents", []string{"foo%", "bar%", "baz%"}},
		{"percent above 100", []string{"10%", "100.01%", "10%"}},
		{"negative percent", []string{"-10%", "100%", "10%"}},
		{"channel above 255", []int{10, 256, 10}},
		{"negative channel", []int{10, -10, 10}},
		{"alpha above 1", []float64{10, 250, 10, 1.01}},
		{"negative alpha", []float64{10, 250, 10, -0.01}},
		{"five elements", []int{1, 1, 1, 1, 1}},
		{"element smuggles separators", []string{"1, 2", "3", ".5"}},
		{"nan", []float64{10, 10, 10, math.NaN()}},
		{"true", true},
		{"false", false},
		{"nil", nil},
		{"nil color pointer", nilColor},
		{"struct", struct{ R, G, B int }{1, 2, 3}},
		{"mixed case hex", "#0490A3a"},
		{"mixed case long hex", "#aaBBcc"},
		{"hex without hash", "0490a3"},
		{"base256 out of range", "rgb(0, 256, 0)"},
		{"fractional base256 string", "rgb(0.5, 1, 2)"},
		{"percent out of range", "rgb(0%, 100.5%, 0%)"},
		{"fraction out of range", "AgColor(0, 1.5, 0)"},
		{"alpha out of range", "rgba(0, 0, 0, 1.1)"},
		{"two channels", "rgb(0, 0)"},
		{"rgb with alpha", "rgb(1, 2, 3, 0.5)"},
		{"rgb percent with alpha", "rgb(1%, 2%, 3%, .5)"},
		{"keyword with spaces", " red "},
		{"currentcolor", "currentcolor"},
		{"empty string", ""},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := p.Parse(tt.input); c.IsColor() {
				t.Errorf("Parse(%v) is a color, expected invalid", tt.input)
			}
		})
	}
}

func TestParse_KeywordCase(t *testing.T) {
	// Keyword lookup is exact: CSS would accept "Red", the default parser
	// does not.
	if color.New("Red").IsColor() {
		t.Error(`"Red" is a color with exact keyword lookup`)
	}
	if !color.New("red").IsColor() {
		t.Error(`"red" is not a color`)
	}

	p := newTestParser(t, color.WithCaseInsensitiveKeywords())
	got, err := p.Parse("DarkSlateGray").AsRGBAArray()
	if err != nil {
		t.Fatalf("case insensitive parse error = %v", err)
	}
	if want := []float64{47, 79, 79, 1}; !slices.Equal(got, want) {
		t.Errorf("AsRGBAArray() = %v, want %v", got, want)
	}
}

func TestParse_SharesRawRecord(t *testing.T) {
	src := color.New("rgb(0.01%, 66.078%, 66.079%)")
	clone := color.New(src)
	want, _ := src.AsRGBPercent(color.WithMaxPrecision())
	got, err := clone.AsRGBPercent(color.WithMaxPrecision())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("clone = %s, want %s", got, want)
	}

	invalid := color.New(color.New("foo"))
	if invalid.IsColor() {
		t.Error("clone of invalid color is a color")
	}
}

func TestKeywords(t *testing.T) {
	names := color.Keywords()
	if len(names) < 140 {
		t.Errorf("Keywords() has %d entries", len(names))
	}
	if !slices.IsSorted(names) {
		t.Error("Keywords() is not sorted")
	}
	if slices.Contains(names, color.Transparent) {
		t.Error("transparent must not be part of the keyword table")
	}
	if rgb, ok := color.LookupKeyword("turquoise"); !ok || rgb != [3]uint8{64, 224, 208} {
		t.Errorf("LookupKeyword(turquoise) = %v, %v", rgb, ok)
	}
}
