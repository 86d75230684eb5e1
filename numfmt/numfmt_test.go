package numfmt_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"colorful/numfmt"
)

func TestRound_DecimalCorrect(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		places int
		want   string
	}{
		{"1.005 to 2 digits", "1.005", 2, "1.01"},
		{"1.004 to 2 digits", "1.004", 2, "1"},
		{"half up at zero places", "2.5", 0, "3"},
		{"negative half goes up", "-2.5", 0, "-2"},
		{"negative below half", "-2.51", 0, "-3"},
		{"negative places", "104", -1, "100"},
		{"negative places half", "105", -1, "110"},
		{"ten digits", "254.49999999946", 10, "254.4999999995"},
		{"ten digits up", "254.50000000015", 10, "254.5000000002"},
		{"no-op", "0.5", 3, "0.5"},
		{"tiny", "0.000000000421", 12, "0.000000000421"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numfmt.Round(numfmt.MustParse(tt.value), tt.places).String()
			if got != tt.want {
				t.Errorf("Round(%s, %d) = %s, want %s", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestFloorCeil(t *testing.T) {
	d := numfmt.MustParse("1.2345")
	if got := numfmt.Floor(d, 2).String(); got != "1.23" {
		t.Errorf("Floor = %s, want 1.23", got)
	}
	if got := numfmt.Ceil(d, 2).String(); got != "1.24" {
		t.Errorf("Ceil = %s, want 1.24", got)
	}
	if got := numfmt.Floor(numfmt.MustParse("-1.2345"), 0).String(); got != "-2" {
		t.Errorf("Floor negative = %s, want -2", got)
	}
	if got := numfmt.Ceil(numfmt.MustParse("104"), -1).String(); got != "110" {
		t.Errorf("Ceil negative places = %s, want 110", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		prec  numfmt.Precision
		want  string
	}{
		{"max keeps digits", "66.078", numfmt.Max, "66.078"},
		{"max small", "0.000000000000000001", numfmt.Max, "0.000000000000000001"},
		{"max from exponent", "1.23e-18", numfmt.Max, "0.00000000000000000123"},
		{"max 20 digits", "0.00000000000000000001", numfmt.Max, "0.00000000000000000001"},
		{"max rounds past 20 digits", "0.123456789012345678905", numfmt.Max, "0.12345678901234567891"},
		{"max drops trailing zeros", "100.000", numfmt.Max, "100"},
		{"zero digits", "66.27450980392156862745", numfmt.Digits(0), "66"},
		{"five digits", "66.27450980392156862745", numfmt.Digits(5), "66.27451"},
		{"digits trims zeros", "60.000000", numfmt.Digits(5), "60"},
		{"zero value is zero digits", "0.6", numfmt.Precision{}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numfmt.Format(numfmt.MustParse(tt.value), tt.prec)
			if got != tt.want {
				t.Errorf("Format(%s, %v) = %s, want %s", tt.value, tt.prec, got, tt.want)
			}
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	d := numfmt.MustParse("171.510810205")
	for _, p := range []numfmt.Precision{numfmt.Max, numfmt.Digits(3), numfmt.Digits(0)} {
		if a, b := numfmt.Format(d, p), numfmt.Format(d, p); a != b {
			t.Errorf("Format not idempotent for %v: %s != %s", p, a, b)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{".5", "0.5", false},
		{"-.5", "-0.5", false},
		{" 12.50 ", "12.5", false},
		{"1e-18", "0.000000000000000001", false},
		{"abc", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := numfmt.Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestParsePrecision(t *testing.T) {
	p, err := numfmt.ParsePrecision("max")
	if err != nil || !p.IsMax() {
		t.Errorf("ParsePrecision(max) = %v, %v", p, err)
	}
	p, err = numfmt.ParsePrecision("5")
	if err != nil || p.IsMax() || p.Places() != 5 {
		t.Errorf("ParsePrecision(5) = %v, %v", p, err)
	}
	if _, err = numfmt.ParsePrecision("five"); err == nil {
		t.Error("ParsePrecision(five) expected error")
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.1, "0.1"},
		{4.499999999999999, "4.499999999999999"},
		{143.5, "143.5"},
		{1e-18, "0.000000000000000001"},
	}
	for _, tt := range tests {
		d, err := numfmt.FromFloat(tt.in)
		if err != nil {
			t.Fatalf("FromFloat(%v) error = %v", tt.in, err)
		}
		if d.String() != tt.want {
			t.Errorf("FromFloat(%v) = %s, want %s", tt.in, d.String(), tt.want)
		}
		if numfmt.Float(d) != tt.in {
			t.Errorf("Float(FromFloat(%v)) = %v", tt.in, numfmt.Float(d))
		}
	}
}

func TestFormatFloat_NeverScientific(t *testing.T) {
	got, err := numfmt.FormatFloat(1e-18, 64)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0.000000000000000001" {
		t.Errorf("FormatFloat(1e-18) = %s", got)
	}
}

func TestDiv(t *testing.T) {
	// exact quotient is kept as is
	if got := numfmt.Div(numfmt.MustParse("0.000000000000000255"), decimal.NewFromInt(255)).String(); got != "0.000000000000000001" {
		t.Errorf("Div exact = %s", got)
	}
	// repeating quotient is carried to guard digits
	q := numfmt.Div(decimal.NewFromInt(169), decimal.NewFromInt(255))
	if got := numfmt.Format(q, numfmt.Max); got != "0.66274509803921568627" {
		t.Errorf("Div repeating = %s", got)
	}
}
