package svg_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"

	"colorful/svg"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <style>.accent { fill: #0490a3; }</style>
  <defs>
    <linearGradient id="g">
      <stop offset="0" stop-color="turquoise"/>
      <stop offset="1" stop-color="rgba(0, 153, 170, .5)"/>
    </linearGradient>
  </defs>
  <rect id="box" width="10" height="10" fill="url(#g)" stroke="#09A"/>
  <circle r="2" style="fill: transparent; stroke-width: 2"/>
</svg>`

func TestExtract(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	e := svg.NewExtractor(log, nil, nil)

	occ, err := e.Extract(strings.NewReader(sample), "sample.svg", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	expected := []struct {
		selector, property string
		rgba               string
	}{
		{".accent", "fill", "rgba(4, 144, 163, 1)"},
		{"stop", "stop-color", "rgba(64, 224, 208, 1)"},
		{"stop", "stop-color", "rgba(0, 153, 170, 0.5)"},
		{"rect#box", "stroke", "rgba(0, 153, 170, 1)"},
		{"circle", "fill", "rgba(0, 0, 0, 0)"},
	}
	if len(occ) != len(expected) {
		for _, o := range occ {
			t.Logf("%s %s %s", o.Selector, o.Property, o.Text)
		}
		t.Fatalf("expected %d occurrences, got %d", len(expected), len(occ))
	}
	for i, w := range expected {
		o := occ[i]
		got, err := o.Color.AsRGBA()
		if err != nil {
			t.Fatalf("occurrence %d: %v", i, err)
		}
		if o.Selector != w.selector || o.Property != w.property || got != w.rgba {
			t.Errorf("occurrence %d = {%s %s %s}, want %+v", i, o.Selector, o.Property, got, w)
		}
		if o.Source != "sample.svg" {
			t.Errorf("occurrence %d has source %q", i, o.Source)
		}
	}
}

func TestExtract_PropertyFilter(t *testing.T) {
	e := svg.NewExtractor(zap.NewNop(), nil, nil)

	occ, err := e.Extract(strings.NewReader(sample), "sample.svg", []string{"stroke"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(occ) != 1 || occ[0].Text != "#09A" {
		t.Errorf("unexpected occurrences %+v", occ)
	}
}

func TestExtract_Malformed(t *testing.T) {
	e := svg.NewExtractor(nil, nil, nil)
	if _, err := e.Extract(strings.NewReader(""), "empty.svg", nil); err == nil {
		t.Error("expected error for empty document")
	}
}

func TestExtract_ForcedEncoding(t *testing.T) {
	doc, err := charmap.Windows1251.NewEncoder().String(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg"><rect id="синий" fill="blue"/></svg>`)
	if err != nil {
		t.Fatalf("unable to encode sample: %v", err)
	}

	e := svg.NewExtractor(nil, nil, nil)
	e.ForceEncoding(charmap.Windows1251)

	occ, err := e.Extract(strings.NewReader(doc), "cp1251.svg", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if occ[0].Selector != "rect#синий" || occ[0].Text != "blue" {
		t.Errorf("unexpected occurrence %+v", occ[0])
	}
}
