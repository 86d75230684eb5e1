package convert

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"colorful/color"
	"colorful/config"
	"colorful/numfmt"
)

// Values is a struct that holds variables we make available for output
// template expansion. Notations a color cannot be rendered in (hex for a
// translucent color for example) are empty.
type Values struct {
	Source      string
	Hex         string
	HexUC       string
	RGB         string
	RGBA        string
	RGBPercent  string
	RGBAPercent string
	AgColor     string
	Computed    string
	R, G, B, A  string // exact channel values, r, g and b in 0-255 range
	Opaque      bool
	Transparent bool
}

// renderer renders parsed colors according to output configuration.
type renderer struct {
	conf config.OutputConfig
	opts []color.Option
	tmpl *template.Template
}

func newRenderer(conf config.OutputConfig) (*renderer, error) {
	r := &renderer{conf: conf, opts: conf.Options()}
	if conf.Template == "" {
		return r, nil
	}
	tmpl, err := template.New(string(config.OutputTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(conf.Template)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.OutputTemplateFieldName, err)
	}
	r.tmpl = tmpl
	return r, nil
}

func (r *renderer) render(source string, c color.Color) (string, error) {
	if err := c.EnsureColor(); err != nil {
		return "", err
	}
	if r.tmpl != nil {
		return r.expand(source, c)
	}

	switch r.conf.Format {
	case config.OutputFormatHex:
		return c.AsHex(r.opts...)
	case config.OutputFormatRgb:
		return c.AsRGB()
	case config.OutputFormatRgba:
		return c.AsRGBA(r.opts...)
	case config.OutputFormatRgbPercent:
		return c.AsRGBPercent(r.opts...)
	case config.OutputFormatRgbaPercent:
		return c.AsRGBAPercent(r.opts...)
	case config.OutputFormatAgColor:
		return c.AsAgColor(r.opts...)
	case config.OutputFormatArray:
		var (
			values []float64
			err    error
		)
		if c.IsOpaque() {
			values, err = c.AsRGBArray(r.opts...)
		} else {
			values, err = c.AsRGBAArray(r.opts...)
		}
		if err != nil {
			return "", err
		}
		return formatArray(values), nil
	default:
		return c.AsComputed(r.opts...)
	}
}

func (r *renderer) expand(source string, c color.Color) (string, error) {
	ignore := func(s string, _ error) string { return s }

	values := Values{
		Source:      source,
		Hex:         ignore(c.AsHex(r.opts...)),
		HexUC:       ignore(c.AsHexUC()),
		RGB:         ignore(c.AsRGB()),
		RGBA:        ignore(c.AsRGBA(r.opts...)),
		RGBPercent:  ignore(c.AsRGBPercent(r.opts...)),
		RGBAPercent: ignore(c.AsRGBAPercent(r.opts...)),
		AgColor:     ignore(c.AsAgColor(r.opts...)),
		Computed:    ignore(c.AsComputed(r.opts...)),
		Opaque:      c.IsOpaque(),
		Transparent: c.IsTransparent(),
	}
	if rc, gc, bc, ac, ok := c.Raw(); ok {
		values.R = numfmt.Format(rc, numfmt.Max)
		values.G = numfmt.Format(gc, numfmt.Max)
		values.B = numfmt.Format(bc, numfmt.Max)
		values.A = numfmt.Format(ac, numfmt.Max)
	}

	buf := new(bytes.Buffer)
	if err := r.tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatArray(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		s, err := numfmt.FormatFloat(v, 64)
		if err != nil {
			s = fmt.Sprint(v)
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
