// Package svg finds color values in SVG documents: presentation attributes,
// inline style attributes and embedded style sheets.
package svg

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"colorful/color"
	"colorful/css"
)

// PresentationAttributes are SVG attributes holding a color.
var PresentationAttributes = []string{
	"fill",
	"stroke",
	"stop-color",
	"flood-color",
	"lighting-color",
	"color",
}

// Extractor reports colors used in SVG documents.
type Extractor struct {
	log    *zap.Logger
	css    *css.Parser
	colors *color.Parser
	forced encoding.Encoding
}

// NewExtractor creates an extractor. Nil parsers are replaced with
// defaults.
func NewExtractor(log *zap.Logger, cssParser *css.Parser, colorParser *color.Parser) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	if cssParser == nil {
		cssParser = css.NewParser(log)
	}
	if colorParser == nil {
		colorParser = color.NewParser(log)
	}
	return &Extractor{log: log.Named("svg"), css: cssParser, colors: colorParser}
}

// ForceEncoding makes Extract decode documents with enc ignoring encoding
// declared in XML prolog. Nil restores detection.
func (e *Extractor) ForceEncoding(enc encoding.Encoding) {
	e.forced = enc
}

// Extract reads an SVG document from r. When props is not empty only these
// properties (attribute or CSS property names) are inspected.
func (e *Extractor) Extract(r io.Reader, source string, props []string) ([]css.Occurrence, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if e.forced != nil {
		r = transform.NewReader(r, e.forced.NewDecoder())
		doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
			return input, nil
		}
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read SVG %s: %w", source, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("SVG %s has no root element", source)
	}
	if !strings.EqualFold(root.Tag, "svg") {
		e.log.Warn("Unexpected root element", zap.String("source", source), zap.String("tag", root.FullTag()))
	}

	var out []css.Occurrence
	for _, el := range append([]*etree.Element{root}, root.FindElements(".//*")...) {
		path := elementPath(el)

		if el.Tag == "style" {
			sheet := e.css.Parse([]byte(el.Text()), source)
			out = append(out, css.ExtractColors(sheet, e.colors, props)...)
			continue
		}

		for _, name := range PresentationAttributes {
			value := el.SelectAttrValue(name, "")
			if value == "" {
				continue
			}
			sheet := e.css.ParseInline(name+": "+value, source)
			out = append(out, relocate(css.ExtractColors(sheet, e.colors, props), path)...)
		}

		if style := el.SelectAttrValue("style", ""); style != "" {
			sheet := e.css.ParseInline(style, source)
			out = append(out, relocate(css.ExtractColors(sheet, e.colors, props), path)...)
		}
	}
	e.log.Debug("SVG scanned", zap.String("source", source), zap.Int("colors", len(out)))
	return out, nil
}

// elementPath names an element for reports: tag and id when present.
func elementPath(el *etree.Element) string {
	if id := el.SelectAttrValue("id", ""); id != "" {
		return el.Tag + "#" + id
	}
	return el.Tag
}

func relocate(occ []css.Occurrence, selector string) []css.Occurrence {
	for i := range occ {
		occ[i].Selector = selector
	}
	return occ
}
