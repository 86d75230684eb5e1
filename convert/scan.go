package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"colorful/color"
	"colorful/css"
	"colorful/state"
	"colorful/svg"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// scanner extracts colors from style sheets and SVG documents.
type scanner struct {
	css      *css.Parser
	svg      *svg.Extractor
	colors   *color.Parser
	codePage encoding.Encoding
	props    []string
	log      *zap.Logger
}

func newScanner(log *zap.Logger, parser *color.Parser, codePage encoding.Encoding, props []string) *scanner {
	cssParser := css.NewParser(log)
	s := &scanner{
		css:      cssParser,
		svg:      svg.NewExtractor(log, cssParser, parser),
		colors:   parser,
		codePage: codePage,
		props:    props,
		log:      log,
	}
	s.svg.ForceEncoding(codePage)
	return s
}

// Scan prints colors found in the files listed on the command line.
func Scan(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("scan")

	if cmd.Args().Len() == 0 {
		return errors.New("no input files have been specified")
	}

	if cp := cmd.String("encoding"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			env.CodePage = enc
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Forcefully decoding all input files", zap.String("charset", n))
		}
	}

	props := env.Cfg.Scan.Properties
	if cmd.IsSet("property") {
		props = cmd.StringSlice("property")
	}
	unique := env.Cfg.Scan.Unique || cmd.Bool("unique")

	r, err := newRenderer(outputConfig(cmd, env.Cfg.Output, log))
	if err != nil {
		return err
	}

	s := newScanner(log, env.Parser(), env.CodePage, props)

	defer func(start time.Time) {
		log.Debug("Scanning completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var found []css.Occurrence
	for _, name := range cmd.Args().Slice() {
		if e := ctx.Err(); e != nil {
			return multierr.Append(err, e)
		}
		if e := env.Rpt.StoreCopy("input/"+filepath.Base(name), name); e != nil {
			log.Debug("Unable to store input in report", zap.String("file", name), zap.Error(e))
		}
		occ, e := s.scanFile(name)
		if e != nil {
			log.Error("Unable to scan file", zap.String("file", name), zap.Error(e))
			err = multierr.Append(err, e)
			continue
		}
		log.Debug("Scanned", zap.String("file", name), zap.Int("colors", len(occ)))
		found = append(found, occ...)
	}

	w := output(cmd)
	if unique {
		printUnique(w, found, r)
	} else {
		printOccurrences(w, found, r)
	}
	return err
}

func (s *scanner) scanFile(name string) ([]css.Occurrence, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return s.scan(name, data)
}

func (s *scanner) scan(name string, data []byte) ([]css.Occurrence, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".svg":
		return s.svg.Extract(bytes.NewReader(data), name, s.props)
	case ".css":
		text, err := s.decode(data)
		if err != nil {
			return nil, fmt.Errorf("unable to decode %s: %w", name, err)
		}
		return css.ExtractColors(s.css.Parse(text, name), s.colors, s.props), nil
	default:
		return nil, fmt.Errorf("unsupported file type %s", name)
	}
}

// decode converts style sheet to UTF-8 using forced code page or encoding
// detected from content.
func (s *scanner) decode(data []byte) ([]byte, error) {
	enc := s.codePage
	if enc == nil {
		var name string
		enc, name, _ = charset.DetermineEncoding(data, "text/css")
		s.log.Debug("Detected encoding", zap.String("charset", name))
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}

func describeOccurrence(o css.Occurrence) string {
	where := strings.Join(append(append([]string(nil), o.Context...), o.Selector), " ")
	return strings.TrimSpace(where)
}

func printOccurrences(w io.Writer, found []css.Occurrence, r *renderer) {
	for _, o := range found {
		s, err := r.render(o.Text, o.Color)
		if err != nil {
			s = "invalid"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.Source, describeOccurrence(o), o.Property, o.Text, s)
	}
}

// printUnique prints distinct rendered colors in natural order. Values which
// are not colors are skipped.
func printUnique(w io.Writer, found []css.Occurrence, r *renderer) {
	seen := make(map[string]bool)
	var list []string
	for _, o := range found {
		s, err := r.render(o.Text, o.Color)
		if err != nil || seen[s] {
			continue
		}
		seen[s] = true
		list = append(list, s)
	}
	sort.Sort(natural.StringSlice(list))
	for _, s := range list {
		fmt.Fprintln(w, s)
	}
}
