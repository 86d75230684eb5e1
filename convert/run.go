// Package convert implements program commands.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"colorful/color"
	"colorful/config"
	"colorful/state"
)

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// outputConfig returns configured output section with command line
// overrides applied.
func outputConfig(cmd *cli.Command, conf config.OutputConfig, log *zap.Logger) config.OutputConfig {
	if cmd.IsSet("to") {
		format, err := config.ParseOutputFormat(cmd.String("to"))
		if err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", conf.Format))
		} else {
			conf.Format = format
		}
	}
	if cmd.IsSet("precision") {
		conf.Precision = max(cmd.Int("precision"), 0)
	}
	if cmd.IsSet("max-precision") {
		conf.MaxPrecision = cmd.Bool("max-precision")
	}
	if cmd.IsSet("upper") {
		conf.UpperCase = cmd.Bool("upper")
	}
	if cmd.IsSet("no-prefix") {
		conf.Prefix = !cmd.Bool("no-prefix")
	}
	if cmd.IsSet("template") {
		conf.Template = cmd.String("template")
	}
	return conf
}

// Run converts each argument into requested notation.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	if cmd.Args().Len() == 0 {
		return errors.New("no color has been specified")
	}

	r, err := newRenderer(outputConfig(cmd, env.Cfg.Output, log))
	if err != nil {
		return err
	}
	return convertAll(ctx, output(cmd), cmd.Args().Slice(), env.Parser(), r, log)
}

// convertAll prints one line per argument. Failures are reported in place and
// returned together, remaining arguments are still processed.
func convertAll(ctx context.Context, w io.Writer, args []string, parser *color.Parser, r *renderer, log *zap.Logger) (err error) {
	for _, arg := range args {
		if e := ctx.Err(); e != nil {
			return multierr.Append(err, e)
		}

		v, e := parseArgument(arg)
		if e != nil {
			err = multierr.Append(err, e)
			fmt.Fprintf(w, "%s\tinvalid\n", arg)
			continue
		}
		c := parser.Parse(v)
		log.Debug("Converting", zap.String("argument", arg), zap.Object("color", c))

		s, e := r.render(arg, c)
		if e != nil {
			err = multierr.Append(err, e)
			fmt.Fprintf(w, "%s\tinvalid\n", arg)
			continue
		}
		fmt.Fprintln(w, s)
	}
	return err
}

// Compare prints "true" when both arguments represent the same color.
func Compare(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compare")

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("exactly two colors expected, got %d", cmd.Args().Len())
	}
	tolerance := env.Cfg.Comparison.Tolerance
	if cmd.IsSet("tolerance") {
		tolerance = cmd.Int("tolerance")
	}

	equal, err := compare(cmd.Args().Get(0), cmd.Args().Get(1), env.Parser(), tolerance, cmd.Bool("strict"))
	if err != nil {
		return err
	}
	log.Debug("Compared", zap.Strings("colors", cmd.Args().Slice()), zap.Int("tolerance", tolerance), zap.Bool("equal", equal))
	fmt.Fprintln(output(cmd), equal)
	return nil
}

func compare(a, b string, parser *color.Parser, tolerance int, strict bool) (bool, error) {
	va, err := parseArgument(a)
	if err != nil {
		return false, err
	}
	vb, err := parseArgument(b)
	if err != nil {
		return false, err
	}

	ca := parser.Parse(va)
	if strict {
		return ca.StrictlyEquals(vb), nil
	}
	return ca.Equals(vb, color.WithTolerance(tolerance)), nil
}

// Keywords lists known color keywords with their values.
func Keywords(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	r, err := newRenderer(outputConfig(cmd, env.Cfg.Output, env.Log.Named("keywords")))
	if err != nil {
		return err
	}
	return listKeywords(output(cmd), env.Parser(), r)
}

func listKeywords(w io.Writer, parser *color.Parser, r *renderer) error {
	for _, name := range append(color.Keywords(), color.Transparent) {
		s, err := r.render(name, parser.Parse(name))
		if err != nil {
			// hex and rgb notations cannot express transparent
			s = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, s)
	}
	return nil
}
