package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"colorful/color"
	"colorful/numfmt"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ParsingConfig struct {
		CaseInsensitiveKeywords bool `yaml:"case_insensitive_keywords"`
	}

	OutputConfig struct {
		Format       OutputFormat `yaml:"format" validate:"gte=0,lte=7"`
		Precision    int          `yaml:"precision" validate:"min=0,max=20"`
		MaxPrecision bool         `yaml:"max_precision"`
		UpperCase    bool         `yaml:"upper_case"`
		Prefix       bool         `yaml:"prefix"`
		Template     string       `yaml:"template"`
	}

	ComparisonConfig struct {
		Tolerance int `yaml:"tolerance" validate:"min=0,max=255"`
	}

	ScanConfig struct {
		Properties []string `yaml:"properties" validate:"dive,required"`
		Unique     bool     `yaml:"unique"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Parsing    ParsingConfig    `yaml:"parsing"`
		Output     OutputConfig     `yaml:"output"`
		Comparison ComparisonConfig `yaml:"comparison"`
		Scan       ScanConfig       `yaml:"scan"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputTemplateFieldName TemplateFieldName = "template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputTemplateFieldName)),
)

// ParserOptions translates parsing section into color parser options.
func (conf *ParsingConfig) ParserOptions() []color.ParserOption {
	var opts []color.ParserOption
	if conf.CaseInsensitiveKeywords {
		opts = append(opts, color.WithCaseInsensitiveKeywords())
	}
	return opts
}

// NumericPrecision returns precision requested for percent and array output.
func (conf *OutputConfig) NumericPrecision() numfmt.Precision {
	if conf.MaxPrecision {
		return numfmt.Max
	}
	return numfmt.Digits(conf.Precision)
}

// Options translates output section into color rendering options. Zero
// precision leaves each notation with its own default.
func (conf *OutputConfig) Options() []color.Option {
	var opts []color.Option
	if conf.MaxPrecision || conf.Precision > 0 {
		opts = append(opts, color.UsePrecision(conf.NumericPrecision()))
	}
	if conf.UpperCase {
		opts = append(opts, color.UpperCase())
	}
	if !conf.Prefix {
		opts = append(opts, color.WithoutPrefix())
	}
	return opts
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
