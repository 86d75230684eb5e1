package config

import (
	"errors"
	"fmt"
	"strings"
)

// Specification of requested output notation.
type OutputFormat int

const (
	OutputFormatComputed OutputFormat = iota
	OutputFormatHex
	OutputFormatRgb
	OutputFormatRgba
	OutputFormatRgbPercent
	OutputFormatRgbaPercent
	OutputFormatAgColor
	OutputFormatArray
)

var ErrInvalidOutputFormat = errors.New("not a valid OutputFormat")

var outputFormatNames = []string{
	"computed",
	"hex",
	"rgb",
	"rgba",
	"rgb-percent",
	"rgba-percent",
	"agcolor",
	"array",
}

var outputFormatValues = func() map[string]OutputFormat {
	m := make(map[string]OutputFormat, len(outputFormatNames))
	for i, n := range outputFormatNames {
		m[n] = OutputFormat(i)
	}
	return m
}()

// OutputFormatNames returns a list of possible string values of OutputFormat.
func OutputFormatNames() []string {
	return append([]string(nil), outputFormatNames...)
}

func (x OutputFormat) String() string {
	if x.IsValid() {
		return outputFormatNames[x]
	}
	return fmt.Sprintf("OutputFormat(%d)", x)
}

// IsValid provides a quick way to determine if the typed value is part of
// the allowed enumerated values.
func (x OutputFormat) IsValid() bool {
	return x >= 0 && int(x) < len(outputFormatNames)
}

// ParseOutputFormat attempts to convert a string to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	if x, ok := outputFormatValues[strings.ToLower(name)]; ok {
		return x, nil
	}
	return OutputFormat(0), fmt.Errorf("%s is %w", name, ErrInvalidOutputFormat)
}

func (x OutputFormat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *OutputFormat) UnmarshalText(text []byte) error {
	tmp, err := ParseOutputFormat(string(text))
	if err != nil {
		return err
	}
	*x = tmp
	return nil
}

// HasAlpha reports whether the notation always carries an alpha channel.
func (x OutputFormat) HasAlpha() bool {
	switch x {
	case OutputFormatRgba, OutputFormatRgbaPercent, OutputFormatAgColor:
		return true
	default:
		return false
	}
}
