package color

import (
	"go.uber.org/zap/zapcore"

	"colorful/numfmt"
)

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c Color) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if !c.IsColor() {
		enc.AddBool("valid", false)
		enc.AddString("source", c.source)
		return nil
	}
	enc.AddBool("valid", true)
	enc.AddString("r", numfmt.Format(c.raw.r, numfmt.Max))
	enc.AddString("g", numfmt.Format(c.raw.g, numfmt.Max))
	enc.AddString("b", numfmt.Format(c.raw.b, numfmt.Max))
	enc.AddString("a", numfmt.Format(c.raw.a, numfmt.Max))
	return nil
}
