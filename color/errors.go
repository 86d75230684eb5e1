package color

import "errors"

// Guard failures. Conversions wrap one of these, test with errors.Is.
var (
	ErrNotColor       = errors.New("color does not represent a valid color")
	ErrNotOpaque      = errors.New("color is required to be opaque, but it is not")
	ErrNotTransparent = errors.New("color is required to be transparent, but it is not")
)
