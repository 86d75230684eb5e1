package color

import (
	"slices"

	"golang.org/x/image/colornames"
)

// Transparent is the only keyword carrying an alpha channel. It is handled
// outside of the keyword table.
const Transparent = "transparent"

// keywords maps lower case CSS color names to RGB triples. SVG 1.1 names come
// from x/image, rebeccapurple was added by CSS Color 4.
var keywords = func() map[string][3]uint8 {
	m := make(map[string][3]uint8, len(colornames.Map)+1)
	for name, c := range colornames.Map {
		m[name] = [3]uint8{c.R, c.G, c.B}
	}
	m["rebeccapurple"] = [3]uint8{102, 51, 153}
	return m
}()

// LookupKeyword returns the RGB triple of a color keyword. Lookup is exact
// and case sensitive.
func LookupKeyword(name string) (rgb [3]uint8, ok bool) {
	rgb, ok = keywords[name]
	return
}

// Keywords returns all known color keywords sorted alphabetically.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
