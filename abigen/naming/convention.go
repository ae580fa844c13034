package naming

import "fmt"

// Convention selects the casing applied to generated identifiers.
type Convention string

const (
	Pascal Convention = "pascal" // Default
	Camel  Convention = "camel"
	Snake  Convention = "snake"
)

// Conventions lists the supported conventions, default first.
var Conventions = []Convention{Pascal, Camel, Snake}

// ParseConvention parses a convention name. The empty string selects Pascal.
func ParseConvention(s string) (Convention, error) {
	switch Convention(s) {
	case "", Pascal:
		return Pascal, nil
	case Camel:
		return Camel, nil
	case Snake:
		return Snake, nil
	}
	return "", fmt.Errorf("unknown naming convention %q (expected pascal, camel or snake)", s)
}

// Transform returns the casing function for c. Unknown values fall back
// to Pascal.
func (c Convention) Transform() func(string) string {
	switch c {
	case Camel:
		return SnakeToCamel
	case Snake:
		return AnyToSnake
	default:
		return SnakeToPascal
	}
}

// Formatter returns the identifier formatter for c. A non-empty prefix is
// prepended to the cased name.
func Formatter(c Convention, prefix string) func(string) string {
	transform := c.Transform()
	if prefix == "" {
		return transform
	}
	return func(name string) string {
		return prefix + transform(name)
	}
}
