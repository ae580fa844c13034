// Package naming implements the identifier casing transforms applied to
// every declared ABI name and field name.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// SnakeToPascal returns the PascalCase form of a snake_case name.
// Each empty segment (leading, trailing or doubled underscore) becomes a
// literal "_", so "_id" becomes "_Id" and "a__b" becomes "A_B".
func SnakeToPascal(name string) string {
	segments := lo.Map(strings.Split(name, "_"), func(s string, _ int) string {
		if s == "" {
			return "_"
		}
		r, size := utf8.DecodeRuneInString(s)
		return string(unicode.ToUpper(r)) + s[size:]
	})
	return strings.Join(segments, "")
}

// SnakeToCamel returns the camelCase form of a snake_case name.
func SnakeToCamel(name string) string {
	pascal := SnakeToPascal(name)
	r, size := utf8.DecodeRuneInString(pascal)
	return string(unicode.ToLower(r)) + pascal[size:]
}

// AnyToSnake returns the snake_case form of a PascalCase or camelCase name.
// Only ASCII capitals are word boundaries; everything else is copied.
func AnyToSnake(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i != 0 {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
