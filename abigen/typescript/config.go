package typescript

import (
	"fmt"

	"github.com/broady/abi2ts/abigen/naming"
)

// VariantStyle controls how ABI variants are declared.
type VariantStyle string

const (
	// VariantUnion declares a plain union: type V = A | B;
	VariantUnion VariantStyle = "union"

	// VariantTagged declares a union of [tag, value] tuples, matching the
	// JSON form of an encoded variant: type V = ["a", A] | ["b", B];
	VariantTagged VariantStyle = "tagged"
)

// Config controls declaration emission.
type Config struct {
	// Indent is prepended once to every line inside a declaration body.
	Indent string

	// TypeFormatter is applied to every declared name and field name.
	// Defaults to naming.SnakeToPascal.
	TypeFormatter func(string) string

	// ExportDeclarations adds the 'export' modifier to declarations.
	ExportDeclarations bool

	// VariantStyle defaults to VariantUnion.
	VariantStyle VariantStyle

	// EmitAliases also declares every ABI type alias, after the variants.
	EmitAliases bool

	// TypeMappings overrides the TypeScript type of a built-in ABI scalar,
	// e.g. {"uint64": "bigint"}.
	TypeMappings map[string]string

	// Header lines are emitted first, each as a // comment.
	Header []string
}

func (c Config) withDefaults() (Config, error) {
	if c.TypeFormatter == nil {
		c.TypeFormatter = naming.SnakeToPascal
	}
	switch c.VariantStyle {
	case "":
		c.VariantStyle = VariantUnion
	case VariantUnion, VariantTagged:
	default:
		return c, fmt.Errorf("unknown variant style %q (expected %q or %q)", c.VariantStyle, VariantUnion, VariantTagged)
	}
	return c, nil
}
