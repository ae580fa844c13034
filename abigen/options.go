package abigen

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/abi2ts/abigen/ir"
	"github.com/broady/abi2ts/abigen/naming"
	"github.com/broady/abi2ts/abigen/typescript"
)

// DefaultIndentSize is the number of indent characters per body line.
const DefaultIndentSize = 4

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// TypeMappings keys must name a built-in ABI scalar.
	_ = v.RegisterValidation("abiscalar", func(fl validator.FieldLevel) bool {
		return ir.IsPrimitive(fl.Field().String())
	})
	return v
}

// Options is the user-facing generation configuration shared by the CLI,
// the YAML configuration file and the HTTP server.
type Options struct {
	// Naming selects the identifier casing. Defaults to pascal.
	Naming naming.Convention `yaml:"naming" json:"naming,omitempty" schema:"naming" validate:"omitempty,oneof=pascal camel snake"`

	// Prefix is prepended to every formatted identifier.
	Prefix string `yaml:"prefix" json:"prefix,omitempty" schema:"prefix"`

	// IndentSize is how many spaces (or tabs, with UseTabs) to indent with.
	IndentSize int `yaml:"indent" json:"indent" schema:"indent" validate:"gte=0,lte=16"`

	UseTabs bool `yaml:"use_tabs" json:"use_tabs,omitempty" schema:"use_tabs"`

	// Export adds the export modifier to every declaration.
	Export bool `yaml:"export" json:"export,omitempty" schema:"export"`

	VariantStyle typescript.VariantStyle `yaml:"variant_style" json:"variant_style,omitempty" schema:"variant_style" validate:"omitempty,oneof=union tagged"`

	EmitAliases bool `yaml:"emit_aliases" json:"emit_aliases,omitempty" schema:"emit_aliases"`

	// TypeMappings overrides the TypeScript type of built-in ABI scalars.
	TypeMappings map[string]string `yaml:"type_mappings" json:"type_mappings,omitempty" schema:"-" validate:"omitempty,dive,keys,abiscalar,endkeys,required"`

	// Header lines are written as comments before the declarations. An entry
	// containing newlines becomes several comment lines.
	Header []string `yaml:"header" json:"header,omitempty" schema:"-"`
}

// DefaultOptions returns the options used when nothing is configured:
// PascalCase, four spaces, no export.
func DefaultOptions() Options {
	return Options{
		Naming:       naming.Pascal,
		IndentSize:   DefaultIndentSize,
		VariantStyle: typescript.VariantUnion,
	}
}

// Validate checks the options against their constraints.
func (o Options) Validate() error {
	return validate.Struct(o)
}

// Indent returns the indent unit: IndentSize spaces, or tabs with UseTabs.
func (o Options) Indent() string {
	ch := " "
	if o.UseTabs {
		ch = "\t"
	}
	return strings.Repeat(ch, o.IndentSize)
}

// Config converts the options to an emitter configuration.
func (o Options) Config() typescript.Config {
	return typescript.Config{
		Indent:             o.Indent(),
		TypeFormatter:      naming.Formatter(o.Naming, o.Prefix),
		ExportDeclarations: o.Export,
		VariantStyle:       o.VariantStyle,
		EmitAliases:        o.EmitAliases,
		TypeMappings:       o.TypeMappings,
		Header:             o.Header,
	}
}
