// Package abigen generates TypeScript declarations from contract ABIs.
//
// Generation is configured with a fluent API:
//
//	res, err := abigen.FromJSON(data).
//	    Naming(naming.Camel).
//	    Export().
//	    ToSink(ctx, sink.NewFilesystemSink("./src"), "eosio.token.ts")
package abigen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/broady/abi2ts/abi"
	"github.com/broady/abi2ts/abigen/ir"
	"github.com/broady/abi2ts/abigen/naming"
	"github.com/broady/abi2ts/abigen/sink"
	"github.com/broady/abi2ts/abigen/typescript"
)

// Generator provides a fluent API for declaration generation.
// Create with FromDocument or FromJSON and configure with method chaining.
type Generator struct {
	doc    *abi.Document
	data   []byte
	opts   Options
	logger *slog.Logger
}

// Result describes a completed generation.
type Result struct {
	// Path is the sink-relative path written, empty for Lines.
	Path string

	// Lines is the generated output, one entry per line.
	Lines []string

	Structs  int
	Variants int
	Aliases  int
}

// FromDocument creates a Generator for an already parsed document.
func FromDocument(doc *abi.Document) *Generator {
	return &Generator{doc: doc, opts: DefaultOptions()}
}

// FromJSON creates a Generator for a raw ABI JSON document. The document
// is parsed when generation runs.
func FromJSON(data []byte) *Generator {
	return &Generator{data: data, opts: DefaultOptions()}
}

// WithOptions replaces all options.
func (g *Generator) WithOptions(opts Options) *Generator {
	g.opts = opts
	return g
}

// Naming sets the identifier casing convention.
func (g *Generator) Naming(c naming.Convention) *Generator {
	g.opts.Naming = c
	return g
}

// Prefix sets the prefix prepended to every identifier.
func (g *Generator) Prefix(prefix string) *Generator {
	g.opts.Prefix = prefix
	return g
}

// Indent sets the indent width; tabs selects tab characters over spaces.
func (g *Generator) Indent(size int, tabs bool) *Generator {
	g.opts.IndentSize = size
	g.opts.UseTabs = tabs
	return g
}

// Export adds the export modifier to declarations.
func (g *Generator) Export() *Generator {
	g.opts.Export = true
	return g
}

// VariantStyle sets how variants are declared.
func (g *Generator) VariantStyle(style typescript.VariantStyle) *Generator {
	g.opts.VariantStyle = style
	return g
}

// EmitAliases also declares the document's type aliases.
func (g *Generator) EmitAliases() *Generator {
	g.opts.EmitAliases = true
	return g
}

// TypeMapping overrides the TypeScript type of a built-in ABI scalar.
func (g *Generator) TypeMapping(abiType, tsType string) *Generator {
	if g.opts.TypeMappings == nil {
		g.opts.TypeMappings = make(map[string]string)
	}
	g.opts.TypeMappings[abiType] = tsType
	return g
}

// Header adds comment lines to the top of the output.
func (g *Generator) Header(lines ...string) *Generator {
	g.opts.Header = append(g.opts.Header, lines...)
	return g
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// Options returns the current options.
func (g *Generator) Options() Options {
	return g.opts
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}

func (g *Generator) document() (*abi.Document, error) {
	if g.doc != nil {
		return g.doc, nil
	}
	if g.data == nil {
		return nil, errors.New("no ABI document")
	}
	doc, err := abi.Parse(g.data)
	if err != nil {
		return nil, err
	}
	g.doc = doc
	return doc, nil
}

// Generate validates the options, parses the document if needed and runs
// the transform. Nothing is written.
func (g *Generator) Generate() (*Result, error) {
	if err := g.opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	doc, err := g.document()
	if err != nil {
		return nil, err
	}

	lines, err := typescript.Transform(doc, g.opts.Config())
	if err != nil {
		return nil, err
	}

	res := &Result{
		Lines:    lines,
		Structs:  len(doc.Structs),
		Variants: len(doc.Variants),
	}
	if g.opts.EmitAliases {
		res.Aliases = len(doc.Types)
	}
	g.log().Debug("generated declarations",
		slog.String("version", doc.Version),
		slog.Int("structs", res.Structs),
		slog.Int("variants", res.Variants),
		slog.Int("aliases", res.Aliases),
		slog.Int("lines", len(lines)))
	return res, nil
}

// Lines returns the generated lines.
func (g *Generator) Lines() ([]string, error) {
	res, err := g.Generate()
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// Text returns the generated output as one newline-terminated string.
func (g *Generator) Text() (string, error) {
	lines, err := g.Lines()
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// ToSink generates and writes the output to path within s.
// This is a terminal operation. On error nothing is written.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink, path string) (*Result, error) {
	res, err := g.Generate()
	if err != nil {
		return nil, err
	}
	if err := sink.WriteLines(ctx, s, path, res.Lines); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	res.Path = path
	g.log().Debug("wrote declarations", slog.String("path", path), slog.Int("lines", len(res.Lines)))
	return res, nil
}

// Check resolves every declaration of the document, including tables,
// actions and action results that produce no output, and returns every
// error found.
func (g *Generator) Check() []error {
	doc, err := g.document()
	if err != nil {
		return []error{err}
	}
	errs := ir.NewIndex(doc).Validate(doc)
	g.log().Debug("checked document", slog.String("version", doc.Version), slog.Int("errors", len(errs)))
	return errs
}
