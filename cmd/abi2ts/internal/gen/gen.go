package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/broady/abi2ts/abigen"
	"github.com/broady/abi2ts/abigen/naming"
	"github.com/broady/abi2ts/abigen/sink"
	"github.com/broady/abi2ts/abigen/typescript"
	"github.com/broady/abi2ts/cmd/abi2ts/internal/console"
)

type Cmd struct {
	Output string `arg:"" optional:"" help:"Output file to write to instead of stdout." type:"path"`

	Input   string `help:"Input file to read ABI from instead of stdin." short:"i" type:"existingfile" placeholder:"FILE"`
	Prefix  string `help:"Prefix to add to every type." short:"p"`
	Indent  int    `help:"How many spaces or tabs to indent with." short:"n" default:"4"`
	UseTabs bool   `help:"Use tabs instead of spaces for indentation." short:"t"`
	Export  bool   `help:"Whether to export interfaces and types." short:"e"`

	PascalCase bool `help:"Format types using PascalCase (default)." short:"a" xor:"naming"`
	CamelCase  bool `help:"Format types using camelCase." short:"c" xor:"naming"`
	SnakeCase  bool `help:"Format types using snake_case." short:"s" xor:"naming"`

	VariantStyle string            `help:"Declare variants as a plain union or as [tag, value] tuples." enum:"union,tagged" default:"union"`
	EmitAliases  bool              `help:"Also declare the ABI's type aliases."`
	TypeMapping  map[string]string `help:"Override the TypeScript type of a built-in ABI type, e.g. uint64=bigint." placeholder:"ABI=TS"`
	Header       string            `help:"Comment to place at the top of the output."`
}

// Naming returns the selected convention.
func (c *Cmd) Naming() naming.Convention {
	switch {
	case c.SnakeCase:
		return naming.Snake
	case c.CamelCase:
		return naming.Camel
	default:
		return naming.Pascal
	}
}

// Options converts the flags to generator options.
func (c *Cmd) Options() abigen.Options {
	opts := abigen.Options{
		Naming:       c.Naming(),
		Prefix:       c.Prefix,
		IndentSize:   c.Indent,
		UseTabs:      c.UseTabs,
		Export:       c.Export,
		VariantStyle: typescript.VariantStyle(c.VariantStyle),
		EmitAliases:  c.EmitAliases,
		TypeMappings: c.TypeMapping,
	}
	if c.Header != "" {
		opts.Header = strings.Split(strings.TrimRight(c.Header, "\n"), "\n")
	}
	return opts
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger, streams console.Streams) error {
	data, err := c.read(streams.In)
	if err != nil {
		return err
	}

	var (
		out  sink.OutputSink = sink.NewWriterSink(streams.Out)
		path                 = "stdout"
	)
	if c.Output != "" {
		abs, err := filepath.Abs(c.Output)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		out = sink.NewFilesystemSink(filepath.Dir(abs))
		path = filepath.Base(abs)
	}

	res, err := abigen.FromJSON(data).
		WithOptions(c.Options()).
		WithLogger(logger).
		ToSink(ctx, out, path)
	if err != nil {
		return err
	}

	if c.Output != "" {
		streams.Success("wrote %d structs, %d variants to %s", res.Structs, res.Variants, c.Output)
	}
	return nil
}

func (c *Cmd) read(stdin io.Reader) ([]byte, error) {
	if c.Input == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}
