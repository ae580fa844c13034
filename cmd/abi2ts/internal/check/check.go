package check

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/abi2ts/abi"
	"github.com/broady/abi2ts/abigen"
	"github.com/broady/abi2ts/cmd/abi2ts/internal/console"
)

type Cmd struct {
	Input string `arg:"" optional:"" help:"ABI file to check (default: stdin)." type:"existingfile"`
}

func (c *Cmd) Run(logger *slog.Logger, streams console.Streams) error {
	var (
		data []byte
		err  error
	)
	if c.Input == "" {
		data, err = io.ReadAll(streams.In)
	} else {
		data, err = os.ReadFile(c.Input)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	doc, err := abi.Parse(data)
	if err != nil {
		return err
	}
	streams.Success("parsed %s", doc.Version)

	errs := abigen.FromDocument(doc).WithLogger(logger).Check()
	if len(errs) > 0 {
		for _, err := range errs {
			streams.Problem("%v", err)
		}
		return fmt.Errorf("%d unresolvable declarations", len(errs))
	}

	streams.Success("%d types, %d structs, %d variants, %d tables, %d actions", len(doc.Types), len(doc.Structs), len(doc.Variants), len(doc.Tables), len(doc.Actions))
	streams.Success("All types resolvable")
	return nil
}
