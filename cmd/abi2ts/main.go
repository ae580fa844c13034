package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/broady/abi2ts/cmd/abi2ts/internal/check"
	"github.com/broady/abi2ts/cmd/abi2ts/internal/console"
	"github.com/broady/abi2ts/cmd/abi2ts/internal/gen"
	"github.com/broady/abi2ts/cmd/abi2ts/internal/serve"
)

type CLI struct {
	Verbose bool            `help:"Log debug output to stderr." short:"v"`
	Config  kong.ConfigFlag `help:"Read default flag values from a YAML file." placeholder:"FILE"`

	Gen     gen.Cmd    `cmd:"" default:"withargs" help:"Generate TypeScript declarations from an ABI (default command)."`
	Check   check.Cmd  `cmd:"" help:"Resolve every declaration of an ABI without generating output."`
	Serve   serve.Cmd  `cmd:"" help:"Serve the generator as an HTTP API."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(streams console.Streams) error {
	fmt.Fprintln(streams.Out, Version())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], console.Stdio())
	stop()
	os.Exit(code)
}

// run parses args and runs the selected command. It returns the process
// exit code: 2 for usage errors, 1 for failures.
func run(ctx context.Context, args []string, streams console.Streams) int {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("abi2ts"),
		kong.Description("Generate TypeScript declarations from contract ABI definitions."),
		kong.Writers(streams.Out, streams.Err),
		kong.Configuration(yamlConfig, ".abi2ts.yaml", "~/.abi2ts.yaml"),
	)
	if err != nil {
		streams.Error(err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		streams.Error(err)
		return 2
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(streams.Err, &slog.HandlerOptions{Level: level}))

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(logger, streams); err != nil {
		streams.Error(err)
		return 1
	}
	return 0
}
