// Command richdoc inspects rich-text document literals and replays
// operation logs against them.
//
// Usage:
//
//	richdoc inspect <doc.json> [--json]
//	richdoc replay <doc.json> <ops.json> [--undo N] [--out <file>]
//	richdoc check <doc.json> <ops.json>
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dshills/richdoc/internal/config"
	"github.com/dshills/richdoc/internal/logging"
)

// Version information (set via ldflags during build).
var version = "dev"

// CLI defines the command-line interface for richdoc.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Path to configuration file" type:"path"`
	LogLevel  string `name:"log-level" help:"Override logging.level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Override logging.format (text, json)"`

	Inspect InspectCmd `cmd:"" help:"Print the slots, text and formats of a document"`
	Replay  ReplayCmd  `cmd:"" help:"Apply an operation log to a document"`
	Check   CheckCmd   `cmd:"" help:"Verify that every operation in a log inverts cleanly"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// env carries what every command needs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(e *env) error {
	fmt.Fprintf(e.out, "richdoc %s\n", version)
	return nil
}

func setup(configPath, level, format string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Logging.Level = level
	}
	if format != "" {
		cfg.Logging.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lvl, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	fmtr, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		logger: logging.New(os.Stderr, lvl, fmtr),
		out:    os.Stdout,
	}, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("richdoc"),
		kong.Description("Rich-text document engine tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	e, err := setup(CLI.Config, CLI.LogLevel, CLI.LogFormat)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(e)
	ctx.FatalIfErrorf(err)
}
