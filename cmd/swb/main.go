// Command swb compiles HTML pages to swb bytecode and inspects the result.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/wippyai/swb/compiler"
	"github.com/wippyai/swb/config"
	"github.com/wippyai/swb/errors"
	"github.com/wippyai/swb/markup"
	"github.com/wippyai/swb/render"
)

// CLI defines the command-line interface for swb.
var CLI struct {
	Config   string `name:"config" short:"c" help:"Directory to search upward for swb.toml" type:"path" default:"."`
	LogLevel string `name:"log-level" help:"Override log.level from swb.toml"`

	Compile CompileCmd `cmd:"" help:"Compile an HTML page to bytecode"`
	Disasm  DisasmCmd  `cmd:"" help:"Print the disassembly of a compiled program"`
	Render  RenderCmd  `cmd:"" help:"Render a page or program to the terminal"`
	View    ViewCmd    `cmd:"" help:"Browse a page or program interactively"`
	Info    InfoCmd    `cmd:"" help:"Show size, opcode counts and digest of a program"`
}

// globals is bound into every command's Run.
type globals struct {
	cfg    *config.Config
	log    *zap.Logger
	stdout io.Writer
}

func setup(dir, level string) (*globals, error) {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, errors.NotFound(errors.PhaseLoad, "config directory", dir)
	}
	cfg, err := config.FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Log.Level = level
	}
	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	compiler.SetLogger(log.Named("compiler"))
	markup.SetLogger(log.Named("markup"))
	render.SetLogger(log.Named("render"))

	return &globals{cfg: cfg, log: log, stdout: os.Stdout}, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("swb"),
		kong.Description("Styled text bytecode compiler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	g, err := setup(CLI.Config, CLI.LogLevel)
	ctx.FatalIfErrorf(err)
	defer g.log.Sync()

	err = ctx.Run(g)
	ctx.FatalIfErrorf(err)
}
