package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/swb/bytecode"
	"github.com/wippyai/swb/compiler"
	"github.com/wippyai/swb/errors"
	"github.com/wippyai/swb/markup"
	"github.com/wippyai/swb/render"
)

// CompileCmd compiles one HTML page.
type CompileCmd struct {
	Input string `arg:"" help:"HTML page to compile" type:"existingfile"`
	Out   string `short:"o" help:"Output path (default: input with the configured extension)" type:"path"`
	Text  bool   `help:"Write the disassembly instead of bytecode"`
}

func (c *CompileCmd) Run(g *globals) error {
	elems, err := markup.Load(c.Input)
	if err != nil {
		return err
	}
	prog := compiler.Compile(elems)
	if g.cfg.Compile.Validate {
		if err := prog.Validate(); err != nil {
			return err
		}
	}

	out := c.Out
	if out == "" {
		out = g.cfg.OutputPath(c.Input)
	}

	var data []byte
	if c.Text || g.cfg.Output.Text {
		data = []byte(prog.String())
	} else {
		data = bytecode.Encode(prog)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "write "+out)
	}

	g.log.Info("compiled",
		zap.String("input", c.Input),
		zap.String("output", out),
		zap.Int("bytes", len(data)),
		zap.Int("instructions", len(prog.Code)))
	fmt.Fprintf(g.stdout, "compiled %d instructions, %d bytes -> %s\n", len(prog.Code), len(data), out)
	return nil
}

// DisasmCmd prints a compiled program.
type DisasmCmd struct {
	Input  string `arg:"" help:"Compiled program" type:"existingfile"`
	Binary bool   `help:"List raw type:argument records instead of mnemonics"`
}

func (c *DisasmCmd) Run(g *globals) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return errors.Load("read "+c.Input, err)
	}
	if c.Binary {
		bp, err := bytecode.ParseBinary(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(g.stdout, bp)
		return err
	}
	prog, err := bytecode.Decode(data)
	if err != nil {
		return err
	}
	return prog.Disassemble(g.stdout)
}

// RenderCmd prints styled text.
type RenderCmd struct {
	Input string `arg:"" help:"HTML page or compiled program" type:"existingfile"`
	Width int    `help:"Wrap column (default: render.width, then terminal width)"`
}

func (c *RenderCmd) Run(g *globals) error {
	if c.Width < 0 {
		return errors.InvalidInput(errors.PhaseRender, fmt.Sprintf("width must not be negative, got %d", c.Width))
	}

	prog, err := loadProgram(c.Input, g)
	if err != nil {
		return err
	}

	width := c.Width
	if width == 0 {
		width = g.cfg.Render.Width
	}
	if width == 0 {
		width = terminalWidth()
	}

	t := render.NewTerminal(g.stdout,
		render.WithWidth(width),
		render.WithColors(g.cfg.Render.BoldColor, g.cfg.Render.ItalicColor))
	if err := render.Run(prog, t, nil); err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.stdout)
	return err
}

// InfoCmd summarizes a compiled program.
type InfoCmd struct {
	Input string `arg:"" help:"Compiled program" type:"existingfile"`
}

func (c *InfoCmd) Run(g *globals) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return errors.Load("read "+c.Input, err)
	}
	prog, err := bytecode.Decode(data)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "file:         %s\n", c.Input)
	fmt.Fprintf(&b, "size:         %d bytes\n", len(data))
	fmt.Fprintf(&b, "text pool:    %d bytes\n", len(prog.Text))
	fmt.Fprintf(&b, "instructions: %d\n", len(prog.Code))

	hist := prog.Histogram()
	ops := make([]bytecode.Opcode, 0, len(hist))
	for op := range hist {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	for _, op := range ops {
		fmt.Fprintf(&b, "  %-6s %d\n", op, hist[op])
	}

	if err := prog.Validate(); err != nil {
		fmt.Fprintf(&b, "valid:        no (%v)\n", err)
	} else {
		fmt.Fprintf(&b, "valid:        yes\n")
	}
	fmt.Fprintf(&b, "blake3:       %s\n", bytecode.Digest(data))

	_, err = fmt.Fprint(g.stdout, b.String())
	return err
}

// loadProgram compiles HTML inputs and decodes anything else.
func loadProgram(path string, g *globals) (*bytecode.Program, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		elems, err := markup.Load(path)
		if err != nil {
			return nil, err
		}
		return compiler.Compile(elems), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	prog, err := bytecode.Decode(data)
	if err != nil {
		return nil, err
	}
	if g.cfg.Compile.Validate {
		if err := prog.Validate(); err != nil {
			return nil, err
		}
	}
	g.log.Debug("decoded program",
		zap.String("path", path),
		zap.Int("instructions", len(prog.Code)))
	return prog, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
