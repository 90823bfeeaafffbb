// Package swb compiles styled text into a compact bytecode for small
// displays.
//
// A page of markup is flattened into an element stream, lowered to a
// program of five instructions over a shared ASCII text pool, and encoded
// into a fixed-width binary form that a display-side renderer can walk
// without allocation.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	swb/
//	├── markup/      HTML tokenizing and the whitespace strip pass
//	├── compiler/    Element stream to Program lowering
//	├── bytecode/    Instruction set, Program, binary codec, disassembly
//	├── render/      Style counters, Sink interface, terminal renderer
//	├── config/      swb.toml project configuration
//	├── errors/      Structured error types for debugging
//	└── cmd/swb/     Command-line compiler, inspector and viewer
//
// # Quick Start
//
// Compile a page and write the bytecode:
//
//	elems, err := markup.Load("page.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	prog := compiler.Compile(elems)
//	os.WriteFile("page.swb", bytecode.Encode(prog), 0o644)
//
// Load it back and render:
//
//	prog, err := bytecode.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	render.Run(prog, render.NewTerminal(os.Stdout), nil)
//
// # Instruction Set
//
//	stop        end of program
//	text a..b   render pool bytes a through b
//	push s      enable style s (bold, italic)
//	pop s       disable style s
//	endl        line break
//
// Styles nest through independent per-style counters, so
// push bold, push italic, pop bold leaves italic active and bold inactive.
//
// # Error Handling
//
// Compilation never fails. Decoding fails with structured errors from the
// errors package, each matching one of the bytecode.Err* sentinels:
//
//	prog, err := bytecode.Decode(buf)
//	if errors.Is(err, bytecode.ErrUnknownOpcode) {
//	    // corrupt or newer stream
//	}
//
// Text ranges are not bounds-checked on decode. Program.Validate checks
// them eagerly; render.Run reports an out-of-range span when it reaches it.
package swb
