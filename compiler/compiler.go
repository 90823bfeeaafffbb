package compiler

import (
	"go.uber.org/zap"

	"github.com/wippyai/swb/bytecode"
	"github.com/wippyai/swb/markup"
)

// Compiler lowers element streams. The zero value logs through the package
// logger.
type Compiler struct {
	log *zap.Logger
}

// New returns a Compiler logging to l. A nil l selects the package logger.
func New(l *zap.Logger) *Compiler {
	return &Compiler{log: l}
}

// Compile lowers elems with the package logger.
func Compile(elems []markup.Element) *bytecode.Program {
	return (&Compiler{}).Compile(elems)
}

// styleVar maps a tag kind to the style var it toggles.
func styleVar(k markup.TagKind) (bytecode.StyleVar, bool) {
	switch k {
	case markup.TagBold:
		return bytecode.Bold, true
	case markup.TagItalic:
		return bytecode.Italic, true
	}
	return 0, false
}

// appendASCII appends the 7-bit ASCII bytes of s to pool and reports how
// many were kept.
func appendASCII(pool []byte, s string) ([]byte, uint32) {
	var n uint32
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x80 {
			pool = append(pool, c)
			n++
		}
	}
	return pool, n
}

// Compile lowers elems to a program. The text pool only grows, and the
// range of every emitted Text instruction counts the bytes actually kept
// after ASCII filtering.
func (c *Compiler) Compile(elems []markup.Element) *bytecode.Program {
	log := c.log
	if log == nil {
		log = Logger()
	}

	p := &bytecode.Program{
		Code: make([]bytecode.Instruction, 0, len(elems)+1),
	}
	var dropped, filtered int

	for _, e := range elems {
		switch e.Kind {
		case markup.KindLineBreak:
			p.Code = append(p.Code, bytecode.Endl())

		case markup.KindText:
			start := bytecode.Address(len(p.Text))
			var n uint32
			p.Text, n = appendASCII(p.Text, e.Text)
			filtered += len(e.Text) - int(n)
			if n == 0 {
				dropped++
				continue
			}
			p.Code = append(p.Code, bytecode.Text(bytecode.AddressRange{Base: start, Range: n}))

		case markup.KindTag:
			if e.Tag == markup.TagLineBreak {
				p.Code = append(p.Code, bytecode.Endl())
				continue
			}
			if s, ok := styleVar(e.Tag); ok {
				p.Code = append(p.Code, bytecode.Push(s))
				continue
			}
			dropped++

		case markup.KindEndTag:
			if s, ok := styleVar(e.Tag); ok {
				p.Code = append(p.Code, bytecode.Pop(s))
				continue
			}
			dropped++

		default:
			dropped++
		}
	}
	p.Code = append(p.Code, bytecode.Stop())

	log.Debug("compiled program",
		zap.Int("elements", len(elems)),
		zap.Int("instructions", len(p.Code)),
		zap.Int("text_bytes", len(p.Text)),
		zap.Int("dropped_elements", dropped),
		zap.Int("dropped_bytes", filtered))

	return p
}
