package bytecode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/wippyai/swb/errors"
)

// Program is a compiled unit: a 7-bit ASCII text pool and the instructions
// that reference it. A well-formed program ends with Stop and every text
// range lies within Text.
type Program struct {
	Text []byte
	Code []Instruction
}

// Equal reports whether p and q hold the same text pool and instructions.
// A nil pool equals an empty one.
func (p *Program) Equal(q *Program) bool {
	return bytes.Equal(p.Text, q.Text) && slices.Equal(p.Code, q.Code)
}

// Encode converts p to its flattened wire form.
func Encode(p *Program) []byte {
	return p.ToBinary().Bytes()
}

// Decode parses a buffer produced by Encode. It is the exact inverse of
// Encode for well-formed programs.
func Decode(buf []byte) (*Program, error) {
	bp, err := ParseBinary(buf)
	if err != nil {
		return nil, err
	}
	return bp.Program()
}

// ToBinary maps every instruction to its wire record. The text pool is
// shared, not copied.
func (p *Program) ToBinary() *BinaryProgram {
	bp := &BinaryProgram{
		Text: p.Text,
		Code: make([]BinaryInstruction, len(p.Code)),
	}
	for i, instr := range p.Code {
		bp.Code[i] = instr.Binary()
	}
	return bp
}

// Slice returns the pool bytes addressed by r, or false when r runs past
// the pool.
func (p *Program) Slice(r AddressRange) ([]byte, bool) {
	if !r.Within(len(p.Text)) {
		return nil, false
	}
	return p.Text[r.Base:r.End()], true
}

// Validate checks the well-formedness invariants Decode leaves unchecked:
// the program ends with Stop, every text range lies within the pool and the
// pool is 7-bit ASCII.
func (p *Program) Validate() error {
	if len(p.Code) == 0 || p.Code[len(p.Code)-1].Op != OpStop {
		return errors.InvalidData(errors.PhaseValidate, "program does not end with stop")
	}
	for i, instr := range p.Code {
		switch instr.Op {
		case OpText:
			if !instr.Range.Within(len(p.Text)) {
				return errors.OutOfBounds(errors.PhaseValidate, i, instr.Range.End(), len(p.Text))
			}
		case OpPush, OpPop:
			if !instr.Style.Valid() {
				return errors.New(errors.PhaseValidate, errors.KindInvalidStyleVar).
					At("code", i).
					Value(instr.Style).
					Build()
			}
		}
	}
	for i, c := range p.Text {
		if c >= 0x80 {
			return errors.New(errors.PhaseValidate, errors.KindInvalidData).
				At("text", i).
				Value(c).
				Detail("non-ASCII byte %#02x", c).
				Build()
		}
	}
	return nil
}

// Histogram counts instructions per opcode.
func (p *Program) Histogram() map[Opcode]int {
	h := make(map[Opcode]int, opcodeCount)
	for _, instr := range p.Code {
		h[instr.Op]++
	}
	return h
}

const dataBlockSize = 16

// Disassemble writes the .data/.text listing of p to w.
func (p *Program) Disassemble(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(".data\n")
	for cur := 0; cur < len(p.Text); cur += dataBlockSize {
		end := min(cur+dataBlockSize, len(p.Text))
		fmt.Fprintf(bw, "\t%s\t%s\n", Address(cur), p.Text[cur:end])
	}

	bw.WriteString(".text\n")
	for _, instr := range p.Code {
		bw.WriteByte('\t')
		bw.WriteString(instr.String())
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func (p *Program) String() string {
	var b strings.Builder
	_ = p.Disassemble(&b)
	return b.String()
}
