package bytecode

import (
	"fmt"
	"strings"

	"github.com/wippyai/swb/bytecode/internal/binary"
	"github.com/wippyai/swb/errors"
)

// Wire sizes in bytes.
const (
	HeaderSize = 8 // text pool length
	RecordSize = 9 // type tag + argument
)

// Decode failures, matched with errors.Is.
var (
	ErrTruncatedHeader = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTruncatedHeader}
	ErrTruncatedText   = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTruncatedText}
	ErrMisaligned      = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindMisaligned}
	ErrUnknownOpcode   = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnknownOpcode}
	ErrInvalidStyleVar = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidStyleVar}
)

// BinaryInstruction is the wire form of an Instruction.
type BinaryInstruction struct {
	Arg  uint64
	Type uint8
}

func packRange(r AddressRange) uint64 {
	return uint64(r.Base) | uint64(r.Range)<<32
}

func unpackRange(arg uint64) AddressRange {
	return AddressRange{
		Base:  Address(uint32(arg)),
		Range: uint32(arg >> 32),
	}
}

// Binary returns the wire form of the instruction.
func (i Instruction) Binary() BinaryInstruction {
	b := BinaryInstruction{Type: uint8(i.Op)}
	switch i.Op {
	case OpText:
		b.Arg = packRange(i.Range)
	case OpPush, OpPop:
		b.Arg = uint64(i.Style)
	}
	return b
}

// Bytes returns the 9-byte record.
func (b BinaryInstruction) Bytes() [RecordSize]byte {
	w := binary.NewWriter(RecordSize)
	w.Byte(b.Type)
	w.WriteU64LE(b.Arg)
	var out [RecordSize]byte
	copy(out[:], w.Bytes())
	return out
}

func (b BinaryInstruction) String() string {
	return fmt.Sprintf("0x%x:0x%016x", b.Type, b.Arg)
}

// lift decoders, indexed by opcode. A false result means the argument is
// not a valid style var encoding.
var lifters = [opcodeCount]func(arg uint64) (Instruction, bool){
	OpStop: func(uint64) (Instruction, bool) { return Stop(), true },
	OpText: func(arg uint64) (Instruction, bool) { return Text(unpackRange(arg)), true },
	OpPush: func(arg uint64) (Instruction, bool) {
		s, ok := ParseStyleVar(arg)
		return Push(s), ok
	},
	OpPop: func(arg uint64) (Instruction, bool) {
		s, ok := ParseStyleVar(arg)
		return Pop(s), ok
	},
	OpEndl: func(uint64) (Instruction, bool) { return Endl(), true },
}

// instruction lifts a record found at the given buffer offset.
func (b BinaryInstruction) instruction(offset int) (Instruction, error) {
	op := Opcode(b.Type)
	if !op.Valid() {
		return Instruction{}, errors.UnknownOpcode(offset, b.Type)
	}
	instr, ok := lifters[op](b.Arg)
	if !ok {
		return Instruction{}, errors.InvalidStyleVar(offset, b.Arg)
	}
	return instr, nil
}

// Instruction lifts the record into an Instruction.
func (b BinaryInstruction) Instruction() (Instruction, error) {
	return b.instruction(0)
}

// BinaryProgram is the exact wire representation of a Program before it is
// flattened into a byte buffer.
type BinaryProgram struct {
	Text []byte
	Code []BinaryInstruction
}

// Size returns the length of the flattened buffer.
func (p *BinaryProgram) Size() int {
	return HeaderSize + len(p.Text) + RecordSize*len(p.Code)
}

// Bytes flattens the program into a byte buffer.
func (p *BinaryProgram) Bytes() []byte {
	w := binary.NewWriter(p.Size())
	w.WriteU64LE(uint64(len(p.Text)))
	w.WriteBytes(p.Text)
	for _, instr := range p.Code {
		w.Byte(instr.Type)
		w.WriteU64LE(instr.Arg)
	}
	return w.Bytes()
}

// ParseBinary splits buf into the text pool and raw instruction records.
// Opcodes and arguments are not inspected.
func ParseBinary(buf []byte) (*BinaryProgram, error) {
	r := binary.NewReader(buf)

	textLen, err := r.ReadU64LE()
	if err != nil {
		return nil, errors.TruncatedHeader(len(buf))
	}

	if textLen > uint64(r.Remaining()) {
		return nil, errors.TruncatedText(r.Position(), textLen, r.Remaining())
	}
	text, err := r.ReadBytes(int(textLen))
	if err != nil {
		return nil, errors.TruncatedText(r.Position(), textLen, r.Remaining())
	}

	start := r.Position()
	code := r.ReadRemaining()
	if len(code)%RecordSize != 0 {
		return nil, errors.Misaligned(start, len(code), RecordSize)
	}

	p := &BinaryProgram{
		Text: text,
		Code: make([]BinaryInstruction, 0, len(code)/RecordSize),
	}
	cr := binary.NewReader(code)
	for cr.Remaining() > 0 {
		ty, _ := cr.ReadByte()
		arg, _ := cr.ReadU64LE()
		p.Code = append(p.Code, BinaryInstruction{Type: ty, Arg: arg})
	}
	return p, nil
}

// Program lifts every record into an Instruction. The first invalid record
// fails the whole conversion.
func (p *BinaryProgram) Program() (*Program, error) {
	prog := &Program{
		Text: p.Text,
		Code: make([]Instruction, len(p.Code)),
	}
	base := HeaderSize + len(p.Text)
	for i, b := range p.Code {
		instr, err := b.instruction(base + i*RecordSize)
		if err != nil {
			return nil, err
		}
		prog.Code[i] = instr
	}
	return prog, nil
}

func (p *BinaryProgram) String() string {
	var b strings.Builder
	for _, instr := range p.Code {
		b.WriteString(instr.String())
		b.WriteByte('\n')
	}
	return b.String()
}
