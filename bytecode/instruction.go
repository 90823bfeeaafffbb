package bytecode

import "fmt"

// Opcode is the 8-bit discriminant of an instruction.
type Opcode uint8

// Instruction opcodes. The values are part of the wire format.
const (
	OpStop Opcode = 0x00
	OpText Opcode = 0x01
	OpPush Opcode = 0x02
	OpPop  Opcode = 0x03
	OpEndl Opcode = 0x04

	opcodeCount = 5
)

var opcodeNames = [opcodeCount]string{
	OpStop: "stop",
	OpText: "text",
	OpPush: "push",
	OpPop:  "pop",
	OpEndl: "endl",
}

// Valid reports whether op names an instruction.
func (op Opcode) Valid() bool {
	return op < opcodeCount
}

func (op Opcode) String() string {
	if op.Valid() {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// StyleVar is a boolean style toggle. The values are part of the wire format.
type StyleVar uint8

const (
	Bold   StyleVar = 1
	Italic StyleVar = 2
)

// StyleVars lists every style var in tag order.
var StyleVars = [...]StyleVar{Bold, Italic}

// NumStyleVars is one past the largest style var tag, sized for tables
// indexed by StyleVar.
const NumStyleVars = 3

// ParseStyleVar maps a wire tag to a style var.
func ParseStyleVar(v uint64) (StyleVar, bool) {
	switch v {
	case uint64(Bold):
		return Bold, true
	case uint64(Italic):
		return Italic, true
	}
	return 0, false
}

// Valid reports whether s is Bold or Italic.
func (s StyleVar) Valid() bool {
	return s == Bold || s == Italic
}

func (s StyleVar) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	}
	return fmt.Sprintf("stylevar(%d)", uint8(s))
}

// Instruction is one operation of a compiled program. Op selects the
// variant; Range is set for OpText and Style for OpPush and OpPop. The zero
// value is Stop.
type Instruction struct {
	Range AddressRange
	Op    Opcode
	Style StyleVar
}

// Stop ends the program.
func Stop() Instruction { return Instruction{Op: OpStop} }

// Text renders the bytes of r.
func Text(r AddressRange) Instruction { return Instruction{Op: OpText, Range: r} }

// Push enables s.
func Push(s StyleVar) Instruction { return Instruction{Op: OpPush, Style: s} }

// Pop disables s.
func Pop(s StyleVar) Instruction { return Instruction{Op: OpPop, Style: s} }

// Endl breaks the line.
func Endl() Instruction { return Instruction{Op: OpEndl} }

func (i Instruction) String() string {
	switch i.Op {
	case OpText:
		return "text " + i.Range.String()
	case OpPush, OpPop:
		return i.Op.String() + " " + i.Style.String()
	default:
		return i.Op.String()
	}
}
