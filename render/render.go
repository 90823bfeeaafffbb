package render

import (
	"go.uber.org/zap"

	"github.com/wippyai/swb/bytecode"
	"github.com/wippyai/swb/errors"
)

// Sink receives the rendered stream.
type Sink interface {
	// Text receives the bytes of one text instruction. The slice aliases
	// the program's pool and must not be retained or modified.
	Text(text []byte, style Style) error
	Endl() error
}

// Run executes p against sink using st for style state. A nil st starts
// from a fresh State. Run returns at the first Stop; a text range outside
// the pool fails with an out_of_bounds error at that instruction, and a
// program without Stop fails with invalid_data once the code runs out.
func Run(p *bytecode.Program, sink Sink, st *State) error {
	if st == nil {
		st = &State{}
	}

	for i, instr := range p.Code {
		switch instr.Op {
		case bytecode.OpStop:
			if rest := len(p.Code) - i - 1; rest > 0 {
				Logger().Debug("unreachable instructions after stop", zap.Int("count", rest))
			}
			return nil

		case bytecode.OpText:
			text, ok := p.Slice(instr.Range)
			if !ok {
				return errors.OutOfBounds(errors.PhaseRender, i, instr.Range.End(), len(p.Text))
			}
			if err := sink.Text(text, st.Style()); err != nil {
				return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "sink text")
			}

		case bytecode.OpPush:
			st.Push(instr.Style)

		case bytecode.OpPop:
			st.Pop(instr.Style)

		case bytecode.OpEndl:
			if err := sink.Endl(); err != nil {
				return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "sink endl")
			}

		default:
			return errors.New(errors.PhaseRender, errors.KindUnknownOpcode).
				At("code", i).
				Value(uint8(instr.Op)).
				Build()
		}
	}

	return errors.InvalidData(errors.PhaseRender, "program ended without stop")
}
