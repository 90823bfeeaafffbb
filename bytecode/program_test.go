package bytecode_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/swb/bytecode"
	swberrors "github.com/wippyai/swb/errors"
)

func hiProgram() *bytecode.Program {
	return &bytecode.Program{
		Text: []byte("Hi"),
		Code: []bytecode.Instruction{
			bytecode.Push(bytecode.Bold),
			bytecode.Text(bytecode.AddressRange{Base: 0, Range: 2}),
			bytecode.Pop(bytecode.Bold),
			bytecode.Stop(),
		},
	}
}

func TestEncodeFixedLayout(t *testing.T) {
	want := []byte{
		0x02, 0, 0, 0, 0, 0, 0, 0, // text length
		'H', 'i',
		0x02, 0x01, 0, 0, 0, 0, 0, 0, 0, // push bold
		0x01, 0, 0, 0, 0, 0x02, 0, 0, 0, // text base=0 range=2
		0x03, 0x01, 0, 0, 0, 0, 0, 0, 0, // pop bold
		0x00, 0, 0, 0, 0, 0, 0, 0, 0, // stop
	}

	got := bytecode.Encode(hiProgram())
	if !bytes.Equal(got, want) {
		t.Errorf("Encode:\n got % x\nwant % x", got, want)
	}
}

func TestEncodeLength(t *testing.T) {
	p := &bytecode.Program{
		Text: []byte("hello world"),
		Code: []bytecode.Instruction{
			bytecode.Text(bytecode.AddressRange{Base: 0, Range: 5}),
			bytecode.Endl(),
			bytecode.Text(bytecode.AddressRange{Base: 6, Range: 5}),
			bytecode.Stop(),
		},
	}
	buf := bytecode.Encode(p)
	if want := 8 + 11 + 9*4; len(buf) != want {
		t.Errorf("len = %d, want %d", len(buf), want)
	}
	if size := p.ToBinary().Size(); size != len(buf) {
		t.Errorf("Size() = %d, want %d", size, len(buf))
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		prog *bytecode.Program
	}{
		{
			name: "stop only",
			prog: &bytecode.Program{Code: []bytecode.Instruction{bytecode.Stop()}},
		},
		{
			name: "bold text",
			prog: hiProgram(),
		},
		{
			name: "nested styles",
			prog: &bytecode.Program{
				Text: []byte("onetwothree"),
				Code: []bytecode.Instruction{
					bytecode.Push(bytecode.Bold),
					bytecode.Text(bytecode.AddressRange{Base: 0, Range: 3}),
					bytecode.Push(bytecode.Italic),
					bytecode.Text(bytecode.AddressRange{Base: 3, Range: 3}),
					bytecode.Pop(bytecode.Bold),
					bytecode.Endl(),
					bytecode.Text(bytecode.AddressRange{Base: 6, Range: 5}),
					bytecode.Pop(bytecode.Italic),
					bytecode.Stop(),
				},
			},
		},
		{
			name: "max address values",
			prog: &bytecode.Program{
				Text: []byte("x"),
				Code: []bytecode.Instruction{
					bytecode.Text(bytecode.AddressRange{Base: 0xFFFFFFFF, Range: 0xFFFFFFFF}),
					bytecode.Stop(),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bytecode.Decode(bytecode.Encode(tt.prog))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Equal(tt.prog) {
				t.Errorf("round trip mismatch:\n got %v\nwant %v", got, tt.prog)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := bytecode.Encode(hiProgram())

	record := func(ty byte, arg byte) []byte {
		return []byte{ty, arg, 0, 0, 0, 0, 0, 0, 0}
	}
	header := []byte{0, 0, 0, 0, 0, 0, 0, 0}

	tests := []struct {
		name    string
		buf     []byte
		target  error
		wantVal any
	}{
		{"empty buffer", nil, bytecode.ErrTruncatedHeader, 0},
		{"short header", []byte{1, 2, 3}, bytecode.ErrTruncatedHeader, 3},
		{"seven bytes", valid[:7], bytecode.ErrTruncatedHeader, 7},
		{"text cut short", valid[:9], bytecode.ErrTruncatedText, uint64(2)},
		{"huge text length", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, bytecode.ErrTruncatedText, uint64(0xFFFFFFFFFFFFFFFF)},
		{"partial record", valid[:len(valid)-1], bytecode.ErrMisaligned, 35},
		{"trailing byte", append(append([]byte{}, valid...), 0), bytecode.ErrMisaligned, 37},
		{"opcode five", append(append([]byte{}, header...), record(5, 0)...), bytecode.ErrUnknownOpcode, uint8(5)},
		{"opcode 0xff", append(append([]byte{}, header...), record(0xff, 0)...), bytecode.ErrUnknownOpcode, uint8(0xff)},
		{"push zero style", append(append([]byte{}, header...), record(2, 0)...), bytecode.ErrInvalidStyleVar, uint64(0)},
		{"pop style three", append(append([]byte{}, header...), record(3, 3)...), bytecode.ErrInvalidStyleVar, uint64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := bytecode.Decode(tt.buf)
			if err == nil {
				t.Fatalf("expected error, got program %v", prog)
			}
			if prog != nil {
				t.Error("failed decode returned a partial program")
			}
			if !errors.Is(err, tt.target) {
				t.Fatalf("error %v does not match %v", err, tt.target)
			}
			var se *swberrors.Error
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if se.Value != tt.wantVal {
				t.Errorf("Value = %v (%T), want %v (%T)", se.Value, se.Value, tt.wantVal, tt.wantVal)
			}
		})
	}
}

func TestDecodeUnknownOpcodeOffset(t *testing.T) {
	buf := bytecode.Encode(hiProgram())
	// third record, after 8 header bytes, 2 text bytes and two records
	at := 8 + 2 + 2*bytecode.RecordSize
	buf[at] = 5

	_, err := bytecode.Decode(buf)
	var se *swberrors.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if se.Kind != swberrors.KindUnknownOpcode || se.Offset != at {
		t.Errorf("Kind/Offset = %v/%d, want unknown_opcode/%d", se.Kind, se.Offset, at)
	}
}

func TestDecodeMisalignedOffset(t *testing.T) {
	buf := bytecode.Encode(hiProgram())
	buf = buf[:len(buf)-4]

	_, err := bytecode.Decode(buf)
	var se *swberrors.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	// the instruction section starts after the header and "Hi"
	if se.Offset != 10 {
		t.Errorf("Offset = %d, want 10", se.Offset)
	}
	if want := len(buf) - 10; se.Value != want {
		t.Errorf("Value = %v, want %d", se.Value, want)
	}
}

func TestDecodeKeepsOutOfRangeText(t *testing.T) {
	p := &bytecode.Program{
		Text: []byte("ab"),
		Code: []bytecode.Instruction{
			bytecode.Text(bytecode.AddressRange{Base: 1, Range: 10}),
			bytecode.Stop(),
		},
	}
	got, err := bytecode.Decode(bytecode.Encode(p))
	if err != nil {
		t.Fatalf("Decode rejected an out-of-range span: %v", err)
	}
	if got.Code[0].Range != (bytecode.AddressRange{Base: 1, Range: 10}) {
		t.Errorf("range rewritten to %v", got.Code[0].Range)
	}
	if err := got.Validate(); !errors.Is(err, &swberrors.Error{Phase: swberrors.PhaseValidate, Kind: swberrors.KindOutOfBounds}) {
		t.Errorf("Validate = %v, want out_of_bounds", err)
	}
}

func TestDecodeAfterStop(t *testing.T) {
	// instructions past stop are unreachable but still decode
	p := &bytecode.Program{
		Code: []bytecode.Instruction{bytecode.Stop(), bytecode.Endl(), bytecode.Stop()},
	}
	got, err := bytecode.Decode(bytecode.Encode(p))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Code) != 3 {
		t.Errorf("decoded %d instructions, want 3", len(got.Code))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		prog *bytecode.Program
		kind swberrors.Kind
	}{
		{"well formed", hiProgram(), ""},
		{"empty code", &bytecode.Program{}, swberrors.KindInvalidData},
		{"missing stop", &bytecode.Program{Code: []bytecode.Instruction{bytecode.Endl()}}, swberrors.KindInvalidData},
		{"range past pool", &bytecode.Program{
			Text: []byte("abc"),
			Code: []bytecode.Instruction{bytecode.Text(bytecode.AddressRange{Base: 2, Range: 2}), bytecode.Stop()},
		}, swberrors.KindOutOfBounds},
		{"bad style", &bytecode.Program{
			Code: []bytecode.Instruction{bytecode.Push(7), bytecode.Stop()},
		}, swberrors.KindInvalidStyleVar},
		{"non-ascii pool", &bytecode.Program{
			Text: []byte("caf\xc3\xa9"),
			Code: []bytecode.Instruction{bytecode.Stop()},
		}, swberrors.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prog.Validate()
			if tt.kind == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			var se *swberrors.Error
			if !errors.As(err, &se) {
				t.Fatalf("Validate = %v, want kind %s", err, tt.kind)
			}
			if se.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", se.Kind, tt.kind)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	p := &bytecode.Program{Text: []byte("hello")}
	got, ok := p.Slice(bytecode.AddressRange{Base: 1, Range: 3})
	if !ok || string(got) != "ell" {
		t.Errorf("Slice = %q, %v", got, ok)
	}
	if _, ok := p.Slice(bytecode.AddressRange{Base: 4, Range: 2}); ok {
		t.Error("Slice past the pool should fail")
	}
	if _, ok := p.Slice(bytecode.AddressRange{Base: 0xFFFFFFFF, Range: 0xFFFFFFFF}); ok {
		t.Error("Slice with overflowing end should fail")
	}
}

func TestDisassemble(t *testing.T) {
	want := ".data\n" +
		"\t0x0000\tHi\n" +
		".text\n" +
		"\tpush bold\n" +
		"\ttext 0x0000..0x0001\n" +
		"\tpop bold\n" +
		"\tstop\n"
	if got := hiProgram().String(); got != want {
		t.Errorf("String():\n%s\nwant:\n%s", got, want)
	}
}

func TestDisassembleBlocks(t *testing.T) {
	p := &bytecode.Program{
		Text: []byte(strings.Repeat("a", 16) + strings.Repeat("b", 16) + "c"),
		Code: []bytecode.Instruction{bytecode.Endl(), bytecode.Stop()},
	}
	out := p.String()
	for _, line := range []string{
		"\t0x0000\t" + strings.Repeat("a", 16) + "\n",
		"\t0x0010\t" + strings.Repeat("b", 16) + "\n",
		"\t0x0020\tc\n",
		"\tendl\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("listing missing %q:\n%s", line, out)
		}
	}
}

func TestBinaryProgramString(t *testing.T) {
	got := hiProgram().ToBinary().String()
	want := "0x2:0x0000000000000001\n" +
		"0x1:0x0000000200000000\n" +
		"0x3:0x0000000000000001\n" +
		"0x0:0x0000000000000000\n"
	if got != want {
		t.Errorf("String():\n%s\nwant:\n%s", got, want)
	}
}

func TestParseBinaryKeepsRawRecords(t *testing.T) {
	buf := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, 9, 1, 2, 3, 4, 5, 6, 7, 8)
	bp, err := bytecode.ParseBinary(buf)
	if err != nil {
		t.Fatalf("ParseBinary: %v", err)
	}
	if len(bp.Code) != 1 || bp.Code[0].Type != 9 || bp.Code[0].Arg != 0x0807060504030201 {
		t.Errorf("records = %v", bp.Code)
	}
	if !bytes.Equal(bp.Bytes(), buf) {
		t.Errorf("Bytes() = % x, want % x", bp.Bytes(), buf)
	}
	if _, err := bp.Program(); !errors.Is(err, bytecode.ErrUnknownOpcode) {
		t.Errorf("Program() = %v, want unknown opcode", err)
	}
}

func TestHistogram(t *testing.T) {
	h := hiProgram().Histogram()
	if h[bytecode.OpPush] != 1 || h[bytecode.OpPop] != 1 || h[bytecode.OpText] != 1 || h[bytecode.OpStop] != 1 {
		t.Errorf("Histogram = %v", h)
	}
	if _, ok := h[bytecode.OpEndl]; ok {
		t.Error("Histogram should not list absent opcodes")
	}
}

func TestDigest(t *testing.T) {
	a := bytecode.Digest(bytecode.Encode(hiProgram()))
	b := bytecode.Digest(bytecode.Encode(hiProgram()))
	if a != b || len(a) != 64 {
		t.Errorf("Digest not stable: %q %q", a, b)
	}
	if a == bytecode.Digest(nil) {
		t.Error("Digest of distinct input collided")
	}
}

func FuzzDecode(f *testing.F) {
	f.Add(bytecode.Encode(hiProgram()))
	f.Add([]byte{})
	f.Add([]byte{1, 0, 0, 0, 0, 0, 0, 0, 'x', 4, 0, 0, 0, 0, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		prog, err := bytecode.Decode(data)
		if err != nil {
			return
		}
		again, err := bytecode.Decode(bytecode.Encode(prog))
		if err != nil {
			t.Fatalf("re-decode: %v", err)
		}
		if !again.Equal(prog) {
			t.Fatalf("round trip mismatch: %v vs %v", again, prog)
		}
	})
}
