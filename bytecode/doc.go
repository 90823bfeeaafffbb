// Package bytecode defines the swb instruction set and its binary encoding.
//
// A Program is a text pool plus an ordered instruction sequence. Text
// instructions reference byte spans of the pool; Push and Pop toggle the two
// style variables; Endl breaks the line and Stop ends the program.
//
// # Encoding
//
// Encode a program to its wire form:
//
//	buf := bytecode.Encode(prog)
//
// The buffer is laid out as, all integers little-endian and unpadded:
//
//	offset  size   field
//	0       8      text pool length L (u64)
//	8       L      text pool (7-bit ASCII)
//	8+L     9*K    K instruction records: type tag (u8), argument (u64)
//
// Record arguments depend on the type tag:
//
//	Text      base in the low 32 bits, range in the high 32 bits
//	Push/Pop  the style var tag (Bold=1, Italic=2)
//	Endl/Stop zero
//
// # Decoding
//
//	prog, err := bytecode.Decode(buf)
//
// Decoding either yields a complete Program or fails with a
// *errors.Error of phase decode. Text ranges are not checked against the
// pool; call Program.Validate for that.
//
// # Disassembly
//
// Program implements fmt.Stringer with a .data/.text listing:
//
//	.data
//		0x0000	Hi
//	.text
//		push bold
//		text 0x0000..0x0001
//		pop bold
//		stop
package bytecode
