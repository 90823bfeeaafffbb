// Package compiler lowers a flattened markup element stream to a bytecode
// Program.
//
// Compilation is total. Unrecognized tags, ignore markers and non-ASCII
// text bytes are dropped without error, and the resulting program always
// ends with a single Stop:
//
//	elems, _ := markup.Load("page.html")
//	prog := compiler.Compile(elems)
//	buf := bytecode.Encode(prog)
package compiler
