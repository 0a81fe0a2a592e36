// Package bytecode implements the compact byte-addressed instruction
// format spec.md §4.4 describes: an append-only code buffer, a constant
// pool, and a compressed line table, grounded on
// original_source/src/chunks/chunks.rs (Write/write_constant/new_line) and
// the teacher's general "small owned buffers, no external deps" style.
package bytecode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roxlang/rox/internal/value"
)

// maxConstants is the 2^24 ceiling spec.md §3 invariant (d) imposes: a
// Load/LoadLong operand must address the constant pool in 24 bits.
const maxConstants = 1 << 24

// lineEntry marks the first code offset at which a source line begins.
type lineEntry struct {
	offset int
	line   int
}

// Chunk is a single compilation unit's bytecode, constants, and line
// table. It owns all of its contents; nothing is borrowed.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	lines     []lineEntry
}

// New returns an empty chunk with the line table's required first entry
// (offset 0, line 1) already in place.
func New() *Chunk {
	return &Chunk{lines: []lineEntry{{offset: 0, line: 1}}}
}

// Write appends a single byte (an opcode or a raw operand byte) tagged
// with the source line it came from.
func (c *Chunk) Write(b byte, line int) {
	c.setLine(len(c.Code), line)
	c.Code = append(c.Code, b)
}

// setLine records that line begins at offset, unless the most recently
// recorded line is already the same — a no-op in that case, which is what
// keeps the line table's growth proportional to the number of distinct
// source lines rather than to len(Code), while preserving invariant (c)'s
// strict monotonicity in offset.
func (c *Chunk) setLine(offset, line int) {
	if len(c.lines) > 0 && c.lines[len(c.lines)-1].line == line {
		return
	}
	c.lines = append(c.lines, lineEntry{offset: offset, line: line})
}

// WriteConstant pushes v into the constant pool and emits the Load (1-byte
// index) or LoadLong (3-byte big-endian index) instruction needed to
// address it, per spec.md §4.4's write_constant contract. It panics if the
// pool has already reached 2^24 entries: that is an invariant violation,
// not a recoverable user-facing error.
func (c *Chunk) WriteConstant(v value.Value, line int) {
	idx := len(c.Constants)
	if idx >= maxConstants {
		panic(fmt.Sprintf("bytecode: constant pool exceeds %d entries", maxConstants))
	}
	c.Constants = append(c.Constants, v)

	if idx < 256 {
		c.Write(byte(OpLoad), line)
		c.Write(byte(idx), line)
		return
	}
	c.Write(byte(OpLoadLong), line)
	b0, b1, b2 := SplitU24(uint32(idx))
	c.Write(b0, line)
	c.Write(b1, line)
	c.Write(b2, line)
}

// LineFor returns the source line active at offset: the line of the
// greatest line-table entry whose offset is <= the query, or line 1 for
// any offset before the first entry.
func (c *Chunk) LineFor(offset int) int {
	i := sort.Search(len(c.lines), func(i int) bool {
		return c.lines[i].offset > offset
	})
	if i == 0 {
		return 1
	}
	return c.lines[i-1].line
}

// Disassemble renders every instruction in the chunk as
// "offset line MNEMONIC (operand?)" lines under a name header.
func (c *Chunk) Disassemble(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		line, text, next := c.DisassembleOne(offset)
		fmt.Fprintf(&b, "%04d %4d %s\n", offset, line, text)
		offset = next
	}
	return b.String()
}

// DisassembleOne decodes the instruction starting at offset, returning its
// source line, its rendered text, and the offset of the following
// instruction.
func (c *Chunk) DisassembleOne(offset int) (line int, text string, next int) {
	op := OpCode(c.Code[offset])
	line = c.LineFor(offset)
	arity := operandBytes(op)

	switch op {
	case OpLoad:
		idx := int(c.Code[offset+1])
		text = fmt.Sprintf("%s %d (%s)", op, idx, c.constantText(idx))
	case OpLoadLong:
		idx := int(JoinU24(c.Code[offset+1], c.Code[offset+2], c.Code[offset+3]))
		text = fmt.Sprintf("%s %d (%s)", op, idx, c.constantText(idx))
	default:
		text = op.String()
	}
	return line, text, offset + 1 + arity
}

func (c *Chunk) constantText(idx int) string {
	if idx < 0 || idx >= len(c.Constants) {
		return "<invalid constant>"
	}
	return c.Constants[idx].String()
}

// String renders the whole chunk via Disassemble, so trace mode and ad hoc
// debugging can just fmt.Println(chunk).
func (c *Chunk) String() string {
	return c.Disassemble("chunk")
}
