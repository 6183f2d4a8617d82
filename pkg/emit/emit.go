// Package emit implements the Line Emitter of spec.md §4.11: pending-else
// state, indentation, optional offset/opcode prefixes, and flushing buffered
// output lines in source order.
package emit

import (
	"bufio"
	"fmt"
	"io"
)

// PendingElse is the single-slot holder of spec.md §3 "Pending-else state".
type PendingElse struct {
	Armed  bool
	To     uint32
	Offs   uint32
	Opcode byte
	Indent int
}

// Emitter owns the output buffer and pending-else state. Indentation is
// not tracked here: every EmitLine call is handed the current block-stack
// depth by its caller (spec.md §8 invariant 4), since that depth is the
// control-flow recoverer's, not the emitter's, responsibility.
type Emitter struct {
	w *bufio.Writer

	pending  PendingElse
	haveElse bool

	ShowOffsets bool
	ShowOpcode  bool
}

// New wraps w with the line-buffering discipline of spec.md §5 (explicit
// flush after every emitted line).
func New(w io.Writer, showOffsets, showOpcode bool) *Emitter {
	return &Emitter{w: bufio.NewWriter(w), ShowOffsets: showOffsets, ShowOpcode: showOpcode}
}

// ArmPendingElse records an unconditional jump identified as the tail of an
// if, to be resolved by the next instruction (spec.md §4.9).
func (e *Emitter) ArmPendingElse(to, offs uint32, opcode byte, indent int) {
	e.pending = PendingElse{Armed: true, To: to, Offs: offs, Opcode: opcode, Indent: indent}
}

// Pending reports the currently armed pending-else, if any.
func (e *Emitter) Pending() (PendingElse, bool) {
	if !e.pending.Armed {
		return PendingElse{}, false
	}
	return e.pending, true
}

// ClearPending disarms the pending-else without flushing it (used when an
// else-if resolves it into "} else if (...) {" instead).
func (e *Emitter) ClearPending() { e.pending = PendingElse{} }

// SetHaveElse marks that the next line should be emitted one indent level
// shallower, per spec.md §4.11's else-if adjustment.
func (e *Emitter) SetHaveElse() { e.haveElse = true }

// FlushPendingElse emits "} else {" at the armed holder's coordinates and
// clears it (spec.md §4.11).
func (e *Emitter) FlushPendingElse() {
	if !e.pending.Armed {
		return
	}
	p := e.pending
	e.pending = PendingElse{}
	indent := p.Indent - 1
	if indent < 0 {
		indent = 0
	}
	line := fmt.Sprintf("} else { /* %04X */", p.To)
	e.emitRaw(p.Offs, p.Opcode, indent, line)
}

// EmitLine flushes any armed pending-else first, then writes buf at the
// given offset/opcode/indent. A no-op if buf is empty (spec.md §4.11).
func (e *Emitter) EmitLine(offset uint32, opcode byte, indent int, buf string) {
	if buf == "" {
		return
	}
	e.FlushPendingElse()
	useIndent := indent
	if e.haveElse {
		useIndent--
		if useIndent < 0 {
			useIndent = 0
		}
		e.haveElse = false
	}
	e.emitRaw(offset, opcode, useIndent, buf)
}

func (e *Emitter) emitRaw(offset uint32, opcode byte, indent int, buf string) {
	var prefix string
	if e.ShowOffsets {
		prefix += fmt.Sprintf("[%04X]", offset)
	}
	if e.ShowOpcode {
		prefix += fmt.Sprintf("(%02X)", opcode)
	}
	for i := 0; i < indent; i++ {
		prefix += "  "
	}
	fmt.Fprintln(e.w, prefix+buf)
	e.w.Flush()
}

// EmitRaw writes a line without going through pending-else resolution,
// used for the trailing END/Stack-count/stack-dump section.
func (e *Emitter) EmitRaw(line string) {
	fmt.Fprintln(e.w, line)
	e.w.Flush()
}
