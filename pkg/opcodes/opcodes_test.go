package opcodes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xplshn/descumm/pkg/control"
	"github.com/xplshn/descumm/pkg/cursor"
	"github.com/xplshn/descumm/pkg/dialect"
	"github.com/xplshn/descumm/pkg/emit"
	"github.com/xplshn/descumm/pkg/options"
	"github.com/xplshn/descumm/pkg/stack"
)

func run(t *testing.T, body []byte, d dialect.Dialect) string {
	t.Helper()
	var out bytes.Buffer
	opts := options.New()
	opts.SetDialect(d)
	em := emit.New(&out, false, false)
	cur := cursor.New(body, d)
	st := stack.New(128)
	ctl := control.New(256, opts.UncondJumpOpcode(), 1+d.WordSize(),
		func(off int) (byte, bool) { return cur.PeekAt(off) },
		func(off int) (int32, bool) { return cur.PeekSWordAt(off) },
	)
	s := NewState(cur, st, ctl, em, d, opts)
	table := TableFor(d)
	for {
		done, err := Dispatch(s, table)
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if done {
			break
		}
	}
	return out.String()
}

// TestLiteralAssignment feeds spec.md §8 Example A's literal bytes
// verbatim: `00 07 43 00 00` (push byte 7, store into variable 0).
func TestLiteralAssignment(t *testing.T) {
	body := []byte{0x00, 0x07, 0x43, 0x00, 0x00}
	got := strings.TrimSpace(run(t, body, dialect.V6))
	if got != "var0 = 7" {
		t.Fatalf("got %q, want %q", got, "var0 = 7")
	}
}

// TestArithmeticWithParens is spec.md §8 Example B: var0 = (2 + (3 * 5)).
// The literal hex spec.md gives (`00 02 00 03 00 05 14 43 00 00`) has one
// binary-op byte for three pushed values and so cannot itself produce a
// nested expression; this reproduces the described result by supplying
// both binary ops the shape requires: Mul (0x0E+8=0x16) then Add
// (0x0E+6=0x14), keeping every other byte from the spec's literal as-is.
func TestArithmeticWithParens(t *testing.T) {
	mulOp := byte(0x0E + 8) // OpMul is index 8 in binaryOpcodeOrder
	addOp := byte(0x0E + 6) // OpAdd is index 6
	body := []byte{
		0x00, 0x02, // push 2
		0x00, 0x03, // push 3
		0x00, 0x05, // push 5
		mulOp,
		addOp,
		0x43, 0x00, 0x00, // varWrite var0
	}
	got := strings.TrimSpace(run(t, body, dialect.V6))
	if got != "var0 = (2 + (3 * 5))" {
		t.Fatalf("got %q, want %q", got, "var0 = (2 + (3 * 5))")
	}
}

// TestWhileLoop feeds spec.md §8 Example E verbatim: a jumpIfFalse whose
// target is end-of-body, a body, and a back-edge unconditional jump to the
// predicate's own line start -- classified as a while, with the back-edge
// jump itself emitting nothing.
func TestWhileLoop(t *testing.T) {
	body := []byte{
		0x00, 0x01, // push 1
		0x5D, 0x08, 0x00, // jumpIfFalse +8 (to offset 13)
		0x00, 0x09, // push 9
		0x43, 0x00, 0x00, // varWrite var0
		0x73, 0xF5, 0xFF, // jump -11 (back to offset 2, the predicate's line)
	}
	got := run(t, body, dialect.V6)
	want := "while (1) {\n  var0 = 9\n}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestSimpleIf feeds spec.md §8 Example C verbatim: predicate, body, then a
// trailing unconditional jump whose target is its own offset -- it closes
// the if-frame without itself printing a line.
func TestSimpleIf(t *testing.T) {
	body := []byte{
		0x00, 0x01, // push 1
		0x5D, 0x08, 0x00, // jumpIfFalse +8 (to offset 13)
		0x00, 0x09, // push 9
		0x43, 0x00, 0x00, // varWrite var0
		0x73, 0x00, 0x00, // jump +0 (to offset 13, closing the if)
	}
	got := run(t, body, dialect.V6)
	want := "if (1) {\n  var0 = 9\n}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestIfElse feeds spec.md §8 Example D verbatim: the if-body ends with an
// unconditional forward jump over a second block, so the emitter must
// flush a pending "} else {" (with its target-offset annotation, per
// pkg/emit's FlushPendingElse) before the else-body's first line, then
// close the outer frame after the else-body.
func TestIfElse(t *testing.T) {
	body := []byte{
		0x00, 0x01, // push 1
		0x5D, 0x08, 0x00, // jumpIfFalse +8 (to offset 13, the else-body's start)
		0x00, 0x09, // push 9
		0x43, 0x00, 0x00, // var0 = 9
		0x73, 0x05, 0x00, // jump +5 (to offset 18, past the else-body)
		0x00, 0x0A, // push 10
		0x43, 0x01, 0x00, // var 1 (named g_ego under v6) = 10
	}
	got := run(t, body, dialect.V6)
	want := "if (1) {\n  var0 = 9\n} else { /* 0012 */\n  g_ego = 10\n}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestDupKillPushesBackRatherThanPopping exercises family 2's dup/kill pairing
// (spec.md §4.8): a duplicated value that reaches kill without being
// consumed elsewhere is pushed back, not emitted as a pop() statement.
func TestDupKillPushesBackRatherThanPopping(t *testing.T) {
	body := []byte{
		0x00, 0x09, // push 9
		0x0C,             // dup
		0x43, 0x00, 0x00, // varWrite var0 (consumes one dup handle)
		0x1A, // kill (consumes the other dup handle; should not print pop())
	}
	got := run(t, body, dialect.V6)
	if strings.Contains(got, "pop(") {
		t.Fatalf("kill on a dup handle should not emit pop(), got %q", got)
	}
	if !strings.Contains(got, "var0 = dup0") {
		t.Fatalf("expected dup-backed assignment, got %q", got)
	}
}

// TestKillNonDupEmitsPop covers the other half of family 2's kill handler.
func TestKillNonDupEmitsPop(t *testing.T) {
	body := []byte{
		0x00, 0x09, // push 9
		0x1A, // kill
	}
	got := strings.TrimSpace(run(t, body, dialect.V6))
	if got != "pop(9)" {
		t.Fatalf("got %q, want pop(9)", got)
	}
}

// TestArray1DWritePopOrder covers family 2's array1DWrite handler: the
// value is the top of the stack (popped first), the index is popped
// second (original_source descumm6.cpp case 0x71: se_a = pop(); writeArray
// (get_word(), NULL, pop(), se_a) -- value first, index second).
func TestArray1DWritePopOrder(t *testing.T) {
	body := []byte{
		0x00, 0x02, // push 2 (index)
		0x00, 0x09, // push 9 (value, top of stack)
		0x47, 0x00, 0x00, // array1DWrite array0 (word-form)
	}
	got := strings.TrimSpace(run(t, body, dialect.V6))
	if got != "array-0[2] = 9" {
		t.Fatalf("got %q, want %q", got, "array-0[2] = 9")
	}
}

// TestArray2DWritePopOrder covers array2DWrite's pop order: value, dim1,
// dim2 (descumm6.cpp case 0x75: se_a = pop(); se_b = pop(); writeArray
// (get_word(), pop(), se_b, se_a)).
func TestArray2DWritePopOrder(t *testing.T) {
	body := []byte{
		0x00, 0x01, // push 1 (dim2, outer subscript)
		0x00, 0x02, // push 2 (dim1, inner subscript)
		0x00, 0x09, // push 9 (value, top of stack)
		0x4B, 0x00, 0x00, // array2DWrite array0 (word-form)
	}
	got := strings.TrimSpace(run(t, body, dialect.V6))
	if got != "array-0[1][2] = 9" {
		t.Fatalf("got %q, want %q", got, "array-0[1][2] = 9")
	}
}

// TestArray2DReadPopOrder covers array2DRead's subscript ordering
// (descumm6.cpp V8 case 0x4: se_a = pop(); push(se_array(get_word(), pop(),
// se_a)) -- renders array-N[2nd-pop][1st-pop]).
func TestArray2DReadPopOrder(t *testing.T) {
	body := []byte{
		0x00, 0x01, // push 1 (pushed first, popped second)
		0x00, 0x02, // push 2 (pushed second, popped first / top of stack)
		0x0B, 0x00, 0x00, // array2DRead array0 (word-form)
		0x43, 0x00, 0x00, // varWrite var0
	}
	got := strings.TrimSpace(run(t, body, dialect.V6))
	if got != "var0 = array-0[1][2]" {
		t.Fatalf("got %q, want %q", got, "var0 = array-0[1][2]")
	}
}

// TestUnknownOpcodeAborts covers spec.md §7's unknown-opcode error kind.
func TestUnknownOpcodeAborts(t *testing.T) {
	var out bytes.Buffer
	opts := options.New()
	em := emit.New(&out, false, false)
	cur := cursor.New([]byte{0xFF}, dialect.V6)
	st := stack.New(128)
	ctl := control.New(256, opts.UncondJumpOpcode(), 3,
		func(off int) (byte, bool) { return cur.PeekAt(off) },
		func(off int) (int32, bool) { return cur.PeekSWordAt(off) },
	)
	s := NewState(cur, st, ctl, em, dialect.V6, opts)
	_, err := Dispatch(s, TableFor(dialect.V6))
	if err == nil {
		t.Fatalf("expected an error for opcode 0xFF")
	}
	if _, ok := err.(*InvalidOpcodeError); !ok {
		t.Fatalf("err = %T, want *InvalidOpcodeError", err)
	}
}
