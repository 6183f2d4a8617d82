// Package opcodes implements the two opcode dispatchers of spec.md §4.8
// (v6/v7 sharing one numbering, v8 renumbered) driven by the
// argument-format descriptors of spec.md §4.4.
package opcodes

import (
	"fmt"

	"github.com/xplshn/descumm/pkg/control"
	"github.com/xplshn/descumm/pkg/cursor"
	"github.com/xplshn/descumm/pkg/dialect"
	"github.com/xplshn/descumm/pkg/emit"
	"github.com/xplshn/descumm/pkg/expr"
	"github.com/xplshn/descumm/pkg/options"
	"github.com/xplshn/descumm/pkg/stack"
)

// InvalidOpcodeError is family 5 of spec.md §4.8: an unknown opcode byte,
// fatal per spec.md §7.
type InvalidOpcodeError struct {
	Opcode byte
	Offset int
	Depth  int
	Menu   string // non-empty when the failure is a descriptor sub-opcode
}

func (e *InvalidOpcodeError) Error() string {
	if e.Menu != "" {
		return fmt.Sprintf("invalid sub-opcode 0x%02X in menu %q at offset %d (stack depth %d)", e.Opcode, e.Menu, e.Offset, e.Depth)
	}
	return fmt.Sprintf("invalid opcode 0x%02X at offset %d (stack depth %d)", e.Opcode, e.Offset, e.Depth)
}

// State bundles every piece of per-run state a dispatch handler touches:
// the byte cursor, the evaluation stack, the block-stack recoverer, the
// dialect, the run's options, and the dup-slot counter (spec.md §3
// "Lifecycles": dup nodes persist across their two pops).
type State struct {
	Cur     *cursor.Cursor
	St      *stack.Stack
	Ctl     *control.Recoverer
	Em      *emit.Emitter
	Dialect dialect.Dialect
	Opts    *options.Options

	dupCounter int

	// LineStart is the offset the current statement's opcode began at;
	// the control-flow recoverer needs it to detect while back-edges
	// (spec.md §4.6 "offs_of_line").
	LineStart uint32

	// OpcodeByte is the byte of the opcode currently being dispatched,
	// used for the [OOOO](HH) line prefix.
	OpcodeByte byte

	// HaltOnUnderflow controls whether Pop aborts or substitutes an
	// INVALID DATA marker (spec.md §7).
	HaltOnUnderflow bool
}

// NewState builds the run's dispatch state.
func NewState(cur *cursor.Cursor, st *stack.Stack, ctl *control.Recoverer, em *emit.Emitter, d dialect.Dialect, opts *options.Options) *State {
	return &State{Cur: cur, St: st, Ctl: ctl, Em: em, Dialect: d, Opts: opts, HaltOnUnderflow: opts.HaltOnUnderflow}
}

// Pop pops one expression, substituting an INVALID DATA marker on
// underflow unless HaltOnUnderflow is set (spec.md §7).
func (s *State) Pop() (*expr.Node, error) {
	n, err := s.St.Pop()
	if err == nil {
		return n, nil
	}
	if s.HaltOnUnderflow {
		return nil, fmt.Errorf("stack underflow at offset %d: %w", s.Cur.Offset(), err)
	}
	return expr.NewComplex("**** INVALID DATA ****"), nil
}

// Push pushes an expression, returning a fatal error on overflow.
func (s *State) Push(n *expr.Node) error {
	return s.St.Push(n)
}

// NextDupSlot returns a fresh dup-temporary index.
func (s *State) NextDupSlot() int {
	slot := s.dupCounter
	s.dupCounter++
	return slot
}

// PopStackList implements spec.md §4.7: pop one expression, require it is
// an Int literal, then pop that many expressions in order. items[0] is the
// first popped value (last pushed).
func (s *State) PopStackList() ([]*expr.Node, error) {
	countNode, err := s.St.Pop()
	if err != nil {
		return nil, fmt.Errorf("stack-list: %w", err)
	}
	countData, ok := countNode.Data.(expr.IntData)
	if countNode.Kind != expr.Int || !ok {
		return nil, fmt.Errorf("stack-list: top of stack is not a literal count")
	}
	n := int(countData.Value)
	if n < 0 {
		return nil, fmt.Errorf("stack-list: negative count %d", n)
	}
	items := make([]*expr.Node, n)
	for i := 0; i < n; i++ {
		v, err := s.St.Pop()
		if err != nil {
			return nil, fmt.Errorf("stack-list: %w", err)
		}
		items[i] = v
	}
	return items, nil
}
