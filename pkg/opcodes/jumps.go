package opcodes

import (
	"fmt"

	"github.com/xplshn/descumm/pkg/dialect"
	"github.com/xplshn/descumm/pkg/expr"
)

// HandleUncondJump implements spec.md §4.9. opcodeOffset is the offset the
// jump opcode byte itself started at.
func HandleUncondJump(s *State, opcodeOffset uint32) error {
	disp, err := s.Cur.SWord()
	if err != nil {
		return err
	}
	cur := uint32(s.Cur.Offset())
	to := uint32(int32(cur) + disp)

	if !s.Opts.SuppressElse {
		if _, ok, err := s.Ctl.MaybeAddElse(cur, to, s.LineStart); err != nil {
			return err
		} else if ok {
			s.Em.ArmPendingElse(to, cur-1, s.OpcodeByte, s.Ctl.Depth())
			return nil
		}
	}

	if top, ok := s.Ctl.Top(); ok && top.IsWhile && cur == top.To {
		return nil
	}

	// A jump whose target is exactly the point it sits at closes the
	// enclosing frame (CloseBlocks below fires on the same offset) without
	// itself being a meaningful goto -- e.g. a simple if with no else,
	// where the trailing unconditional jump exists only to mark where the
	// block ends.
	if top, ok := s.Ctl.Top(); ok && top.To == cur && to == cur {
		return nil
	}

	s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), fmt.Sprintf("jump %04X", to))
	return nil
}

// HandleCondJump implements spec.md §4.10. predicate is the value already
// popped by the caller opcode handler (spec.md §4.10 "Inputs: a popped
// predicate and a polarity"); jumpIfFalse is true when the opcode's
// semantics are "jump past the body when the predicate is false" (the
// ordinary compiled form of `if (P) { body }`).
func HandleCondJump(s *State, opcodeOffset uint32, predicate *expr.Node, jumpIfFalse bool) error {
	disp, err := s.Cur.SWord()
	if err != nil {
		return err
	}
	cur := uint32(s.Cur.Offset())
	to := uint32(int32(cur) + disp)
	jumpIfTrue := !jumpIfFalse

	if !s.Opts.SuppressElseIf {
		if pending, ok := s.Em.Pending(); ok {
			if _, ok2 := s.Ctl.MaybeAddElseIf(cur, pending.To, to); ok2 {
				predText := renderPredicate(predicate, s.Dialect, jumpIfTrue)
				s.Em.ClearPending()
				s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth()-1, fmt.Sprintf("} else if (%s) {", predText))
				s.Em.SetHaveElse()
				return nil
			}
		}
	}

	if frame, ok, err := s.Ctl.MaybeAddIf(cur, to, s.LineStart); err != nil {
		return err
	} else if ok {
		if frame.IsWhile && s.Opts.SuppressWhile {
			frame.IsWhile = false
		}
		predText := renderPredicate(predicate, s.Dialect, jumpIfTrue)
		kw := "if"
		if frame.IsWhile {
			kw = "while"
		}
		if !s.Opts.SuppressIf || kw == "while" {
			s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth()-1, fmt.Sprintf("%s (%s) {", kw, predText))
		}
		return nil
	}

	rawText := renderPredicate(predicate, s.Dialect, jumpIfFalse)
	s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), fmt.Sprintf("if (%s) goto %04X", rawText, to))
	return nil
}

func renderPredicate(p *expr.Node, d dialect.Dialect, negate bool) string {
	if negate {
		p = expr.NewUnary(expr.OpNeg, p)
	}
	return expr.RenderTopLevel(p, d)
}

// CloseBlocks pops every frame the cursor has now passed and emits its
// closing brace, per spec.md §4.6 "Block close": run after every dispatched
// opcode.
func CloseBlocks(s *State) {
	cur := uint32(s.Cur.Offset())
	closed := s.Ctl.PopClosed(cur)
	finalDepth := s.Ctl.Depth()
	// closed is innermost first; the innermost brace prints at the
	// deepest indent, one level shallower per subsequent close.
	for i := range closed {
		indent := finalDepth + (len(closed) - 1 - i)
		s.Em.EmitLine(cur, 0, indent, "}")
	}
}
