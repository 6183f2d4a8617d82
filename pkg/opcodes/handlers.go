package opcodes

import (
	"fmt"

	"github.com/xplshn/descumm/pkg/descriptor"
	"github.com/xplshn/descumm/pkg/expr"
)

// Handler dispatches one opcode's worth of bytecode, given the offset its
// opcode byte started at.
type Handler func(s *State, opcodeOffset uint32) error

// --- family 1: value producers (push) ---

// readID reads a variable/array id, either as a single byte (the compact
// form the original opcode set uses when the id fits in one byte) or as a
// dialect word, per original_source/descumm6.cpp's paired byte/word opcode
// variants (e.g. case 0x2 vs case 0x3 for varRead).
func readID(s *State, byteForm bool) (uint32, error) {
	if byteForm {
		b, err := s.Cur.Byte()
		return uint32(b), err
	}
	return s.Cur.Word()
}

func pushByteHandler(s *State, _ uint32) error {
	b, err := s.Cur.Byte()
	if err != nil {
		return err
	}
	return s.Push(expr.NewInt(int64(b)))
}

func pushWordHandler(s *State, _ uint32) error {
	w, err := s.Cur.SWord()
	if err != nil {
		return err
	}
	return s.Push(expr.NewInt(int64(w)))
}

func varReadHandler(byteForm bool) Handler {
	return func(s *State, _ uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		return s.Push(expr.NewVar(id))
	}
}

func array1DReadHandler(byteForm bool) Handler {
	return func(s *State, _ uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		idx, err := s.Pop()
		if err != nil {
			return err
		}
		return s.Push(expr.NewArray(id, idx, nil))
	}
}

func array2DReadHandler(byteForm bool) Handler {
	return func(s *State, _ uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		idx2, err := s.Pop()
		if err != nil {
			return err
		}
		idx1, err := s.Pop()
		if err != nil {
			return err
		}
		return s.Push(expr.NewArray(id, idx2, idx1))
	}
}

func dupHandler(s *State, opcodeOffset uint32) error {
	top, err := s.Pop()
	if err != nil {
		return err
	}
	slot := s.NextDupSlot()
	text := fmt.Sprintf("dup%d = %s", slot, expr.RenderTopLevel(top, s.Dialect))
	s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), text)
	d := expr.NewDup(slot)
	if err := s.Push(d); err != nil {
		return err
	}
	return s.Push(d)
}

func isZeroHandler(s *State, _ uint32) error {
	child, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(expr.NewUnary(expr.OpIsZero, child))
}

func binaryOpHandler(op expr.Operator) Handler {
	return func(s *State, _ uint32) error {
		right, err := s.Pop()
		if err != nil {
			return err
		}
		left, err := s.Pop()
		if err != nil {
			return err
		}
		return s.Push(expr.NewBinary(op, left, right))
	}
}

// --- family 2: statement producers (write + kill) ---

func killHandler(s *State, opcodeOffset uint32) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	if expr.IsDup(v) {
		return s.Push(v)
	}
	text := fmt.Sprintf("pop(%s)", expr.RenderTopLevel(v, s.Dialect))
	s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), text)
	return nil
}

func varWriteHandler(byteForm bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		v, err := s.Pop()
		if err != nil {
			return err
		}
		text := fmt.Sprintf("%s = %s", s.Dialect.RenderVar(id), expr.Render(v, s.Dialect, true))
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), text)
		return nil
	}
}

func array1DWriteHandler(byteForm bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		v, err := s.Pop()
		if err != nil {
			return err
		}
		idx, err := s.Pop()
		if err != nil {
			return err
		}
		text := fmt.Sprintf("array-%d[%s] = %s", id, expr.Render(idx, s.Dialect, true), expr.RenderTopLevel(v, s.Dialect))
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), text)
		return nil
	}
}

func array2DWriteHandler(byteForm bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		v, err := s.Pop()
		if err != nil {
			return err
		}
		idx1, err := s.Pop()
		if err != nil {
			return err
		}
		idx2, err := s.Pop()
		if err != nil {
			return err
		}
		text := fmt.Sprintf("array-%d[%s][%s] = %s", id, expr.Render(idx2, s.Dialect, true), expr.Render(idx1, s.Dialect, true), expr.RenderTopLevel(v, s.Dialect))
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), text)
		return nil
	}
}

func incVarHandler(byteForm bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), fmt.Sprintf("%s++", s.Dialect.RenderVar(id)))
		return nil
	}
}

func decVarHandler(byteForm bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), fmt.Sprintf("%s--", s.Dialect.RenderVar(id)))
		return nil
	}
}

func incArrayHandler(byteForm bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		idx, err := s.Pop()
		if err != nil {
			return err
		}
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), fmt.Sprintf("array-%d[%s]++", id, expr.Render(idx, s.Dialect, true)))
		return nil
	}
}

func decArrayHandler(byteForm bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		id, err := readID(s, byteForm)
		if err != nil {
			return err
		}
		idx, err := s.Pop()
		if err != nil {
			return err
		}
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), fmt.Sprintf("array-%d[%s]--", id, expr.Render(idx, s.Dialect, true)))
		return nil
	}
}

// --- family 3: control flow ---

func condJumpHandler(jumpIfFalse bool) Handler {
	return func(s *State, opcodeOffset uint32) error {
		pred, err := s.Pop()
		if err != nil {
			return err
		}
		return HandleCondJump(s, opcodeOffset, pred, jumpIfFalse)
	}
}

func uncondJumpHandler(s *State, opcodeOffset uint32) error {
	return HandleUncondJump(s, opcodeOffset)
}

// --- family 4: named calls ---
//
// break and breakXTimes are ordinary named calls in the original dispatch
// table (ext("|break"), ext("p|breakXTimes")), not a dedicated opcode
// family; they are registered as descriptors alongside the rest of family
// 4 rather than as bespoke handlers here.

func namedCallHandler(name string, desc *descriptor.Descriptor) Handler {
	return func(s *State, opcodeOffset uint32) error {
		pushed, line, err := EvalDescriptor(name, desc, s)
		if err != nil {
			return err
		}
		if pushed != nil {
			return s.Push(pushed)
		}
		s.Em.EmitLine(opcodeOffset, s.OpcodeByte, s.Ctl.Depth(), line)
		return nil
	}
}
