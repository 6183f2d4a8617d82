package stack

import (
	"errors"
	"testing"

	"github.com/xplshn/descumm/pkg/expr"
)

func TestPushPopOrder(t *testing.T) {
	s := New(4)
	if err := s.Push(expr.NewInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(expr.NewInt(2)); err != nil {
		t.Fatal(err)
	}
	v, err := s.Pop()
	if err != nil || v.Data.(expr.IntData).Value != 2 {
		t.Fatalf("Pop() = (%v, %v), want (2, nil)", v, err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestOverflow(t *testing.T) {
	s := New(1)
	if err := s.Push(expr.NewInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(expr.NewInt(2)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("second Push err = %v, want ErrOverflow", err)
	}
}

func TestUnderflow(t *testing.T) {
	s := New(1)
	if _, err := s.Pop(); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("Pop on empty err = %v, want ErrUnderflow", err)
	}
}

func TestSnapshotDoesNotMutate(t *testing.T) {
	s := New(4)
	s.Push(expr.NewInt(1))
	s.Push(expr.NewInt(2))
	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot len = %d, want 2", len(snap))
	}
	if s.Len() != 2 {
		t.Fatalf("Snapshot mutated the stack, Len() = %d", s.Len())
	}
}
