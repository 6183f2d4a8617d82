// Package stack implements the bounded evaluation stack of spec.md §3/§5.
package stack

import (
	"errors"
	"fmt"

	"github.com/xplshn/descumm/pkg/expr"
)

// ErrOverflow is returned by Push when the stack is already at its bound.
var ErrOverflow = errors.New("stack: evaluation stack overflow")

// ErrUnderflow is returned by Pop when the stack is empty.
var ErrUnderflow = errors.New("stack: evaluation stack underflow")

// Stack is a bounded LIFO of expression-tree roots (spec.md §3
// "Evaluation Stack"), bounded at 128 entries per spec.md §5.
type Stack struct {
	items []*expr.Node
	max   int
}

// New returns an empty stack bounded at max entries.
func New(max int) *Stack {
	return &Stack{max: max}
}

// Push pushes n onto the stack, or returns ErrOverflow if the stack is
// already at its bound.
func (s *Stack) Push(n *expr.Node) error {
	if len(s.items) >= s.max {
		return fmt.Errorf("%w (bound %d)", ErrOverflow, s.max)
	}
	s.items = append(s.items, n)
	return nil
}

// Pop pops the top of the stack, or returns ErrUnderflow if empty.
func (s *Stack) Pop() (*expr.Node, error) {
	if len(s.items) == 0 {
		return nil, ErrUnderflow
	}
	n := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return n, nil
}

// Len reports the current depth.
func (s *Stack) Len() int { return len(s.items) }

// Snapshot returns the stack contents, bottom to top, without mutating it.
// Used for the trailing "Stack count: N" dump (spec.md §6).
func (s *Stack) Snapshot() []*expr.Node {
	out := make([]*expr.Node, len(s.items))
	copy(out, s.items)
	return out
}
