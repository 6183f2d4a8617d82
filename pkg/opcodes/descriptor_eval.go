package opcodes

import (
	"fmt"
	"strings"

	"github.com/xplshn/descumm/pkg/descriptor"
	"github.com/xplshn/descumm/pkg/expr"
	"github.com/xplshn/descumm/pkg/strdec"
)

// EvalDescriptor interprets a pre-parsed descriptor (spec.md §4.4) against
// the current run state, producing either a pushed expression (when
// desc.Result is set) or a rendered statement line.
//
// When desc has an 'x'/'y' menu, the menu fully determines the call: the
// composed label is MenuName + "." + subLabel, and the arguments are the
// menu entry's own atoms ('x') or the popped stack-list's remaining items
// ('y') -- the descriptor's outer Atoms/Label are unused in that case. When
// no sub-opcode matches, the InvalidOpcodeError names the menu only.
func EvalDescriptor(name string, desc *descriptor.Descriptor, s *State) (pushed *expr.Node, line string, err error) {
	var (
		args  []*expr.Node
		label string
	)

	if desc.MenuName != "" {
		label, args, err = evalMenu(name, desc, s)
	} else {
		label = desc.Label
		args, err = consumeAtoms(desc.Atoms, s)
	}
	if err != nil {
		return nil, "", err
	}

	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[len(args)-1-i] = expr.Render(a, s.Dialect, true)
	}
	text := desc.Prefix + label + "(" + strings.Join(rendered, ",") + ")"

	if desc.Result {
		return expr.NewComplex(text), "", nil
	}
	return nil, text, nil
}

func evalMenu(name string, desc *descriptor.Descriptor, s *State) (string, []*expr.Node, error) {
	if desc.MenuByKey {
		items, err := s.PopStackList()
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(items) == 0 {
			return "", nil, &InvalidOpcodeError{Offset: s.Cur.Offset(), Depth: s.St.Len(), Menu: desc.MenuName}
		}
		selector := items[0]
		remaining := items[1:]
		id, ok := selector.Data.(expr.IntData)
		if selector.Kind != expr.Int || !ok {
			return "", nil, fmt.Errorf("%s: sub-opcode selector is not a literal", name)
		}
		sub, found := desc.Sub(byte(id.Value))
		if !found {
			return "", nil, &InvalidOpcodeError{Opcode: byte(id.Value), Offset: s.Cur.Offset(), Depth: s.St.Len(), Menu: desc.MenuName}
		}
		return desc.MenuName + "." + sub.Label, remaining, nil
	}

	b, err := s.Cur.Byte()
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", name, err)
	}
	sub, found := desc.Sub(b)
	if !found {
		return "", nil, &InvalidOpcodeError{Opcode: b, Offset: s.Cur.Offset(), Depth: s.St.Len(), Menu: desc.MenuName}
	}
	args, err := consumeAtoms(sub.Atoms, s)
	if err != nil {
		return "", nil, err
	}
	return desc.MenuName + "." + sub.Label, args, nil
}

func consumeAtoms(atoms []descriptor.Atom, s *State) ([]*expr.Node, error) {
	var args []*expr.Node
	for _, a := range atoms {
		switch a {
		case descriptor.AtomPop:
			n, err := s.Pop()
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		case descriptor.AtomPopZ:
			n, err := s.Pop()
			if err != nil {
				return nil, err
			}
			args = append(args, n)
			if s.Dialect < 7 {
				n2, err := s.Pop()
				if err != nil {
					return nil, err
				}
				args = append(args, n2)
			}
		case descriptor.AtomString:
			n, err := strdec.Decode(s.Cur, s.Dialect)
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		case descriptor.AtomWord:
			w, err := s.Cur.Word()
			if err != nil {
				return nil, err
			}
			args = append(args, expr.NewInt(int64(w)))
		case descriptor.AtomList:
			items, err := s.PopStackList()
			if err != nil {
				return nil, err
			}
			args = append(args, expr.NewStackList(items))
		case descriptor.AtomJump:
			w, err := s.Cur.Word()
			if err != nil {
				return nil, err
			}
			args = append(args, expr.NewInt(int64(w)))
		default:
			return nil, fmt.Errorf("unknown descriptor atom %q", a)
		}
	}
	return args, nil
}
