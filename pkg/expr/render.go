package expr

import (
	"fmt"
	"strings"

	"github.com/xplshn/descumm/pkg/dialect"
)

// Render pretty-prints n following spec.md §4.3. wantParens controls
// whether a top-level Binary node gets wrapped in parens; nested operands
// are always parenthesised regardless (no attempt to recover
// associativity/precedence, per spec.md §4.3).
func Render(n *Node, d dialect.Dialect, wantParens bool) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Int:
		return fmt.Sprintf("%d", n.Data.(IntData).Value)
	case Var:
		return d.RenderVar(n.Data.(VarData).Raw)
	case Array:
		return renderArray(n, d)
	case Unary:
		return renderUnary(n, d)
	case Binary:
		return renderBinary(n, d, wantParens)
	case Complex:
		return n.Data.(ComplexData).Text
	case StackList:
		return renderStackList(n, d)
	case Dup:
		return fmt.Sprintf("dup%d", n.Data.(DupData).Slot)
	default:
		return "<?expr?>"
	}
}

func renderArray(n *Node, d dialect.Dialect) string {
	a := n.Data.(ArrayData)
	base := fmt.Sprintf("array-%d", a.Raw)
	if a.Index2 != nil {
		return fmt.Sprintf("%s[%s][%s]", base, Render(a.Index2, d, true), Render(a.Index1, d, true))
	}
	return fmt.Sprintf("%s[%s]", base, Render(a.Index1, d, true))
}

func renderUnary(n *Node, d dialect.Dialect) string {
	u := n.Data.(UnaryData)
	child := Render(u.Child, d, true)
	switch u.Op {
	case OpIsZero:
		return fmt.Sprintf("0==%s", child)
	case OpNeg:
		return fmt.Sprintf("!%s", child)
	default:
		return fmt.Sprintf("%s%s", u.Op, child)
	}
}

func renderBinary(n *Node, d dialect.Dialect, wantParens bool) string {
	b := n.Data.(BinaryData)
	left := Render(b.Left, d, true)
	right := Render(b.Right, d, true)
	inner := fmt.Sprintf("%s %s %s", left, b.Op, right)
	if !wantParens {
		return inner
	}
	return "(" + inner + ")"
}

func renderStackList(n *Node, d dialect.Dialect) string {
	items := n.Data.(StackListData).Items
	// Items[0] was popped first (it was pushed last); rendering restores
	// push order, i.e. reverses pop order (spec.md §4.3).
	parts := make([]string, len(items))
	for i, it := range items {
		parts[len(items)-1-i] = Render(it, d, true)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// RenderTopLevel renders a node as a top-level predicate or statement
// expression: Binary nodes are not wrapped in parens at this level.
func RenderTopLevel(n *Node, d dialect.Dialect) string { return Render(n, d, false) }
