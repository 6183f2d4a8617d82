// Package expr implements the tagged expression tree described in
// spec.md §3, shaped after gbc's pkg/ast.Node (a NodeType-style tag plus a
// Data field holding the per-kind payload).
package expr

// Kind tags the shape of an expression Node, mirroring ast.NodeType.
type Kind int

const (
	Int Kind = iota
	Var
	Array
	Unary
	Binary
	Complex
	StackList
	Dup
)

// Operator indexes the shared unary/binary operator table (spec.md §6).
type Operator int

const (
	OpIsZero Operator = iota // 0==x, unary
	OpNeg                    // !x, unary predicate negation
	OpEq
	OpNeq
	OpGt
	OpLt
	OpLe
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpLAnd
	OpLOr
	OpBAnd
	OpBOr
	OpMod
)

var operatorText = map[Operator]string{
	OpIsZero: "0==",
	OpNeg:    "!",
	OpEq:     "==",
	OpNeq:    "!=",
	OpGt:     ">",
	OpLt:     "<",
	OpLe:     "<=",
	OpGe:     ">=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpLAnd:   "&&",
	OpLOr:    "||",
	OpBAnd:   "&",
	OpBOr:    "|",
	OpMod:    "%",
}

// String renders the operator's textual form from the shared table
// (spec.md §6 "Operator table").
func (o Operator) String() string {
	if s, ok := operatorText[o]; ok {
		return s
	}
	return "?op?"
}

// binaryOpcodeOrder maps a contiguous opcode index (0-based within the
// dialect's operator range, spec.md §4.8) to the shared Operator table.
// v6/v7 start at opcode 0xE with 12 entries (==,!=,>,<,<=,>=,+,-,*,/,&&,||);
// v8 starts at opcode 0x8 and continues with three more (&,|,%).
var binaryOpcodeOrder = []Operator{
	OpEq, OpNeq, OpGt, OpLt, OpLe, OpGe, OpAdd, OpSub, OpMul, OpDiv, OpLAnd, OpLOr,
	OpBAnd, OpBOr, OpMod,
}

// BinaryOperatorAt returns the operator at the given 0-based index into the
// dialect's contiguous binary-operator opcode range, and whether the index
// is in range.
func BinaryOperatorAt(index int) (Operator, bool) {
	if index < 0 || index >= len(binaryOpcodeOrder) {
		return 0, false
	}
	return binaryOpcodeOrder[index], true
}

// Node is a tagged expression tree node. Data holds one of the *Data
// structs below matching Kind.
type Node struct {
	Kind Kind
	Data any
}

type IntData struct{ Value int64 }
type VarData struct{ Raw uint32 }
type ArrayData struct {
	Raw            uint32
	Index1, Index2 *Node // Index2 is nil unless the opcode was the 2-D variant
}
type UnaryData struct {
	Op    Operator
	Child *Node
}
type BinaryData struct {
	Op          Operator
	Left, Right *Node
}
type ComplexData struct{ Text string }
type StackListData struct {
	// Items[0] is the first element popped (the tail of the original
	// push order); rendering reverses this, per spec.md §4.3.
	Items []*Node
}
type DupData struct {
	Slot int
}

// NewInt builds an integer literal node.
func NewInt(v int64) *Node { return &Node{Kind: Int, Data: IntData{Value: v}} }

// NewVar builds a variable reference node.
func NewVar(raw uint32) *Node { return &Node{Kind: Var, Data: VarData{Raw: raw}} }

// NewArray builds a 1-D or 2-D array subscript node.
func NewArray(raw uint32, idx1, idx2 *Node) *Node {
	return &Node{Kind: Array, Data: ArrayData{Raw: raw, Index1: idx1, Index2: idx2}}
}

// NewUnary builds a unary-operator node.
func NewUnary(op Operator, child *Node) *Node {
	return &Node{Kind: Unary, Data: UnaryData{Op: op, Child: child}}
}

// NewBinary builds a binary-operator node.
func NewBinary(op Operator, l, r *Node) *Node {
	return &Node{Kind: Binary, Data: BinaryData{Op: op, Left: l, Right: r}}
}

// NewComplex wraps an already-formatted text fragment (function call,
// decoded string literal, or error marker).
func NewComplex(text string) *Node { return &Node{Kind: Complex, Data: ComplexData{Text: text}} }

// NewStackList builds an n-tuple popped as a batch.
func NewStackList(items []*Node) *Node { return &Node{Kind: StackList, Data: StackListData{Items: items}} }

// NewDup builds a named temporary node. Two stack handles to the return
// value share the same pointer; never clone a Dup node.
func NewDup(slot int) *Node { return &Node{Kind: Dup, Data: DupData{Slot: slot}} }

// IsDup reports whether n is a Dup node (used by the `kill` handler,
// spec.md §4.8 family 2, to detect and re-push an unused duplicate).
func IsDup(n *Node) bool { return n != nil && n.Kind == Dup }
