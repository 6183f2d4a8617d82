// Package dialect describes the differences between the three supported
// bytecode dialects: word width, variable high-bit width, opcode numbering,
// and the byte value of the unconditional-jump opcode.
package dialect

import "fmt"

// Dialect selects the bytecode version being decompiled.
type Dialect int

const (
	V6 Dialect = 6
	V7 Dialect = 7
	V8 Dialect = 8
)

func (d Dialect) String() string {
	switch d {
	case V6:
		return "v6"
	case V7:
		return "v7"
	case V8:
		return "v8"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// WordSize is the number of bytes a cursor.Word reads: 2 for v6/v7, 4 for v8.
func (d Dialect) WordSize() int {
	if d == V8 {
		return 4
	}
	return 2
}

// VarBits is W from spec.md §3: the bit width below which a variable id is
// classified as global.
func (d Dialect) VarBits() uint {
	if d == V8 {
		return 28
	}
	return 12
}

// DefaultUncondJumpOpcode returns the byte value of the dialect's
// unconditional-jump opcode before any command-line override.
func (d Dialect) DefaultUncondJumpOpcode() byte {
	if d == V8 {
		return 0x66
	}
	return 0x73
}

// VarClass classifies an engine variable id.
type VarClass int

const (
	ClassGlobal VarClass = iota
	ClassBit
	ClassLocal
	ClassUnknown
)

// ClassifyVar splits a raw variable id into its class and the remaining
// index bits, per spec.md §3 "Variable id classification". W=28 for v8,
// W=12 otherwise; the bit-variable flag sits at 1<<(W+3) (0x8000_0000 /
// 0x8000) and the local-variable flag at 1<<(W+2) (0x4000_0000 / 0x4000).
func ClassifyVar(raw uint32, w uint) (VarClass, uint32) {
	bitFlag := uint32(1) << (w + 3)
	localFlag := uint32(1) << (w + 2)
	switch {
	case raw&bitFlag != 0:
		return ClassBit, raw &^ bitFlag
	case raw&localFlag != 0:
		return ClassLocal, raw &^ localFlag
	case raw < (uint32(1) << w):
		return ClassGlobal, raw
	default:
		return ClassUnknown, raw
	}
}
