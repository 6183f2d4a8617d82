// Package options is the decompiler's single mutable-state context, adapted
// from gbc's pkg/config Feature/Warning registry (spec.md §9 "Global
// mutable state": encapsulate dialect, jump opcode, and flag bits in one
// value threaded through the dispatcher instead of process globals).
package options

import "github.com/xplshn/descumm/pkg/dialect"

// Options carries every command-line toggle from spec.md §6.
type Options struct {
	Dialect dialect.Dialect

	ShowOffsetsAlways bool // -o
	SuppressIf        bool // -i
	SuppressElse      bool // -e
	SuppressElseIf    bool // -f
	SuppressWhile     bool // -w
	HideOpcode        bool // -c
	HideOffset        bool // -x
	HaltOnUnderflow   bool // -h

	// Ambient additions beyond spec.md's flag set (SPEC_FULL.md §11):
	Verbose   bool // -v: path/size/hash/dialect banner
	DumpState bool // -D: godump the eval/block stack per opcode

	uncondOverridden bool
	uncondJumpOpcode byte
}

// New returns the defaults: dialect 6, offsets/opcode shown, no
// suppression, continue past underflow (spec.md §6 "Default dialect is 6").
func New() *Options {
	return &Options{Dialect: dialect.V6}
}

// SetDialect selects the dialect and, unless a jump opcode override has
// already been applied, its default unconditional-jump opcode.
func (o *Options) SetDialect(d dialect.Dialect) {
	o.Dialect = d
}

// UncondJumpOpcode returns the byte value the control-flow recoverer treats
// as an unconditional jump, honoring any explicit override.
func (o *Options) UncondJumpOpcode() byte {
	if o.uncondOverridden {
		return o.uncondJumpOpcode
	}
	return o.Dialect.DefaultUncondJumpOpcode()
}

// OverrideUncondJumpOpcode replaces the dialect's default jump opcode with
// an explicit byte. Selecting a dialect flag does not call it: the 6/7/8
// flags only call SetDialect, and UncondJumpOpcode derives the default
// from the dialect.
func (o *Options) OverrideUncondJumpOpcode(b byte) {
	o.uncondOverridden = true
	o.uncondJumpOpcode = b
}

// ShowOffsets reports whether offsets should prefix output lines: forced on
// by -o, forced off by -x, otherwise on by default (matching descumm6's
// baseline of always annotating offsets unless explicitly hidden).
func (o *Options) ShowOffsets() bool {
	if o.HideOffset {
		return false
	}
	return true
}

// ShowOpcode reports whether the opcode-byte prefix should be printed.
func (o *Options) ShowOpcode() bool { return !o.HideOpcode }
