// Package decomp is the driver of spec.md's item 8: "reads the header,
// selects the dialect's opcode dispatcher, and loops dispatch -> emit ->
// close-blocks until the bytecode is exhausted."
package decomp

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/goforj/godump"

	"github.com/xplshn/descumm/pkg/container"
	"github.com/xplshn/descumm/pkg/control"
	"github.com/xplshn/descumm/pkg/cursor"
	"github.com/xplshn/descumm/pkg/diag"
	"github.com/xplshn/descumm/pkg/emit"
	"github.com/xplshn/descumm/pkg/expr"
	"github.com/xplshn/descumm/pkg/opcodes"
	"github.com/xplshn/descumm/pkg/options"
	"github.com/xplshn/descumm/pkg/stack"
)

const (
	maxStackDepth = 128
	maxBlockDepth = 256
)

// Run decompiles the file at path per opts, writing output to out. Returns
// a *diag.Fatal on any of spec.md §7's abort conditions.
func Run(path string, opts *options.Options, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return diag.NewFatal(1, fmt.Errorf("open %s: %w", path, err))
	}

	if opts.Verbose {
		printBanner(path, data, opts)
	}

	hdr, err := container.Parse(data, opts.Dialect)
	if err != nil {
		diag.Errorf(0, "%v", err)
		return diag.NewFatal(2, err)
	}

	em := emit.New(out, opts.ShowOffsets(), opts.ShowOpcode())

	if hdr.Tag == container.TagVERB {
		for _, line := range container.RenderVerbTable(hdr) {
			em.EmitRaw(line)
		}
	}

	body := data[hdr.BodyOffset:]
	cur := cursor.New(body, opts.Dialect)
	st := stack.New(maxStackDepth)

	uncond := opts.UncondJumpOpcode()
	jumpLen := 1 + opts.Dialect.WordSize()
	ctl := control.New(maxBlockDepth, uncond, jumpLen,
		func(off int) (byte, bool) { return cur.PeekAt(off) },
		func(off int) (int32, bool) { return cur.PeekSWordAt(off) },
	)

	s := opcodes.NewState(cur, st, ctl, em, opts.Dialect, opts)
	table := opcodes.TableFor(opts.Dialect)

	for {
		if opts.DumpState {
			godump.Dump(s)
		}
		done, err := opcodes.Dispatch(s, table)
		if err != nil {
			return abortOn(err, s, opts)
		}
		if done {
			break
		}
	}

	em.EmitRaw("END")
	remaining := st.Snapshot()
	em.EmitRaw(fmt.Sprintf("Stack count: %d", len(remaining)))
	for i := len(remaining) - 1; i >= 0; i-- {
		em.EmitRaw(expr.RenderTopLevel(remaining[i], opts.Dialect))
	}
	return nil
}

// abortOn turns a dispatch error into the diagnostic + fatal-code pair
// spec.md §7 prescribes for each error kind.
func abortOn(err error, s *opcodes.State, opts *options.Options) error {
	if invalid, ok := err.(*opcodes.InvalidOpcodeError); ok {
		diag.Errorf(invalid.Offset, "%v", invalid)
		return diag.NewFatal(3, invalid)
	}
	diag.Errorf(s.Cur.Offset(), "%v", err)
	return diag.NewFatal(3, err)
}

// printBanner writes the -v verbose header: dialect, content hash, and a
// human-readable byte count, grounded on gtest's hashFile pattern
// (cmd/gtest/main.go in the teacher repo).
func printBanner(path string, data []byte, opts *options.Options) {
	h := xxhash.Sum64(data)
	fmt.Fprintf(os.Stderr, "descumm: %s (%s) hash=%x dialect=%s\n",
		path, humanize.Bytes(uint64(len(data))), h, opts.Dialect)
}
