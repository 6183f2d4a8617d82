// Command descumm decompiles a single SCUMM-family bytecode script into a
// pseudo-C listing, per spec.md's command-line and output sections.
package main

import (
	"os"

	"github.com/xplshn/descumm/pkg/cli"
	"github.com/xplshn/descumm/pkg/dialect"
	"github.com/xplshn/descumm/pkg/diag"
	"github.com/xplshn/descumm/pkg/decomp"
	"github.com/xplshn/descumm/pkg/options"
)

func main() {
	app := cli.NewApp("descumm")
	app.Synopsis = "<options> file.b"
	app.Description = "Decompiles a SCUMM v6/v7/v8 bytecode script into a pseudo-C listing."

	opts := options.New()
	fs := app.FlagSet

	var (
		flagOffsets bool
		flagSuppIf  bool
		flagSuppE   bool
		flagSuppEI  bool
		flagSuppW   bool
		flagHideOp  bool
		flagHideOff bool
		flagHalt    bool
		flagV6      bool
		flagV7      bool
		flagV8      bool
		flagVerbose bool
		flagDump    bool
	)

	fs.Bool(&flagOffsets, 'o', "Always show offsets in output")
	fs.Bool(&flagSuppIf, 'i', "Suppress if reconstruction")
	fs.Bool(&flagSuppE, 'e', "Suppress else reconstruction")
	fs.Bool(&flagSuppEI, 'f', "Suppress else-if reconstruction")
	fs.Bool(&flagSuppW, 'w', "Suppress while reconstruction")
	fs.Bool(&flagHideOp, 'c', "Hide opcode-byte prefix")
	fs.Bool(&flagHideOff, 'x', "Hide offset prefix")
	fs.Bool(&flagHalt, 'h', "Halt on first stack underflow")
	fs.Bool(&flagV6, '6', "Select dialect v6 (default)")
	fs.Bool(&flagV7, '7', "Select dialect v7")
	fs.Bool(&flagV8, '8', "Select dialect v8")
	fs.Bool(&flagVerbose, 'v', "Print a dialect/hash banner before decompiling")
	fs.Bool(&flagDump, 'D', "Dump evaluation/block-stack state before every opcode")

	app.Action = func(args []string) error {
		opts.ShowOffsetsAlways = flagOffsets
		opts.SuppressIf = flagSuppIf
		opts.SuppressElse = flagSuppE
		opts.SuppressElseIf = flagSuppEI
		opts.SuppressWhile = flagSuppW
		opts.HideOpcode = flagHideOp
		opts.HideOffset = flagHideOff
		opts.HaltOnUnderflow = flagHalt
		opts.Verbose = flagVerbose
		opts.DumpState = flagDump

		switch {
		case flagV8:
			opts.SetDialect(dialect.V8)
		case flagV7:
			opts.SetDialect(dialect.V7)
		default:
			opts.SetDialect(dialect.V6)
		}

		if len(args) == 0 {
			return nil
		}
		if err := decomp.Run(args[0], opts, os.Stdout); err != nil {
			if f, ok := err.(*diag.Fatal); ok {
				os.Exit(f.Code)
			}
			os.Exit(1)
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
