// Package cli adapts gbc's hand-rolled flag parser (pkg/cli in the teacher
// repo) to this tool's single positional file argument plus bundled
// single-letter flags (spec.md "Command-line": "Flags (single-letter, may
// be bundled after one `-`)"). The Value/Flag/FlagSet/App/IndentState shape
// is kept; only the parsing loop and help-page rendering are rewritten for
// bundled short flags instead of GNU-style long flags.
package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

// IndentState renders nested indentation for the help page, unchanged in
// shape from the teacher's version.
type IndentState struct {
	levels   []uint8
	baseUnit uint8
}

func NewIndentState() *IndentState {
	return &IndentState{levels: []uint8{0}, baseUnit: 2}
}

func (is *IndentState) AtLevel(level int) string {
	return strings.Repeat(" ", int(is.baseUnit*uint8(level)))
}

// Value is a settable flag value, mirroring gbc's pkg/cli.Value.
type Value interface {
	String() string
	Set() // bundled letters are pure toggles, so Set takes no argument
	Get() bool
}

type boolValue struct{ p *bool }

func (v *boolValue) Set()          { *v.p = true }
func (v *boolValue) String() string {
	if *v.p {
		return "true"
	}
	return "false"
}
func (v *boolValue) Get() bool { return *v.p }

// Flag is one recognised letter.
type Flag struct {
	Letter byte
	Usage  string
	Value  *boolValue
}

// FlagSet holds the tool's letter -> flag map and the parsed positional
// arguments.
type FlagSet struct {
	name  string
	flags map[byte]*Flag
	order []byte
	args  []string
}

func NewFlagSet(name string) *FlagSet {
	return &FlagSet{name: name, flags: make(map[byte]*Flag)}
}

// Args returns the non-flag positional arguments left after Parse.
func (f *FlagSet) Args() []string { return f.args }

// Bool registers a single-letter boolean toggle.
func (f *FlagSet) Bool(p *bool, letter byte, usage string) {
	*p = false
	flag := &Flag{Letter: letter, Usage: usage, Value: &boolValue{p}}
	f.flags[letter] = flag
	f.order = append(f.order, letter)
}

// UnknownFlagError is returned for an unrecognised letter; spec.md
// "Unknown flags print help and exit 0" -- the caller decides what to do
// with it rather than this package calling os.Exit directly.
type UnknownFlagError struct{ Letter byte }

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown flag: -%c", e.Letter)
}

// Parse walks arguments, expanding every bundled group of letters after a
// single '-' (spec.md: "-oiefwc68" sets o,i,e,f,w,c,6-then-8... in one
// argument) and collecting everything else as a positional argument.
func (f *FlagSet) Parse(arguments []string) error {
	f.args = nil
	for _, arg := range arguments {
		if len(arg) < 2 || arg[0] != '-' {
			f.args = append(f.args, arg)
			continue
		}
		for i := 1; i < len(arg); i++ {
			letter := arg[i]
			flag, ok := f.flags[letter]
			if !ok {
				return &UnknownFlagError{Letter: letter}
			}
			flag.Value.Set()
		}
	}
	return nil
}

// App bundles the FlagSet with the help-page metadata and entry action,
// mirroring gbc's pkg/cli.App.
type App struct {
	Name        string
	Synopsis    string
	Description string
	FlagSet     *FlagSet
	Action      func(args []string) error
}

func NewApp(name string) *App {
	return &App{Name: name, FlagSet: NewFlagSet(name)}
}

// Run parses arguments and either prints help (on -help/unknown flag, exit
// 0 per spec.md) or invokes Action with the leftover positional arguments.
func (a *App) Run(arguments []string) error {
	if err := a.FlagSet.Parse(arguments); err != nil {
		a.printUsage(os.Stdout)
		return nil
	}
	if len(a.FlagSet.Args()) == 0 {
		a.printUsage(os.Stdout)
		return nil
	}
	if a.Action != nil {
		return a.Action(a.FlagSet.Args())
	}
	return nil
}

func (a *App) printUsage(w *os.File) {
	var sb strings.Builder
	indent := NewIndentState()
	width := getTerminalWidth()

	fmt.Fprintf(&sb, "Usage: %s <options> file.b\n", a.Name)
	if a.Synopsis != "" {
		fmt.Fprintf(&sb, "%s%s\n", indent.AtLevel(1), a.Synopsis)
	}
	if a.Description != "" {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s%s\n", indent.AtLevel(1), wrapText(a.Description, width-len(indent.AtLevel(1))))
	}

	letters := make([]byte, len(a.FlagSet.order))
	copy(letters, a.FlagSet.order)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	if len(letters) > 0 {
		sb.WriteString("\nOptions\n")
		for _, l := range letters {
			flag := a.FlagSet.flags[l]
			fmt.Fprintf(&sb, "%s-%c  %s\n", indent.AtLevel(1), flag.Letter, flag.Usage)
		}
	}
	fmt.Fprint(w, sb.String())
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 20 {
		return 80
	}
	return width
}

func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}
	words := strings.Fields(text)
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if lineLen > 0 && lineLen+1+len(w) > maxWidth {
			b.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
