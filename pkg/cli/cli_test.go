package cli

import "testing"

func TestBundledShortFlags(t *testing.T) {
	fs := NewFlagSet("descumm")
	var o, i, h bool
	fs.Bool(&o, 'o', "offsets")
	fs.Bool(&i, 'i', "suppress if")
	fs.Bool(&h, 'h', "halt")

	if err := fs.Parse([]string{"-oi", "script.b"}); err != nil {
		t.Fatal(err)
	}
	if !o || !i {
		t.Fatalf("bundled flags not set: o=%v i=%v", o, i)
	}
	if h {
		t.Fatalf("unset flag h should remain false")
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "script.b" {
		t.Fatalf("Args() = %v, want [script.b]", got)
	}
}

func TestUnknownFlagErrors(t *testing.T) {
	fs := NewFlagSet("descumm")
	var o bool
	fs.Bool(&o, 'o', "offsets")
	if err := fs.Parse([]string{"-z"}); err == nil {
		t.Fatalf("expected an error for an unrecognised flag")
	}
}

func TestAppRunInvokesActionWithPositionalArgs(t *testing.T) {
	app := NewApp("descumm")
	var seen []string
	var o bool
	app.FlagSet.Bool(&o, 'o', "offsets")
	app.Action = func(args []string) error {
		seen = args
		return nil
	}
	if err := app.Run([]string{"-o", "script.b"}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != "script.b" {
		t.Fatalf("Action args = %v, want [script.b]", seen)
	}
	if !o {
		t.Fatalf("expected -o to be set")
	}
}
