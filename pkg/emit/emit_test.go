package emit

import (
	"strings"
	"testing"
)

func TestEmitLineWritesOffsetAndOpcodePrefix(t *testing.T) {
	var b strings.Builder
	e := New(&b, true, true)
	e.EmitLine(0x10, 0x43, 0, "var0 = 7")
	want := "[0010](43)var0 = 7\n"
	if b.String() != want {
		t.Fatalf("EmitLine output = %q, want %q", b.String(), want)
	}
}

func TestEmitLineIndents(t *testing.T) {
	var b strings.Builder
	e := New(&b, false, false)
	e.EmitLine(0, 0, 2, "foo()")
	if got, want := b.String(), "    foo()\n"; got != want {
		t.Fatalf("EmitLine indented = %q, want %q", got, want)
	}
}

func TestEmitLineSkipsEmpty(t *testing.T) {
	var b strings.Builder
	e := New(&b, false, false)
	e.EmitLine(0, 0, 0, "")
	if b.String() != "" {
		t.Fatalf("EmitLine with empty buf should write nothing, got %q", b.String())
	}
}

func TestPendingElseFlushesOnNextLine(t *testing.T) {
	var b strings.Builder
	e := New(&b, false, false)
	e.ArmPendingElse(0x30, 0x20, 0x73, 2)
	if _, ok := e.Pending(); !ok {
		t.Fatalf("Pending() should report armed")
	}
	e.EmitLine(0x31, 0, 2, "someStatement()")
	got := b.String()
	if !strings.Contains(got, "} else { /* 0030 */") {
		t.Fatalf("expected flushed pending else, got %q", got)
	}
	if !strings.HasSuffix(got, "someStatement()\n") {
		t.Fatalf("expected the triggering line after the flush, got %q", got)
	}
	if _, ok := e.Pending(); ok {
		t.Fatalf("Pending() should be cleared after flush")
	}
}

func TestHaveElseReducesNextLineIndentOnce(t *testing.T) {
	var b strings.Builder
	e := New(&b, false, false)
	e.SetHaveElse()
	e.EmitLine(0, 0, 3, "a()")
	e.EmitLine(0, 0, 3, "b()")
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if lines[0] != "    a()" {
		t.Fatalf("first line = %q, want reduced indent", lines[0])
	}
	if lines[1] != "      b()" {
		t.Fatalf("second line = %q, want normal indent", lines[1])
	}
}
