package control

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// fakeBody lets a test lay out just the bytes the recoverer actually peeks
// at (the unconditional-jump opcode + displacement pairs it uses to detect
// while back-edges and else-if chains), addressed by absolute offset.
type fakeBody map[int]byte

func (b fakeBody) peekByte(off int) (byte, bool) {
	v, ok := b[off]
	return v, ok
}

func (b fakeBody) peekWord(off int) (int32, bool) {
	lo, ok1 := b[off]
	hi, ok2 := b[off+1]
	if !ok1 || !ok2 {
		return 0, false
	}
	return int32(int16(uint16(lo) | uint16(hi)<<8)), true
}

func newRecoverer(body fakeBody) *Recoverer {
	return New(256, 0x73, 3, body.peekByte, body.peekWord)
}

func TestMaybeAddIfPlainForwardJump(t *testing.T) {
	r := newRecoverer(fakeBody{})
	frame, ok, err := r.MaybeAddIf(10, 20, 0)
	if err != nil || !ok {
		t.Fatalf("MaybeAddIf = (_, %v, %v), want (_, true, nil)", ok, err)
	}
	if frame.IsWhile {
		t.Fatalf("plain forward jump should not be classified as while")
	}
	if r.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", r.Depth())
	}
}

func TestMaybeAddIfRejectsBackwardOrOutOfRange(t *testing.T) {
	r := newRecoverer(fakeBody{})
	if _, ok, _ := r.MaybeAddIf(20, 10, 0); ok {
		t.Fatalf("backward jump should not open a block")
	}
	if _, ok, _ := r.MaybeAddIf(0, 0x10001, 0); ok {
		t.Fatalf("out-of-16-bit-range jump should not open a block")
	}
}

// TestWhileBackEdgeDetection lays out an unconditional jump ending at
// offset 20 (opcode 0x73 + word displacement, starting at to-L = 17 where
// L=3) that lands back at lineStart 5 (spec.md §4.6 "offs_of_line").
func TestWhileBackEdgeDetection(t *testing.T) {
	body := fakeBody{}
	// jump opcode at offset 17 (20-3), displacement word at 18..19.
	// target = 20 + disp == 5  =>  disp == -15
	body[17] = 0x73
	disp := int16(-15)
	body[18] = byte(disp)
	body[19] = byte(disp >> 8)

	r := newRecoverer(body)
	frame, ok, err := r.MaybeAddIf(10, 20, 5)
	if err != nil || !ok {
		t.Fatalf("MaybeAddIf = (_, %v, %v)", ok, err)
	}
	if !frame.IsWhile {
		t.Fatalf("expected back-edge to classify frame as while")
	}
}

func TestMaybeAddElseRequiresExactClose(t *testing.T) {
	r := newRecoverer(fakeBody{})
	if _, ok, _ := r.MaybeAddIf(0, 10, 0); !ok {
		t.Fatal("setup MaybeAddIf failed")
	}
	// cur != top.To: should not open an else.
	if _, ok, _ := r.MaybeAddElse(5, 20, 0); ok {
		t.Fatalf("MaybeAddElse should require cur == top.To")
	}
	if _, ok, _ := r.MaybeAddElse(10, 20, 0); !ok {
		t.Fatalf("MaybeAddElse should open when cur == top.To")
	}
}

func TestPopClosedOrdersInnermostFirst(t *testing.T) {
	r := newRecoverer(fakeBody{})
	r.MaybeAddIf(0, 30, 0)
	r.MaybeAddIf(1, 20, 0)
	r.MaybeAddIf(2, 10, 0)
	closed := r.PopClosed(30)
	want := []Frame{
		{From: 2, To: 10},
		{From: 1, To: 20},
		{From: 0, To: 30},
	}
	if diff := cmp.Diff(want, closed, cmpopts.IgnoreFields(Frame{}, "IsWhile")); diff != "" {
		t.Fatalf("PopClosed order mismatch (-want +got):\n%s", diff)
	}
	if r.Depth() != 0 {
		t.Fatalf("Depth() after PopClosed = %d, want 0", r.Depth())
	}
}
