package dialect

import "testing"

func TestClassifyVar(t *testing.T) {
	cases := []struct {
		name    string
		raw     uint32
		w       uint
		class   VarClass
		wantIdx uint32
	}{
		{"global v6", 0x0005, 12, ClassGlobal, 5},
		{"bit v6", 0x8000 | 3, 12, ClassBit, 3},
		{"local v6", 0x4000 | 7, 12, ClassLocal, 7},
		{"unknown v6", 0x1000, 12, ClassUnknown, 0x1000},
		{"global v8", 0x00000010, 28, ClassGlobal, 16},
		{"bit v8", 0x80000000 | 9, 28, ClassBit, 9},
		{"local v8", 0x40000000 | 2, 28, ClassLocal, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			class, idx := ClassifyVar(c.raw, c.w)
			if class != c.class || idx != c.wantIdx {
				t.Fatalf("ClassifyVar(0x%X, %d) = (%v, %d), want (%v, %d)", c.raw, c.w, class, idx, c.class, c.wantIdx)
			}
		})
	}
}

func TestRenderVar(t *testing.T) {
	if got := V6.RenderVar(0); got != "var0" {
		t.Fatalf("V6.RenderVar(0) = %q, want var0 (index 0 is unnamed in the original table)", got)
	}
	if got := V6.RenderVar(1); got != "g_ego" {
		t.Fatalf("V6.RenderVar(1) = %q, want g_ego", got)
	}
	if got := V6.RenderVar(500); got != "var500" {
		t.Fatalf("V6.RenderVar(500) = %q, want var500", got)
	}
	if got := V6.RenderVar(0x8000 | 3); got != "bitvar3" {
		t.Fatalf("V6.RenderVar(bit 3) = %q, want bitvar3", got)
	}
	if got := V6.RenderVar(0x4000 | 7); got != "localvar7" {
		t.Fatalf("V6.RenderVar(local 7) = %q, want localvar7", got)
	}
}

func TestDefaultUncondJumpOpcode(t *testing.T) {
	if V6.DefaultUncondJumpOpcode() != 0x73 {
		t.Fatalf("v6 uncond opcode = 0x%X, want 0x73", V6.DefaultUncondJumpOpcode())
	}
	if V8.DefaultUncondJumpOpcode() != 0x66 {
		t.Fatalf("v8 uncond opcode = 0x%X, want 0x66", V8.DefaultUncondJumpOpcode())
	}
}
