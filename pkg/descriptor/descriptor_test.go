package descriptor

import "testing"

func TestParsePlainAtoms(t *testing.T) {
	d := Parse("pp|walkActorTo")
	if d.Label != "walkActorTo" {
		t.Fatalf("Label = %q, want walkActorTo", d.Label)
	}
	if len(d.Atoms) != 2 || d.Atoms[0] != AtomPop || d.Atoms[1] != AtomPop {
		t.Fatalf("Atoms = %v, want [p p]", d.Atoms)
	}
	if d.Result {
		t.Fatalf("Result should be false without leading 'r'")
	}
}

func TestParseResultFlag(t *testing.T) {
	d := Parse("rp|getRandomNumber")
	if !d.Result {
		t.Fatalf("Result should be true with leading 'r'")
	}
	if d.Label != "getRandomNumber" {
		t.Fatalf("Label = %q", d.Label)
	}
}

func TestParsePrefix(t *testing.T) {
	d := Parse("mSAY LINE\x00p|print")
	if d.Prefix != "SAY LINE" {
		t.Fatalf("Prefix = %q, want %q", d.Prefix, "SAY LINE")
	}
}

func TestParseXMenu(t *testing.T) {
	d := Parse("xactorOps\x00" +
		"01p|setCostume," +
		"02pp|setColor," +
		"|actorOps")
	if d.MenuName != "actorOps" {
		t.Fatalf("MenuName = %q", d.MenuName)
	}
	if d.MenuByKey {
		t.Fatalf("'x' menu should not be MenuByKey")
	}
	if len(d.Menu) != 2 {
		t.Fatalf("Menu has %d entries, want 2", len(d.Menu))
	}
	sub, ok := d.Sub(0x02)
	if !ok || sub.Label != "setColor" || len(sub.Atoms) != 2 {
		t.Fatalf("Sub(0x02) = %+v, ok=%v", sub, ok)
	}
	if _, ok := d.Sub(0x99); ok {
		t.Fatalf("Sub(0x99) should not be found")
	}
}

func TestParseYMenu(t *testing.T) {
	d := Parse("yactorWait\x00" +
		"01|forActor," +
		"02|forMessage," +
		"|wait")
	if !d.MenuByKey {
		t.Fatalf("'y' menu should be MenuByKey")
	}
	sub, ok := d.Sub(0x01)
	if !ok || sub.Label != "forActor" {
		t.Fatalf("Sub(0x01) = %+v, ok=%v", sub, ok)
	}
}

func TestParseMalformedPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on malformed descriptor")
		}
	}()
	Parse("pp-missing-pipe")
}
