package strdec

import (
	"testing"

	"github.com/xplshn/descumm/pkg/cursor"
	"github.com/xplshn/descumm/pkg/dialect"
	"github.com/xplshn/descumm/pkg/expr"
)

// TestDecodeWrapsTagsInColons mirrors original_source/descumm6.cpp's
// se_get_string: literal runs are quoted, tags are wrapped in colons, and
// segments are concatenated with no extra separator (e.g. "hi":newline:
// "there").
func TestDecodeWrapsTagsInColons(t *testing.T) {
	body := append([]byte("hi"), 0xFF, 1)
	body = append(body, []byte("there")...)
	body = append(body, 0)
	c := cursor.New(body, dialect.V6)
	n, err := Decode(c, dialect.V6)
	if err != nil {
		t.Fatal(err)
	}
	got := expr.Render(n, dialect.V6, false)
	want := `"hi":newline:"there"`
	if got != want {
		t.Fatalf("Decode() = %q, want %q", got, want)
	}
}

// TestDecodeParamTag covers the ":name=W:" tags (startanim/setcolor/
// setfont/unk2), which carry a following word argument.
func TestDecodeParamTag(t *testing.T) {
	body := []byte{0xFF, 9, 0x2A, 0x00, 0}
	c := cursor.New(body, dialect.V6)
	n, err := Decode(c, dialect.V6)
	if err != nil {
		t.Fatal(err)
	}
	got := expr.Render(n, dialect.V6, false)
	if got != ":startanim=42:" {
		t.Fatalf("Decode() = %q, want %q", got, ":startanim=42:")
	}
}
