// Package strdec decodes inline script strings with markup escapes, per
// spec.md §4.5. Rendered tags are wrapped in colons and concatenated
// directly against the quoted literal runs around them (no extra
// separator), matching original_source/descumm6.cpp's se_get_string
// (e.g. `"hi":newline:"there"`).
package strdec

import (
	"fmt"
	"strings"

	"github.com/xplshn/descumm/pkg/cursor"
	"github.com/xplshn/descumm/pkg/dialect"
	"github.com/xplshn/descumm/pkg/expr"
)

const (
	escFE = 0xFE
	escFF = 0xFF
)

// namedTags maps the handful of markup escape tag bytes spec.md §4.5 lists
// explicitly to their rendered names; any other tag renders through the
// generic `unkN=W` fallback in decodeTag.
var namedTags = map[byte]string{
	1:  "newline",
	2:  "keeptext",
	3:  "wait",
	9:  "startanim",
	12: "setcolor",
	13: "unk2",
	14: "setfont",
}

// Decode reads a NUL-terminated inline string starting at the cursor's
// current position and returns a Complex node holding its rendered form.
func Decode(c *cursor.Cursor, d dialect.Dialect) (*expr.Node, error) {
	var b strings.Builder
	inQuotes := false
	open := func() {
		if !inQuotes {
			b.WriteByte('"')
			inQuotes = true
		}
	}
	closeQuotes := func() {
		if inQuotes {
			b.WriteByte('"')
			inQuotes = false
		}
	}

	for {
		by, err := c.Byte()
		if err != nil {
			return nil, fmt.Errorf("strdec: unterminated string: %w", err)
		}
		if by == 0 {
			break
		}
		if by == escFE || by == escFF {
			closeQuotes()
			tag, err := c.Byte()
			if err != nil {
				return nil, fmt.Errorf("strdec: truncated escape: %w", err)
			}
			frag, err := decodeTag(c, d, tag)
			if err != nil {
				return nil, err
			}
			b.WriteByte(':')
			b.WriteString(frag)
			b.WriteByte(':')
			continue
		}
		open()
		b.WriteByte(by)
	}
	closeQuotes()
	return expr.NewComplex(b.String()), nil
}

func decodeTag(c *cursor.Cursor, d dialect.Dialect, tag byte) (string, error) {
	switch tag {
	case 4:
		w, err := c.Word()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s", d.RenderVar(w)), nil
	case 10:
		for i := 0; i < 14; i++ {
			if _, err := c.Byte(); err != nil {
				return "", fmt.Errorf("strdec: truncated sound escape: %w", err)
			}
		}
		return "sound", nil
	case 9, 12, 13, 14:
		w, err := c.Word()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s=%d", namedTags[tag], w), nil
	case 1, 2, 3:
		return namedTags[tag], nil
	default:
		w, err := c.Word()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("unk%d=%d", tag, w), nil
	}
}
