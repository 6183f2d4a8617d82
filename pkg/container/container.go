// Package container implements the input container header detection of
// spec.md "Input container": a 4-byte big-endian tag selects how many
// header bytes precede the bytecode body, and VERB gets a second re-emitted
// header pass once the body's offsets are known.
package container

import (
	"encoding/binary"
	"fmt"

	"github.com/xplshn/descumm/pkg/dialect"
)

// Tag is one of the recognised 4-byte container tags.
type Tag string

const (
	TagLSCR Tag = "LSCR"
	TagSCRP Tag = "SCRP"
	TagENCD Tag = "ENCD"
	TagEXDE Tag = "EXDE"
	TagVERB Tag = "VERB"
)

// VerbEntry is one (code, offset) pair of a VERB header, spec.md's
// "null-terminated sequence of (byte code, word offset) pairs".
type VerbEntry struct {
	Code   byte
	Offset uint32
}

// Header is the result of parsing a container's leading bytes: the tag, the
// offset within the file the bytecode body starts at, and (VERB only) the
// entry table to re-emit once the body length is known.
type Header struct {
	Tag        Tag
	BodyOffset int
	VerbTable  []VerbEntry
}

// ErrUnsupportedTag is returned for any 4-byte tag outside the recognised
// set, spec.md §7 "Unsupported header tag -- aborts".
type ErrUnsupportedTag struct{ Tag string }

func (e *ErrUnsupportedTag) Error() string {
	return fmt.Sprintf("unsupported container tag %q", e.Tag)
}

// ErrUnhandledV8LSCR flags the open question of spec.md's "Open question:
// the v8 LSCR container is not handled in the original. Treat as malformed
// until evidence arrives; do not guess."
var ErrUnhandledV8LSCR = fmt.Errorf("container: v8 LSCR header is not handled; treated as malformed per spec")

// Parse reads the container header from data and returns where the
// bytecode body starts. d is the dialect already selected on the command
// line (spec.md: header parsing needs it only to disambiguate LSCR).
func Parse(data []byte, d dialect.Dialect) (*Header, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("container: input too short for a tag")
	}
	tag := Tag(data[:4])
	switch tag {
	case TagLSCR:
		return parseLSCR(data, d)
	case TagSCRP, TagENCD, TagEXDE:
		if len(data) < 8 {
			return nil, fmt.Errorf("container: input too short for %s header", tag)
		}
		return &Header{Tag: tag, BodyOffset: 8}, nil
	case TagVERB:
		return parseVERB(data)
	default:
		return nil, &ErrUnsupportedTag{Tag: string(data[:4])}
	}
}

func parseLSCR(data []byte, d dialect.Dialect) (*Header, error) {
	if d == dialect.V8 {
		return nil, ErrUnhandledV8LSCR
	}
	if len(data) < 9 {
		return nil, fmt.Errorf("container: input too short for LSCR header")
	}
	if d == dialect.V7 {
		if len(data) < 10 {
			return nil, fmt.Errorf("container: input too short for v7 LSCR header")
		}
		return &Header{Tag: TagLSCR, BodyOffset: 10}, nil
	}
	return &Header{Tag: TagLSCR, BodyOffset: 9}, nil
}

// parseVERB reads the null-terminated (byte, word) entry table starting at
// offset 8. The re-emission pass (spec.md: "CC - OOOO where OOOO =
// raw_offset - (header_length + 8)") is done separately by RenderVerbTable
// once the caller knows the header's total length.
func parseVERB(data []byte) (*Header, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("container: input too short for VERB header")
	}
	pos := 8
	var entries []VerbEntry
	for {
		if pos >= len(data) {
			return nil, fmt.Errorf("container: unterminated VERB header")
		}
		code := data[pos]
		pos++
		if code == 0 {
			break
		}
		if pos+2 > len(data) {
			return nil, fmt.Errorf("container: truncated VERB entry")
		}
		off := binary.LittleEndian.Uint16(data[pos : pos+2])
		pos += 2
		entries = append(entries, VerbEntry{Code: code, Offset: uint32(off)})
	}
	return &Header{Tag: TagVERB, BodyOffset: pos, VerbTable: entries}, nil
}

// RenderVerbTable formats a VERB header's entries as the "CC - OOOO" lines
// of the second re-emission pass, adjusting each raw offset by the total
// header length (spec.md: "OOOO = raw_offset - (header_length + 8)").
func RenderVerbTable(h *Header) []string {
	lines := make([]string, 0, len(h.VerbTable))
	// h.BodyOffset already counts from the start of the file, so it equals
	// header_length + 8 without any further adjustment.
	headerLenPlusEight := h.BodyOffset
	for _, e := range h.VerbTable {
		adjusted := int64(e.Offset) - int64(headerLenPlusEight)
		lines = append(lines, fmt.Sprintf("%02X - %04X", e.Code, adjusted))
	}
	return lines
}
