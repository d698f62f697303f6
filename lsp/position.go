// Package lsp serves source position mappings over the Language Server
// Protocol and translates between byte offsets and protocol positions,
// which count lines from zero and columns in UTF-16 code units.
package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/srcloc/srcloc/source"
)

// Mapper translates between byte offsets in one source and LSP positions.
type Mapper struct {
	src *source.Source
}

// NewMapper binds a mapper to src.
func NewMapper(src *source.Source) *Mapper {
	return &Mapper{src: src}
}

// Position converts a byte offset to a protocol position. Lines are
// relative to the start of the source regardless of its starting line
// number; columns are UTF-16 code units.
func (m *Mapper) Position(byteOffset int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(m.src.Line(byteOffset) - m.src.StartLine()),
		Character: protocol.UInteger(m.src.CodeUnitsColumn(byteOffset, source.UTF16)),
	}
}

// Range converts a location to a protocol range.
func (m *Mapper) Range(loc *source.Location) protocol.Range {
	return protocol.Range{
		Start: m.Position(loc.StartOffset()),
		End:   m.Position(loc.EndOffset()),
	}
}

// Offset converts a protocol position back to a byte offset. Positions past
// the end of their line clamp to the line end; lines past the end of the
// buffer clamp to the buffer length.
func (m *Mapper) Offset(pos protocol.Position) int {
	content := m.src.Bytes()
	i := m.lineStart(int(pos.Line))
	end := m.src.LineEnd(i)

	units := 0
	for i < end && units < int(pos.Character) {
		r, size := utf8.DecodeRune(content[i:])
		if r == '\n' {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return i
}

func (m *Mapper) lineStart(line int) int {
	offsets := m.src.NewlineOffsets()
	if line <= 0 {
		return 0
	}
	if line > len(offsets) {
		return m.src.Len()
	}
	return offsets[line-1] + 1
}
