package lsp

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/srcloc/srcloc/source"
)

// héllo 𝄞\nwörld: é and ö are two bytes, 𝄞 is four bytes and a UTF-16
// surrogate pair.
const mixedText = "héllo 𝄞\nwörld"

func TestMapperPosition(t *testing.T) {
	m := NewMapper(source.New([]byte(mixedText)))

	tests := []struct {
		offset int
		want   protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{3, protocol.Position{Line: 0, Character: 2}},
		{7, protocol.Position{Line: 0, Character: 6}},
		{11, protocol.Position{Line: 0, Character: 8}},
		{12, protocol.Position{Line: 1, Character: 0}},
		{15, protocol.Position{Line: 1, Character: 2}},
		{18, protocol.Position{Line: 1, Character: 5}},
	}

	for _, tt := range tests {
		if got := m.Position(tt.offset); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

// Protocol lines count from zero even when the source starts at a later
// logical line.
func TestMapperPositionWithStartLine(t *testing.T) {
	m := NewMapper(source.New([]byte("a\nb"), source.WithStartLine(40)))

	if got := m.Position(2); got.Line != 1 {
		t.Errorf("Position(2).Line = %d, want 1", got.Line)
	}
}

func TestMapperRange(t *testing.T) {
	src := source.New([]byte(mixedText))
	m := NewMapper(src)

	got := m.Range(source.NewLocation(src, 12, 6)) // wörld
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 0},
		End:   protocol.Position{Line: 1, Character: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Range mismatch (-want +got):\n%s", diff)
	}
}

func TestMapperOffsetRoundTrip(t *testing.T) {
	src := source.New([]byte(mixedText))
	m := NewMapper(src)

	// Every character boundary survives the round trip.
	content := src.Bytes()
	for b := 0; b <= len(content); {
		if got := m.Offset(m.Position(b)); got != b {
			t.Errorf("Offset(Position(%d)) = %d", b, got)
		}
		if b == len(content) {
			break
		}
		_, size := utf8.DecodeRune(content[b:])
		b += size
	}
}

func TestMapperOffsetClamps(t *testing.T) {
	src := source.New([]byte(mixedText))
	m := NewMapper(src)

	// Past the end of the line: clamps to just before the newline.
	if got := m.Offset(protocol.Position{Line: 0, Character: 999}); got != 11 {
		t.Errorf("Offset(line 0, char 999) = %d, want 11", got)
	}
	// Past the last line: clamps to the buffer length.
	if got := m.Offset(protocol.Position{Line: 99, Character: 0}); got != src.Len() {
		t.Errorf("Offset(line 99) = %d, want %d", got, src.Len())
	}
}
