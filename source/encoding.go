package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

type encodingKind int

const (
	kindUTF8 encodingKind = iota
	kindUTF16
	kindUTF32
	kindGeneric
)

// Encoding identifies the target encoding of a code-unit query. UTF-8,
// UTF-16, and UTF-32 are counted by dedicated strategies; any other IANA
// encoding name is routed through a generic strategy that re-encodes each
// character and counts the resulting units.
type Encoding struct {
	name string
	kind encodingKind
	enc  encoding.Encoding
}

var (
	// UTF8 counts one unit per encoded byte.
	UTF8 = Encoding{name: "UTF-8", kind: kindUTF8}

	// UTF16 counts one unit per character, two for characters outside the
	// Basic Multilingual Plane (a surrogate pair).
	UTF16 = Encoding{name: "UTF-16", kind: kindUTF16}

	// UTF32 counts one unit per character.
	UTF32 = Encoding{name: "UTF-32", kind: kindUTF32}
)

// LookupEncoding resolves an encoding name. UTF-8, UTF-16, and UTF-32 (in
// any endianness spelling) resolve to the dedicated strategies; every other
// name is looked up in the IANA registry and counted generically. Unknown
// names fail with ErrEncoding; counting itself never fails.
func LookupEncoding(name string) (Encoding, error) {
	switch normalized := normalizeEncodingName(name); {
	case normalized == "utf8":
		return UTF8, nil
	case strings.HasPrefix(normalized, "utf16"):
		return UTF16, nil
	case strings.HasPrefix(normalized, "utf32"):
		return UTF32, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return Encoding{}, fmt.Errorf("lookup encoding %q: %w", name, ErrEncoding)
	}
	return Encoding{name: name, kind: kindGeneric, enc: enc}, nil
}

func normalizeEncodingName(name string) string {
	normalized := strings.ToLower(name)
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")
	return normalized
}

// Name returns the encoding name as supplied or defined.
func (e Encoding) Name() string {
	return e.name
}

func (e Encoding) String() string {
	return e.name
}

// unitCounter reports the number of code units contributed by one decoded
// character. invalid marks a byte that did not decode as UTF-8; it always
// contributes exactly one replacement unit.
type unitCounter func(r rune, invalid bool) int

// counter returns a fresh counting strategy for the encoding. Generic
// strategies carry a stateful encoder, so a counter must not be shared
// between concurrent consumers.
func (e Encoding) counter() unitCounter {
	switch e.kind {
	case kindUTF16:
		return countUTF16
	case kindUTF32:
		return countUTF32
	case kindGeneric:
		return genericCounter(e.enc)
	default:
		return countUTF8
	}
}

func countUTF8(r rune, invalid bool) int {
	if invalid {
		return 1
	}
	return utf8.RuneLen(r)
}

func countUTF16(r rune, invalid bool) int {
	if invalid || r <= 0xFFFF {
		return 1
	}
	return 2
}

func countUTF32(rune, bool) int {
	return 1
}

// genericCounter re-encodes each character into the target encoding and
// counts the resulting units. The registry encodings are byte-oriented, so
// the unit width is one byte. A character the encoder rejects contributes
// one replacement unit.
func genericCounter(enc encoding.Encoding) unitCounter {
	encoder := enc.NewEncoder()
	var buf [utf8.UTFMax]byte
	return func(r rune, invalid bool) int {
		if invalid {
			return 1
		}
		n := utf8.EncodeRune(buf[:], r)
		out, err := encoder.Bytes(buf[:n])
		if err != nil || len(out) == 0 {
			return 1
		}
		return len(out)
	}
}
