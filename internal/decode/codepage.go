package decode

import (
	"golang.org/x/text/encoding/charmap"
)

// cp1251Decoder decodes Windows-1251 (single-byte Cyrillic) text,
// substituting the Unicode replacement character for any byte that
// has no mapping in the code page.
var cp1251Decoder = charmap.Windows1251.NewDecoder()

// decodeText decodes a Windows-1251 byte slice to a Go string. Bytes
// without a mapping become U+FFFD; decodeText never fails.
func decodeText(b []byte) string {
	out, err := cp1251Decoder.Bytes(b)
	if err != nil {
		// The Windows-1251 decoder never actually returns an error
		// (single-byte code pages have no illegal sequences; unmapped
		// bytes decode to U+FFFD), but guard anyway.
		return string(b)
	}
	return string(out)
}

// getSentinel returns the length-prefixed, code-page-encoded probe for
// a plaintext field label, e.g. the primary-key column label.
func getSentinel(text string) ([]byte, error) {
	encoded, err := cp1251Encode(text)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(len(encoded))}, encoded...), nil
}

var cp1251Encoder = charmap.Windows1251.NewEncoder()

func cp1251Encode(text string) ([]byte, error) {
	return cp1251Encoder.Bytes([]byte(text))
}
