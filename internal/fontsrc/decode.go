package fontsrc

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// DecodeText turns raw font file bytes into text. A UTF-8 or UTF-16 byte order
// mark selects that encoding and is removed. Data that is not valid UTF-8 is
// read as ISO-8859-1, the encoding of most historical FIGfonts.
func DecodeText(data []byte) (string, error) {
	hasUTF16BOM := bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM)
	if !hasUTF16BOM && !utf8.Valid(data) {
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("decoding latin-1 font: %w", err)
		}
		return string(out), nil
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decoding font text: %w", err)
	}
	return string(out), nil
}
