// Package encoding normalises uploaded CSV files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffSize is how much of the input is inspected before deciding on a charset.
const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	decoder xenc.Encoding // nil means strip the mark and pass through
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}},
	{prefix: []byte{0xFF, 0xFE}, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// legacy maps chardet results to the single-byte charsets bank and spreadsheet
// exports actually use.
var legacy = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8.
//
// A byte order mark wins, then valid UTF-8 is passed through untouched,
// then chardet gets a guess. Anything else is read as Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.decoder == nil {
			_, _ = br.Discard(len(bom.prefix))
			return br, nil
		}

		return transform.NewReader(br, bom.decoder.NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if e, ok := legacy[result.Charset]; ok {
			return transform.NewReader(br, e.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
