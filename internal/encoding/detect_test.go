package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/spend/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	const text = "name,amount,category\nCafé,4.50,other\nPão,1,20,groceries\n"

	windows1252, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "UTF8Passthrough", input: []byte(text), want: text},
		{name: "UTF8BOMStripped", input: append([]byte{0xEF, 0xBB, 0xBF}, text...), want: text},
		{name: "UTF16LEWithBOM", input: utf16le, want: text},
		{name: "Windows1252", input: windows1252, want: text},
		{name: "Empty", input: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(t, tt.input))
		})
	}
}

func TestNewUTF8Reader_LongInput(t *testing.T) {
	// Larger than the sniff window so the reader must stream past it.
	text := strings.Repeat("Coffee,4.50,other\n", 1000)

	assert.Equal(t, text, decode(t, []byte(text)))
}
