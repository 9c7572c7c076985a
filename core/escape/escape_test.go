package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep Keep
		want string
	}{
		{"source keeps reserved punctuation", "folder/a(b)!*'c:d", Source, "folder/a(b)!*'c:d"},
		{"source escapes space and comma", "my image,1", Source, "my%20image%2C1"},
		{"source escapes multibyte", "é", Source, "%C3%A9"},
		{"layer escapes question mark", "meet you?", Layer, "meet%20you%3F"},
		{"separators only touches comma and slash", "a,b/c d", Separators, "a%2Cb%2Fc d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Smart(tt.in, tt.keep))
		})
	}
}

func TestTokenLower(t *testing.T) {
	assert.Equal(t, "%2fimage%2f*", TokenLower("/image/*"))
	assert.Equal(t, "%2fimage%2fa%20b,c%7ed", TokenLower("/image/a b,c~d"))
}
