package clip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    ContentType
	}{
		{"https url", "https://example.com", TypeURL},
		{"http url with padding", "  http://example.com/a?b=c \n", TypeURL},
		{"scheme without slashes", "http:example.com", TypeText},
		{"email", "a@b.co", TypeEmail},
		{"email without dot", "a@b", TypeText},
		{"email with space", "mail a@b.co", TypeText},
		{"email with newline", "a@b.co\nx@y.z", TypeText},
		{"integer", "42", TypeNumber},
		{"negative decimal", "-3.5", TypeNumber},
		{"explicit plus", "+7", TypeNumber},
		{"scientific", "1e5", TypeNumber},
		{"infinity", "inf", TypeNumber},
		{"overflow still number", "1e400", TypeNumber},
		{"padded number", "  1000000\n", TypeNumber},
		{"hex float rejected", "0x1p3", TypeText},
		{"grouped digits not a number", "1,234", TypeText},
		{"json object", `{"a":1}`, TypeJSON},
		{"json array", "[1,2,3]", TypeJSON},
		{"multiline json beats csv", "{\n\"a\": 1,\n\"b\": 2\n}", TypeJSON},
		{"mismatched brackets", "{]", TypeText},
		{"csv", "a,b\nc,d", TypeCSV},
		{"single line with comma", "a, b", TypeText},
		{"multiline without comma", "x\ny", TypeText},
		{"plain text", "hello world", TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.content))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	inputs := []string{"https://example.com", "a@b.co", "42", `{"a":1}`, "a,b\nc,d", "hello world"}
	for _, in := range inputs {
		first := Classify(in)
		for i := 0; i < 5; i++ {
			require.Equal(t, first, Classify(in), "input %q", in)
		}
	}
}

func TestClassify_NeverEmitsReservedTypes(t *testing.T) {
	reserved := map[ContentType]bool{
		TypeCode: true, TypeDate: true, TypeAddress: true, TypeImage: true, TypeAudio: true,
	}
	inputs := []string{
		"func main() {}", "2024-01-02", "221B Baker Street, London",
		"\x89PNG", "2024-01-02T10:00:00Z", "SELECT * FROM t;",
	}
	for _, in := range inputs {
		assert.False(t, reserved[Classify(in)], "input %q classified as reserved type", in)
	}
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber("1234.5")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	v, err = ParseNumber("-1e400")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	_, err = ParseNumber("0X10")
	assert.Error(t, err)

	_, err = ParseNumber("1_000")
	assert.Error(t, err)

	_, err = ParseNumber("12abc")
	assert.Error(t, err)
}
