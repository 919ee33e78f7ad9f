package codec

import (
	"testing"

	"github.com/jcomellas/ex-hl7/internal/testutil"
)

func TestEscapeDelimiters(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a|b", `a\F\b`},
		{"a^b", `a\S\b`},
		{"a&b", `a\T\b`},
		{"a~b", `a\R\b`},
		{`a\b`, `a\E\b`},
		{"|^&~", `\F\\S\\T\\R\`},
	}
	for _, tc := range cases {
		testutil.Equal(t, tc.want, string(Escape([]byte(tc.in), seps)), "escape %q", tc.in)
	}
}

func TestUnescapeInvolution(t *testing.T) {
	cases := []string{
		"plain",
		"a|b^c&d~e",
		`back\slash`,
		"",
		"trailing|",
	}
	for _, s := range cases {
		out := Unescape(Escape([]byte(s), seps), seps)
		testutil.Equal(t, s, string(out), "unescape(escape(%q))", s)
	}
}

func TestUnescapeUnknownSequencePassesThrough(t *testing.T) {
	testutil.Equal(t, `a\X\b`, string(Unescape([]byte(`a\X\b`), seps)), "unknown sequence")
}

func TestUnescapeDanglingEscape(t *testing.T) {
	testutil.Equal(t, `a\`, string(Unescape([]byte(`a\`), seps)), "dangling escape")
	testutil.Equal(t, `a\F`, string(Unescape([]byte(`a\F`), seps)), "unterminated sequence")
}
