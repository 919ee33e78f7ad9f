package message

import (
	"testing"

	"github.com/jcomellas/ex-hl7/internal/testutil"
)

func TestKindOf(t *testing.T) {
	seps := DefaultSeparators()
	testutil.Equal(t, DelimiterField, seps.KindOf('|'), "field")
	testutil.Equal(t, DelimiterComponent, seps.KindOf('^'), "component")
	testutil.Equal(t, DelimiterSubcomponent, seps.KindOf('&'), "subcomponent")
	testutil.Equal(t, DelimiterRepetition, seps.KindOf('~'), "repetition")
	testutil.Equal(t, DelimiterNone, seps.KindOf('\\'), "escape is not a delimiter")
	testutil.Equal(t, DelimiterNone, seps.KindOf('x'), "ordinary byte")
}

func TestByteOf(t *testing.T) {
	seps := DefaultSeparators()
	testutil.Equal(t, byte('|'), seps.ByteOf(DelimiterField), "field")
	testutil.Equal(t, byte('^'), seps.ByteOf(DelimiterComponent), "component")
	testutil.Equal(t, byte('&'), seps.ByteOf(DelimiterSubcomponent), "subcomponent")
	testutil.Equal(t, byte('~'), seps.ByteOf(DelimiterRepetition), "repetition")
	testutil.Equal(t, byte(0), seps.ByteOf(DelimiterNone), "no byte")
}

func TestEncoding(t *testing.T) {
	testutil.Equal(t, `^~\&`, string(DefaultSeparators().Encoding()), "MSH.2 order")
}

func TestValidDelimiter(t *testing.T) {
	testutil.True(t, ValidDelimiter('|'), "pipe")
	testutil.True(t, ValidDelimiter('#'), "hash")
	testutil.False(t, ValidDelimiter('A'), "letter")
	testutil.False(t, ValidDelimiter('5'), "digit")
	testutil.False(t, ValidDelimiter(' '-1), "control")
	testutil.False(t, ValidDelimiter(0x7f), "DEL")
}
