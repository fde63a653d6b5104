package textconv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarrowToWideUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		units int
	}{
		{"ascii", "/tmp/x", 6},
		{"latin", "héllo", 5},
		{"bmp", "✓ok", 3},
		{"astral", "a😀b", 4},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NarrowToWide([]byte(tt.input), UTF8)
			require.NoError(t, err)
			assert.Len(t, w, tt.units)
			assert.Equal(t, tt.input, w.String())

			back, lossy, err := WideToNarrow(w, UTF8)
			require.NoError(t, err)
			assert.False(t, lossy)
			assert.Equal(t, tt.input, string(back))
		})
	}
}

func TestNarrowToWideCodePage(t *testing.T) {
	w, err := NarrowToWide([]byte{'a', 0x80, 0xE9}, 1252)
	require.NoError(t, err)
	assert.Equal(t, "a€é", w.String())

	w, err = NarrowToWide([]byte{0xC0, 0xE0}, 1251)
	require.NoError(t, err)
	assert.Equal(t, "Аа", w.String())
}

func TestWideToNarrowLossy(t *testing.T) {
	w, err := FromString("C:\\日本\\x")
	require.NoError(t, err)

	b, lossy, err := WideToNarrow(w, 1252)
	require.NoError(t, err)
	assert.True(t, lossy, "unrepresentable characters must be reported")
	assert.Equal(t, "C:\\??\\x", string(b))

	b, lossy, err = WideToNarrow(w, UTF8)
	require.NoError(t, err)
	assert.False(t, lossy)
	assert.Equal(t, "C:\\日本\\x", string(b))
}

func TestWideToNarrowRepresentable(t *testing.T) {
	w, err := FromString("café")
	require.NoError(t, err)

	b, lossy, err := WideToNarrow(w, 1252)
	require.NoError(t, err)
	assert.False(t, lossy)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, b)
}

func TestBufferTooSmall(t *testing.T) {
	w, err := FromString("abcdef")
	require.NoError(t, err)

	dst := []byte{'z', 'z', 'z'}
	n, _, err := WideToNarrowBuf(w, dst, UTF8)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Zero(t, n)
	assert.Equal(t, []byte("zzz"), dst, "nothing may be written on overflow")

	var conv *ConversionError
	assert.False(t, errors.As(err, &conv), "buffer overflow is not a conversion failure")

	wdst := make(Wide, 2)
	_, err = NarrowToWideBuf([]byte("abc"), wdst, UTF8)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestBufferExactFit(t *testing.T) {
	w, err := FromString("añb")
	require.NoError(t, err)

	dst := make([]byte, 4)
	n, lossy, err := WideToNarrowBuf(w, dst, UTF8)
	require.NoError(t, err)
	assert.False(t, lossy)
	assert.Equal(t, 4, n)
	assert.Equal(t, "añb", string(dst))

	wdst := make(Wide, 3)
	n, err = NarrowToWideBuf([]byte("añb"), wdst, UTF8)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestConversionPhases(t *testing.T) {
	var conv *ConversionError

	_, err := NarrowToWide([]byte{'a', 0xFF, 'b'}, UTF8)
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, PhaseCount, conv.Phase)

	_, _, err = WideToNarrow(Wide{'a', 0xD800}, UTF8)
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, PhaseCount, conv.Phase)

	_, _, err = WideToNarrow(Wide{0xDC00, 'a'}, 1252)
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, PhaseCount, conv.Phase)

	_, err = NarrowToWide([]byte("x"), 424242)
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, PhaseCount, conv.Phase)
	assert.ErrorIs(t, err, ErrUnsupportedCodePage)
}

func TestEncodeDecode(t *testing.T) {
	b, lossy, err := Encode("Grüße", 1252)
	require.NoError(t, err)
	assert.False(t, lossy)

	s, err := Decode(b, 1252)
	require.NoError(t, err)
	assert.Equal(t, "Grüße", s)

	_, err = Decode([]byte{0xC3}, UTF8)
	assert.Error(t, err)
}

func TestCodePageString(t *testing.T) {
	assert.Equal(t, "UTF-8", UTF8.String())
	assert.Equal(t, "CP7", CodePage(7).String())
	assert.True(t, CodePage(1252).Supported())
	assert.False(t, CodePage(7).Supported())
}

func TestDoubleByteRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cp   CodePage
		text string
		raw  []byte
	}{
		{"shift_jis", 932, "日本", []byte{0x93, 0xFA, 0x96, 0x7B}},
		{"gbk", 936, "中文", []byte{0xD6, 0xD0, 0xCE, 0xC4}},
		{"euc-kr", 949, "한국", []byte{0xC7, 0xD1, 0xB1, 0xB9}},
		{"big5", 950, "中文", []byte{0xA4, 0xA4, 0xA4, 0xE5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.cp.Supported())
			assert.True(t, tt.cp.MultiByte())

			n, err := NarrowLen(tt.raw, tt.cp)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			w, err := NarrowToWide(tt.raw, tt.cp)
			require.NoError(t, err)
			assert.Equal(t, tt.text, w.String())

			b, lossy, err := WideToNarrow(w, tt.cp)
			require.NoError(t, err)
			assert.False(t, lossy)
			assert.Equal(t, tt.raw, b)
		})
	}
}

func TestDoubleByteLossy(t *testing.T) {
	w, err := FromString(`C:\日本é\x`)
	require.NoError(t, err)

	n, lossy, err := WideLen(w, 932)
	require.NoError(t, err)
	assert.True(t, lossy)
	assert.Equal(t, 10, n)

	b, lossy, err := WideToNarrow(w, 932)
	require.NoError(t, err)
	assert.True(t, lossy)
	assert.Equal(t, []byte{'C', ':', '\\', 0x93, 0xFA, 0x96, 0x7B, '?', '\\', 'x'}, b)
}

func TestDoubleByteBuffers(t *testing.T) {
	raw := []byte{0x95, 0x5C, 'a'} // "表a"; the trail byte is a backslash

	dst := make(Wide, 1)
	_, err := NarrowToWideBuf(raw, dst, 932)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	dst = make(Wide, 2)
	n, err := NarrowToWideBuf(raw, dst, 932)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "表a", dst.String())

	w, err := FromString("表a")
	require.NoError(t, err)
	out := make([]byte, 2)
	_, _, err = WideToNarrowBuf(w, out, 932)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestDoubleByteCodePageNames(t *testing.T) {
	assert.Equal(t, "Shift_JIS", CodePage(932).String())
	assert.Equal(t, "GBK", CodePage(936).String())
	assert.False(t, CodePage(1252).MultiByte())
	assert.True(t, UTF8.MultiByte())
}

func TestHostCodePageSupported(t *testing.T) {
	cp, err := HostCodePage()
	require.NoError(t, err)
	assert.True(t, cp.Supported())
}
