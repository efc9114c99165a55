package tga

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(h Header, payload []byte, f *Footer) []byte {
	b, _ := h.MarshalBinary()
	b = append(b, payload...)
	if f != nil {
		fb, _ := f.MarshalBinary()
		b = append(b, fb...)
	}
	return b
}

func TestOpenShort(t *testing.T) {
	for n := 0; n < HeaderSize; n++ {
		_, err := Open(make([]byte, n))
		assert.True(t, errors.Is(err, ErrHeaderRead), "%d bytes", n)
	}
}

func TestOpenNewFormat(t *testing.T) {
	h := Header{
		DataTypeCode: uint8(TypeTrueColor),
		Width:        512,
		Height:       512,
		BitsPerPixel: 24,
	}
	payload := make([]byte, 512*512*3)
	for i := range payload {
		payload[i] = byte(i)
	}
	b := file(h, payload, DefaultFooter())

	m, err := Open(b)
	require.NoError(t, err)

	assert.Equal(t, 512, m.Width())
	assert.Equal(t, 512, m.Height())
	assert.Equal(t, 3, m.BytesPerPixel())
	assert.Equal(t, TrueColor, m.Variant())
	assert.Equal(t, h, m.Header())
	assert.Equal(t, DefaultFooter(), m.Footer())
	assert.Equal(t, payload, m.Data())

	out, err := m.MarshalBinary()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(b, out))
}

func TestOpenOriginalFormat(t *testing.T) {
	h := HeaderDefaults(Grayscale, 3, 3, false)
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}

	m, err := Open(file(h, payload, nil))
	require.NoError(t, err)

	assert.Nil(t, m.Footer())
	assert.Equal(t, payload, m.Data())
}

func TestOpenBadType(t *testing.T) {
	for i := 0; i < 256; i++ {
		if Classify(uint8(i)) != Invalid {
			continue
		}
		h := Header{DataTypeCode: uint8(i), Width: 1, Height: 1, BitsPerPixel: 24}

		_, err := Open(file(h, []byte{0, 0, 0}, nil))
		assert.True(t, errors.Is(err, ErrBadType), "type code %d", i)

		_, err = Create(h, []byte{0, 0, 0}, nil)
		assert.True(t, errors.Is(err, ErrBadType), "type code %d", i)
	}
}

func TestCreateInvalidHeader(t *testing.T) {
	// Color-mapped shaped header carrying the true-color type code
	h := HeaderDefaults(ColorMapped, 2, 2, false)
	h.DataTypeCode = uint8(TypeTrueColor)

	_, err := Create(h, make([]byte, 256*3+4), nil)
	assert.True(t, errors.Is(err, ErrInvalidHeader))

	h = HeaderDefaults(ColorMapped, 2, 2, false)
	h.ColorMapType = 0

	_, err = Create(h, make([]byte, 4), nil)
	assert.True(t, errors.Is(err, ErrInvalidHeader))

	_, err = Open(file(h, make([]byte, 4), DefaultFooter()))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
}

func TestOpenDataShort(t *testing.T) {
	h := HeaderDefaults(TrueColor, 2, 2, false)

	_, err := Open(file(h, make([]byte, 11), nil))
	assert.True(t, errors.Is(err, ErrDataRead))

	_, err = Open(file(h, make([]byte, 11), DefaultFooter()))
	assert.True(t, errors.Is(err, ErrDataRead))

	// Color map alone is short
	h = HeaderDefaults(ColorMapped, 1, 1, false)
	_, err = Create(h, make([]byte, 256*3-1), nil)
	assert.True(t, errors.Is(err, ErrDataRead))

	// Image ID is short
	h = HeaderDefaults(Grayscale, 1, 1, false)
	h.IDLength = 8
	_, err = Create(h, make([]byte, 4), nil)
	assert.True(t, errors.Is(err, ErrDataRead))
}

func TestOpenFooterShort(t *testing.T) {
	h := HeaderDefaults(TrueColor, 0, 0, false)

	_, err := Open(file(h, Signature[:], nil))
	assert.True(t, errors.Is(err, ErrFooterRead))
}

func TestOpenSignatureMutation(t *testing.T) {
	h := HeaderDefaults(TrueColor, 2, 1, false)
	b := file(h, []byte{1, 2, 3, 4, 5, 6}, DefaultFooter())

	for i := len(b) - signatureSize; i < len(b); i++ {
		dup := append([]byte(nil), b...)
		dup[i] ^= 0x80

		m, err := Open(dup)
		require.NoError(t, err, "byte %d", i)
		assert.Nil(t, m.Footer(), "byte %d", i)
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, m.Data())

		// The would-be footer is kept as trailing data
		out, err := m.MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, dup, out)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	ext := bytes.Repeat([]byte{0xee}, 495)

	tables := []struct {
		header  Header
		payload []byte
		footer  *Footer
	}{
		{
			HeaderDefaults(TrueColor, 2, 2, false),
			bytes.Repeat([]byte{1, 2, 3}, 4),
			nil,
		},
		{
			HeaderDefaults(TrueColor, 2, 2, false),
			append(bytes.Repeat([]byte{1, 2, 3}, 4), ext...),
			&Footer{ExtensionAreaOffset: HeaderSize + 12, Signature: Signature},
		},
		{
			func() Header {
				h := HeaderDefaults(Grayscale, 3, 1, false)
				h.IDLength = 5
				return h
			}(),
			[]byte("hello\x01\x02\x03"),
			DefaultFooter(),
		},
		{
			HeaderDefaults(ColorMapped, 2, 1, false),
			append(bytes.Repeat([]byte{9, 8, 7}, 256), 0x00, 0xff),
			DefaultFooter(),
		},
		{
			HeaderDefaults(ColorMapped, 2, 1, true),
			append(bytes.Repeat([]byte{9, 8, 7}, 256), 0x81, 0x00),
			nil,
		},
		{
			HeaderDefaults(Grayscale, 64, 64, true),
			[]byte{0xff, 0x00, 0xff, 0x00},
			DefaultFooter(),
		},
	}

	for i, table := range tables {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			b := file(table.header, table.payload, table.footer)

			m, err := Open(b)
			require.NoError(t, err)
			assert.Equal(t, table.header, m.Header())
			assert.Equal(t, table.footer, m.Footer())

			out, err := m.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, b, out)
		})
	}
}

func TestOpenImageID(t *testing.T) {
	h := HeaderDefaults(Grayscale, 1, 1, false)
	h.IDLength = 4

	m, err := Open(file(h, []byte("test\x7f"), nil))
	require.NoError(t, err)
	assert.Equal(t, []byte("test"), m.ID())
	assert.Equal(t, []byte{0x7f}, m.Data())
}

func TestCreateCopiesInput(t *testing.T) {
	data := []byte{1, 2, 3}
	f := DefaultFooter()

	m, err := Create(HeaderDefaults(TrueColor, 1, 1, false), data, f)
	require.NoError(t, err)

	data[0] = 0xff
	f.ExtensionAreaOffset = 1

	assert.Equal(t, []byte{1, 2, 3}, m.Data())
	assert.Equal(t, DefaultFooter(), m.Footer())
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestRead(t *testing.T) {
	b := file(HeaderDefaults(TrueColor, 1, 1, false), []byte{1, 2, 3}, DefaultFooter())

	m, err := Read(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Width())

	_, err = Read(errReader{})
	assert.True(t, errors.Is(err, ErrBadFile))

	_, err = Read(bytes.NewReader(b[:10]))
	assert.True(t, errors.Is(err, ErrHeaderRead))
}
