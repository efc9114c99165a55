package tga

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFooter(t *testing.T) {
	f := DefaultFooter()
	assert.True(t, f.Valid())

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, FooterSize)
	assert.Equal(t, make([]byte, 8), b[:8])
	assert.Equal(t, "TRUEVISION-XFILE.\x00", string(b[8:]))
}

func TestFooterRoundTrip(t *testing.T) {
	f := Footer{
		ExtensionAreaOffset:      0x01020304,
		DeveloperDirectoryOffset: 0x0a0b0c0d,
		Signature:                Signature,
	}

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01, 0x0d, 0x0c, 0x0b, 0x0a}, b[:8])

	got, err := DecodeFooter(b)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestDecodeFooterShort(t *testing.T) {
	_, err := DecodeFooter(make([]byte, FooterSize-1))
	assert.True(t, errors.Is(err, ErrFooterRead))
}

func TestProbeFooter(t *testing.T) {
	f, _ := DefaultFooter().MarshalBinary()
	b := append([]byte{1, 2, 3, 4, 5}, f...)

	got := ProbeFooter(b)
	require.NotNil(t, got)
	assert.Equal(t, DefaultFooter(), got)

	// Offsets are not part of the signature
	b[5] = 0xff
	got = ProbeFooter(b)
	require.NotNil(t, got)
	assert.Equal(t, uint32(0xff), got.ExtensionAreaOffset)

	assert.Nil(t, ProbeFooter(f[1:]))
	assert.Nil(t, ProbeFooter(nil))
}

func TestProbeFooterSignatureMutation(t *testing.T) {
	f, _ := DefaultFooter().MarshalBinary()

	for i := FooterSize - signatureSize; i < FooterSize; i++ {
		b := append([]byte(nil), f...)
		b[i] ^= 0x01
		assert.Nil(t, ProbeFooter(b), "byte %d", i)
	}
}
