package tga

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Footer is the optional 26 byte trailer of a New TGA Format file. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Footer struct {
	ExtensionAreaOffset      uint32
	DeveloperDirectoryOffset uint32
	Signature                [signatureSize]byte
}

// DefaultFooter returns a footer with no extension area or developer
// directory and the canonical signature
func DefaultFooter() *Footer {
	return &Footer{
		Signature: Signature,
	}
}

// DecodeFooter reads a Footer from the first FooterSize bytes of b. The
// signature is not checked, use ProbeFooter for that.
func DecodeFooter(b []byte) (Footer, error) {
	var f Footer
	if err := f.UnmarshalBinary(b); err != nil {
		return Footer{}, err
	}
	return f, nil
}

// ProbeFooter examines the last FooterSize bytes of b and returns the footer
// if the signature matches exactly, otherwise nil.
func ProbeFooter(b []byte) *Footer {
	if len(b) < FooterSize || !hasSignature(b) {
		return nil
	}
	f, _ := DecodeFooter(b[len(b)-FooterSize:])
	return &f
}

func hasSignature(b []byte) bool {
	if len(b) < signatureSize {
		return false
	}
	return bytes.Equal(b[len(b)-signatureSize:], Signature[:])
}

// Valid reports whether the footer carries the canonical signature
func (f Footer) Valid() bool {
	return f.Signature == Signature
}

// MarshalBinary encodes the footer into exactly FooterSize bytes
func (f Footer) MarshalBinary() ([]byte, error) {
	b := make([]byte, FooterSize)
	binary.LittleEndian.PutUint32(b[0:], f.ExtensionAreaOffset)
	binary.LittleEndian.PutUint32(b[4:], f.DeveloperDirectoryOffset)
	copy(b[8:], f.Signature[:])
	return b, nil
}

// UnmarshalBinary decodes the footer from the first FooterSize bytes of b
func (f *Footer) UnmarshalBinary(b []byte) error {
	if len(b) < FooterSize {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrFooterRead, FooterSize, len(b))
	}

	f.ExtensionAreaOffset = binary.LittleEndian.Uint32(b[0:])
	f.DeveloperDirectoryOffset = binary.LittleEndian.Uint32(b[4:])
	copy(f.Signature[:], b[8:FooterSize])

	return nil
}
