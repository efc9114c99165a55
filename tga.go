/*
Package tga implements a Truevision TGA image decoder and encoder.

A TGA file starts with a fixed 18 byte header, followed by an optional image
ID field of up to 255 bytes, an optional color map and then the pixel data.
Files in the "New TGA Format" additionally end with a 26 byte footer whose
last 18 bytes are the signature "TRUEVISION-XFILE." and a NUL terminator;
files without it are in the "Original TGA Format". All multi-byte fields are
little-endian and there is no padding anywhere.

Three layouts of pixel data are supported, color-mapped, true-color and
grayscale, each optionally run-length encoded. Run-length encoded payloads are
recognised and validated structurally but are not expanded; they are kept
verbatim so they survive a read/write cycle.

The package works on byte buffers only and never touches the filesystem.
*/
package tga

const (
	// HeaderSize is the size in bytes of the TGA header
	HeaderSize = 18

	// FooterSize is the size in bytes of the TGA footer
	FooterSize = 26

	signatureSize = 18
	rleBit        = 0x08

	descriptorRightToLeft = 1 << 4
	descriptorTopToBottom = 1 << 5
	descriptorAlphaMask   = 0x0f
)

// Signature marks a file as being in the New TGA Format.
var Signature = [signatureSize]byte{
	'T', 'R', 'U', 'E', 'V', 'I', 'S', 'I', 'O', 'N', '-', 'X', 'F', 'I', 'L', 'E', '.', 0,
}

func bytesFor(bits uint8) int {
	return (int(bits) + 7) >> 3
}
