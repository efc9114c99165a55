package tga

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed 18 byte TGA header. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Header struct {
	IDLength        uint8  // length of the image ID field after the header
	ColorMapType    uint8  // 0 no color map, 1 color map present
	DataTypeCode    uint8  // see ImageType
	ColorMapOrigin  uint16 // index of the first color map entry
	ColorMapLength  uint16 // number of color map entries
	ColorMapDepth   uint8  // bits per color map entry
	XOrigin         uint16
	YOrigin         uint16
	Width           uint16
	Height          uint16
	BitsPerPixel    uint8
	ImageDescriptor uint8 // bits 0-3 alpha depth, bit 4 right-to-left, bit 5 top-to-bottom
}

// DecodeHeader reads a Header from the first HeaderSize bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	if err := h.UnmarshalBinary(b); err != nil {
		return Header{}, err
	}
	return h, nil
}

// MarshalBinary encodes the header into exactly HeaderSize bytes
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	h.put(b)
	return b, nil
}

func (h Header) put(b []byte) {
	b[0] = h.IDLength
	b[1] = h.ColorMapType
	b[2] = h.DataTypeCode
	binary.LittleEndian.PutUint16(b[3:], h.ColorMapOrigin)
	binary.LittleEndian.PutUint16(b[5:], h.ColorMapLength)
	b[7] = h.ColorMapDepth
	binary.LittleEndian.PutUint16(b[8:], h.XOrigin)
	binary.LittleEndian.PutUint16(b[10:], h.YOrigin)
	binary.LittleEndian.PutUint16(b[12:], h.Width)
	binary.LittleEndian.PutUint16(b[14:], h.Height)
	b[16] = h.BitsPerPixel
	b[17] = h.ImageDescriptor
}

// UnmarshalBinary decodes the header from the first HeaderSize bytes of b
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrHeaderRead, HeaderSize, len(b))
	}

	h.IDLength = b[0]
	h.ColorMapType = b[1]
	h.DataTypeCode = b[2]
	h.ColorMapOrigin = binary.LittleEndian.Uint16(b[3:])
	h.ColorMapLength = binary.LittleEndian.Uint16(b[5:])
	h.ColorMapDepth = b[7]
	h.XOrigin = binary.LittleEndian.Uint16(b[8:])
	h.YOrigin = binary.LittleEndian.Uint16(b[10:])
	h.Width = binary.LittleEndian.Uint16(b[12:])
	h.Height = binary.LittleEndian.Uint16(b[14:])
	h.BitsPerPixel = b[16]
	h.ImageDescriptor = b[17]

	return nil
}

// BytesPerPixel returns the number of bytes used to store each pixel
func (h Header) BytesPerPixel() int {
	return bytesFor(h.BitsPerPixel)
}

// AlphaDepth returns the number of attribute bits per pixel
func (h Header) AlphaDepth() int {
	return int(h.ImageDescriptor & descriptorAlphaMask)
}

// RightToLeft reports whether pixels in each row are stored right-to-left
func (h Header) RightToLeft() bool {
	return h.ImageDescriptor&descriptorRightToLeft != 0
}

// TopToBottom reports whether rows are stored top-to-bottom. Otherwise the
// first row stored is the bottom row of the image.
func (h Header) TopToBottom() bool {
	return h.ImageDescriptor&descriptorTopToBottom != 0
}

// Type returns the data type code as an ImageType
func (h Header) Type() ImageType {
	return ImageType(h.DataTypeCode)
}

func (h Header) colorMapSize() int {
	if h.ColorMapType == 0 {
		return 0
	}
	return int(h.ColorMapLength) * bytesFor(h.ColorMapDepth)
}

func (h Header) pixelSize() int {
	return int(h.Width) * int(h.Height) * h.BytesPerPixel()
}
