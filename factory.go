package tga

import (
	"fmt"
	"image/color"
	"io"
	"io/ioutil"
)

// Open decodes a complete TGA file held in b. The footer is detected by
// checking the signature in the last FooterSize bytes; everything between
// the header and the footer (or the end of b) is the payload.
func Open(b []byte) (*Image, error) {
	h, err := DecodeHeader(b)
	if err != nil {
		return nil, err
	}

	end := len(b)

	var f *Footer
	if hasSignature(b) {
		if len(b)-HeaderSize < FooterSize {
			return nil, fmt.Errorf("%w: signature found but only %d bytes follow the header", ErrFooterRead, len(b)-HeaderSize)
		}
		if f = ProbeFooter(b); f == nil {
			return nil, ErrFooterRead
		}
		end -= FooterSize
	}

	return create(h, b[HeaderSize:end], f)
}

// Read reads r until EOF and decodes the result with Open
func Read(r io.Reader) (*Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFile, err)
	}
	return Open(b)
}

// Create builds an image from a header, the bytes that follow it in a file
// (image ID, color map and pixel data) and an optional footer.
func Create(h Header, data []byte, f *Footer) (*Image, error) {
	if f != nil {
		cp := *f
		f = &cp
	}
	return create(h, data, f)
}

func create(h Header, payload []byte, f *Footer) (*Image, error) {
	v := Classify(h.DataTypeCode)
	if v == Invalid {
		return nil, fmt.Errorf("%w: %s", ErrBadType, h.Type())
	}

	if !ValidateHeader(v, h) {
		return nil, fmt.Errorf("%w: for %s image", ErrInvalidHeader, v)
	}

	idEnd := int(h.IDLength)
	cmapEnd := idEnd + h.colorMapSize()
	if len(payload) < cmapEnd {
		return nil, fmt.Errorf("%w: need %d bytes for image ID and color map, have %d", ErrDataRead, cmapEnd, len(payload))
	}

	// The length of run-length encoded data is only known by decoding it,
	// so the remainder is kept as is
	dataEnd := len(payload)
	if !h.Type().IsRLE() {
		dataEnd = cmapEnd + h.pixelSize()
		if len(payload) < dataEnd {
			return nil, fmt.Errorf("%w: need %d bytes of pixel data, have %d", ErrDataRead, h.pixelSize(), len(payload)-cmapEnd)
		}
	}

	m := &Image{
		header:  h,
		footer:  f,
		variant: v,
		id:      dup(payload[:idEnd]),
		cmap:    dup(payload[idEnd:cmapEnd]),
		data:    dup(payload[cmapEnd:dataEnd]),
		ext:     dup(payload[dataEnd:]),
		bpp:     h.BytesPerPixel(),
	}
	if v == ColorMapped {
		m.palette = decodePalette(m.cmap, h.ColorMapDepth, m.alpha())
	}

	return m, nil
}

func dup(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

// CreateFilled builds a blank image with every pixel set to fill. A
// ColorMapped image gets a grayscale ramp as its color map.
//
// CreateFilled performs no validation; h must be accepted by ValidateHeader
// and describe uncompressed pixel data, as HeaderDefaults does when rle is
// false. Anything else is a programming error and the resulting image is
// undefined.
func CreateFilled(h Header, fill color.Color, f *Footer) *Image {
	if f != nil {
		cp := *f
		f = &cp
	}

	m := &Image{
		header:  h,
		footer:  f,
		variant: Classify(h.DataTypeCode),
		bpp:     h.BytesPerPixel(),
	}
	if h.IDLength > 0 {
		m.id = make([]byte, h.IDLength)
	}

	if size := h.colorMapSize(); size > 0 {
		m.cmap = make([]byte, size)
		n := bytesFor(h.ColorMapDepth)
		entries := size / n
		for i := 0; i < entries; i++ {
			level := uint8(0)
			if entries > 1 {
				level = uint8(i * 0xff / (entries - 1))
			}
			encodeColor(m.cmap[i*n:(i+1)*n], h.ColorMapDepth, RGBA{level, level, level, 0xff})
		}
		m.palette = decodePalette(m.cmap, h.ColorMapDepth, m.alpha())
	}

	m.data = make([]byte, h.pixelSize())
	if m.bpp > 0 && len(m.data) > 0 {
		m.put(m.data[:m.bpp], toRGBA(fill))
		for i := m.bpp; i < len(m.data); i *= 2 {
			copy(m.data[i:], m.data[:i])
		}
	}

	return m
}

// New returns a blank New TGA Format image of the given variant and size
// filled with a single color.
func New(v Variant, width, height uint16, fill color.Color) *Image {
	return CreateFilled(HeaderDefaults(v, width, height, false), fill, DefaultFooter())
}
