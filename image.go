package tga

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
)

// Direction selects the axis for Image.Flip
type Direction int

// Flip directions
const (
	// Horizontal mirrors the image left to right
	Horizontal Direction = iota
	// Vertical mirrors the image top to bottom
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Image is a decoded TGA image. It owns its header, optional footer and
// pixel data; the only way to change it after construction is SetPixel or
// Flip.
type Image struct {
	header  Header
	footer  *Footer
	variant Variant

	id   []byte // image ID field
	cmap []byte // raw color map entries
	data []byte // pixel data, or the whole encoded payload if run-length encoded
	ext  []byte // anything between the pixel data and the footer

	bpp     int
	palette color.Palette
}

// Width returns the width in pixels
func (m *Image) Width() int {
	return int(m.header.Width)
}

// Height returns the height in pixels
func (m *Image) Height() int {
	return int(m.header.Height)
}

// BytesPerPixel returns the number of bytes used to store each pixel
func (m *Image) BytesPerPixel() int {
	return m.bpp
}

// Header returns a copy of the image header
func (m *Image) Header() Header {
	return m.header
}

// Footer returns a copy of the footer, or nil for an Original TGA Format
// image
func (m *Image) Footer() *Footer {
	if m.footer == nil {
		return nil
	}
	f := *m.footer
	return &f
}

// Variant returns the pixel layout of the image
func (m *Image) Variant() Variant {
	return m.variant
}

// IsRLE reports whether the pixel data is run-length encoded
func (m *Image) IsRLE() bool {
	return m.header.Type().IsRLE()
}

// ID returns the image ID field
func (m *Image) ID() []byte {
	return append([]byte(nil), m.id...)
}

// ColorMap returns the raw color map entries
func (m *Image) ColorMap() []byte {
	return append([]byte(nil), m.cmap...)
}

// Palette returns the color map decoded as a palette. It is nil unless the
// image is ColorMapped.
func (m *Image) Palette() color.Palette {
	return append(color.Palette(nil), m.palette...)
}

// Data returns a copy of the pixel data as stored in the file
func (m *Image) Data() []byte {
	return append([]byte(nil), m.data...)
}

func (m *Image) alpha() bool {
	return m.header.AlphaDepth() > 0
}

func (m *Image) offset(x, y int) (int, error) {
	if m.IsRLE() {
		return 0, ErrCompressed
	}
	w, h := m.Width(), m.Height()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, fmt.Errorf("%w: (%d, %d) not within %dx%d", ErrOutOfRange, x, y, w, h)
	}
	if m.header.RightToLeft() {
		x = w - 1 - x
	}
	if !m.header.TopToBottom() {
		y = h - 1 - y
	}
	return (y*w + x) * m.bpp, nil
}

// Pixel returns the color of the pixel at (x, y) where (0, 0) is the
// top-left corner as displayed.
func (m *Image) Pixel(x, y int) (RGBA, error) {
	o, err := m.offset(x, y)
	if err != nil {
		return RGBA{}, err
	}
	b := m.data[o : o+m.bpp]

	switch m.variant {
	case ColorMapped:
		return m.lookup(readIndex(b)), nil
	case TrueColor:
		return decodeColor(b, m.header.BitsPerPixel, m.alpha()), nil
	case Grayscale:
		c := RGBA{b[0], b[0], b[0], 0xff}
		if len(b) > 1 && m.alpha() {
			c.A = b[1]
		}
		return c, nil
	}
	return RGBA{}, ErrBadType
}

// SetPixel stores c at (x, y). For a ColorMapped image the closest color
// map entry is used.
func (m *Image) SetPixel(x, y int, c color.Color) error {
	o, err := m.offset(x, y)
	if err != nil {
		return err
	}
	m.put(m.data[o:o+m.bpp], toRGBA(c))
	return nil
}

func (m *Image) put(b []byte, c RGBA) {
	switch m.variant {
	case ColorMapped:
		writeIndex(b, m.index(c))
	case TrueColor:
		encodeColor(b, m.header.BitsPerPixel, c)
	case Grayscale:
		b[0] = c.gray()
		if len(b) > 1 {
			b[1] = c.A
		}
	}
}

// Flip mirrors the pixel data in place
func (m *Image) Flip(d Direction) error {
	if m.IsRLE() {
		return ErrCompressed
	}

	w, h, bpp := m.Width(), m.Height(), m.bpp
	stride := w * bpp
	tmp := make([]byte, stride)

	switch d {
	case Horizontal:
		for y := 0; y < h; y++ {
			row := m.data[y*stride : (y+1)*stride]
			for l, r := 0, w-1; l < r; l, r = l+1, r-1 {
				copy(tmp[:bpp], row[l*bpp:(l+1)*bpp])
				copy(row[l*bpp:(l+1)*bpp], row[r*bpp:(r+1)*bpp])
				copy(row[r*bpp:(r+1)*bpp], tmp[:bpp])
			}
		}
	case Vertical:
		for t, b := 0, h-1; t < b; t, b = t+1, b-1 {
			top := m.data[t*stride : (t+1)*stride]
			bottom := m.data[b*stride : (b+1)*stride]
			copy(tmp, top)
			copy(top, bottom)
			copy(bottom, tmp)
		}
	default:
		return fmt.Errorf("tga: unknown direction %d", d)
	}

	return nil
}

// WriteTo writes the image in TGA format: header, image ID, color map,
// pixel data, any extension or developer areas and finally the footer if
// present.
func (m *Image) WriteTo(w io.Writer) (int64, error) {
	var hdr [HeaderSize]byte
	m.header.put(hdr[:])

	parts := [][]byte{hdr[:], m.id, m.cmap, m.data, m.ext}
	if m.footer != nil {
		f, _ := m.footer.MarshalBinary()
		parts = append(parts, f)
	}

	var n int64
	for _, p := range parts {
		c, err := w.Write(p)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// MarshalBinary returns the image encoded in TGA format
func (m *Image) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if _, err := m.WriteTo(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func readIndex(b []byte) int {
	if len(b) > 1 {
		return int(binary.LittleEndian.Uint16(b))
	}
	return int(b[0])
}

func writeIndex(b []byte, i int) {
	if len(b) > 1 {
		binary.LittleEndian.PutUint16(b, uint16(i))
		return
	}
	b[0] = uint8(i)
}

func (m *Image) lookup(i int) RGBA {
	if e := i - int(m.header.ColorMapOrigin); e >= 0 && e < len(m.palette) {
		return toRGBA(m.palette[e])
	}
	// Outside the color map, treat the index as a gray level
	g := uint8(i)
	return RGBA{g, g, g, 0xff}
}

// Only entries whose index fits in a pixel are candidates
func (m *Image) index(c RGBA) int {
	origin := int(m.header.ColorMapOrigin)
	n := len(m.palette)
	if limit := 1<<(8*uint(m.bpp)) - origin; n > limit {
		n = limit
	}
	if n <= 0 {
		return int(c.gray())
	}
	return m.palette[:n].Index(c) + origin
}

func decodePalette(cmap []byte, bits uint8, alpha bool) color.Palette {
	n := bytesFor(bits)
	if n == 0 {
		return nil
	}
	p := make(color.Palette, len(cmap)/n)
	for i := range p {
		p[i] = decodeColor(cmap[i*n:(i+1)*n], bits, alpha)
	}
	return p
}

func expand5(v uint16) uint8 {
	v &= 0x1f
	return uint8(v<<3 | v>>2)
}

// Decode a single BGR(A) or 16-bit ARRRRRGGGGGBBBBB little-endian color
func decodeColor(b []byte, bits uint8, alpha bool) RGBA {
	switch bits {
	case 15, 16:
		v := binary.LittleEndian.Uint16(b)
		c := RGBA{expand5(v >> 10), expand5(v >> 5), expand5(v), 0xff}
		if bits == 16 && alpha && v&0x8000 == 0 {
			c.A = 0
		}
		return c
	case 24:
		return RGBA{b[2], b[1], b[0], 0xff}
	case 32:
		c := RGBA{b[2], b[1], b[0], 0xff}
		if alpha {
			c.A = b[3]
		}
		return c
	}
	return RGBA{}
}

func encodeColor(b []byte, bits uint8, c RGBA) {
	switch bits {
	case 15, 16:
		v := uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
		if bits == 16 && c.A >= 0x80 {
			v |= 0x8000
		}
		binary.LittleEndian.PutUint16(b, v)
	case 24:
		b[0], b[1], b[2] = c.B, c.G, c.R
	case 32:
		b[0], b[1], b[2], b[3] = c.B, c.G, c.R, c.A
	}
}
