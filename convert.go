package tga

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxDimension = 1<<16 - 1

var errTooBig = errors.New("tga: image is too big")

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Image converts the TGA image into an image.Image. Grayscale images
// without alpha become *image.Gray, 8-bit ColorMapped images whose indices
// all fall within the color map become *image.Paletted and everything else
// becomes *image.NRGBA.
func (m *Image) Image() (image.Image, error) {
	if m.IsRLE() {
		return nil, ErrCompressed
	}

	r := image.Rect(0, 0, m.Width(), m.Height())

	switch {
	case m.variant == Grayscale && !(m.bpp > 1 && m.alpha()):
		g := image.NewGray(r)
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				o, _ := m.offset(x, y)
				g.Pix[g.PixOffset(x, y)] = m.data[o]
			}
		}
		return g, nil
	case m.variant == ColorMapped && m.paletted():
		p := image.NewPaletted(r, m.Palette())
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				o, _ := m.offset(x, y)
				p.Pix[p.PixOffset(x, y)] = m.data[o]
			}
		}
		return p, nil
	}

	n := image.NewNRGBA(r)
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c, err := m.Pixel(x, y)
			if err != nil {
				return nil, err
			}
			n.SetNRGBA(x, y, color.NRGBA{c.R, c.G, c.B, c.A})
		}
	}
	return n, nil
}

func (m *Image) paletted() bool {
	if m.bpp != 1 || m.header.ColorMapOrigin != 0 || len(m.palette) == 0 || len(m.palette) > 256 {
		return false
	}
	for _, i := range m.data {
		if int(i) >= len(m.palette) {
			return false
		}
	}
	return true
}

// Decode reads a TGA image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	m, err := Read(r)
	if err != nil {
		return nil, err
	}
	return m.Image()
}

// DecodeConfig returns the color model and dimensions of a TGA image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var b [HeaderSize]byte
	if err := readFull(r, b[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return image.Config{}, err
		}
		return image.Config{}, ErrHeaderRead
	}

	h, _ := DecodeHeader(b[:])
	v := Classify(h.DataTypeCode)
	if v == Invalid {
		return image.Config{}, fmt.Errorf("%w: %s", ErrBadType, h.Type())
	}
	if !ValidateHeader(v, h) {
		return image.Config{}, fmt.Errorf("%w: for %s image", ErrInvalidHeader, v)
	}

	var model color.Model = color.NRGBAModel
	switch v {
	case Grayscale:
		if h.BitsPerPixel == 8 || h.AlphaDepth() == 0 {
			model = color.GrayModel
		}
	case ColorMapped:
		tmp := make([]byte, int(h.IDLength)+h.colorMapSize())
		if err := readFull(r, tmp); err != nil {
			if err != io.ErrUnexpectedEOF {
				return image.Config{}, err
			}
			return image.Config{}, ErrDataRead
		}
		model = decodePalette(tmp[h.IDLength:], h.ColorMapDepth, h.AlphaDepth() > 0)
	}

	return image.Config{
		ColorModel: model,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// Options are the encoding parameters.
type Options struct {
	// Variant selects the pixel layout. Invalid picks one based on the
	// color model of the image being encoded.
	Variant Variant

	// Original omits the footer, producing an Original TGA Format file.
	Original bool
}

func opaque(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

func encodeColorMap(p color.Palette, bits uint8) []byte {
	n := bytesFor(bits)
	b := make([]byte, len(p)*n)
	for i, c := range p {
		encodeColor(b[i*n:(i+1)*n], bits, toRGBA(c))
	}
	return b
}

// FromImage converts m into a TGA image. If o is nil, default parameters
// are used.
func FromImage(m image.Image, o *Options) (*Image, error) {
	b := m.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		return nil, errTooBig
	}

	var opts Options
	if o != nil {
		opts = *o
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}

	v := opts.Variant
	if v == Invalid {
		switch {
		case pm != nil:
			v = ColorMapped
		case m.ColorModel() == color.GrayModel:
			v = Grayscale
		default:
			v = TrueColor
		}
	}

	h := HeaderDefaults(v, uint16(b.Dx()), uint16(b.Dy()), false)
	h.ImageDescriptor = descriptorTopToBottom

	var cmap []byte
	switch v {
	case ColorMapped:
		var p color.Palette
		if pm != nil && len(pm.Palette) <= defaultColorMapLength {
			p = pm.Palette
		} else {
			q := quantize.MedianCutQuantizer{}
			p = q.Quantize(make(color.Palette, 0, defaultColorMapLength), m)
		}
		if !opaque(m) {
			h.ColorMapDepth = 32
			h.ImageDescriptor |= 8
		}
		h.ColorMapLength = uint16(len(p))
		cmap = encodeColorMap(p, h.ColorMapDepth)
	case TrueColor:
		if !opaque(m) {
			h.BitsPerPixel = 32
			h.ImageDescriptor |= 8
		}
	case Grayscale:
	default:
		return nil, fmt.Errorf("%w: %s", ErrBadType, v)
	}

	var f *Footer
	if !opts.Original {
		f = DefaultFooter()
	}

	t, err := create(h, append(cmap, make([]byte, h.pixelSize())...), f)
	if err != nil {
		return nil, err
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if err := t.SetPixel(x-b.Min.X, y-b.Min.Y, m.At(x, y)); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

// Encode writes the Image m to w in TGA format. If o is nil, default
// parameters are used.
func Encode(w io.Writer, m image.Image, o *Options) error {
	t, err := FromImage(m, o)
	if err != nil {
		return err
	}
	_, err = t.WriteTo(w)
	return err
}
