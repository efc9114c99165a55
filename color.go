package tga

import (
	"fmt"
	"image/color"
)

// RGB is a three channel 8-bit color. It implements the color.Color
// interface and is always fully opaque.
type RGB struct {
	R, G, B uint8
}

// RGBA is a four channel 8-bit color with non-premultiplied alpha. It
// implements the color.Color interface.
type RGBA struct {
	R, G, B, A uint8
}

// Some opaque colors
var (
	Black = RGBA{0x00, 0x00, 0x00, 0xff}
	White = RGBA{0xff, 0xff, 0xff, 0xff}
	Red   = RGBA{0xff, 0x00, 0x00, 0xff}
	Green = RGBA{0x00, 0xff, 0x00, 0xff}
	Blue  = RGBA{0x00, 0x00, 0xff, 0xff}
)

// WidenToRGBA converts c to an RGBA color with full opacity.
func WidenToRGBA(c RGB) RGBA {
	return RGBA{c.R, c.G, c.B, 0xff}
}

// NarrowToRGB converts c to an RGB color, the alpha channel is discarded.
func NarrowToRGB(c RGBA) RGB {
	return RGB{c.R, c.G, c.B}
}

// RGBFromCode unpacks a color packed by RGB.Code
func RGBFromCode(code uint32) RGB {
	return RGB{uint8(code >> 24), uint8(code >> 16), uint8(code >> 8)}
}

// RGBAFromCode unpacks a color packed by RGBA.Code
func RGBAFromCode(code uint32) RGBA {
	return RGBA{uint8(code >> 24), uint8(code >> 16), uint8(code >> 8), uint8(code)}
}

// Code packs the color as 0xRRGGBB00
func (c RGB) Code() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8
}

// Code packs the color as 0xRRGGBBAA
func (c RGBA) Code() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Channel returns the red, green or blue channel for an index of 0, 1 or 2
func (c RGB) Channel(i int) (uint8, error) {
	switch i {
	case 0:
		return c.R, nil
	case 1:
		return c.G, nil
	case 2:
		return c.B, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrChannel, i)
	}
}

// Channel returns the red, green, blue or alpha channel for an index of 0,
// 1, 2 or 3
func (c RGBA) Channel(i int) (uint8, error) {
	if i == 3 {
		return c.A, nil
	}
	return NarrowToRGB(c).Channel(i)
}

// RGBA implements the color.Color interface
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// RGBA implements the color.Color interface
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{c.R, c.G, c.B, c.A}.RGBA()
}

func (c RGBA) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Convert any color.Color to RGBA
func toRGBA(c color.Color) RGBA {
	switch c := c.(type) {
	case RGBA:
		return c
	case RGB:
		return WidenToRGBA(c)
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{n.R, n.G, n.B, n.A}
}

// Model converts any color.Color to an RGBA
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return toRGBA(c)
})

// Luminance as used for grayscale pixels
func (c RGBA) gray() uint8 {
	return color.GrayModel.Convert(color.NRGBA{c.R, c.G, c.B, 0xff}).(color.Gray).Y
}
