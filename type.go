package tga

import "fmt"

// ImageType is the data type code stored in the header
type ImageType uint8

// Known image types. The run-length encoded types are the base type with
// bit 3 set.
const (
	TypeColorMapped    ImageType = 1
	TypeTrueColor      ImageType = 2
	TypeGrayscale      ImageType = 3
	TypeRLEColorMapped           = TypeColorMapped | rleBit
	TypeRLETrueColor             = TypeTrueColor | rleBit
	TypeRLEGrayscale             = TypeGrayscale | rleBit
)

// IsRLE reports whether the type has the run-length encoding bit set
func (t ImageType) IsRLE() bool {
	return t&rleBit != 0
}

// Base returns the type with the run-length encoding bit cleared
func (t ImageType) Base() ImageType {
	return t &^ rleBit
}

func (t ImageType) String() string {
	switch t {
	case TypeColorMapped:
		return "color-mapped"
	case TypeTrueColor:
		return "true-color"
	case TypeGrayscale:
		return "grayscale"
	case TypeRLEColorMapped:
		return "run-length encoded color-mapped"
	case TypeRLETrueColor:
		return "run-length encoded true-color"
	case TypeRLEGrayscale:
		return "run-length encoded grayscale"
	default:
		return fmt.Sprintf("unknown (%d)", uint8(t))
	}
}

// Variant is the structural layout of the pixel data, independent of any
// run-length encoding
type Variant int

// Variants
const (
	Invalid Variant = iota
	ColorMapped
	TrueColor
	Grayscale
)

func (v Variant) String() string {
	switch v {
	case ColorMapped:
		return "ColorMapped"
	case TrueColor:
		return "TrueColor"
	case Grayscale:
		return "Grayscale"
	default:
		return "Invalid"
	}
}

// Type returns the uncompressed image type for the variant
func (v Variant) Type(rle bool) ImageType {
	var t ImageType
	switch v {
	case ColorMapped:
		t = TypeColorMapped
	case TrueColor:
		t = TypeTrueColor
	case Grayscale:
		t = TypeGrayscale
	default:
		return 0
	}
	if rle {
		t |= rleBit
	}
	return t
}

// Classify maps a data type code to its variant. Anything that is not one
// of the six known codes is Invalid.
func Classify(code uint8) Variant {
	switch ImageType(code).Base() {
	case TypeColorMapped:
		return ColorMapped
	case TypeTrueColor:
		return TrueColor
	case TypeGrayscale:
		return Grayscale
	default:
		return Invalid
	}
}

const (
	defaultColorMapLength = 256
	defaultColorMapDepth  = 24
)

// HeaderDefaults returns the canonical header for a fresh image of the
// given variant and size.
func HeaderDefaults(v Variant, width, height uint16, rle bool) Header {
	h := Header{
		DataTypeCode: uint8(v.Type(rle)),
		Width:        width,
		Height:       height,
	}
	switch v {
	case ColorMapped:
		h.ColorMapType = 1
		h.ColorMapLength = defaultColorMapLength
		h.ColorMapDepth = defaultColorMapDepth
		h.BitsPerPixel = 8
	case TrueColor:
		h.BitsPerPixel = 24
	case Grayscale:
		h.BitsPerPixel = 8
	}
	return h
}

func validDepth(bits uint8, valid ...uint8) bool {
	for _, v := range valid {
		if bits == v {
			return true
		}
	}
	return false
}

// ValidateHeader reports whether h is consistent with variant v: the type
// code must be v's plain or run-length encoded code, the color map flag
// must be set only for ColorMapped, and the pixel depths must be ones v can
// store.
func ValidateHeader(v Variant, h Header) bool {
	if Classify(h.DataTypeCode) != v {
		return false
	}
	switch v {
	case ColorMapped:
		return h.ColorMapType == 1 &&
			validDepth(h.BitsPerPixel, 8, 16) &&
			validDepth(h.ColorMapDepth, 15, 16, 24, 32)
	case TrueColor:
		return h.ColorMapType == 0 && validDepth(h.BitsPerPixel, 15, 16, 24, 32)
	case Grayscale:
		return h.ColorMapType == 0 && validDepth(h.BitsPerPixel, 8, 16)
	default:
		return false
	}
}
