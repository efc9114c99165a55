package tga

import "errors"

var (
	// ErrBadFile is returned when the byte source cannot be read
	ErrBadFile = errors.New("tga: bad file")

	// ErrHeaderRead is returned when there are fewer than HeaderSize bytes
	ErrHeaderRead = errors.New("tga: header read error")

	// ErrDataRead is returned when the payload is shorter than the header
	// declares
	ErrDataRead = errors.New("tga: data read error")

	// ErrFooterRead is returned when the signature matches but the footer
	// is truncated
	ErrFooterRead = errors.New("tga: footer read error")

	// ErrBadType is returned for a data type code that is not one of the
	// known image types
	ErrBadType = errors.New("tga: bad image type")

	// ErrInvalidHeader is returned when the header fields are inconsistent
	// with the image type
	ErrInvalidHeader = errors.New("tga: invalid header")

	// ErrOutOfRange is returned for pixel coordinates outside the image
	ErrOutOfRange = errors.New("tga: pixel out of range")

	// ErrChannel is returned for a color channel index that does not exist
	ErrChannel = errors.New("tga: channel index out of range")

	// ErrCompressed is returned when accessing pixels of a run-length
	// encoded image
	ErrCompressed = errors.New("tga: run-length encoded pixel data is not supported")
)
