package main

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/tga"
	"github.com/bodgit/tga/library"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func requireArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func openTGA(file string) (*tga.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tga.ErrBadFile, err)
	}
	defer f.Close()

	return tga.Read(f)
}

func writeTGA(file string, m *tga.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := m.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func isTGA(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".tga")
}

func parseVariant(s string) (tga.Variant, error) {
	switch strings.ToLower(s) {
	case "":
		return tga.Invalid, nil
	case "mapped", "colormapped", "color-mapped":
		return tga.ColorMapped, nil
	case "rgb", "truecolor", "true-color":
		return tga.TrueColor, nil
	case "gray", "grey", "grayscale":
		return tga.Grayscale, nil
	}
	return tga.Invalid, fmt.Errorf("unknown image type %q", s)
}

func parseColor(s string) (tga.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 6:
		s += "ff"
	case 8:
	default:
		return tga.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	code, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return tga.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return tga.RGBAFromCode(uint32(code)), nil
}

func info(c *cli.Context) error {
	requireArgs(c, 1)

	m, err := openTGA(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	h := m.Header()
	w := c.App.Writer
	fmt.Fprintf(w, "Type:            %s (%d)\n", h.Type(), h.DataTypeCode)
	fmt.Fprintf(w, "Variant:         %s\n", m.Variant())
	fmt.Fprintf(w, "Dimensions:      %dx%d\n", m.Width(), m.Height())
	fmt.Fprintf(w, "Bits per pixel:  %d (%d bytes)\n", h.BitsPerPixel, m.BytesPerPixel())
	fmt.Fprintf(w, "Origin:          %d,%d\n", h.XOrigin, h.YOrigin)
	fmt.Fprintf(w, "Alpha depth:     %d\n", h.AlphaDepth())
	fmt.Fprintf(w, "Right to left:   %t\n", h.RightToLeft())
	fmt.Fprintf(w, "Top to bottom:   %t\n", h.TopToBottom())
	if h.ColorMapType != 0 {
		fmt.Fprintf(w, "Color map:       %d entries from %d, %d bits\n", h.ColorMapLength, h.ColorMapOrigin, h.ColorMapDepth)
	}
	if h.IDLength > 0 {
		fmt.Fprintf(w, "Image ID:        %q\n", m.ID())
	}
	if f := m.Footer(); f != nil {
		fmt.Fprintf(w, "Format:          New TGA Format\n")
		fmt.Fprintf(w, "Extension area:  %d\n", f.ExtensionAreaOffset)
		fmt.Fprintf(w, "Developer area:  %d\n", f.DeveloperDirectoryOffset)
	} else {
		fmt.Fprintf(w, "Format:          Original TGA Format\n")
	}

	return nil
}

func decodeImage(file string) (image.Image, error) {
	if isTGA(file) {
		m, err := openTGA(file)
		if err != nil {
			return nil, err
		}
		return m.Image()
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(file)) {
	case ".bmp":
		return bmp.Decode(f)
	case ".tif", ".tiff":
		return tiff.Decode(f)
	}

	m, _, err := image.Decode(f)
	return m, err
}

func convert(c *cli.Context) error {
	requireArgs(c, 2)

	v, err := parseVariant(c.String("type"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	in, out := c.Args().Get(0), c.Args().Get(1)

	m, err := decodeImage(in)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := os.Create(out)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(out)) {
	case ".tga":
		err = tga.Encode(f, m, &tga.Options{Variant: v, Original: c.Bool("original")})
	case ".png":
		err = png.Encode(f, m)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, m, nil)
	case ".gif":
		err = gif.Encode(f, m, nil)
	case ".bmp":
		err = bmp.Encode(f, m)
	case ".tif", ".tiff":
		err = tiff.Encode(f, m, nil)
	default:
		err = fmt.Errorf("unsupported output format %q", filepath.Ext(out))
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := f.Close(); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func flip(c *cli.Context) error {
	requireArgs(c, 2)

	m, err := openTGA(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	d := tga.Horizontal
	if c.Bool("vertical") {
		d = tga.Vertical
	}

	if err := m.Flip(d); err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := writeTGA(c.Args().Get(1), m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func create(c *cli.Context) error {
	requireArgs(c, 1)

	v, err := parseVariant(c.String("type"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if v == tga.Invalid {
		return cli.NewExitError(errors.New("an image type is required"), 1)
	}

	width, height := c.Int("width"), c.Int("height")
	if width < 1 || width > 0xffff || height < 1 || height > 0xffff {
		return cli.NewExitError(fmt.Errorf("invalid dimensions %dx%d", width, height), 1)
	}

	fill, err := parseColor(c.String("color"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	m := tga.New(v, uint16(width), uint16(height), fill)

	if err := writeTGA(c.Args().First(), m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func openLibrary(c *cli.Context) (*library.DB, error) {
	return library.NewDB(c.String("db"))
}

func scan(c *cli.Context) error {
	requireArgs(c, 1)

	db, err := openLibrary(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	l := library.New(db, newLogger(c))

	for _, dir := range c.Args().Slice() {
		if err := l.Scan(dir, c.Int("workers")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	return nil
}

func list(c *cli.Context) error {
	db, err := openLibrary(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	if err := db.List(func(e library.Entry) error {
		format := "original"
		if e.NewFormat {
			format = "new"
		}
		_, err := fmt.Fprintf(c.App.Writer, "%s %-30s %5dx%-5d %2d bpp %-8s %s\n", e.SHA1, e.Name, e.Width, e.Height, e.BitsPerPixel, format, e.Type)
		return err
	}); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func export(c *cli.Context) error {
	requireArgs(c, 2)

	db, err := openLibrary(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	m, err := db.FindBySHA1(strings.ToUpper(c.Args().Get(0)))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if m == nil {
		return cli.NewExitError(fmt.Errorf("no image with SHA-1 %s", c.Args().Get(0)), 1)
	}

	if err := writeTGA(c.Args().Get(1), m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}
