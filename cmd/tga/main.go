package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

const defaultDB = "tga.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "tga"
	app.Usage = "Truevision TGA image utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TGA_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Print the header and footer of a TGA file",
			ArgsUsage: "FILE",
			Action:    info,
		},
		{
			Name:        "convert",
			Usage:       "Convert between TGA and other image formats",
			Description: "The format of each file is chosen by its extension; .tga, .png, .jpg, .gif, .bmp and .tif are supported.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type",
					Usage: "TGA image type to write: mapped, rgb or gray; chosen from the input if empty",
				},
				&cli.BoolFlag{
					Name:  "original",
					Usage: "write an Original TGA Format file without a footer",
				},
			},
			Action: convert,
		},
		{
			Name:      "flip",
			Usage:     "Mirror a TGA image",
			ArgsUsage: "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "vertical",
					Usage: "flip top to bottom instead of left to right",
				},
			},
			Action: flip,
		},
		{
			Name:      "new",
			Usage:     "Create a blank TGA image",
			ArgsUsage: "OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type",
					Value: "rgb",
					Usage: "image type: mapped, rgb or gray",
				},
				&cli.IntFlag{
					Name:  "width",
					Value: 64,
					Usage: "width in pixels",
				},
				&cli.IntFlag{
					Name:  "height",
					Value: 64,
					Usage: "height in pixels",
				},
				&cli.StringFlag{
					Name:  "color",
					Value: "#000000",
					Usage: "fill color as #rrggbb or #rrggbbaa",
				},
			},
			Action: create,
		},
		{
			Name:      "import",
			Usage:     "Scan directories and add any TGA images to the database",
			ArgsUsage: "DIRECTORY...",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of files to decode concurrently",
				},
			},
			Action: scan,
		},
		{
			Name:   "list",
			Usage:  "List the images in the database",
			Action: list,
		},
		{
			Name:      "export",
			Usage:     "Write an image from the database to a file",
			ArgsUsage: "SHA1 OUTPUT",
			Action:    export,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
