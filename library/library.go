/*
Package library maintains a catalogue of TGA images in an SQLite database.

Each image is stored once, keyed by the SHA-1 of its file contents, together
with the name it was added under and the dimensions and type taken from its
header. The file contents are kept zstd compressed as uncompressed TGA pixel
data tends to compress well.
*/
package library

import "log"

// Library scans directories for TGA images and adds them to a DB
type Library struct {
	db     *DB
	logger *log.Logger
}

// New returns a Library adding images to db and logging any files it skips
// to logger
func New(db *DB, logger *log.Logger) *Library {
	return &Library{
		db:     db,
		logger: logger,
	}
}
