package library

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	"github.com/bodgit/tga"
	_ "github.com/mattn/go-sqlite3"
)

// Entry describes an image held in the DB
type Entry struct {
	ID           int64
	SHA1         string
	Name         string
	Type         tga.ImageType
	Width        int
	Height       int
	BitsPerPixel int
	NewFormat    bool // footer present
	Size         int  // uncompressed file size
}

// DB is the SQLite backed image catalogue
type DB struct {
	db *sql.DB
}

// NewDB opens or creates the database in file
func NewDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, type INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, bpp INTEGER NOT NULL, footer INTEGER NOT NULL, size INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.db.Close()
}

// Add stores the TGA file b under name and returns its id. The file must
// decode with tga.Open. Adding the same contents again returns the
// existing id.
func (db *DB) Add(name string, b []byte) (int64, error) {
	m, err := tga.Open(b)
	if err != nil {
		return 0, err
	}
	return db.add(name, b, m)
}

// b must be the encoding m was decoded from
func (db *DB) add(name string, b []byte, m *tga.Image) (int64, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(b))
	h := m.Header()

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM image WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		// Another worker may have added the same file in the meantime
		if _, err := db.db.Exec("INSERT OR IGNORE INTO image (sha1, name, type, width, height, bpp, footer, size, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", sha, name, h.DataTypeCode, h.Width, h.Height, h.BitsPerPixel, m.Footer() != nil, len(b), compress(b)); err != nil {
			return 0, err
		}
		if err := db.db.QueryRow("SELECT id FROM image WHERE sha1 = ?", sha).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddImage encodes m and stores it under name
func (db *DB) AddImage(name string, m *tga.Image) (int64, error) {
	b, err := m.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return db.add(name, b, m)
}

func (db *DB) image(query string, args ...interface{}) (*tga.Image, error) {
	var data []byte
	switch err := db.db.QueryRow(query, args...).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		b, err := decompress(data)
		if err != nil {
			return nil, err
		}
		return tga.Open(b)
	default:
		return nil, err
	}
}

// Get returns the image with the given id, or nil if there isn't one
func (db *DB) Get(id int64) (*tga.Image, error) {
	return db.image("SELECT data FROM image WHERE id = ?", id)
}

// FindBySHA1 returns the image whose file contents have the given SHA-1,
// or nil if there isn't one
func (db *DB) FindBySHA1(sha string) (*tga.Image, error) {
	return db.image("SELECT data FROM image WHERE sha1 = ?", sha)
}

// List calls fn for each image in the DB ordered by name
func (db *DB) List(fn func(Entry) error) error {
	rows, err := db.db.Query("SELECT id, sha1, name, type, width, height, bpp, footer, size FROM image ORDER BY name, id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SHA1, &e.Name, &e.Type, &e.Width, &e.Height, &e.BitsPerPixel, &e.NewFormat, &e.Size); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}

	return rows.Err()
}
