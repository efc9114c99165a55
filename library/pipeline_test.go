package library

import (
	"context"
	"errors"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	db, cleanup := tempDB(t)
	defer cleanup()

	dir, err := ioutil.TempDir("", "scan")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	for _, d := range []string{"sub", ".hidden"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0755))
	}

	files := map[string][]byte{
		"a.tga":          testFile(t, tga.TrueColor, tga.Red),
		"b.TGA":          testFile(t, tga.Grayscale, tga.White),
		"sub/c.tga":      testFile(t, tga.ColorMapped, tga.Black),
		"sub/dup.tga":    testFile(t, tga.TrueColor, tga.Red),
		".hidden/d.tga":  testFile(t, tga.TrueColor, tga.Green),
		"broken.tga":     {0x00, 0x00, 0x04},
		"not-an-image.x": testFile(t, tga.TrueColor, tga.Blue),
	}
	for name, b := range files {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), b, 0644))
	}

	l := New(db, log.New(ioutil.Discard, "", 0))
	require.NoError(t, l.Scan(dir, 3))

	names := make(map[string]bool)
	require.NoError(t, db.List(func(e Entry) error {
		names[e.Name] = true
		assert.Equal(t, 16, e.Width)
		assert.Equal(t, 8, e.Height)
		assert.True(t, e.NewFormat)
		return nil
	}))

	// a.tga and sub/dup.tga are identical so only one of them is stored
	assert.Len(t, names, 3)
	assert.True(t, names["b.TGA"])
	assert.True(t, names["c.tga"])
	assert.True(t, names["a.tga"] != names["dup.tga"])
}

func TestScanMissing(t *testing.T) {
	db, cleanup := tempDB(t)
	defer cleanup()

	l := New(db, log.New(ioutil.Discard, "", 0))
	assert.Error(t, l.Scan(filepath.Join(os.TempDir(), "does-not-exist-tga-scan"), 0))
}

func TestScanDatabaseError(t *testing.T) {
	db, cleanup := tempDB(t)
	defer cleanup()

	dir, err := ioutil.TempDir("", "scan")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"a.tga", "b.tga", "c.tga", "d.tga"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), testFile(t, tga.TrueColor, tga.Red), 0644))
	}

	require.NoError(t, db.Close())

	l := New(db, log.New(ioutil.Discard, "", 0))
	assert.Error(t, l.Scan(dir, 2))
}

func TestWaitForPipeline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan error, 1)
	first <- errors.New("first")
	close(first)

	finished := make(chan struct{})
	slow := make(chan error)
	go func() {
		<-ctx.Done()
		close(finished)
		slow <- errors.New("second")
		close(slow)
	}()

	err := waitForPipeline(cancel, first, slow)
	require.Error(t, err)
	assert.Equal(t, "first", err.Error())

	select {
	case <-finished:
	default:
		t.Fatal("returned before every stage finished")
	}
}
