package library

import "github.com/klauspost/compress/zstd"

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

func compress(b []byte) []byte {
	return encoder.EncodeAll(b, make([]byte, 0, len(b)))
}

func decompress(b []byte) ([]byte, error) {
	return decoder.DecodeAll(b, nil)
}
