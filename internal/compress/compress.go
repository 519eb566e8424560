package compress

import (
	"fmt"
	"strings"
)

// Compress encodes and decodes byte payloads.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

const (
	NameNop    = "nop"
	NameGZip   = "gzip"
	NameLZ4    = "lz4"
	NameBrotli = "brotli"
)

// New returns the compressor called name.
func New(name string) (Compress, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameNop, "", "none":
		return NewNop(), nil
	case NameGZip:
		return NewGZip(), nil
	case NameLZ4:
		return NewLZ4(), nil
	case NameBrotli:
		return NewBrotli(), nil
	}
	return nil, fmt.Errorf("unknown compression: %s", name)
}

// Extension is the file suffix of payloads encoded by c.
func Extension(c Compress) string {
	switch c.Name() {
	case NameGZip:
		return ".gz"
	case NameLZ4:
		return ".lz4"
	case NameBrotli:
		return ".br"
	}
	return ""
}
