package compress

import (
	"bytes"

	"github.com/andybalholm/brotli"
)

type Brotli struct {
	level int
}

func NewBrotli() Brotli {
	return Brotli{level: brotli.DefaultCompression}
}

func (b Brotli) Name() string {
	return NameBrotli
}

func (b Brotli) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, b.level)
	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}

	err = w.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (b Brotli) Decode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
