// core/reads/open.go
package reads

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the container format detected on a read source.
type Compression uint8

const (
	Plain Compression = iota
	Gzip
	Zstd
	LZ4
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return "plain"
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect reports the compression of a stream from its first bytes. File
// suffixes are not consulted.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4
	}
	return Plain
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Stdin is read when a path is "-". Tests may replace it.
var Stdin io.Reader = os.Stdin

// Open returns the decompressed contents of path ("-" is stdin).
func Open(path string) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer = io.NopCloser(nil)
	)
	if path == "-" {
		src = Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, closer = fh, fh
	}
	br := bufio.NewReaderSize(src, 1<<16)
	head, _ := br.Peek(4)

	switch Detect(head) {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("%s: gzip: %w", path, err)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, closer}}, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("%s: zstd: %w", path, err)
		}
		zc := zr.IOReadCloser()
		return &multiReadCloser{Reader: zc, closers: []io.Closer{zc, closer}}, nil
	case LZ4:
		return &multiReadCloser{Reader: lz4.NewReader(br), closers: []io.Closer{closer}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{closer}}, nil
}
