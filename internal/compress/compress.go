package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a stream compression format.
type Type uint8

const (
	// None indicates a plain, uncompressed stream.
	None Type = iota
	// Gzip indicates an RFC 1952 gzip stream.
	Gzip
	// Zstd indicates a zstd frame stream.
	Zstd
	// LZ4 indicates an LZ4 frame stream.
	LZ4
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// magicLen is the number of leading bytes Detect needs.
const magicLen = 4

// Detect identifies the compression format from the first bytes of a stream.
func Detect(header []byte) Type {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, lz4Magic):
		return LZ4
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// ForName picks a format from a file or object name suffix.
func ForName(name string) Type {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return Gzip
	case strings.HasSuffix(name, ".zst"):
		return Zstd
	case strings.HasSuffix(name, ".lz4"):
		return LZ4
	default:
		return None
	}
}

// ZSTD decoder pool; decoders are reset onto each new stream.
var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	// Single-threaded decoding keeps goroutine count flat per stream.
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	_ = dec.Reset(nil)
	zstdDecoderPool.Put(dec)
}

// NewReader sniffs r and returns a reader yielding the decompressed stream
// together with the detected format. Plain streams pass through unchanged.
func NewReader(r io.Reader) (io.ReadCloser, Type, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(magicLen)
	if err != nil && err != io.EOF {
		return nil, None, err
	}

	t := Detect(header)
	switch t {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, t, err
		}
		return gz, t, nil
	case Zstd:
		dec, err := getZstdDecoder(br)
		if err != nil {
			return nil, t, err
		}
		return &zstdReadCloser{dec: dec}, t, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), t, nil
	default:
		return io.NopCloser(br), t, nil
	}
}

type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	if z.dec == nil {
		return 0, io.ErrClosedPipe
	}
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	if z.dec != nil {
		putZstdDecoder(z.dec)
		z.dec = nil
	}
	return nil
}

// NewWriter wraps w so that written bytes are compressed with t.
// Close flushes the trailer but does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("compress: unsupported type %v", t)
	}
}

// Encode compresses data with t in one shot.
func Encode(data []byte, t Type) ([]byte, error) {
	if t == None {
		return data, nil
	}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, t)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
