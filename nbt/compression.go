package nbt

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/pgzip"
	"golang.org/x/xerrors"
)

// Compression names the outer byte-stream wrapper around an NBT tag stream
// gzip and zlib are auto-detected by magic byte when loading, or
// requested explicitly when saving.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZlib
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	default:
		return "unknown"
	}
}

// DetectCompression sniffs the first bytes of r (gzip: 0x1F 0x8B; zlib:
// 0x78 0x9C / 0x78 0xDA / 0x78 0x01; otherwise raw) and returns a reader
// that still yields the sniffed bytes, alongside the detected kind.
func DetectCompression(r io.Reader) (Compression, io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return CompressionNone, br, nil
		}
		return CompressionNone, nil, xerrors.Errorf("nbt: sniffing compression: %w", err)
	}
	switch {
	case magic[0] == 0x1F && magic[1] == 0x8B:
		return CompressionGzip, br, nil
	case magic[0] == 0x78 && (magic[1] == 0x9C || magic[1] == 0xDA || magic[1] == 0x01):
		return CompressionZlib, br, nil
	default:
		return CompressionNone, br, nil
	}
}

// WrapDecompressor layers a decompressing reader over r according to c.
// gzip uses klauspost/pgzip (parallel inflate) in place of compress/gzip
// on this hot path.
func WrapDecompressor(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, xerrors.Errorf("nbt: gzip reader: %w", err)
		}
		return zr, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, xerrors.Errorf("nbt: zlib reader: %w", err)
		}
		return zr, nil
	default:
		return nil, xerrors.Errorf("nbt: unknown compression %v", c)
	}
}

// WrapCompressor layers a compressing writer over w according to c. The
// returned writer must be Closed to flush trailing compressed bytes.
func WrapCompressor(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return pgzip.NewWriter(w), nil
	case CompressionZlib:
		return zlib.NewWriter(w), nil
	default:
		return nil, xerrors.Errorf("nbt: unknown compression %v", c)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
