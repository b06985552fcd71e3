package region

import (
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/pgzip"
)

const (
	compressionGzip         = 1
	compressionZlib         = 2
	compressionUncompressed = 3

	// compressionExternalFlag (bit 7) marks a chunk whose payload was too
	// large for inline storage and instead lives in a c.<cx>.<cz>.mcc
	// sidecar file next to the region file.
	compressionExternalFlag = 0x80
)

func isExternal(c byte) bool {
	return c&compressionExternalFlag != 0
}

// decompress wraps r per the chunk's compression byte (with the external
// flag already masked off by the caller).
func decompress(c byte, r io.Reader, cx, cz int) (io.ReadCloser, error) {
	switch c {
	case compressionGzip:
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, newRegionError(ErrTruncatedChunk, cx, cz, "gzip: %w", err)
		}
		return zr, nil
	case compressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, newRegionError(ErrTruncatedChunk, cx, cz, "zlib: %w", err)
		}
		return zr, nil
	case compressionUncompressed:
		return io.NopCloser(r), nil
	default:
		return nil, newRegionError(ErrUnknownCompression, cx, cz, "compression code %d", c)
	}
}
