package region

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/theJ8910/jnbt/nbt"
	"golang.org/x/xerrors"
)

// Region provides lazy, random-access reads over a single region file's
// chunks. The header is parsed eagerly at Open/NewReader time; chunk
// payloads are read and decompressed only on demand. A Region is not safe
// for concurrent use by multiple goroutines.
type Region struct {
	r      io.ReaderAt
	h      *header
	size   int64
	dir    string // directory external .mcc sidecar files are looked up in
	closer io.Closer
}

// Open opens the region file at path and parses its header. Sidecar
// external-chunk (.mcc) files are looked up next to path.
func Open(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("region: opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, xerrors.Errorf("region: stat %s: %w", path, err)
	}
	reg, err := NewReader(f, info.Size(), filepath.Dir(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	reg.closer = f
	return reg, nil
}

// NewReader wraps r as a Region of the given total size (in bytes), looking
// up external .mcc sidecar files in dir. The caller retains ownership of r;
// Close is a no-op unless r was obtained through Open.
func NewReader(r io.ReaderAt, size int64, dir string) (*Region, error) {
	if size < 2*sectorSize {
		return nil, newRegionError(ErrCorruptHeader, 0, 0, "region file is %d bytes, shorter than the %d-byte header", size, 2*sectorSize)
	}
	raw := make([]byte, 2*sectorSize)
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, 2*sectorSize), raw); err != nil {
		return nil, newRegionError(ErrCorruptHeader, 0, 0, "reading header: %w", err)
	}
	h, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}
	return &Region{r: r, h: h, size: size, dir: dir}, nil
}

func (reg *Region) Close() error {
	if reg.closer != nil {
		return reg.closer.Close()
	}
	return nil
}

func euclidMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// HasChunk reports whether cx,cz (world chunk coordinates) has a nonzero
// header entry, without reading or decompressing its payload.
func (reg *Region) HasChunk(cx, cz int) bool {
	idx := index(euclidMod(cx, chunkSideLen), euclidMod(cz, chunkSideLen))
	return reg.h.offsets[idx] != 0
}

// ReadChunk locates the header entry for (cx,cz), reads the length-prefixed,
// compression-tagged payload, and returns a decompressing reader over the
// raw NBT bytes. The caller is responsible for Close-ing the result.
func (reg *Region) ReadChunk(cx, cz int) (io.ReadCloser, error) {
	localX, localZ := euclidMod(cx, chunkSideLen), euclidMod(cz, chunkSideLen)
	idx := index(localX, localZ)

	offset := reg.h.offsets[idx]
	count := reg.h.counts[idx]
	if offset == 0 {
		return nil, newRegionError(ErrNoSuchChunk, cx, cz, "header entry is empty")
	}

	sectorsInFile := reg.size / sectorSize
	if int64(offset)+int64(count) > sectorsInFile {
		return nil, newRegionError(ErrCorruptHeader, cx, cz, "offset %d + count %d exceeds file's %d sectors", offset, count, sectorsInFile)
	}

	chunkStart := int64(offset) * sectorSize
	lenAndCompression := make([]byte, 5)
	if _, err := io.ReadFull(io.NewSectionReader(reg.r, chunkStart, 5), lenAndCompression); err != nil {
		return nil, newRegionError(ErrTruncatedChunk, cx, cz, "reading chunk header: %w", err)
	}
	length := binary.BigEndian.Uint32(lenAndCompression[0:4])
	compression := lenAndCompression[4]

	if length == 0 {
		return nil, newRegionError(ErrTruncatedChunk, cx, cz, "chunk declares zero length")
	}

	if isExternal(compression) {
		return reg.readExternalChunk(cx, cz, compression&^compressionExternalFlag)
	}

	payloadLen := int64(length) - 1
	if payloadLen < 0 {
		return nil, newRegionError(ErrTruncatedChunk, cx, cz, "chunk length %d too small to hold the compression byte", length)
	}
	availableBytes := (int64(count) * sectorSize) - 5
	if payloadLen > availableBytes {
		return nil, newRegionError(ErrTruncatedChunk, cx, cz, "chunk claims %d payload bytes, only %d available in its claimed sectors", payloadLen, availableBytes)
	}

	payload := io.NewSectionReader(reg.r, chunkStart+5, payloadLen)
	return decompress(compression, payload, cx, cz)
}

func (reg *Region) readExternalChunk(cx, cz int, compression byte) (io.ReadCloser, error) {
	name := fmt.Sprintf("c.%d.%d.mcc", cx, cz)
	path := filepath.Join(reg.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, newRegionError(ErrTruncatedChunk, cx, cz, "opening external chunk %s: %w", name, err)
	}
	rc, err := decompress(compression, f, cx, cz)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &chainedCloser{ReadCloser: rc, extra: f}, nil
}

// chainedCloser closes both the decompressing reader and the underlying
// file it wraps.
type chainedCloser struct {
	io.ReadCloser
	extra io.Closer
}

func (c *chainedCloser) Close() error {
	err1 := c.ReadCloser.Close()
	err2 := c.extra.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// ReadChunkDocument is ReadChunk followed by NBT materialization, the
// common case of feeding the decompressed chunk bytes straight to a
// tree-building parse.
func (reg *Region) ReadChunkDocument(cx, cz int) (*nbt.Document, error) {
	r, err := reg.ReadChunk(cx, cz)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := nbt.BuildTree(r)
	if err != nil {
		return nil, newRegionError(ErrTruncatedChunk, cx, cz, "parsing chunk NBT: %w", err)
	}
	return doc, nil
}

// ModTime returns the stored last-modified timestamp (unix seconds) for
// cx,cz, or 0 if the chunk is absent.
func (reg *Region) ModTime(cx, cz int) uint32 {
	idx := index(euclidMod(cx, chunkSideLen), euclidMod(cz, chunkSideLen))
	if reg.h.offsets[idx] == 0 {
		return 0
	}
	return reg.h.modTimes[idx]
}
