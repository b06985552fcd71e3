package region

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/orcaman/writerseeker"
	"github.com/theJ8910/jnbt/nbt"
)

func zlibCompress(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func sampleChunkNBT(t *testing.T) []byte {
	t.Helper()
	doc := nbt.NewDocument("Level")
	if err := doc.SetInt("xPos", 3); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetInt("zPos", 4); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := nbt.WriteTree(&buf, doc); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// buildRegion assembles a single-chunk region file in memory using a
// writerseeker.WriterSeeker as the backing buffer: header entry
// (offset=2,count=N) at a chosen local index, chunk payload starting at
// byte 8192.
func buildRegion(t *testing.T, localX, localZ int, compression byte, rawPayload []byte) *bytes.Reader {
	t.Helper()
	ws := &writerseeker.WriterSeeker{}

	header := make([]byte, 2*sectorSize)
	idx := index(localX, localZ)
	chunkLen := 1 + len(rawPayload)
	totalBytes := 4 + chunkLen
	sectorsNeeded := (totalBytes + sectorSize - 1) / sectorSize

	header[idx*4+0] = 0
	header[idx*4+1] = 0
	header[idx*4+2] = 2 // offset = sector 2 (first data sector)
	header[idx*4+3] = byte(sectorsNeeded)

	tsBase := entriesPerFile * 4
	binary.BigEndian.PutUint32(header[tsBase+idx*4:tsBase+idx*4+4], 1700000000)

	if _, err := ws.Write(header); err != nil {
		t.Fatal(err)
	}

	data := make([]byte, sectorsNeeded*sectorSize)
	binary.BigEndian.PutUint32(data[0:4], uint32(chunkLen))
	data[4] = compression
	copy(data[5:], rawPayload)
	if _, err := ws.Write(data); err != nil {
		t.Fatal(err)
	}

	br, err := ws.BytesReader()
	if err != nil {
		t.Fatal(err)
	}
	return br
}

func TestReadChunkZlib(t *testing.T) {
	raw := sampleChunkNBT(t)
	payload := zlibCompress(t, raw)
	br := buildRegion(t, 3, 4, compressionZlib, payload)

	reg, err := NewReader(br, int64(br.Len()), t.TempDir())
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	if !reg.HasChunk(3, 4) {
		t.Fatal("HasChunk(3,4) = false, want true")
	}

	doc, err := reg.ReadChunkDocument(3, 4)
	if err != nil {
		t.Fatalf("ReadChunkDocument: %v", err)
	}
	xPosNode, ok := doc.Root.Child("xPos")
	if !ok {
		t.Fatal("xPos missing")
	}
	if v, err := xPosNode.AsInt(); err != nil || v != 3 {
		t.Errorf("xPos = %d, %v, want 3, nil", v, err)
	}
}

func TestReadChunkNoSuchChunk(t *testing.T) {
	br := buildRegion(t, 3, 4, compressionZlib, zlibCompress(t, sampleChunkNBT(t)))
	reg, err := NewReader(br, int64(br.Len()), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if reg.HasChunk(0, 0) {
		t.Fatal("HasChunk(0,0) = true, want false")
	}
	_, err = reg.ReadChunk(0, 0)
	if err == nil {
		t.Fatal("expected NoSuchChunk error")
	}
	var re *Error
	if !asRegionError(err, &re) {
		t.Fatalf("error is not *Error: %v", err)
	}
	if re.Kind != ErrNoSuchChunk {
		t.Errorf("Kind = %v, want NoSuchChunk", re.Kind)
	}
}

func asRegionError(err error, target **Error) bool {
	if re, ok := err.(*Error); ok {
		*target = re
		return true
	}
	return false
}

func TestReadChunkCorruptHeaderOffsetBeyondFile(t *testing.T) {
	header := make([]byte, 2*sectorSize)
	idx := index(1, 1)
	header[idx*4+2] = 200 // offset far beyond a header-only file
	header[idx*4+3] = 1

	ws := &writerseeker.WriterSeeker{}
	if _, err := ws.Write(header); err != nil {
		t.Fatal(err)
	}
	br, err := ws.BytesReader()
	if err != nil {
		t.Fatal(err)
	}

	reg, err := NewReader(br, int64(br.Len()), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = reg.ReadChunk(1, 1)
	if err == nil {
		t.Fatal("expected CorruptHeader error")
	}
	var re *Error
	if !asRegionError(err, &re) || re.Kind != ErrCorruptHeader {
		t.Fatalf("error = %v, want CorruptHeader", err)
	}
}

func TestScanDetectsOverlap(t *testing.T) {
	header := make([]byte, 2*sectorSize)
	// Two entries with overlapping runs: sectors [2,5) and [3,5).
	idxA := index(0, 0)
	header[idxA*4+2] = 2
	header[idxA*4+3] = 3
	idxB := index(1, 0)
	header[idxB*4+2] = 3
	header[idxB*4+3] = 2

	data := make([]byte, 5*sectorSize)
	full := append(append([]byte{}, header...), data...)

	reg, err := NewReader(bytes.NewReader(full), int64(len(full)), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	findings := reg.Scan()
	var sawOverlap bool
	for _, f := range findings {
		if f.Kind == ErrSectorOverlap {
			sawOverlap = true
		}
	}
	if !sawOverlap {
		t.Errorf("Scan() = %+v, want a SectorOverlap finding", findings)
	}
}

func TestScanDetectsOffsetIntoHeader(t *testing.T) {
	header := make([]byte, 2*sectorSize)
	idx := index(5, 5)
	header[idx*4+2] = 1 // sector 1 is still inside the 2-sector header
	header[idx*4+3] = 1

	data := make([]byte, 3*sectorSize)
	full := append(append([]byte{}, header...), data...)

	reg, err := NewReader(bytes.NewReader(full), int64(len(full)), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	findings := reg.Scan()
	if len(findings) != 1 || findings[0].Kind != ErrCorruptHeader {
		t.Errorf("Scan() = %+v, want one CorruptHeader finding", findings)
	}
}
