package world

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/theJ8910/jnbt/nbt"
)

const testSectorSize = 4096

// writeRegionFile assembles a minimal single-chunk .mca/.mcr file at path,
// placing the chunk at local coordinates (localX,localZ) with a zlib
// compressed payload.
func writeRegionFile(t *testing.T, path string, localX, localZ int, payload []byte) {
	t.Helper()
	header := make([]byte, 2*testSectorSize)
	idx := localX + localZ*32
	header[idx*4+2] = 2 // offset = sector 2
	chunkLen := 1 + len(payload)
	totalBytes := 4 + chunkLen
	sectorsNeeded := (totalBytes + testSectorSize - 1) / testSectorSize
	header[idx*4+3] = byte(sectorsNeeded)

	data := make([]byte, sectorsNeeded*testSectorSize)
	binary.BigEndian.PutUint32(data[0:4], uint32(chunkLen))
	data[4] = 2 // zlib
	copy(data[5:], payload)

	full := append(header, data...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, full, 0o644); err != nil {
		t.Fatal(err)
	}
}

func zlibBytes(t *testing.T, raw []byte) []byte {
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

func sampleChunkBytes(t *testing.T, x, z int32) []byte {
	t.Helper()
	doc := nbt.NewDocument("Level")
	if err := doc.SetInt("xPos", x); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetInt("zPos", z); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := nbt.WriteTree(&buf, doc); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDimensionsEnumeratesOverworldAndNether(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "DIM-1", "region"), 0o755); err != nil {
		t.Fatal(err)
	}

	w := Open(root)
	dims, err := w.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	var sawOverworld, sawNether bool
	for _, d := range dims {
		switch d.Kind {
		case DimensionOverworld:
			sawOverworld = true
		case DimensionNether:
			sawNether = true
		}
	}
	if !sawOverworld || !sawNether {
		t.Fatalf("Dimensions = %+v, want overworld and nether", dims)
	}

	d, err := w.Dimension("nether")
	if err != nil {
		t.Fatalf("Dimension(nether): %v", err)
	}
	if d.Kind != DimensionNether {
		t.Errorf("Kind = %v, want DimensionNether", d.Kind)
	}
}

func TestRegionsPrefersAnvilOverLegacy(t *testing.T) {
	root := t.TempDir()
	regionDir := filepath.Join(root, "region")
	if err := os.MkdirAll(regionDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(regionDir, "r.0.0.mcr"), []byte("legacy"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(regionDir, "r.0.0.mca"), []byte("anvil"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := &Dimension{Kind: DimensionOverworld, dir: root}
	files, err := d.Regions()
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Regions = %+v, want exactly one entry", files)
	}
	if files[0].Legacy {
		t.Errorf("Regions()[0].Legacy = true, want the .mca entry to win")
	}
}

func TestChunkByWorldCoordinates(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "DIM-1", "region"), 0o755); err != nil {
		t.Fatal(err)
	}
	raw := sampleChunkBytes(t, 5, 5)
	writeRegionFile(t, filepath.Join(root, "DIM-1", "region", "r.0.0.mca"), 5, 5, zlibBytes(t, raw))

	w := Open(root)
	d, err := w.Dimension("nether")
	if err != nil {
		t.Fatalf("Dimension(nether): %v", err)
	}

	doc, err := d.Chunk(5, 5)
	if err != nil {
		t.Fatalf("Chunk(5,5): %v", err)
	}
	xPos, ok := doc.Root.Child("xPos")
	if !ok {
		t.Fatal("xPos missing")
	}
	if v, err := xPos.AsInt(); err != nil || v != 5 {
		t.Errorf("xPos = %d, %v, want 5, nil", v, err)
	}
}

func TestEuclidDiv(t *testing.T) {
	cases := []struct{ a, n, want int }{
		{5, 32, 0},
		{31, 32, 0},
		{32, 32, 1},
		{-1, 32, -1},
		{-32, 32, -1},
		{-33, 32, -2},
	}
	for _, c := range cases {
		if got := euclidDiv(c.a, c.n); got != c.want {
			t.Errorf("euclidDiv(%d,%d) = %d, want %d", c.a, c.n, got, c.want)
		}
	}
}
