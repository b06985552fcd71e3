package block

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/theJ8910/jnbt/nbt"
	"github.com/theJ8910/jnbt/world"
)

// Options controls chunk and dimension decoding.
type Options struct {
	// IncludeAir, when true, emits a Block for every empty-section position
	// too, instead of skipping sections with no stored block data.
	IncludeAir bool

	// DataVersionOverride, when nonzero, is used in place of the chunk's own
	// DataVersion field to select the palette packing variant — useful for
	// chunks from a source that never recorded one.
	DataVersionOverride int
}

// DecodeChunk decodes every section of a chunk document into blocks, in
// deterministic order: ascending section Y, then y, z, x within the
// section.
func DecodeChunk(doc *nbt.Document, opts Options) ([]Block, error) {
	level, ok := doc.Root.Child("Level")
	if !ok {
		level = doc.Root
	}

	dataVersion := opts.DataVersionOverride
	if dataVersion == 0 {
		if dv, ok := doc.Root.Child("DataVersion"); ok {
			if v, err := dv.AsInt(); err == nil {
				dataVersion = int(v)
			}
		}
	}

	chunkX, chunkZ, err := chunkOrigin(level)
	if err != nil {
		return nil, err
	}

	sectionsNode, ok := level.Child("Sections")
	if !ok {
		return nil, nil
	}
	n, err := sectionsNode.Len()
	if err != nil {
		return nil, xerrors.Errorf("block: Sections: %w", err)
	}

	type indexedSection struct {
		y    int
		node *nbt.Node
	}
	sections := make([]indexedSection, 0, n)
	for i := 0; i < n; i++ {
		sec, err := sectionsNode.Index(i)
		if err != nil {
			return nil, xerrors.Errorf("block: Sections[%d]: %w", i, err)
		}
		yNode, ok := sec.Child("Y")
		if !ok {
			continue
		}
		y, err := yNode.AsByte()
		if err != nil {
			return nil, xerrors.Errorf("block: Sections[%d].Y: %w", i, err)
		}
		sections = append(sections, indexedSection{y: int(y), node: sec})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].y < sections[j].y })

	var blocks []Block
	for _, s := range sections {
		if usesPalette(s.node) && dataVersion == 0 {
			return nil, ErrUnsupportedDataVersion
		}
		names, empty, err := sectionBlocks(s.node, dataVersion)
		if err != nil {
			return nil, xerrors.Errorf("block: section Y=%d: %w", s.y, err)
		}
		if empty && !opts.IncludeAir {
			continue
		}
		baseY := s.y * 16
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				for x := 0; x < 16; x++ {
					i := sectionIndex(x, y, z)
					name := names[i]
					if empty {
						name = "minecraft:air"
					}
					blocks = append(blocks, Block{
						X:    chunkX*16 + x,
						Y:    baseY + y,
						Z:    chunkZ*16 + z,
						Name: name,
					})
				}
			}
		}
	}
	return blocks, nil
}

func usesPalette(section *nbt.Node) bool {
	_, ok := section.Child("Palette")
	return ok
}

func chunkOrigin(level *nbt.Node) (int, int, error) {
	xNode, ok := level.Child("xPos")
	if !ok {
		return 0, 0, xerrors.Errorf("block: chunk has no xPos")
	}
	zNode, ok := level.Child("zPos")
	if !ok {
		return 0, 0, xerrors.Errorf("block: chunk has no zPos")
	}
	x, err := xNode.AsInt()
	if err != nil {
		return 0, 0, xerrors.Errorf("block: xPos: %w", err)
	}
	z, err := zNode.AsInt()
	if err != nil {
		return 0, 0, xerrors.Errorf("block: zPos: %w", err)
	}
	return int(x), int(z), nil
}

// ChunkError is one chunk's decode failure encountered during a dimension
// walk. WalkDimension reports it to onError and continues to the next
// chunk rather than aborting.
type ChunkError struct {
	CX, CZ int
	Err    error
}

func (e *ChunkError) Error() string {
	return xerrors.Errorf("block: chunk (%d,%d): %w", e.CX, e.CZ, e.Err).Error()
}

func (e *ChunkError) Unwrap() error { return e.Err }

// WalkDimension decodes every chunk in every region file of a dimension,
// calling emit for each chunk's blocks in region-file order (ascending
// RX then RZ), and onError for any chunk that failed to decode — the walk
// continues to the next chunk rather than aborting.
func WalkDimension(d *world.Dimension, opts Options, emit func(cx, cz int, blocks []Block), onError func(*ChunkError)) error {
	regions, err := d.Regions()
	if err != nil {
		return err
	}
	for _, rf := range regions {
		if err := walkRegionFile(d, rf, opts, emit, onError); err != nil {
			return err
		}
	}
	return nil
}

func walkRegionFile(d *world.Dimension, rf world.RegionFile, opts Options, emit func(cx, cz int, blocks []Block), onError func(*ChunkError)) error {
	reg, err := d.RegionAt(rf.RX, rf.RZ)
	if err != nil {
		return err
	}
	defer reg.Close()

	for localZ := 0; localZ < 32; localZ++ {
		for localX := 0; localX < 32; localX++ {
			cx := rf.RX*32 + localX
			cz := rf.RZ*32 + localZ
			if !reg.HasChunk(cx, cz) {
				continue
			}
			doc, err := reg.ReadChunkDocument(cx, cz)
			if err != nil {
				onError(&ChunkError{CX: cx, CZ: cz, Err: err})
				continue
			}
			blocks, err := DecodeChunk(doc, opts)
			if err != nil {
				onError(&ChunkError{CX: cx, CZ: cz, Err: err})
				continue
			}
			emit(cx, cz, blocks)
		}
	}
	return nil
}
