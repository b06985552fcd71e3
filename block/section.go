package block

import (
	"golang.org/x/xerrors"

	"github.com/theJ8910/jnbt/nbt"
)

// sectionBlocks decodes one section compound's 4096 block names, dispatching
// on the presence of Palette/BlockStates (modern) versus Blocks (legacy). A
// section with neither is empty (all-air).
func sectionBlocks(section *nbt.Node, dataVersion int) (names [4096]string, empty bool, err error) {
	if palette, ok := section.Child("Palette"); ok {
		states, ok := section.Child("BlockStates")
		if !ok {
			return names, false, xerrors.Errorf("block: section has Palette but no BlockStates")
		}
		return decodeModernSection(palette, states, dataVersion)
	}

	blocksNode, ok := section.Child("Blocks")
	if !ok {
		return names, true, nil
	}
	return decodeLegacySection(section, blocksNode)
}

func decodeLegacySection(section, blocksNode *nbt.Node) (names [4096]string, empty bool, err error) {
	blocks, err := blocksNode.AsByteArray()
	if err != nil {
		return names, false, xerrors.Errorf("block: Blocks: %w", err)
	}
	if len(blocks) != 4096 {
		return names, false, xerrors.Errorf("block: Blocks has %d entries, want 4096", len(blocks))
	}

	var add, data []byte
	if n, ok := section.Child("Add"); ok {
		if add, err = n.AsByteArray(); err != nil {
			return names, false, xerrors.Errorf("block: Add: %w", err)
		}
	}
	if n, ok := section.Child("Data"); ok {
		if data, err = n.AsByteArray(); err != nil {
			return names, false, xerrors.Errorf("block: Data: %w", err)
		}
	}
	return legacySection(blocks, add, data), false, nil
}

func decodeModernSection(palette, states *nbt.Node, dataVersion int) (names [4096]string, empty bool, err error) {
	paletteLen, err := palette.Len()
	if err != nil {
		return names, false, xerrors.Errorf("block: Palette: %w", err)
	}
	if paletteLen == 0 {
		return names, false, xerrors.Errorf("block: Palette is empty")
	}
	entryNames := make([]string, paletteLen)
	for i := 0; i < paletteLen; i++ {
		entry, err := palette.Index(i)
		if err != nil {
			return names, false, xerrors.Errorf("block: Palette[%d]: %w", i, err)
		}
		nameNode, ok := entry.Child("Name")
		if !ok {
			return names, false, xerrors.Errorf("block: Palette[%d] has no Name", i)
		}
		entryNames[i], err = nameNode.AsString()
		if err != nil {
			return names, false, xerrors.Errorf("block: Palette[%d].Name: %w", i, err)
		}
	}

	longs, err := states.AsLongArray()
	if err != nil {
		return names, false, xerrors.Errorf("block: BlockStates: %w", err)
	}
	bits := bitsForPalette(paletteLen)
	indices, err := unpackIndices(longs, bits, dataVersion)
	if err != nil {
		return names, false, err
	}
	for i, idx := range indices {
		if idx < 0 || idx >= paletteLen {
			return names, false, xerrors.Errorf("block: index %d out of range for palette of size %d", idx, paletteLen)
		}
		names[i] = entryNames[idx]
	}
	return names, false, nil
}
