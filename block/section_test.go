package block

import (
	"testing"

	"github.com/theJ8910/jnbt/nbt"
)

func TestSectionBlocksLegacy(t *testing.T) {
	section := nbt.NewCompound()
	blocks := make([]byte, 4096)
	blocks[sectionIndex(0, 0, 0)] = 7
	if err := section.SetByteArray("Blocks", blocks); err != nil {
		t.Fatal(err)
	}

	names, empty, err := sectionBlocks(section, 0)
	if err != nil {
		t.Fatalf("sectionBlocks: %v", err)
	}
	if empty {
		t.Fatal("sectionBlocks reported empty for a section with Blocks")
	}
	if names[sectionIndex(0, 0, 0)] != "legacy:7" {
		t.Errorf("names[0] = %q, want legacy:7", names[sectionIndex(0, 0, 0)])
	}
}

func TestSectionBlocksEmpty(t *testing.T) {
	section := nbt.NewCompound()
	_, empty, err := sectionBlocks(section, 0)
	if err != nil {
		t.Fatalf("sectionBlocks: %v", err)
	}
	if !empty {
		t.Error("sectionBlocks reported non-empty for a section with neither Blocks nor Palette")
	}
}

func buildPaletteEntry(name string) *nbt.Node {
	c := nbt.NewCompound()
	_ = c.SetString("Name", name)
	return c
}

func TestSectionBlocksModern(t *testing.T) {
	paletteNames := []string{"minecraft:air", "minecraft:stone", "minecraft:dirt"}
	pattern := makePattern(len(paletteNames))
	bits := bitsForPalette(len(paletteNames))
	longs := packNonStraddling(pattern, bits)

	palette := nbt.NewList(nbt.KindCompound)
	for _, name := range paletteNames {
		if err := palette.Append(buildPaletteEntry(name)); err != nil {
			t.Fatal(err)
		}
	}

	section := nbt.NewCompound()
	if err := section.Set("Palette", palette); err != nil {
		t.Fatal(err)
	}
	if err := section.SetLongArray("BlockStates", longs); err != nil {
		t.Fatal(err)
	}

	names, empty, err := sectionBlocks(section, nonStraddlingDataVersionThreshold)
	if err != nil {
		t.Fatalf("sectionBlocks: %v", err)
	}
	if empty {
		t.Fatal("sectionBlocks reported empty for a populated palette section")
	}
	for i, idx := range pattern {
		if names[i] != paletteNames[idx] {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], paletteNames[idx])
		}
	}
}
