package block

import "strconv"

// sectionIndex is the legacy (and palette) in-section index formula:
// i = y*256 + z*16 + x, for a 16x16x16 section.
func sectionIndex(x, y, z int) int {
	return y*256 + z*16 + x
}

// nibble reads the 4-bit value at logical index i from a packed nibble
// array: even i uses the low nibble of arr[i>>1], odd i the high nibble.
func nibble(arr []byte, i int) byte {
	b := arr[i>>1]
	if i&1 == 0 {
		return b & 0x0F
	}
	return (b >> 4) & 0x0F
}

// legacySection decodes a pre-palette section's Blocks/Add/Data arrays into
// 4096 block names, index-for-index. blocks must be exactly 4096 bytes; add
// and data, if non-nil,
// must each be exactly 2048 bytes (one nibble per block).
//
// jnbt has no built-in numeric-ID-to-name table, so legacy names are
// rendered as "legacy:<id>" or "legacy:<id>:<data>" when the metadata
// nibble is nonzero, rather than a namespaced block name.
func legacySection(blocks, add, data []byte) [4096]string {
	var names [4096]string
	for i := 0; i < 4096; i++ {
		id := int(blocks[i])
		if add != nil {
			id |= int(nibble(add, i)) << 8
		}
		var meta byte
		if data != nil {
			meta = nibble(data, i)
		}
		if meta == 0 {
			names[i] = "legacy:" + strconv.Itoa(id)
		} else {
			names[i] = "legacy:" + strconv.Itoa(id) + ":" + strconv.Itoa(int(meta))
		}
	}
	return names
}
