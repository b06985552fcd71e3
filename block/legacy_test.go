package block

import "testing"

func TestNibbleEvenOdd(t *testing.T) {
	arr := []byte{0x21, 0x43}
	cases := []struct {
		i    int
		want byte
	}{
		{0, 0x1}, {1, 0x2}, {2, 0x3}, {3, 0x4},
	}
	for _, c := range cases {
		if got := nibble(arr, c.i); got != c.want {
			t.Errorf("nibble(arr,%d) = %x, want %x", c.i, got, c.want)
		}
	}
}

func TestLegacySectionBasic(t *testing.T) {
	blocks := make([]byte, 4096)
	blocks[sectionIndex(1, 2, 3)] = 5
	names := legacySection(blocks, nil, nil)
	if names[sectionIndex(1, 2, 3)] != "legacy:5" {
		t.Errorf("names[..] = %q, want legacy:5", names[sectionIndex(1, 2, 3)])
	}
	if names[0] != "legacy:0" {
		t.Errorf("names[0] = %q, want legacy:0", names[0])
	}
}

func TestLegacySectionWithAddAndData(t *testing.T) {
	blocks := make([]byte, 4096)
	add := make([]byte, 2048)
	data := make([]byte, 2048)

	i := sectionIndex(0, 0, 0)
	blocks[i] = 0xFF           // low 8 bits of id
	setNibble(add, i, 0x1)     // high 4 bits -> id = 0x1FF = 511
	setNibble(data, i, 0x3)    // metadata

	names := legacySection(blocks, add, data)
	if names[i] != "legacy:511:3" {
		t.Errorf("names[i] = %q, want legacy:511:3", names[i])
	}
}

func setNibble(arr []byte, i int, v byte) {
	if i&1 == 0 {
		arr[i>>1] = (arr[i>>1] &^ 0x0F) | (v & 0x0F)
	} else {
		arr[i>>1] = (arr[i>>1] &^ 0xF0) | ((v & 0x0F) << 4)
	}
}
