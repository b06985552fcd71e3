package nbt

import "testing"

func TestModifiedUTF8RoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"café",
		"東京", // "Tokyo" in kanji, all in the BMP
		"a\x00b",       // embedded NUL
		"\U0001F600",   // emoji outside the BMP, needs a surrogate pair
		"mix \x00 \U0001F4A9 end",
	}
	for _, s := range cases {
		enc := encodeModifiedUTF8(s)
		dec, err := decodeModifiedUTF8(enc)
		if err != nil {
			t.Fatalf("decodeModifiedUTF8(%q) error: %v", s, err)
		}
		if dec != s {
			t.Errorf("round trip %q -> %x -> %q", s, enc, dec)
		}
	}
}

func TestEncodeNulAsTwoBytes(t *testing.T) {
	enc := encodeModifiedUTF8("\x00")
	want := []byte{0xC0, 0x80}
	if len(enc) != 2 || enc[0] != want[0] || enc[1] != want[1] {
		t.Errorf("encodeModifiedUTF8(NUL) = % x, want % x", enc, want)
	}
}

func TestEncodeSupplementaryAsSixBytes(t *testing.T) {
	enc := encodeModifiedUTF8("\U0001F600")
	if len(enc) != 6 {
		t.Errorf("encodeModifiedUTF8(supplementary) has %d bytes, want 6", len(enc))
	}
}

func TestDecodeInvalidSequences(t *testing.T) {
	cases := [][]byte{
		{0xC0},             // truncated two-byte sequence
		{0xE0, 0x80},       // truncated three-byte sequence
		{0xC0, 0x00},       // bad continuation byte
		{0xFF},             // invalid lead byte
	}
	for _, b := range cases {
		if _, err := decodeModifiedUTF8(b); err == nil {
			t.Errorf("decodeModifiedUTF8(% x) succeeded, want error", b)
		}
	}
}
