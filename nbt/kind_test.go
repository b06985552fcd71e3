package nbt

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{KindEnd, "End"},
		{KindByte, "Byte"},
		{KindCompound, "Compound"},
		{KindLongArray, "LongArray"},
		{Kind(200), "Kind(200)"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", byte(c.k), got, c.want)
		}
	}
}

func TestValidKind(t *testing.T) {
	for b := 0; b <= 12; b++ {
		if !ValidKind(byte(b)) {
			t.Errorf("ValidKind(%d) = false, want true", b)
		}
	}
	for _, b := range []byte{13, 42, 255} {
		if ValidKind(b) {
			t.Errorf("ValidKind(%d) = true, want false", b)
		}
	}
}

func TestIsContainer(t *testing.T) {
	for _, k := range []Kind{KindList, KindCompound} {
		if !k.IsContainer() {
			t.Errorf("%s.IsContainer() = false, want true", k)
		}
	}
	for _, k := range []Kind{KindByte, KindString, KindIntArray} {
		if k.IsContainer() {
			t.Errorf("%s.IsContainer() = true, want false", k)
		}
	}
}

func TestIsPrimitiveArray(t *testing.T) {
	for _, k := range []Kind{KindByteArray, KindIntArray, KindLongArray} {
		if !k.IsPrimitiveArray() {
			t.Errorf("%s.IsPrimitiveArray() = false, want true", k)
		}
	}
	for _, k := range []Kind{KindByte, KindList, KindString} {
		if k.IsPrimitiveArray() {
			t.Errorf("%s.IsPrimitiveArray() = true, want false", k)
		}
	}
}

func TestDefaultEmpty(t *testing.T) {
	if k := DefaultEmpty(KindList).kind; k != KindList {
		t.Fatalf("DefaultEmpty(KindList).kind = %s, want List", k)
	}
	elem, err := DefaultEmpty(KindList).ElementKind()
	if err != nil {
		t.Fatal(err)
	}
	if elem != KindEnd {
		t.Errorf("DefaultEmpty(KindList) element kind = %s, want End", elem)
	}
	if s, _ := DefaultEmpty(KindString).AsString(); s != "" {
		t.Errorf("DefaultEmpty(KindString) = %q, want empty", s)
	}
}
