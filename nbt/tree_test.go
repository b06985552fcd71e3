package nbt

import "testing"

func TestCompoundSetPreservesInsertionOrder(t *testing.T) {
	c := NewCompound()
	must(t, c.SetInt("a", 1))
	must(t, c.SetInt("b", 2))
	must(t, c.SetInt("c", 3))

	names, err := c.Names()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestCompoundSetReplaceKeepsPosition(t *testing.T) {
	c := NewCompound()
	must(t, c.SetInt("a", 1))
	must(t, c.SetInt("b", 2))
	must(t, c.SetInt("a", 99)) // replace, not re-append

	names, _ := c.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}
	child, ok := c.Child("a")
	if !ok {
		t.Fatal("child a not found")
	}
	v, err := child.AsInt()
	if err != nil || v != 99 {
		t.Fatalf("child a = %d, %v, want 99, nil", v, err)
	}
}

func TestCompoundDelete(t *testing.T) {
	c := NewCompound()
	must(t, c.SetInt("a", 1))
	must(t, c.SetInt("b", 2))
	must(t, c.Delete("a"))

	names, _ := c.Names()
	if len(names) != 1 || names[0] != "b" {
		t.Fatalf("Names() after delete = %v, want [b]", names)
	}
	if _, ok := c.Child("a"); ok {
		t.Fatal("deleted child a still present")
	}
	// Deleting an absent name is a no-op, not an error.
	if err := c.Delete("nonexistent"); err != nil {
		t.Fatalf("Delete of absent name returned error: %v", err)
	}
}

func TestListLazyElementKindBinding(t *testing.T) {
	l := NewList(KindEnd)
	if k, _ := l.ElementKind(); k != KindEnd {
		t.Fatalf("fresh list element kind = %s, want End", k)
	}
	must(t, l.Append(NewInt(1)))
	if k, _ := l.ElementKind(); k != KindInt {
		t.Fatalf("element kind after first Append = %s, want Int", k)
	}
	if err := l.Append(NewString("nope")); err == nil {
		t.Fatal("expected error appending mismatched kind")
	}
}

func TestListRemoveLastElementKeepsBoundKind(t *testing.T) {
	l := NewList(KindEnd)
	must(t, l.Append(NewInt(1)))
	must(t, l.RemoveIndex(0))

	n, err := l.Len()
	if err != nil || n != 0 {
		t.Fatalf("Len() = %d, %v, want 0, nil", n, err)
	}
	k, err := l.ElementKind()
	if err != nil || k != KindInt {
		t.Fatalf("ElementKind() after emptying = %s, %v, want Int, nil", k, err)
	}
	// The binding persists: a subsequent Append must still match Int.
	if err := l.Append(NewString("nope")); err == nil {
		t.Fatal("expected error appending mismatched kind to emptied-but-bound list")
	}
}

func TestListSetIndex(t *testing.T) {
	l := NewList(KindEnd)
	must(t, l.Append(NewInt(1)))
	must(t, l.Append(NewInt(2)))
	must(t, l.SetIndex(1, NewInt(99)))

	v, err := mustIndexInt(t, l, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 99 {
		t.Fatalf("index 1 = %d, want 99", v)
	}
	if err := l.SetIndex(0, NewString("nope")); err == nil {
		t.Fatal("expected error setting mismatched kind")
	}
}

func mustIndexInt(t *testing.T, l *Node, i int) (int32, error) {
	t.Helper()
	n, err := l.Index(i)
	if err != nil {
		return 0, err
	}
	return n.AsInt()
}

func TestWrongKindAccessorsFail(t *testing.T) {
	n := NewInt(5)
	if _, err := n.AsString(); err == nil {
		t.Fatal("expected WrongKindError")
	}
	var wk *WrongKindError
	_, err := n.AsString()
	if err == nil {
		t.Fatal("expected error")
	}
	if !asWrongKind(err, &wk) {
		t.Fatalf("error is not *WrongKindError: %v", err)
	}
	if wk.Want != KindString || wk.Got != KindInt {
		t.Errorf("WrongKindError = %+v, want Want=String Got=Int", wk)
	}
}

func asWrongKind(err error, target **WrongKindError) bool {
	if wk, ok := err.(*WrongKindError); ok {
		*target = wk
		return true
	}
	return false
}
