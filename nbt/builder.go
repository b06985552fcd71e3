package nbt

// Builder sugar: direct (non-chaining) insertion helpers for assembling a
// compound by hand, instead of constructing and Set-ing a Node per field.
// A fluent chaining DSL is deliberately not provided here.

func (n *Node) SetByte(name string, v int8) error      { return n.Set(name, NewByte(v)) }
func (n *Node) SetShort(name string, v int16) error    { return n.Set(name, NewShort(v)) }
func (n *Node) SetInt(name string, v int32) error      { return n.Set(name, NewInt(v)) }
func (n *Node) SetLong(name string, v int64) error     { return n.Set(name, NewLong(v)) }
func (n *Node) SetFloat(name string, v float32) error  { return n.Set(name, NewFloat(v)) }
func (n *Node) SetDouble(name string, v float64) error { return n.Set(name, NewDouble(v)) }
func (n *Node) SetString(name string, v string) error  { return n.Set(name, NewString(v)) }

func (n *Node) SetByteArray(name string, v []byte) error  { return n.Set(name, NewByteArray(v)) }
func (n *Node) SetIntArray(name string, v []int32) error  { return n.Set(name, NewIntArray(v)) }
func (n *Node) SetLongArray(name string, v []int64) error { return n.Set(name, NewLongArray(v)) }

// NewCompoundChild creates an empty compound, inserts it under name, and
// returns it so the caller can keep populating it.
func (n *Node) NewCompoundChild(name string) (*Node, error) {
	child := NewCompound()
	if err := n.Set(name, child); err != nil {
		return nil, err
	}
	return child, nil
}

// NewListChild creates an empty list with the given declared element kind,
// inserts it under name, and returns it.
func (n *Node) NewListChild(name string, elemKind Kind) (*Node, error) {
	child := NewList(elemKind)
	if err := n.Set(name, child); err != nil {
		return nil, err
	}
	return child, nil
}

// The same sugar, rooted at a Document for the common case of populating
// the top-level compound.

func (doc *Document) SetByte(name string, v int8) error      { return doc.Root.SetByte(name, v) }
func (doc *Document) SetShort(name string, v int16) error    { return doc.Root.SetShort(name, v) }
func (doc *Document) SetInt(name string, v int32) error      { return doc.Root.SetInt(name, v) }
func (doc *Document) SetLong(name string, v int64) error     { return doc.Root.SetLong(name, v) }
func (doc *Document) SetFloat(name string, v float32) error  { return doc.Root.SetFloat(name, v) }
func (doc *Document) SetDouble(name string, v float64) error { return doc.Root.SetDouble(name, v) }
func (doc *Document) SetString(name string, v string) error  { return doc.Root.SetString(name, v) }

func (doc *Document) SetByteArray(name string, v []byte) error {
	return doc.Root.SetByteArray(name, v)
}
func (doc *Document) SetIntArray(name string, v []int32) error {
	return doc.Root.SetIntArray(name, v)
}
func (doc *Document) SetLongArray(name string, v []int64) error {
	return doc.Root.SetLongArray(name, v)
}

func (doc *Document) NewCompoundChild(name string) (*Node, error) {
	return doc.Root.NewCompoundChild(name)
}

func (doc *Document) NewListChild(name string, elemKind Kind) (*Node, error) {
	return doc.Root.NewListChild(name, elemKind)
}
