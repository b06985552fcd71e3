package nbt

import (
	"golang.org/x/exp/slices"
)

// Node is the in-memory tree model: a tagged union over the 13 wire
// kinds. The zero Node is not meaningful; use the New* constructors or
// DefaultEmpty.
type Node struct {
	kind Kind

	i8  int8
	i16 int16
	i32 int32
	i64 int64
	f32 float32
	f64 float64
	str string

	byteArr []byte
	i32Arr  []int32
	i64Arr  []int64

	list         []*Node
	listElemKind Kind

	compound *compound
}

// compound is an order-preserving name -> Node map: order records insertion
// order for stable round-tripping, byName gives O(1) lookup.
type compound struct {
	order  []string
	byName map[string]*Node
}

func newCompoundData() *compound {
	return &compound{byName: make(map[string]*Node)}
}

// Kind reports the node's tag kind.
func (n *Node) Kind() Kind { return n.kind }

func NewByte(v int8) *Node       { return &Node{kind: KindByte, i8: v} }
func NewShort(v int16) *Node     { return &Node{kind: KindShort, i16: v} }
func NewInt(v int32) *Node       { return &Node{kind: KindInt, i32: v} }
func NewLong(v int64) *Node      { return &Node{kind: KindLong, i64: v} }
func NewFloat(v float32) *Node   { return &Node{kind: KindFloat, f32: v} }
func NewDouble(v float64) *Node  { return &Node{kind: KindDouble, f64: v} }
func NewString(v string) *Node   { return &Node{kind: KindString, str: v} }

func NewByteArray(v []byte) *Node {
	return &Node{kind: KindByteArray, byteArr: append([]byte(nil), v...)}
}

func NewIntArray(v []int32) *Node {
	return &Node{kind: KindIntArray, i32Arr: append([]int32(nil), v...)}
}

func NewLongArray(v []int64) *Node {
	return &Node{kind: KindLongArray, i64Arr: append([]int64(nil), v...)}
}

// NewList creates an empty list. elemKind may be KindEnd to mean
// "uninitialized": the element kind then binds lazily on the first Append.
func NewList(elemKind Kind) *Node {
	return &Node{kind: KindList, listElemKind: elemKind}
}

// NewCompound creates an empty compound.
func NewCompound() *Node {
	return &Node{kind: KindCompound, compound: newCompoundData()}
}

func (n *Node) checkKind(want Kind) error {
	if n.kind != want {
		return newWrongKind(want, n.kind)
	}
	return nil
}

// AsByte, ..., AsDouble return the scalar payload, failing with
// WrongKindError if n is not of the matching kind.
func (n *Node) AsByte() (int8, error) {
	if err := n.checkKind(KindByte); err != nil {
		return 0, err
	}
	return n.i8, nil
}

func (n *Node) AsShort() (int16, error) {
	if err := n.checkKind(KindShort); err != nil {
		return 0, err
	}
	return n.i16, nil
}

func (n *Node) AsInt() (int32, error) {
	if err := n.checkKind(KindInt); err != nil {
		return 0, err
	}
	return n.i32, nil
}

func (n *Node) AsLong() (int64, error) {
	if err := n.checkKind(KindLong); err != nil {
		return 0, err
	}
	return n.i64, nil
}

func (n *Node) AsFloat() (float32, error) {
	if err := n.checkKind(KindFloat); err != nil {
		return 0, err
	}
	return n.f32, nil
}

func (n *Node) AsDouble() (float64, error) {
	if err := n.checkKind(KindDouble); err != nil {
		return 0, err
	}
	return n.f64, nil
}

func (n *Node) AsString() (string, error) {
	if err := n.checkKind(KindString); err != nil {
		return "", err
	}
	return n.str, nil
}

func (n *Node) AsByteArray() ([]byte, error) {
	if err := n.checkKind(KindByteArray); err != nil {
		return nil, err
	}
	return n.byteArr, nil
}

func (n *Node) AsIntArray() ([]int32, error) {
	if err := n.checkKind(KindIntArray); err != nil {
		return nil, err
	}
	return n.i32Arr, nil
}

func (n *Node) AsLongArray() ([]int64, error) {
	if err := n.checkKind(KindLongArray); err != nil {
		return nil, err
	}
	return n.i64Arr, nil
}

// --- Compound accessors & mutators ---

// Child looks up a named child of a COMPOUND node.
func (n *Node) Child(name string) (*Node, bool) {
	if n.kind != KindCompound {
		return nil, false
	}
	c, ok := n.compound.byName[name]
	return c, ok
}

// Names returns a COMPOUND's child names in insertion order.
func (n *Node) Names() ([]string, error) {
	if err := n.checkKind(KindCompound); err != nil {
		return nil, err
	}
	return slices.Clone(n.compound.order), nil
}

// Set inserts child under name, or replaces the existing child of that
// name, preserving that name's original position on replace.
func (n *Node) Set(name string, child *Node) error {
	if err := n.checkKind(KindCompound); err != nil {
		return err
	}
	if _, exists := n.compound.byName[name]; !exists {
		n.compound.order = append(n.compound.order, name)
	}
	n.compound.byName[name] = child
	return nil
}

// Delete removes a named child, if present. Deleting an absent name is a
// no-op.
func (n *Node) Delete(name string) error {
	if err := n.checkKind(KindCompound); err != nil {
		return err
	}
	if _, exists := n.compound.byName[name]; !exists {
		return nil
	}
	delete(n.compound.byName, name)
	if i := slices.Index(n.compound.order, name); i >= 0 {
		n.compound.order = slices.Delete(n.compound.order, i, i+1)
	}
	return nil
}

// --- List accessors & mutators ---

// ElementKind reports a LIST's declared element kind (KindEnd if the list
// is still uninitialized and empty).
func (n *Node) ElementKind() (Kind, error) {
	if err := n.checkKind(KindList); err != nil {
		return 0, err
	}
	return n.listElemKind, nil
}

// Len reports the number of elements in a LIST or children in a COMPOUND.
func (n *Node) Len() (int, error) {
	switch n.kind {
	case KindList:
		return len(n.list), nil
	case KindCompound:
		return len(n.compound.order), nil
	default:
		return 0, newWrongKind(KindList, n.kind)
	}
}

// Index returns the i-th element of a LIST.
func (n *Node) Index(i int) (*Node, error) {
	if err := n.checkKind(KindList); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(n.list) {
		return nil, newStructuralError("list index %d out of range (len %d)", i, len(n.list))
	}
	return n.list[i], nil
}

// Append adds child to the end of a LIST. If the list is still
// uninitialized (element kind END, no elements yet), child's kind binds as
// the list's element kind, lazily, on this first insertion. Otherwise
// child's kind must match the list's element kind.
func (n *Node) Append(child *Node) error {
	if err := n.checkKind(KindList); err != nil {
		return err
	}
	if len(n.list) == 0 && n.listElemKind == KindEnd {
		n.listElemKind = child.kind
	} else if child.kind != n.listElemKind {
		return newStructuralError("list element kind mismatch: list holds %s, got %s", n.listElemKind, child.kind)
	}
	n.list = append(n.list, child)
	return nil
}

// SetIndex replaces the i-th element of a LIST, verifying the new node's
// kind still matches the list's element kind.
func (n *Node) SetIndex(i int, child *Node) error {
	if err := n.checkKind(KindList); err != nil {
		return err
	}
	if i < 0 || i >= len(n.list) {
		return newStructuralError("list index %d out of range (len %d)", i, len(n.list))
	}
	if child.kind != n.listElemKind {
		return newStructuralError("list element kind mismatch: list holds %s, got %s", n.listElemKind, child.kind)
	}
	n.list[i] = child
	return nil
}

// RemoveIndex removes the i-th element of a LIST. Removing the last
// element does not reset the list's bound element kind: an emptied list
// must retain the kind it was written with.
func (n *Node) RemoveIndex(i int) error {
	if err := n.checkKind(KindList); err != nil {
		return err
	}
	if i < 0 || i >= len(n.list) {
		return newStructuralError("list index %d out of range (len %d)", i, len(n.list))
	}
	n.list = slices.Delete(n.list, i, i+1)
	return nil
}
