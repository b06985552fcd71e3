// Package nbt implements Minecraft's Named Binary Tag format: a streaming
// parser and writer that share one grammar, plus an in-memory tree model
// built on top of the same parser.
package nbt

import "fmt"

// Kind is the wire-format tag type discriminator (§3 of the format).
type Kind byte

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

// kindNames is consulted by Kind.String.
var kindNames = [...]string{
	KindEnd:       "End",
	KindByte:      "Byte",
	KindShort:     "Short",
	KindInt:       "Int",
	KindLong:      "Long",
	KindFloat:     "Float",
	KindDouble:    "Double",
	KindByteArray: "ByteArray",
	KindString:    "String",
	KindList:      "List",
	KindCompound:  "Compound",
	KindIntArray:  "IntArray",
	KindLongArray: "LongArray",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// ValidKind reports whether b is one of the 13 defined wire kinds (0..12).
func ValidKind(b byte) bool {
	return b <= byte(KindLongArray)
}

// IsContainer reports whether k nests other tags (LIST, COMPOUND).
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindCompound
}

// IsPrimitiveArray reports whether k is one of the three bulk-primitive
// array kinds (BYTE_ARRAY, INT_ARRAY, LONG_ARRAY).
func (k Kind) IsPrimitiveArray() bool {
	return k == KindByteArray || k == KindIntArray || k == KindLongArray
}

// DefaultEmpty returns the zero value a Node of kind k holds before any
// data is assigned to it. For containers this is an empty slice/compound;
// for primitives it is the Go zero value.
func DefaultEmpty(k Kind) *Node {
	switch k {
	case KindByte:
		return NewByte(0)
	case KindShort:
		return NewShort(0)
	case KindInt:
		return NewInt(0)
	case KindLong:
		return NewLong(0)
	case KindFloat:
		return NewFloat(0)
	case KindDouble:
		return NewDouble(0)
	case KindByteArray:
		return NewByteArray(nil)
	case KindString:
		return NewString("")
	case KindList:
		return NewList(KindEnd)
	case KindCompound:
		return NewCompound()
	case KindIntArray:
		return NewIntArray(nil)
	case KindLongArray:
		return NewLongArray(nil)
	default:
		return &Node{kind: KindEnd}
	}
}
