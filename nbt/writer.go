package nbt

import "io"

type frameKind int

const (
	frameCompound frameKind = iota
	frameList
)

type frame struct {
	kind         frameKind
	listElemKind Kind  // only meaningful for frameList
	remaining    int32 // only meaningful for frameList
}

// Writer is the producer-facing streaming writer: a state machine
// mirroring the parser's events, validating structural well-formedness as
// tags are pushed. It never buffers: bytes are emitted as soon as they are
// fully determined.
type Writer struct {
	w     *writer
	stack []frame
}

// NewWriter wraps w for event-driven NBT encoding.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: newWriter(w)}
}

func (wr *Writer) topFrame() (*frame, error) {
	if len(wr.stack) == 0 {
		return nil, newStructuralError("no open container")
	}
	return &wr.stack[len(wr.stack)-1], nil
}

// Start begins the document: pushes the root COMPOUND frame and emits its
// kind byte and name.
func (wr *Writer) Start(rootName string) error {
	if len(wr.stack) != 0 {
		return newStructuralError("Start called with %d frame(s) already open", len(wr.stack))
	}
	if err := wr.w.writeByteVal(byte(KindCompound)); err != nil {
		return err
	}
	if err := wr.w.writeString(rootName); err != nil {
		return err
	}
	wr.stack = append(wr.stack, frame{kind: frameCompound})
	return nil
}

// End requires the frame stack to be empty, i.e. every opened container
// was properly closed with EndCompound/EndList, including the root.
func (wr *Writer) End() error {
	if len(wr.stack) != 0 {
		return newStructuralError("End called with %d frame(s) still open", len(wr.stack))
	}
	return nil
}

// emitValueHeader validates and (at compound scope) emits the kind byte
// and name that precede every tag's payload, or (at list scope) validates
// the kind against the list's declared element kind and decrements its
// remaining-element counter. name must be non-nil at compound scope and
// nil at list scope (list elements are never named).
func (wr *Writer) emitValueHeader(kind Kind, name *string) error {
	f, err := wr.topFrame()
	if err != nil {
		return err
	}
	switch f.kind {
	case frameCompound:
		if name == nil {
			return newStructuralError("%s tag at compound scope requires a name", kind)
		}
		if err := wr.w.writeByteVal(byte(kind)); err != nil {
			return err
		}
		return wr.w.writeString(*name)

	case frameList:
		if name != nil {
			return newStructuralError("%s tag at list scope must not be named", kind)
		}
		if kind != f.listElemKind {
			return newStructuralError("list element kind mismatch: list holds %s, got %s", f.listElemKind, kind)
		}
		if f.remaining <= 0 {
			return newStructuralError("list already holds its declared element count")
		}
		f.remaining--
		return nil

	default:
		return newStructuralError("unknown frame kind")
	}
}

func (wr *Writer) Byte(name *string, v int8) error {
	if err := wr.emitValueHeader(KindByte, name); err != nil {
		return err
	}
	return wr.w.writeByteVal(byte(v))
}

func (wr *Writer) Short(name *string, v int16) error {
	if err := wr.emitValueHeader(KindShort, name); err != nil {
		return err
	}
	return wr.w.writeI16(v)
}

func (wr *Writer) Int(name *string, v int32) error {
	if err := wr.emitValueHeader(KindInt, name); err != nil {
		return err
	}
	return wr.w.writeI32(v)
}

func (wr *Writer) Long(name *string, v int64) error {
	if err := wr.emitValueHeader(KindLong, name); err != nil {
		return err
	}
	return wr.w.writeI64(v)
}

func (wr *Writer) Float(name *string, v float32) error {
	if err := wr.emitValueHeader(KindFloat, name); err != nil {
		return err
	}
	return wr.w.writeF32(v)
}

func (wr *Writer) Double(name *string, v float64) error {
	if err := wr.emitValueHeader(KindDouble, name); err != nil {
		return err
	}
	return wr.w.writeF64(v)
}

func (wr *Writer) String(name *string, v string) error {
	if err := wr.emitValueHeader(KindString, name); err != nil {
		return err
	}
	return wr.w.writeString(v)
}

func (wr *Writer) ByteArray(name *string, v []byte) error {
	if err := wr.emitValueHeader(KindByteArray, name); err != nil {
		return err
	}
	if err := wr.w.writeI32(int32(len(v))); err != nil {
		return err
	}
	return wr.w.writeBytes(v)
}

func (wr *Writer) IntArray(name *string, v []int32) error {
	if err := wr.emitValueHeader(KindIntArray, name); err != nil {
		return err
	}
	return wr.w.writeI32Array(v)
}

func (wr *Writer) LongArray(name *string, v []int64) error {
	if err := wr.emitValueHeader(KindLongArray, name); err != nil {
		return err
	}
	return wr.w.writeI64Array(v)
}

// StartList emits a list header (element kind + declared length) and
// pushes a LIST frame; subsequent value calls must match elemKind exactly
// until length elements have been emitted.
func (wr *Writer) StartList(name *string, elemKind Kind, length int32) error {
	if length < 0 {
		return newStructuralError("list length %d is negative", length)
	}
	if err := wr.emitValueHeader(KindList, name); err != nil {
		return err
	}
	if err := wr.w.writeByteVal(byte(elemKind)); err != nil {
		return err
	}
	if err := wr.w.writeI32(length); err != nil {
		return err
	}
	wr.stack = append(wr.stack, frame{kind: frameList, listElemKind: elemKind, remaining: length})
	return nil
}

// EndList requires every declared element to have been emitted, then pops
// the LIST frame.
func (wr *Writer) EndList() error {
	f, err := wr.topFrame()
	if err != nil {
		return err
	}
	if f.kind != frameList {
		return newStructuralError("EndList called but innermost open container is not a list")
	}
	if f.remaining != 0 {
		return newStructuralError("EndList called with %d element(s) still undeclared", f.remaining)
	}
	wr.stack = wr.stack[:len(wr.stack)-1]
	return nil
}

// StartCompound emits a compound header and pushes a COMPOUND frame.
func (wr *Writer) StartCompound(name *string) error {
	if err := wr.emitValueHeader(KindCompound, name); err != nil {
		return err
	}
	wr.stack = append(wr.stack, frame{kind: frameCompound})
	return nil
}

// EndCompound emits the terminating END tag and pops the COMPOUND frame.
func (wr *Writer) EndCompound() error {
	f, err := wr.topFrame()
	if err != nil {
		return err
	}
	if f.kind != frameCompound {
		return newStructuralError("EndCompound called but innermost open container is not a compound")
	}
	if err := wr.w.writeByteVal(byte(KindEnd)); err != nil {
		return err
	}
	wr.stack = wr.stack[:len(wr.stack)-1]
	return nil
}
