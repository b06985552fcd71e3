package nbt

import "io"

// treeBuilder implements Handler, materializing a parsed document into a
// Node tree by registering itself as a handler into the streaming parser,
// so one parser implementation serves both the event-push and tree-building
// styles.
type treeBuilder struct {
	BaseHandler

	rootName string
	root     *Node
	stack    []buildFrame
	warnings []string
	err      error
}

type buildFrame struct {
	node *Node
	name *string // name to attach this frame's node under once closed; nil if the parent is a list
}

func (tb *treeBuilder) fail(err error) Control {
	tb.err = err
	return Abort
}

func (tb *treeBuilder) attach(name *string, child *Node) error {
	if len(tb.stack) == 0 {
		return newStructuralError("no open container to attach %s into", child.kind)
	}
	parent := tb.stack[len(tb.stack)-1].node
	switch parent.kind {
	case KindCompound:
		if name == nil {
			return newStructuralError("compound child of kind %s arrived without a name", child.kind)
		}
		return parent.Set(*name, child)
	case KindList:
		return parent.Append(child)
	default:
		return newStructuralError("cannot attach into parent of kind %s", parent.kind)
	}
}

func (tb *treeBuilder) Start(rootName string) Control {
	tb.rootName = rootName
	tb.stack = append(tb.stack, buildFrame{node: NewCompound()})
	return Continue
}

func (tb *treeBuilder) End() Control {
	f := tb.stack[len(tb.stack)-1]
	tb.stack = tb.stack[:len(tb.stack)-1]
	tb.root = f.node
	return Continue
}

func (tb *treeBuilder) Warning(msg string) {
	tb.warnings = append(tb.warnings, msg)
}

func (tb *treeBuilder) Byte(name *string, v int8) Control {
	if err := tb.attach(name, NewByte(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) Short(name *string, v int16) Control {
	if err := tb.attach(name, NewShort(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) Int(name *string, v int32) Control {
	if err := tb.attach(name, NewInt(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) Long(name *string, v int64) Control {
	if err := tb.attach(name, NewLong(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) Float(name *string, v float32) Control {
	if err := tb.attach(name, NewFloat(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) Double(name *string, v float64) Control {
	if err := tb.attach(name, NewDouble(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) String(name *string, v string) Control {
	if err := tb.attach(name, NewString(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) ByteArray(name *string, v []byte) Control {
	if err := tb.attach(name, NewByteArray(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) IntArray(name *string, v []int32) Control {
	if err := tb.attach(name, NewIntArray(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) LongArray(name *string, v []int64) Control {
	if err := tb.attach(name, NewLongArray(v)); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) StartCompound(name *string) Control {
	tb.stack = append(tb.stack, buildFrame{node: NewCompound(), name: name})
	return Continue
}

func (tb *treeBuilder) EndCompound() Control {
	n := len(tb.stack)
	f := tb.stack[n-1]
	tb.stack = tb.stack[:n-1]
	if err := tb.attach(f.name, f.node); err != nil {
		return tb.fail(err)
	}
	return Continue
}

func (tb *treeBuilder) StartList(name *string, elemKind Kind, length int32) Control {
	tb.stack = append(tb.stack, buildFrame{node: NewList(elemKind), name: name})
	return Continue
}

func (tb *treeBuilder) EndList() Control {
	n := len(tb.stack)
	f := tb.stack[n-1]
	tb.stack = tb.stack[:n-1]
	if err := tb.attach(f.name, f.node); err != nil {
		return tb.fail(err)
	}
	return Continue
}

// BuildTree parses r and materializes the result as a Document.
func BuildTree(r io.Reader) (*Document, error) {
	tb := &treeBuilder{}
	if err := Parse(r, tb); err != nil {
		return nil, err
	}
	if tb.err != nil {
		return nil, tb.err
	}
	return &Document{RootName: tb.rootName, Root: tb.root, Warnings: tb.warnings}, nil
}

// WriteTree serializes doc by walking its tree and driving a Writer,
// the inverse of BuildTree.
func WriteTree(w io.Writer, doc *Document) error {
	wr := NewWriter(w)
	if err := wr.Start(doc.RootName); err != nil {
		return err
	}
	if err := writeCompoundChildren(wr, doc.Root); err != nil {
		return err
	}
	if err := wr.EndCompound(); err != nil {
		return err
	}
	return wr.End()
}

func writeCompoundChildren(wr *Writer, n *Node) error {
	names, err := n.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		child, _ := n.Child(name)
		nm := name
		if err := writeValue(wr, &nm, child); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(wr *Writer, name *string, n *Node) error {
	switch n.kind {
	case KindByte:
		v, _ := n.AsByte()
		return wr.Byte(name, v)
	case KindShort:
		v, _ := n.AsShort()
		return wr.Short(name, v)
	case KindInt:
		v, _ := n.AsInt()
		return wr.Int(name, v)
	case KindLong:
		v, _ := n.AsLong()
		return wr.Long(name, v)
	case KindFloat:
		v, _ := n.AsFloat()
		return wr.Float(name, v)
	case KindDouble:
		v, _ := n.AsDouble()
		return wr.Double(name, v)
	case KindString:
		v, _ := n.AsString()
		return wr.String(name, v)
	case KindByteArray:
		v, _ := n.AsByteArray()
		return wr.ByteArray(name, v)
	case KindIntArray:
		v, _ := n.AsIntArray()
		return wr.IntArray(name, v)
	case KindLongArray:
		v, _ := n.AsLongArray()
		return wr.LongArray(name, v)
	case KindList:
		return writeList(wr, name, n)
	case KindCompound:
		return writeCompound(wr, name, n)
	default:
		return newStructuralError("cannot write node of kind %s", n.kind)
	}
}

func writeList(wr *Writer, name *string, n *Node) error {
	elemKind, err := n.ElementKind()
	if err != nil {
		return err
	}
	length, err := n.Len()
	if err != nil {
		return err
	}
	if err := wr.StartList(name, elemKind, int32(length)); err != nil {
		return err
	}
	for i := 0; i < length; i++ {
		el, err := n.Index(i)
		if err != nil {
			return err
		}
		if err := writeValue(wr, nil, el); err != nil {
			return err
		}
	}
	return wr.EndList()
}

func writeCompound(wr *Writer, name *string, n *Node) error {
	if err := wr.StartCompound(name); err != nil {
		return err
	}
	if err := writeCompoundChildren(wr, n); err != nil {
		return err
	}
	return wr.EndCompound()
}
