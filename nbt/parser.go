package nbt

import (
	"errors"
	"fmt"
	"io"
)

// errAbort unwinds the recursive parse immediately once a Handler callback
// returns Abort. It never escapes Parse: Parse converts it back into a nil
// error, since Abort is a clean, caller-requested stop, not a failure.
var errAbort = errors.New("nbt: parse aborted")

// errSkipRemainder unwinds to the nearest enclosing parseCompoundBody/
// parseList loop once a Handler callback returns Skip. That loop drains
// whatever siblings remain (via skipValue/skipCompound, with no further
// callbacks) so the stream stays aligned, then resumes normally with its
// own caller. It never escapes Parse.
var errSkipRemainder = errors.New("nbt: skip remainder of container")

// Parse walks r as a single NBT document, driving h. The root tag must be
// a COMPOUND; anything else fails with ErrInvalidRoot.
func Parse(r io.Reader, h Handler) error {
	p := &parser{r: newReader(r), h: h}
	if err := p.parseDocument(); err != nil {
		if errors.Is(err, errAbort) {
			return nil
		}
		return err
	}
	return nil
}

type parser struct {
	r *reader
	h Handler
}

func (p *parser) parseDocument() error {
	kb, err := p.r.readByteVal()
	if err != nil {
		return err
	}
	if !ValidKind(kb) {
		return wrapParseError(ErrInvalidKind, p.r.off-1, "invalid kind byte 0x%02x", kb)
	}
	kind := Kind(kb)
	if kind != KindCompound {
		return wrapParseError(ErrInvalidRoot, p.r.off-1, "root tag must be COMPOUND, got %s", kind)
	}
	name, err := p.r.readString()
	if err != nil {
		return err
	}
	ctl := p.h.Start(name)
	if ctl == Abort {
		return errAbort
	}
	if ctl == Skip {
		if err := p.skipCompound(); err != nil {
			return err
		}
	} else if err := p.parseCompoundBody(); err != nil {
		return err
	}
	if p.h.End() == Abort {
		return errAbort
	}
	return nil
}

// parseCompoundBody reads named child tags until END, emitting a callback
// for each.
func (p *parser) parseCompoundBody() error {
	for {
		kb, err := p.r.readByteVal()
		if err != nil {
			return err
		}
		if !ValidKind(kb) {
			return wrapParseError(ErrInvalidKind, p.r.off-1, "invalid kind byte 0x%02x", kb)
		}
		kind := Kind(kb)
		if kind == KindEnd {
			return nil
		}
		name, err := p.r.readString()
		if err != nil {
			return err
		}
		if err := p.parseValue(kind, &name); err != nil {
			if errors.Is(err, errSkipRemainder) {
				return p.skipCompound()
			}
			return err
		}
	}
}

// parseValue decodes one tag payload of the given kind and emits the
// matching Handler callback. name is nil for list elements.
func (p *parser) parseValue(kind Kind, name *string) error {
	switch kind {
	case KindByte:
		v, err := p.r.readByteVal()
		if err != nil {
			return err
		}
		return p.ctl(p.h.Byte(name, int8(v)))

	case KindShort:
		v, err := p.r.readI16()
		if err != nil {
			return err
		}
		return p.ctl(p.h.Short(name, v))

	case KindInt:
		v, err := p.r.readI32()
		if err != nil {
			return err
		}
		return p.ctl(p.h.Int(name, v))

	case KindLong:
		v, err := p.r.readI64()
		if err != nil {
			return err
		}
		return p.ctl(p.h.Long(name, v))

	case KindFloat:
		v, err := p.r.readF32()
		if err != nil {
			return err
		}
		return p.ctl(p.h.Float(name, v))

	case KindDouble:
		v, err := p.r.readF64()
		if err != nil {
			return err
		}
		return p.ctl(p.h.Double(name, v))

	case KindString:
		v, err := p.r.readString()
		if err != nil {
			return err
		}
		return p.ctl(p.h.String(name, v))

	case KindByteArray:
		n, err := p.r.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return wrapParseError(ErrNegativeLength, p.r.off, "negative byte array length %d", n)
		}
		data, err := p.r.readExact(n)
		if err != nil {
			return err
		}
		return p.ctl(p.h.ByteArray(name, data))

	case KindIntArray:
		n, err := p.r.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return wrapParseError(ErrNegativeLength, p.r.off, "negative int array length %d", n)
		}
		data, err := p.r.readI32Array(n)
		if err != nil {
			return err
		}
		return p.ctl(p.h.IntArray(name, data))

	case KindLongArray:
		n, err := p.r.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return wrapParseError(ErrNegativeLength, p.r.off, "negative long array length %d", n)
		}
		data, err := p.r.readI64Array(n)
		if err != nil {
			return err
		}
		return p.ctl(p.h.LongArray(name, data))

	case KindList:
		return p.parseList(name)

	case KindCompound:
		return p.parseCompound(name)

	default:
		return wrapParseError(ErrInvalidKind, p.r.off, "unexpected kind %s", kind)
	}
}

func (p *parser) parseCompound(name *string) error {
	ctl := p.h.StartCompound(name)
	if ctl == Abort {
		return errAbort
	}
	if ctl == Skip {
		if err := p.skipCompound(); err != nil {
			return err
		}
	} else if err := p.parseCompoundBody(); err != nil {
		return err
	}
	return p.ctl(p.h.EndCompound())
}

func (p *parser) parseList(name *string) error {
	ekb, err := p.r.readByteVal()
	if err != nil {
		return err
	}
	if !ValidKind(ekb) {
		return wrapParseError(ErrInvalidKind, p.r.off-1, "invalid list element kind 0x%02x", ekb)
	}
	elem := Kind(ekb)
	length, err := p.r.readI32()
	if err != nil {
		return err
	}
	if length < 0 {
		return wrapParseError(ErrNegativeLength, p.r.off, "negative list length %d", length)
	}
	// Open Question (a): a LIST declaring element kind END with a nonzero
	// length is tolerated as an empty list (matching observed upstream
	// behavior) but surfaced as a warning rather than silently permitted.
	if elem == KindEnd && length > 0 {
		p.h.Warning(fmt.Sprintf("list %s declares element kind END with length %d; treating as empty", describeName(name), length))
	}

	ctl := p.h.StartList(name, elem, length)
	if ctl == Abort {
		return errAbort
	}
	if elem != KindEnd {
		if ctl == Skip {
			for i := int32(0); i < length; i++ {
				if err := p.skipValue(elem); err != nil {
					return err
				}
			}
		} else {
			for i := int32(0); i < length; i++ {
				if err := p.parseValue(elem, nil); err != nil {
					if errors.Is(err, errSkipRemainder) {
						for j := i + 1; j < length; j++ {
							if err := p.skipValue(elem); err != nil {
								return err
							}
						}
						break
					}
					return err
				}
			}
		}
	}
	return p.ctl(p.h.EndList())
}

// ctl converts a Handler-returned Control into an error: Abort unwinds the
// whole parse, Skip unwinds to the nearest enclosing container loop so it
// can drain the remaining siblings without further callbacks, and Continue
// lets parsing proceed as normal.
func (p *parser) ctl(c Control) error {
	switch c {
	case Abort:
		return errAbort
	case Skip:
		return errSkipRemainder
	default:
		return nil
	}
}

// skipValue consumes the bytes of one tag payload without invoking any
// Handler callback, used once a container has been told to Skip the rest
// of its contents. The stream must still be walked structurally so
// whatever follows the skipped container stays aligned.
func (p *parser) skipValue(kind Kind) error {
	switch kind {
	case KindByte:
		_, err := p.r.readByteVal()
		return err
	case KindShort:
		_, err := p.r.readI16()
		return err
	case KindInt:
		_, err := p.r.readI32()
		return err
	case KindLong:
		_, err := p.r.readI64()
		return err
	case KindFloat:
		_, err := p.r.readF32()
		return err
	case KindDouble:
		_, err := p.r.readF64()
		return err
	case KindString:
		_, err := p.r.readString()
		return err
	case KindByteArray:
		n, err := p.r.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return wrapParseError(ErrNegativeLength, p.r.off, "negative byte array length %d", n)
		}
		_, err = p.r.readExact(n)
		return err
	case KindIntArray:
		n, err := p.r.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return wrapParseError(ErrNegativeLength, p.r.off, "negative int array length %d", n)
		}
		_, err = p.r.readI32Array(n)
		return err
	case KindLongArray:
		n, err := p.r.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return wrapParseError(ErrNegativeLength, p.r.off, "negative long array length %d", n)
		}
		_, err = p.r.readI64Array(n)
		return err
	case KindList:
		return p.skipList()
	case KindCompound:
		return p.skipCompound()
	default:
		return wrapParseError(ErrInvalidKind, p.r.off, "unexpected kind %s", kind)
	}
}

func (p *parser) skipCompound() error {
	for {
		kb, err := p.r.readByteVal()
		if err != nil {
			return err
		}
		if !ValidKind(kb) {
			return wrapParseError(ErrInvalidKind, p.r.off-1, "invalid kind byte 0x%02x", kb)
		}
		kind := Kind(kb)
		if kind == KindEnd {
			return nil
		}
		if _, err := p.r.readString(); err != nil {
			return err
		}
		if err := p.skipValue(kind); err != nil {
			return err
		}
	}
}

func (p *parser) skipList() error {
	ekb, err := p.r.readByteVal()
	if err != nil {
		return err
	}
	if !ValidKind(ekb) {
		return wrapParseError(ErrInvalidKind, p.r.off-1, "invalid list element kind 0x%02x", ekb)
	}
	elem := Kind(ekb)
	length, err := p.r.readI32()
	if err != nil {
		return err
	}
	if length < 0 {
		return wrapParseError(ErrNegativeLength, p.r.off, "negative list length %d", length)
	}
	if elem == KindEnd {
		return nil
	}
	for i := int32(0); i < length; i++ {
		if err := p.skipValue(elem); err != nil {
			return err
		}
	}
	return nil
}

func describeName(name *string) string {
	if name == nil {
		return "<element>"
	}
	return fmt.Sprintf("%q", *name)
}
