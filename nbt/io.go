package nbt

import (
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/xerrors"
)

// maxBoundedAlloc bounds how much memory a single bounded read reserves
// before confirming the bytes actually exist in the stream. A claimed
// length far larger than the real stream cannot force an unbounded
// allocation: readExact grows its buffer in increments of at most this
// size, failing with ErrUnexpectedEnd as soon as the underlying reader
// runs dry instead of reserving the full claimed length up front.
const maxBoundedAlloc = 1 << 16

func min32(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// reader wraps an io.Reader with big-endian primitive decoding and byte
// offset tracking for error reporting.
type reader struct {
	r   io.Reader
	off int64
}

func newReader(r io.Reader) *reader { return &reader{r: r} }

func (r *reader) pos() int64 { return r.off }

// readExact reads exactly n bytes, failing with ErrUnexpectedEnd if the
// underlying reader is exhausted first.
func (r *reader) readExact(n int32) ([]byte, error) {
	if n < 0 {
		return nil, wrapParseError(ErrNegativeLength, r.off, "negative length %d", n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, 0, min32(int(n), maxBoundedAlloc))
	remaining := int(n)
	for remaining > 0 {
		chunk := min32(remaining, maxBoundedAlloc)
		start := len(buf)
		buf = append(buf, make([]byte, chunk)...)
		if _, err := io.ReadFull(r.r, buf[start:]); err != nil {
			return nil, wrapParseError(ErrUnexpectedEnd, r.off, "reading %d bytes: %w", n, err)
		}
		r.off += int64(chunk)
		remaining -= chunk
	}
	return buf, nil
}

func (r *reader) readByteVal() (byte, error) {
	b, err := r.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readU16() (uint16, error) {
	b, err := r.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) readI16() (int16, error) {
	u, err := r.readU16()
	return int16(u), err
}

func (r *reader) readI32() (int32, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) readI64() (int64, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *reader) readF32() (float32, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) readF64() (float64, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// readString reads a STRING payload: an unsigned 16-bit BE length followed
// by that many bytes of modified UTF-8.
func (r *reader) readString() (string, error) {
	n, err := r.readU16()
	if err != nil {
		return "", err
	}
	b, err := r.readExact(int32(n))
	if err != nil {
		return "", err
	}
	s, err := decodeModifiedUTF8(b)
	if err != nil {
		return "", wrapParseError(ErrInvalidUtf8, r.off, "%w", err)
	}
	return s, nil
}

func (r *reader) readI32Array(n int32) ([]int32, error) {
	b, err := r.readExact(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

func (r *reader) readI64Array(n int32) ([]int64, error) {
	b, err := r.readExact(n * 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(binary.BigEndian.Uint64(b[i*8:]))
	}
	return out, nil
}

// writer wraps an io.Writer with big-endian primitive encoding.
// It never buffers more than the tag currently being emitted.
type writer struct {
	w io.Writer
}

func newWriter(w io.Writer) *writer { return &writer{w: w} }

func (w *writer) writeBytes(b []byte) error {
	_, err := w.w.Write(b)
	if err != nil {
		return xerrors.Errorf("nbt: write: %w", err)
	}
	return nil
}

func (w *writer) writeByteVal(b byte) error {
	return w.writeBytes([]byte{b})
}

func (w *writer) writeU16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return w.writeBytes(b[:])
}

func (w *writer) writeI16(v int16) error { return w.writeU16(uint16(v)) }

func (w *writer) writeI32(v int32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return w.writeBytes(b[:])
}

func (w *writer) writeI64(v int64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return w.writeBytes(b[:])
}

func (w *writer) writeF32(v float32) error {
	return w.writeI32(int32(math.Float32bits(v)))
}

func (w *writer) writeF64(v float64) error {
	return w.writeI64(int64(math.Float64bits(v)))
}

func (w *writer) writeString(s string) error {
	enc := encodeModifiedUTF8(s)
	if len(enc) > math.MaxUint16 {
		return newStructuralError("string %q encodes to %d bytes, exceeds uint16 length limit", s, len(enc))
	}
	if err := w.writeU16(uint16(len(enc))); err != nil {
		return err
	}
	return w.writeBytes(enc)
}

func (w *writer) writeI32Array(v []int32) error {
	if err := w.writeI32(int32(len(v))); err != nil {
		return err
	}
	b := make([]byte, len(v)*4)
	for i, x := range v {
		binary.BigEndian.PutUint32(b[i*4:], uint32(x))
	}
	return w.writeBytes(b)
}

func (w *writer) writeI64Array(v []int64) error {
	if err := w.writeI32(int32(len(v))); err != nil {
		return err
	}
	b := make([]byte, len(v)*8)
	for i, x := range v {
		binary.BigEndian.PutUint64(b[i*8:], uint64(x))
	}
	return w.writeBytes(b)
}
