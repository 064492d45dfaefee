package record

import (
	"encoding/binary"
	"math"
)

// Writer appends fields in wire order. The first failure is kept and later
// writes become no-ops.
type Writer struct {
	buf []byte
	err error
}

func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

func (w *Writer) U8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v)
}

func (w *Writer) U64(v uint64) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Bytes writes a u32 little-endian length followed by v.
func (w *Writer) Bytes(v []byte) {
	if w.err != nil {
		return
	}
	if uint64(len(v)) > math.MaxUint32 {
		w.err = ErrPayloadTooLarge
		return
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(v)))
	w.buf = append(w.buf, v...)
}

// Fixed32 writes exactly 32 bytes with no length prefix.
func (w *Writer) Fixed32(v [32]byte) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v[:]...)
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// Result returns the encoded bytes or the first write error.
func (w *Writer) Result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

// Reader consumes fields from a byte slice. Every read checks the remaining
// length first and leaves the position untouched on failure.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Offset() int {
	return r.pos
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrTruncated
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bytes reads a length-prefixed payload and returns a copy of it.
func (r *Reader) Bytes() ([]byte, error) {
	start := r.pos
	prefix, err := r.take(lengthPrefixSize)
	if err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(prefix)
	if uint64(n) > uint64(r.Remaining()) {
		r.pos = start
		return nil, ErrMalformedLength
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+int(n)])
	r.pos += int(n)
	return out, nil
}

func (r *Reader) Fixed32() ([32]byte, error) {
	var out [32]byte
	b, err := r.take(len(out))
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}
