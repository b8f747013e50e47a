package main

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"
)

var (
	ErrShortBuffer = errors.New("buffer too short")
	ErrInvalidUTF8 = errors.New("invalid utf8 in buffer")
)

// Writer appends big-endian primitives to a growing byte slice
type Writer struct {
	buf []byte
}

// NewWriter starts a packet with its kind tag
func NewWriter(tag byte) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.buf = append(w.buf, tag)
	return w
}

func (w *Writer) PutU8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) PutBool(v bool) {
	if v {
		w.PutU8(1)
		return
	}
	w.PutU8(0)
}

func (w *Writer) PutU16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *Writer) PutI16(v int16) {
	w.PutU16(uint16(v))
}

func (w *Writer) PutU32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) PutI32(v int32) {
	w.PutU32(uint32(v))
}

func (w *Writer) PutF32(v float32) {
	w.PutU32(math.Float32bits(v))
}

// PutUTF8 writes a u16 length prefix followed by the UTF-8 bytes.
// Strings longer than the prefix can describe are cut on a rune boundary.
func (w *Writer) PutUTF8(s string) {
	if len(s) > math.MaxUint16 {
		n := math.MaxUint16
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	w.PutU16(uint16(len(s)))
	w.buf = append(w.buf, s...)
}

// Bytes returns the encoded packet
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader consumes big-endian primitives from a byte slice
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) next(n int) ([]byte, error) {
	if len(r.buf)-r.off < n {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads a u8 where any nonzero value is true
func (r *Reader) Bool() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	return math.Float32frombits(v), err
}

func (r *Reader) UTF8() (string, error) {
	n, err := r.U16()
	if err != nil {
		return "", err
	}
	b, err := r.next(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}
