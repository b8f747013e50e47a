package main

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestWriterBigEndian(t *testing.T) {
	w := NewWriter(0x7)
	w.PutU16(0x0102)
	w.PutI32(-2)
	w.PutF32(1)
	w.PutBool(true)

	want := []byte{0x7, 0x01, 0x02, 0xFF, 0xFF, 0xFF, 0xFE, 0x3F, 0x80, 0x00, 0x00, 0x01}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("bytes = % x, want % x", got, want)
	}
}

func TestWriterUTF8Prefix(t *testing.T) {
	w := NewWriter(0x0)
	w.PutUTF8("héllo")

	b := w.Bytes()
	if b[1] != 0 || b[2] != 6 {
		t.Fatalf("length prefix = % x, want 00 06", b[1:3])
	}
	if string(b[3:]) != "héllo" {
		t.Errorf("payload = %q", b[3:])
	}
}

func TestWriterUTF8TruncatesOnRuneBoundary(t *testing.T) {
	s := strings.Repeat("é", math.MaxUint16) // 2 bytes each
	w := NewWriter(0x0)
	w.PutUTF8(s)

	r := NewReader(w.Bytes()[1:])
	got, err := r.UTF8()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) > math.MaxUint16 || len(got)%2 != 0 {
		t.Errorf("truncated length = %d", len(got))
	}
}

func TestReaderRoundTrip(t *testing.T) {
	w := NewWriter(0x9)
	w.PutU8(200)
	w.PutI16(-300)
	w.PutU32(70000)
	w.PutF32(-1.25)
	w.PutUTF8("tank")

	r := NewReader(w.Bytes())
	if tag, _ := r.U8(); tag != 0x9 {
		t.Errorf("tag = %d", tag)
	}
	if v, _ := r.U8(); v != 200 {
		t.Errorf("u8 = %d", v)
	}
	if v, _ := r.I16(); v != -300 {
		t.Errorf("i16 = %d", v)
	}
	if v, _ := r.U32(); v != 70000 {
		t.Errorf("u32 = %d", v)
	}
	if v, _ := r.F32(); v != -1.25 {
		t.Errorf("f32 = %v", v)
	}
	if v, _ := r.UTF8(); v != "tank" {
		t.Errorf("utf8 = %q", v)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d", r.Remaining())
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.U16(); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("U16 err = %v, want ErrShortBuffer", err)
	}

	// length prefix promises more than is there
	r = NewReader([]byte{0x00, 0x05, 'a', 'b'})
	if _, err := r.UTF8(); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("UTF8 err = %v, want ErrShortBuffer", err)
	}
}

func TestReaderInvalidUTF8(t *testing.T) {
	r := NewReader([]byte{0x00, 0x02, 0xC3, 0x28})
	if _, err := r.UTF8(); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("err = %v, want ErrInvalidUTF8", err)
	}
}

func TestReaderBoolNonzero(t *testing.T) {
	r := NewReader([]byte{0, 1, 7})
	want := []bool{false, true, true}
	for i, w := range want {
		got, err := r.Bool()
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("bool %d = %v, want %v", i, got, w)
		}
	}
}
