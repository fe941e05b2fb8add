package wire

import (
	"bytes"
	"testing"
)

// TestBitPackingVector reproduces the literal write vector: 4 bits of
// 0x0B, then 8 bits of 0x9D, then 4 bits of 0x0D packs to [0xDB, 0xD9].
func TestBitPackingVector(t *testing.T) {
	w := NewWriter(BitMode, false)
	w.writeBits(0x0B, 4)
	w.writeBits(0x9D, 8)
	w.writeBits(0x0D, 4)
	got := w.Bytes()
	want := []byte{0xDB, 0xD9}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// TestBitUnpackingVector reproduces the literal read vector: reading
// [0xE5, 0x4B, 0xC1] six bits at a time yields 0x25, 0x2F, ...
func TestBitUnpackingVector(t *testing.T) {
	r := NewReader([]byte{0xE5, 0x4B, 0xC1}, BitMode, false)
	first, err := r.readBits(6)
	if err != nil {
		t.Fatal(err)
	}
	if first != 0x25 {
		t.Fatalf("first = %#x, want 0x25", first)
	}
	second, err := r.readBits(6)
	if err != nil {
		t.Fatal(err)
	}
	if second != 0x2F {
		t.Fatalf("second = %#x, want 0x2F", second)
	}
}

// TestTypeCheckedBitModeVector reproduces the literal vector: a
// type-checked U32 write of 0x32 in BitMode packs to
// [0x48, 0x06, 0x00, 0x00, 0x00].
func TestTypeCheckedBitModeVector(t *testing.T) {
	w := NewWriter(BitMode, true)
	if err := w.WriteU32(0x32); err != nil {
		t.Fatal(err)
	}
	got := w.Bytes()
	want := []byte{0x48, 0x06, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}

	r := NewReader(got, BitMode, true)
	v, err := r.ReadU32()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x32 {
		t.Fatalf("read back %#x, want 0x32", v)
	}
}

func TestPeekTagDoesNotAdvance(t *testing.T) {
	w := NewWriter(ByteMode, true)
	_ = w.WriteU16(7)
	r := NewReader(w.Bytes(), ByteMode, true)
	tag, err := r.PeekTag()
	if err != nil {
		t.Fatal(err)
	}
	if tag != U16 {
		t.Fatalf("tag = %v, want U16", tag)
	}
	v, err := r.ReadU16()
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Fatalf("v = %d, want 7", v)
	}
}

func TestMismatchedTagIsRejected(t *testing.T) {
	w := NewWriter(ByteMode, true)
	_ = w.WriteU16(7)
	r := NewReader(w.Bytes(), ByteMode, true)
	if _, err := r.ReadU32(); err != ErrUnexpectedDataType {
		t.Fatalf("err = %v, want ErrUnexpectedDataType", err)
	}
}

func TestNextIsTypeChecked(t *testing.T) {
	w := NewWriter(ByteMode, true)
	_ = w.WriteU16(7)
	r := NewReader(w.Bytes(), ByteMode, true)
	if !r.NextIs(U16) {
		t.Fatal("NextIs(U16) = false, want true")
	}
	if r.NextIs(U32) {
		t.Fatal("NextIs(U32) = true, want false")
	}
}

// TestNextIsUncheckedAlwaysFalse reproduces the unchecked-mode peeking
// rule: with type checking disabled there is no tag to compare
// against, so NextIs always reports false regardless of what follows.
func TestNextIsUncheckedAlwaysFalse(t *testing.T) {
	w := NewWriter(ByteMode, false)
	_ = w.WriteU16(7)
	r := NewReader(w.Bytes(), ByteMode, false)
	if r.NextIs(U16) {
		t.Fatal("NextIs(U16) = true, want false in unchecked mode")
	}
}
