package wire

import "math"

// Reader parses primitives, strings, blobs and arrays out of a byte
// slice using the dual-mode wire format. A Reader is not safe for
// concurrent use.
type Reader struct {
	mode        Mode
	typeChecked bool
	buf         []byte
	bitPos      int
}

// NewReader returns a Reader over buf starting in the given mode with
// the given initial type-checked setting.
func NewReader(buf []byte, mode Mode, typeChecked bool) *Reader {
	return &Reader{buf: buf, mode: mode, typeChecked: typeChecked}
}

// Mode returns the reader's current packing mode.
func (r *Reader) Mode() Mode { return r.mode }

// TypeChecked reports whether primitive reads currently expect a tag.
func (r *Reader) TypeChecked() bool { return r.typeChecked }

// SetMode changes the packing mode. Switching from BitMode to ByteMode
// byte-aligns the cursor, discarding any padding bits a paired Writer
// inserted on the same transition.
func (r *Reader) SetMode(mode Mode) {
	if r.mode == BitMode && mode == ByteMode {
		r.alignToByte()
	}
	r.mode = mode
}

// SetTypeChecked toggles whether subsequent primitive reads expect a
// leading type tag.
func (r *Reader) SetTypeChecked(tc bool) {
	r.typeChecked = tc
}

// ReadTypeCheckBit consumes a single leading bit (BitMode only)
// written by WriteTypeCheckBit and adopts it as this reader's
// TypeChecked flag.
func (r *Reader) ReadTypeCheckBit() (bool, error) {
	if r.mode != BitMode {
		return false, ErrMode
	}
	v, err := r.readBits(1)
	if err != nil {
		return false, err
	}
	tc := v != 0
	r.typeChecked = tc
	return tc, nil
}

// Remaining returns the number of unread bytes, rounding down any
// trailing partial byte.
func (r *Reader) Remaining() int {
	return (len(r.buf)*8 - r.bitPos) / 8
}

func (r *Reader) alignToByte() {
	if rem := r.bitPos % 8; rem != 0 {
		r.bitPos += 8 - rem
	}
}

func (r *Reader) readBits(n int) (uint64, error) {
	if r.bitPos+n > len(r.buf)*8 {
		return 0, ErrUnexpectedEndOfMessage
	}
	var v uint64
	for i := 0; i < n; i++ {
		byteIdx := r.bitPos / 8
		bitIdx := uint(r.bitPos % 8)
		bit := (r.buf[byteIdx] >> bitIdx) & 1
		if bit != 0 {
			v |= 1 << uint(i)
		}
		r.bitPos++
	}
	return v, nil
}

func (r *Reader) tagWidth() int {
	if r.mode == BitMode {
		return 5
	}
	return 8
}

// PeekTag reports the next type tag without consuming it. It is only
// meaningful when TypeChecked is enabled.
func (r *Reader) PeekTag() (DataType, error) {
	save := r.bitPos
	v, err := r.readBits(r.tagWidth())
	r.bitPos = save
	if err != nil {
		return NoType, err
	}
	tag := DataType(v)
	if !tag.IsValid() {
		return NoType, ErrInvalidDataType
	}
	return tag, nil
}

// NextIs reports whether the next type tag equals want. If type
// checking is disabled there is no tag to compare against, so it
// always reports false.
func (r *Reader) NextIs(want DataType) bool {
	if !r.typeChecked {
		return false
	}
	tag, err := r.PeekTag()
	if err != nil {
		return false
	}
	return tag == want
}

// expectTag consumes and validates the tag for want, when type
// checking is enabled.
func (r *Reader) expectTag(want DataType) error {
	if !r.typeChecked {
		return nil
	}
	v, err := r.readBits(r.tagWidth())
	if err != nil {
		return err
	}
	tag := DataType(v)
	if !tag.IsValid() {
		return ErrInvalidDataType
	}
	if tag != want {
		return ErrUnexpectedDataType
	}
	return nil
}

func (r *Reader) ReadBool() (bool, error) {
	if err := r.expectTag(Bool); err != nil {
		return false, err
	}
	v, err := r.readBits(Bool.widthBits(r.mode))
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (r *Reader) ReadI8() (int8, error) {
	if err := r.expectTag(I8); err != nil {
		return 0, err
	}
	v, err := r.readBits(I8.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return int8(uint8(v)), nil
}

func (r *Reader) ReadU8() (uint8, error) {
	if err := r.expectTag(U8); err != nil {
		return 0, err
	}
	v, err := r.readBits(U8.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func (r *Reader) ReadWChar16() (uint16, error) {
	if err := r.expectTag(WChar16); err != nil {
		return 0, err
	}
	v, err := r.readBits(WChar16.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func (r *Reader) ReadI16() (int16, error) {
	if err := r.expectTag(I16); err != nil {
		return 0, err
	}
	v, err := r.readBits(I16.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return int16(uint16(v)), nil
}

func (r *Reader) ReadU16() (uint16, error) {
	if err := r.expectTag(U16); err != nil {
		return 0, err
	}
	v, err := r.readBits(U16.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func (r *Reader) ReadI32() (int32, error) {
	if err := r.expectTag(I32); err != nil {
		return 0, err
	}
	v, err := r.readBits(I32.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return int32(uint32(v)), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if err := r.expectTag(U32); err != nil {
		return 0, err
	}
	v, err := r.readBits(U32.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (r *Reader) ReadI64() (int64, error) {
	if err := r.expectTag(I64); err != nil {
		return 0, err
	}
	v, err := r.readBits(I64.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	if err := r.expectTag(U64); err != nil {
		return 0, err
	}
	v, err := r.readBits(U64.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return v, nil
}

// ReadRangedI32 is the read counterpart of Writer.WriteRangedI32.
func (r *Reader) ReadRangedI32() (int32, error) {
	if err := r.expectTag(RangedI32); err != nil {
		return 0, err
	}
	v, err := r.readBits(RangedI32.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return int32(uint32(v)), nil
}

// ReadRangedU32 is the read counterpart of Writer.WriteRangedU32.
func (r *Reader) ReadRangedU32() (uint32, error) {
	if err := r.expectTag(RangedU32); err != nil {
		return 0, err
	}
	v, err := r.readBits(RangedU32.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func (r *Reader) ReadF32() (float32, error) {
	if err := r.expectTag(F32); err != nil {
		return 0, err
	}
	v, err := r.readBits(F32.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func (r *Reader) ReadF64() (float64, error) {
	if err := r.expectTag(F64); err != nil {
		return 0, err
	}
	v, err := r.readBits(F64.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadRangedF32 is the read counterpart of Writer.WriteRangedF32.
func (r *Reader) ReadRangedF32() (float32, error) {
	if err := r.expectTag(RangedF32); err != nil {
		return 0, err
	}
	v, err := r.readBits(RangedF32.widthBits(r.mode))
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// ReadRawBytes reads exactly n bytes verbatim with no tag, the
// counterpart of WriteRawBytes. Only valid in ByteMode.
func (r *Reader) ReadRawBytes(n int) ([]byte, error) {
	if r.mode != ByteMode {
		return nil, ErrMode
	}
	out := make([]byte, n)
	for i := range out {
		v, err := r.readBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

func (r *Reader) readRawString(tag DataType) (string, error) {
	if r.mode != ByteMode {
		return "", ErrMode
	}
	if err := r.expectTag(tag); err != nil {
		return "", err
	}
	var out []byte
	for {
		v, err := r.readBits(8)
		if err != nil {
			return "", err
		}
		if v == 0 {
			break
		}
		out = append(out, byte(v))
	}
	return string(out), nil
}

// ReadI8Str reads a null-terminated string tagged I8Str.
func (r *Reader) ReadI8Str() (string, error) { return r.readRawString(I8Str) }

// ReadU8Str reads a null-terminated string tagged U8Str.
func (r *Reader) ReadU8Str() (string, error) { return r.readRawString(U8Str) }

// ReadMBStr reads a null-terminated string tagged MBStr.
func (r *Reader) ReadMBStr() (string, error) { return r.readRawString(MBStr) }

// ReadBlob reads a length-prefixed byte blob. Only valid in ByteMode.
func (r *Reader) ReadBlob() ([]byte, error) {
	if r.mode != ByteMode {
		return nil, ErrMode
	}
	if err := r.expectTag(Blob); err != nil {
		return nil, err
	}
	n, err := r.readBits(32)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	for i := range out {
		v, err := r.readBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// readArrayHeader consumes the array tag, discards the total-size
// field, validates the element type and returns the element count.
// Arrays are always type-checked and only valid in ByteMode.
func (r *Reader) readArrayHeader(elem DataType) (int, error) {
	if r.mode != ByteMode {
		return 0, ErrMode
	}
	v, err := r.readBits(8)
	if err != nil {
		return 0, err
	}
	tag := DataType(v)
	if !tag.IsValid() {
		return 0, ErrInvalidDataType
	}
	if tag != elem.Array() {
		return 0, ErrUnexpectedDataType
	}
	if _, err := r.readBits(32); err != nil { // total size, ignored
		return 0, err
	}
	count, err := r.readBits(32)
	if err != nil {
		return 0, err
	}
	return int(uint32(count)), nil
}

// ReadArrayU8 reads an untyped-element array of U8 values.
func (r *Reader) ReadArrayU8() ([]uint8, error) {
	n, err := r.readArrayHeader(U8)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	for i := range out {
		v, err := r.readBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = uint8(v)
	}
	return out, nil
}

// ReadArrayU32 reads an untyped-element array of U32 values.
func (r *Reader) ReadArrayU32() ([]uint32, error) {
	n, err := r.readArrayHeader(U32)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := r.readBits(32)
		if err != nil {
			return nil, err
		}
		out[i] = uint32(v)
	}
	return out, nil
}

// ReadArrayI32 reads an untyped-element array of I32 values.
func (r *Reader) ReadArrayI32() ([]int32, error) {
	n, err := r.readArrayHeader(I32)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		v, err := r.readBits(32)
		if err != nil {
			return nil, err
		}
		out[i] = int32(uint32(v))
	}
	return out, nil
}

// ReadArrayU64 reads an untyped-element array of U64 values.
func (r *Reader) ReadArrayU64() ([]uint64, error) {
	n, err := r.readArrayHeader(U64)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		v, err := r.readBits(64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadArrayString reads an untyped-element array of null-terminated
// strings tagged U8Str.
func (r *Reader) ReadArrayString() ([]string, error) {
	n, err := r.readArrayHeader(U8Str)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		var sb []byte
		for {
			v, err := r.readBits(8)
			if err != nil {
				return nil, err
			}
			if v == 0 {
				break
			}
			sb = append(sb, byte(v))
		}
		out[i] = string(sb)
	}
	return out, nil
}
