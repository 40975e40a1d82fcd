package isa

// Header is the 4-byte part present in every instruction.
//
//	byte 0: opcode
//	byte 1: rd | rs<<4
//	byte 2: rx | imm8&0xf0
//	byte 3: imm8&0x0f | size<<4
type Header struct {
	Opcode Opcode
	Rd     uint8
	Rs     uint8
	Rx     uint8
	Imm8   uint8
	Size   SizeClass
}

// Bytes packs the header. Register fields are truncated to a nibble and the
// size class to two bits.
func (h Header) Bytes() [HeaderSize]byte {
	return [HeaderSize]byte{
		byte(h.Opcode),
		h.Rd&0x0f | (h.Rs&0x0f)<<4,
		h.Rx&0x0f | h.Imm8&0xf0,
		h.Imm8&0x0f | byte(h.Size&0x03)<<4,
	}
}

// DecodeHeader unpacks the first four bytes of b.
func DecodeHeader(b []byte) Header {
	return Header{
		Opcode: Opcode(b[0]),
		Rd:     b[1] & 0x0f,
		Rs:     b[1] >> 4,
		Rx:     b[2] & 0x0f,
		Imm8:   b[2]&0xf0 | b[3]&0x0f,
		Size:   SizeClass(b[3] >> 4),
	}
}

// Set stores an evaluated operand in the field selected by the category.
// It returns false for Imm64 and None, which have no header field.
func (h *Header) Set(o Operand, v int64) bool {
	switch o {
	case RegDest:
		h.Rd = uint8(v) & 0x0f
	case RegSrc:
		h.Rs = uint8(v) & 0x0f
	case RegExtra:
		h.Rx = uint8(v) & 0x0f
	case Imm8:
		h.Imm8 = uint8(v)
	default:
		return false
	}
	return true
}

// Get returns the header field selected by the category.
func (h Header) Get(o Operand) uint8 {
	switch o {
	case RegDest:
		return h.Rd
	case RegSrc:
		return h.Rs
	case RegExtra:
		return h.Rx
	case Imm8:
		return h.Imm8
	}
	return 0
}
