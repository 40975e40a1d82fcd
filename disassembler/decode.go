package disassembler

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/r16/isa"
)

var (
	// ErrTruncated is returned when fewer bytes remain than the instruction needs.
	ErrTruncated = errors.New("truncated instruction")
	// ErrNoShape is returned for opcodes the assembler cannot produce.
	ErrNoShape = errors.New("opcode has no operand shape")
	// ErrNonCanonical is returned when a header has bits set that the
	// assembler would never emit for its opcode.
	ErrNonCanonical = errors.New("non-canonical header")
)

// Instruction represents a single decoded instruction at a specific offset.
type Instruction struct {
	Offset   int
	Header   isa.Header
	Imm      int64
	Mnemonic string
	Operands []string
	Size     int
}

// String renders the instruction as assembler source.
func (inst Instruction) String() string {
	if len(inst.Operands) == 0 {
		return inst.Mnemonic
	}
	return inst.Mnemonic + " " + strings.Join(inst.Operands, ", ")
}

// Decode reads one instruction at offset. It only succeeds when assembling
// the result reproduces the same bytes.
func Decode(code []byte, offset int) (Instruction, error) {
	if offset < 0 || offset+isa.HeaderSize > len(code) {
		return Instruction{}, ErrTruncated
	}

	raw := code[offset : offset+isa.HeaderSize]
	h := isa.DecodeHeader(raw)
	shape, ok := isa.ShapeOf(h.Opcode)
	if !ok {
		return Instruction{}, fmt.Errorf("%w: 0x%02x", ErrNoShape, byte(h.Opcode))
	}

	inst := Instruction{
		Offset:   offset,
		Header:   h,
		Mnemonic: isa.Mnemonic(h.Opcode, h.Size),
		Size:     int(shape.Size()),
	}

	// Rebuild the header from the fields the shape uses only.
	canonical := isa.Header{Opcode: h.Opcode, Size: h.Size}
	for _, category := range shape[:shape.Arity()] {
		v := h.Get(category)
		switch {
		case category.IsRegister():
			canonical.Set(category, int64(v))
			inst.Operands = append(inst.Operands, isa.RegisterName(v))
		case category == isa.Imm8:
			canonical.Set(category, int64(v))
			inst.Operands = append(inst.Operands, fmt.Sprintf("0x%02x", v))
		case category == isa.Imm64:
			end := offset + inst.Size
			if end > len(code) {
				return Instruction{}, ErrTruncated
			}
			inst.Imm = isa.LE(code[offset+isa.HeaderSize : end])
			inst.Operands = append(inst.Operands, fmt.Sprintf("0x%x", uint64(inst.Imm)))
		}
	}

	want := canonical.Bytes()
	if !bytes.Equal(raw, want[:]) {
		return Instruction{}, fmt.Errorf("%w: % x", ErrNonCanonical, raw)
	}
	return inst, nil
}
