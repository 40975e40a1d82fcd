package isa

// Operand is the category of one instruction operand slot.
type Operand int

const (
	// None marks an unused slot. Slots after the first None are ignored.
	None Operand = iota
	// RegDest is the register nibble in the low half of byte 1.
	RegDest
	// RegSrc is the register nibble in the high half of byte 1.
	RegSrc
	// RegExtra is the register nibble in the low half of byte 2.
	RegExtra
	// Imm8 is the 8-bit immediate split across bytes 2 and 3.
	Imm8
	// Imm64 is the 8-byte little-endian immediate following the header.
	Imm64
)

var operandNames = [...]string{"none", "rd", "rs", "rx", "imm8", "imm64"}

func (o Operand) String() string {
	if o >= 0 && int(o) < len(operandNames) {
		return operandNames[o]
	}
	return "?"
}

// IsRegister reports whether the slot holds a register nibble.
func (o Operand) IsRegister() bool {
	return o == RegDest || o == RegSrc || o == RegExtra
}

// Shape is the fixed operand-category sequence of an opcode.
type Shape [3]Operand

// Header and immediate sizes in bytes.
const (
	HeaderSize    = 4
	ImmediateSize = 8
)

var shapes = [...]Shape{
	OpSto:    {RegExtra, RegSrc, Imm64},
	OpLoa:    {RegDest, RegSrc, Imm64},
	OpAdd:    {RegDest, RegSrc, RegExtra},
	OpSub:    {RegDest, RegSrc, RegExtra},
	OpMul:    {RegDest, RegSrc, RegExtra},
	OpIdiv:   {RegDest, RegSrc, RegExtra},
	OpAddn:   {RegDest, RegSrc, Imm64},
	OpSubn:   {RegDest, RegSrc, Imm64},
	OpMuln:   {RegDest, RegSrc, Imm64},
	OpDivn:   {RegDest, RegSrc, Imm64},
	OpAddz:   {RegDest, RegSrc, Imm64},
	OpAddc:   {RegDest, RegSrc, Imm64},
	OpAdds:   {RegDest, RegSrc, Imm64},
	OpNotr:   {RegDest, RegSrc, RegExtra},
	OpAndr:   {RegDest, RegSrc, RegExtra},
	OpOrr:    {RegDest, RegSrc, RegExtra},
	OpXorr:   {RegDest, RegSrc, RegExtra},
	OpShl:    {RegDest, RegSrc, RegExtra},
	OpShr:    {RegDest, RegSrc, RegExtra},
	OpAndn:   {RegDest, RegSrc, Imm64},
	OpOrn:    {RegDest, RegSrc, Imm64},
	OpXorn:   {RegDest, RegSrc, Imm64},
	OpShln:   {RegDest, RegSrc, Imm64},
	OpShrn:   {RegDest, RegSrc, Imm64},
	OpPush:   {RegExtra, None, None},
	OpPop:    {RegDest, None, None},
	OpCall:   {RegExtra, None, None},
	OpIint:   {Imm8, None, None},
	OpIret:   {None, None, None},
	OpChst:   {RegSrc, None, None},
	OpLost:   {RegDest, None, None},
	OpChtp:   {RegSrc, None, None},
	OpLotp:   {RegDest, None, None},
	OpChflag: {RegSrc, None, None},
	OpLoflag: {RegDest, None, None},
	OpUtok:   {RegDest, RegExtra, None},
	OpKtou:   {RegDest, RegExtra, None},
}

// ShapeOf returns the operand shape of an opcode.
// The system-call configuration opcodes have no declared shape.
func ShapeOf(op Opcode) (Shape, bool) {
	if int(op) >= len(shapes) {
		return Shape{}, false
	}
	return shapes[op], true
}

// Arity returns the number of operands the shape consumes.
func (s Shape) Arity() int {
	n := 0
	for _, o := range s {
		if o == None {
			break
		}
		n++
	}
	return n
}

// HasImm64 reports whether the encoding carries the 8-byte immediate.
func (s Shape) HasImm64() bool {
	for _, o := range s[:s.Arity()] {
		if o == Imm64 {
			return true
		}
	}
	return false
}

// Size returns the encoded instruction size in bytes.
func (s Shape) Size() uint64 {
	if s.HasImm64() {
		return HeaderSize + ImmediateSize
	}
	return HeaderSize
}
