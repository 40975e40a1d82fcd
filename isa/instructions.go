package isa

import (
	"fmt"
	"strings"
)

// Opcode is the numeric instruction identifier stored in byte 0 of every instruction.
type Opcode uint8

// Opcodes for all instructions.
const (
	// Memory
	OpSto Opcode = 0x00 // sto
	OpLoa Opcode = 0x01 // loa

	// Register arithmetic
	OpAdd  Opcode = 0x02 // add
	OpSub  Opcode = 0x03 // sub
	OpMul  Opcode = 0x04 // mul
	OpIdiv Opcode = 0x05 // idiv

	// Immediate arithmetic
	OpAddn Opcode = 0x06 // addn
	OpSubn Opcode = 0x07 // subn
	OpMuln Opcode = 0x08 // muln
	OpDivn Opcode = 0x09 // divn
	OpAddz Opcode = 0x0a // addz
	OpAddc Opcode = 0x0b // addc
	OpAdds Opcode = 0x0c // adds

	// Register logic
	OpNotr Opcode = 0x0d // notr
	OpAndr Opcode = 0x0e // andr
	OpOrr  Opcode = 0x0f // orr
	OpXorr Opcode = 0x10 // xorr
	OpShl  Opcode = 0x11 // shl
	OpShr  Opcode = 0x12 // shr

	// Immediate logic
	OpAndn Opcode = 0x13 // andn
	OpOrn  Opcode = 0x14 // orn
	OpXorn Opcode = 0x15 // xorn
	OpShln Opcode = 0x16 // shln
	OpShrn Opcode = 0x17 // shrn

	// Stack and control
	OpPush   Opcode = 0x18 // push
	OpPop    Opcode = 0x19 // pop
	OpCall   Opcode = 0x1a // call
	OpIint   Opcode = 0x1b // iint
	OpIret   Opcode = 0x1c // iret
	OpChst   Opcode = 0x1d // chst
	OpLost   Opcode = 0x1e // lost
	OpChtp   Opcode = 0x1f // chtp
	OpLotp   Opcode = 0x20 // lotp
	OpChflag Opcode = 0x21 // chflag
	OpLoflag Opcode = 0x22 // loflag

	// User/kernel token conversion
	OpUtok Opcode = 0x23 // utok
	OpKtou Opcode = 0x24 // ktou

	// System-call configuration. These have no operand shape.
	OpSetSyscall Opcode = 0x25 // setsyscall
	OpSyscall    Opcode = 0x26 // syscall
)

var mnemonics = [...]string{
	"sto", "loa",
	"add", "sub", "mul", "idiv",
	"addn", "subn", "muln", "divn", "addz", "addc", "adds",
	"notr", "andr", "orr", "xorr", "shl", "shr",
	"andn", "orn", "xorn", "shln", "shrn",
	"push", "pop", "call", "iint", "iret",
	"chst", "lost", "chtp", "lotp", "chflag", "loflag",
	"utok", "ktou",
	"setsyscall", "syscall",
}

var opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(mnemonics))
	for i, name := range mnemonics {
		m[name] = Opcode(i)
	}
	return m
}()

// String returns the mnemonic for the opcode, or a hex form for unknown values.
func (op Opcode) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return fmt.Sprintf("op%02x", uint8(op))
}

// Valid reports whether the opcode has a mnemonic.
func (op Opcode) Valid() bool {
	return int(op) < len(mnemonics)
}

// SizeClass is the 2-bit operand width variant of a mnemonic.
type SizeClass uint8

const (
	// SizeByte is selected by the B suffix.
	SizeByte SizeClass = iota
	// SizeShort is selected by the S suffix.
	SizeShort
	// SizeInt is selected by the I suffix.
	SizeInt
	// SizeLong is selected by the L suffix.
	SizeLong
)

// DefaultSize applies to mnemonics written without a suffix.
const DefaultSize = SizeLong

const sizeSuffixes = "BSIL"

// Suffix returns the suffix letter for the size class.
func (s SizeClass) Suffix() string {
	if int(s) < len(sizeSuffixes) {
		return sizeSuffixes[s : s+1]
	}
	return ""
}

// LookupMnemonic splits a source word like "addB" into its opcode and size class.
// Words without a suffix get DefaultSize.
func LookupMnemonic(word string) (Opcode, SizeClass, bool) {
	if op, ok := opcodesByName[word]; ok {
		return op, DefaultSize, true
	}
	if len(word) < 2 {
		return 0, 0, false
	}

	suffix := strings.IndexByte(sizeSuffixes, word[len(word)-1])
	if suffix < 0 {
		return 0, 0, false
	}
	op, ok := opcodesByName[word[:len(word)-1]]
	if !ok {
		return 0, 0, false
	}
	return op, SizeClass(suffix), true
}

// Mnemonic renders an opcode and size class back to source form.
// The default size is written without a suffix.
func Mnemonic(op Opcode, size SizeClass) string {
	if size == DefaultSize {
		return op.String()
	}
	return op.String() + size.Suffix()
}
