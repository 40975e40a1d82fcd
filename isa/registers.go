package isa

import "strconv"

// NumRegisters is the size of the register file.
const NumRegisters = 16

// Register aliases.
const (
	RegSP = 14
	RegPC = 15
)

// Register parses a register name: r0-r15, sp or pc.
func Register(name string) (uint8, bool) {
	switch name {
	case "sp":
		return RegSP, true
	case "pc":
		return RegPC, true
	}
	if len(name) < 2 || len(name) > 3 || name[0] != 'r' {
		return 0, false
	}
	// Reject leading zeros such as "r01".
	if len(name) == 3 && name[1] == '0' {
		return 0, false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n >= NumRegisters {
		return 0, false
	}
	return uint8(n), true
}

// RegisterName returns the canonical name of a register nibble.
func RegisterName(r uint8) string {
	return "r" + strconv.Itoa(int(r&0x0f))
}

var dataWidths = map[string]int{
	"db": 1,
	"ds": 2,
	"di": 4,
	"dl": 8,
}

// DataWidth returns the element width in bytes for a data-type keyword.
func DataWidth(keyword string) (int, bool) {
	w, ok := dataWidths[keyword]
	return w, ok
}

// DataKeyword returns the data-type keyword for an element width.
func DataKeyword(width int) string {
	for k, w := range dataWidths {
		if w == width {
			return k
		}
	}
	return ""
}
