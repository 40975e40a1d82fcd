package ast

import (
	"github.com/Urethramancer/r16/isa"
	"github.com/Urethramancer/r16/token"
)

// Kind defines the type of an expression node.
type Kind int

const (
	// KindNone is carried by punctuation on the parser's value stack.
	KindNone Kind = iota

	// Leaves
	KindNumber
	KindRegister
	KindIdent
	KindLabel
	KindMnemonic
	KindDataType

	// Statements and lists
	KindInstruction
	KindData
	KindValues

	// Binary operators
	KindSum
	KindDifference
	KindProduct
	KindQuotient
	KindRemainder
	KindAnd
	KindOr
	KindXor
	KindShl
	KindShr

	// Unary operators
	KindNot
)

var kindNames = [...]string{
	KindNone:        "none",
	KindNumber:      "number",
	KindRegister:    "register",
	KindIdent:       "identifier",
	KindLabel:       "label",
	KindMnemonic:    "mnemonic",
	KindDataType:    "data type",
	KindInstruction: "instruction",
	KindData:        "data",
	KindValues:      "values",
	KindSum:         "sum",
	KindDifference:  "difference",
	KindProduct:     "product",
	KindQuotient:    "quotient",
	KindRemainder:   "remainder",
	KindAnd:         "and",
	KindOr:          "or",
	KindXor:         "xor",
	KindShl:         "shift left",
	KindShr:         "shift right",
	KindNot:         "not",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsBinary reports whether nodes of this kind have Left and Right operands.
func (k Kind) IsBinary() bool {
	return k >= KindSum && k <= KindShr
}

// IsStatement reports whether the kind may appear at the top level of a program.
func (k Kind) IsStatement() bool {
	return k == KindInstruction || k == KindData || k == KindLabel
}

// CurrentPosition is the identifier that evaluates to the enclosing statement's offset.
const CurrentPosition = "$"

// Node is one element of the expression tree. Children are exclusively owned.
type Node struct {
	Kind Kind
	Span token.Span

	Value  int64         // KindNumber
	Reg    uint8         // KindRegister
	Name   string        // KindIdent, KindLabel
	Opcode isa.Opcode    // KindInstruction, KindMnemonic
	Class  isa.SizeClass // KindInstruction, KindMnemonic
	Width  int           // KindData, KindDataType

	// Args holds instruction operands, data values and value lists.
	Args []*Node
	// Left and Right hold the operands of binary operators; Left alone for KindNot.
	Left  *Node
	Right *Node

	Size   uint64 // valid after the size pass
	Offset uint64 // valid after the offset pass
}

// Program is the ordered list of top-level statements.
type Program []*Node

// FromToken builds the leaf node for a shifted token. Punctuation yields a
// placeholder carrying only the span.
func FromToken(t token.Token) *Node {
	n := &Node{Kind: KindNone, Span: t.Span}
	switch t.Kind {
	case token.Number:
		n.Kind = KindNumber
		n.Value = t.Number
	case token.Register:
		n.Kind = KindRegister
		n.Reg = t.Reg
	case token.Ident:
		n.Kind = KindIdent
		n.Name = t.Name
	case token.Label:
		n.Kind = KindLabel
		n.Name = t.Name
	case token.Mnemonic:
		n.Kind = KindMnemonic
		n.Opcode = t.Opcode
		n.Class = t.Size
	case token.DataType:
		n.Kind = KindDataType
		n.Width = t.Width
	}
	return n
}

// SetOffset assigns the offset to the node and all of its descendants, so that
// the current position resolves to the enclosing statement.
func (n *Node) SetOffset(offset uint64) {
	n.Offset = offset
	for _, a := range n.Args {
		a.SetOffset(offset)
	}
	if n.Left != nil {
		n.Left.SetOffset(offset)
	}
	if n.Right != nil {
		n.Right.SetOffset(offset)
	}
}

// Labels maps label names to resolved offsets.
type Labels map[string]uint64
