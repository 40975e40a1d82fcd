package ast

import (
	"strconv"
	"strings"

	"github.com/Urethramancer/r16/isa"
)

var operatorText = map[Kind]string{
	KindSum:        "+",
	KindDifference: "-",
	KindProduct:    "*",
	KindQuotient:   "/",
	KindRemainder:  "%",
	KindAnd:        "&",
	KindOr:         "|",
	KindXor:        "^",
	KindShl:        "<<",
	KindShr:        ">>",
}

// String renders the node as source text that parses back to an equivalent tree.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	switch n.Kind {
	case KindNumber:
		// The lexer has no negative literals, so write those as 64-bit hex.
		if n.Value < 0 {
			b.WriteString("0x")
			b.WriteString(strconv.FormatUint(uint64(n.Value), 16))
		} else {
			b.WriteString(strconv.FormatInt(n.Value, 10))
		}
	case KindRegister:
		b.WriteString(isa.RegisterName(n.Reg))
	case KindIdent:
		b.WriteString(n.Name)
	case KindLabel:
		b.WriteString(n.Name)
		b.WriteByte(':')
	case KindMnemonic:
		b.WriteString(isa.Mnemonic(n.Opcode, n.Class))
	case KindDataType:
		b.WriteString(isa.DataKeyword(n.Width))
	case KindInstruction:
		b.WriteString(isa.Mnemonic(n.Opcode, n.Class))
		if len(n.Args) > 0 {
			b.WriteByte(' ')
			formatList(b, n.Args)
		}
	case KindData:
		b.WriteString(isa.DataKeyword(n.Width))
		b.WriteByte(' ')
		formatList(b, n.Args)
	case KindValues:
		formatList(b, n.Args)
	case KindNot:
		b.WriteByte('~')
		n.Left.format(b)
	default:
		if op, ok := operatorText[n.Kind]; ok {
			b.WriteByte('(')
			n.Left.format(b)
			b.WriteString(" " + op + " ")
			n.Right.format(b)
			b.WriteByte(')')
		}
	}
}

func formatList(b *strings.Builder, list []*Node) {
	for i, a := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		a.format(b)
	}
}

// String renders one statement per line.
func (p Program) String() string {
	var b strings.Builder
	for _, n := range p {
		n.format(&b)
		b.WriteByte('\n')
	}
	return b.String()
}
