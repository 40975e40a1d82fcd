package parser

import (
	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/token"
)

// Reduction names the combinator applied to the values popped by a reduce.
type Reduction int

const (
	// Promote passes a single value up to a looser grammar level unchanged.
	Promote Reduction = iota
	// Group unwraps a parenthesised expression.
	Group
	// Binary builds an operator node from lhs, operator, rhs.
	Binary
	// Complement builds a bitwise-not node.
	Complement
	// StartValues wraps one value in a new value list.
	StartValues
	// AppendValue extends a value list past a comma.
	AppendValue
	// MakeData builds a data directive from a data type and a value list.
	MakeData
	// MakeInstruction builds an instruction from a mnemonic and its operands.
	MakeInstruction
)

var reductionNames = [...]string{
	"promote", "group", "binary", "complement", "start-values", "append-value", "make-data", "make-instruction",
}

func (r Reduction) String() string {
	if r >= 0 && int(r) < len(reductionNames) {
		return reductionNames[r]
	}
	return "?"
}

var binaryKinds = map[Symbol]ast.Kind{
	Terminal(token.Pipe):    ast.KindOr,
	Terminal(token.Caret):   ast.KindXor,
	Terminal(token.Amp):     ast.KindAnd,
	Terminal(token.Shl):     ast.KindShl,
	Terminal(token.Shr):     ast.KindShr,
	Terminal(token.Plus):    ast.KindSum,
	Terminal(token.Minus):   ast.KindDifference,
	Terminal(token.Star):    ast.KindProduct,
	Terminal(token.Slash):   ast.KindQuotient,
	Terminal(token.Percent): ast.KindRemainder,
}

// combine applies a reduction to the popped symbols and values. The slices
// belong to the caller's stacks and must not be retained.
func combine(r Reduction, syms []Symbol, vals []*ast.Node) *ast.Node {
	first, last := vals[0], vals[len(vals)-1]
	span := first.Span.Join(last.Span)

	switch r {
	case Group:
		inner := vals[1]
		inner.Span = span
		return inner

	case Binary:
		return &ast.Node{Kind: binaryKinds[syms[1]], Span: span, Left: vals[0], Right: vals[2]}

	case Complement:
		return &ast.Node{Kind: ast.KindNot, Span: span, Left: vals[1]}

	case StartValues:
		return &ast.Node{Kind: ast.KindValues, Span: span, Args: []*ast.Node{first}}

	case AppendValue:
		list := vals[0]
		list.Args = append(list.Args, vals[2])
		list.Span = span
		return list

	case MakeData:
		return &ast.Node{Kind: ast.KindData, Span: span, Width: first.Width, Args: vals[1].Args}

	case MakeInstruction:
		// Operands sit at every other position after the mnemonic.
		var args []*ast.Node
		for i := 1; i < len(vals); i += 2 {
			args = append(args, vals[i])
		}
		return &ast.Node{
			Kind:   ast.KindInstruction,
			Span:   span,
			Opcode: first.Opcode,
			Class:  first.Class,
			Args:   args,
		}

	default: // Promote
		return first
	}
}
