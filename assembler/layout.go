package assembler

import (
	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/isa"
)

// statementError wraps err with the statement's span and text.
func statementError(n *ast.Node, err error) error {
	return &Error{Span: n.Span, Statement: n.String(), Err: err}
}

// Sizes computes the byte size of every statement. Sizes depend only on the
// statement itself: labels take no space, data takes width × count bytes and
// instructions take the size of their opcode's shape.
func Sizes(prog ast.Program) error {
	for _, n := range prog {
		switch n.Kind {
		case ast.KindLabel:
			n.Size = 0
		case ast.KindData:
			n.Size = uint64(n.Width) * uint64(len(n.Args))
		case ast.KindInstruction:
			shape, ok := isa.ShapeOf(n.Opcode)
			if !ok {
				return statementError(n, &ShapeError{Opcode: n.Opcode})
			}
			n.Size = shape.Size()
		default:
			return statementError(n, errNotStatement(n))
		}
	}
	return nil
}

// Layout assigns each statement the running cursor as its offset, then
// advances the cursor by the statement's size rounded up to four bytes.
// It returns the final cursor.
func Layout(prog ast.Program, origin uint64) uint64 {
	cursor := origin
	for _, n := range prog {
		n.SetOffset(cursor)
		cursor = isa.Align4(cursor + n.Size)
	}
	return cursor
}

// CollectLabels builds the label table from a laid-out program.
// A label defined twice resolves to its last definition.
func CollectLabels(prog ast.Program) ast.Labels {
	labels := make(ast.Labels)
	for _, n := range prog {
		if n.Kind == ast.KindLabel {
			labels[n.Name] = n.Offset
		}
	}
	return labels
}
