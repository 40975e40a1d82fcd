package assembler

import (
	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/isa"
)

// Encode serialises a laid-out program. Every statement is padded to a
// multiple of four bytes, so each run of output matches its offset delta.
func Encode(prog ast.Program, labels ast.Labels) ([]byte, error) {
	var out []byte
	for _, n := range prog {
		code, err := EncodeStatement(n, labels)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
	}
	return out, nil
}

// EncodeStatement returns the padded encoding of one statement.
func EncodeStatement(n *ast.Node, labels ast.Labels) ([]byte, error) {
	var code []byte
	var err error

	switch n.Kind {
	case ast.KindLabel:
		// Labels do not emit code.
		return nil, nil
	case ast.KindInstruction:
		code, err = encodeInstruction(n, labels)
	case ast.KindData:
		code, err = encodeData(n, labels)
	default:
		return nil, statementError(n, errNotStatement(n))
	}

	if err != nil {
		return nil, statementError(n, err)
	}
	return isa.Pad(code), nil
}

// encodeInstruction evaluates each operand in the order of the opcode's shape
// and packs it into the header or the trailing 64-bit immediate.
func encodeInstruction(n *ast.Node, labels ast.Labels) ([]byte, error) {
	shape, ok := isa.ShapeOf(n.Opcode)
	if !ok {
		return nil, &ShapeError{Opcode: n.Opcode}
	}
	if len(n.Args) != shape.Arity() {
		return nil, &ArityError{Opcode: n.Opcode, Want: shape.Arity(), Got: len(n.Args)}
	}

	h := isa.Header{Opcode: n.Opcode, Size: n.Class}
	var imm int64
	for i, category := range shape[:shape.Arity()] {
		v, err := n.Args[i].Eval(labels)
		if err != nil {
			return nil, err
		}
		if !h.Set(category, v) {
			imm = v
		}
	}

	header := h.Bytes()
	code := header[:]
	if shape.HasImm64() {
		code = isa.PutLE(code, imm, isa.ImmediateSize)
	}
	return code, nil
}

// encodeData writes each value as width little-endian bytes.
func encodeData(n *ast.Node, labels ast.Labels) ([]byte, error) {
	code := make([]byte, 0, n.Width*len(n.Args))
	for _, a := range n.Args {
		v, err := a.Eval(labels)
		if err != nil {
			return nil, err
		}
		code = isa.PutLE(code, v, n.Width)
	}
	return code, nil
}
