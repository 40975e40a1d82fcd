package assembler

import (
	"errors"
	"fmt"

	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/isa"
	"github.com/Urethramancer/r16/token"
)

// ErrMisalignedOrigin is returned for an origin that is not a multiple of four.
var ErrMisalignedOrigin = errors.New("origin must be a multiple of 4")

// ArityError reports an instruction whose operand count does not match its opcode.
type ArityError struct {
	Opcode isa.Opcode
	Want   int
	Got    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s takes %d operands, got %d", e.Opcode, e.Want, e.Got)
}

// ShapeError reports an opcode with no declared operand shape.
type ShapeError struct {
	Opcode isa.Opcode
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s has no operand shape", e.Opcode)
}

// Error ties a layout or encoding failure to the statement that caused it.
type Error struct {
	Span      token.Span
	Statement string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Span, e.Statement, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errNotStatement(n *ast.Node) error {
	return fmt.Errorf("%s is not a statement", n.Kind)
}
