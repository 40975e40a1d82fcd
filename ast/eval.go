package ast

import (
	"errors"
	"fmt"

	"github.com/Urethramancer/r16/token"
)

// ErrDivisionByZero is returned when a quotient or remainder has a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// UnresolvedLabelError names an identifier missing from the label table.
type UnresolvedLabelError struct {
	Name string
	Span token.Span
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("unresolved label %q", e.Name)
}

// Eval computes the value of an expression subtree using wrapping signed
// 64-bit arithmetic. Shift counts use the low six bits of the right operand.
func (n *Node) Eval(labels Labels) (int64, error) {
	switch n.Kind {
	case KindNumber:
		return n.Value, nil
	case KindRegister:
		return int64(n.Reg), nil
	case KindIdent:
		if n.Name == CurrentPosition {
			return int64(n.Offset), nil
		}
		off, ok := labels[n.Name]
		if !ok {
			return 0, &UnresolvedLabelError{Name: n.Name, Span: n.Span}
		}
		return int64(off), nil
	case KindNot:
		v, err := n.Left.Eval(labels)
		return ^v, err
	}

	if !n.Kind.IsBinary() {
		return 0, fmt.Errorf("cannot evaluate %s", n.Kind)
	}

	lhs, err := n.Left.Eval(labels)
	if err != nil {
		return 0, err
	}
	rhs, err := n.Right.Eval(labels)
	if err != nil {
		return 0, err
	}

	switch n.Kind {
	case KindSum:
		return lhs + rhs, nil
	case KindDifference:
		return lhs - rhs, nil
	case KindProduct:
		return lhs * rhs, nil
	case KindQuotient:
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		return lhs / rhs, nil
	case KindRemainder:
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		return lhs % rhs, nil
	case KindAnd:
		return lhs & rhs, nil
	case KindOr:
		return lhs | rhs, nil
	case KindXor:
		return lhs ^ rhs, nil
	case KindShl:
		return lhs << (uint64(rhs) & 63), nil
	default: // KindShr
		return lhs >> (uint64(rhs) & 63), nil
	}
}
