package parser

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/token"
)

// SyntaxError reports a token no grammar action accepts.
type SyntaxError struct {
	Token    token.Token
	Expected Set
}

func (e *SyntaxError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("%s: unexpected %s", e.Token.Span, e.Token)
	}
	return fmt.Sprintf("%s: unexpected %s, expected %s", e.Token.Span, e.Token, e.Expected)
}

// Parse runs the shift/reduce automaton over a token stream and returns the
// program's top-level statements in source order.
func Parse(tokens []token.Token) (ast.Program, error) {
	var (
		syms []Symbol
		vals []*ast.Node
		pos  int
	)

	eoi := token.Token{Kind: token.EOI}
	if n := len(tokens); n > 0 {
		eoi.Span = token.Span{Start: tokens[n-1].Span.End, End: tokens[n-1].Span.End}
	}

	for {
		la := eoi
		if pos < len(tokens) {
			la = tokens[pos]
		}
		act := Decide(syms, Terminal(la.Kind))
		if glog.V(3) {
			glog.Infof("parse: stack %v lookahead %s: %v", syms, la.Kind, act)
		}

		switch act.Kind {
		case ShiftToken:
			if la.Kind == token.EOI || !act.Expect.Has(Terminal(la.Kind)) {
				return nil, &SyntaxError{Token: la, Expected: act.Expect}
			}
			syms = append(syms, Terminal(la.Kind))
			vals = append(vals, ast.FromToken(la))
			pos++

		case ReduceStack:
			base := len(syms) - act.Arity
			node := combine(act.Rule, syms[base:], vals[base:])
			syms = append(syms[:base], act.Result)
			vals = append(vals[:base], node)

		default:
			if la.Kind != token.EOI {
				return nil, &SyntaxError{Token: la}
			}
			return finish(syms, vals, la)
		}
	}
}

// finish checks that only complete statements remain on the stack.
func finish(syms []Symbol, vals []*ast.Node, eoi token.Token) (ast.Program, error) {
	for _, s := range syms {
		if !s.IsStatement() {
			return nil, &SyntaxError{Token: eoi, Expected: statementStart}
		}
	}
	prog := make(ast.Program, len(vals))
	copy(prog, vals)
	if glog.V(2) {
		glog.Infof("parse: %d statements", len(prog))
	}
	return prog, nil
}

// ParseSource lexes and parses source text.
func ParseSource(src string) (ast.Program, error) {
	tokens, err := token.Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}
