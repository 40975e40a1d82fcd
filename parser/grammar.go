package parser

import (
	"fmt"
	"slices"

	"github.com/Urethramancer/r16/token"
)

// ActionKind selects what the driving loop does next.
type ActionKind int

const (
	// NoMatch ends parsing at end of input and is a syntax error anywhere else.
	NoMatch ActionKind = iota
	// ShiftToken consumes the lookahead, which must be in Action.Expect.
	ShiftToken
	// ReduceStack replaces the top Action.Arity entries with one Action.Result entry.
	ReduceStack
)

// Action is one decision of the grammar table.
type Action struct {
	Kind   ActionKind
	Expect Set       // ShiftToken
	Arity  int       // ReduceStack
	Rule   Reduction // ReduceStack
	Result Symbol    // ReduceStack
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftToken:
		return "shift [" + a.Expect.String() + "]"
	case ReduceStack:
		return fmt.Sprintf("reduce %d %s -> %s", a.Arity, a.Rule, a.Result)
	default:
		return "no match"
	}
}

// rule maps a window of symbols on top of the stack, plus an optional
// lookahead restriction, to an action.
type rule struct {
	window []Symbol
	look   Set // zero accepts any lookahead
	action Action
}

func (r rule) matches(stack []Symbol, lookahead Symbol) bool {
	if len(stack) < len(r.window) {
		return false
	}
	if r.look != 0 && !r.look.Has(lookahead) {
		return false
	}
	return slices.Equal(stack[len(stack)-len(r.window):], r.window)
}

var (
	sMnemonic = Terminal(token.Mnemonic)
	sDataType = Terminal(token.DataType)
	sComma    = Terminal(token.Comma)
	sLParen   = Terminal(token.LParen)
	sRParen   = Terminal(token.RParen)
	sTilde    = Terminal(token.Tilde)

	// Tokens that may begin an instruction operand.
	operandStart = kindSet(token.Register, token.LParen, token.Number, token.Tilde, token.Ident)
	// Tokens that may begin an arithmetic expression.
	valueStart = kindSet(token.LParen, token.Number, token.Tilde, token.Ident)
	// Tokens that may begin a statement.
	statementStart = kindSet(token.Mnemonic, token.DataType, token.Label)
	commaOnly      = kindSet(token.Comma)
)

// level describes one rung of the binary precedence ladder.
type level struct {
	sym       Symbol
	looser    Symbol
	operators []token.Kind
}

// ladder lists the binary levels from loosest to tightest binding.
var ladder = []level{
	{Or, Operand, []token.Kind{token.Pipe}},
	{Xor, Or, []token.Kind{token.Caret}},
	{And, Xor, []token.Kind{token.Amp}},
	{Shift, And, []token.Kind{token.Shl, token.Shr}},
	{Additive, Shift, []token.Kind{token.Plus, token.Minus}},
	{Multiplicative, Additive, []token.Kind{token.Star, token.Slash, token.Percent}},
}

func shift(window []Symbol, look Set, expect Set) rule {
	return rule{window: window, look: look, action: Action{Kind: ShiftToken, Expect: expect}}
}

func reduce(window []Symbol, look Set, r Reduction, result Symbol) rule {
	return rule{window: window, look: look, action: Action{
		Kind: ReduceStack, Arity: len(window), Rule: r, Result: result,
	}}
}

func grammarRules() []rule {
	E := Operand
	rules := []rule{
		// Instructions take up to three comma-separated operands.
		reduce([]Symbol{sMnemonic, E, sComma, E, sComma, E}, 0, MakeInstruction, Instruction),
		shift([]Symbol{sMnemonic, E, sComma, E, sComma}, 0, operandStart),
		shift([]Symbol{sMnemonic, E, sComma, E}, commaOnly, commaOnly),
		reduce([]Symbol{sMnemonic, E, sComma, E}, 0, MakeInstruction, Instruction),
		shift([]Symbol{sMnemonic, E, sComma}, 0, operandStart),
		shift([]Symbol{sMnemonic, E}, commaOnly, commaOnly),
		reduce([]Symbol{sMnemonic, E}, 0, MakeInstruction, Instruction),
		shift([]Symbol{sMnemonic}, operandStart, operandStart),
		reduce([]Symbol{sMnemonic}, 0, MakeInstruction, Instruction),

		// Data directives take a non-empty value list.
		reduce([]Symbol{Values, sComma, E}, 0, AppendValue, Values),
		shift([]Symbol{sDataType, Values, sComma}, 0, valueStart),
		shift([]Symbol{sDataType, Values}, commaOnly, commaOnly),
		reduce([]Symbol{sDataType, Values}, 0, MakeData, Data),
		shift([]Symbol{sDataType}, 0, valueStart),
		reduce([]Symbol{E}, 0, StartValues, Values),

		// Parenthesised expressions re-enter the loosest level.
		reduce([]Symbol{sLParen, Or, sRParen}, 0, Group, Atom),
		shift([]Symbol{sLParen, Or}, 0, kindSet(token.RParen, token.Pipe)),
		shift([]Symbol{sLParen}, 0, valueStart),

		// Unary not, atoms and registers.
		reduce([]Symbol{sTilde, Unary}, 0, Complement, Unary),
		shift([]Symbol{sTilde}, 0, valueStart),
		reduce([]Symbol{Unary}, 0, Promote, Multiplicative),
		reduce([]Symbol{Atom}, 0, Promote, Unary),
		reduce([]Symbol{Terminal(token.Number)}, 0, Promote, Atom),
		reduce([]Symbol{Terminal(token.Ident)}, 0, Promote, Atom),
		reduce([]Symbol{Terminal(token.Register)}, 0, Promote, Operand),
	}

	// Each binary level folds left-to-right while its own operators follow,
	// then promotes to the next looser level.
	for _, lv := range ladder {
		ops := kindSet(lv.operators...)
		for _, op := range lv.operators {
			rules = append(rules,
				reduce([]Symbol{lv.sym, Terminal(op), lv.sym}, 0, Binary, lv.sym),
				shift([]Symbol{lv.sym, Terminal(op)}, 0, valueStart),
			)
		}
		rules = append(rules,
			shift([]Symbol{lv.sym}, ops, ops),
			reduce([]Symbol{lv.sym}, 0, Promote, lv.looser),
		)
	}
	return rules
}

// table holds the rules bucketed by top-of-stack symbol, longest window first.
// Within a length, declaration order decides.
var table = buildTable(grammarRules())

func buildTable(rules []rule) [symbolCount][]rule {
	var t [symbolCount][]rule
	for _, r := range rules {
		top := r.window[len(r.window)-1]
		t[top] = append(t[top], r)
	}
	for i := range t {
		slices.SortStableFunc(t[i], func(a, b rule) int {
			return len(b.window) - len(a.window)
		})
	}
	return t
}

// Decide returns the action for the given symbol stack and lookahead.
func Decide(stack []Symbol, lookahead Symbol) Action {
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		if top >= 0 && top < symbolCount {
			for _, r := range table[top] {
				if r.matches(stack, lookahead) {
					return r.action
				}
			}
		}
	}

	if lookahead == Terminal(token.EOI) {
		return Action{Kind: NoMatch}
	}
	return Action{Kind: ShiftToken, Expect: statementStart}
}
