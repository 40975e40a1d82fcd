package parser

import (
	"math/bits"
	"strings"

	"github.com/Urethramancer/r16/token"
)

// Symbol is a grammar symbol. Terminals share their numbering with token kinds.
type Symbol int

// Terminal returns the grammar symbol for a token kind.
func Terminal(k token.Kind) Symbol {
	return Symbol(k)
}

// Nonterminals, loosest expression level first.
const (
	Operand        Symbol = Symbol(token.KindCount) + iota // complete instruction operand or data value
	Or                                                     // a | b
	Xor                                                    // a ^ b
	And                                                    // a & b
	Shift                                                  // a << b, a >> b
	Additive                                               // a + b, a - b
	Multiplicative                                         // a * b, a / b, a % b
	Unary                                                  // ~a
	Atom                                                   // number, identifier, (expr)
	Values                                                 // data value list
	Instruction                                            // mnemonic and operands
	Data                                                   // data directive

	symbolCount
)

var nonterminalNames = [...]string{
	"operand", "or-expr", "xor-expr", "and-expr", "shift-expr", "additive-expr",
	"multiplicative-expr", "unary-expr", "atom", "values", "instruction", "data",
}

func (s Symbol) String() string {
	if s < Symbol(token.KindCount) {
		return token.Kind(s).String()
	}
	if s < symbolCount {
		return nonterminalNames[s-Operand]
	}
	return "?"
}

// IsStatement reports whether the symbol completes a top-level statement.
func (s Symbol) IsStatement() bool {
	return s == Instruction || s == Data || s == Terminal(token.Label)
}

// Set is a set of grammar symbols.
type Set uint64

func setOf(syms ...Symbol) Set {
	var s Set
	for _, sym := range syms {
		s |= 1 << uint(sym)
	}
	return s
}

func kindSet(kinds ...token.Kind) Set {
	var s Set
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Has reports whether sym is in the set.
func (s Set) Has(sym Symbol) bool {
	return sym >= 0 && sym < 64 && s&(1<<uint(sym)) != 0
}

// Len returns the number of members.
func (s Set) Len() int {
	return bits.OnesCount64(uint64(s))
}

func (s Set) String() string {
	var names []string
	for sym := Symbol(0); sym < symbolCount; sym++ {
		if s.Has(sym) {
			names = append(names, sym.String())
		}
	}
	return strings.Join(names, ", ")
}
