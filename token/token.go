package token

import (
	"fmt"

	"github.com/Urethramancer/r16/isa"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	EOI Kind = iota // end of input

	// Values
	Number   // 42, 0x2a, 0b101010
	Register // r0-r15, sp, pc
	Mnemonic // add, loaB
	DataType // db, ds, di, dl
	Ident    // any other word, including $
	Label    // name:

	// Operators
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Amp     // &
	Pipe    // |
	Caret   // ^
	Tilde   // ~
	Shl     // <<
	Shr     // >>

	// Punctuation
	LParen // (
	RParen // )
	Comma  // ,

	// KindCount is the number of token kinds.
	KindCount
)

var kindNames = [...]string{
	EOI:      "end of input",
	Number:   "number",
	Register: "register",
	Mnemonic: "mnemonic",
	DataType: "data type",
	Ident:    "identifier",
	Label:    "label",
	Plus:     "'+'",
	Minus:    "'-'",
	Star:     "'*'",
	Slash:    "'/'",
	Percent:  "'%'",
	Amp:      "'&'",
	Pipe:     "'|'",
	Caret:    "'^'",
	Tilde:    "'~'",
	Shl:      "'<<'",
	Shr:      "'>>'",
	LParen:   "'('",
	RParen:   "')'",
	Comma:    "','",
}

func (k Kind) String() string {
	if k >= 0 && k < KindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Span is a half-open byte range in the source text.
type Span struct {
	Start int
	End   int
}

// Join returns the smallest span covering both spans.
func (s Span) Join(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Token is one lexical unit. Only the fields matching Kind are meaningful.
type Token struct {
	Kind Kind
	Span Span
	Text string

	Number int64         // Number
	Reg    uint8         // Register
	Opcode isa.Opcode    // Mnemonic
	Size   isa.SizeClass // Mnemonic
	Width  int           // DataType
	Name   string        // Ident, Label
}

func (t Token) String() string {
	if t.Kind == EOI {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
