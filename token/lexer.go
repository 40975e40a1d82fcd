package token

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/r16/isa"
)

// LexError reports an unrecognised character or malformed literal.
type LexError struct {
	Span Span
	Text string
	Err  error
}

func (e *LexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid literal %q: %v", e.Span, e.Text, e.Err)
	}
	return fmt.Sprintf("%s: unexpected character %q", e.Span, e.Text)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

var (
	reSpace    = regexp.MustCompile(`^\s+`)
	reComment  = regexp.MustCompile(`^//[^\n]*`)
	reOperator = regexp.MustCompile(`^(<<|>>|[-+*/%&|^~(),])`)
	reNumber   = regexp.MustCompile(`^(0x[0-9a-fA-F]+|0b[01]+|[0-9]+)`)
	reWord     = regexp.MustCompile(`^[^\s+\-*/%()|^&~,<>]+`)
)

var operators = map[string]Kind{
	"+":  Plus,
	"-":  Minus,
	"*":  Star,
	"/":  Slash,
	"%":  Percent,
	"&":  Amp,
	"|":  Pipe,
	"^":  Caret,
	"~":  Tilde,
	"<<": Shl,
	">>": Shr,
	"(":  LParen,
	")":  RParen,
	",":  Comma,
}

// Lex splits source text into tokens. The result always ends with an EOI token.
func Lex(src string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(src) {
		rest := src[pos:]
		if m := reSpace.FindString(rest); m != "" {
			pos += len(m)
			continue
		}
		if m := reComment.FindString(rest); m != "" {
			pos += len(m)
			continue
		}

		var tok Token
		var err error
		switch {
		case reOperator.MatchString(rest):
			m := reOperator.FindString(rest)
			tok = Token{Kind: operators[m], Text: m}
		case reNumber.MatchString(rest):
			m := reNumber.FindString(rest)
			tok, err = lexNumber(m)
		case reWord.MatchString(rest):
			tok = classifyWord(reWord.FindString(rest))
		default:
			text := rest[:1]
			return nil, &LexError{Span: Span{Start: pos, End: pos + 1}, Text: text}
		}

		tok.Span = Span{Start: pos, End: pos + len(tok.Text)}
		if err != nil {
			return nil, &LexError{Span: tok.Span, Text: tok.Text, Err: err}
		}
		tokens = append(tokens, tok)
		pos = tok.Span.End
	}

	tokens = append(tokens, Token{Kind: EOI, Span: Span{Start: len(src), End: len(src)}})
	return tokens, nil
}

// lexNumber parses decimal, 0x hex and 0b binary literals.
// Hex and binary accept the full 64-bit range as two's complement.
func lexNumber(s string) (Token, error) {
	tok := Token{Kind: Number, Text: s}
	switch {
	case strings.HasPrefix(s, "0x"):
		v, err := strconv.ParseUint(s[2:], 16, 64)
		tok.Number = int64(v)
		return tok, err
	case strings.HasPrefix(s, "0b"):
		v, err := strconv.ParseUint(s[2:], 2, 64)
		tok.Number = int64(v)
		return tok, err
	default:
		v, err := strconv.ParseInt(s, 10, 64)
		tok.Number = v
		return tok, err
	}
}

// classifyWord decides between label, register, mnemonic, data type and identifier.
func classifyWord(w string) Token {
	if len(w) > 1 && strings.HasSuffix(w, ":") {
		return Token{Kind: Label, Text: w, Name: w[:len(w)-1]}
	}
	if r, ok := isa.Register(w); ok {
		return Token{Kind: Register, Text: w, Reg: r}
	}
	if op, size, ok := isa.LookupMnemonic(w); ok {
		return Token{Kind: Mnemonic, Text: w, Opcode: op, Size: size}
	}
	if width, ok := isa.DataWidth(w); ok {
		return Token{Kind: DataType, Text: w, Width: width}
	}
	return Token{Kind: Ident, Text: w, Name: w}
}

// Position converts a byte offset into a 1-based line and column.
func Position(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1 + strings.Count(src[:offset], "\n")
	col = offset - strings.LastIndexByte(src[:offset], '\n')
	return line, col
}
