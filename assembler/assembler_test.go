package assembler_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/Urethramancer/r16/assembler"
	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/isa"
	"github.com/Urethramancer/r16/parser"
	"github.com/Urethramancer/r16/token"
)

// Assembles source and checks against an expected byte sequence (in hex).
// Automatically validates output length and content.
func assembleAndMatchHex(t *testing.T, name, src, expectedHex string) {
	t.Helper()

	expectedHex = strings.ToLower(strings.Join(strings.Fields(expectedHex), ""))
	expected, err := hex.DecodeString(expectedHex)
	if err != nil {
		t.Fatalf("[%s] invalid expected hex string: %v", name, err)
	}

	code, err := assembler.Assemble(src)
	if err != nil {
		t.Fatalf("[%s] failed to assemble:\n%s\nerror: %v", name, src, err)
	}
	if len(code) != len(expected) {
		t.Fatalf("[%s] expected %d bytes, got %d\nexpected: % X\ngot:      % X",
			name, len(expected), len(code), expected, code)
	}
	for i := range code {
		if code[i] != expected[i] {
			t.Errorf("[%s] mismatch at byte %d\nexpected: % X\ngot:      % X",
				name, i, expected, code)
			break
		}
	}
}

const sample = "start: add r1, r2, r3 \n loa r4, r5, 100 \n db 1,2,3"

func TestSampleProgram(t *testing.T) {
	assembleAndMatchHex(t, "Sample", sample, `
		02 21 03 30
		01 54 00 30 64 00 00 00 00 00 00 00
		01 02 03 00`)

	prog, err := parser.ParseSource(sample)
	if err != nil {
		t.Fatal(err)
	}
	asm := assembler.New()
	if _, err := asm.Build(prog, 0); err != nil {
		t.Fatal(err)
	}

	wantOffsets := []uint64{0, 0, 4, 16}
	wantSizes := []uint64{0, 4, 12, 3}
	for i, n := range prog {
		if n.Offset != wantOffsets[i] || n.Size != wantSizes[i] {
			t.Errorf("statement %d: offset %d size %d, want %d %d",
				i, n.Offset, n.Size, wantOffsets[i], wantSizes[i])
		}
	}
	if off, ok := asm.Labels()["start"]; !ok || off != 0 {
		t.Errorf("start: got (%d, %v)", off, ok)
	}
}

// Core instruction encodings
func TestInstructionEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"STO", "sto r1, r2, 8", "00 20 01 30 08 00 00 00 00 00 00 00"},
		{"ADD", "add r1, r2, r3", "02 21 03 30"},
		{"SUB_S", "subS r3, r4, r5", "03 43 05 10"},
		{"MUL_I", "mulI r1, r1, r1", "04 11 01 20"},
		{"ADDN_B", "addnB r1, r2, 0xffffffffffffffff", "06 21 00 00 FF FF FF FF FF FF FF FF"},
		{"SHRN_L", "shrnL r2, r3, 1 << 8", "17 32 00 30 00 01 00 00 00 00 00 00"},
		{"LOA_Negative", "loa r1, r2, 0 - 1", "01 21 00 30 FF FF FF FF FF FF FF FF"},
		{"PUSH", "push r3", "18 00 03 30"},
		{"POP", "pop r4", "19 04 00 30"},
		{"CALL_SP", "call sp", "1A 00 0E 30"},
		{"IINT", "iint 0x21", "1B 00 20 31"},
		{"IRET", "iret", "1C 00 00 30"},
		{"CHST", "chst r5", "1D 50 00 30"},
		{"LOST", "lost r6", "1E 06 00 30"},
		{"UTOK", "utok r1, r2", "23 01 02 30"},
		{"KTOU_PC", "ktou pc, r0", "24 0F 00 30"},
		{"RegisterExpression", "add 1 + 1, r2, 3", "02 22 03 30"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestDataEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		// DB: bytes in order, padded to four
		{"DB", "db 1,2,3", "01 02 03 00"},
		{"DB_Five", "db 1,2,3,4,5", "01 02 03 04 05 00 00 00"},
		{"DB_Truncated", "db 0x1ff", "FF 00 00 00"},
		// DS: little-endian halfwords
		{"DS", "ds 0x1234, 0x5678", "34 12 78 56"},
		{"DS_Single", "ds 1", "01 00 00 00"},
		// DI: little-endian words
		{"DI", "di 0xdeadbeef", "EF BE AD DE"},
		// DL: little-endian doublewords
		{"DL", "dl 1", "01 00 00 00 00 00 00 00"},
		{"DL_Negative", "dl ~0", "FF FF FF FF FF FF FF FF"},
		{"Expressions", "db 1 | 2 & 3, 10 % 4, 0b11 ^ 1", "03 02 02 00"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

// Label resolution and current position
func TestLabelResolution(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"Forward", "loa r1, r0, target\ndb 0\ntarget: iret",
			"01 01 00 30 10 00 00 00 00 00 00 00  00 00 00 00  1C 00 00 30"},
		{"Backward", "loop: addn r1, r1, 1\nloa r15, r0, loop",
			"06 11 00 30 01 00 00 00 00 00 00 00  01 0F 00 30 00 00 00 00 00 00 00 00"},
		{"CurrentPosition", "db $, $\ndi $ + 4\nloa r1, r2, $",
			"00 00 00 00  08 00 00 00  01 21 00 30 08 00 00 00 00 00 00 00"},
		{"Distance", "start: db 1\nend: db end - start", "01 00 00 00  04 00 00 00"},
		{"LabelsBetween", "a: b: iret\nc: db c - a", "1C 00 00 30  04 00 00 00"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestOrigin(t *testing.T) {
	asm := assembler.New()
	code, err := asm.Assemble("here: loa r1, r2, here\nnext: db $", 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := hex.DecodeString("012100300010000000000000" + "0c000000")
	if !bytes.Equal(code, want) {
		t.Errorf("got % x, want % x", code, want)
	}
	labels := asm.Labels()
	if labels["here"] != 0x1000 || labels["next"] != 0x100c {
		t.Errorf("labels: got %v", labels)
	}

	if _, err := asm.Assemble("iret", 2); !errors.Is(err, assembler.ErrMisalignedOrigin) {
		t.Errorf("expected ErrMisalignedOrigin, got %v", err)
	}
}

func TestEveryOpcodeSize(t *testing.T) {
	for op := isa.Opcode(0); op < isa.OpSetSyscall; op++ {
		shape, ok := isa.ShapeOf(op)
		if !ok {
			t.Fatalf("%v: no shape", op)
		}
		var operands []string
		for _, o := range shape[:shape.Arity()] {
			if o.IsRegister() {
				operands = append(operands, "r1")
			} else {
				operands = append(operands, "1")
			}
		}
		src := op.String()
		if len(operands) > 0 {
			src += " " + strings.Join(operands, ", ")
		}
		code, err := assembler.Assemble(src)
		if err != nil {
			t.Errorf("%s: %v", src, err)
			continue
		}
		if uint64(len(code)) != shape.Size() {
			t.Errorf("%s: %d bytes, want %d", src, len(code), shape.Size())
		}
		if code[0] != byte(op) {
			t.Errorf("%s: opcode byte %02x", src, code[0])
		}
	}
}

func TestErrors(t *testing.T) {
	t.Run("DivisionByZero", func(t *testing.T) {
		for _, src := range []string{"db 1 / 0", "loa r1, r2, 5 % (3 - 3)", "di 1 + 2 / (label - label)\nlabel:"} {
			_, err := assembler.Assemble(src)
			if !errors.Is(err, ast.ErrDivisionByZero) {
				t.Errorf("%q: expected ErrDivisionByZero, got %v", src, err)
			}
		}
	})

	t.Run("UnresolvedLabel", func(t *testing.T) {
		_, err := assembler.Assemble("loa r1, r2, nowhere + 4")
		var unresolved *ast.UnresolvedLabelError
		if !errors.As(err, &unresolved) {
			t.Fatalf("expected UnresolvedLabelError, got %v", err)
		}
		if unresolved.Name != "nowhere" {
			t.Errorf("name: got %q", unresolved.Name)
		}
		if !strings.Contains(err.Error(), "nowhere") {
			t.Errorf("message does not name the label: %v", err)
		}
	})

	t.Run("Arity", func(t *testing.T) {
		tests := []struct {
			src       string
			want, got int
		}{
			{"add r1, r2", 3, 2},
			{"iret r1", 0, 1},
			{"push", 1, 0},
			{"utok r1, r2, r3", 2, 3},
		}
		for _, tc := range tests {
			_, err := assembler.Assemble(tc.src)
			var arity *assembler.ArityError
			if !errors.As(err, &arity) {
				t.Errorf("%q: expected ArityError, got %v", tc.src, err)
				continue
			}
			if arity.Want != tc.want || arity.Got != tc.got {
				t.Errorf("%q: got want=%d got=%d", tc.src, arity.Want, arity.Got)
			}
			var stmt *assembler.Error
			if !errors.As(err, &stmt) || stmt.Span.Start != 0 {
				t.Errorf("%q: expected statement span, got %v", tc.src, err)
			}
		}
	})

	t.Run("NoShape", func(t *testing.T) {
		for _, src := range []string{"syscall", "setsyscall r1"} {
			_, err := assembler.Assemble(src)
			var shape *assembler.ShapeError
			if !errors.As(err, &shape) {
				t.Errorf("%q: expected ShapeError, got %v", src, err)
			}
		}
	})

	t.Run("Syntax", func(t *testing.T) {
		_, err := assembler.Assemble("add r1,,")
		var syn *parser.SyntaxError
		if !errors.As(err, &syn) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
		if syn.Token.Span.Start != 7 {
			t.Errorf("span: got %v", syn.Token.Span)
		}
	})

	t.Run("Lexical", func(t *testing.T) {
		_, err := assembler.Assemble("db 1 < 2")
		var lexErr *token.LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("expected LexError, got %v", err)
		}
	})
}

func TestPassesSeparately(t *testing.T) {
	src := "jump: loa r15, r0, data\nadd r1, r2, r3\ndata: di 1, 2, 3\niint 9"
	prog, err := parser.ParseSource(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := assembler.Sizes(prog); err != nil {
		t.Fatal(err)
	}
	end := assembler.Layout(prog, 0)
	labels := assembler.CollectLabels(prog)
	if labels["data"] != 16 {
		t.Errorf("data: got %d, want 16", labels["data"])
	}
	code, err := assembler.Encode(prog, labels)
	if err != nil {
		t.Fatal(err)
	}
	if uint64(len(code)) != end {
		t.Errorf("encoded %d bytes, layout ended at %d", len(code), end)
	}

	var last uint64
	for _, n := range prog {
		if n.Offset < last || n.Offset%4 != 0 {
			t.Errorf("bad offset %d after %d", n.Offset, last)
		}
		last = n.Offset
	}
}

func TestIdempotent(t *testing.T) {
	src := "a: loa r1, r2, b - a\nb: db 1, 2\nc: ds $ >> 1"
	first, err := assembler.Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	second, err := assembler.Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("outputs differ:\n% x\n% x", first, second)
	}
}

func TestPrettyPrintRoundTrip(t *testing.T) {
	src := `
start:  loaS r1, sp, (end - start) * 2 | 1
        sto r3, r4, ~0
        iint 0x80
        push pc
        utok r1, r2
data:   ds 1, 2, 3 + $
        dl 0xffffffffffffffff
end:    iret
`
	prog, err := parser.ParseSource(src)
	if err != nil {
		t.Fatal(err)
	}
	want, err := assembler.New().Build(prog, 0)
	if err != nil {
		t.Fatal(err)
	}

	text := prog.String()
	got, err := assembler.Assemble(text)
	if err != nil {
		t.Fatalf("re-assembling:\n%s\nerror: %v", text, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("round trip differs\nsource:\n%s\nwant: % x\ngot:  % x", text, want, got)
	}
}

func TestListing(t *testing.T) {
	asm := assembler.New()
	asm.SetListingMode(true)
	if _, err := asm.Assemble(sample, 0); err != nil {
		t.Fatal(err)
	}
	lines := asm.Listing()
	if len(lines) != 4 {
		t.Fatalf("expected 4 listing lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[0], "00000000 ") || !strings.HasSuffix(lines[0], "start:") {
		t.Errorf("label line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "00000000  02 21 03 30 ") || !strings.HasSuffix(lines[1], "add r1, r2, r3") {
		t.Errorf("add line: %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "00000010  01 02 03 00 ") || !strings.HasSuffix(lines[3], "db 1, 2, 3") {
		t.Errorf("data line: %q", lines[3])
	}

	asm.SetListingMode(false)
	if _, err := asm.Assemble("iret", 0); err != nil {
		t.Fatal(err)
	}
	if len(asm.Listing()) != 0 {
		t.Errorf("listing kept after disabling: %v", asm.Listing())
	}
}
