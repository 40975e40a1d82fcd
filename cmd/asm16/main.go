package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/Urethramancer/r16/assembler"
	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/parser"
	"github.com/Urethramancer/r16/token"
)

func main() {
	opt := arg.New("asm16")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the binary image to FILE.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "x", "hex", "Print the image as hex text.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "l", "listing", "Print a listing of offsets, bytes and statements.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "d", "dump", "Dump the parsed program after layout.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "O", "origin", "Offset of the first statement.", "0", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Log level (2 for pass summaries, 3 for parser traces).", 0, false, arg.VarInt, nil)
	opt.SetPositional("SOURCE", "Assembly source file.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	if opt.GetBool("help") {
		opt.PrintHelp()
		return
	}

	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(opt.GetInt("verbose")))
	defer glog.Flush()

	origin, err := strconv.ParseUint(opt.GetString("origin"), 0, 64)
	if err != nil {
		glog.Exitf("invalid origin %q: %v", opt.GetString("origin"), err)
	}

	name := opt.GetPosString("SOURCE")
	data, err := os.ReadFile(name)
	if err != nil {
		glog.Exitf("Error reading input file: %v", err)
	}
	src := string(data)

	prog, err := parser.ParseSource(src)
	if err != nil {
		fail(name, src, err)
	}

	asm := assembler.New()
	asm.SetListingMode(opt.GetBool("listing"))
	code, err := asm.Build(prog, origin)
	if err != nil {
		fail(name, src, err)
	}

	if opt.GetBool("dump") {
		pp.Fprintln(os.Stderr, prog)
		pp.Fprintln(os.Stderr, asm.Labels())
	}

	if opt.GetBool("listing") {
		for _, line := range asm.Listing() {
			fmt.Println(line)
		}
	}

	out := opt.GetString("output")
	if out != "" {
		if err := os.WriteFile(out, code, 0644); err != nil {
			glog.Exitf("Error writing output file: %v", err)
		}
		if glog.V(1) {
			glog.Infof("%d bytes written to %s", len(code), out)
		}
		return
	}

	if opt.GetBool("listing") {
		return
	}

	if opt.GetBool("hex") || term.IsTerminal(int(os.Stdout.Fd())) {
		printHex(code)
		return
	}
	os.Stdout.Write(code)
}

// printHex prints the image as little-endian 32-bit words, eight per line.
func printHex(code []byte) {
	for i := 0; i < len(code); i += 4 {
		if i > 0 {
			if i%32 == 0 {
				fmt.Println()
			} else {
				fmt.Print(" ")
			}
		}
		end := min(i+4, len(code))
		fmt.Printf("%x", code[i:end])
	}
	fmt.Println()
}

// fail reports err with the line and column of the source span it refers to.
func fail(name, src string, err error) {
	var (
		lexErr     *token.LexError
		synErr     *parser.SyntaxError
		stmtErr    *assembler.Error
		unresolved *ast.UnresolvedLabelError
		span       token.Span
		found      = true
	)
	switch {
	case errors.As(err, &unresolved):
		span = unresolved.Span
	case errors.As(err, &stmtErr):
		span = stmtErr.Span
	case errors.As(err, &synErr):
		span = synErr.Token.Span
	case errors.As(err, &lexErr):
		span = lexErr.Span
	default:
		found = false
	}

	if !found {
		glog.Exitf("%s: %v", name, err)
	}
	line, col := token.Position(src, span.Start)
	glog.Exitf("%s:%d:%d: %v", name, line, col, err)
}
