package assembler

import (
	"fmt"
	"maps"

	"github.com/golang/glog"

	"github.com/Urethramancer/r16/ast"
	"github.com/Urethramancer/r16/isa"
	"github.com/Urethramancer/r16/parser"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	labels      ast.Labels
	listingMode bool
	listing     []string
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		labels: make(ast.Labels),
	}
}

// Assemble translates source text with a fresh Assembler, starting at offset 0.
func Assemble(src string) ([]byte, error) {
	return New().Assemble(src, 0)
}

// SetListingMode enables collection of a listing during Build.
func (asm *Assembler) SetListingMode(enabled bool) {
	asm.listingMode = enabled
}

// Listing returns one line per statement from the last run in listing mode.
func (asm *Assembler) Listing() []string {
	return asm.listing
}

// Labels returns a copy of the label table from the last run.
func (asm *Assembler) Labels() ast.Labels {
	return maps.Clone(asm.labels)
}

// Assemble takes source text and returns the binary image. Offsets, and so
// label values and the current position, start at origin.
func (asm *Assembler) Assemble(src string, origin uint64) ([]byte, error) {
	prog, err := parser.ParseSource(src)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}
	return asm.Build(prog, origin)
}

// Build runs the size, offset, label and encoding passes over a parsed
// program, in that order. Sizes and offsets are stored on the program's nodes.
func (asm *Assembler) Build(prog ast.Program, origin uint64) ([]byte, error) {
	if origin%isa.Alignment != 0 {
		return nil, ErrMisalignedOrigin
	}

	// Pass: statement sizes.
	if err := Sizes(prog); err != nil {
		return nil, fmt.Errorf("layout error: %w", err)
	}

	// Pass: offsets.
	end := Layout(prog, origin)

	// Pass: label table. Forward references resolve because every offset is known.
	asm.labels = CollectLabels(prog)
	if glog.V(2) {
		glog.Infof("layout: %d statements, %d bytes, %d labels", len(prog), end-origin, len(asm.labels))
	}

	// Pass: encoding.
	asm.listing = nil
	out := make([]byte, 0, end-origin)
	for _, n := range prog {
		code, err := EncodeStatement(n, asm.labels)
		if err != nil {
			return nil, fmt.Errorf("encoding error: %w", err)
		}
		if asm.listingMode {
			asm.addListing(n, code)
		}
		out = append(out, code...)
	}

	if uint64(len(out)) != end-origin {
		return nil, fmt.Errorf("encoded %d bytes but layout reserved %d", len(out), end-origin)
	}
	return out, nil
}

func (asm *Assembler) addListing(n *ast.Node, code []byte) {
	source := n.String()
	if n.Kind != ast.KindLabel {
		source = "    " + source
	}
	asm.listing = append(asm.listing, fmt.Sprintf("%08x  % -35x  %s", n.Offset, code, source))
}
