package disassembler

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Disassemble performs a linear sweep over code, four bytes at a time.
// Words that do not decode to a canonical instruction are emitted as data,
// so assembling the output gives back the same image.
func Disassemble(code []byte) (string, error) {
	var out strings.Builder
	var data int

	for pc := 0; pc < len(code); {
		inst, err := Decode(code, pc)
		if err == nil {
			writeLine(&out, "    "+inst.String(), pc)
			pc += inst.Size
			continue
		}

		if glog.V(3) {
			glog.Infof("%04x: %v", pc, err)
		}
		data++
		if pc+4 <= len(code) {
			word := binary.LittleEndian.Uint32(code[pc:])
			writeLine(&out, fmt.Sprintf("    di 0x%08x", word), pc)
			pc += 4
			continue
		}

		// A trailing partial word.
		writeLine(&out, "    db "+formatBytes(code[pc:]), pc)
		pc = len(code)
	}

	if glog.V(2) {
		glog.Infof("disassembled %d bytes, %d data words", len(code), data)
	}
	return out.String(), nil
}

func writeLine(out *strings.Builder, text string, pc int) {
	fmt.Fprintf(out, "%-40s// %04x\n", text, pc)
}

func formatBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("0x%02x", v)
	}
	return strings.Join(parts, ", ")
}
