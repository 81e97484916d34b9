package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode represents a line of source with its location and generated bytes.
type Opcode struct {
	LineNo    int      // Source line number.
	Address   int      // Memory address of the first byte.
	Words     []string // Source words, or the comment of an image line.
	Codes     []uint8  // Generated bytes.
	LinkLabel string   // Label whose address replaces the last byte.
}

// Program is a list of opcodes, ready to be loaded into memory.
type Program struct {
	Opcodes []Opcode
}

// Debug locates a byte of a program.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode that generated the byte at address.
func (prog *Program) Debug(address uint8) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(address) >= op.Address && int(address) < op.Address+len(op.Codes) {
			index := int(address) - op.Address
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  index,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []uint8) {
	for address, code := range prog.Codes() {
		for int(address) >= len(bins) {
			bins = append(bins, 0)
		}
		bins[address] = code
	}

	return
}

// Codes returns an iterator of the address and value of each program byte.
func (prog *Program) Codes() iter.Seq2[uint8, uint8] {
	return func(yield func(address uint8, code uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(uint8(op.Address+n), code) {
					return
				}
			}
		}
	}
}

// WriteImage writes the program in the .ls8 image format, one byte per line.
// The first byte of each opcode carries its words as a comment.
func (prog *Program) WriteImage(output io.Writer) (err error) {
	w := bufio.NewWriter(output)

	for _, op := range prog.Opcodes {
		for n, code := range op.Codes {
			line := fmt.Sprintf("%08b", code)
			if n == 0 && len(op.Words) > 0 {
				line += " # " + strings.Join(op.Words, " ")
			}
			_, err = fmt.Fprintln(w, line)
			if err != nil {
				return
			}
		}
	}

	err = w.Flush()
	return
}
