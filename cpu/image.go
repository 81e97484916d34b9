package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// ImageLoader reads programs in the .ls8 image format.
//
// Each line holds one byte as binary digits. Text from '#' to the end of
// the line is a comment, and lines that are blank once the comment is
// removed do not use an address.
type ImageLoader struct {
	Verbose bool // If set, logs each loaded byte.
}

// ParseImage parses an image with the default loader.
func ParseImage(input io.Reader) (prog *Program, err error) {
	loader := &ImageLoader{}
	prog, err = loader.Parse(input)
	return
}

// Parse parses an input stream into a Program of one opcode per byte.
func (ld *ImageLoader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	prog = &Program{}
	address := 0

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		text, comment, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		if address >= RAM_SIZE {
			err = ErrImageSize
			return
		}

		var value uint64
		value, err = strconv.ParseUint(text, 2, 8)
		if err != nil {
			err = ErrParseBinary(text)
			return
		}

		if ld.Verbose {
			log.Printf("%02x: %08b (line %d)", address, value, lineno)
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo:  lineno,
			Address: address,
			Words:   strings.Fields(comment),
			Codes:   []uint8{uint8(value)},
		})
		address++
	}

	err = scanner.Err()

	return
}
