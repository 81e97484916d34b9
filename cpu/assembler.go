// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"RAM_SIZE": fmt.Sprintf("%#v", RAM_SIZE),
	"SP_INIT":  fmt.Sprintf("%#v", SP_INIT),
}

// Assembler is a single pass macro assembler for the LS-8 system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Macro expansions so far, for '@' local labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]uint8{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"sp": REG_SP,
}

var labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 {
		err = ErrParseNumber("~")
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// immediateOf returns the 8-bit encoding of a word. Negative values
// are stored as two's complement.
func (asm *Assembler) immediateOf(word string) (value uint8, err error) {
	v64, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrImmediateRange
		return
	}

	value = uint8(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words, handling equates, labels
// and macro expansion.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	// Operands may be separated by commas.
	line = strings.ReplaceAll(line, ",", " ")

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddress()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' makes labels local to this expansion.
		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentAddress gets the address of the next generated byte.
func (asm *Assembler) currentAddress() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Address + len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.expansions = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		address, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		op.Codes[len(op.Codes)-1] = uint8(address)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		address := asm.currentAddress()
		if address+len(codes) > RAM_SIZE {
			err = ErrProgramSize
			return
		}
		opcode := Opcode{LineNo: lineno, Address: address, Words: initial_words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	mnemonic := strings.ToUpper(words[0])
	args := words[1:]

	// DB value... emits raw bytes.
	if mnemonic == "DB" {
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint8
			value, err = asm.immediateOf(arg)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	op, ok := Lookup(mnemonic)
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	kinds := instructions[op].args
	if len(args) < len(kinds) {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > len(kinds) {
		err = ErrOpcodeExtraArgs
		return
	}

	codes = append(codes, uint8(op))
	for n, kind := range kinds {
		word := args[n]
		switch kind {
		case ARG_REGISTER:
			reg, ok := regMap[strings.ToLower(word)]
			if !ok {
				err = ErrRegisterExpected
				return
			}
			codes = append(codes, reg)
		case ARG_IMMEDIATE:
			var value uint8
			value, err = asm.immediateOf(word)
			if err != nil {
				_, is_reg := regMap[strings.ToLower(word)]
				if is_reg || !labelRe.MatchString(word) || n != len(kinds)-1 {
					return
				}
				// Resolved once all labels are known.
				err = nil
				label = word
			}
			codes = append(codes, value)
		}
	}

	return
}
