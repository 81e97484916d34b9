package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("cpu halted"))
	ErrChannelInvalid  = errors.New(f("channel invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrImageSize       = errors.New(f("image exceeds memory"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrRegisterExpected   = errors.New(f("register expected"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrProgramSize        = errors.New(f("program exceeds memory"))
)

// ErrUnknownInstruction is raised when the byte at the PC is not an opcode.
type ErrUnknownInstruction struct {
	Op Op
	Pc uint8
}

func (err ErrUnknownInstruction) Error() string {
	return f("Unknown instruction %d at %d", uint8(err.Op), err.Pc)
}

// ErrOperand identifies the instruction whose operands could not be used.
type ErrOperand struct {
	Code Code
	Err  error
}

func (eo ErrOperand) Error() string {
	return f("invalid operand in %v at 0x%02x: %v", eo.Code.String(), eo.Code.Pc, eo.Err)
}

func (eo ErrOperand) Unwrap() error {
	return eo.Err
}

func (eo ErrOperand) Is(err error) (ok bool) {
	_, ok = err.(ErrOperand)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseBinary string

func (err ErrParseBinary) Error() string {
	return f("'%v' is not a binary byte", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
