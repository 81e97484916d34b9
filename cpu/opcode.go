package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Op is an LS-8 opcode byte.
//
// The opcode describes its own shape: bits 7-6 hold the operand count, bit
// 5 marks ALU operations, and bit 4 marks instructions that set the PC
// themselves.
type Op uint8

const (
	OP_HLT  = Op(0b0000_0001)
	OP_LDI  = Op(0b1000_0010)
	OP_PRN  = Op(0b0100_0111)
	OP_ADD  = Op(0b1010_0000)
	OP_MUL  = Op(0b1010_0010)
	OP_PUSH = Op(0b0100_0101)
	OP_POP  = Op(0b0100_0110)
	OP_CALL = Op(0b0101_0000)
	OP_RET  = Op(0b0001_0001)
)

const (
	OP_OPERANDS_SHIFT = 6
	OP_ALU_BIT        = Op(1 << 5)
	OP_SETS_PC_BIT    = Op(1 << 4)
	OP_ALU_OP_MASK    = Op(0x0f)
)

// Operands returns the number of operand bytes following the opcode.
func (op Op) Operands() int {
	return int(op >> OP_OPERANDS_SHIFT)
}

// Size returns the length in bytes of the instruction.
func (op Op) Size() uint8 {
	return uint8(op.Operands()) + 1
}

// IsAlu returns true for instructions handled by the ALU.
func (op Op) IsAlu() bool {
	return (op & OP_ALU_BIT) != 0
}

// AluOp returns the ALU operation selected by the low bits of an ALU opcode.
func (op Op) AluOp() AluOp {
	return AluOp(op & OP_ALU_OP_MASK)
}

// SetsPc returns true for instructions that move the PC themselves.
func (op Op) SetsPc() bool {
	return (op & OP_SETS_PC_BIT) != 0
}

// Known returns true if the opcode is in the instruction set.
func (op Op) Known() bool {
	return instructions[op] != nil
}

// String returns the mnemonic of the opcode.
func (op Op) String() string {
	inst := instructions[op]
	if inst == nil {
		return fmt.Sprintf("0x%02x", uint8(op))
	}

	return inst.mnemonic
}

// ArgKind is the kind of an instruction operand.
type ArgKind int

const (
	ARG_REGISTER  = ArgKind(0) // Register index, R0-R7.
	ARG_IMMEDIATE = ArgKind(1) // 8-bit immediate value.
)

// instruction is an entry in the dispatch table. ALU instructions have no
// exec, they run through Cpu.Alu.
type instruction struct {
	mnemonic string
	args     []ArgKind
	exec     func(cpu *Cpu, a, b uint8) error
}

// instructions is the dispatch table, indexed by opcode.
var instructions = [256]*instruction{
	OP_HLT:  {"HLT", nil, (*Cpu).opHlt},
	OP_LDI:  {"LDI", []ArgKind{ARG_REGISTER, ARG_IMMEDIATE}, (*Cpu).opLdi},
	OP_PRN:  {"PRN", []ArgKind{ARG_REGISTER}, (*Cpu).opPrn},
	OP_ADD:  {"ADD", []ArgKind{ARG_REGISTER, ARG_REGISTER}, nil},
	OP_MUL:  {"MUL", []ArgKind{ARG_REGISTER, ARG_REGISTER}, nil},
	OP_PUSH: {"PUSH", []ArgKind{ARG_REGISTER}, (*Cpu).opPush},
	OP_POP:  {"POP", []ArgKind{ARG_REGISTER}, (*Cpu).opPop},
	OP_CALL: {"CALL", []ArgKind{ARG_REGISTER}, (*Cpu).opCall},
	OP_RET:  {"RET", nil, (*Cpu).opRet},
}

// mnemonicMap maps upper case mnemonics to opcodes.
var mnemonicMap = map[string]Op{}

func init() {
	for op := range Ops() {
		mnemonicMap[instructions[op].mnemonic] = op
	}
}

// Ops returns an iterator over every opcode in the instruction set.
func Ops() iter.Seq[Op] {
	return func(yield func(op Op) bool) {
		for n, inst := range instructions {
			if inst == nil {
				continue
			}
			if !yield(Op(n)) {
				return
			}
		}
	}
}

// Lookup returns the opcode for a mnemonic, in any case.
func Lookup(mnemonic string) (op Op, ok bool) {
	op, ok = mnemonicMap[strings.ToUpper(mnemonic)]
	return
}

// Code is a fetched instruction: the opcode at Pc and the two bytes that
// follow it, whether or not the opcode uses them.
type Code struct {
	Pc      uint8
	Op      Op
	Operand [2]uint8
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	inst := instructions[code.Op]
	if inst == nil {
		return fmt.Sprintf("??? 0x%02x", uint8(code.Op))
	}

	args := make([]string, 0, len(inst.args))
	for n, kind := range inst.args {
		switch kind {
		case ARG_REGISTER:
			args = append(args, fmt.Sprintf("R%d", code.Operand[n]))
		case ARG_IMMEDIATE:
			args = append(args, fmt.Sprintf("%d", code.Operand[n]))
		}
	}

	if len(args) == 0 {
		return inst.mnemonic
	}

	return inst.mnemonic + " " + strings.Join(args, ",")
}
