package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

// model computes the expected registers, PC and output of a single
// instruction, independently of the dispatch table.
func model(cpu *Cpu, code Code) (reg [REGISTER_COUNT]uint8, pc uint8, output []uint8) {
	reg = cpu.Register
	pc = code.Pc + code.Op.Size()
	a, b := code.Operand[0], code.Operand[1]

	switch code.Op {
	case OP_HLT:
		pc = code.Pc
	case OP_LDI:
		reg[a] = b
	case OP_PRN:
		output = append(output, reg[a])
	case OP_ADD:
		reg[a] += reg[b]
	case OP_MUL:
		reg[a] *= reg[b]
	case OP_PUSH:
		reg[REG_SP]--
	case OP_POP:
		value := cpu.Ram[reg[REG_SP]]
		reg[REG_SP]++
		reg[a] = value
	case OP_CALL:
		pc = reg[a]
		reg[REG_SP]--
	case OP_RET:
		pc = cpu.Ram[reg[REG_SP]]
		reg[REG_SP]++
	}

	return
}

// registerFault returns true if a register operand of the opcode is out of range.
func registerFault(code Code) bool {
	for n, kind := range instructions[code.Op].args {
		if kind == ARG_REGISTER && code.Operand[n] >= REGISTER_COUNT {
			return true
		}
	}

	return false
}

func FuzzCpu(f *testing.F) {
	for op := range Ops() {
		f.Add(uint8(op), uint8(0), uint8(1), uint8(0x10), uint8(SP_INIT))
		f.Add(uint8(op), uint8(7), uint8(7), uint8(0xfe), uint8(0))
		f.Add(uint8(op), uint8(8), uint8(0xff), uint8(0x00), uint8(0x80))
	}
	f.Add(uint8(0x00), uint8(0), uint8(0), uint8(0x00), uint8(SP_INIT))
	f.Add(uint8(0xa1), uint8(0), uint8(1), uint8(0x20), uint8(SP_INIT))

	f.Fuzz(func(t *testing.T, op uint8, a uint8, b uint8, pc uint8, sp uint8) {
		assert := assert.New(t)

		output := &io.Temporary{}
		cpu := NewCpu()
		cpu.SetChannel(output)
		cpu.Reset()

		for n := range cpu.Ram {
			cpu.Ram[n] = uint8(n*7 + 3)
		}
		for n := range REG_SP {
			cpu.Register[n] = uint8(0x11*n + 1)
		}
		cpu.Register[REG_SP] = sp
		cpu.Pc = pc
		cpu.Ram[pc] = op
		cpu.Ram[pc+1] = a
		cpu.Ram[pc+2] = b

		code := cpu.FetchCode()
		before := *cpu

		err := cpu.Tick()

		if !code.Op.Known() {
			var unknown ErrUnknownInstruction
			assert.True(errors.As(err, &unknown))
			assert.Equal(code.Op, unknown.Op)
			assert.Equal(pc, unknown.Pc)
			assert.True(cpu.Halted)
			assert.Equal(pc, cpu.Pc)
			assert.Equal(before.Register, cpu.Register)
			return
		}

		if registerFault(code) {
			assert.ErrorIs(err, ErrRegisterInvalid)
			assert.ErrorIs(err, ErrOperand{})
			assert.True(cpu.Halted)
			assert.Equal(before.Register, cpu.Register)
			return
		}

		assert.NoError(err, code.String())

		reg, next, printed := model(&before, code)
		assert.Equal(reg, cpu.Register, code.String())
		assert.Equal(next, cpu.Pc, code.String())
		assert.Equal(code.Op == OP_HLT, cpu.Halted, code.String())
		assert.Equal(1, cpu.Ticks)

		var sent []uint8
		for value := range output.Receive() {
			sent = append(sent, value)
		}
		assert.Equal(printed, sent, code.String())

		switch code.Op {
		case OP_PUSH:
			assert.Equal(before.Register[a], cpu.Ram[cpu.Sp()])
		case OP_CALL:
			assert.Equal(pc+2, cpu.Ram[cpu.Sp()])
		}

		if cpu.Halted {
			assert.ErrorIs(cpu.Tick(), ErrHalted)
		}
	})
}
