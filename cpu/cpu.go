// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ram      [RAM_SIZE]uint8       // Main memory.
	Register [REGISTER_COUNT]uint8 // Register bank, R7 is the stack pointer.
	Pc       uint8                 // Current program counter.
	Halted   bool                  // Set once HLT or a fault stops the CPU.

	Ticks int // Instructions executed since reset.

	output Channel // Destination of PRN.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears memory and registers.
// - Sets the stack pointer to SP_INIT and the PC to 0.
// - Zeros the tick counter.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Ram[:])
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = SP_INIT
	cpu.Pc = 0
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.output != nil {
		cpu.output.Rewind()
	}
}

// SetChannel sets the channel that PRN prints to.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.output = channel
}

// GetChannel gets the channel that PRN prints to.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.output == nil {
		err = ErrChannelInvalid
		return
	}

	channel = cpu.output
	return
}

// Trace returns a single line summary of the PC, the bytes at the PC, and
// the register bank.
func (cpu *Cpu) Trace() (text string) {
	text = fmt.Sprintf("TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.RamRead(cpu.Pc),
		cpu.RamRead(cpu.Pc+1),
		cpu.RamRead(cpu.Pc+2),
	)

	for _, reg := range cpu.Register {
		text += fmt.Sprintf(" %02X", reg)
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"ir",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6",
		"sp",
		"top",
		"halted",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "ir":
			strval = cpu.FetchCode().String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X", val)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Sp())
		case "top":
			if cpu.Sp() == SP_INIT {
				strval = "--"
			} else {
				strval = fmt.Sprintf("%02X", cpu.RamRead(cpu.Sp()))
			}
		case "halted":
			strval = "false"
			if cpu.Halted {
				strval = "true"
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// FetchCode fetches the instruction at the PC. Both operand bytes are
// always read; addresses past the end of memory wrap to the start.
func (cpu *Cpu) FetchCode() (code Code) {
	code.Pc = cpu.Pc
	code.Op = Op(cpu.RamRead(cpu.Pc))
	code.Operand[0] = cpu.RamRead(cpu.Pc + 1)
	code.Operand[1] = cpu.RamRead(cpu.Pc + 2)

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	code := cpu.FetchCode()

	if cpu.Verbose {
		log.Print(cpu.Trace())
	}

	err = cpu.Execute(code)

	return
}

// Run ticks the CPU until it halts. A nil return means HLT was executed.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction.
// Any error stops the CPU.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			cpu.Halted = true
		}
	}()

	inst := instructions[code.Op]
	if inst == nil {
		err = ErrUnknownInstruction{Op: code.Op, Pc: code.Pc}
		return
	}

	if code.Op.IsAlu() {
		err = cpu.Alu(code.Op.AluOp(), code.Operand[0], code.Operand[1])
	} else {
		err = inst.exec(cpu, code.Operand[0], code.Operand[1])
	}
	if err != nil {
		err = ErrOperand{Code: code, Err: err}
		return
	}

	cpu.Ticks += 1

	if cpu.Halted || code.Op.SetsPc() {
		return
	}

	cpu.Pc += code.Op.Size()

	return
}

func (cpu *Cpu) opHlt(_, _ uint8) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: halt at 0x%02x", cpu.Pc)
	}

	cpu.Halted = true
	return
}

func (cpu *Cpu) opLdi(reg, value uint8) (err error) {
	err = cpu.SetRegister(reg, value)
	return
}

func (cpu *Cpu) opPrn(reg, _ uint8) (err error) {
	value, err := cpu.GetRegister(reg)
	if err != nil {
		return
	}

	channel, err := cpu.GetChannel()
	if err != nil {
		return
	}

	err = channel.Send(value)
	return
}

func (cpu *Cpu) opPush(reg, _ uint8) (err error) {
	value, err := cpu.GetRegister(reg)
	if err != nil {
		return
	}

	cpu.push(value)
	return
}

func (cpu *Cpu) opPop(reg, _ uint8) (err error) {
	// Validate before the stack pointer moves.
	_, err = cpu.GetRegister(reg)
	if err != nil {
		return
	}

	err = cpu.SetRegister(reg, cpu.pop())
	return
}

func (cpu *Cpu) opCall(reg, _ uint8) (err error) {
	target, err := cpu.GetRegister(reg)
	if err != nil {
		return
	}

	cpu.push(cpu.Pc + OP_CALL.Size())
	cpu.Pc = target
	return
}

func (cpu *Cpu) opRet(_, _ uint8) (err error) {
	cpu.Pc = cpu.pop()
	return
}
