package cpu

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_SUB = AluOp(1) // sub
	ALU_OP_MUL = AluOp(2) // mul
)

// Alu performs op on the registers reg_a and reg_b, storing the result in
// reg_a. Results wrap modulo 256.
func (cpu *Cpu) Alu(op AluOp, reg_a, reg_b uint8) (err error) {
	input, err := cpu.GetRegister(reg_a)
	if err != nil {
		return
	}

	value, err := cpu.GetRegister(reg_b)
	if err != nil {
		return
	}

	err = cpu.SetRegister(reg_a, doAlu(op, input, value))

	return
}

// doAlu performs the requested ALU action, and returns the output value.
func doAlu(op AluOp, input uint8, value uint8) (output uint8) {
	switch op {
	case ALU_OP_ADD: // add
		output = input + value
	case ALU_OP_SUB: // sub
		output = input + ((^value) + 1)
	case ALU_OP_MUL: // mul
		output = input * value
	default:
		panic(f("unsupported ALU operation %v", op))
	}

	return
}
