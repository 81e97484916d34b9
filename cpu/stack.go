package cpu

// Sp returns the stack pointer.
func (cpu *Cpu) Sp() uint8 {
	return cpu.Register[REG_SP]
}

// push decrements the stack pointer, then stores value at the new top.
func (cpu *Cpu) push(value uint8) {
	cpu.Register[REG_SP]--
	cpu.RamWrite(cpu.Register[REG_SP], value)
}

// pop reads the top of the stack, then increments the stack pointer.
func (cpu *Cpu) pop() (value uint8) {
	value = cpu.RamRead(cpu.Register[REG_SP])
	cpu.Register[REG_SP]++
	return
}
