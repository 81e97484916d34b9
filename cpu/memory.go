package cpu

const (
	RAM_SIZE       = 256  // Bytes of addressable memory.
	REGISTER_COUNT = 8    // General purpose registers.
	REG_SP         = 7    // Register holding the stack pointer.
	SP_INIT        = 0xf4 // Stack pointer at reset, just below the top of memory.
)

// RamRead returns the byte at address.
func (cpu *Cpu) RamRead(address uint8) uint8 {
	return cpu.Ram[address]
}

// RamWrite stores value at address.
func (cpu *Cpu) RamWrite(address uint8, value uint8) {
	cpu.Ram[address] = value
}

// GetRegister returns the value of a register.
func (cpu *Cpu) GetRegister(index uint8) (value uint8, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegisterInvalid
		return
	}

	value = cpu.Register[index]
	return
}

// SetRegister sets the value of a register.
func (cpu *Cpu) SetRegister(index uint8, value uint8) (err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegisterInvalid
		return
	}

	cpu.Register[index] = value
	return
}

// Load replaces the contents of memory with image, zero filling the
// remainder.
func (cpu *Cpu) Load(image []uint8) (err error) {
	if len(image) > len(cpu.Ram) {
		err = ErrImageSize
		return
	}

	clear(cpu.Ram[:])
	copy(cpu.Ram[:], image)

	return
}
