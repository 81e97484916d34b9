// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/translate"
)

const (
	EXIT_HALT  = 1 // Process status after HLT.
	EXIT_FAULT = 1 // Process status after a fault.
)

// Emulator state. CPU + program + output channel.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape       io.Tape      // PRN output channel.
	Diagnostic stdio.Writer // Receives fault diagnostics, if set.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.SetChannel(&emu.Tape)

	return
}

// Reset the CPU and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Binary())

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.Pc)
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() cpu.Code {
	return emu.Cpu.FetchCode()
}

// LineNo returns the source line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// When the CPU faults, the fault is reported on the diagnostic writer.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			emu.report(err)
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// report writes the diagnostic for a fault.
func (emu *Emulator) report(err error) {
	if emu.Diagnostic == nil {
		return
	}

	var unknown cpu.ErrUnknownInstruction
	if errors.As(err, &unknown) {
		translate.Fprintln(emu.Diagnostic, "Error: %v", unknown)
		return
	}

	translate.Fprintln(emu.Diagnostic, "Error: %v", err)
}

// ExitStatus returns the process status for the result of Run.
func ExitStatus(err error) int {
	if err != nil {
		return EXIT_FAULT
	}

	return EXIT_HALT
}
