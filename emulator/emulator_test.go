package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)

	channel, err := emu.Cpu.GetChannel()
	assert.NoError(err)
	assert.Equal(cpu.Channel(&emu.Tape), channel)
}

func doAssemble(emu *Emulator, program []string, t *testing.T) (output *bytes.Buffer, diagnostic *bytes.Buffer) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)

	output = &bytes.Buffer{}
	emu.Tape.Output = output
	diagnostic = &bytes.Buffer{}
	emu.Diagnostic = diagnostic

	return
}

func doRunSingle(emu *Emulator, program []string, t *testing.T) (output []byte) {
	assert := assert.New(t)

	tape_output, _ := doAssemble(emu, program, t)

	prog := emu.Program
	for _, op := range prog.Opcodes {
		assert.Equal(emu.LineNo(), op.LineNo)
		here := program[emu.LineNo()-1]
		assert.Equal(emu.Pc(), op.Address, here)

		debug := emu.Program.Debug(uint8(emu.Pc()))
		assert.Equal(0, debug.Index, here)

		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		if done {
			break
		}
	}

	output = tape_output.Bytes()
	return
}

func TestEmulatorPrint8(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"; print8.ls8",
		"LDI R0,8",
		"PRN R0",
		"HLT",
	}

	output := doRunSingle(emu, program, t)

	assert.Equal("8\n", string(output))
	assert.True(emu.Halted)
	assert.Equal(3, emu.Ticks())
	assert.Equal(5, emu.Pc())
	assert.Equal(4, emu.LineNo())
	assert.Equal(1, emu.Tape.Lines)
}

func TestEmulatorAdd(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"LDI R0,8",
		"LDI R1,9",
		"ADD R0,R1",
		"PRN R0",
		"HLT",
	}

	output := doRunSingle(emu, program, t)

	assert.Equal("17\n", string(output))
	assert.Equal(uint8(17), emu.Cpu.Register[0])
	assert.Equal(uint8(9), emu.Cpu.Register[1])
}

func TestEmulatorMult(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"LDI R0,8",
		"LDI R1,9",
		"MUL R0,R1",
		"PRN R0",
		"MUL R0,R1",
		"PRN R0",
		"HLT",
	}

	output := doRunSingle(emu, program, t)

	// 72 * 9 wraps to 648 % 256.
	assert.Equal("72\n136\n", string(output))
}

func TestEmulatorStack(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"LDI R0,1",
		"LDI R1,2",
		"PUSH R0",
		"PUSH R1",
		"LDI R0,3",
		"POP R0",
		"PRN R0",
		"POP R0",
		"PRN R0",
		"PRN SP",
		"HLT",
	}

	output := doRunSingle(emu, program, t)

	assert.Equal("2\n1\n244\n", string(output))
}

func TestEmulatorCall(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output, diagnostic := doAssemble(emu, []string{
		".macro PRINT value",
		"LDI R0, value",
		"CALL R2",
		".endm",
		"    LDI R2, print",
		"    PRINT 10",
		"    PRINT 20",
		"    HLT",
		"",
		"print:",
		"    PRN R0",
		"    RET",
	}, t)

	err := emu.Run()
	assert.NoError(err)
	assert.Equal("10\n20\n", output.String())
	assert.Empty(diagnostic.String())
	assert.Equal(uint8(cpu.SP_INIT), emu.Sp())
	assert.Equal(EXIT_HALT, ExitStatus(err))
}

func TestEmulatorImage(t *testing.T) {
	assert := assert.New(t)

	image := []string{
		"# mult.ls8",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"10000010 # LDI R1,9",
		"00000001",
		"00001001",
		"10100010 # MUL R0,R1",
		"00000000",
		"00000001",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}

	prog, err := cpu.ParseImage(strings.NewReader(strings.Join(image, "\n")))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())

	output := &bytes.Buffer{}
	emu.Tape.Output = output

	err = emu.Run()
	assert.NoError(err)
	assert.Equal("72\n", output.String())
	assert.Equal(13, emu.LineNo())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output, _ := doAssemble(emu, []string{
		"LDI R0,8",
		"PRN R0",
		"HLT",
	}, t)

	assert.NoError(emu.Run())
	assert.NoError(emu.Reset())
	assert.False(emu.Halted)
	assert.Equal(0, emu.Ticks())
	assert.Equal(0, emu.Tape.Lines)

	assert.NoError(emu.Run())
	assert.Equal("8\n8\n", output.String())
}

func TestEmulatorUnknownInstruction(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output, diagnostic := doAssemble(emu, []string{
		"LDI R0,8",
		"PRN R0",
		"DB 0",
		"PRN R0",
	}, t)

	err := emu.Run()
	assert.Error(err)
	assert.Equal("8\n", output.String())
	assert.Equal("Error: Unknown instruction 0 at 5\n", diagnostic.String())
	assert.True(emu.Halted)
	assert.Equal(EXIT_FAULT, ExitStatus(err))

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(3, runtime.LineNo)
	}

	var unknown cpu.ErrUnknownInstruction
	if assert.True(errors.As(err, &unknown)) {
		assert.Equal(uint8(5), unknown.Pc)
	}

	// Once halted, nothing more runs.
	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrHalted)
}

func TestEmulatorRunOffEnd(t *testing.T) {
	assert := assert.New(t)

	// Memory past the program is zero, which is not an instruction.
	emu := NewEmulator()
	_, diagnostic := doAssemble(emu, []string{
		"LDI R0,1",
	}, t)

	err := emu.Run()
	assert.Error(err)
	assert.Equal("Error: Unknown instruction 0 at 3\n", diagnostic.String())

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(0, runtime.LineNo)
	}
}

func TestEmulatorRegisterFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = &cpu.Program{
		Opcodes: []cpu.Opcode{
			{LineNo: 1, Address: 0, Codes: []uint8{0x47, 0x09}},
		},
	}
	assert.NoError(emu.Reset())

	diagnostic := &bytes.Buffer{}
	emu.Diagnostic = diagnostic

	done, err := emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrRegisterInvalid)
	assert.Equal("Error: invalid operand in PRN R9 at 0x00: register invalid\n", diagnostic.String())
	assert.Equal(EXIT_FAULT, ExitStatus(err))
}

func TestEmulatorNoDiagnostic(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.Reset())

	err := emu.Run()
	assert.Error(err)
}
