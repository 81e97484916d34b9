// Package cpu implements the processor, program loader and assembler for
// the LS-8 system.
//
// The CPU consists of a 256 byte memory, an 8-bit program counter (PC),
// eight 8-bit general-purpose registers (R0-R7, with R7 serving as the stack
// pointer), and an ALU. Instructions are one opcode byte followed by up to two
// operand bytes; the opcode itself encodes the operand count.
//
// Programs are loaded from the textual .ls8 image format (one binary byte per
// line) or built by the assembler, which supports labels, equates, macros and
// compile-time expression evaluation.
package cpu
