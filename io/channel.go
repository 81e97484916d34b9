// Package io provides the output channels for the LS-8 emulator.
// A channel receives the byte values printed by the CPU: Tape renders
// them as decimal lines on an io.Writer, and Temporary holds them in a
// bounded FIFO for later inspection.
package io

// Channel defines the interface for all output channels of the LS-8.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single byte value to the channel.
	Send(value uint8) error
}
