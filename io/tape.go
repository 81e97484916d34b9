package io

import (
	"io"
	"strconv"
)

// Tape prints each value sent to it as a decimal number followed by
// a newline on Output.
type Tape struct {
	Output io.Writer

	Lines int // Number of values printed since the last rewind.

	buffer []byte
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape, it only resets the line counter.
func (tc *Tape) Rewind() {
	tc.Lines = 0
}

// Send writes the decimal text of value, and a newline, to the output.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelMissing
		return
	}

	tc.buffer = strconv.AppendUint(tc.buffer[:0], uint64(value), 10)
	tc.buffer = append(tc.buffer, '\n')

	_, err = tc.Output.Write(tc.buffer)
	if err != nil {
		return
	}

	tc.Lines++

	return
}
