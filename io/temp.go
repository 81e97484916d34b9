package io

import (
	"iter"
)

// TEMPORARY_DEFAULT_CAPACITY is the capacity of a Temporary with none set.
const TEMPORARY_DEFAULT_CAPACITY = 256

// Temporary implements a circular buffer of printed values.
// It operates as a FIFO queue with a fixed capacity and separate read/write positions.
type Temporary struct {
	Capacity int // Capacity in values.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []uint8
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	if temp.Capacity == 0 {
		temp.Capacity = TEMPORARY_DEFAULT_CAPACITY
	}

	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]uint8, temp.Capacity)
}

// Receive returns an iterator that yields values from the buffer until empty.
// The buffer wraps around at the capacity boundary.
func (temp *Temporary) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {
		for temp.Size > 0 {
			value := temp.Data[temp.ReadIndex]
			temp.ReadIndex++
			if temp.ReadIndex == temp.Capacity {
				temp.ReadIndex = 0
			}
			temp.Size--
			if !yield(value) {
				return
			}
		}
	}
}

// Send writes a value to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value uint8) (err error) {
	if temp.Data == nil {
		temp.Rewind()
	}

	if temp.Size >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}
