package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull    = errors.New(f("channel full"))
	ErrChannelMissing = errors.New(f("channel has no output"))
)
