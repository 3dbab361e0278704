package osc

import "errors"

// Errors returned by the codec. All parse errors wrap one of these, so
// callers can use errors.Is to tell a malformed packet apart from a
// transport failure.
var (
	ErrInvalidPacket      = errors.New("invalid OSC packet")
	ErrInvalidAddress     = errors.New("invalid OSC address")
	ErrInvalidTypeTags    = errors.New("invalid OSC type tag string")
	ErrUnterminatedString = errors.New("unterminated OSC string")
	ErrInvalidBundle      = errors.New("invalid OSC bundle")
	ErrInvalidArgument    = errors.New("invalid OSC argument")
	ErrUnsupportedType    = errors.New("unsupported type")
	ErrPacketTooLarge     = errors.New("packet too large")
)
