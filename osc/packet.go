package osc

import (
	"encoding"
	"fmt"
)

const (
	bit32Size = 4
	bit64Size = 8

	secondsFrom1900To1970 = 2208988800

	// MaxPacketSize is the maximum size of an encoded OSC packet. It matches
	// the largest payload that fits a single UDP datagram.
	MaxPacketSize = 65507
)

// Packet is the interface for Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
}

// ParsePacket parses an OSC packet from data. The first byte decides the
// flavor: '/' starts a Message, '#' starts a Bundle.
func ParsePacket(data []byte) (Packet, error) {
	d := make([]byte, len(data))
	copy(d, data)

	return parsePacket(d)
}

// parsePacket assumes that the bytes have already been copied.
func parsePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("parsePacket: %w: empty packet", ErrInvalidPacket)
	}
	if len(data) > MaxPacketSize {
		return nil, fmt.Errorf("parsePacket: %w: %d bytes", ErrPacketTooLarge, len(data))
	}

	switch data[0] {
	case '/':
		return newMessageFromData(data)
	case '#':
		return newBundleFromData(data)
	default:
		return nil, fmt.Errorf("parsePacket: %w: unknown packet format %q", ErrInvalidPacket, data[0])
	}
}
