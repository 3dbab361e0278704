package osc

import "fmt"

// Char represents a single ASCII character argument (type tag 'c').
// It is a distinct type because rune is an alias for int32, which already
// maps to the 'i' type tag.
type Char rune

// String implements the fmt.Stringer interface.
func (c Char) String() string {
	return string(rune(c))
}

// Color represents an RGBA color argument (type tag 'r').
type Color struct {
	R, G, B, A uint8
}

// String implements the fmt.Stringer interface.
func (c Color) String() string {
	return fmt.Sprintf("{%d,%d,%d,%d}", c.R, c.G, c.B, c.A)
}

// MidiMessage represents the parts of a MIDI message (type tag 'm').
// Mainly used for tunneling MIDI over a network using the OSC protocol.
type MidiMessage struct {
	Port   uint8
	Status uint8
	Data1  uint8
	Data2  uint8
}

// String implements the fmt.Stringer interface.
func (m MidiMessage) String() string {
	return fmt.Sprintf("{port:%d, status:0x%02X, data:0x%02X%02X}", m.Port, m.Status, m.Data1, m.Data2)
}

// Infinitum is the impulse argument (type tag 'I'). It carries no payload.
type Infinitum struct{}

// Inf is the Infinitum value, for use in argument lists.
var Inf = Infinitum{}

// String implements the fmt.Stringer interface.
func (Infinitum) String() string {
	return "Inf"
}
