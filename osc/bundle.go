package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	bundleTagString = "#bundle"

	// #bundle string (8 bytes) plus the time tag (8 bytes).
	minBundleSize = 16
)

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns an OSC Bundle with the "immediately" time tag, holding
// the given elements.
func NewBundle(elems ...Packet) *Bundle {
	return &Bundle{Timetag: TimetagImmediate, Elements: elems}
}

// NewBundleWithTime returns an OSC Bundle whose elements apply at the given
// time.
func NewBundleWithTime(time time.Time, elems ...Packet) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(time), Elements: elems}
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (b *Bundle, err error) {
	b = &Bundle{}
	if err = b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// newBundleFromData assumes that the bytes have already been copied.
func newBundleFromData(data []byte) (b *Bundle, err error) {
	b = &Bundle{}
	if err = b.unmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return fmt.Errorf("Append: %w: unsupported element type %T", ErrInvalidBundle, t)

	case *Bundle, *Message:
		b.Elements = append(b.Elements, t)
	}

	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	data := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(data)
	data.Reset()

	if err := b.LightMarshalBinary(data); err != nil {
		return nil, err
	}

	bb := make([]byte, data.Len())
	copy(bb, data.Bytes())

	return bb, nil
}

// LightMarshalBinary serializes the OSC bundle into data with the following
// format:
// 1. Bundle string: '#bundle'
// 2. OSC timetag
// 3. Length of first OSC bundle element
// 4. First bundle element
// 5. Length of n OSC bundle element
// 6. n bundle element
func (b *Bundle) LightMarshalBinary(data *bytes.Buffer) error {
	var scratch [bit64Size]byte

	writePaddedString(bundleTagString, data)

	binary.BigEndian.PutUint64(scratch[:], uint64(b.Timetag))
	data.Write(scratch[:])

	for _, elem := range b.Elements {
		bb, err := elem.MarshalBinary()
		if err != nil {
			return err
		}

		// Write the size of the element followed by the element itself
		binary.BigEndian.PutUint32(scratch[:bit32Size], uint32(len(bb)))
		data.Write(scratch[:bit32Size])
		data.Write(bb)
	}

	if data.Len() > MaxPacketSize {
		return fmt.Errorf("LightMarshalBinary: %w: %d bytes", ErrPacketTooLarge, data.Len())
	}

	return nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(d []byte) error {
	data := make([]byte, len(d))
	copy(data, d)

	return b.unmarshalBinary(data)
}

// unmarshalBinary is the actual implementation, it doesn't copy, so a single
// copy is shared with all nested elements.
func (b *Bundle) unmarshalBinary(data []byte) error {
	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("unmarshalBinary: %w: data isn't padded properly", ErrInvalidBundle)
	}

	if len(data) < minBundleSize {
		return fmt.Errorf("unmarshalBinary: %w: bundle is too short", ErrInvalidBundle)
	}

	// Read the '#bundle' OSC string
	startTag, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("unmarshalBinary: %w", err)
	}
	data = data[n:]

	if startTag != bundleTagString {
		return fmt.Errorf("unmarshalBinary: %w: invalid start tag %q", ErrInvalidBundle, startTag)
	}

	// Read the timetag
	b.Timetag = Timetag(binary.BigEndian.Uint64(data[:bit64Size]))
	data = data[bit64Size:]

	// Read bundle elements until the end of the buffer
	for len(data) > 0 {
		if len(data) < bit32Size {
			return fmt.Errorf("unmarshalBinary: %w: truncated element size", ErrInvalidBundle)
		}
		length := int(int32(binary.BigEndian.Uint32(data[:bit32Size])))
		data = data[bit32Size:]

		if length < 0 || length > len(data) || (length%bit32Size) != 0 {
			return fmt.Errorf("unmarshalBinary: %w: invalid element length %d", ErrInvalidBundle, length)
		}

		p, err := parsePacket(data[:length])
		if err != nil {
			return err
		}
		data = data[length:]

		b.Elements = append(b.Elements, p)
	}

	return nil
}
