package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Message implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// NewMessageFromData returns a new Message created from the parsed data.
func NewMessageFromData(data []byte) (msg *Message, err error) {
	msg = &Message{}
	if err = msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// newMessageFromData assumes that the bytes have already been copied.
func newMessageFromData(data []byte) (msg *Message, err error) {
	msg = &Message{}
	if err = msg.unmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// Append appends the given arguments to the arguments list. It fails if any
// of the arguments has no OSC representation.
func (m *Message) Append(args ...interface{}) error {
	if _, err := appendTypeTags(args, make([]byte, 0, len(args))); err != nil {
		return err
	}
	m.Arguments = append(m.Arguments, args...)
	return nil
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// CountArguments returns the number of arguments.
func (m *Message) CountArguments() int {
	return len(m.Arguments)
}

// Match returns true if the OSC address pattern of the Message matches the
// given address. The match is case sensitive!
func (m *Message) Match(addr string) bool {
	matcher, err := NewMatcher(m.Address)
	if err != nil {
		return false
	}

	ok, err := matcher.Match(addr)
	return err == nil && ok
}

// TypeTags returns the type tag string.
func (m *Message) TypeTags() (string, error) {
	if m == nil {
		return "", fmt.Errorf("TypeTags: message is nil")
	}

	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')

	tags, err := appendTypeTags(m.Arguments, tags)
	if err != nil {
		return "", err
	}

	return *(*string)(unsafe.Pointer(&tags)), nil
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	tags, _ := m.TypeTags()

	strBuf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(strBuf)
	strBuf.Reset()

	strBuf.WriteString(m.Address)
	if len(tags) == 0 {
		return strBuf.String()
	}

	strBuf.WriteByte(' ')
	strBuf.WriteString(tags)
	writeArgumentsString(m.Arguments, strBuf)

	return strBuf.String()
}

func writeArgumentsString(args []interface{}, strBuf *bytes.Buffer) {
	for _, arg := range args {
		switch arg := arg.(type) {
		case bool, int32, int64, float32, float64, string:
			fmt.Fprintf(strBuf, " %v", arg)

		case nil:
			strBuf.WriteString(" Nil")

		case []byte:
			strBuf.WriteString(" blob")

		case Timetag:
			fmt.Fprintf(strBuf, " %d", arg.TimeTag())

		case Char, Color, MidiMessage, Infinitum:
			fmt.Fprintf(strBuf, " %v", arg)

		case []interface{}:
			strBuf.WriteString(" [")
			writeArgumentsString(arg, strBuf)
			strBuf.WriteString(" ]")
		}
	}
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (m *Message) MarshalBinary() (b []byte, err error) {
	data := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(data)
	data.Reset()

	if err = m.LightMarshalBinary(data); err != nil {
		return nil, err
	}
	return append(b, data.Bytes()...), nil
}

// LightMarshalBinary serializes the message into data, allowing the buffer
// to be reused across packets. The byte layout is:
// 1. OSC Address Pattern
// 2. OSC Type Tag String
// 3. OSC Arguments
func (m *Message) LightMarshalBinary(data *bytes.Buffer) error {
	typetags, err := m.TypeTags()
	if err != nil {
		return err
	}

	b := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(b)
	b.Reset()

	// Collect the payload of all arguments
	if err := writeArguments(m.Arguments, b); err != nil {
		return err
	}

	writePaddedString(m.Address, data)
	writePaddedString(typetags, data)
	data.Write(b.Bytes())

	if data.Len() > MaxPacketSize {
		return fmt.Errorf("LightMarshalBinary: %w: %d bytes", ErrPacketTooLarge, data.Len())
	}

	return nil
}

// writeArguments writes the binary payload of args to buf. Bool, nil and
// Infinitum arguments carry no payload, arrays are written inline.
func writeArguments(args []interface{}, buf *bytes.Buffer) error {
	var scratch [bit64Size]byte

	for _, arg := range args {
		switch t := arg.(type) {
		default:
			return fmt.Errorf("writeArguments: %w: %T", ErrUnsupportedType, t)

		case bool, nil, Infinitum:
			continue
		case int32:
			binary.BigEndian.PutUint32(scratch[:bit32Size], uint32(t))
			buf.Write(scratch[:bit32Size])
		case float32:
			binary.BigEndian.PutUint32(scratch[:bit32Size], math.Float32bits(t))
			buf.Write(scratch[:bit32Size])
		case int64:
			binary.BigEndian.PutUint64(scratch[:], uint64(t))
			buf.Write(scratch[:])
		case float64:
			binary.BigEndian.PutUint64(scratch[:], math.Float64bits(t))
			buf.Write(scratch[:])
		case string:
			writePaddedString(t, buf)
		case []byte:
			writeBlob(t, buf)
		case Timetag:
			binary.BigEndian.PutUint64(scratch[:], uint64(t))
			buf.Write(scratch[:])
		case Char:
			binary.BigEndian.PutUint32(scratch[:bit32Size], uint32(t))
			buf.Write(scratch[:bit32Size])
		case Color:
			buf.Write([]byte{t.R, t.G, t.B, t.A})
		case MidiMessage:
			buf.Write([]byte{t.Port, t.Status, t.Data1, t.Data2})
		case []interface{}:
			if err := writeArguments(t, buf); err != nil {
				return err
			}
		}
	}

	return nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (m *Message) UnmarshalBinary(data []byte) error {
	d := make([]byte, len(data))
	copy(d, data)

	return m.unmarshalBinary(d)
}

// unmarshalBinary is the actual implementation, it doesn't copy, so a nested
// packet shares the single copy made by ParsePacket.
func (m *Message) unmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != '/' {
		return fmt.Errorf("unmarshalBinary: %w: data is not a valid OSC message", ErrInvalidPacket)
	}

	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("unmarshalBinary: %w: data isn't padded properly", ErrInvalidPacket)
	}

	addr, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("unmarshalBinary: %w", err)
	}
	m.Address = addr
	data = data[n:]

	// A message without a type tag string carries no arguments.
	if len(data) == 0 {
		return nil
	}

	typetags, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("unmarshalBinary: %w", err)
	}
	data = data[n:]

	if len(typetags) == 0 {
		return nil
	}
	if typetags[0] != ',' {
		return fmt.Errorf("unmarshalBinary: %w: %q", ErrInvalidTypeTags, typetags)
	}
	if len(typetags) == 1 {
		return nil
	}

	args, _, err := parseArguments(data, typetags[1:])
	if err != nil {
		return fmt.Errorf("unmarshalBinary: %w", err)
	}
	m.Arguments = args

	return nil
}

// parseArguments decodes the payload described by the given type tags (with
// the leading ',' removed). It returns the arguments and the number of
// payload bytes consumed.
func parseArguments(data []byte, typetags string) ([]interface{}, int, error) {
	args := make([]interface{}, 0, len(typetags))
	var stack [][]interface{}
	n := 0

	for _, c := range typetags {
		switch TypeTag(c) {
		default:
			return nil, 0, fmt.Errorf("parseArguments: %w: unsupported type tag %q", ErrInvalidTypeTags, c)

		case TypeArrayStart:
			stack = append(stack, args)
			args = make([]interface{}, 0)

		case TypeArrayEnd:
			if len(stack) == 0 {
				return nil, 0, fmt.Errorf("parseArguments: %w: unexpected ']'", ErrInvalidTypeTags)
			}
			arr := args
			args = append(stack[len(stack)-1], arr)
			stack = stack[:len(stack)-1]

		case TypeInt32:
			if len(data)-n < bit32Size {
				return nil, 0, errShortPayload(c)
			}
			args = append(args, int32(binary.BigEndian.Uint32(data[n:])))
			n += bit32Size

		case TypeInt64:
			if len(data)-n < bit64Size {
				return nil, 0, errShortPayload(c)
			}
			args = append(args, int64(binary.BigEndian.Uint64(data[n:])))
			n += bit64Size

		case TypeFloat32:
			if len(data)-n < bit32Size {
				return nil, 0, errShortPayload(c)
			}
			args = append(args, math.Float32frombits(binary.BigEndian.Uint32(data[n:])))
			n += bit32Size

		case TypeFloat64:
			if len(data)-n < bit64Size {
				return nil, 0, errShortPayload(c)
			}
			args = append(args, math.Float64frombits(binary.BigEndian.Uint64(data[n:])))
			n += bit64Size

		case TypeString:
			s, sn, err := parsePaddedString(data[n:])
			if err != nil {
				return nil, 0, fmt.Errorf("parseArguments: %w", err)
			}
			args = append(args, s)
			n += sn

		case TypeBlob:
			b, bn, err := parseBlob(data[n:])
			if err != nil {
				return nil, 0, fmt.Errorf("parseArguments: %w", err)
			}
			args = append(args, b)
			n += bn

		case TypeTimetag:
			if len(data)-n < bit64Size {
				return nil, 0, errShortPayload(c)
			}
			args = append(args, Timetag(binary.BigEndian.Uint64(data[n:])))
			n += bit64Size

		case TypeChar:
			if len(data)-n < bit32Size {
				return nil, 0, errShortPayload(c)
			}
			v := binary.BigEndian.Uint32(data[n:])
			if !utf8.ValidRune(rune(v)) {
				return nil, 0, fmt.Errorf("parseArguments: %w: argument is not a char", ErrInvalidArgument)
			}
			args = append(args, Char(v))
			n += bit32Size

		case TypeColor:
			if len(data)-n < bit32Size {
				return nil, 0, errShortPayload(c)
			}
			args = append(args, Color{R: data[n], G: data[n+1], B: data[n+2], A: data[n+3]})
			n += bit32Size

		case TypeMidi:
			if len(data)-n < bit32Size {
				return nil, 0, errShortPayload(c)
			}
			args = append(args, MidiMessage{Port: data[n], Status: data[n+1], Data1: data[n+2], Data2: data[n+3]})
			n += bit32Size

		case TypeTrue:
			args = append(args, true)
		case TypeFalse:
			args = append(args, false)
		case TypeNil:
			args = append(args, nil)
		case TypeInfinitum:
			args = append(args, Inf)
		}
	}

	if len(stack) != 0 {
		return nil, 0, fmt.Errorf("parseArguments: %w: unterminated array", ErrInvalidTypeTags)
	}

	return args, n, nil
}

func errShortPayload(tag rune) error {
	return fmt.Errorf("parseArguments: %w: not enough bytes for type tag %q", ErrInvalidPacket, tag)
}
