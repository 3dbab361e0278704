package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"
)

////
// De/Encoding functions
////

// parsePaddedString reads a null terminated, 4-byte aligned string from the
// given slice and returns the string and the number of bytes consumed.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, fmt.Errorf("parsePaddedString: %w", ErrUnterminatedString)
	}

	n := pos + 1 + padBytesNeeded(pos+1)
	if n > len(data) {
		return "", 0, fmt.Errorf("parsePaddedString: %w: missing padding", ErrInvalidPacket)
	}

	str := data[:pos]

	return *(*string)(unsafe.Pointer(&str)), n, nil
}

// writePaddedString writes a string with a null terminator and padding bytes
// to the buffer. Returns the number of written bytes.
func writePaddedString(str string, buf *bytes.Buffer) int {
	buf.WriteString(str)

	n := len(str) + 1
	buf.Write(zeroPad[:1+padBytesNeeded(n)])

	return n + padBytesNeeded(n)
}

// parseBlob reads an OSC blob (int32 size, data, padding) from the given
// slice and returns the blob and the number of bytes consumed.
func parseBlob(data []byte) ([]byte, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: %w: missing blob size", ErrInvalidArgument)
	}

	blobLen := int(int32(binary.BigEndian.Uint32(data)))
	if blobLen < 0 || blobLen > len(data)-bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: %w: invalid blob length %d", ErrInvalidArgument, blobLen)
	}

	n := bit32Size + blobLen
	n += padBytesNeeded(n)
	if n > len(data) {
		return nil, 0, fmt.Errorf("parseBlob: %w: missing padding", ErrInvalidArgument)
	}

	return data[bit32Size : bit32Size+blobLen], n, nil
}

// writeBlob writes the data byte array as an OSC blob into buf. If the length
// of data isn't 32-bit aligned, padding bytes are added.
func writeBlob(data []byte, buf *bytes.Buffer) int {
	var size [bit32Size]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(data)))
	buf.Write(size[:])
	buf.Write(data)

	pad := padBytesNeeded(len(data))
	buf.Write(zeroPad[:pad])

	return bit32Size + len(data) + pad
}

// padBytesNeeded determines how many bytes are needed to fill up to the next
// 4 byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
