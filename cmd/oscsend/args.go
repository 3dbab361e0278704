package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/osckit/go-osc/osc"
)

// parseArgument converts a typed command line argument into an OSC argument.
// The syntax is "tag:value" with the type tags of the wire format, e.g.
// "i:42", "f:0.5", "s:hello" or "b:deadbeef" (hex). Colors and MIDI messages
// are four hex bytes, "r:RRGGBBAA" and "m:<port><status><data1><data2>". The
// payload-free tags T, F, N and I stand on their own.
func parseArgument(s string) (interface{}, error) {
	switch s {
	case "T":
		return true, nil
	case "F":
		return false, nil
	case "N":
		return nil, nil
	case "I":
		return osc.Inf, nil
	}

	tag, value, ok := strings.Cut(s, ":")
	if !ok || len(tag) != 1 {
		return nil, fmt.Errorf("parseArgument: bad argument %q, want tag:value", s)
	}

	switch osc.TypeTag(tag[0]) {
	case osc.TypeInt32:
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parseArgument: %q: %w", s, err)
		}
		return int32(v), nil

	case osc.TypeInt64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parseArgument: %q: %w", s, err)
		}
		return v, nil

	case osc.TypeFloat32:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("parseArgument: %q: %w", s, err)
		}
		return float32(v), nil

	case osc.TypeFloat64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parseArgument: %q: %w", s, err)
		}
		return v, nil

	case osc.TypeString:
		return value, nil

	case osc.TypeBlob:
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("parseArgument: %q: %w", s, err)
		}
		return b, nil

	case osc.TypeTimetag:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parseArgument: %q: %w", s, err)
		}
		return osc.Timetag(v), nil

	case osc.TypeColor:
		b, err := hex.DecodeString(value)
		if err != nil || len(b) != 4 {
			return nil, fmt.Errorf("parseArgument: %q: want 8 hex digits RRGGBBAA", s)
		}
		return osc.Color{R: b[0], G: b[1], B: b[2], A: b[3]}, nil

	case osc.TypeMidi:
		b, err := hex.DecodeString(value)
		if err != nil || len(b) != 4 {
			return nil, fmt.Errorf("parseArgument: %q: want 8 hex digits port/status/data1/data2", s)
		}
		return osc.MidiMessage{Port: b[0], Status: b[1], Data1: b[2], Data2: b[3]}, nil

	case osc.TypeChar:
		r, size := utf8.DecodeRuneInString(value)
		if size == 0 || size != len(value) || r == utf8.RuneError {
			return nil, fmt.Errorf("parseArgument: %q: want a single character", s)
		}
		return osc.Char(r), nil
	}

	return nil, fmt.Errorf("parseArgument: unsupported type tag %q", tag)
}

func parseArguments(ss []string) ([]interface{}, error) {
	args := make([]interface{}, 0, len(ss))
	for _, s := range ss {
		arg, err := parseArgument(s)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}
