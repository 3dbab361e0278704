package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osckit/go-osc/osc"
)

func TestParseArgument(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want interface{}
	}{
		{"i:42", int32(42)},
		{"i:-1", int32(-1)},
		{"h:9000000000", int64(9000000000)},
		{"f:0.5", float32(0.5)},
		{"d:0.25", float64(0.25)},
		{"s:hello", "hello"},
		{"s:", ""},
		{"s:with:colon", "with:colon"},
		{"b:deadbeef", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"t:1", osc.Timetag(1)},
		{"c:x", osc.Char('x')},
		{"r:ff007f01", osc.Color{R: 0xff, G: 0x00, B: 0x7f, A: 0x01}},
		{"m:0190407f", osc.MidiMessage{Port: 0x01, Status: 0x90, Data1: 0x40, Data2: 0x7f}},
		{"T", true},
		{"F", false},
		{"N", nil},
		{"I", osc.Inf},
	} {
		got, err := parseArgument(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseArgumentInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"42",
		"i:",
		"i:abc",
		"i:99999999999",
		"f:fast",
		"b:xyz",
		"c:ab",
		"c:",
		"r:ff",
		"r:zzzzzzzz",
		"m:0190",
		"x:1",
		"is:1",
	} {
		_, err := parseArgument(in)
		assert.Error(t, err, in)
	}
}

func TestParseArguments(t *testing.T) {
	args, err := parseArguments([]string{"i:1", "s:two", "T"})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(1), "two", true}, args)

	_, err = parseArguments([]string{"i:1", "bad"})
	assert.Error(t, err)
}
