package osc

// testCase is shared by the message, bundle and packet tests. raw holds the
// exact wire representation of obj.
type testCase struct {
	name string
	obj  Packet
	raw  []byte
}

var messageTestCases = []testCase{
	{
		"no_args",
		&Message{Address: "/a/b/c"},
		[]byte("/a/b/c\x00\x00,\x00\x00\x00"),
	},
	{
		"int_and_string",
		&Message{Address: "/foo", Arguments: []interface{}{int32(1234), "bar"}},
		[]byte("/foo\x00\x00\x00\x00,is\x00\x00\x00\x04\xd2bar\x00"),
	},
	{
		"numbers_and_constants",
		&Message{Address: "/x", Arguments: []interface{}{
			float32(1.5), int64(-1), float64(0.25), Timetag(1), true, false, nil, Inf,
		}},
		[]byte("/x\x00\x00,fhdtTFNI\x00\x00\x00" +
			"\x3f\xc0\x00\x00" +
			"\xff\xff\xff\xff\xff\xff\xff\xff" +
			"\x3f\xd0\x00\x00\x00\x00\x00\x00" +
			"\x00\x00\x00\x00\x00\x00\x00\x01"),
	},
	{
		"blob",
		&Message{Address: "/b", Arguments: []interface{}{[]byte{1, 2, 3}}},
		[]byte("/b\x00\x00,b\x00\x00\x00\x00\x00\x03\x01\x02\x03\x00"),
	},
	{
		"char_color_midi",
		&Message{Address: "/c", Arguments: []interface{}{
			Char('$'),
			Color{R: 255, G: 0, B: 127, A: 1},
			MidiMessage{Port: 1, Status: 0x90, Data1: 0x40, Data2: 0x7f},
		}},
		[]byte("/c\x00\x00,crm\x00\x00\x00\x00" +
			"\x00\x00\x00\x24" +
			"\xff\x00\x7f\x01" +
			"\x01\x90\x40\x7f"),
	},
	{
		"array",
		&Message{Address: "/arr", Arguments: []interface{}{
			[]interface{}{int32(1), int32(2)},
		}},
		[]byte("/arr\x00\x00\x00\x00,[ii]\x00\x00\x00" +
			"\x00\x00\x00\x01\x00\x00\x00\x02"),
	},
}

var bundleTestCases = []testCase{
	{
		"empty_bundle",
		&Bundle{Timetag: TimetagImmediate},
		[]byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01"),
	},
	{
		"one_message",
		&Bundle{Timetag: TimetagImmediate, Elements: []Packet{
			&Message{Address: "/a/b/c"},
		}},
		[]byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x00\x00\x00\x0c/a/b/c\x00\x00,\x00\x00\x00"),
	},
	{
		"nested_bundle",
		&Bundle{Timetag: TimetagImmediate, Elements: []Packet{
			&Bundle{Timetag: TimetagImmediate},
		}},
		[]byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01" +
			"\x00\x00\x00\x10#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01"),
	},
}

// invalidPacketCases hold raw data that must be rejected by ParsePacket.
var invalidPacketCases = []struct {
	name string
	raw  []byte
}{
	{"empty", []byte{}},
	{"unknown_format", []byte("abcd")},
	{"unterminated_address", []byte("/abc")},
	{"unaligned_message", []byte("/ab\x00,")},
	{"missing_argument_payload", []byte("/a\x00\x00,i\x00\x00")},
	{"typetags_without_comma", []byte("/a\x00\x00is\x00\x00")},
	{"unterminated_array", []byte("/a\x00\x00,[i\x00\x00\x00\x00\x01")},
	{"bundle_too_short", []byte("#bundle\x00")},
	{"bundle_bad_tag", []byte("#bundlx\x00\x00\x00\x00\x00\x00\x00\x00\x01")},
	{"bundle_bad_element_length", []byte("#bundle\x00\x00\x00\x00\x00\x00\x00\x00\x01\x00\x00\x00\x08")},
}
