package osc

import (
	"bytes"
	"reflect"
	"testing"
)

var temp = &Message{
	Address: "/composition/layers/1/clips/1/transport/position",
	Arguments: []interface{}{
		float32(0.5), int32(1), "play", []byte{0xde, 0xad, 0xbe, 0xef},
	},
}

func TestParsePacket(t *testing.T) {
	for _, tt := range append(append([]testCase{}, messageTestCases...), bundleTestCases...) {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePacket(tt.raw)
			if err != nil {
				t.Fatalf("ParsePacket() error = %v", err)
			}
			if !reflect.DeepEqual(p, tt.obj) {
				t.Errorf("packets don't match; got = %v, want = %v", p, tt.obj)
			}
		})
	}
}

func TestParsePacketInvalid(t *testing.T) {
	for _, tt := range invalidPacketCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePacket(tt.raw); err == nil {
				t.Errorf("ParsePacket(%q) expected an error", tt.raw)
			}
		})
	}
}

func TestParsePacketDoesNotAliasInput(t *testing.T) {
	data, err := temp.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	p, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("ParsePacket() error = %v", err)
	}

	// Clobber the input buffer, the parsed packet must not change.
	for i := range data {
		data[i] = 0xff
	}

	if !reflect.DeepEqual(p, temp) {
		t.Errorf("packets don't match; got = %v, want = %v", p, temp)
	}
}

func FuzzParsePacket(f *testing.F) {
	for _, tt := range messageTestCases {
		f.Add(tt.raw)
	}
	for _, tt := range bundleTestCases {
		f.Add(tt.raw)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := ParsePacket(data)
		if err != nil {
			return
		}

		// Whatever parsed must survive a marshal/parse round trip unchanged.
		dataNew, err := p.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary() error = %v, data = %q", err, data)
		}

		pNew, err := ParsePacket(dataNew)
		if err != nil {
			t.Fatalf("ParsePacket() error = %v, data = %q", err, dataNew)
		}

		dataNew2, err := pNew.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary() error = %v, data = %q", err, dataNew)
		}

		if !bytes.Equal(dataNew, dataNew2) {
			t.Errorf("round trip is not stable; %q != %q", dataNew, dataNew2)
		}
	})
}

func BenchmarkParsePacket(b *testing.B) {
	data, err := temp.MarshalBinary()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var r Packet
	for i := 0; i < b.N; i++ {
		r, _ = ParsePacket(data)
	}
	result = r
}
