package osc

import (
	"errors"
	"testing"
)

func TestToTypeTag(t *testing.T) {
	for _, tt := range []struct {
		arg  interface{}
		want TypeTag
	}{
		{int32(1), TypeInt32},
		{float32(1), TypeFloat32},
		{"", TypeString},
		{[]byte{1}, TypeBlob},
		{int64(1), TypeInt64},
		{float64(1), TypeFloat64},
		{Timetag(1), TypeTimetag},
		{Char('a'), TypeChar},
		{Color{}, TypeColor},
		{MidiMessage{}, TypeMidi},
		{true, TypeTrue},
		{false, TypeFalse},
		{nil, TypeNil},
		{Inf, TypeInfinitum},
		{int(1), TypeInvalid},
		{uint32(1), TypeInvalid},
		{[]interface{}{}, TypeInvalid}, // arrays expand to more than one tag
	} {
		if got := ToTypeTag(tt.arg); got != tt.want {
			t.Errorf("ToTypeTag(%v) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

func TestAppendTypeTags(t *testing.T) {
	for _, tt := range []struct {
		name    string
		args    []interface{}
		want    string
		wantErr bool
	}{
		{"empty", nil, "", false},
		{"flat", []interface{}{int32(1), "s", true}, "isT", false},
		{"array", []interface{}{int32(1), []interface{}{float32(2), nil}}, "i[fN]", false},
		{"nested", []interface{}{[]interface{}{[]interface{}{}}}, "[[]]", false},
		{"invalid", []interface{}{uint64(1)}, "", true},
		{"invalid_in_array", []interface{}{[]interface{}{uint64(1)}}, "", true},
	} {
		got, err := appendTypeTags(tt.args, nil)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("%s: appendTypeTags() error = %v, want ErrUnsupportedType", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: appendTypeTags() error = %v", tt.name, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("%s: appendTypeTags() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
