package osc

import "fmt"

// TypeTag identifies the type of a single OSC argument inside a type tag
// string.
type TypeTag rune

const (
	TypeInt32      TypeTag = 'i'
	TypeFloat32    TypeTag = 'f'
	TypeString     TypeTag = 's'
	TypeBlob       TypeTag = 'b'
	TypeInt64      TypeTag = 'h'
	TypeFloat64    TypeTag = 'd'
	TypeTimetag    TypeTag = 't'
	TypeChar       TypeTag = 'c'
	TypeColor      TypeTag = 'r'
	TypeMidi       TypeTag = 'm'
	TypeTrue       TypeTag = 'T'
	TypeFalse      TypeTag = 'F'
	TypeNil        TypeTag = 'N'
	TypeInfinitum  TypeTag = 'I'
	TypeArrayStart TypeTag = '['
	TypeArrayEnd   TypeTag = ']'
	TypeInvalid    TypeTag = 0
)

// ToTypeTag returns the OSC TypeTag for a single argument.
// Returns TypeInvalid if the argument type is unsupported. Arrays
// ([]interface{}) expand to more than one tag and are handled by
// appendTypeTags.
func ToTypeTag(arg interface{}) TypeTag {
	switch t := arg.(type) {
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	case int32:
		return TypeInt32
	case float32:
		return TypeFloat32
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case int64:
		return TypeInt64
	case float64:
		return TypeFloat64
	case Timetag:
		return TypeTimetag
	case Char:
		return TypeChar
	case Color:
		return TypeColor
	case MidiMessage:
		return TypeMidi
	case Infinitum:
		return TypeInfinitum
	default:
		return TypeInvalid
	}
}

// appendTypeTags appends the tags for args to dst, expanding nested arrays
// into '[' and ']' pairs.
func appendTypeTags(args []interface{}, dst []byte) ([]byte, error) {
	for _, arg := range args {
		if sub, ok := arg.([]interface{}); ok {
			dst = append(dst, byte(TypeArrayStart))
			var err error
			if dst, err = appendTypeTags(sub, dst); err != nil {
				return nil, err
			}
			dst = append(dst, byte(TypeArrayEnd))
			continue
		}

		t := ToTypeTag(arg)
		if t == TypeInvalid {
			return nil, fmt.Errorf("appendTypeTags: %w: %T", ErrUnsupportedType, arg)
		}
		dst = append(dst, byte(t))
	}

	return dst, nil
}
