package osc

import (
	"fmt"
	"strings"
)

// OSC address pattern matching, per the "OSC Message Dispatching and Pattern
// Matching" section of the 1.0 specification:
//
//   - '?' matches a single character
//   - '*' matches zero or more characters within one address part
//   - '[a-z]' is a character class, with ranges and '!' negation
//   - '{foo,bar}' is an alternative, matching either "foo" or "bar"
//   - everything else is matched literally

type componentKind int

const (
	componentLiteral componentKind = iota
	componentSingle
	componentWildcard
	componentClass
	componentChoice
)

type patternComponent struct {
	kind    componentKind
	literal string
	// min is the number of '?' wildcards fused into a '*' wildcard, e.g.
	// "*??" must match at least 2 characters.
	min     int
	class   *characterClass
	choices []string
}

// characterClass is a set of characters to match, e.g. [a-z] matches all
// lowercase letters and [!0-9] matches anything except digits.
type characterClass struct {
	negated    bool
	characters string
}

func (cc *characterClass) matches(c byte) bool {
	return strings.IndexByte(cc.characters, c) >= 0 != cc.negated
}

// isAddressCharacter reports whether c may appear in an OSC address part.
// All printable ASCII characters are allowed except for a few with special
// meaning.
func isAddressCharacter(c byte) bool {
	switch c {
	case ' ', '#', '*', ',', '/', '?', '[', ']', '{', '}':
		return false
	}
	return c > 0x20 && c < 0x7f
}

// ValidateAddress checks that addr is a valid plain OSC address: '/'-prefixed
// non-empty parts without any of the pattern characters " #*,/?[]{}".
func ValidateAddress(addr string) error {
	if len(addr) < 2 || addr[0] != '/' {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	for _, part := range strings.Split(addr[1:], "/") {
		if part == "" {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
		for i := 0; i < len(part); i++ {
			if !isAddressCharacter(part[i]) {
				return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
			}
		}
	}

	return nil
}

// ValidateAddressPattern checks that pattern is a valid OSC address pattern.
func ValidateAddressPattern(pattern string) error {
	_, err := parsePattern(pattern)
	return err
}

// Matcher matches OSC method addresses against an OSC address pattern.
//
// A Matcher should be created once per pattern and reused, its construction
// requires parsing the address pattern.
type Matcher struct {
	Pattern string

	parts []patternComponent
}

// NewMatcher returns a new Matcher for the given address pattern. An error
// is returned if the pattern is invalid.
func NewMatcher(pattern string) (*Matcher, error) {
	parts, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}

	return &Matcher{Pattern: pattern, parts: parts}, nil
}

// Match matches an OSC address against the pattern. An error is returned if
// the given address is not a valid plain OSC address.
func (m *Matcher) Match(address string) (bool, error) {
	if err := ValidateAddress(address); err != nil {
		return false, err
	}

	if address == m.Pattern {
		return true, nil
	}

	remainder := address
	for i := range m.parts {
		part := &m.parts[i]

		var n int
		switch part.kind {
		case componentLiteral:
			if !strings.HasPrefix(remainder, part.literal) {
				return false, nil
			}
			n = len(part.literal)

		case componentSingle:
			if len(remainder) == 0 || !isAddressCharacter(remainder[0]) {
				return false, nil
			}
			n = 1

		case componentClass:
			if len(remainder) == 0 || !part.class.matches(remainder[0]) {
				return false, nil
			}
			n = 1

		case componentChoice:
			ok := false
			for _, choice := range part.choices {
				if strings.HasPrefix(remainder, choice) {
					n = len(choice)
					ok = true
					break
				}
			}
			if !ok {
				return false, nil
			}

		case componentWildcard:
			var ok bool
			if n, ok = m.matchWildcard(remainder, i); !ok {
				return false, nil
			}
		}

		remainder = remainder[n:]
	}

	// The address only matches if it was consumed entirely.
	return remainder == "", nil
}

// matchWildcard consumes characters for the '*' wildcard at parts[idx]. The
// implementation is greedy: if another component follows within the same
// address part, the latest offset where it matches wins.
func (m *Matcher) matchWildcard(remainder string, idx int) (int, bool) {
	part := &m.parts[idx]

	// A wildcard never crosses a '/' boundary.
	segment := remainder
	if j := strings.IndexByte(remainder, '/'); j >= 0 {
		segment = remainder[:j]
	}

	var next *patternComponent
	if idx+1 < len(m.parts) {
		nx := &m.parts[idx+1]
		if !(nx.kind == componentLiteral && nx.literal == "/") {
			next = nx
		}
	}

	if next == nil {
		// Terminal wildcard, it consumes the rest of the part and must
		// match at least one character.
		if len(segment) == 0 || len(segment) < part.min {
			return 0, false
		}
		return len(segment), true
	}

	best := 0
	for i := 0; i < len(segment); i++ {
		if componentMatchesAt(next, remainder[i:]) {
			best = i
		}
	}
	if best < part.min {
		return 0, false
	}

	// If next never matched, best stays 0 and next fails on its own turn.
	return best, true
}

func componentMatchesAt(c *patternComponent, s string) bool {
	switch c.kind {
	case componentLiteral:
		return strings.HasPrefix(s, c.literal)
	case componentClass:
		return len(s) > 0 && c.class.matches(s[0])
	case componentChoice:
		for _, choice := range c.choices {
			if strings.HasPrefix(s, choice) {
				return true
			}
		}
	}
	return false
}

// parsePattern compiles an address pattern into its components. Each part
// must start with a '/', which also forbids a trailing '/'.
func parsePattern(pattern string) ([]patternComponent, error) {
	if len(pattern) < 2 || pattern[0] != '/' {
		return nil, fmt.Errorf("%w: pattern %q", ErrInvalidAddress, pattern)
	}

	var parts []patternComponent
	i := 0
	for i < len(pattern) {
		switch c := pattern[i]; {
		case c == '/':
			if i+1 == len(pattern) || pattern[i+1] == '/' {
				return nil, fmt.Errorf("%w: pattern %q: empty address part", ErrInvalidAddress, pattern)
			}
			parts = append(parts, patternComponent{kind: componentLiteral, literal: "/"})
			i++

		case c == '?':
			parts = append(parts, patternComponent{kind: componentSingle})
			i++

		case c == '*':
			// Runs of '*' collapse into one wildcard; trailing '?' wildcards
			// only raise the minimum match length.
			min := 0
			for i < len(pattern) && (pattern[i] == '*' || pattern[i] == '?') {
				if pattern[i] == '?' {
					min++
				}
				i++
			}
			parts = append(parts, patternComponent{kind: componentWildcard, min: min})

		case c == '[':
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: pattern %q: unterminated character class", ErrInvalidAddress, pattern)
			}
			class, err := newCharacterClass(pattern[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidAddress, pattern, err)
			}
			parts = append(parts, patternComponent{kind: componentClass, class: class})
			i += end + 1

		case c == '{':
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: pattern %q: unterminated alternative", ErrInvalidAddress, pattern)
			}
			choices := strings.Split(pattern[i+1:i+end], ",")
			for _, choice := range choices {
				if choice == "" {
					return nil, fmt.Errorf("%w: pattern %q: empty alternative", ErrInvalidAddress, pattern)
				}
				for j := 0; j < len(choice); j++ {
					if !isAddressCharacter(choice[j]) {
						return nil, fmt.Errorf("%w: pattern %q: bad alternative %q", ErrInvalidAddress, pattern, choice)
					}
				}
			}
			parts = append(parts, patternComponent{kind: componentChoice, choices: choices})
			i += end + 1

		case isAddressCharacter(c):
			j := i
			for j < len(pattern) && isAddressCharacter(pattern[j]) {
				j++
			}
			parts = append(parts, patternComponent{kind: componentLiteral, literal: pattern[i:j]})
			i = j

		default:
			return nil, fmt.Errorf("%w: pattern %q: bad character %q", ErrInvalidAddress, pattern, c)
		}
	}

	return parts, nil
}

// newCharacterClass builds a character class from the text between '[' and
// ']'. A leading '!' negates the class, 'a-z' ranges are expanded, further
// '!' characters are ignored and a trailing '-' has no special meaning.
func newCharacterClass(spec string) (*characterClass, error) {
	negated := false
	if strings.HasPrefix(spec, "!") {
		negated = true
		spec = spec[1:]
	}
	if spec == "" {
		return nil, fmt.Errorf("empty character class")
	}

	var chars []byte
	appendChar := func(c byte) {
		for _, have := range chars {
			if have == c {
				return
			}
		}
		chars = append(chars, c)
	}

	for i := 0; i < len(spec); {
		c := spec[i]
		switch {
		case c == '!':
			i++

		case i+2 < len(spec) && spec[i+1] == '-' && isAddressCharacter(c) && isAddressCharacter(spec[i+2]):
			lo, hi := c, spec[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			// Funky ranges like [0-a] contain illegal characters, skip them.
			for r := lo; r <= hi; r++ {
				if isAddressCharacter(r) {
					appendChar(r)
				}
			}
			i += 3

		case c == '-' || isAddressCharacter(c):
			appendChar(c)
			i++

		default:
			return nil, fmt.Errorf("bad character %q in character class", c)
		}
	}

	return &characterClass{negated: negated, characters: string(chars)}, nil
}
