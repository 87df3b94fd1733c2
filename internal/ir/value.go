package ir

import (
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface for instruction parameter values.
// Only Int, Float, Bool, String, and List implement it. These are the
// value shapes the genetic language can express; maps are deliberately
// not values (parameters themselves are the only mapping level).
type Value interface {
	value() // Sealed - only these types implement it
}

// Int is an integer parameter value. Always int64.
type Int int64

func (Int) value() {}

// Float is a floating-point parameter value.
type Float float64

func (Float) value() {}

// Bool is a boolean parameter value.
type Bool bool

func (Bool) value() {}

// String is a string parameter value.
type String string

func (String) value() {}

// List is an ordered sequence of values.
type List []Value

func (List) value() {}

// Number extracts a float64 from numeric values.
// Returns false for non-numeric values.
func Number(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

// Equal reports deep equality of two values.
// Int and Float never compare equal, even for the same magnitude:
// the parser's coercion order makes the distinction significant.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Params is the parameter mapping of an instruction.
// Use SortedKeys for deterministic iteration.
type Params map[string]Value

// SortedKeys returns keys in canonical order (UTF-16 code units, per
// RFC 8785). Go's sort.Strings uses UTF-8 bytes, which produces a
// different order for strings outside the BMP.
func (p Params) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

// Clone returns a copy of the parameter map.
// List values are copied shallowly; values are immutable by convention.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// compareKeysUTF16 compares strings by UTF-16 code units as required by
// RFC 8785 canonical ordering.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	return len(a16) - len(b16)
}

// MarshalJSON implements json.Marshaler with deterministic key order.
func (p Params) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range p.SortedKeys() {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p[k])
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", k, err)
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
// Numbers decode as Int when they carry no fractional or exponent part,
// Float otherwise - the same precedence as the text parser.
func (p *Params) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Params, len(raw))
	for k, rv := range raw {
		v, err := unmarshalValue(rv)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", k, err)
		}
		out[k] = v
	}
	*p = out
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for List.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(List, len(raw))
	for i, rv := range raw {
		v, err := unmarshalValue(rv)
		if err != nil {
			return fmt.Errorf("list[%d]: %w", i, err)
		}
		out[i] = v
	}
	*l = out
	return nil
}

// unmarshalValue decodes a JSON value into the appropriate sealed type.
// Objects and null are rejected: neither is a legal parameter value.
func unmarshalValue(data []byte) (Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case '[':
		var l List
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		return l, nil
	case '{':
		return nil, fmt.Errorf("objects are not valid parameter values")
	case 'n':
		return nil, fmt.Errorf("null is not a valid parameter value")
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", n.String())
		}
		return Float(f), nil
	}
}
