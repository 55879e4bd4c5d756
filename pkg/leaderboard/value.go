package leaderboard

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Kind is the concrete type a table column is normalized to
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a single coerced table cell. The zero Value is null.
type Value struct {
	kind  Kind
	valid bool
	i     int64
	f     float64
	s     string
}

// Int returns a non-null integer value
func Int(i int64) Value { return Value{kind: KindInt, valid: true, i: i} }

// Float returns a non-null floating point value
func Float(f float64) Value { return Value{kind: KindFloat, valid: true, f: f} }

// String returns a non-null string value
func String(s string) Value { return Value{kind: KindString, valid: true, s: s} }

// Kind reports the value's kind. Null values report the kind they were coerced to.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the upstream cell was empty
func (v Value) IsNull() bool { return !v.valid }

// Number returns the value as float64. ok is false for null cells;
// err is non-nil for strings that do not parse as numbers.
func (v Value) Number() (n float64, ok bool, err error) {
	if !v.valid {
		return 0, false, nil
	}
	switch v.kind {
	case KindInt:
		return float64(v.i), true, nil
	case KindFloat:
		return v.f, true, nil
	default:
		f, err := cast.ToFloat64E(strings.TrimSpace(v.s))
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q", ErrNotNumeric, v.s)
		}
		return f, true, nil
	}
}

// Text renders the value for display. Null renders as "".
func (v Value) Text() string {
	if !v.valid {
		return ""
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return v.s
	}
}

// Interface returns int64, float64, string or nil, ready for JSON encoding
func (v Value) Interface() interface{} {
	if !v.valid {
		return nil
	}
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

// Coerce converts a loosely typed upstream cell to the requested kind.
// nil (JSON null) yields a null Value of that kind.
func Coerce(raw interface{}, kind Kind) (Value, error) {
	if raw == nil {
		return Value{kind: kind}, nil
	}

	if n, ok := raw.(json.Number); ok {
		raw = numberToNative(n)
	}

	switch kind {
	case KindInt:
		if f, ok := raw.(float64); ok {
			// int(27.9) == 27, same as the upstream client library
			return Int(int64(math.Trunc(f))), nil
		}
		i, err := cast.ToInt64E(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrNotNumeric, raw)
		}
		return Int(i), nil
	case KindFloat:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrNotNumeric, raw)
		}
		return Float(f), nil
	case KindString:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return Value{}, fmt.Errorf("coercing %T to string: %w", raw, err)
		}
		return String(s), nil
	default:
		return Value{}, fmt.Errorf("unknown kind %v", kind)
	}
}

// CoerceAuto coerces a single value using the kind Infer would pick for it
func CoerceAuto(raw interface{}) (Value, error) {
	return Coerce(raw, Infer([]interface{}{raw}))
}

// Infer picks one kind for a whole column: integral numbers only -> KindInt,
// any fractional number -> KindFloat, anything non-numeric -> KindString.
// A column of nulls is KindFloat.
func Infer(column []interface{}) Kind {
	sawNumber := false
	fractional := false

	for _, raw := range column {
		switch v := raw.(type) {
		case nil:
			continue
		case json.Number:
			sawNumber = true
			if strings.ContainsAny(v.String(), ".eE") {
				fractional = true
			}
		case float64:
			sawNumber = true
			if v != math.Trunc(v) {
				fractional = true
			}
		case float32:
			sawNumber = true
			if float64(v) != math.Trunc(float64(v)) {
				fractional = true
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			sawNumber = true
		default:
			return KindString
		}
	}

	if !sawNumber || fractional {
		return KindFloat
	}
	return KindInt
}

func numberToNative(n json.Number) interface{} {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
