package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindList
)

// Value holds the content of a container sub-category: a single string,
// a number, or a list of strings (table HTML token streams). Values are
// immutable; construct them with StringValue, IntValue, FloatValue or
// ListValue.
type Value struct {
	kind valueKind
	str  string
	num  float64
	list []string
}

// StringValue creates a string value
func StringValue(s string) *Value {
	return &Value{kind: kindString, str: s}
}

// IntValue creates an integer value
func IntValue(i int) *Value {
	return &Value{kind: kindInt, num: float64(i)}
}

// FloatValue creates a floating point value
func FloatValue(f float64) *Value {
	return &Value{kind: kindFloat, num: f}
}

// ListValue creates a string list value. The slice is copied.
func ListValue(items []string) *Value {
	list := make([]string, len(items))
	copy(list, items)
	return &Value{kind: kindList, list: list}
}

// AsString returns the string content, if any
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != kindString {
		return "", false
	}
	return v.str, true
}

// AsInt returns the integer content, if any
func (v *Value) AsInt() (int, bool) {
	if v == nil || v.kind != kindInt {
		return 0, false
	}
	return int(v.num), true
}

// AsFloat returns the numeric content, if any. Integer values qualify.
func (v *Value) AsFloat() (float64, bool) {
	if v == nil || (v.kind != kindFloat && v.kind != kindInt) {
		return 0, false
	}
	return v.num, true
}

// AsList returns a copy of the list content, if any
func (v *Value) AsList() ([]string, bool) {
	if v == nil || v.kind != kindList {
		return nil, false
	}
	list := make([]string, len(v.list))
	copy(list, v.list)
	return list, true
}

// Text renders the value as a string regardless of kind
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	switch v.kind {
	case kindString:
		return v.str
	case kindInt:
		return strconv.Itoa(int(v.num))
	case kindFloat:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindList:
		var out string
		for i, item := range v.list {
			if i > 0 {
				out += " "
			}
			out += item
		}
		return out
	default:
		return ""
	}
}

// Copy returns a deep copy of the value
func (v *Value) Copy() *Value {
	if v == nil {
		return nil
	}
	out := &Value{kind: v.kind, str: v.str, num: v.num}
	if v.list != nil {
		out.list = make([]string, len(v.list))
		copy(out.list, v.list)
	}
	return out
}

// MarshalJSON writes the natural JSON shape of the content.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindString:
		return json.Marshal(v.str)
	case kindInt:
		return json.Marshal(int(v.num))
	case kindFloat:
		return json.Marshal(v.num)
	case kindList:
		return json.Marshal(v.list)
	default:
		return nil, fmt.Errorf("value: unknown kind %d", v.kind)
	}
}

// UnmarshalJSON probes the JSON shape: string, string list, or number.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value{kind: kindString, str: s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = Value{kind: kindList, list: list}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			*v = Value{kind: kindInt, num: float64(i)}
			return nil
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("value: cannot decode number %q: %w", n.String(), err)
		}
		*v = Value{kind: kindFloat, num: f}
		return nil
	}

	return fmt.Errorf("value: cannot decode %s", string(data))
}
