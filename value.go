package kkcard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind is the type of data held by a Value
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBinary
	KindList
	KindMap
)

var kindNames = [...]string{
	KindNil:    "nil",
	KindBool:   "bool",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindString: "string",
	KindBinary: "binary",
	KindList:   "list",
	KindMap:    "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a decoded generic value (the shape produced by the block codec)
//
// A Value is one of nil, bool, int, uint, float, string, binary, list or map. Unsigned values
// that fit an int64 are held as KindInt - KindUint only holds values above math.MaxInt64.
//
// Map keys are always strings (non-string keys are stringified on decode) and map entries
// keep their order.
//
// The zero Value is nil.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	u       uint64
	f       float64
	s       string
	bin     []byte
	list    []Value
	entries []MapEntry
}

// MapEntry is a single key/value pair of a map Value
type MapEntry struct {
	Key   string
	Value Value
}

func NilValue() Value                { return Value{} }
func BoolValue(b bool) Value         { return Value{kind: KindBool, b: b} }
func IntValue(i int64) Value         { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value     { return Value{kind: KindFloat, f: f} }
func StringValue(s string) Value     { return Value{kind: KindString, s: s} }
func BinaryValue(b []byte) Value     { return Value{kind: KindBinary, bin: b} }
func ListValue(items ...Value) Value { return Value{kind: KindList, list: items} }

// UintValue creates an unsigned value (held as KindInt if it fits an int64)
func UintValue(u uint64) Value {
	if u <= 1<<63-1 {
		return Value{kind: KindInt, i: int64(u)}
	}
	return Value{kind: KindUint, u: u}
}

// MapValue creates a map value from the supplied entries
//
// duplicate keys are collapsed - the last entry for a key wins (keeping the position of the first)
func MapValue(entries ...MapEntry) Value {
	v := Value{kind: KindMap, entries: make([]MapEntry, 0, len(entries))}
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Key]; ok {
			v.entries[i].Value = e.Value
			continue
		}
		index[e.Key] = len(v.entries)
		v.entries = append(v.entries, e)
	}
	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNil() bool {
	return v.kind == KindNil
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Int returns the value as an int64 - ok is false for non-integer kinds
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Uint returns the value as a uint64 - ok is false for non-integer kinds and negative ints
func (v Value) Uint() (uint64, bool) {
	switch v.kind {
	case KindUint:
		return v.u, true
	case KindInt:
		if v.i >= 0 {
			return uint64(v.i), true
		}
	}
	return 0, false
}

// Float returns the value as a float64 (integers are converted)
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	}
	return 0, false
}

// Str returns the string held by a string value
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Bytes returns the bytes held by a binary value
func (v Value) Bytes() ([]byte, bool) {
	return v.bin, v.kind == KindBinary
}

// List returns the items of a list value
func (v Value) List() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// Entries returns the entries of a map value
func (v Value) Entries() ([]MapEntry, bool) {
	return v.entries, v.kind == KindMap
}

// Len returns the number of items (list), entries (map), bytes (binary, string) or zero
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.entries)
	case KindBinary:
		return len(v.bin)
	case KindString:
		return len(v.s)
	}
	return 0
}

// Keys returns the keys of a map value (in order)
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	result := make([]string, len(v.entries))
	for i, e := range v.entries {
		result[i] = e.Key
	}
	return result
}

// Get returns the value for a key of a map value
func (v Value) Get(key string) (Value, bool) {
	if v.kind == KindMap {
		for _, e := range v.entries {
			if e.Key == key {
				return e.Value, true
			}
		}
	}
	return Value{}, false
}

// Has reports whether a map value has the key
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Path walks nested map values by key
func (v Value) Path(keys ...string) (Value, bool) {
	current := v
	for _, key := range keys {
		next, ok := current.Get(key)
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}

// Interface converts the value to plain Go values
//
// maps become map[string]any, lists []any, binary []byte
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBinary:
		return v.bin
	case KindList:
		result := make([]any, len(v.list))
		for i, item := range v.list {
			result[i] = item.Interface()
		}
		return result
	case KindMap:
		result := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			result[e.Key] = e.Value.Interface()
		}
		return result
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBinary:
		return fmt.Sprintf("binary(%d)", len(v.bin))
	case KindList, KindMap:
		if data, err := v.MarshalJSON(); err == nil {
			return string(data)
		}
		return v.kind.String()
	}
	return fmt.Sprint(v.Interface())
}

// MarshalJSON encodes the value as JSON - map entry order is kept, binary is base64 encoded
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindMap:
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(e.Key)
			buf.Write(key)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	data, err := json.Marshal(v.Interface())
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
