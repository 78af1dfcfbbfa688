package kkcard

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"strconv"
	"time"
)

// MaxValueDepth is the nesting limit (of lists and maps) when decoding a msgpack value
const MaxValueDepth = 512

const maxPrealloc = 1024

// DecodeValue decodes a single msgpack encoded value
//
// the whole of data must be consumed - trailing bytes are an error. Declared list and map lengths
// are checked against the remaining input and nesting is limited to MaxValueDepth
func DecodeValue(data []byte) (Value, error) {
	if len(data) == 0 {
		return Value{}, errors.New("msgpack: empty input")
	}
	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	v, err := decodeValue(dec, r, 0)
	if err != nil {
		return Value{}, err
	}
	if r.Len() > 0 {
		return Value{}, fmt.Errorf("msgpack: %d extra bytes after value", r.Len())
	}
	return v, nil
}

// decodeValue walks lists and maps itself (the codec would preallocate from the declared length) -
// scalars are left to the codec
func decodeValue(d *msgpack.Decoder, r *bytes.Reader, depth int) (Value, error) {
	c, err := d.PeekCode()
	if err != nil {
		return Value{}, err
	}
	switch {
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		return decodeList(d, r, depth)
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		return decodeMap(d, r, depth)
	}
	raw, err := d.DecodeInterface()
	if err != nil {
		return Value{}, err
	}
	return valueOf(raw)
}

// checkContainer rejects a container nested too deep or declaring more items than the
// remaining input could hold (every item takes at least minSize bytes)
func checkContainer(what string, n int, minSize int, r *bytes.Reader, depth int) error {
	if depth >= MaxValueDepth {
		return fmt.Errorf("msgpack: nesting depth exceeds %d", MaxValueDepth)
	}
	if n < 0 || n > r.Len()/minSize {
		return fmt.Errorf("msgpack: %s length %d exceeds remaining %d bytes", what, n, r.Len())
	}
	return nil
}

func decodeList(d *msgpack.Decoder, r *bytes.Reader, depth int) (Value, error) {
	n, err := d.DecodeArrayLen()
	if err != nil {
		return Value{}, err
	}
	if err = checkContainer("array", n, 1, r, depth); err != nil {
		return Value{}, err
	}
	items := make([]Value, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := decodeValue(d, r, depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	return ListValue(items...), nil
}

// decodeMap keeps the encoded entry order and stringifies keys (binary keys
// cannot be used as go map keys)
func decodeMap(d *msgpack.Decoder, r *bytes.Reader, depth int) (Value, error) {
	n, err := d.DecodeMapLen()
	if err != nil {
		return Value{}, err
	}
	if err = checkContainer("map", n, 2, r, depth); err != nil {
		return Value{}, err
	}
	entries := make([]MapEntry, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		key, err := decodeValue(d, r, depth+1)
		if err != nil {
			return Value{}, err
		}
		v, err := decodeValue(d, r, depth+1)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, MapEntry{Key: keyString(key), Value: v})
	}
	return MapValue(entries...), nil
}

func valueOf(raw any) (Value, error) {
	switch rv := raw.(type) {
	case nil:
		return NilValue(), nil
	case bool:
		return BoolValue(rv), nil
	case int8:
		return IntValue(int64(rv)), nil
	case int16:
		return IntValue(int64(rv)), nil
	case int32:
		return IntValue(int64(rv)), nil
	case int64:
		return IntValue(rv), nil
	case int:
		return IntValue(int64(rv)), nil
	case uint8:
		return UintValue(uint64(rv)), nil
	case uint16:
		return UintValue(uint64(rv)), nil
	case uint32:
		return UintValue(uint64(rv)), nil
	case uint64:
		return UintValue(rv), nil
	case uint:
		return UintValue(uint64(rv)), nil
	case float32:
		return FloatValue(float64(rv)), nil
	case float64:
		return FloatValue(rv), nil
	case string:
		return StringValue(rv), nil
	case []byte:
		return BinaryValue(rv), nil
	case time.Time:
		return StringValue(rv.UTC().Format(time.RFC3339Nano)), nil
	}
	return Value{}, fmt.Errorf("msgpack: unsupported decoded type %T", raw)
}

func keyString(k Value) string {
	switch k.kind {
	case KindString:
		return k.s
	case KindBinary:
		return string(k.bin)
	case KindInt:
		return strconv.FormatInt(k.i, 10)
	case KindUint:
		return strconv.FormatUint(k.u, 10)
	case KindNil:
		return "null"
	}
	return k.String()
}
