package kkcard

import (
	"bytes"
	"github.com/go-andiamo/kkcard/_test_data/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestValue_Accessors(t *testing.T) {
	v := MapValue(
		MapEntry{Key: "b", Value: BoolValue(true)},
		MapEntry{Key: "i", Value: IntValue(-3)},
		MapEntry{Key: "u", Value: UintValue(math.MaxUint64)},
		MapEntry{Key: "f", Value: FloatValue(1.5)},
		MapEntry{Key: "s", Value: StringValue("str")},
		MapEntry{Key: "bin", Value: BinaryValue([]byte{1, 2})},
		MapEntry{Key: "l", Value: ListValue(IntValue(1), NilValue())},
		MapEntry{Key: "m", Value: MapValue(MapEntry{Key: "x", Value: IntValue(1)})},
		MapEntry{Key: "i", Value: IntValue(4)},
	)
	assert.Equal(t, KindMap, v.Kind())
	assert.Equal(t, []string{"b", "i", "u", "f", "s", "bin", "l", "m"}, v.Keys())
	assert.Equal(t, 8, v.Len())

	b, ok := v.Path("b")
	require.True(t, ok)
	bv, ok := b.Bool()
	assert.True(t, ok)
	assert.True(t, bv)

	i, _ := v.Get("i")
	iv, ok := i.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(4), iv)
	_, ok = i.Uint()
	assert.True(t, ok)
	fv, ok := i.Float()
	assert.True(t, ok)
	assert.Equal(t, 4.0, fv)

	u, _ := v.Get("u")
	assert.Equal(t, KindUint, u.Kind())
	_, ok = u.Int()
	assert.False(t, ok)
	uv, ok := u.Uint()
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), uv)
	assert.Equal(t, KindInt, UintValue(5).Kind())

	s, _ := v.Get("s")
	sv, ok := s.Str()
	assert.True(t, ok)
	assert.Equal(t, "str", sv)
	_, ok = s.Bytes()
	assert.False(t, ok)

	x, ok := v.Path("m", "x")
	require.True(t, ok)
	xv, _ := x.Int()
	assert.Equal(t, int64(1), xv)
	_, ok = v.Path("m", "y")
	assert.False(t, ok)
	_, ok = v.Path("s", "y")
	assert.False(t, ok)

	l, _ := v.Get("l")
	items, ok := l.List()
	require.True(t, ok)
	assert.True(t, items[1].IsNil())

	assert.Equal(t, map[string]any{"x": int64(1)}, MapValue(MapEntry{Key: "x", Value: IntValue(1)}).Interface())
	assert.Equal(t, []any{int64(1), nil}, l.Interface())
	assert.Nil(t, NilValue().Interface())
}

func TestValue_MarshalJSON(t *testing.T) {
	v := MapValue(
		MapEntry{Key: "z", Value: IntValue(1)},
		MapEntry{Key: "a", Value: ListValue(StringValue("x"), BoolValue(false), NilValue())},
		MapEntry{Key: "bin", Value: BinaryValue([]byte("hi"))},
		MapEntry{Key: "f", Value: FloatValue(0.5)},
	)
	data, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":["x",false,null],"bin":"aGk=","f":0.5}`, string(data))
	assert.Equal(t, `{"z":1,"a":["x",false,null],"bin":"aGk=","f":0.5}`, v.String())

	_, err = FloatValue(math.NaN()).MarshalJSON()
	assert.Error(t, err)
	assert.Equal(t, "binary(2)", BinaryValue([]byte("hi")).String())
	assert.Equal(t, "nil", NilValue().String())
	assert.Equal(t, "42", IntValue(42).String())
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue(cards.Encode(map[string]any{"lstInfo": []any{map[string]any{"name": "Custom"}}}))
	require.NoError(t, err)
	name, ok := v.Path("lstInfo")
	require.True(t, ok)
	assert.Equal(t, 1, name.Len())

	// integer keys are stringified...
	v, err = DecodeValue(cards.Encode(map[int]string{1: "one"}))
	require.NoError(t, err)
	one, ok := v.Get("1")
	require.True(t, ok)
	s, _ := one.Str()
	assert.Equal(t, "one", s)

	// binary stays binary...
	v, err = DecodeValue(cards.Encode([]byte{1, 2, 3}))
	require.NoError(t, err)
	b, ok := v.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, b)

	v, err = DecodeValue(cards.Encode(-1.25))
	require.NoError(t, err)
	f, _ := v.Float()
	assert.Equal(t, -1.25, f)

	v, err = DecodeValue(cards.Encode(uint64(math.MaxUint64)))
	require.NoError(t, err)
	assert.Equal(t, KindUint, v.Kind())
}

func TestDecodeValue_KeepsMapOrder(t *testing.T) {
	// fixmap {"b": 1, "a": 2}
	v, err := DecodeValue([]byte{0x82, 0xa1, 'b', 0x01, 0xa1, 'a', 0x02})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, v.Keys())

	// binary key - {bin("k"): 1}
	v, err = DecodeValue([]byte{0x81, 0xc4, 0x01, 'k', 0x01})
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, v.Keys())
}

func TestDecodeValue_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		data    []byte
		wantErr string
	}{
		{
			name:    "empty",
			data:    []byte{},
			wantErr: "msgpack: empty input",
		},
		{
			name:    "extra bytes",
			data:    []byte{0x01, 0x02},
			wantErr: "msgpack: 1 extra bytes after value",
		},
		{
			name:    "bad code",
			data:    []byte{0xc1},
			wantErr: "msgpack",
		},
		{
			name:    "truncated string",
			data:    []byte{0xa5, 'a'},
			wantErr: "EOF",
		},
		{
			name:    "truncated map",
			data:    []byte{0x82, 0xa1, 'a'},
			wantErr: "EOF",
		},
		{
			name:    "array32 claiming 4G items",
			data:    []byte{0xdd, 0xff, 0xff, 0xff, 0xff},
			wantErr: "msgpack: array length 4294967295 exceeds remaining 0 bytes",
		},
		{
			name:    "array16 longer than input",
			data:    []byte{0xdc, 0x00, 0x03, 0x01, 0x01},
			wantErr: "msgpack: array length 3 exceeds remaining 2 bytes",
		},
		{
			name:    "map32 claiming 4G entries",
			data:    []byte{0xdf, 0xff, 0xff, 0xff, 0xff, 0x01, 0x02},
			wantErr: "msgpack: map length 4294967295 exceeds remaining 2 bytes",
		},
		{
			name:    "map entries need two bytes each",
			data:    []byte{0x82, 0x01, 0x02, 0x03},
			wantErr: "msgpack: map length 2 exceeds remaining 3 bytes",
		},
		{
			name:    "nested huge array",
			data:    []byte{0x91, 0x81, 0xa1, 'k', 0xdd, 0xff, 0xff, 0xff, 0xff},
			wantErr: "msgpack: array length 4294967295 exceeds remaining 0 bytes",
		},
		{
			name:    "str32 claiming 4G bytes",
			data:    []byte{0xdb, 0xff, 0xff, 0xff, 0xff, 'a'},
			wantErr: "EOF",
		},
		{
			name:    "deeply nested arrays",
			data:    append(bytes.Repeat([]byte{0x91}, 100000), 0xc0),
			wantErr: "msgpack: nesting depth exceeds 512",
		},
		{
			name:    "deeply nested maps",
			data:    append(bytes.Repeat([]byte{0x81, 0xa0}, 100000), 0xc0),
			wantErr: "msgpack: nesting depth exceeds 512",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeValue(tc.data)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestDecodeValue_NestingDepth(t *testing.T) {
	nested := func(levels int) []byte {
		return append(bytes.Repeat([]byte{0x91}, levels), 0x01)
	}
	v, err := DecodeValue(nested(MaxValueDepth))
	require.NoError(t, err)
	for i := 0; i < MaxValueDepth; i++ {
		items, ok := v.List()
		require.True(t, ok)
		require.Len(t, items, 1)
		v = items[0]
	}
	i, _ := v.Int()
	assert.Equal(t, int64(1), i)

	_, err = DecodeValue(nested(MaxValueDepth + 1))
	require.Error(t, err)
	assert.ErrorContains(t, err, "nesting depth exceeds")
}

func TestDecodeValue_ContainerKeys(t *testing.T) {
	// {[1]: "x"}
	v, err := DecodeValue([]byte{0x81, 0x91, 0x01, 0xa1, 'x'})
	require.NoError(t, err)
	assert.Equal(t, []string{"[1]"}, v.Keys())
}
