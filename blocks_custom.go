package kkcard

import (
	"fmt"
)

// framedReader reads consecutive sub-blobs (int32 length prefixed msgpack values) into map entries
//
// each sub-blob is independent - one whose bytes cannot be read is omitted and reading carries on
// after its length prefix
type framedReader struct {
	r       *Reader
	entries []MapEntry
}

func newFramedReader(raw []byte) *framedReader {
	return &framedReader{r: NewReader(raw, false)}
}

func (f *framedReader) value(key string) error {
	n, err := f.r.Int32LE()
	if err != nil {
		return nil
	}
	data, err := f.r.Bytes(int(n))
	if err != nil {
		return nil
	}
	v, err := DecodeValue(data)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	f.entries = append(f.entries, MapEntry{Key: key, Value: v})
	return nil
}

func (f *framedReader) flag(key string) {
	if b, err := f.r.Uint8(); err == nil {
		f.entries = append(f.entries, MapEntry{Key: key, Value: BoolValue(b != 0)})
	}
}

func (f *framedReader) values(keys ...string) error {
	for _, key := range keys {
		if err := f.value(key); err != nil {
			return err
		}
	}
	return nil
}

func (f *framedReader) result() Value {
	return MapValue(f.entries...)
}

const (
	customFace = "face"
	customBody = "body"
	customHair = "hair"
)

func customDecoder(raw []byte, _ BlockInfo) (Value, error) {
	f := newFramedReader(raw)
	if err := f.values(customFace, customBody, customHair); err != nil {
		return Value{}, err
	}
	return f.result(), nil
}
