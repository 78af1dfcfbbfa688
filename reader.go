package kkcard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"golang.org/x/exp/constraints"
)

var (
	// ErrNoValue is returned by a lenient Reader when a read cannot be satisfied
	ErrNoValue = errors.New("no value")
	// ErrOutOfBounds is matched by the *BoundsError returned from a strict Reader
	ErrOutOfBounds = errors.New("read out of bounds")
)

// BoundsError is returned by a strict Reader when a read would pass the end of the buffer
type BoundsError struct {
	Offset int
	Want   int
	Len    int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("read out of bounds: offset %d + %d > %d", e.Offset, e.Want, e.Len)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// Width is the size of a length prefix
type Width uint8

const (
	Width8  Width = 1
	Width32 Width = 4
	Width64 Width = 8
)

// Reader is a sequential, bounds checked reader over a byte buffer
//
// in lenient mode (strict = false) a read that cannot be satisfied returns ErrNoValue, in strict
// mode it returns a *BoundsError - in both modes the reader never reads past the end of the buffer
// and the offset is left unchanged by a failed read
type Reader struct {
	data   []byte
	offset int
	strict bool
}

func NewReader(data []byte, strict bool) *Reader {
	return &Reader{
		data:   data,
		strict: strict,
	}
}

func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

func (r *Reader) check(n int) error {
	if n > r.Remaining() {
		if r.strict {
			return &BoundsError{Offset: r.offset, Want: n, Len: len(r.data)}
		}
		return ErrNoValue
	}
	return nil
}

func (r *Reader) Uint8() (uint8, error) {
	if err := r.check(1); err != nil {
		return 0, err
	}
	v := r.data[r.offset]
	r.offset++
	return v, nil
}

func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

func (r *Reader) Int32LE() (int32, error) {
	if err := r.check(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.offset:]))
	r.offset += 4
	return v, nil
}

func (r *Reader) Uint32BE() (uint32, error) {
	if err := r.check(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.offset:])
	r.offset += 4
	return v, nil
}

func (r *Reader) Int64LE() (int64, error) {
	if err := r.check(8); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(r.data[r.offset:]))
	r.offset += 8
	return v, nil
}

// Bytes reads n bytes - the result is a copy (it does not alias the reader's buffer)
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNoValue
	}
	if err := r.check(n); err != nil {
		return nil, err
	}
	result := make([]byte, n)
	copy(result, r.data[r.offset:r.offset+n])
	r.offset += n
	return result, nil
}

// LengthPrefixed reads a little-endian length of the given width followed by that many bytes
//
// Width8 lengths are unsigned, Width32 and Width64 lengths are signed - a negative length is
// always ErrNoValue. If the bytes cannot be read, the offset is restored to before the length.
func (r *Reader) LengthPrefixed(width Width) ([]byte, error) {
	start := r.offset
	n, err := r.length(width)
	if err == nil {
		var result []byte
		if result, err = r.Bytes(n); err == nil {
			return result, nil
		}
	}
	r.offset = start
	return nil, err
}

// LengthPrefixedString reads a length prefixed UTF-8 string (Width8 or Width32)
func (r *Reader) LengthPrefixedString(width Width) (string, error) {
	if width == Width64 {
		return "", fmt.Errorf("unsupported string length width %d", width)
	}
	data, err := r.LengthPrefixed(width)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Reader) length(width Width) (int, error) {
	switch width {
	case Width8:
		v, err := r.Uint8()
		if err != nil {
			return 0, err
		}
		return toLength(v)
	case Width32:
		v, err := r.Int32LE()
		if err != nil {
			return 0, err
		}
		return toLength(v)
	case Width64:
		v, err := r.Int64LE()
		if err != nil {
			return 0, err
		}
		return toLength(v)
	}
	return 0, fmt.Errorf("unsupported length width %d", width)
}

// toLength converts a decoded length to an int - negative (or unrepresentable) lengths have no value
func toLength[T constraints.Integer](v T) (int, error) {
	if v < 0 || uint64(v) > uint64(maxInt) {
		return 0, ErrNoValue
	}
	return int(v), nil
}

const maxInt = int(^uint(0) >> 1)
