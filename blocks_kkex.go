package kkcard

import (
	"fmt"
)

// DefaultMaxKKExDepth is the default nesting limit when expanding KKEx (extended data) blocks
const DefaultMaxKKExDepth = 64

func kkexDecoder(maxDepth int) BlockDecoder {
	return func(raw []byte, _ BlockInfo) (Value, error) {
		v, err := DecodeValue(raw)
		if err != nil {
			return Value{}, err
		}
		return ExpandNested(v, maxDepth)
	}
}

// ExpandNested replaces every binary value within v that is itself valid msgpack with its
// (recursively expanded) decoded value
//
// binary values that do not decode are left as they are. Each nested list, map or decoded binary
// counts as one level - more than maxDepth levels is an error
func ExpandNested(v Value, maxDepth int) (Value, error) {
	return expandNested(v, 0, maxDepth)
}

func expandNested(v Value, depth int, maxDepth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, fmt.Errorf("nested value depth exceeds %d", maxDepth)
	}
	switch v.kind {
	case KindBinary:
		inner, err := DecodeValue(v.bin)
		if err != nil {
			return v, nil
		}
		return expandNested(inner, depth+1, maxDepth)
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			expanded, err := expandNested(item, depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			items[i] = expanded
		}
		return ListValue(items...), nil
	case KindMap:
		entries := make([]MapEntry, len(v.entries))
		for i, e := range v.entries {
			expanded, err := expandNested(e.Value, depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			entries[i] = MapEntry{Key: e.Key, Value: expanded}
		}
		return MapValue(entries...), nil
	}
	return v, nil
}
